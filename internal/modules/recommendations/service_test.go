package recommendations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamarw/nestegg/internal/domain"
)

func TestForProfile_KnownProfiles(t *testing.T) {
	cases := []struct {
		profile     int
		profileType string
		stocks      int
		bonds       int
		cash        int
	}{
		{1, "Conservative", 20, 60, 20},
		{2, "Balanced", 50, 35, 15},
		{3, "Dynamic", 70, 20, 10},
		{4, "Aggressive", 90, 5, 5},
	}

	for _, tc := range cases {
		t.Run(tc.profileType, func(t *testing.T) {
			allocation, err := ForProfile(tc.profile)
			require.NoError(t, err)

			assert.Equal(t, tc.profileType, allocation.ProfileType)
			assert.Equal(t, tc.stocks, allocation.Stocks)
			assert.Equal(t, tc.bonds, allocation.Bonds)
			assert.Equal(t, tc.cash, allocation.Cash)
			assert.NotEmpty(t, allocation.Explanation)
			assert.Equal(t, 100, allocation.Stocks+allocation.Bonds+allocation.Cash)
		})
	}
}

func TestForProfile_OutOfRange(t *testing.T) {
	for _, profile := range []int{0, 5, -1, 100} {
		_, err := ForProfile(profile)
		assert.True(t, domain.IsValidation(err), "profile %d should be rejected", profile)
	}
}

func TestStocksForProfile(t *testing.T) {
	conservative, err := StocksForProfile(1)
	require.NoError(t, err)
	require.Len(t, conservative, 4)
	assert.Equal(t, "MSFT", conservative[0].Ticker)

	aggressive, err := StocksForProfile(4)
	require.NoError(t, err)
	require.Len(t, aggressive, 5)
	for _, idea := range aggressive {
		assert.NotEmpty(t, idea.Ticker)
		assert.NotEmpty(t, idea.Name)
		assert.NotEmpty(t, idea.Sector)
		assert.NotEmpty(t, idea.Explanation)
	}
}

func TestStocksForProfile_OutOfRange(t *testing.T) {
	_, err := StocksForProfile(7)
	assert.True(t, domain.IsValidation(err))
}
