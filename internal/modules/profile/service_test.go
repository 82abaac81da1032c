package profile

import (
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamarw/nestegg/internal/clientdata"
	"github.com/itamarw/nestegg/internal/domain"

	_ "modernc.org/sqlite"
)

func setupTestDBs(t *testing.T) (*sql.DB, *sql.DB) {
	t.Helper()

	portfolioDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { portfolioDB.Close() })

	_, err = portfolioDB.Exec(`
		CREATE TABLE user_profiles (
			user_id TEXT PRIMARY KEY,
			age INTEGER,
			investment_experience TEXT,
			risk_tolerance INTEGER,
			investment_goals TEXT,
			initial_investment REAL NOT NULL DEFAULT 0,
			monthly_budget REAL NOT NULL DEFAULT 0,
			onboarding_step INTEGER NOT NULL DEFAULT 0,
			onboarding_completed INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE investment_preferences (
			user_id TEXT PRIMARY KEY,
			preferred_sectors TEXT,
			preferred_countries TEXT,
			esg_preference INTEGER
		);
	`)
	require.NoError(t, err)

	cacheDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { cacheDB.Close() })

	_, err = cacheDB.Exec(`
		CREATE TABLE current_prices (
			symbol TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		);
		CREATE TABLE onboarding_status (
			user_id TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expires_at INTEGER NOT NULL
		);
	`)
	require.NoError(t, err)

	return portfolioDB, cacheDB
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	portfolioDB, cacheDB := setupTestDBs(t)

	repo := NewRepository(portfolioDB, zerolog.Nop())
	cache := clientdata.NewRepository(cacheDB)
	clock := domain.FixedClock{Instant: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)}

	return NewService(repo, cache, 0, clock, zerolog.Nop())
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

func goalsPtr(v []string) *[]string { return &v }

func TestStatus_NewUser(t *testing.T) {
	svc := newTestService(t)

	status, err := svc.Status("user-1")
	require.NoError(t, err)

	assert.False(t, status.Completed)
	assert.Equal(t, 0, status.CurrentStep)
	assert.Nil(t, status.Profile)
	assert.Nil(t, status.Preferences)
}

func TestSaveProgress_CreatesProfile(t *testing.T) {
	svc := newTestService(t)

	err := svc.SaveProgress("user-1", 2, ProgressUpdate{
		Age:                  intPtr(34),
		InvestmentExperience: strPtr("intermediate"),
		RiskTolerance:        intPtr(3),
		InitialInvestment:    floatPtr(10000),
		MonthlyBudget:        floatPtr(500),
		InvestmentGoals:      goalsPtr([]string{"retirement", "savings"}),
	})
	require.NoError(t, err)

	status, err := svc.Status("user-1")
	require.NoError(t, err)

	require.NotNil(t, status.Profile)
	assert.Equal(t, 2, status.CurrentStep)
	assert.False(t, status.Completed)
	assert.Equal(t, 34, *status.Profile.Age)
	assert.Equal(t, "intermediate", *status.Profile.InvestmentExperience)
	assert.Equal(t, 3, *status.Profile.RiskTolerance)
	assert.Equal(t, 10000.0, status.Profile.InitialInvestment)
	assert.Equal(t, 500.0, status.Profile.MonthlyBudget)
	assert.Equal(t, []string{"retirement", "savings"}, status.Profile.InvestmentGoals)
}

func TestSaveProgress_PartialUpdateKeepsEarlierAnswers(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.SaveProgress("user-1", 1, ProgressUpdate{Age: intPtr(30)}))
	require.NoError(t, svc.SaveProgress("user-1", 2, ProgressUpdate{MonthlyBudget: floatPtr(250)}))

	status, err := svc.Status("user-1")
	require.NoError(t, err)

	require.NotNil(t, status.Profile)
	assert.Equal(t, 2, status.Profile.OnboardingStep)
	assert.Equal(t, 30, *status.Profile.Age)
	assert.Equal(t, 250.0, status.Profile.MonthlyBudget)
}

func TestSaveProgress_Preferences(t *testing.T) {
	svc := newTestService(t)

	err := svc.SaveProgress("user-1", 4, ProgressUpdate{
		Sectors:       goalsPtr([]string{"technology", "healthcare"}),
		Countries:     goalsPtr([]string{"usa", "israel"}),
		ESGPreference: boolPtr(true),
	})
	require.NoError(t, err)

	status, err := svc.Status("user-1")
	require.NoError(t, err)

	require.NotNil(t, status.Preferences)
	assert.Equal(t, []string{"technology", "healthcare"}, status.Preferences.PreferredSectors)
	assert.Equal(t, []string{"usa", "israel"}, status.Preferences.PreferredCountries)
	require.NotNil(t, status.Preferences.ESGPreference)
	assert.True(t, *status.Preferences.ESGPreference)
}

func TestSaveProgress_Validation(t *testing.T) {
	svc := newTestService(t)

	assert.True(t, domain.IsValidation(svc.SaveProgress("user-1", 99, ProgressUpdate{})))
	assert.True(t, domain.IsValidation(svc.SaveProgress("user-1", 1, ProgressUpdate{
		MonthlyBudget: floatPtr(-5),
	})))
	assert.True(t, domain.IsValidation(svc.SaveProgress("user-1", 1, ProgressUpdate{
		InitialInvestment: floatPtr(-100),
	})))
}

func TestComplete_SetsFlagAndStep(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.SaveProgress("user-1", 9, ProgressUpdate{}))
	require.NoError(t, svc.Complete("user-1"))

	status, err := svc.Status("user-1")
	require.NoError(t, err)
	assert.True(t, status.Completed)
	assert.Equal(t, 10, status.CurrentStep)
}

func TestComplete_MissingProfile(t *testing.T) {
	svc := newTestService(t)

	err := svc.Complete("nobody")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestHasCompleted(t *testing.T) {
	svc := newTestService(t)

	// Missing profile counts as not completed.
	completed, err := svc.HasCompleted("user-1")
	require.NoError(t, err)
	assert.False(t, completed)

	require.NoError(t, svc.SaveProgress("user-1", 5, ProgressUpdate{}))

	completed, err = svc.HasCompleted("user-1")
	require.NoError(t, err)
	assert.False(t, completed)

	// Complete must invalidate the cached flag so the next read sees
	// the new state within the TTL window.
	require.NoError(t, svc.Complete("user-1"))

	completed, err = svc.HasCompleted("user-1")
	require.NoError(t, err)
	assert.True(t, completed)
}

func TestHasCompleted_ConfiguredTTLBoundsCache(t *testing.T) {
	portfolioDB, cacheDB := setupTestDBs(t)
	repo := NewRepository(portfolioDB, zerolog.Nop())
	cache := clientdata.NewRepository(cacheDB)
	clock := domain.FixedClock{Instant: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)}

	// A nanosecond TTL expires within the same wall-clock second, so every
	// read after the first must go back to the database.
	svc := NewService(repo, cache, time.Nanosecond, clock, zerolog.Nop())

	require.NoError(t, svc.SaveProgress("user-1", 5, ProgressUpdate{}))
	require.NoError(t, svc.Complete("user-1"))

	completed, err := svc.HasCompleted("user-1")
	require.NoError(t, err)
	assert.True(t, completed)

	// Flip the row behind the cache's back. A fresh cache entry would
	// mask this; the expired one must not.
	_, err = portfolioDB.Exec(`UPDATE user_profiles SET onboarding_completed = 0 WHERE user_id = ?`, "user-1")
	require.NoError(t, err)

	completed, err = svc.HasCompleted("user-1")
	require.NoError(t, err)
	assert.False(t, completed)
}

func TestGetCashSchedule(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetCashSchedule("user-1")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	require.NoError(t, svc.SaveProgress("user-1", 3, ProgressUpdate{
		InitialInvestment: floatPtr(10000),
		MonthlyBudget:     floatPtr(500),
	}))

	schedule, err := svc.GetCashSchedule("user-1")
	require.NoError(t, err)
	assert.Equal(t, 10000.0, schedule.InitialInvestment)
	assert.Equal(t, 500.0, schedule.MonthlyBudget)
	assert.Equal(t, time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC), schedule.CreatedAt)
}
