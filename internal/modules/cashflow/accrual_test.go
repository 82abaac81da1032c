package cashflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/itamarw/nestegg/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsPassed(t *testing.T) {
	tests := []struct {
		name      string
		createdAt time.Time
		now       time.Time
		want      int
	}{
		{
			name:      "mid-month creation, two boundaries crossed",
			createdAt: date(2024, time.January, 15),
			now:       date(2024, time.March, 1), // exactly on the boundary, counted (<=)
			want:      2,
		},
		{
			name:      "just before second boundary",
			createdAt: date(2024, time.January, 15),
			now:       time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC),
			want:      1,
		},
		{
			name:      "now before first boundary",
			createdAt: date(2024, time.January, 15),
			now:       date(2024, time.January, 31),
			want:      0,
		},
		{
			name:      "now before creation",
			createdAt: date(2024, time.June, 1),
			now:       date(2024, time.January, 1),
			want:      0,
		},
		{
			name:      "first-of-month creation still waits a full month",
			createdAt: date(2024, time.February, 1),
			now:       date(2024, time.February, 28),
			want:      0,
		},
		{
			name:      "first-of-month creation, one boundary",
			createdAt: date(2024, time.February, 1),
			now:       date(2024, time.March, 1),
			want:      1,
		},
		{
			name:      "creation time-of-day is irrelevant",
			createdAt: time.Date(2024, time.January, 15, 18, 30, 0, 0, time.UTC),
			now:       date(2024, time.February, 1),
			want:      1,
		},
		{
			name:      "year rollover",
			createdAt: date(2023, time.November, 20),
			now:       date(2024, time.February, 10),
			want:      3, // Dec 1, Jan 1, Feb 1
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsPassed(tt.createdAt, tt.now))
		})
	}
}

func TestTotalInjected(t *testing.T) {
	schedule := domain.CashSchedule{
		CreatedAt:         date(2024, time.January, 15),
		InitialInvestment: 10000,
		MonthlyBudget:     500,
	}

	// Scenario: two qualifying boundaries by March 1st
	got := TotalInjected(schedule, date(2024, time.March, 1))
	assert.Equal(t, 11000.0, got)
}

func TestTotalInjected_NowBeforeCreation(t *testing.T) {
	schedule := domain.CashSchedule{
		CreatedAt:         date(2024, time.June, 1),
		InitialInvestment: 2500,
		MonthlyBudget:     100,
	}

	got := TotalInjected(schedule, date(2024, time.January, 1))
	assert.Equal(t, 2500.0, got)
}

func TestTotalInjected_ZeroBudgetIsConstant(t *testing.T) {
	schedule := domain.CashSchedule{
		CreatedAt:         date(2020, time.March, 10),
		InitialInvestment: 7000,
		MonthlyBudget:     0,
	}

	for _, now := range []time.Time{
		date(2020, time.March, 10),
		date(2021, time.January, 1),
		date(2030, time.December, 31),
	} {
		assert.Equal(t, 7000.0, TotalInjected(schedule, now))
	}
}

func TestTotalInjected_ZeroSchedule(t *testing.T) {
	// Missing profile degrades to a zero-valued schedule, not an error
	assert.Equal(t, 0.0, TotalInjected(domain.CashSchedule{}, date(2024, time.January, 1)))
}

func TestTotalInjected_Monotonic(t *testing.T) {
	schedule := domain.CashSchedule{
		CreatedAt:         date(2022, time.July, 9),
		InitialInvestment: 1000,
		MonthlyBudget:     250,
	}

	prev := -1.0
	now := date(2022, time.June, 1)
	for i := 0; i < 48; i++ {
		got := TotalInjected(schedule, now)
		assert.GreaterOrEqual(t, got, prev, "total injected must be non-decreasing over time")
		prev = got
		now = now.AddDate(0, 0, 17) // irregular stride on purpose
	}
}
