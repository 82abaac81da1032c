// Package cashflow computes the cash injected into an account over time
// from its contribution schedule. All functions are pure and operate on
// UTC-normalized timestamps.
package cashflow

import (
	"time"

	"github.com/itamarw/nestegg/internal/domain"
)

// MonthsPassed counts the qualifying month boundaries between the account
// creation instant and now. The cursor always advances to the 1st of the
// month after creation - even when the account was created on the 1st - so
// the first monthly contribution lands one full month after the initial
// lump sum. Each subsequent 1st-of-month crossing (cursor <= now) counts
// one contribution.
//
// Returns 0 when now precedes the first qualifying boundary, including
// now < createdAt.
func MonthsPassed(createdAt, now time.Time) int {
	createdAt = createdAt.UTC()
	now = now.UTC()

	// 1st of the month after creation, time-of-day zeroed
	cursor := time.Date(createdAt.Year(), createdAt.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	months := 0
	for !cursor.After(now) {
		months++
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months
}

// TotalInjected is the total cash put into the account as of now: the
// initial lump sum plus one monthly budget per qualifying month.
// A zero-valued schedule degrades to 0 rather than erroring.
func TotalInjected(schedule domain.CashSchedule, now time.Time) float64 {
	return schedule.InitialInvestment + schedule.MonthlyBudget*float64(MonthsPassed(schedule.CreatedAt, now))
}
