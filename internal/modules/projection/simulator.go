// Package projection simulates monthly compounded growth of a
// hypothetical contribution plan. The simulator is pure and independent
// of any real portfolio.
package projection

import "math"

// Plan is the simulator's input. Not persisted, not linked to holdings.
type Plan struct {
	InitialAmount       float64 `json:"initial_amount"`
	MonthlyAmount       float64 `json:"monthly_amount"`
	AnnualReturnPercent float64 `json:"annual_return_percent"`
	Years               int     `json:"years"`
}

// Result is the outcome of a simulation run. YearlyBalances holds one
// checkpoint per year including year zero.
type Result struct {
	FinalBalance     float64   `json:"final_balance"`
	TotalContributed float64   `json:"total_contributed"`
	TotalEarnings    float64   `json:"total_earnings"`
	YearlyBalances   []float64 `json:"yearly_balances"`
}

// Simulate compounds the plan month by month. The running balance keeps
// full precision; rounding happens only at the yearly checkpoints and the
// reported totals.
func Simulate(plan Plan) Result {
	// Negative horizons behave like an empty one.
	if plan.Years < 0 {
		plan.Years = 0
	}

	monthlyRate := plan.AnnualReturnPercent / 100 / 12

	balance := plan.InitialAmount
	yearlyBalances := make([]float64, 0, plan.Years+1)
	yearlyBalances = append(yearlyBalances, round(balance, 2))

	for year := 1; year <= plan.Years; year++ {
		for month := 1; month <= 12; month++ {
			balance = balance*(1+monthlyRate) + plan.MonthlyAmount
		}
		yearlyBalances = append(yearlyBalances, round(balance, 2))
	}

	totalContributed := plan.InitialAmount + plan.MonthlyAmount*float64(plan.Years)*12

	return Result{
		FinalBalance:     round(balance, 2),
		TotalContributed: round(totalContributed, 2),
		TotalEarnings:    round(balance-totalContributed, 2),
		YearlyBalances:   yearlyBalances,
	}
}

// round rounds a float64 to n decimal places
func round(val float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(val*multiplier) / multiplier
}
