package portfolio

import (
	"math"
	"time"

	"github.com/itamarw/nestegg/internal/domain"
	"github.com/itamarw/nestegg/internal/modules/cashflow"
)

// dayChangeFactor approximates intraday movement as a fixed fraction of
// total gain. Per-position previous-close data is not tracked, so this
// stands in until a real daily snapshot exists.
const dayChangeFactor = 0.05

// Aggregate folds open positions, closed transactions and the cash
// schedule into a single Stats snapshot. Pure: callers refresh prices
// before aggregating.
func Aggregate(open []domain.Position, closed []domain.ClosedTransaction, schedule domain.CashSchedule, now time.Time) Stats {
	var totalValue, totalCostBasis float64
	for _, p := range open {
		totalValue += p.Value()
		totalCostBasis += p.CostBasis()
	}

	var realizedGains float64
	for _, tx := range closed {
		realizedGains += tx.RealizedPnL
	}

	cashInjected := cashflow.TotalInjected(schedule, now)

	buyingPower := cashInjected - totalCostBasis + realizedGains
	if buyingPower < 0 {
		buyingPower = 0
	}

	totalGain := (totalValue - totalCostBasis) + realizedGains
	var totalGainPercent float64
	if cashInjected > 0 {
		totalGainPercent = (totalGain / cashInjected) * 100
	}

	return Stats{
		TotalValue:         round(totalValue, 2),
		TotalCostBasis:     round(totalCostBasis, 2),
		TotalRealizedGains: round(realizedGains, 2),
		TotalCashInjected:  round(cashInjected, 2),
		BuyingPower:        round(buyingPower, 2),
		TotalGain:          round(totalGain, 2),
		TotalGainPercent:   round(totalGainPercent, 2),
		DayChange:          round(totalGain*dayChangeFactor, 2),
		DayChangePercent:   round(totalGainPercent*dayChangeFactor, 2),
		PositionCount:      len(open),
	}
}

// round rounds a float64 to n decimal places
func round(val float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(val*multiplier) / multiplier
}
