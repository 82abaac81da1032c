package portfolio

// Stats is the aggregated view of a user's holdings, cash and
// realized history at a point in time.
type Stats struct {
	TotalValue         float64 `json:"total_value"`
	TotalCostBasis     float64 `json:"total_cost_basis"`
	TotalRealizedGains float64 `json:"total_realized_gains"`
	TotalCashInjected  float64 `json:"total_cash_injected"`
	BuyingPower        float64 `json:"buying_power"`
	TotalGain          float64 `json:"total_gain"`
	TotalGainPercent   float64 `json:"total_gain_percent"`
	DayChange          float64 `json:"day_change"`
	DayChangePercent   float64 `json:"day_change_percent"`
	PositionCount      int     `json:"position_count"`
}

// HistoryPoint is one sample in the synthetic portfolio value series.
type HistoryPoint struct {
	Month    string  `json:"month"`
	Value    float64 `json:"value"`
	Invested float64 `json:"invested"`
	Gain     float64 `json:"gain"`
}

// History is the value series plus the summary totals derived from it.
type History struct {
	Points           []HistoryPoint `json:"history"`
	CurrentValue     float64        `json:"current_value"`
	TotalInvested    float64        `json:"total_invested"`
	TotalGain        float64        `json:"total_gain"`
	TotalGainPercent float64        `json:"total_gain_percent"`
}
