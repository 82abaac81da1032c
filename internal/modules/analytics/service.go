// Package analytics builds portfolio composition and risk analysis from
// a user's current holdings.
package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/itamarw/nestegg/internal/domain"
)

// sectorMap classifies well known symbols. Anything unknown lands in
// "Other".
var sectorMap = map[string]string{
	"AAPL": "Technology", "GOOGL": "Technology", "MSFT": "Technology",
	"AMZN": "Consumer Cyclical", "TSLA": "Automotive", "META": "Technology",
	"NVDA": "Technology", "JPM": "Financial", "V": "Financial",
	"JNJ": "Healthcare", "WMT": "Consumer Defensive", "PG": "Consumer Defensive",
	"MA": "Financial", "HD": "Consumer Cyclical", "DIS": "Communication",
	"BTC-USD": "Cryptocurrency", "ETH-USD": "Cryptocurrency",
	"SPY": "ETF", "QQQ": "ETF", "VTI": "ETF",
}

// AssetAnalysis is one holding's contribution to the portfolio.
type AssetAnalysis struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Sector            string  `json:"sector"`
	Value             float64 `json:"value"`
	ProfitLoss        float64 `json:"profit_loss"`
	ProfitLossPercent float64 `json:"profit_loss_percent"`
	Weight            float64 `json:"weight"`
}

// SectorBreakdown aggregates holdings by sector.
type SectorBreakdown struct {
	Sector string  `json:"sector"`
	Weight float64 `json:"weight"`
	Value  float64 `json:"value"`
	Count  int     `json:"count"`
}

// RiskMetrics summarizes concentration and dispersion.
type RiskMetrics struct {
	DiversificationScore float64 `json:"diversification_score"`
	ConcentrationRisk    string  `json:"concentration_risk"`
	TopHoldingWeight     float64 `json:"top_holding_weight"`
	SectorCount          int     `json:"sector_count"`
	AssetCount           int     `json:"asset_count"`
	ReturnDispersion     float64 `json:"return_dispersion"`
}

// Analysis is the full analytics response for one portfolio.
type Analysis struct {
	Summary          string            `json:"summary"`
	TotalValue       float64           `json:"total_value"`
	TotalInvested    float64           `json:"total_invested"`
	TotalGain        float64           `json:"total_gain"`
	TotalGainPercent float64           `json:"total_gain_percent"`
	Assets           []AssetAnalysis   `json:"assets"`
	Sectors          []SectorBreakdown `json:"sectors"`
	Risk             RiskMetrics       `json:"risk_metrics"`
	Recommendations  []string          `json:"recommendations"`
}

// Analyze computes the composition analysis for a set of positions.
// Returns domain.ErrNoAssets for an empty portfolio.
func Analyze(positions []domain.Position) (Analysis, error) {
	if len(positions) == 0 {
		return Analysis{}, domain.ErrNoAssets
	}

	type sectorAccum struct {
		value float64
		count int
	}

	assets := make([]AssetAnalysis, 0, len(positions))
	sectorTotals := make(map[string]*sectorAccum)
	var totalValue, totalInvested float64

	for _, pos := range positions {
		sector, ok := sectorMap[pos.Symbol]
		if !ok {
			sector = "Other"
		}

		value := pos.Value()
		cost := pos.CostBasis()
		totalValue += value
		totalInvested += cost

		assets = append(assets, AssetAnalysis{
			Symbol:            pos.Symbol,
			Name:              pos.Name,
			Sector:            sector,
			Value:             round(value, 2),
			ProfitLoss:        round(pos.UnrealizedPnL(), 2),
			ProfitLossPercent: round(pos.UnrealizedPnLPercent(), 2),
		})

		accum := sectorTotals[sector]
		if accum == nil {
			accum = &sectorAccum{}
			sectorTotals[sector] = accum
		}
		accum.value += value
		accum.count++
	}

	for i := range assets {
		if totalValue > 0 {
			assets[i].Weight = round(assets[i].Value/totalValue*100, 1)
		}
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Weight > assets[j].Weight })

	sectors := make([]SectorBreakdown, 0, len(sectorTotals))
	for sector, accum := range sectorTotals {
		var weight float64
		if totalValue > 0 {
			weight = accum.value / totalValue * 100
		}
		sectors = append(sectors, SectorBreakdown{
			Sector: sector,
			Weight: round(weight, 1),
			Value:  round(accum.value, 2),
			Count:  accum.count,
		})
	}
	sort.Slice(sectors, func(i, j int) bool { return sectors[i].Weight > sectors[j].Weight })

	topWeight := assets[0].Weight

	assetScore := math.Min(float64(len(assets))*10, 40)
	sectorScore := math.Min(float64(len(sectors))*15, 30)
	concentrationScore := math.Max(0, 30-topWeight)
	diversificationScore := math.Min(assetScore+sectorScore+concentrationScore, 100)

	concentrationRisk := "Low"
	switch {
	case topWeight > 50:
		concentrationRisk = "High"
	case topWeight > 30:
		concentrationRisk = "Medium"
	}

	var recommendations []string
	if len(assets) < 5 {
		recommendations = append(recommendations, "Consider adding more assets for better diversification.")
	}
	if len(sectors) < 3 {
		recommendations = append(recommendations, "Your portfolio is concentrated in few sectors.")
	}
	if topWeight > 30 {
		recommendations = append(recommendations,
			fmt.Sprintf("Top holding (%s) represents %.1f%% - consider rebalancing.", assets[0].Symbol, topWeight))
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Your portfolio looks well-balanced!")
	}

	totalGain := totalValue - totalInvested
	var totalGainPercent float64
	if totalInvested > 0 {
		totalGainPercent = totalGain / totalInvested * 100
	}

	return Analysis{
		Summary:          fmt.Sprintf("Portfolio of %d assets valued at $%.2f", len(assets), totalValue),
		TotalValue:       round(totalValue, 2),
		TotalInvested:    round(totalInvested, 2),
		TotalGain:        round(totalGain, 2),
		TotalGainPercent: round(totalGainPercent, 2),
		Assets:           assets,
		Sectors:          sectors,
		Risk: RiskMetrics{
			DiversificationScore: round(diversificationScore, 0),
			ConcentrationRisk:    concentrationRisk,
			TopHoldingWeight:     round(topWeight, 1),
			SectorCount:          len(sectors),
			AssetCount:           len(assets),
			ReturnDispersion:     round(returnDispersion(positions), 2),
		},
		Recommendations: recommendations,
	}, nil
}

// returnDispersion is the standard deviation of per position unrealized
// return percentages. Zero when fewer than two positions exist.
func returnDispersion(positions []domain.Position) float64 {
	if len(positions) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(positions))
	for _, pos := range positions {
		returns = append(returns, pos.UnrealizedPnLPercent())
	}
	return stat.StdDev(returns, nil)
}

// SnapshotProvider supplies positions with refreshed prices.
type SnapshotProvider interface {
	Snapshot(userID string) ([]domain.Position, error)
}

// Service runs the analysis against a user's live snapshot.
type Service struct {
	snapshots SnapshotProvider
	log       zerolog.Logger
}

func NewService(snapshots SnapshotProvider, log zerolog.Logger) *Service {
	return &Service{
		snapshots: snapshots,
		log:       log.With().Str("service", "analytics").Logger(),
	}
}

// AnalyzeUser loads the user's snapshot and analyzes it.
func (s *Service) AnalyzeUser(userID string) (Analysis, error) {
	positions, err := s.snapshots.Snapshot(userID)
	if err != nil {
		return Analysis{}, fmt.Errorf("loading snapshot: %w", err)
	}
	return Analyze(positions)
}

// round rounds a float64 to n decimal places
func round(val float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(val*multiplier) / multiplier
}
