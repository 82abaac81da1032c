package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itamarw/nestegg/internal/domain"
)

func TestAnalyze_EmptyPortfolio(t *testing.T) {
	_, err := Analyze(nil)
	assert.ErrorIs(t, err, domain.ErrNoAssets)
}

func TestAnalyze_SingleHolding(t *testing.T) {
	positions := []domain.Position{
		{Symbol: "AAPL", Name: "Apple", Quantity: 10, PurchasePrice: 100, CurrentPrice: 120},
	}

	analysis, err := Analyze(positions)
	require.NoError(t, err)

	require.Len(t, analysis.Assets, 1)
	asset := analysis.Assets[0]
	assert.Equal(t, "AAPL", asset.Symbol)
	assert.Equal(t, "Technology", asset.Sector)
	assert.Equal(t, 1200.0, asset.Value)
	assert.Equal(t, 200.0, asset.ProfitLoss)
	assert.Equal(t, 20.0, asset.ProfitLossPercent)
	assert.Equal(t, 100.0, asset.Weight)

	assert.Equal(t, 1200.0, analysis.TotalValue)
	assert.Equal(t, 1000.0, analysis.TotalInvested)
	assert.Equal(t, 200.0, analysis.TotalGain)
	assert.Equal(t, 20.0, analysis.TotalGainPercent)

	// One asset in one sector, everything in the top holding.
	assert.Equal(t, "High", analysis.Risk.ConcentrationRisk)
	assert.Equal(t, 100.0, analysis.Risk.TopHoldingWeight)
	// 10 (assets) + 15 (sectors) + 0 (concentration)
	assert.Equal(t, 25.0, analysis.Risk.DiversificationScore)
	assert.Equal(t, 0.0, analysis.Risk.ReturnDispersion)
}

func TestAnalyze_SectorBreakdownAndOrdering(t *testing.T) {
	positions := []domain.Position{
		{Symbol: "AAPL", Quantity: 1, PurchasePrice: 100, CurrentPrice: 100},
		{Symbol: "MSFT", Quantity: 1, PurchasePrice: 100, CurrentPrice: 100},
		{Symbol: "JPM", Quantity: 8, PurchasePrice: 100, CurrentPrice: 100},
		{Symbol: "UNKNOWN", Quantity: 2, PurchasePrice: 100, CurrentPrice: 100},
	}

	analysis, err := Analyze(positions)
	require.NoError(t, err)

	// Assets sorted by weight, largest first.
	assert.Equal(t, "JPM", analysis.Assets[0].Symbol)
	assert.Equal(t, "Financial", analysis.Assets[0].Sector)
	assert.Equal(t, "Other", findAsset(t, analysis, "UNKNOWN").Sector)

	require.Len(t, analysis.Sectors, 3)
	assert.Equal(t, "Financial", analysis.Sectors[0].Sector)
	assert.InDelta(t, 66.7, analysis.Sectors[0].Weight, 0.01)
	assert.Equal(t, 1, analysis.Sectors[0].Count)

	var technology SectorBreakdown
	for _, s := range analysis.Sectors {
		if s.Sector == "Technology" {
			technology = s
		}
	}
	assert.Equal(t, 2, technology.Count)
	assert.Equal(t, 200.0, technology.Value)
}

func TestAnalyze_ConcentrationBands(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		want   string
	}{
		{"high above 50", []float64{60, 20, 10, 10}, "High"},
		{"medium above 30", []float64{40, 20, 20, 20}, "Medium"},
		{"low at or below 30", []float64{30, 25, 25, 20}, "Low"},
	}

	symbols := []string{"AAPL", "JPM", "JNJ", "WMT"}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			positions := make([]domain.Position, len(tc.values))
			for i, v := range tc.values {
				positions[i] = domain.Position{Symbol: symbols[i], Quantity: 1, PurchasePrice: v, CurrentPrice: v}
			}
			analysis, err := Analyze(positions)
			require.NoError(t, err)
			assert.Equal(t, tc.want, analysis.Risk.ConcentrationRisk)
		})
	}
}

func TestAnalyze_Recommendations(t *testing.T) {
	concentrated := []domain.Position{
		{Symbol: "AAPL", Quantity: 9, PurchasePrice: 100, CurrentPrice: 100},
		{Symbol: "MSFT", Quantity: 1, PurchasePrice: 100, CurrentPrice: 100},
	}

	analysis, err := Analyze(concentrated)
	require.NoError(t, err)

	assert.Contains(t, analysis.Recommendations, "Consider adding more assets for better diversification.")
	assert.Contains(t, analysis.Recommendations, "Your portfolio is concentrated in few sectors.")
	assert.Contains(t, analysis.Recommendations, "Top holding (AAPL) represents 90.0% - consider rebalancing.")
}

func TestAnalyze_WellBalancedPortfolio(t *testing.T) {
	positions := []domain.Position{
		{Symbol: "AAPL", Quantity: 1, PurchasePrice: 100, CurrentPrice: 100},
		{Symbol: "JPM", Quantity: 1, PurchasePrice: 100, CurrentPrice: 100},
		{Symbol: "JNJ", Quantity: 1, PurchasePrice: 100, CurrentPrice: 100},
		{Symbol: "WMT", Quantity: 1, PurchasePrice: 100, CurrentPrice: 100},
		{Symbol: "SPY", Quantity: 1, PurchasePrice: 100, CurrentPrice: 100},
	}

	analysis, err := Analyze(positions)
	require.NoError(t, err)

	assert.Equal(t, []string{"Your portfolio looks well-balanced!"}, analysis.Recommendations)
	// 40 + 30 + (30 - 20)
	assert.Equal(t, 80.0, analysis.Risk.DiversificationScore)
	assert.Equal(t, "Low", analysis.Risk.ConcentrationRisk)
}

func TestAnalyze_ReturnDispersion(t *testing.T) {
	positions := []domain.Position{
		{Symbol: "AAPL", Quantity: 1, PurchasePrice: 100, CurrentPrice: 110}, // +10%
		{Symbol: "MSFT", Quantity: 1, PurchasePrice: 100, CurrentPrice: 90},  // -10%
	}

	analysis, err := Analyze(positions)
	require.NoError(t, err)

	// Sample stddev of {10, -10}.
	assert.InDelta(t, 14.14, analysis.Risk.ReturnDispersion, 0.01)
}

func findAsset(t *testing.T, analysis Analysis, symbol string) AssetAnalysis {
	t.Helper()
	for _, a := range analysis.Assets {
		if a.Symbol == symbol {
			return a
		}
	}
	t.Fatalf("asset %s not found", symbol)
	return AssetAnalysis{}
}
