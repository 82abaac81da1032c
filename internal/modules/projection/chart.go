package projection

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderChart renders a PNG line chart of a simulation run.
// Two series: projected balance (blue solid) and total contributed
// (gray dashed). Returns raw PNG bytes.
func RenderChart(plan Plan, result Result) ([]byte, error) {
	if len(result.YearlyBalances) < 2 {
		return nil, fmt.Errorf("need at least 2 yearly checkpoints, got %d", len(result.YearlyBalances))
	}

	years := make([]float64, len(result.YearlyBalances))
	balanceY := make([]float64, len(result.YearlyBalances))
	contributedY := make([]float64, len(result.YearlyBalances))

	for i, balance := range result.YearlyBalances {
		years[i] = float64(i)
		balanceY[i] = balance
		contributedY[i] = plan.InitialAmount + plan.MonthlyAmount*float64(i)*12
	}

	balanceSeries := chart.ContinuousSeries{
		Name: "Projected Balance",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.5,
		},
		XValues: years,
		YValues: balanceY,
	}

	contributedSeries := chart.ContinuousSeries{
		Name: "Total Contributed",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: years,
		YValues: contributedY,
	}

	graph := chart.Chart{
		Title:  "Growth Projection",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("Year %.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0fk", f/1000)
				}
				return ""
			},
		},
		Series: []chart.Series{
			balanceSeries,
			contributedSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
