package history

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderPNG draws the series as a line chart with the current price as a
// dashed reference line.
func RenderPNG(s Series, w io.Writer) error {
	if len(s.Prices) < 2 {
		return fmt.Errorf("need at least 2 points, got %d", len(s.Prices))
	}

	xs := make([]float64, len(s.Prices))
	ticks := make([]chart.Tick, len(s.Labels))
	for i := range s.Prices {
		xs[i] = float64(i)
	}
	for i, label := range s.Labels {
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}

	current := s.CurrentPrice.InexactFloat64()
	anchor := []float64{current, current}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s (%s)", s.Symbol, s.Timeframe),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: s.Symbol,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("2563eb"),
					StrokeWidth: 2.5,
				},
				XValues: xs,
				YValues: s.Prices,
			},
			chart.ContinuousSeries{
				Name: "Current",
				Style: chart.Style{
					StrokeColor:     drawing.ColorFromHex("9ca3af"),
					StrokeWidth:     1.5,
					StrokeDashArray: []float64{5.0, 3.0},
				},
				XValues: []float64{0, xs[len(xs)-1]},
				YValues: anchor,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("chart render failed: %w", err)
	}
	return nil
}
