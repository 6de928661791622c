package feed

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ternlane/newsdesk/internal/models"
)

// RenderSentimentChart renders a PNG bar chart of positive vs negative story
// counts per tag for the current collection. Returns raw PNG bytes.
func (s *Service) RenderSentimentChart() ([]byte, error) {
	return renderSentimentChart(s.Items())
}

func renderSentimentChart(items []models.NewsItem) ([]byte, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no news items to chart")
	}

	positive, negative := 0, 0
	for i := range items {
		if items[i].IsPositive() {
			positive++
		} else {
			negative++
		}
	}

	maxCount := positive
	if negative > maxCount {
		maxCount = negative
	}

	graph := chart.BarChart{
		Title:    "Sentiment Distribution",
		Width:    600,
		Height:   400,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		// Pinned range keeps the render valid when both bars are equal.
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount) + 1},
		},
		Bars: []chart.Value{
			{
				Value: float64(positive),
				Label: fmt.Sprintf("Positive (%d)", positive),
				Style: chart.Style{
					FillColor:   drawing.ColorFromHex("10b981"), // emerald-500
					StrokeColor: drawing.ColorFromHex("10b981"),
				},
			},
			{
				Value: float64(negative),
				Label: fmt.Sprintf("Negative (%d)", negative),
				Style: chart.Style{
					FillColor:   drawing.ColorFromHex("f43f5e"), // rose-500
					StrokeColor: drawing.ColorFromHex("f43f5e"),
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
