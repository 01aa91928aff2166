package report

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/nwillems/confluence-lifecycle/models"
)

var (
	freshColor  = drawing.ColorFromHex("9e9e9e")
	staleColor  = drawing.ColorFromHex("2196f3")
	rottenColor = drawing.ColorFromHex("f44336")
)

// RenderChart renders the phase distribution of a run as a PNG pie chart.
// Phases with zero pages are left off the pie; the rotten slice gets a
// heavier outline to draw the eye.
func RenderChart(stats *models.RunStats) ([]byte, error) {
	var values []chart.Value

	if stats.Fresh.Total > 0 {
		values = append(values, chart.Value{
			Value: float64(stats.Fresh.Total),
			Label: "Fresh",
			Style: chart.Style{FillColor: freshColor},
		})
	}
	if stats.Stale.Total > 0 {
		values = append(values, chart.Value{
			Value: float64(stats.Stale.Total),
			Label: "Stale",
			Style: chart.Style{FillColor: staleColor},
		})
	}
	if stats.Rotten.Total > 0 {
		values = append(values, chart.Value{
			Value: float64(stats.Rotten.Total),
			Label: "Rotten",
			Style: chart.Style{
				FillColor:   rottenColor,
				StrokeColor: drawing.ColorBlack,
				StrokeWidth: 4,
			},
		})
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("no classified pages to chart")
	}

	pie := chart.PieChart{
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie chart: %w", err)
	}

	return buf.Bytes(), nil
}
