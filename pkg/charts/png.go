package charts

import (
	"bytes"

	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"

	"f1statsboard/pkg/helper"
	"f1statsboard/pkg/series"
)

// ErrNoData is returned when a chart has nothing to draw. Handlers turn it
// into an empty panel instead of an image.
var ErrNoData = errors.New("chart has no data")

// RenderPointsPNG draws the championship points pie into a PNG buffer.
func RenderPointsPNG(s series.Labeled) ([]byte, error) {
	if len(s.Values) == 0 {
		return nil, ErrNoData
	}
	values := make([]chart.Value, len(s.Values))
	for i := range s.Values {
		values[i] = chart.Value{
			Value: s.Values[i],
			Label: helper.GetDriverCodeName(s.Labels[i]),
			Style: chart.Style{FillColor: s.Colors[i].Drawing()},
		}
	}
	pie := chart.PieChart{
		Width:  720,
		Height: 720,
		Values: values,
	}
	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "rendering points pie")
	}
	return buf.Bytes(), nil
}

// RenderLapsPNG draws the completed-laps bar chart into a PNG buffer.
func RenderLapsPNG(s series.Labeled) ([]byte, error) {
	if len(s.Values) == 0 {
		return nil, ErrNoData
	}
	bars := make([]chart.Value, len(s.Values))
	for i := range s.Values {
		bars[i] = chart.Value{
			Value: s.Values[i],
			Label: helper.GetDriverCodeName(s.Labels[i]),
			Style: chart.Style{FillColor: s.Colors[i].Drawing()},
		}
	}
	bar := chart.BarChart{
		Title:    "Laps completed",
		Width:    1024,
		Height:   512,
		BarWidth: 28,
		Background: chart.Style{
			Padding: chart.Box{Top: 32, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue(s.Values)},
		},
		Bars: bars,
	}
	var buf bytes.Buffer
	if err := bar.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "rendering laps bar")
	}
	return buf.Bytes(), nil
}

func maxValue(values []float64) float64 {
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}
