package charts

import (
	"fmt"
	"math"

	"f1statsboard/pkg/series"
)

// Kind selects one of the configured chart variants.
type Kind string

const (
	KindPie       Kind = "pie"
	KindBar       Kind = "bar"
	KindDiverging Kind = "diverging"
)

// Dataset is one drawable series of a chart config.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor"`
	// PointLabels carries the real per-point display names for datasets
	// whose Label is generic, as in the diverging battle chart.
	PointLabels []string `json:"pointLabels,omitempty"`
}

// Config is a renderer-agnostic chart description. The dashboard page feeds
// it to its charting script; the PNG endpoints draw it with go-chart. Each
// config is meant to be drawn into its mount point exactly once.
type Config struct {
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Labels      []string  `json:"labels"`
	Datasets    []Dataset `json:"datasets"`
	Unit        string    `json:"unit"`
	Horizontal  bool      `json:"horizontal"`
	Stacked     bool      `json:"stacked"`
	BeginAtZero bool      `json:"beginAtZero"`
	// AbsTicks makes axis tick labels display absolute values even though
	// the left diverging dataset holds negative data.
	AbsTicks bool `json:"absTicks"`
	Legend   bool `json:"legend"`
}

// PointsPie builds the championship points pie. One slice per driver, one
// generated color per slice.
func PointsPie(s series.Labeled) Config {
	return Config{
		Kind:   KindPie,
		Title:  "Championship points",
		Labels: append([]string{}, s.Labels...),
		Datasets: []Dataset{{
			Label:           "Points",
			Data:            append([]float64{}, s.Values...),
			BackgroundColor: cssColors(s.Colors),
		}},
		Unit:   "points",
		Legend: true,
	}
}

// LapsBar builds the completed-laps horizontal bar with a zero-based axis.
func LapsBar(s series.Labeled) Config {
	return Config{
		Kind:   KindBar,
		Title:  "Laps completed",
		Labels: append([]string{}, s.Labels...),
		Datasets: []Dataset{{
			Label:           "Laps",
			Data:            append([]float64{}, s.Values...),
			BackgroundColor: cssColors(s.Colors),
		}},
		Unit:        "laps",
		Horizontal:  true,
		BeginAtZero: true,
	}
}

// BattleBar builds the diverging qualifying-battle bar: two datasets sharing
// a stacked axis so they mirror away from the zero line. Axis ticks display
// absolute values; tooltips resolve the real driver name per point from the
// dataset's PointLabels.
func BattleBar(b series.Battle, title string) Config {
	labels := make([]string, len(b.LeftLabels))
	for i := range labels {
		labels[i] = b.LeftLabels[i] + " vs " + b.RightLabels[i]
	}
	return Config{
		Kind:   KindDiverging,
		Title:  title,
		Labels: labels,
		Datasets: []Dataset{
			{
				Label:           "Driver 1",
				Data:            append([]float64{}, b.LeftValues...),
				BackgroundColor: []string{"hsl(215, 70%, 55%)"},
				PointLabels:     append([]string{}, b.LeftLabels...),
			},
			{
				Label:           "Driver 2",
				Data:            append([]float64{}, b.RightValues...),
				BackgroundColor: []string{"hsl(5, 70%, 55%)"},
				PointLabels:     append([]string{}, b.RightLabels...),
			},
		},
		Unit:       "wins-in-battle",
		Horizontal: true,
		Stacked:    true,
		AbsTicks:   true,
		Legend:     true,
	}
}

// TooltipLabel resolves the display text for one chart point. It is the
// single source of tooltip wording for every renderer, independent of any
// charting-library callback shape.
func TooltipLabel(cfg Config, datasetIndex, pointIndex int) string {
	if datasetIndex < 0 || datasetIndex >= len(cfg.Datasets) {
		return ""
	}
	ds := cfg.Datasets[datasetIndex]
	if pointIndex < 0 || pointIndex >= len(ds.Data) {
		return ""
	}
	value := ds.Data[pointIndex]
	switch cfg.Kind {
	case KindPie:
		return fmt.Sprintf("%s: %s %s", cfg.Labels[pointIndex], formatValue(value), cfg.Unit)
	case KindDiverging:
		name := ds.Label
		if pointIndex < len(ds.PointLabels) {
			name = ds.PointLabels[pointIndex]
		}
		return fmt.Sprintf("%s: %s %s", name, formatValue(math.Abs(value)), cfg.Unit)
	default:
		return fmt.Sprintf("%s %s", formatValue(value), cfg.Unit)
	}
}

func formatValue(v float64) string {
	return fmt.Sprintf("%g", v)
}

func cssColors(colors []series.Color) []string {
	css := make([]string, len(colors))
	for i, c := range colors {
		css[i] = c.CSS()
	}
	return css
}
