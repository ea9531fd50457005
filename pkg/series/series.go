package series

import (
	"math"
	"sort"
	"strings"

	"f1statsboard/pkg/helper"
	"f1statsboard/pkg/model"
)

// ReferenceDriverName is the synthetic baseline row some seasons carry in
// the drivers dataset. It is excluded from comparative charts by exact name.
const ReferenceDriverName = "Reference"

// Labeled is an index-aligned label/value/color series. Every transform in
// this package keeps labels[i], values[i] and colors[i] describing the same
// source record.
type Labeled struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []Color   `json:"colors"`
}

// Battle is the diverging series derived from battle pairs. Left values are
// negative, right values positive, so the two datasets grow away from a
// shared zero axis. The label arrays keep the real driver names for tooltip
// resolution.
type Battle struct {
	LeftLabels  []string  `json:"leftLabels"`
	RightLabels []string  `json:"rightLabels"`
	LeftValues  []float64 `json:"leftValues"`
	RightValues []float64 `json:"rightValues"`
}

// RankedPitstop is one display row of the top pit stops list.
type RankedPitstop struct {
	Rank   int    `json:"rank"`
	Driver string `json:"driver"`
	Team   string `json:"team"`
	Time   string `json:"time"`
}

// Points pairs driver names with championship points, descending, with the
// sentinel reference row excluded by exact name match. The input slice is
// not modified.
func Points(drivers []model.DriverRecord, sentinel string) Labeled {
	kept := make([]model.DriverRecord, 0, len(drivers))
	for _, d := range drivers {
		if d.Name == sentinel {
			continue
		}
		kept = append(kept, d)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Points > kept[j].Points
	})
	s := Labeled{
		Labels: make([]string, len(kept)),
		Values: make([]float64, len(kept)),
	}
	for i, d := range kept {
		s.Labels[i] = d.Name
		s.Values[i] = d.Points
	}
	s.Colors = Palette(len(kept), 70, 55)
	return s
}

// Laps pairs driver names with completed lap counts, descending.
func Laps(drivers []model.DriverRecord) Labeled {
	sorted := make([]model.DriverRecord, len(drivers))
	copy(sorted, drivers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Laps > sorted[j].Laps
	})
	s := Labeled{
		Labels: make([]string, len(sorted)),
		Values: make([]float64, len(sorted)),
	}
	for i, d := range sorted {
		s.Labels[i] = d.Name
		s.Values[i] = d.Laps
	}
	s.Colors = Palette(len(sorted), 60, 45)
	return s
}

const pairSeparator = " vs "

// Battles splits each "A vs B" pair into the two driver names and encodes
// the scores for a diverging bar: left = -abs(qualScore_1),
// right = +abs(qualScore_2). Pairs missing the separator keep the whole
// pair text as the left name with an empty right name.
func Battles(pairs []model.BattlePair) Battle {
	b := Battle{
		LeftLabels:  make([]string, len(pairs)),
		RightLabels: make([]string, len(pairs)),
		LeftValues:  make([]float64, len(pairs)),
		RightValues: make([]float64, len(pairs)),
	}
	for i, p := range pairs {
		left, right, _ := strings.Cut(p.Pair, pairSeparator)
		b.LeftLabels[i] = strings.TrimSpace(left)
		b.RightLabels[i] = strings.TrimSpace(right)
		b.LeftValues[i] = -math.Abs(p.QualScore1)
		b.RightValues[i] = math.Abs(p.QualScore2)
	}
	return b
}

// TopPitstops ranks the n fastest stops ascending by time. The input slice
// is not modified.
func TopPitstops(stops []model.PitstopRecord, n int) []RankedPitstop {
	sorted := make([]model.PitstopRecord, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	ranked := make([]RankedPitstop, 0, n)
	for i := 0; i < n; i++ {
		ranked = append(ranked, RankedPitstop{
			Rank:   i + 1,
			Driver: sorted[i].Driver,
			Team:   sorted[i].Team,
			Time:   helper.PitTime(sorted[i].Time),
		})
	}
	return ranked
}
