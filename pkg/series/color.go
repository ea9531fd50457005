package series

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Color is an HSL color. Hue in degrees [0,360), saturation and lightness
// in percent.
type Color struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// Palette generates n colors by rotating the hue evenly across the full
// 360° range at a fixed saturation and lightness.
func Palette(n int, sat, light float64) []Color {
	if n <= 0 {
		return []Color{}
	}
	colors := make([]Color, n)
	step := 360.0 / float64(n)
	for i := range colors {
		colors[i] = Color{H: step * float64(i), S: sat, L: light}
	}
	return colors
}

// CSS returns the color as a CSS hsl() value for the browser dashboard.
func (c Color) CSS() string {
	return fmt.Sprintf("hsl(%g, %g%%, %g%%)", c.H, c.S, c.L)
}

// Drawing converts to the go-chart color type for PNG rendering.
func (c Color) Drawing() drawing.Color {
	r, g, b := hslToRGB(c.H, c.S/100, c.L/100)
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	c := (1 - math.Abs(2*l-1)) * s
	hp := math.Mod(h, 360) / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := l - c/2
	return uint8(math.Round((r + m) * 255)),
		uint8(math.Round((g + m) * 255)),
		uint8(math.Round((b + m) * 255))
}
