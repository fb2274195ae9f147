package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Gradient stops over the normalised height range.
var (
	seaBlue   = rgb(39, 39, 184)
	grassLime = rgb(0, 255, 0)
	sandYell  = rgb(139, 135, 19)
	soilBrown = rgb(111, 78, 55)
	snowWhite = rgb(255, 255, 255)
)

type stop struct {
	at    float64
	color colorful.Color
}

var gradient = []stop{
	{0, seaBlue},
	{0.3, grassLime},
	{0.5, sandYell},
	{0.75, soilBrown},
	{1, snowWhite},
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// HeightColor maps a height in [0, maxHeight] onto the terrain gradient.
// Out of range heights are clamped.
func HeightColor(h, maxHeight int) colorful.Color {
	v := float64(h) / float64(maxHeight)
	if v <= 0 {
		return gradient[0].color
	}
	for i := 1; i < len(gradient); i++ {
		lo, hi := gradient[i-1], gradient[i]
		if v <= hi.at {
			return lo.color.BlendRgb(hi.color, (v-lo.at)/(hi.at-lo.at)).Clamped()
		}
	}
	return gradient[len(gradient)-1].color
}

// Gray returns the luma of c as a neutral gray.
func Gray(c colorful.Color) colorful.Color {
	l := 0.299*c.R + 0.587*c.G + 0.114*c.B
	return colorful.Color{R: l, G: l, B: l}
}

// toTCell converts a colorful colour to a true-colour tcell colour.
func toTCell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
