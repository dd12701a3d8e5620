package chart

import (
	"fmt"
	"math"

	"github.com/janekbaraniewski/daytrend/internal/core"
	"github.com/lucasb-eyer/go-colorful"
)

// Family is the hue and base saturation (percent) a metric is drawn in.
type Family struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
}

const (
	MissingFill        = "#EEEEEE"
	MissingBorder      = "#D0D0D0"
	MissingBorderWidth = 1

	lightnessTop  = 95.0
	lightnessStep = 6.5
	saturationInc = 2.0
)

// LegendValues are the ratings shown as legend swatches.
var LegendValues = []int{2, 4, 6, 8, 10}

// Color describes how one heat cell or legend swatch is painted. Computed
// colors never carry a border; Missing cells always do.
type Color struct {
	Missing     bool    `json:"missing,omitempty"`
	Hue         float64 `json:"hue"`
	Saturation  float64 `json:"saturation"`
	Lightness   float64 `json:"lightness"`
	Fill        string  `json:"fill"`
	Border      string  `json:"border,omitempty"`
	BorderWidth int     `json:"border_width,omitempty"`
}

func MissingColor() Color {
	return Color{
		Missing:     true,
		Fill:        MissingFill,
		Border:      MissingBorder,
		BorderWidth: MissingBorderWidth,
	}
}

// Level clamps v into the rating range and rounds to the nearest integer.
func Level(v float64) int {
	return int(math.Round(core.ClampRating(v)))
}

// Lightness is 95% at rating 1 and falls 6.5 points per step to 36.5% at 10.
func Lightness(v float64) float64 {
	return lightnessTop - float64(Level(v)-1)*lightnessStep
}

// Saturation rises 2 points per rating step above the family base.
func Saturation(v, base float64) float64 {
	return base + float64(Level(v)-1)*saturationInc
}

// MapValue colors a single day. Missing days get the neutral bordered style.
func MapValue(p core.Point, fam Family) Color {
	if !p.Present {
		return MissingColor()
	}
	c := Color{
		Hue:        fam.Hue,
		Saturation: Saturation(p.Value, fam.Saturation),
		Lightness:  Lightness(p.Value),
	}
	c.Fill = hslHex(c.Hue, c.Saturation, c.Lightness)
	return c
}

// Hex returns the fill as #rrggbb.
func (c Color) Hex() string {
	if c.Fill != "" {
		return c.Fill
	}
	if c.Missing {
		return MissingFill
	}
	return hslHex(c.Hue, c.Saturation, c.Lightness)
}

// CSS returns the computed color as an hsl() expression, or the missing fill.
func (c Color) CSS() string {
	if c.Missing {
		return MissingFill
	}
	return fmt.Sprintf("hsl(%g, %g%%, %g%%)", c.Hue, c.Saturation, c.Lightness)
}

func hslHex(h, s, l float64) string {
	return colorful.Hsl(h, s/100, l/100).Clamped().Hex()
}

// Swatch is one legend entry.
type Swatch struct {
	Value int   `json:"value"`
	Color Color `json:"color"`
}

// Legend maps LegendValues through the same function used for cells.
func Legend(fam Family) []Swatch {
	out := make([]Swatch, 0, len(LegendValues))
	for _, v := range LegendValues {
		out = append(out, Swatch{Value: v, Color: MapValue(core.Present(float64(v)), fam)})
	}
	return out
}

// MapSequence colors every day of seq.
func MapSequence(seq core.Sequence, fam Family) []Color {
	out := make([]Color, len(seq))
	for i, p := range seq {
		out[i] = MapValue(p, fam)
	}
	return out
}
