package chart

import (
	"math"

	"github.com/janekbaraniewski/daytrend/internal/core"
)

// Padding is the vertical inset of the plot area inside a Frame.
type Padding struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Frame is the pixel box a trend chart is drawn into. Y grows downward.
type Frame struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding Padding `json:"padding"`
}

func (f Frame) PlotHeight() float64 {
	return f.Height - f.Padding.Top - f.Padding.Bottom
}

// Baseline is the y of the bottom edge of the plot area.
func (f Frame) Baseline() float64 {
	return round2(f.Padding.Top + f.PlotHeight())
}

// X maps index i of an n-long sequence to its horizontal position. Index 0
// sits at 0 and index n-1 at Width; a single-element window sits at 0.
func (f Frame) X(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	step := f.Width / float64(n-1)
	return round2(float64(i) * step)
}

// Y maps a rating to its vertical position: 10 at the top of the plot area,
// 1 at the bottom. Out-of-range ratings are clamped first.
func (f Frame) Y(v float64) float64 {
	v = core.ClampRating(v)
	frac := (v - core.RatingMin) / (core.RatingMax - core.RatingMin)
	return round2(f.Padding.Top + f.PlotHeight()*(1-frac))
}

// round2 bounds output size; it is applied after the segment is chosen so it
// never moves a point between segments.
func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0 // avoid -0 in output
	}
	return r
}
