package chart

import (
	"strings"
	"testing"

	"github.com/janekbaraniewski/daytrend/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLightness_BoundsAndMonotonic(t *testing.T) {
	assert.Equal(t, 95.0, Lightness(1))
	assert.Equal(t, 36.5, Lightness(10))

	for v := 2; v <= 10; v++ {
		assert.Less(t, Lightness(float64(v)), Lightness(float64(v-1)), "lightness(%d) should be darker than lightness(%d)", v, v-1)
	}
}

func TestSaturation_ScenarioD(t *testing.T) {
	fam := Family{Hue: 200, Saturation: 55}
	assert.Equal(t, 73.0, MapValue(core.Present(10), fam).Saturation)
	assert.Equal(t, 55.0, MapValue(core.Present(1), fam).Saturation)
}

func TestMapValue_ClampsAndRounds(t *testing.T) {
	fam := Family{Hue: 30, Saturation: 60}
	tests := []struct {
		in   float64
		want int
	}{
		{-4, 1},
		{0.2, 1},
		{5.5, 6},
		{5.49, 5},
		{12, 10},
	}
	for _, tt := range tests {
		got := MapValue(core.Present(tt.in), fam)
		assert.Equal(t, Lightness(float64(tt.want)), got.Lightness, "value %v", tt.in)
		assert.Equal(t, Saturation(float64(tt.want), 60), got.Saturation, "value %v", tt.in)
	}
}

func TestMapValue_MissingAndComputedStyles(t *testing.T) {
	fam := Family{Hue: 280, Saturation: 40}

	missing := MapValue(core.Missing, fam)
	assert.True(t, missing.Missing)
	assert.Equal(t, MissingFill, missing.Fill)
	assert.Equal(t, MissingBorder, missing.Border)
	assert.Equal(t, 1, missing.BorderWidth)

	present := MapValue(core.Present(7), fam)
	assert.False(t, present.Missing)
	assert.Empty(t, present.Border)
	assert.Zero(t, present.BorderWidth)
	assert.Equal(t, 280.0, present.Hue)
	assert.True(t, strings.HasPrefix(present.Fill, "#"))
	assert.Len(t, present.Fill, 7)
}

func TestColorHex_Grayscale(t *testing.T) {
	c := MapValue(core.Present(1), Family{Hue: 0, Saturation: 0})
	assert.Equal(t, "#f2f2f2", c.Hex())
	assert.Equal(t, "hsl(0, 0%, 95%)", c.CSS())
}

func TestLegend_UsesCellMapping(t *testing.T) {
	fam := Family{Hue: 120, Saturation: 50}
	legend := Legend(fam)
	require.Len(t, legend, 5)
	for i, sw := range legend {
		assert.Equal(t, LegendValues[i], sw.Value)
		assert.Equal(t, MapValue(core.Present(float64(sw.Value)), fam), sw.Color)
	}
}

func TestMapSequence(t *testing.T) {
	cells := MapSequence(seq(3, 0, 9), Family{Hue: 10, Saturation: 50})
	require.Len(t, cells, 3)
	assert.False(t, cells[0].Missing)
	assert.True(t, cells[1].Missing)
	assert.Greater(t, cells[0].Lightness, cells[2].Lightness)
}
