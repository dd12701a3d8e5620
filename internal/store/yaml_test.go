package store

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/janekbaraniewski/daytrend/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeYAML(t *testing.T) {
	in := `
- date: 2026-10-01
  nutrition: 7
  Energy: 5
- date: "2026-10-03"
  satisfaction: ~
  energy: 12
- date: 2026-10-04
`
	got, err := DecodeYAML(strings.NewReader(in), time.UTC)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "2026-10-01", core.DateKey(got[0].Date))
	assert.Equal(t, map[core.MetricName]float64{core.MetricNutrition: 7, core.MetricEnergy: 5}, got[0].Ratings)
	assert.Equal(t, map[core.MetricName]float64{core.MetricEnergy: 12}, got[1].Ratings, "null is missing, out of range kept")
	assert.Empty(t, got[2].Ratings)
}

func TestDecodeYAML_Errors(t *testing.T) {
	_, err := DecodeYAML(strings.NewReader("- date: yesterday\n  energy: 3\n"), time.UTC)
	assert.ErrorContains(t, err, "bad date")

	_, err = DecodeYAML(strings.NewReader("- date: 2026-10-01\n  energy: high\n"), time.UTC)
	assert.Error(t, err)

	got, err := DecodeYAML(strings.NewReader(""), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEncodeYAML_RoundTrip(t *testing.T) {
	samples := []core.RawSample{
		{Date: time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC), Ratings: map[core.MetricName]float64{core.MetricEnergy: 3}},
		{Date: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), Ratings: map[core.MetricName]float64{core.MetricNutrition: 8.5}},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, samples))

	got, err := DecodeYAML(&buf, time.UTC)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, samples[1], got[0], "output is oldest first")
	assert.Equal(t, samples[0], got[1])
}
