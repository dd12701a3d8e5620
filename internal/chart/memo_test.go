package chart

import (
	"sync"
	"testing"
	"time"

	"github.com/janekbaraniewski/daytrend/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var memoToday = time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)

func testInput() Input {
	samples := []core.RawSample{
		{Date: memoToday, Ratings: map[core.MetricName]float64{core.MetricEnergy: 7}},
		{Date: core.AddDays(memoToday, -1), Ratings: map[core.MetricName]float64{core.MetricNutrition: 4}},
		{Date: core.AddDays(memoToday, -5), Ratings: map[core.MetricName]float64{
			core.MetricEnergy:       2,
			core.MetricSatisfaction: 9,
		}},
	}
	return Input{
		Samples: core.IndexSamples(samples),
		Today:   memoToday.Add(15 * time.Hour),
		Days:    30,
		Frame:   Frame{Width: 290, Height: 80, Padding: Padding{Top: 4, Bottom: 4}},
		Metrics: []MetricSpec{
			{Name: core.MetricNutrition, Label: "Nutrition", Family: Family{Hue: 30, Saturation: 60}},
			{Name: core.MetricEnergy, Label: "Energy", Family: Family{Hue: 200, Saturation: 55}},
			{Name: core.MetricSatisfaction, Label: "Satisfaction", Family: Family{Hue: 280, Saturation: 45}},
		},
	}
}

func TestEncode_Pipeline(t *testing.T) {
	enc := Encode(testInput())

	assert.Equal(t, 30, enc.Days)
	assert.Len(t, enc.Dates, 30)
	assert.Equal(t, 3, enc.Coverage)
	assert.Equal(t, 2, enc.CurrentStreak)
	require.Len(t, enc.Metrics, 3)

	energy, ok := enc.Metric(core.MetricEnergy)
	require.True(t, ok)
	assert.Len(t, energy.Sequence, 30)
	assert.Equal(t, []core.Segment{{Start: 24, End: 24}, {Start: 29, End: 29}}, energy.Segments)
	assert.Equal(t, 2, energy.Line.Count(OpMoveTo))
	assert.Zero(t, energy.Line.Count(OpLineTo))
	assert.Len(t, energy.Cells, 30)
	assert.Len(t, energy.WeekCells, 5)
	assert.Len(t, energy.WeekCells[4], 2)
	assert.Len(t, energy.Legend, 5)
	assert.Equal(t, 4.5, energy.Summary.Average)

	_, ok = enc.Metric("sleep")
	assert.False(t, ok)
}

func TestEncode_EmptyInput(t *testing.T) {
	in := testInput()
	in.Samples = nil
	enc := Encode(in)

	assert.Zero(t, enc.Coverage)
	for _, m := range enc.Metrics {
		assert.Len(t, m.Sequence, 30)
		assert.Empty(t, m.Segments)
		assert.Empty(t, m.Line)
		assert.Empty(t, m.Area)
		for _, c := range m.Cells {
			assert.True(t, c.Missing)
		}
	}
}

func TestMemo_CachesByFingerprint(t *testing.T) {
	m := NewMemo(4)
	in := testInput()

	first := m.Encode(in)
	second := m.Encode(in)
	assert.Equal(t, Encode(in), first)
	assert.Equal(t, first, second)

	hits, misses := m.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	changed := testInput()
	changed.Samples["2026-10-15"] = core.RawSample{
		Date:    memoToday,
		Ratings: map[core.MetricName]float64{core.MetricEnergy: 3},
	}
	third := m.Encode(changed)
	assert.NotEqual(t, first.Metrics[1].Sequence, third.Metrics[1].Sequence)

	_, misses = m.Stats()
	assert.Equal(t, 2, misses)
}

func TestMemo_EvictsOldest(t *testing.T) {
	m := NewMemo(2)
	for days := 5; days <= 7; days++ {
		in := testInput()
		in.Days = days
		m.Encode(in)
	}
	assert.Equal(t, 2, m.Len())
}

func TestMemo_ConcurrentCallersAgree(t *testing.T) {
	m := NewMemo(0)
	in := testInput()
	want := Encode(in)

	var wg sync.WaitGroup
	results := make([]Encoding, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = m.Encode(in)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 1, m.Len())
}

func TestFingerprint_StableAndSensitive(t *testing.T) {
	a := testInput()
	b := testInput()
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	b.Today = b.Today.Add(2 * time.Hour)
	assert.Equal(t, Fingerprint(a), Fingerprint(b), "same calendar day shares a fingerprint")

	b.Frame.Width = 300
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))

	c := testInput()
	c.Metrics[0].Family.Hue = 31
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
}
