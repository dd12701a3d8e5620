package core

import "time"

// Point is one day of one metric. The zero value is a missing day.
type Point struct {
	Value   float64
	Present bool
}

// Missing is the explicit marker for an absent day or metric.
var Missing = Point{}

func Present(v float64) Point {
	return Point{Value: v, Present: true}
}

// Sequence holds one metric over a window, oldest day first. Its length is
// always the window length; absent days are Missing, never dropped.
type Sequence []Point

func (s Sequence) Present(i int) bool {
	return i >= 0 && i < len(s) && s[i].Present
}

func (s Sequence) PresentCount() int {
	n := 0
	for _, p := range s {
		if p.Present {
			n++
		}
	}
	return n
}

// Values returns the present values in order, skipping gaps.
func (s Sequence) Values() []float64 {
	out := make([]float64, 0, len(s))
	for _, p := range s {
		if p.Present {
			out = append(out, p.Value)
		}
	}
	return out
}

// MetricSequence pairs a sequence with the metric it was built for.
type MetricSequence struct {
	Metric   MetricName
	Sequence Sequence
}

// BuildSequence lays out metric over the days-long window ending on today.
// Element i is the day today-(days-1-i). Days without a sample, or samples
// without the metric, become Missing. Nothing is interpolated or carried
// forward. A non-positive days yields an empty sequence.
func BuildSequence(samples map[string]RawSample, today time.Time, days int, metric MetricName) Sequence {
	if days < 0 {
		days = 0
	}
	seq := make(Sequence, days)
	if days == 0 || len(samples) == 0 {
		return seq
	}

	for i := 0; i < days; i++ {
		day := AddDays(today, -(days - 1 - i))
		sample, ok := samples[DateKey(day)]
		if !ok {
			continue
		}
		if v, ok := sample.Ratings[metric]; ok {
			seq[i] = Present(v)
		}
	}
	return seq
}

// BuildSequences builds one sequence per metric, in the given order.
func BuildSequences(samples map[string]RawSample, today time.Time, days int, metrics []MetricName) []MetricSequence {
	out := make([]MetricSequence, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, MetricSequence{
			Metric:   m,
			Sequence: BuildSequence(samples, today, days, m),
		})
	}
	return out
}

// WindowDates returns the calendar days covered by a days-long window ending
// on today, oldest first.
func WindowDates(today time.Time, days int) []time.Time {
	if days <= 0 {
		return nil
	}
	out := make([]time.Time, days)
	for i := range out {
		out[i] = AddDays(today, -(days - 1 - i))
	}
	return out
}
