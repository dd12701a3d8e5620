package chart

import (
	"time"

	"github.com/janekbaraniewski/daytrend/internal/core"
)

// MetricSpec names a metric and the color family it is drawn with.
type MetricSpec struct {
	Name   core.MetricName `json:"name"`
	Label  string          `json:"label"`
	Family Family          `json:"family"`
}

// Input is the full snapshot one rendering pass is computed from.
type Input struct {
	Samples map[string]core.RawSample
	Today   time.Time
	Days    int
	Metrics []MetricSpec
	Frame   Frame
}

// MetricEncoding is everything the renderers need for one metric.
type MetricEncoding struct {
	Metric    core.MetricName
	Label     string
	Family    Family
	Sequence  core.Sequence
	Segments  []core.Segment
	Line      Path
	Area      Path
	Cells     []Color
	Weeks     []core.Sequence
	WeekCells [][]Color
	Legend    []Swatch
	Summary   core.Summary
}

// Encoding is the result of one pass. Values are shared with the memo cache
// and must be treated as read-only.
type Encoding struct {
	Today         time.Time
	Days          int
	Dates         []time.Time
	Frame         Frame
	Metrics       []MetricEncoding
	Coverage      int
	LongestStreak int
	CurrentStreak int
}

// Metric returns the encoding for name, if it was part of the input.
func (e Encoding) Metric(name core.MetricName) (MetricEncoding, bool) {
	for _, m := range e.Metrics {
		if m.Metric == name {
			return m, true
		}
	}
	return MetricEncoding{}, false
}

// Encode runs the whole pipeline: sequences, segments, line and area paths,
// heat cells, week rows and coverage. It is pure and deterministic.
func Encode(in Input) Encoding {
	days := max(in.Days, 0)
	today := core.StartOfDay(in.Today)

	enc := Encoding{
		Today:   today,
		Days:    days,
		Dates:   core.WindowDates(today, days),
		Frame:   in.Frame,
		Metrics: make([]MetricEncoding, 0, len(in.Metrics)),
	}

	seqs := make([]core.Sequence, 0, len(in.Metrics))
	for _, spec := range in.Metrics {
		seq := core.BuildSequence(in.Samples, today, days, spec.Name)
		seqs = append(seqs, seq)

		weeks := WeekChunks(seq)
		weekCells := make([][]Color, len(weeks))
		for i, w := range weeks {
			weekCells[i] = MapSequence(w, spec.Family)
		}

		label := spec.Label
		if label == "" {
			label = string(spec.Name)
		}

		enc.Metrics = append(enc.Metrics, MetricEncoding{
			Metric:    spec.Name,
			Label:     label,
			Family:    spec.Family,
			Sequence:  seq,
			Segments:  core.Segments(seq),
			Line:      LinePath(seq, in.Frame),
			Area:      AreaPath(seq, in.Frame),
			Cells:     MapSequence(seq, spec.Family),
			Weeks:     weeks,
			WeekCells: weekCells,
			Legend:    Legend(spec.Family),
			Summary:   core.Summarize(seq),
		})
	}

	enc.Coverage = core.Coverage(seqs...)
	enc.LongestStreak = core.LongestStreak(seqs...)
	enc.CurrentStreak = core.CurrentStreak(seqs...)
	return enc
}
