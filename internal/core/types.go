package core

import (
	"math"
	"sort"
	"time"
)

// MetricName identifies one tracked daily rating.
type MetricName string

const (
	MetricNutrition    MetricName = "nutrition"
	MetricEnergy       MetricName = "energy"
	MetricSatisfaction MetricName = "satisfaction"
)

// DefaultMetrics is the built-in metric set in display order.
var DefaultMetrics = []MetricName{
	MetricNutrition,
	MetricEnergy,
	MetricSatisfaction,
}

const (
	RatingMin = 1
	RatingMax = 10
)

const dateKeyLayout = "2006-01-02"

// ClampRating bounds v to [RatingMin, RatingMax]. NaN maps to RatingMin.
func ClampRating(v float64) float64 {
	if math.IsNaN(v) || v < RatingMin {
		return RatingMin
	}
	if v > RatingMax {
		return RatingMax
	}
	return v
}

// RawSample is one day of user-entered ratings. A metric absent from Ratings
// was not recorded that day. Values are stored as entered, never clamped.
type RawSample struct {
	Date    time.Time              `json:"date"`
	Ratings map[MetricName]float64 `json:"ratings,omitempty"`
}

func (s RawSample) Rating(metric MetricName) (float64, bool) {
	v, ok := s.Ratings[metric]
	return v, ok
}

// Metrics returns the recorded metric names sorted alphabetically.
func (s RawSample) Metrics() []MetricName {
	out := make([]MetricName, 0, len(s.Ratings))
	for m := range s.Ratings {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DateKey formats t as a day key in t's own location.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// ParseDateKey parses a "2006-01-02" key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(dateKeyLayout, key, loc)
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves t by n calendar days, keeping wall-clock midnight across DST.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// IndexSamples keys samples by day. When two samples share a day the later
// one in the slice replaces the earlier one.
func IndexSamples(samples []RawSample) map[string]RawSample {
	out := make(map[string]RawSample, len(samples))
	for _, s := range samples {
		out[DateKey(s.Date)] = s
	}
	return out
}
