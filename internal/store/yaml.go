package store

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/janekbaraniewski/daytrend/internal/core"
	"gopkg.in/yaml.v3"
)

// yamlDay is one entry of an import file: a "date" key in YYYY-MM-DD form
// plus one key per metric. A null rating is treated the same as leaving the
// metric out.
type yamlDay struct {
	Date    string              `yaml:"date"`
	Ratings map[string]*float64 `yaml:",inline"`
}

// DecodeYAML reads a list of daily records. Dates are interpreted in loc.
func DecodeYAML(r io.Reader, loc *time.Location) ([]core.RawSample, error) {
	var days []yamlDay
	if err := yaml.NewDecoder(r).Decode(&days); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: decode yaml: %w", err)
	}

	out := make([]core.RawSample, 0, len(days))
	for i, d := range days {
		date, err := core.ParseDateKey(strings.TrimSpace(d.Date), loc)
		if err != nil {
			return nil, fmt.Errorf("store: entry %d: bad date %q: %w", i+1, d.Date, err)
		}
		sample := core.RawSample{Date: date, Ratings: make(map[core.MetricName]float64, len(d.Ratings))}
		for name, v := range d.Ratings {
			if v == nil {
				continue
			}
			metric := core.MetricName(strings.ToLower(strings.TrimSpace(name)))
			sample.Ratings[metric] = *v
		}
		out = append(out, sample)
	}
	return out, nil
}

// EncodeYAML writes samples in the format DecodeYAML reads, oldest first.
func EncodeYAML(w io.Writer, samples []core.RawSample) error {
	sorted := append([]core.RawSample(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	days := make([]yamlDay, 0, len(sorted))
	for _, s := range sorted {
		d := yamlDay{Date: core.DateKey(s.Date), Ratings: make(map[string]*float64, len(s.Ratings))}
		for metric, v := range s.Ratings {
			v := v
			d.Ratings[string(metric)] = &v
		}
		days = append(days, d)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(days); err != nil {
		return fmt.Errorf("store: encode yaml: %w", err)
	}
	return enc.Close()
}
