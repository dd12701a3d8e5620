package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/janekbaraniewski/daytrend/internal/chart"
	"github.com/janekbaraniewski/daytrend/internal/core"
	"github.com/samber/lo"
)

type jsonSegment struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonMetric struct {
	Metric   string         `json:"metric"`
	Label    string         `json:"label"`
	Family   chart.Family   `json:"family"`
	Values   []*float64     `json:"values"`
	Segments []jsonSegment  `json:"segments"`
	Line     string         `json:"line"`
	Area     string         `json:"area"`
	Cells    []string       `json:"cells"`
	Weeks    [][]string     `json:"weeks"`
	Legend   []chart.Swatch `json:"legend"`
	Average  *float64       `json:"average,omitempty"`
}

type jsonDocument struct {
	Today         string       `json:"today"`
	Days          int          `json:"days"`
	Dates         []string     `json:"dates"`
	Frame         chart.Frame  `json:"frame"`
	Coverage      int          `json:"coverage"`
	LongestStreak int          `json:"longest_streak"`
	CurrentStreak int          `json:"current_streak"`
	Metrics       []jsonMetric `json:"metrics"`
}

// WriteJSON dumps the geometry of enc: SVG path strings, cell colors and
// coverage. Missing days are null in values.
func WriteJSON(w io.Writer, enc chart.Encoding) error {
	doc := jsonDocument{
		Today:         core.DateKey(enc.Today),
		Days:          enc.Days,
		Dates:         lo.Map(enc.Dates, func(d time.Time, _ int) string { return core.DateKey(d) }),
		Frame:         enc.Frame,
		Coverage:      enc.Coverage,
		LongestStreak: enc.LongestStreak,
		CurrentStreak: enc.CurrentStreak,
		Metrics:       make([]jsonMetric, 0, len(enc.Metrics)),
	}
	for _, m := range enc.Metrics {
		jm := jsonMetric{
			Metric: string(m.Metric),
			Label:  m.Label,
			Family: m.Family,
			Values: lo.Map(m.Sequence, func(p core.Point, _ int) *float64 {
				if !p.Present {
					return nil
				}
				v := p.Value
				return &v
			}),
			Segments: lo.Map(m.Segments, func(s core.Segment, _ int) jsonSegment {
				return jsonSegment{Start: s.Start, End: s.End}
			}),
			Line:   m.Line.SVG(),
			Area:   m.Area.SVG(),
			Cells:  lo.Map(m.Cells, func(c chart.Color, _ int) string { return c.Hex() }),
			Legend: m.Legend,
		}
		jm.Weeks = lo.Map(m.WeekCells, func(row []chart.Color, _ int) []string {
			return lo.Map(row, func(c chart.Color, _ int) string { return c.Hex() })
		})
		if m.Summary.Count > 0 {
			avg := m.Summary.Average
			jm.Average = &avg
		}
		doc.Metrics = append(doc.Metrics, jm)
	}

	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	if err := e.Encode(doc); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}
