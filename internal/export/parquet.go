// Package export writes encoded windows to files other tools can read.
package export

import (
	"fmt"
	"os"

	"github.com/janekbaraniewski/daytrend/internal/chart"
	"github.com/janekbaraniewski/daytrend/internal/core"
	"github.com/parquet-go/parquet-go"
)

// SequenceRow is one day of one metric. Missing days keep their row with a
// null Rating so gaps survive the export.
type SequenceRow struct {
	Metric string `parquet:"metric,snappy"`

	// Date is the day key, YYYY-MM-DD.
	Date string `parquet:"date,snappy"`

	// Index is the position in the window, 0 is the oldest day.
	Index int32 `parquet:"index,snappy"`

	// Week is Index / 7, the heat grid row the day is drawn in.
	Week int32 `parquet:"week,snappy"`

	Rating  *float64 `parquet:"rating,optional,snappy"`
	Present bool     `parquet:"present,snappy"`

	// Fill is the heat cell color, #rrggbb.
	Fill string `parquet:"fill,snappy"`
}

// Rows flattens every metric of enc, metric order first, oldest day first.
func Rows(enc chart.Encoding) []SequenceRow {
	rows := make([]SequenceRow, 0, len(enc.Metrics)*enc.Days)
	for _, m := range enc.Metrics {
		for i, p := range m.Sequence {
			row := SequenceRow{
				Metric:  string(m.Metric),
				Index:   int32(i),
				Week:    int32(i / chart.ChunkSize),
				Present: p.Present,
			}
			if i < len(enc.Dates) {
				row.Date = core.DateKey(enc.Dates[i])
			}
			if p.Present {
				v := p.Value
				row.Rating = &v
			}
			if i < len(m.Cells) {
				row.Fill = m.Cells[i].Hex()
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteParquet writes rows to a new Parquet file at path.
func WriteParquet(path string, rows []SequenceRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[SequenceRow](file)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("export: write parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("export: close parquet writer: %w", err)
	}
	return file.Close()
}
