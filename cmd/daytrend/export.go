package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/janekbaraniewski/daytrend/internal/chart"
	"github.com/janekbaraniewski/daytrend/internal/export"
	"github.com/janekbaraniewski/daytrend/internal/store"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const defaultParquetPath = "daytrend.parquet"

var exportFormats = []string{"svg", "json", "parquet", "yaml"}

type exportOptions struct {
	window string
	today  string
	out    string
}

func newExportCommand(a *app) *cobra.Command {
	var opts exportOptions
	cmd := &cobra.Command{
		Use:       "export <svg|json|parquet|yaml>",
		Short:     "Export the current window or the full history",
		ValidArgs: exportFormats,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, a, strings.ToLower(args[0]), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.window, "window", "w", "", "window to export: 7d, 14d or 30d (default from settings)")
	cmd.Flags().StringVar(&opts.today, "today", "today", "last day of the window")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default stdout; parquet defaults to "+defaultParquetPath+")")
	return cmd
}

func runExport(cmd *cobra.Command, a *app, format string, opts exportOptions) error {
	if !lo.Contains(exportFormats, format) {
		return fmt.Errorf("unknown format %q", format)
	}
	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	ctx := cmd.Context()

	if format == "yaml" {
		all, err := st.LoadAll(ctx)
		if err != nil {
			return err
		}
		return writeOutput(cmd, opts.out, func(w io.Writer) error {
			return store.EncodeYAML(w, lo.Values(all))
		})
	}

	enc, err := a.encodeWindow(cmd, st, opts.window, opts.today)
	if err != nil {
		return err
	}

	switch format {
	case "svg":
		return writeOutput(cmd, opts.out, func(w io.Writer) error {
			return chart.WriteSVG(w, enc, chart.DefaultSVGOptions())
		})
	case "json":
		return writeOutput(cmd, opts.out, func(w io.Writer) error {
			return export.WriteJSON(w, enc)
		})
	default:
		path := opts.out
		if path == "" || path == "-" {
			path = defaultParquetPath
		}
		rows := export.Rows(enc)
		if err := export.WriteParquet(path, rows); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(rows), path)
		return nil
	}
}

// encodeWindow loads the requested window and runs it through the encoder.
func (a *app) encodeWindow(cmd *cobra.Command, st *store.Store, window, today string) (chart.Encoding, error) {
	tw, err := a.parseWindow(window)
	if err != nil {
		return chart.Encoding{}, err
	}
	day, err := a.parseDay(today)
	if err != nil {
		return chart.Encoding{}, err
	}
	samples, err := st.LoadWindow(cmd.Context(), day, tw.Days())
	if err != nil {
		return chart.Encoding{}, err
	}
	return chart.Encode(chart.Input{
		Samples: samples,
		Today:   day,
		Days:    tw.Days(),
		Metrics: a.cfg.MetricSpecs(),
		Frame:   a.cfg.Frame(),
	}), nil
}

func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
