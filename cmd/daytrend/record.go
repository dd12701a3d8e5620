package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/janekbaraniewski/daytrend/internal/config"
	"github.com/janekbaraniewski/daytrend/internal/core"
	"github.com/janekbaraniewski/daytrend/internal/store"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type recordOptions struct {
	date        string
	set         []string
	unset       []string
	replace     bool
	clear       bool
	interactive bool
}

func newRecordCommand(a *app) *cobra.Command {
	var opts recordOptions
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record ratings for a day",
		Long: `Record 1-10 ratings for one day. Ratings are merged into what is already
stored for that day unless --replace is given.

  daytrend record --set energy=7 --set nutrition=5
  daytrend record --date yesterday --interactive
  daytrend record --date 2026-10-01 --clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecord(cmd, a, opts)
		},
	}
	cmd.Flags().StringVar(&opts.date, "date", "today", "day to record: today, yesterday or YYYY-MM-DD")
	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "metric=rating, repeatable")
	cmd.Flags().StringArrayVar(&opts.unset, "unset", nil, "metric to remove from the day, repeatable")
	cmd.Flags().BoolVar(&opts.replace, "replace", false, "replace the whole day instead of merging")
	cmd.Flags().BoolVar(&opts.clear, "clear", false, "delete every rating for the day")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for each configured metric")
	cmd.MarkFlagsMutuallyExclusive("clear", "set")
	cmd.MarkFlagsMutuallyExclusive("clear", "interactive")
	return cmd
}

func runRecord(cmd *cobra.Command, a *app, opts recordOptions) error {
	day, err := a.parseDay(opts.date)
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if opts.clear {
		if err := st.Delete(ctx, day); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared %s\n", core.DateKey(day))
		return nil
	}

	sample := core.RawSample{Date: day, Ratings: map[core.MetricName]float64{}}
	if !opts.replace {
		existing, err := st.Get(ctx, day)
		switch {
		case err == nil:
			sample.Ratings = existing.Ratings
		case !errors.Is(err, store.ErrNotFound):
			return err
		}
	}

	if opts.interactive {
		ratings, err := promptRatings(a.cfg.Metrics, sample.Ratings, core.DateKey(day))
		if err != nil {
			return err
		}
		sample.Ratings = ratings
	}

	set, err := parseRatings(opts.set)
	if err != nil {
		return err
	}
	known := a.metricNames()
	for metric := range set {
		if !lo.Contains(known, metric) {
			return fmt.Errorf("unknown metric %q, configured: %s", metric, joinMetrics(known))
		}
	}
	for metric, v := range set {
		sample.Ratings[metric] = v
	}
	for _, name := range opts.unset {
		delete(sample.Ratings, normalizeMetric(name))
	}

	if !opts.interactive && len(set) == 0 && len(opts.unset) == 0 {
		return fmt.Errorf("nothing to record: pass --set metric=rating or --interactive")
	}

	if err := st.Put(ctx, sample); err != nil {
		return err
	}
	fmt.Fprintf(out, "Recorded %s: %s\n", core.DateKey(day), formatRatings(sample))
	return nil
}

func normalizeMetric(name string) core.MetricName {
	return core.MetricName(strings.ToLower(strings.TrimSpace(name)))
}

// parseRatings reads metric=rating pairs. Ratings must lie in 1..10.
func parseRatings(pairs []string) (map[core.MetricName]float64, error) {
	out := make(map[core.MetricName]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		metric := normalizeMetric(name)
		if !ok || metric == "" {
			return nil, fmt.Errorf("invalid rating %q, want metric=value", pair)
		}
		v, err := parseRating(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", metric, err)
		}
		out[metric] = v
	}
	return out, nil
}

func parseRating(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("rating %q is not a number", raw)
	}
	if v < core.RatingMin || v > core.RatingMax {
		return 0, fmt.Errorf("rating %g is outside %d-%d", v, core.RatingMin, core.RatingMax)
	}
	return v, nil
}

// promptRatings asks for every configured metric. Leaving a field empty
// records the metric as missing for the day.
func promptRatings(metrics []config.MetricConfig, current map[core.MetricName]float64, day string) (map[core.MetricName]float64, error) {
	inputs := make([]string, len(metrics))
	fields := make([]huh.Field, 0, len(metrics))
	for i, m := range metrics {
		if v, ok := current[core.MetricName(m.Name)]; ok {
			inputs[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		fields = append(fields, huh.NewInput().
			Title(m.Label).
			Description(fmt.Sprintf("%s, 1-10, leave empty to skip", day)).
			Placeholder("skip").
			Value(&inputs[i]).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return nil
				}
				_, err := parseRating(s)
				return err
			}))
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return nil, fmt.Errorf("reading ratings: %w", err)
	}

	out := make(map[core.MetricName]float64, len(current))
	for k, v := range current {
		out[k] = v
	}
	for i, m := range metrics {
		name := core.MetricName(m.Name)
		if strings.TrimSpace(inputs[i]) == "" {
			delete(out, name)
			continue
		}
		v, _ := parseRating(inputs[i])
		out[name] = v
	}
	return out, nil
}

func formatRatings(s core.RawSample) string {
	if len(s.Ratings) == 0 {
		return "(no ratings)"
	}
	return strings.Join(lo.Map(s.Metrics(), func(m core.MetricName, _ int) string {
		return fmt.Sprintf("%s=%s", m, strconv.FormatFloat(s.Ratings[m], 'f', -1, 64))
	}), " ")
}

func joinMetrics(names []core.MetricName) string {
	return strings.Join(lo.Map(names, func(m core.MetricName, _ int) string { return string(m) }), ", ")
}
