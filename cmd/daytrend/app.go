package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/janekbaraniewski/daytrend/internal/config"
	"github.com/janekbaraniewski/daytrend/internal/core"
	"github.com/janekbaraniewski/daytrend/internal/store"
	"github.com/janekbaraniewski/daytrend/internal/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs: settings, the resolved database
// path and the clock.
type app struct {
	cfg    config.Config
	dbPath string
	now    func() time.Time
}

func newApp(cfg config.Config) *app {
	return &app{cfg: cfg, dbPath: cfg.DBPath, now: time.Now}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "daytrend",
		Short:         "daytrend tracks daily 1-10 ratings and charts their trends in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd.Context(), a)
		},
	}
	root.PersistentFlags().StringVar(&a.dbPath, "db", a.dbPath, "path to the ratings database (default $XDG_STATE_HOME/daytrend/daytrend.db)")

	root.AddCommand(
		newRecordCommand(a),
		newImportCommand(a),
		newExportCommand(a),
		newStatsCommand(a),
		newSeedCommand(a),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			line := "daytrend " + version.String()
			if version.Release() == "" {
				line += " (development build)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		},
	}
}

func (a *app) resolveDBPath() (string, error) {
	if p := strings.TrimSpace(a.dbPath); p != "" {
		return p, nil
	}
	return store.DefaultDBPath()
}

func (a *app) openStore() (*store.Store, error) {
	path, err := a.resolveDBPath()
	if err != nil {
		return nil, err
	}
	return store.OpenStore(path)
}

// parseDay accepts "today", "yesterday" or a YYYY-MM-DD key.
func (a *app) parseDay(s string) (time.Time, error) {
	today := core.StartOfDay(a.now())
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return core.AddDays(today, -1), nil
	}
	day, err := core.ParseDateKey(strings.TrimSpace(s), today.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return day, nil
}

// parseWindow resolves a --window flag, falling back to the configured one.
func (a *app) parseWindow(s string) (core.TimeWindow, error) {
	if strings.TrimSpace(s) == "" {
		return a.cfg.TimeWindow(), nil
	}
	tw := core.TimeWindow(strings.TrimSpace(s))
	if !lo.Contains(core.ValidTimeWindows, tw) {
		return "", fmt.Errorf("invalid window %q, want one of %s", s,
			strings.Join(lo.Map(core.ValidTimeWindows, func(w core.TimeWindow, _ int) string { return string(w) }), ", "))
	}
	return tw, nil
}

// maxWindowDays is the longest selectable window; the dashboard loads this
// much so switching windows needs no reload.
func maxWindowDays() int {
	return lo.Max(lo.Map(core.ValidTimeWindows, func(w core.TimeWindow, _ int) int { return w.Days() }))
}

func (a *app) metricNames() []core.MetricName {
	return lo.Map(a.cfg.Metrics, func(m config.MetricConfig, _ int) core.MetricName { return core.MetricName(m.Name) })
}
