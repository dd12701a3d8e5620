package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/janekbaraniewski/daytrend/internal/chart"
	"github.com/janekbaraniewski/daytrend/internal/config"
	"github.com/janekbaraniewski/daytrend/internal/tui"
	"github.com/spf13/cobra"
)

func newStatsCommand(a *app) *cobra.Command {
	var window, today string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print per-metric statistics for a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			enc, err := a.encodeWindow(cmd, st, window, today)
			if err != nil {
				return err
			}
			totals, err := st.Stats(cmd.Context())
			if err != nil {
				return err
			}

			if err := tui.LoadThemes(config.ConfigDir()); err != nil {
				log.Printf("themes: %v", err)
			}
			tui.SetThemeByName(a.cfg.Theme)

			var sb strings.Builder
			fmt.Fprintf(&sb, "%s (%s)\n", chart.DateRangeCaption(enc), chart.CoverageCaption(enc))
			sb.WriteString(tui.RenderStatsTable(enc))
			sb.WriteString("\n")
			fmt.Fprintf(&sb, "Current streak: %d  Longest streak: %d\n", enc.CurrentStreak, enc.LongestStreak)
			if totals.Days > 0 {
				fmt.Fprintf(&sb, "History: %d days, %d ratings, %s to %s\n", totals.Days, totals.Ratings, totals.First, totals.Last)
			} else {
				sb.WriteString("History: empty\n")
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), sb.String())
			return err
		},
	}
	cmd.Flags().StringVarP(&window, "window", "w", "", "window: 7d, 14d or 30d (default from settings)")
	cmd.Flags().StringVar(&today, "today", "today", "last day of the window")
	return cmd
}
