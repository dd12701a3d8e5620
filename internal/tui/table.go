package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/daytrend/internal/chart"
	"github.com/samber/lo"
)

var statsColumns = []table.Column{
	{Title: "Metric", Width: 14},
	{Title: "Days", Width: 6},
	{Title: "Avg", Width: 6},
	{Title: "Min", Width: 5},
	{Title: "Max", Width: 5},
	{Title: "Latest", Width: 7},
}

// StatsRows returns one table row per metric of enc. Metrics with no
// ratings in the window show dashes.
func StatsRows(enc chart.Encoding) []table.Row {
	return lo.Map(enc.Metrics, func(m chart.MetricEncoding, _ int) table.Row {
		s := m.Summary
		days := fmt.Sprintf("%d/%d", s.Count, len(m.Sequence))
		if s.Count == 0 {
			return table.Row{m.Label, days, "–", "–", "–", "–"}
		}
		latest := "–"
		if s.LatestPresent {
			latest = formatRating(s.Latest)
		}
		return table.Row{
			m.Label,
			days,
			fmt.Sprintf("%.1f", s.Average),
			formatRating(s.Min),
			formatRating(s.Max),
			latest,
		}
	})
}

// RenderStatsTable renders the per-metric summary as a static table.
func RenderStatsTable(enc chart.Encoding) string {
	rows := StatsRows(enc)
	t := table.New(
		table.WithColumns(statsColumns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSurface1).
		BorderBottom(true).
		Inherit(headerStyle)
	s.Cell = s.Cell.Foreground(colorText)
	s.Selected = s.Cell
	t.SetStyles(s)
	return t.View()
}
