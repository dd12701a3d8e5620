package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/janekbaraniewski/daytrend/internal/chart"
	"github.com/janekbaraniewski/daytrend/internal/config"
	"github.com/janekbaraniewski/daytrend/internal/core"
	"github.com/samber/lo"
)

const (
	minWidth  = 40
	minHeight = 12
)

// SamplesMsg delivers the records for the longest window ending on Today.
type SamplesMsg struct {
	Samples map[string]core.RawSample
	Today   time.Time
}

// ErrMsg reports a failed load.
type ErrMsg struct{ Err error }

type tickMsg time.Time

type persistedMsg struct {
	what string
	err  error
}

type Model struct {
	metrics []chart.MetricSpec
	frame   chart.Frame
	window  core.TimeWindow
	memo    *chart.Memo

	samples map[string]core.RawSample
	today   time.Time
	hasData bool

	selected   int
	refreshing bool
	status     string
	err        error

	help   help.Model
	width  int
	height int

	refreshEvery  time.Duration
	onRefresh     func()
	persistTheme  func(string) error
	persistWindow func(core.TimeWindow) error
}

func NewModel(metrics []chart.MetricSpec, frame chart.Frame, window core.TimeWindow) Model {
	return Model{
		metrics:       metrics,
		frame:         frame,
		window:        window,
		memo:          chart.NewMemo(0),
		help:          help.New(),
		persistTheme:  config.SaveTheme,
		persistWindow: config.SaveWindow,
	}
}

// SetOnRefresh sets the callback run on manual and periodic refreshes. The
// callback is expected to deliver a SamplesMsg to the program.
func (m *Model) SetOnRefresh(fn func()) {
	m.onRefresh = fn
}

// SetRefreshInterval enables periodic refreshes; zero disables them.
func (m *Model) SetRefreshInterval(d time.Duration) {
	m.refreshEvery = d
}

func (m Model) tickCmd() tea.Cmd {
	if m.refreshEvery <= 0 {
		return nil
	}
	return tea.Tick(m.refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func persistCmd(what string, persist func() error) tea.Cmd {
	return func() tea.Msg {
		err := persist()
		if err != nil {
			log.Printf("%s persist: %v", what, err)
		}
		return persistedMsg{what: what, err: err}
	}
}

func (m Model) Init() tea.Cmd { return m.tickCmd() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case SamplesMsg:
		m.samples = msg.Samples
		m.today = core.StartOfDay(msg.Today)
		m.hasData = true
		m.refreshing = false
		m.err = nil
		return m, nil

	case ErrMsg:
		m.err = msg.Err
		m.refreshing = false
		return m, nil

	case tickMsg:
		m = m.requestRefresh()
		return m, m.tickCmd()

	case persistedMsg:
		if msg.err != nil {
			m.status = msg.what + " save failed"
		} else {
			m.status = msg.what + " saved"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, keys.NextMetric):
		m.selected = m.stepMetric(1)
	case key.Matches(msg, keys.PrevMetric):
		m.selected = m.stepMetric(-1)
	case key.Matches(msg, keys.Window):
		m.window = core.NextTimeWindow(m.window)
		if m.persistWindow != nil {
			tw, persist := m.window, m.persistWindow
			return m, persistCmd("window", func() error { return persist(tw) })
		}
	case key.Matches(msg, keys.Refresh):
		m = m.requestRefresh()
	case key.Matches(msg, keys.Theme):
		name := CycleTheme()
		m.status = "theme: " + name
		if m.persistTheme == nil {
			return m, nil
		}
		persist := m.persistTheme
		return m, persistCmd("theme", func() error { return persist(name) })
	}
	return m, nil
}

func (m Model) stepMetric(step int) int {
	n := len(m.metrics)
	if n == 0 {
		return 0
	}
	return ((m.selected+step)%n + n) % n
}

func (m Model) requestRefresh() Model {
	if m.onRefresh == nil || m.refreshing {
		return m
	}
	m.refreshing = true
	m.onRefresh()
	return m
}

// Window returns the active time window.
func (m Model) Window() core.TimeWindow { return m.window }

// encoding runs the active window through the memo; repeated renders with
// unchanged samples reuse the cached result.
func (m Model) encoding() chart.Encoding {
	return m.memo.Encode(chart.Input{
		Samples: m.samples,
		Today:   m.today,
		Days:    m.window.Days(),
		Metrics: m.metrics,
		Frame:   m.frame,
	})
}

func (m Model) View() string {
	if m.width < minWidth || m.height < minHeight {
		return dimStyle.Render(fmt.Sprintf("\n  Terminal too small. Resize to at least %dx%d.", minWidth, minHeight))
	}
	if !m.hasData {
		if m.err != nil {
			return errorStyle.Render("\n  " + m.err.Error())
		}
		return dimStyle.Render("\n  Loading ratings…")
	}

	enc := m.encoding()
	header := m.renderHeader(enc)
	footer := m.renderFooter()
	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)

	body := m.renderBody(enc, bodyH)
	lines := strings.Split(header+"\n"+body+"\n"+footer, "\n")
	lines = lo.Map(lines, func(l string, _ int) string { return ansi.Truncate(l, m.width, "…") })
	return strings.Join(lines, "\n")
}

func (m Model) renderHeader(enc chart.Encoding) string {
	brand := brandStyle.Render("◆ daytrend")
	tabs := lo.Map(m.metrics, func(spec chart.MetricSpec, i int) string {
		label := spec.Label
		if label == "" {
			label = string(spec.Name)
		}
		if i == m.selected {
			return tabActiveStyle.Render(label)
		}
		return tabInactiveStyle.Render(label)
	})

	info := labelStyle.Render(m.window.Label()) + dimStyle.Render(" · ") +
		valueStyle.Render(chart.CoverageCaption(enc))
	if enc.CurrentStreak > 1 {
		info += dimStyle.Render(" · ") + streakStyle.Render(fmt.Sprintf("%d day streak", enc.CurrentStreak))
	}
	if m.refreshing {
		info += refreshStyle.Render(" ↻")
	}

	left := brand + " " + strings.Join(tabs, "")
	gap := max(m.width-ansi.StringWidth(left)-ansi.StringWidth(info), 1)
	line := left + strings.Repeat(" ", gap) + info
	return line + "\n" + separatorStyle.Render(strings.Repeat("━", m.width))
}

func (m Model) renderBody(enc chart.Encoding, h int) string {
	if len(enc.Metrics) == 0 {
		return dimStyle.Render("  no metrics configured")
	}
	me := enc.Metrics[min(m.selected, len(enc.Metrics)-1)]

	var sb strings.Builder
	sb.WriteString(sectionHeaderStyle.Render(me.Label))
	sb.WriteString("  " + captionStyle.Render(chart.DateRangeCaption(enc)) + "\n")
	sb.WriteString(summaryLine(me.Summary) + "\n\n")

	grid := RenderHeatGrid(me, enc.Dates)
	legend := RenderLegend(me)
	fixed := 3 + lipgloss.Height(grid) + 1 + lipgloss.Height(legend) + 3
	chartH := max(h-fixed, 3)

	sb.WriteString(RenderTrendChart(me, enc.Dates, m.width, chartH) + "\n\n")
	sb.WriteString(grid + "\n")
	sb.WriteString(legend)
	return sb.String()
}

func (m Model) renderFooter() string {
	sep := separatorStyle.Render(strings.Repeat("━", m.width))
	status := ""
	switch {
	case m.err != nil:
		status = errorStyle.Render(m.err.Error())
	case m.status != "":
		status = dimStyle.Render(m.status)
	}
	line := m.help.View(keys)
	if status != "" {
		line += "  " + status
	}
	return sep + "\n" + line
}
