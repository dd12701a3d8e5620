package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/janekbaraniewski/daytrend/internal/chart"
	"github.com/janekbaraniewski/daytrend/internal/core"
)

// Canvas layers. A character cell touched by the line takes the line color.
const (
	layerEmpty = -1
	layerArea  = 0
	layerLine  = 1
)

var brailleDots = [4][2]rune{
	{0x01, 0x08}, // top
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80}, // bottom
}

type brailleCanvas struct {
	cw, ch int   // character dimensions
	pw, ph int   // pixel dimensions (cw*2, ch*4)
	grid   []int // flat [ph*pw], layer per pixel
}

func newBrailleCanvas(cw, ch int) *brailleCanvas {
	pw, ph := cw*2, ch*4
	grid := make([]int, pw*ph)
	for i := range grid {
		grid[i] = layerEmpty
	}
	return &brailleCanvas{cw: cw, ch: ch, pw: pw, ph: ph, grid: grid}
}

// frame is the chart geometry of the canvas in pixel units: rating 10 on the
// top pixel row, rating 1 on the bottom one.
func (c *brailleCanvas) frame() chart.Frame {
	return chart.Frame{Width: float64(c.pw - 1), Height: float64(c.ph - 1)}
}

func (c *brailleCanvas) at(px, py int) int {
	if px < 0 || px >= c.pw || py < 0 || py >= c.ph {
		return layerEmpty
	}
	return c.grid[py*c.pw+px]
}

func (c *brailleCanvas) set(px, py, layer int) {
	if px >= 0 && px < c.pw && py >= 0 && py < c.ph {
		c.grid[py*c.pw+px] = layer
	}
}

func (c *brailleCanvas) drawLine(x0, y0, x1, y1, layer int) {
	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps == 0 {
		c.set(x0, y0, layer)
		return
	}
	xInc, yInc := dx/steps, dy/steps
	x, y := float64(x0), float64(y0)
	for i := 0; i <= int(steps); i++ {
		c.set(int(math.Round(x)), int(math.Round(y)), layer)
		x += xInc
		y += yInc
	}
}

// drawPath strokes p. A MoveTo only plots its point, so separate segments
// stay separate on the canvas.
func (c *brailleCanvas) drawPath(p chart.Path, layer int) {
	var px, py int
	for _, cmd := range p {
		x, y := int(math.Round(cmd.X)), int(math.Round(cmd.Y))
		switch cmd.Op {
		case chart.OpMoveTo:
			c.set(x, y, layer)
		case chart.OpLineTo:
			c.drawLine(px, py, x, y, layer)
		case chart.OpClose:
			continue
		}
		px, py = x, y
	}
}

// fillArea shades below the stroke for every column an area polygon spans.
func (c *brailleCanvas) fillArea(area chart.Path, layer int) {
	for _, poly := range area.Subpaths() {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, cmd := range poly {
			if cmd.Op == chart.OpClose {
				continue
			}
			lo, hi = math.Min(lo, cmd.X), math.Max(hi, cmd.X)
		}
		for px := int(math.Round(lo)); px <= int(math.Round(hi)); px++ {
			top := -1
			for py := 0; py < c.ph; py++ {
				if c.at(px, py) == layerLine {
					top = py
					break
				}
			}
			if top < 0 {
				continue
			}
			for py := top + 1; py < c.ph; py++ {
				if c.at(px, py) == layerEmpty {
					c.set(px, py, layer)
				}
			}
		}
	}
}

func (c *brailleCanvas) render(colors map[int]lipgloss.Color) []string {
	lines := make([]string, c.ch)
	for cy := 0; cy < c.ch; cy++ {
		var sb strings.Builder
		for cx := 0; cx < c.cw; cx++ {
			pattern := rune(0x2800)
			top := layerEmpty
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					l := c.grid[(cy*4+dy)*c.pw+cx*2+dx]
					if l == layerEmpty {
						continue
					}
					pattern |= brailleDots[dy][dx]
					top = max(top, l)
				}
			}
			if top == layerEmpty {
				sb.WriteRune(' ')
				continue
			}
			color, ok := colors[top]
			if !ok {
				color = colorSubtext
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(pattern)))
		}
		lines[cy] = sb.String()
	}
	return lines
}

// RenderTrendChart draws one metric's window as a braille line over a shaded
// area, w columns wide and h rows tall plus axes. Missing days leave gaps.
func RenderTrendChart(me chart.MetricEncoding, dates []time.Time, w, h int) string {
	const yAxisW = 4
	plotW := max(w-yAxisW-2, 8)
	h = max(h, 3)

	canvas := newBrailleCanvas(plotW, h)
	f := canvas.frame()
	canvas.drawPath(chart.LinePath(me.Sequence, f), layerLine)
	canvas.fillArea(chart.AreaPath(me.Sequence, f), layerArea)

	colors := map[int]lipgloss.Color{
		layerArea: swatchColor(me, 4),
		layerLine: swatchColor(me, 8),
	}
	plot := canvas.render(colors)

	ticks := map[int]string{0: "10", h / 2: "5", h - 1: "1"}
	var sb strings.Builder
	for row, line := range plot {
		sb.WriteString(fmt.Sprintf("%*s %s%s\n", yAxisW-1, dimStyle.Render(ticks[row]), chartAxisStyle.Render("┤"), line))
	}
	sb.WriteString(fmt.Sprintf("%*s %s%s\n", yAxisW-1, "", chartAxisStyle.Render("└"), chartAxisStyle.Render(strings.Repeat("─", plotW))))
	sb.WriteString(strings.Repeat(" ", yAxisW+1) + dimStyle.Render(dateAxis(dates, plotW)))
	return sb.String()
}

// dateAxis labels the first and last day of the window.
func dateAxis(dates []time.Time, width int) string {
	if len(dates) == 0 {
		return ""
	}
	first := dates[0].Format("Jan 2")
	if len(dates) == 1 {
		return first
	}
	last := dates[len(dates)-1].Format("Jan 2")
	gap := max(width-len(first)-len(last), 1)
	return first + strings.Repeat(" ", gap) + last
}

func swatchColor(me chart.MetricEncoding, value int) lipgloss.Color {
	for _, s := range me.Legend {
		if s.Value == value {
			return lipgloss.Color(s.Color.Hex())
		}
	}
	return colorSubtext
}

// RenderHeatGrid draws one row per seven-day chunk, oldest first. Each row
// starts with the date of its first day.
func RenderHeatGrid(me chart.MetricEncoding, dates []time.Time) string {
	missing := lipgloss.NewStyle().Foreground(lipgloss.Color(chart.MissingBorder))

	var rows []string
	for w, week := range me.WeekCells {
		label := ""
		if i := w * chart.ChunkSize; i < len(dates) {
			label = dates[i].Format("Jan 02")
		}
		var sb strings.Builder
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-6s ", label)))
		for _, cell := range week {
			if cell.Missing {
				sb.WriteString(missing.Render("░░") + " ")
				continue
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cell.Hex())).Render("██") + " ")
		}
		rows = append(rows, strings.TrimRight(sb.String(), " "))
	}
	return strings.Join(rows, "\n")
}

// RenderLegend shows the legend swatches and the missing-day marker.
func RenderLegend(me chart.MetricEncoding) string {
	parts := make([]string, 0, len(me.Legend)+1)
	for _, s := range me.Legend {
		sw := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color.Hex())).Render("██")
		parts = append(parts, sw+" "+dimStyle.Render(fmt.Sprintf("%d", s.Value)))
	}
	miss := lipgloss.NewStyle().Foreground(lipgloss.Color(chart.MissingBorder)).Render("░░")
	parts = append(parts, miss+" "+dimStyle.Render("no entry"))
	return strings.Join(parts, "  ")
}

// summaryLine is the caption under a metric title.
func summaryLine(s core.Summary) string {
	if s.Count == 0 {
		return dimStyle.Render("no ratings in this window")
	}
	latest := "–"
	if s.LatestPresent {
		latest = formatRating(s.Latest)
	}
	return fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
		labelStyle.Render("avg"), valueStyle.Render(fmt.Sprintf("%.1f", s.Average)),
		labelStyle.Render("min"), valueStyle.Render(formatRating(s.Min)),
		labelStyle.Render("max"), valueStyle.Render(formatRating(s.Max)),
		labelStyle.Render("today"), valueStyle.Render(latest),
	)
}

func formatRating(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.1f", v)
}
