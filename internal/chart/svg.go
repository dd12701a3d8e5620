package chart

import (
	"fmt"
	"html"
	"io"
	"strings"
)

type SVGOptions struct {
	Title    string
	CellSize int
	CellGap  int
	Margin   int
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Title:    "Last 30 days",
		CellSize: 14,
		CellGap:  3,
		Margin:   16,
	}
}

const (
	svgTitleH   = 24
	svgLabelH   = 18
	svgPanelGap = 20
)

// WriteSVG renders every metric of enc as a trend panel (area fill plus a
// gap-aware stroke) followed by its heat grid and legend.
func WriteSVG(w io.Writer, enc Encoding, opts SVGOptions) error {
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultSVGOptions().CellSize
	}
	if opts.CellGap < 0 {
		opts.CellGap = 0
	}
	pitch := opts.CellSize + opts.CellGap

	frameW := int(enc.Frame.Width)
	gridW := ChunkSize*pitch - opts.CellGap
	panelW := max(frameW, gridW+len(LegendValues)*pitch+60)
	rows := len(ChunkLens(enc.Days))
	gridH := rows*pitch - opts.CellGap
	panelH := svgLabelH + int(enc.Frame.Height) + 10 + max(gridH, opts.CellSize) + svgPanelGap

	width := panelW + 2*opts.Margin
	height := opts.Margin*2 + svgTitleH + len(enc.Metrics)*panelH

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n", width, height, width, height)
	sb.WriteString(`  <style>.title{font:bold 14px sans-serif;fill:#333}.label{font:12px sans-serif;fill:#555}.caption{font:11px sans-serif;fill:#888}</style>` + "\n")
	fmt.Fprintf(&sb, `  <text x="%d" y="%d" class="title">%s</text>`+"\n",
		opts.Margin, opts.Margin+14, html.EscapeString(opts.Title))
	fmt.Fprintf(&sb, `  <text x="%d" y="%d" class="caption" text-anchor="end">%s</text>`+"\n",
		width-opts.Margin, opts.Margin+14, html.EscapeString(CoverageCaption(enc)))

	y := opts.Margin + svgTitleH
	for _, m := range enc.Metrics {
		writeMetricPanel(&sb, m, enc.Frame, opts, opts.Margin, y)
		y += panelH
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeMetricPanel(sb *strings.Builder, m MetricEncoding, f Frame, opts SVGOptions, x, y int) {
	stroke := hslHex(m.Family.Hue, m.Family.Saturation+10, 45)
	fill := hslHex(m.Family.Hue, m.Family.Saturation, 80)
	pitch := opts.CellSize + opts.CellGap

	caption := "no entries"
	if m.Summary.Count > 0 {
		caption = fmt.Sprintf("avg %.1f over %d days", m.Summary.Average, m.Summary.Count)
	}
	fmt.Fprintf(sb, `  <text x="%d" y="%d" class="label">%s</text>`+"\n", x, y+12, html.EscapeString(m.Label))
	fmt.Fprintf(sb, `  <text x="%d" y="%d" class="caption" dx="8">%s</text>`+"\n", x+7*len(m.Label), y+12, caption)

	ty := y + svgLabelH
	fmt.Fprintf(sb, `  <g transform="translate(%d,%d)">`+"\n", x, ty)
	fmt.Fprintf(sb, `    <rect width="%g" height="%g" fill="none" stroke="#E4E4E4"/>`+"\n", f.Width, f.Height)
	if len(m.Area) > 0 {
		fmt.Fprintf(sb, `    <path d="%s" fill="%s" fill-opacity="0.45" stroke="none"/>`+"\n", m.Area.SVG(), fill)
	}
	if len(m.Line) > 0 {
		fmt.Fprintf(sb, `    <path d="%s" fill="none" stroke="%s" stroke-width="2" stroke-linejoin="round" stroke-linecap="round"/>`+"\n", m.Line.SVG(), stroke)
	}
	sb.WriteString("  </g>\n")

	gy := ty + int(f.Height) + 10
	fmt.Fprintf(sb, `  <g transform="translate(%d,%d)">`+"\n", x, gy)
	for row, cells := range m.WeekCells {
		for col, c := range cells {
			writeCell(sb, c, col*pitch, row*pitch, opts.CellSize)
		}
	}
	sb.WriteString("  </g>\n")

	lx := x + ChunkSize*pitch + 40
	fmt.Fprintf(sb, `  <g transform="translate(%d,%d)">`+"\n", lx, gy)
	for i, sw := range m.Legend {
		writeCell(sb, sw.Color, i*pitch, 0, opts.CellSize)
	}
	fmt.Fprintf(sb, `    <text x="0" y="%d" class="caption">low</text>`+"\n", opts.CellSize+12)
	fmt.Fprintf(sb, `    <text x="%d" y="%d" class="caption" text-anchor="end">high</text>`+"\n",
		len(m.Legend)*pitch-opts.CellGap, opts.CellSize+12)
	sb.WriteString("  </g>\n")
}

func writeCell(sb *strings.Builder, c Color, x, y, size int) {
	if c.Missing {
		fmt.Fprintf(sb, `    <rect x="%d" y="%d" width="%d" height="%d" rx="2" fill="%s" stroke="%s" stroke-width="%d"/>`+"\n",
			x, y, size, size, c.Fill, c.Border, c.BorderWidth)
		return
	}
	fmt.Fprintf(sb, `    <rect x="%d" y="%d" width="%d" height="%d" rx="2" fill="%s"/>`+"\n",
		x, y, size, size, c.Hex())
}

// CoverageCaption is the summary line shown above the statistics views.
func CoverageCaption(enc Encoding) string {
	return fmt.Sprintf("Tracked %d of %d days", enc.Coverage, enc.Days)
}

// DateRangeCaption renders the first and last day of the window.
func DateRangeCaption(enc Encoding) string {
	if len(enc.Dates) == 0 {
		return ""
	}
	first := enc.Dates[0]
	last := enc.Dates[len(enc.Dates)-1]
	return fmt.Sprintf("%s – %s", first.Format("Jan 2"), last.Format("Jan 2"))
}
