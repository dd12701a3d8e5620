package chart

import (
	"strconv"
	"strings"

	"github.com/janekbaraniewski/daytrend/internal/core"
)

type Op int

const (
	OpMoveTo Op = iota
	OpLineTo
	OpClose
)

func (o Op) String() string {
	switch o {
	case OpMoveTo:
		return "M"
	case OpLineTo:
		return "L"
	case OpClose:
		return "Z"
	default:
		return "?"
	}
}

// Command is a single draw instruction. X and Y are unused for OpClose.
type Command struct {
	Op Op      `json:"op"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Path is an ordered list of draw commands in frame pixel space.
type Path []Command

// SVG renders the path as the value of an SVG "d" attribute.
func (p Path) SVG() string {
	var sb strings.Builder
	for i, c := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.Op.String())
		if c.Op == OpClose {
			continue
		}
		sb.WriteString(strconv.FormatFloat(c.X, 'f', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(c.Y, 'f', -1, 64))
	}
	return sb.String()
}

// Subpaths splits p at every MoveTo. Each returned path starts with one.
func (p Path) Subpaths() []Path {
	var out []Path
	for _, c := range p {
		if c.Op == OpMoveTo || len(out) == 0 {
			out = append(out, Path{})
		}
		out[len(out)-1] = append(out[len(out)-1], c)
	}
	return out
}

// Count returns how many commands of op p contains.
func (p Path) Count(op Op) int {
	n := 0
	for _, c := range p {
		if c.Op == op {
			n++
		}
	}
	return n
}

// LinePath draws one independent stroke per segment of seq. Nothing bridges
// a gap; a one-point segment contributes only its MoveTo.
func LinePath(seq core.Sequence, f Frame) Path {
	var out Path
	n := len(seq)
	for _, seg := range core.Segments(seq) {
		for i := seg.Start; i <= seg.End; i++ {
			op := OpLineTo
			if i == seg.Start {
				op = OpMoveTo
			}
			out = append(out, Command{Op: op, X: f.X(i, n), Y: f.Y(seq[i].Value)})
		}
	}
	return out
}

// AreaPath builds one closed polygon per segment: the top edge along the
// values, down to the baseline under the last point, back under the first.
func AreaPath(seq core.Sequence, f Frame) Path {
	var out Path
	n := len(seq)
	base := f.Baseline()
	for _, seg := range core.Segments(seq) {
		for i := seg.Start; i <= seg.End; i++ {
			op := OpLineTo
			if i == seg.Start {
				op = OpMoveTo
			}
			out = append(out, Command{Op: op, X: f.X(i, n), Y: f.Y(seq[i].Value)})
		}
		out = append(out,
			Command{Op: OpLineTo, X: f.X(seg.End, n), Y: base},
			Command{Op: OpLineTo, X: f.X(seg.Start, n), Y: base},
			Command{Op: OpClose},
		)
	}
	return out
}
