package core

// Segment is a maximal run of present values, Start and End inclusive.
type Segment struct {
	Start int
	End   int
}

func (s Segment) Len() int {
	return s.End - s.Start + 1
}

// Segments splits seq into maximal runs of present values, ordered by start.
// An all-missing sequence yields no segments.
func Segments(seq Sequence) []Segment {
	var out []Segment
	start := -1
	for i, p := range seq {
		switch {
		case p.Present && start < 0:
			start = i
		case !p.Present && start >= 0:
			out = append(out, Segment{Start: start, End: i - 1})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, Segment{Start: start, End: len(seq) - 1})
	}
	return out
}
