package core

// Summary describes the present values of one sequence.
type Summary struct {
	Count         int
	Average       float64
	Min           float64
	Max           float64
	Latest        float64
	LatestPresent bool // the newest day in the window has a value
}

// Summarize computes caption statistics over present values only. Missing
// days never contribute as zero.
func Summarize(seq Sequence) Summary {
	var s Summary
	sum := 0.0
	for _, p := range seq {
		if !p.Present {
			continue
		}
		if s.Count == 0 || p.Value < s.Min {
			s.Min = p.Value
		}
		if s.Count == 0 || p.Value > s.Max {
			s.Max = p.Value
		}
		s.Count++
		sum += p.Value
		s.Latest = p.Value
	}
	if s.Count > 0 {
		s.Average = sum / float64(s.Count)
	}
	if n := len(seq); n > 0 {
		s.LatestPresent = seq[n-1].Present
	}
	return s
}
