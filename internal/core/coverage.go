package core

// Coverage counts the indices at which at least one sequence is present.
// Shorter sequences count as missing past their end.
func Coverage(seqs ...Sequence) int {
	n := 0
	for i := 0; i < maxLen(seqs); i++ {
		if anyPresent(seqs, i) {
			n++
		}
	}
	return n
}

// LongestStreak returns the longest run of consecutive covered days.
func LongestStreak(seqs ...Sequence) int {
	best, run := 0, 0
	for i := 0; i < maxLen(seqs); i++ {
		if !anyPresent(seqs, i) {
			run = 0
			continue
		}
		run++
		if run > best {
			best = run
		}
	}
	return best
}

// CurrentStreak returns the run of covered days ending at the newest index.
func CurrentStreak(seqs ...Sequence) int {
	run := 0
	for i := maxLen(seqs) - 1; i >= 0; i-- {
		if !anyPresent(seqs, i) {
			break
		}
		run++
	}
	return run
}

func maxLen(seqs []Sequence) int {
	n := 0
	for _, s := range seqs {
		if len(s) > n {
			n = len(s)
		}
	}
	return n
}

func anyPresent(seqs []Sequence, i int) bool {
	for _, s := range seqs {
		if s.Present(i) {
			return true
		}
	}
	return false
}
