package core

import "testing"

func TestCoverage_LogicalOrAcrossMetrics(t *testing.T) {
	a := make(Sequence, 30)
	b := make(Sequence, 30)
	c := make(Sequence, 30)
	a[0] = Present(4)
	b[5] = Present(6)
	c[10] = Present(2)
	a[10] = Present(9)

	if got := Coverage(a, b, c); got != 3 {
		t.Errorf("Coverage = %d, want 3", got)
	}
}

func TestCoverage_Degenerate(t *testing.T) {
	if got := Coverage(); got != 0 {
		t.Errorf("Coverage() = %d, want 0", got)
	}
	if got := Coverage(make(Sequence, 30)); got != 0 {
		t.Errorf("all missing = %d, want 0", got)
	}
	short := seqOf(1)
	long := seqOf(0, 0, 3)
	if got := Coverage(short, long); got != 2 {
		t.Errorf("unequal lengths = %d, want 2", got)
	}
}

func TestStreaks(t *testing.T) {
	a := seqOf(1, 1, 0, 1, 1, 1, 0, 1)
	b := seqOf(0, 0, 0, 0, 0, 0, 5, 0)

	if got := LongestStreak(a, b); got != 5 {
		t.Errorf("LongestStreak = %d, want 5", got)
	}
	if got := CurrentStreak(a, b); got != 5 {
		t.Errorf("CurrentStreak = %d, want 5", got)
	}
	if got := CurrentStreak(seqOf(1, 1, 0)); got != 0 {
		t.Errorf("CurrentStreak with missing today = %d, want 0", got)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(seqOf(4, 0, 8, 6, 0))
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if s.Average != 6 {
		t.Errorf("Average = %v, want 6", s.Average)
	}
	if s.Min != 4 || s.Max != 8 {
		t.Errorf("Min/Max = %v/%v, want 4/8", s.Min, s.Max)
	}
	if s.Latest != 6 {
		t.Errorf("Latest = %v, want 6", s.Latest)
	}
	if s.LatestPresent {
		t.Error("LatestPresent should be false when today is missing")
	}

	empty := Summarize(make(Sequence, 5))
	if empty.Count != 0 || empty.Average != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}
