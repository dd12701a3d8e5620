package core

// TimeWindow is the trailing span of days shown by the statistics views.
type TimeWindow string

const (
	TimeWindow7d  TimeWindow = "7d"
	TimeWindow14d TimeWindow = "14d"
	TimeWindow30d TimeWindow = "30d"
)

var ValidTimeWindows = []TimeWindow{
	TimeWindow7d,
	TimeWindow14d,
	TimeWindow30d,
}

// Days returns the window length in days.
func (tw TimeWindow) Days() int {
	switch tw {
	case TimeWindow7d:
		return 7
	case TimeWindow14d:
		return 14
	case TimeWindow30d:
		return 30
	default:
		return 30
	}
}

func (tw TimeWindow) Label() string {
	switch tw {
	case TimeWindow7d:
		return "7 Days"
	case TimeWindow14d:
		return "14 Days"
	case TimeWindow30d:
		return "30 Days"
	default:
		return "30 Days"
	}
}

func ParseTimeWindow(s string) TimeWindow {
	for _, tw := range ValidTimeWindows {
		if string(tw) == s {
			return tw
		}
	}
	return TimeWindow30d
}

// NextTimeWindow returns the next time window in the cycle.
func NextTimeWindow(current TimeWindow) TimeWindow {
	for i, tw := range ValidTimeWindows {
		if tw == current {
			return ValidTimeWindows[(i+1)%len(ValidTimeWindows)]
		}
	}
	return ValidTimeWindows[0]
}
