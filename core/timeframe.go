package core

// Timeframe is a lookback token from the fixed vocabulary the evaluator
// accepts. TimeframeAlways disables the lookback bound.
type Timeframe string

const (
	Timeframe5m     Timeframe = "5m"
	Timeframe10m    Timeframe = "10m"
	Timeframe30m    Timeframe = "30m"
	Timeframe1h     Timeframe = "1h"
	Timeframe12h    Timeframe = "12h"
	Timeframe1d     Timeframe = "1d"
	Timeframe3d     Timeframe = "3d"
	Timeframe1w     Timeframe = "1w"
	Timeframe1M     Timeframe = "1M"
	Timeframe1y     Timeframe = "1y"
	TimeframeAlways Timeframe = "always"
)

// Timeframes returns the lookback vocabulary in ascending order.
func Timeframes() []Timeframe {
	return []Timeframe{
		Timeframe5m, Timeframe10m, Timeframe30m, Timeframe1h, Timeframe12h,
		Timeframe1d, Timeframe3d, Timeframe1w, Timeframe1M, Timeframe1y,
		TimeframeAlways,
	}
}

// String returns the string representation
func (t Timeframe) String() string {
	return string(t)
}

// IsValid checks if the timeframe is part of the vocabulary
func (t Timeframe) IsValid() bool {
	for _, v := range Timeframes() {
		if t == v {
			return true
		}
	}
	return false
}

// ProfileWindow is the bucketing window used by field profiling.
type ProfileWindow string

const (
	ProfileWindowDay   ProfileWindow = "day"
	ProfileWindowWeek  ProfileWindow = "week"
	ProfileWindowMonth ProfileWindow = "month"
)

// ProfileWindows returns the supported profiling windows.
func ProfileWindows() []ProfileWindow {
	return []ProfileWindow{ProfileWindowDay, ProfileWindowWeek, ProfileWindowMonth}
}

// IsValid checks if the window is valid
func (w ProfileWindow) IsValid() bool {
	switch w {
	case ProfileWindowDay, ProfileWindowWeek, ProfileWindowMonth:
		return true
	default:
		return false
	}
}
