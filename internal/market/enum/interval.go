package enum

// Interval is a candle interval.
type Interval uint8

const (
	_interval_beg Interval = iota
	IntervalOneMinute
	IntervalFiveMinutes
	IntervalFifteenMinutes
	IntervalOneHour
	IntervalFourHours
	IntervalOneDay
	_interval_end
)

// IntervalCount is the number of configured candle intervals.
const IntervalCount = int(_interval_end) - 1

func (i Interval) IsAvailable() bool {
	return i > _interval_beg && i < _interval_end
}

// Index returns the zero-based slot of the interval in a candle ladder.
func (i Interval) Index() int {
	return int(i) - 1
}

func (i Interval) String() string {
	switch i {
	case IntervalOneMinute:
		return "1m"
	case IntervalFiveMinutes:
		return "5m"
	case IntervalFifteenMinutes:
		return "15m"
	case IntervalOneHour:
		return "1h"
	case IntervalFourHours:
		return "4h"
	case IntervalOneDay:
		return "1d"
	default:
		return "none"
	}
}

// ParseInterval maps a terminal-bridge interval tag to its enum value.
func ParseInterval(s string) (Interval, bool) {
	switch s {
	case "M1", "1m":
		return IntervalOneMinute, true
	case "M5", "5m":
		return IntervalFiveMinutes, true
	case "M15", "15m":
		return IntervalFifteenMinutes, true
	case "H1", "1h":
		return IntervalOneHour, true
	case "H4", "4h":
		return IntervalFourHours, true
	case "D1", "1d":
		return IntervalOneDay, true
	default:
		return 0, false
	}
}
