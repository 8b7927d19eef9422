package enum

// Side is the direction of a trade or signal leg.
type Side uint8

const (
	_side_beg Side = iota
	SideBuy
	SideSell
	_side_end
)

func (s Side) IsAvailable() bool {
	return s > _side_beg && s < _side_end
}

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "Buy"
	case SideSell:
		return "Sell"
	default:
		return "Unknown"
	}
}

// ParseSide maps a side name to its enum value.
func ParseSide(s string) (Side, bool) {
	switch s {
	case "Buy":
		return SideBuy, true
	case "Sell":
		return SideSell, true
	default:
		return 0, false
	}
}
