package enum

// Venue identifies the trading venue an instrument belongs to.
type Venue uint8

const (
	_venue_beg Venue = iota
	VenueOkx
	VenueBybit
	VenueBinance
	VenueTerminal
	_venue_end
)

func (v Venue) IsAvailable() bool {
	return v > _venue_beg && v < _venue_end
}

func (v Venue) String() string {
	switch v {
	case VenueOkx:
		return "Okx"
	case VenueBybit:
		return "Bybit"
	case VenueBinance:
		return "Binance"
	case VenueTerminal:
		return "Terminal"
	default:
		return "Unknown"
	}
}

// ParseVenue maps a venue name to its enum value.
func ParseVenue(s string) (Venue, bool) {
	switch s {
	case "Okx":
		return VenueOkx, true
	case "Bybit":
		return VenueBybit, true
	case "Binance":
		return VenueBinance, true
	case "Terminal":
		return VenueTerminal, true
	default:
		return 0, false
	}
}
