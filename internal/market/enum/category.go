package enum

// Category describes the product type of an instrument.
type Category uint8

const (
	_category_beg Category = iota
	CategorySpot
	CategoryFutures
	CategoryUsdFutures
	CategoryCoinFutures
	CategoryInverseFutures
	CategorySwap
	CategoryTerminalFutures
	CategoryTerminalEquity
	_category_end
)

func (c Category) IsAvailable() bool {
	return c > _category_beg && c < _category_end
}

// IsExpiring reports whether instruments of this category carry a
// quarterly expiration suffix and participate in rollover.
func (c Category) IsExpiring() bool {
	switch c {
	case CategoryFutures, CategoryUsdFutures, CategoryCoinFutures, CategoryInverseFutures:
		return true
	default:
		return false
	}
}

func (c Category) String() string {
	switch c {
	case CategorySpot:
		return "Spot"
	case CategoryFutures:
		return "Futures"
	case CategoryUsdFutures:
		return "UsdFutures"
	case CategoryCoinFutures:
		return "CoinFutures"
	case CategoryInverseFutures:
		return "InverseFutures"
	case CategorySwap:
		return "Swap"
	case CategoryTerminalFutures:
		return "SPBFUT"
	case CategoryTerminalEquity:
		return "TQBR"
	default:
		return "Unknown"
	}
}

// ParseCategory maps a category name to its enum value.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "Spot":
		return CategorySpot, true
	case "Futures":
		return CategoryFutures, true
	case "UsdFutures":
		return CategoryUsdFutures, true
	case "CoinFutures":
		return CategoryCoinFutures, true
	case "InverseFutures":
		return CategoryInverseFutures, true
	case "Swap":
		return CategorySwap, true
	case "SPBFUT":
		return CategoryTerminalFutures, true
	case "TQBR":
		return CategoryTerminalEquity, true
	default:
		return 0, false
	}
}
