package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"main/internal/market/enum"
)

var (
	ten     = decimal.NewFromInt(10)
	hundred = decimal.NewFromInt(100)

	spreadUpper = decimal.RequireFromString("3.5")
	spreadLower = decimal.RequireFromString("3.0")
)

// spreadValue computes the annualized basis between a spot close and a
// futures close, rounded half away from zero to two places. The year
// fraction keeps the whole-number division of the original formula.
// Evaluation is skipped at expiration day or a zero spot close.
func spreadValue(spotClose, futClose decimal.Decimal, daysLeft int) (decimal.Decimal, bool) {
	if daysLeft == 0 || spotClose.IsZero() {
		return decimal.Decimal{}, false
	}
	profit := futClose.Sub(spotClose).Div(spotClose)
	modifier := spotClose.Div(spotClose.Add(futClose.Div(ten)))
	yearFactor := decimal.NewFromInt(int64(365 / daysLeft))
	return hundred.Mul(yearFactor).Mul(modifier).Mul(profit).Round(2), true
}

// spreadSignal applies the entry/exit thresholds. The gap between 3.0
// and 3.5 is deliberate hysteresis: inside it the signal carries the
// value but orders nothing.
func spreadSignal(code string, spot, fut StockSignal, value decimal.Decimal) Signal {
	sig := Signal{Code: code}
	switch {
	case value.GreaterThan(spreadUpper):
		sig.Text = fmt.Sprintf("Order -> %s%%", value)
		sig.Percent = 100
		spot.Side = enum.SideBuy
		fut.Side = enum.SideSell
		sig.Stocks = []StockSignal{spot, fut}
	case value.LessThan(spreadLower):
		sig.Text = fmt.Sprintf("Order -> %s%%", value)
		sig.Percent = 0
		spot.Side = enum.SideSell
		fut.Side = enum.SideBuy
		sig.Stocks = []StockSignal{spot, fut}
	default:
		sig.Text = fmt.Sprintf("No order -> %s%%", value)
	}
	return sig
}
