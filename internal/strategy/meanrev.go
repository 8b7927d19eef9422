package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"main/internal/market/enum"
)

var deviationEpsilon = decimal.RequireFromString("0.0000001")

// deviationValue computes the percent deviation of a close from the
// rolling mean, rounded to two places. A zero mean (window still
// filling) skips the evaluation.
func deviationValue(last, mean decimal.Decimal) (decimal.Decimal, bool) {
	if mean.IsZero() {
		return decimal.Decimal{}, false
	}
	return hundred.Mul(last.Sub(mean)).Div(mean).Round(2), true
}

// meanReversionSignal orders toward the deviation's sign, or nothing
// when the close sits on the mean.
func meanReversionSignal(code string, stock StockSignal, value decimal.Decimal) Signal {
	sig := Signal{Code: code}
	if value.Abs().GreaterThan(deviationEpsilon) {
		sig.Text = fmt.Sprintf("Order -> %s%%", value)
		if value.IsPositive() {
			stock.Side = enum.SideBuy
		} else {
			stock.Side = enum.SideSell
		}
		sig.Stocks = []StockSignal{stock}
	} else {
		sig.Text = fmt.Sprintf("No order -> %s%%", value)
	}
	return sig
}
