package market

import (
	"github.com/shopspring/decimal"

	"main/internal/market/enum"
)

// TradeTally accumulates traded volume per side since the last
// one-minute completion.
type TradeTally struct {
	Buy    decimal.Decimal
	Sell   decimal.Decimal
	Volume decimal.Decimal
}

// Apply adds one trade to the tally.
func (t *TradeTally) Apply(side enum.Side, quantity decimal.Decimal) {
	switch side {
	case enum.SideBuy:
		t.Buy = t.Buy.Add(quantity)
	case enum.SideSell:
		t.Sell = t.Sell.Add(quantity)
	}
	t.Volume = t.Volume.Add(quantity)
}

// Reset zeroes the buy and sell counters after a snapshot copy-out.
// Volume keeps accumulating the way the sell/buy reset leaves it.
func (t *TradeTally) Reset() {
	t.Buy = decimal.Zero
	t.Sell = decimal.Zero
}
