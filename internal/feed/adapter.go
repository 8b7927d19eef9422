// Package feed routes venue market data into the instrument registry:
// candle ticks, trade prints and order book depth, plus the terminal
// bridge that creates instruments on first sight.
package feed

import (
	"context"

	"github.com/shopspring/decimal"

	"main/internal/market"
	"main/internal/market/enum"
)

// Sink receives the normalized stream for one instrument.
type Sink interface {
	OnCandle(interval enum.Interval, tick market.CandleTick)
	OnTrade(side enum.Side, quantity decimal.Decimal)
	OnDepth(asks, bids []market.Level)
}

// Adapter is one venue's market data source.
type Adapter interface {
	// Venue identifies which registry slice the adapter feeds.
	Venue() enum.Venue
	// Subscribe starts streaming the instrument into the sink until the
	// context is done.
	Subscribe(ctx context.Context, inst *market.Instrument, sink Sink) error
	// FetchDepth queries the current order book on demand.
	FetchDepth(ctx context.Context, inst *market.Instrument) (asks, bids []market.Level, err error)
}
