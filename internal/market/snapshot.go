package market

import "main/internal/market/enum"

// Snapshot is the gated point-in-time copy of an instrument's state.
// It is the only input the strategy engine reads, so live candle
// mutations never race an evaluation.
type Snapshot struct {
	Complete bool
	Candles  [enum.IntervalCount]Candle
	Book     BookAggregate
	Trades   TradeTally
}

// Candle returns the mirrored candle for the interval.
func (s Snapshot) Candle(interval enum.Interval) Candle {
	return s.Candles[interval.Index()]
}
