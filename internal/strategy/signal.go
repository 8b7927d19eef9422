package strategy

import (
	"encoding/json"

	"main/internal/market/enum"
)

// StockSignal is one instrument order hint inside a signal.
type StockSignal struct {
	Venue    enum.Venue
	Symbol   string
	Category enum.Category
	Side     enum.Side
}

// Signal is the outcome of one strategy evaluation. Percent is the
// allocation hint; an empty Stocks list means no order. The "ping" text
// marks a heartbeat that is never broadcast.
type Signal struct {
	Code    string
	Text    string
	Percent int
	Stocks  []StockSignal
}

// IsHeartbeat reports whether the signal is a keepalive.
func (s Signal) IsHeartbeat() bool {
	return s.Text == "ping"
}

type stockSignalWire struct {
	Venue    string `json:"burse"`
	Symbol   string `json:"name"`
	Category string `json:"type"`
	Side     string `json:"side"`
}

type signalWire struct {
	Code    string            `json:"code"`
	Text    string            `json:"signal"`
	Percent int               `json:"percent"`
	Stocks  []stockSignalWire `json:"stocks"`
}

// MarshalJSON emits the wire layout clients parse.
func (s Signal) MarshalJSON() ([]byte, error) {
	wire := signalWire{
		Code:    s.Code,
		Text:    s.Text,
		Percent: s.Percent,
		Stocks:  make([]stockSignalWire, 0, len(s.Stocks)),
	}
	for _, stock := range s.Stocks {
		wire.Stocks = append(wire.Stocks, stockSignalWire{
			Venue:    stock.Venue.String(),
			Symbol:   stock.Symbol,
			Category: stock.Category.String(),
			Side:     stock.Side.String(),
		})
	}
	return json.Marshal(wire)
}
