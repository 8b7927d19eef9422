package strategy

import (
	"encoding/json"
	"sync"

	"github.com/shopspring/decimal"

	"main/internal/market"
	"main/internal/market/enum"
)

// Leg is one instrument side of a strategy, carrying the venue trading
// constraints pushed to clients along with the strategy definition.
type Leg struct {
	Instrument *market.Instrument
	MinQty     decimal.Decimal
	PriceStep  decimal.Decimal
	Precision  int
}

// Strategy is a configured signal source: a code clients subscribe to,
// its constituent legs and the last computed signal.
type Strategy struct {
	Code     string
	Venue    enum.Venue
	Leverage int
	Legs     []Leg

	mu     sync.Mutex
	signal Signal
}

// NewStrategy creates a strategy with the initial placeholder signal.
func NewStrategy(code string, venue enum.Venue, leverage int, legs []Leg) *Strategy {
	return &Strategy{
		Code:     code,
		Venue:    venue,
		Leverage: leverage,
		Legs:     legs,
		signal:   Signal{Code: code, Text: "init"},
	}
}

// Signal returns the last computed signal.
func (s *Strategy) Signal() Signal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signal
}

func (s *Strategy) setSignal(sig Signal) {
	s.mu.Lock()
	s.signal = sig
	s.mu.Unlock()
}

type legWire struct {
	Venue     string          `json:"burse"`
	Symbol    string          `json:"name"`
	Category  string          `json:"type"`
	MinQty    decimal.Decimal `json:"minQty"`
	PriceStep decimal.Decimal `json:"priceStep"`
	Precision int             `json:"precision"`
}

type strategyWire struct {
	Code        string          `json:"code"`
	Venue       string          `json:"burse"`
	Leverage    int             `json:"leverage"`
	ClientLimit decimal.Decimal `json:"clientLimit"`
	Stocks      []legWire       `json:"stocks"`
}

// MarshalFor serializes the definition with the client's own trade limit
// injected, the only place the per-client limit appears.
func (s *Strategy) MarshalFor(clientLimit decimal.Decimal) ([]byte, error) {
	wire := strategyWire{
		Code:        s.Code,
		Venue:       s.Venue.String(),
		Leverage:    s.Leverage,
		ClientLimit: clientLimit,
		Stocks:      make([]legWire, 0, len(s.Legs)),
	}
	for _, leg := range s.Legs {
		w := legWire{
			MinQty:    leg.MinQty,
			PriceStep: leg.PriceStep,
			Precision: leg.Precision,
		}
		if leg.Instrument != nil {
			w.Venue = leg.Instrument.Venue.String()
			w.Symbol = leg.Instrument.ID()
			w.Category = leg.Instrument.Category.String()
		}
		wire.Stocks = append(wire.Stocks, w)
	}
	return json.Marshal(wire)
}
