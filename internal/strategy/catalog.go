package strategy

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/market"
	"main/internal/market/enum"
	"main/internal/registry"
)

// Strategy kinds recognized by the catalog.
const (
	KindSpread        = "spread"
	KindMeanReversion = "meanReversion"
)

// LegSpec declares one strategy leg in configuration. For expiring
// categories Symbol is the base the rollover suffix attaches to.
type LegSpec struct {
	Venue     string          `json:"venue"`
	Symbol    string          `json:"symbol"`
	Category  string          `json:"category"`
	MinQty    decimal.Decimal `json:"minQty"`
	PriceStep decimal.Decimal `json:"priceStep"`
	Precision int             `json:"precision"`
}

// Spec declares one strategy in configuration.
type Spec struct {
	Code     string    `json:"code"`
	Venue    string    `json:"venue"`
	Kind     string    `json:"kind"`
	Leverage int       `json:"leverage"`
	Legs     []LegSpec `json:"legs"`
}

// Build resolves every spec against the registry and binds the
// evaluators. A spec whose instruments are missing is registered
// unbound so clients can still purchase it.
func Build(e *Engine, reg *registry.Registry, specs []Spec) error {
	for _, spec := range specs {
		if err := buildOne(e, reg, spec); err != nil {
			return errors.Wrap(err, "build strategy").With("code", spec.Code)
		}
	}
	return nil
}

func buildOne(e *Engine, reg *registry.Registry, spec Spec) error {
	venue, ok := enum.ParseVenue(spec.Venue)
	if !ok {
		return errors.Errorf("unknown venue %q", spec.Venue)
	}

	legs := make([]Leg, 0, len(spec.Legs))
	instruments := make([]*market.Instrument, 0, len(spec.Legs))
	for _, legSpec := range spec.Legs {
		legVenue, ok := enum.ParseVenue(legSpec.Venue)
		if !ok {
			return errors.Errorf("unknown leg venue %q", legSpec.Venue)
		}
		category, ok := enum.ParseCategory(legSpec.Category)
		if !ok {
			return errors.Errorf("unknown leg category %q", legSpec.Category)
		}

		var inst *market.Instrument
		if category.IsExpiring() {
			inst = reg.FindByBase(legVenue, category, legSpec.Symbol)
		} else {
			inst = reg.Find(legVenue, category, legSpec.Symbol)
		}
		instruments = append(instruments, inst)
		legs = append(legs, Leg{
			Instrument: inst,
			MinQty:     legSpec.MinQty,
			PriceStep:  legSpec.PriceStep,
			Precision:  legSpec.Precision,
		})
	}

	s := NewStrategy(spec.Code, venue, spec.Leverage, legs)
	for _, inst := range instruments {
		if inst == nil {
			logs.Errorf("strategy %s: leg instrument missing, registered unbound", spec.Code)
			e.Add(s)
			return nil
		}
	}

	switch spec.Kind {
	case KindSpread:
		if len(instruments) != 2 {
			return errors.Errorf("spread strategy needs 2 legs, got %d", len(instruments))
		}
		spot, fut := instruments[0], instruments[1]
		e.Bind(s, func(now time.Time) (Signal, bool) {
			a := spot.Snapshot().Candle(enum.IntervalOneMinute)
			b := fut.Snapshot().Candle(enum.IntervalOneMinute)
			value, ok := spreadValue(a.Close, b.Close, registry.DaysToExpiration(now))
			if !ok {
				return Signal{}, false
			}
			return spreadSignal(spec.Code,
				StockSignal{Venue: spot.Venue, Symbol: spot.ID(), Category: spot.Category},
				StockSignal{Venue: fut.Venue, Symbol: fut.ID(), Category: fut.Category},
				value,
			), true
		}, spot, fut)
	case KindMeanReversion:
		if len(instruments) != 1 {
			return errors.Errorf("mean-reversion strategy needs 1 leg, got %d", len(instruments))
		}
		inst := instruments[0]
		e.Bind(s, func(time.Time) (Signal, bool) {
			lastClose := inst.Snapshot().Candle(enum.IntervalOneMinute).Close
			value, ok := deviationValue(lastClose, inst.RollingMean())
			if !ok {
				return Signal{}, false
			}
			return meanReversionSignal(spec.Code,
				StockSignal{Venue: inst.Venue, Symbol: inst.ID(), Category: inst.Category},
				value,
			), true
		}, inst)
	default:
		return errors.Errorf("unknown strategy kind %q", spec.Kind)
	}
	return nil
}
