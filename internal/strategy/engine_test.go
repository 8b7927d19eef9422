package strategy

import (
	"testing"
	"time"

	"main/internal/market"
	"main/internal/market/enum"
	"main/internal/obs"
	"main/internal/registry"
)

func closeMinute(inst *market.Instrument, close string) {
	inst.ApplyCandleTick(enum.IntervalOneMinute, market.CandleTick{
		Open:  dec(close),
		High:  dec(close),
		Low:   dec(close),
		Close: dec(close),
		Final: true,
	})
}

func TestEngineGatesOnAllLegs(t *testing.T) {
	reg := registry.New(false)
	spot := reg.Add(enum.VenueOkx, enum.CategorySpot, "BTC-USDT")
	fut := reg.Add(enum.VenueOkx, enum.CategoryFutures, "BTC-USDT-")
	e := NewEngine(reg, obs.NewMetrics())

	evaluations := 0
	s := NewStrategy("0001", enum.VenueOkx, 1, nil)
	e.Bind(s, func(time.Time) (Signal, bool) {
		evaluations++
		return Signal{Code: "0001", Text: "Order -> 27.12%"}, true
	}, spot, fut)

	closeMinute(spot, "100")
	if evaluations != 0 {
		t.Fatalf("evaluated with one leg pending, count=%d", evaluations)
	}

	closeMinute(fut, "106")
	if evaluations != 1 {
		t.Fatalf("joint completion must evaluate once, count=%d", evaluations)
	}
	if s.Signal().Text != "Order -> 27.12%" {
		t.Fatalf("published signal not stored: %q", s.Signal().Text)
	}

	// further completions in the same minute stay suppressed
	spot.ClearComplete()
	closeMinute(spot, "101")
	if evaluations != 1 {
		t.Fatalf("re-completion before the sweep re-evaluated, count=%d", evaluations)
	}

	// the sweep re-arms the binding and clears every flag
	e.Sweep()
	if spot.Snapshot().Complete || fut.Snapshot().Complete {
		t.Fatal("sweep left a complete flag up")
	}
	closeMinute(spot, "102")
	closeMinute(fut, "108")
	if evaluations != 2 {
		t.Fatalf("next minute must evaluate again, count=%d", evaluations)
	}
}

func TestEngineSkippedEvaluationKeepsSignal(t *testing.T) {
	reg := registry.New(false)
	inst := reg.Add(enum.VenueBybit, enum.CategorySpot, "BTCUSDT")
	e := NewEngine(reg, obs.NewMetrics())

	s := NewStrategy("2003", enum.VenueBybit, 1, nil)
	e.Bind(s, func(time.Time) (Signal, bool) {
		return Signal{}, false
	}, inst)

	closeMinute(inst, "100")
	if s.Signal().Text != "init" {
		t.Fatalf("skipped evaluation replaced the signal: %q", s.Signal().Text)
	}
}

func TestEnginePublishNotifiesListeners(t *testing.T) {
	reg := registry.New(false)
	e := NewEngine(reg, obs.NewMetrics())

	s := NewStrategy("0003", enum.VenueOkx, 1, nil)
	e.Add(s)

	var got Signal
	e.OnSignal(func(_ *Strategy, sig Signal) { got = sig })

	e.Publish(s, Signal{Code: "0003", Text: "Order -> 5%", Percent: 100})

	if got.Text != "Order -> 5%" {
		t.Fatalf("listener missed the signal: %q", got.Text)
	}
	if e.Find("0003") != s {
		t.Fatal("find missed the registered strategy")
	}
}
