package market

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"main/internal/market/enum"
)

func newTestInstrument() *Instrument {
	return NewInstrument(enum.VenueOkx, enum.CategorySpot, Name{Base: "BTC-USDT"}, false)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func tick(o, h, l, c string) CandleTick {
	return CandleTick{Open: dec(o), High: dec(h), Low: dec(l), Close: dec(c)}
}

func TestApplyCandleTickInPlace(t *testing.T) {
	inst := newTestInstrument()

	inst.ApplyCandleTick(enum.IntervalOneMinute, tick("100", "101", "99", "100.5"))
	inst.ApplyCandleTick(enum.IntervalOneMinute, tick("100", "102", "99", "101.5"))

	snap := inst.Snapshot()
	if snap.Complete {
		t.Fatal("snapshot complete without a boundary")
	}
	if !snap.Candle(enum.IntervalOneMinute).Close.IsZero() {
		t.Fatalf("snapshot candle updated without a boundary: %s",
			snap.Candle(enum.IntervalOneMinute).Close)
	}
}

func TestSnapshotCandleChainsOffReturnValue(t *testing.T) {
	inst := newTestInstrument()

	inst.ApplyCandleTick(enum.IntervalOneMinute, tick("100", "101", "99", "100.5"))
	inst.ApplyCandleTick(enum.IntervalOneMinute, CandleTick{
		Open: dec("100"), High: dec("101"), Low: dec("99"), Close: dec("100.5"), Final: true,
	})

	// evaluators read candles straight off the returned copy
	if !inst.Snapshot().Candle(enum.IntervalOneMinute).Close.Equal(dec("100.5")) {
		t.Fatalf("chained candle read: got %s want 100.5",
			inst.Snapshot().Candle(enum.IntervalOneMinute).Close)
	}
}

func TestFinalTickClosesMinute(t *testing.T) {
	inst := newTestInstrument()

	fired := 0
	inst.OnComplete(func(*Instrument) { fired++ })

	inst.ApplyCandleTick(enum.IntervalOneMinute, tick("100", "101", "99", "100.5"))
	inst.ApplyTrade(enum.SideBuy, dec("3"))
	inst.ApplyTrade(enum.SideSell, dec("1"))

	final := tick("100", "102", "99", "101.5")
	final.Final = true
	inst.ApplyCandleTick(enum.IntervalOneMinute, final)

	snap := inst.Snapshot()
	if !snap.Complete {
		t.Fatal("snapshot not complete after final tick")
	}
	if fired != 1 {
		t.Fatalf("completion listener fired %d times, want 1", fired)
	}
	c := snap.Candle(enum.IntervalOneMinute)
	if !c.Close.Equal(dec("101.5")) {
		t.Fatalf("snapshot close: got %s want 101.5", c.Close)
	}
	if !snap.Trades.Buy.Equal(dec("3")) || !snap.Trades.Sell.Equal(dec("1")) {
		t.Fatalf("snapshot tally: buy=%s sell=%s", snap.Trades.Buy, snap.Trades.Sell)
	}

	// the live tally resets, the next close only carries fresh trades
	inst.ApplyTrade(enum.SideBuy, dec("7"))
	inst.ClearComplete()
	next := tick("101.5", "103", "101", "102")
	next.Final = true
	inst.ApplyCandleTick(enum.IntervalOneMinute, next)

	snap = inst.Snapshot()
	if !snap.Trades.Buy.Equal(dec("7")) || !snap.Trades.Sell.IsZero() {
		t.Fatalf("tally after reset: buy=%s sell=%s", snap.Trades.Buy, snap.Trades.Sell)
	}
	if fired != 2 {
		t.Fatalf("completion listener fired %d times, want 2", fired)
	}
}

func TestCompletionEdgeFiresOnce(t *testing.T) {
	inst := newTestInstrument()

	fired := 0
	inst.OnComplete(func(*Instrument) { fired++ })

	final := tick("100", "101", "99", "100.5")
	final.Final = true
	inst.ApplyCandleTick(enum.IntervalOneMinute, final)
	inst.ApplyCandleTick(enum.IntervalOneMinute, final)

	if fired != 1 {
		t.Fatalf("listener fired %d times while flag stayed up, want 1", fired)
	}
}

func TestTimeChangeClosesMinute(t *testing.T) {
	inst := newTestInstrument()

	day := EncodeDay(time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC))
	minute := 101500

	// align the ladder onto a known minute, then drop the flag it may
	// have raised crossing from the seeded stamp
	first := tick("250", "251", "249", "250")
	first.Day, first.Time = day, minute
	inst.ApplyCandleTick(enum.IntervalOneMinute, first)
	inst.ClearComplete()

	second := tick("250", "251", "249", "250.5")
	second.Day, second.Time = day, minute
	inst.ApplyCandleTick(enum.IntervalOneMinute, second)

	if inst.Snapshot().Complete {
		t.Fatal("tick inside the current minute must not close it")
	}

	third := tick("250.5", "252", "250", "251")
	third.Day, third.Time = day, minute+100
	inst.ApplyCandleTick(enum.IntervalOneMinute, third)

	snap := inst.Snapshot()
	if !snap.Complete {
		t.Fatal("time change did not close the minute")
	}
	if !snap.Candle(enum.IntervalOneMinute).Close.Equal(dec("250.5")) {
		t.Fatalf("closed minute keeps the prior close: got %s want 250.5",
			snap.Candle(enum.IntervalOneMinute).Close)
	}
}

func TestDepthRefreshRunsBeforeCopyOut(t *testing.T) {
	inst := newTestInstrument()

	inst.SetDepthRefresh(func(target *Instrument) {
		target.ApplyBookDepth(
			[]Level{{Price: dec("101"), Quantity: dec("5")}},
			[]Level{{Price: dec("99"), Quantity: dec("4")}},
		)
	})

	final := tick("100", "101", "99", "100.5")
	final.Final = true
	inst.ApplyCandleTick(enum.IntervalOneMinute, final)

	snap := inst.Snapshot()
	if !snap.Book.AllAsks.Equal(dec("5")) || !snap.Book.AllBids.Equal(dec("4")) {
		t.Fatalf("snapshot book missed the refresh: asks=%s bids=%s",
			snap.Book.AllAsks, snap.Book.AllBids)
	}
}

func TestEmptyDepthZeroesBook(t *testing.T) {
	inst := newTestInstrument()

	inst.ApplyBookDepth(
		[]Level{{Price: dec("101"), Quantity: dec("5")}},
		[]Level{{Price: dec("99"), Quantity: dec("4")}},
	)
	inst.ApplyBookDepth(nil, nil)

	final := tick("100", "101", "99", "100.5")
	final.Final = true
	inst.ApplyCandleTick(enum.IntervalOneMinute, final)

	snap := inst.Snapshot()
	if !snap.Book.AllAsks.IsZero() || !snap.Book.AllBids.IsZero() {
		t.Fatalf("empty depth must zero the aggregate: asks=%s bids=%s",
			snap.Book.AllAsks, snap.Book.AllBids)
	}
}

func TestSeedCloses(t *testing.T) {
	inst := newTestInstrument()

	closes := make([]decimal.Decimal, 60)
	for i := range closes {
		closes[i] = dec("200")
	}
	inst.SeedCloses(closes)

	if !inst.RollingMean().Equal(dec("200")) {
		t.Fatalf("rolling mean after seed: got %s want 200", inst.RollingMean())
	}
}
