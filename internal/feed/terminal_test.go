package feed

import (
	"testing"

	"github.com/shopspring/decimal"

	"main/internal/market/enum"
	"main/internal/obs"
	"main/internal/registry"
)

func TestTerminalFrameCreatesInstrument(t *testing.T) {
	reg := registry.New(false)
	bridge, err := NewTerminalBridge("127.0.0.1:0", reg, obs.NewMetrics())
	if err != nil {
		t.Fatalf("new bridge: %v", err)
	}

	bridge.apply(terminalFrame{
		Kind:     terminalKindCandle,
		Symbol:   "SBER",
		Board:    "TQBR",
		Interval: "1m",
		Open:     decimal.NewFromInt(250),
		High:     decimal.NewFromInt(251),
		Low:      decimal.NewFromInt(249),
		Close:    decimal.NewFromInt(250),
		Day:      20250203,
		Time:     101500,
	})

	inst := reg.Find(enum.VenueTerminal, enum.CategoryTerminalEquity, "SBER")
	if inst == nil {
		t.Fatal("candle frame did not create the instrument")
	}

	// same symbol again must reuse the instrument
	bridge.apply(terminalFrame{
		Kind:     terminalKindTrade,
		Symbol:   "SBER",
		Board:    "TQBR",
		Side:     "Buy",
		Quantity: decimal.NewFromInt(10),
	})
	if len(reg.Instruments()) != 1 {
		t.Fatalf("registry holds %d instruments, want 1", len(reg.Instruments()))
	}

	bridge.apply(terminalFrame{
		Kind:   terminalKindBook,
		Symbol: "SBER",
		Board:  "TQBR",
		Asks:   []terminalLevel{{Price: decimal.NewFromInt(251), Quantity: decimal.NewFromInt(3)}},
		Bids:   []terminalLevel{{Price: decimal.NewFromInt(249), Quantity: decimal.NewFromInt(2)}},
	})

	// close the minute by stamp change and check everything copied out
	bridge.apply(terminalFrame{
		Kind:     terminalKindCandle,
		Symbol:   "SBER",
		Board:    "TQBR",
		Interval: "1m",
		Open:     decimal.NewFromInt(250),
		High:     decimal.NewFromInt(252),
		Low:      decimal.NewFromInt(249),
		Close:    decimal.NewFromInt(251),
		Day:      20250203,
		Time:     101600,
	})

	snap := inst.Snapshot()
	if !snap.Complete {
		t.Fatal("stamp change did not close the minute")
	}
	if !snap.Trades.Buy.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("snapshot tally: buy=%s want 10", snap.Trades.Buy)
	}
	if !snap.Book.AllAsks.Equal(decimal.NewFromInt(3)) || !snap.Book.AllBids.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("snapshot book: asks=%s bids=%s", snap.Book.AllAsks, snap.Book.AllBids)
	}
}

func TestTerminalFrameIgnoresGarbage(t *testing.T) {
	reg := registry.New(false)
	bridge, err := NewTerminalBridge("127.0.0.1:0", reg, obs.NewMetrics())
	if err != nil {
		t.Fatalf("new bridge: %v", err)
	}

	bridge.apply(terminalFrame{Kind: terminalKindCandle})                       // no symbol
	bridge.apply(terminalFrame{Kind: "unknown", Symbol: "SBER", Board: "TQBR"}) // unknown kind
	bridge.apply(terminalFrame{Kind: terminalKindTrade, Symbol: "GAZP", Board: "TQBR", Side: "Hold"})

	if len(reg.Instruments()) != 2 {
		t.Fatalf("registry holds %d instruments, want 2", len(reg.Instruments()))
	}
}
