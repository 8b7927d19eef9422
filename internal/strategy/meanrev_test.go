package strategy

import (
	"testing"

	"main/internal/market/enum"
)

func TestDeviationValue(t *testing.T) {
	if _, ok := deviationValue(dec("105"), dec("0")); ok {
		t.Fatal("zero mean must skip the evaluation")
	}

	got, ok := deviationValue(dec("105"), dec("100"))
	if !ok {
		t.Fatal("evaluation skipped with a full window")
	}
	if got.String() != "5" {
		t.Fatalf("deviation mismatch! should be 5 but got %s", got)
	}

	got, _ = deviationValue(dec("98"), dec("100"))
	if got.String() != "-2" {
		t.Fatalf("deviation mismatch! should be -2 but got %s", got)
	}
}

func TestMeanReversionSignal(t *testing.T) {
	stock := StockSignal{Venue: enum.VenueTerminal, Symbol: "SBER", Category: enum.CategoryTerminalEquity}

	t.Run("above the mean", func(t *testing.T) {
		sig := meanReversionSignal("3003", stock, dec("5"))
		if sig.Text != "Order -> 5%" {
			t.Fatalf("text mismatch: %q", sig.Text)
		}
		if len(sig.Stocks) != 1 || sig.Stocks[0].Side != enum.SideBuy {
			t.Fatalf("side mismatch: %+v", sig.Stocks)
		}
	})

	t.Run("below the mean", func(t *testing.T) {
		sig := meanReversionSignal("3003", stock, dec("-2"))
		if sig.Text != "Order -> -2%" {
			t.Fatalf("text mismatch: %q", sig.Text)
		}
		if len(sig.Stocks) != 1 || sig.Stocks[0].Side != enum.SideSell {
			t.Fatalf("side mismatch: %+v", sig.Stocks)
		}
	})

	t.Run("on the mean", func(t *testing.T) {
		sig := meanReversionSignal("3003", stock, dec("0"))
		if len(sig.Stocks) != 0 {
			t.Fatalf("flat deviation ordered: %+v", sig.Stocks)
		}
		if sig.Text != "No order -> 0%" {
			t.Fatalf("text mismatch: %q", sig.Text)
		}
	})
}
