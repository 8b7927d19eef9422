package market

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRollingAverageWindow(t *testing.T) {
	var r RollingAverage

	hundred := decimal.NewFromInt(100)
	for i := 0; i < 59; i++ {
		r.Append(hundred)
	}
	if !r.Mean().IsZero() {
		t.Fatalf("mean before full window: got %s want 0", r.Mean())
	}

	r.Append(hundred)
	if !r.Mean().Equal(hundred) {
		t.Fatalf("mean at full window: got %s want 100", r.Mean())
	}
	if r.Len() != 60 {
		t.Fatalf("window length: got %d want 60", r.Len())
	}

	// the sixty-first value evicts the oldest
	r.Append(decimal.NewFromInt(160))
	if r.Len() != 60 {
		t.Fatalf("window length after eviction: got %d want 60", r.Len())
	}
	want := decimal.NewFromInt(101)
	if !r.Mean().Equal(want) {
		t.Fatalf("mean after eviction: got %s want %s", r.Mean(), want)
	}
}
