package market

import "github.com/shopspring/decimal"

// Level is one price level of a depth query.
type Level struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// BookAggregate reduces a full depth query to the per-side sums the
// strategy evaluators consume. Best* cover the top twenty levels.
type BookAggregate struct {
	AllAsks  decimal.Decimal
	BestAsks decimal.Decimal
	NumAsks  decimal.Decimal
	AllBids  decimal.Decimal
	BestBids decimal.Decimal
	NumBids  decimal.Decimal
}

const bestLevels = 20

// Reduce recomputes the aggregate from fresh depth levels.
func (b *BookAggregate) Reduce(asks, bids []Level) {
	b.Zero()
	b.NumAsks = decimal.NewFromInt(int64(len(asks)))
	b.NumBids = decimal.NewFromInt(int64(len(bids)))
	for i, ask := range asks {
		b.AllAsks = b.AllAsks.Add(ask.Quantity)
		if i < bestLevels {
			b.BestAsks = b.BestAsks.Add(ask.Quantity)
		}
	}
	for i, bid := range bids {
		b.AllBids = b.AllBids.Add(bid.Quantity)
		if i < bestLevels {
			b.BestBids = b.BestBids.Add(bid.Quantity)
		}
	}
}

// Zero clears the aggregate, used when the depth query fails or is empty.
func (b *BookAggregate) Zero() {
	*b = BookAggregate{}
}
