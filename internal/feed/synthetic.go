package feed

import (
	"context"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/pkg/sys"

	"main/internal/market"
	"main/internal/market/enum"
)

// Synthetic creates market data for one venue without touching the
// network. Each subscribed instrument gets a random walk around a base
// price, with a final candle tick and a depth ladder at every minute.
type Synthetic struct {
	venue     enum.Venue
	basePrice int64
	baseSize  int64
	spread    int64
	tickEvery time.Duration
}

// NewSynthetic creates a generator for the venue.
func NewSynthetic(venue enum.Venue, basePrice, baseSize, spread int64, tickEvery time.Duration) *Synthetic {
	if basePrice <= 0 {
		basePrice = 100
	}
	if baseSize <= 0 {
		baseSize = 1
	}
	if spread < 0 {
		spread = 0
	}
	if tickEvery <= 0 {
		tickEvery = time.Second
	}
	return &Synthetic{
		venue:     venue,
		basePrice: basePrice,
		baseSize:  baseSize,
		spread:    spread,
		tickEvery: tickEvery,
	}
}

func (s *Synthetic) Venue() enum.Venue { return s.venue }

// Subscribe streams a random walk into the sink until the context is
// done.
func (s *Synthetic) Subscribe(ctx context.Context, inst *market.Instrument, sink Sink) error {
	go s.run(ctx, sink)
	return nil
}

// FetchDepth returns a fixed ladder around the base price.
func (s *Synthetic) FetchDepth(ctx context.Context, inst *market.Instrument) ([]market.Level, []market.Level, error) {
	asks := make([]market.Level, 0, 5)
	bids := make([]market.Level, 0, 5)
	for i := int64(1); i <= 5; i++ {
		asks = append(asks, market.Level{
			Price:    decimal.NewFromInt(s.basePrice + s.spread*i),
			Quantity: decimal.NewFromInt(s.baseSize),
		})
		bids = append(bids, market.Level{
			Price:    decimal.NewFromInt(s.basePrice - s.spread*i),
			Quantity: decimal.NewFromInt(s.baseSize),
		})
	}
	return asks, bids, nil
}

func (s *Synthetic) run(ctx context.Context, sink Sink) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ticker := time.NewTicker(s.tickEvery)
	defer ticker.Stop()

	price := decimal.NewFromInt(s.basePrice)
	candle := market.Candle{Open: price, High: price, Low: price, Close: price}

	for {
		select {
		case <-sys.Shutdown():
			return
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			step := decimal.NewFromInt(int64(rng.Intn(3) - 1))
			price = price.Add(step)
			candle.Close = price
			if price.GreaterThan(candle.High) {
				candle.High = price
			}
			if price.LessThan(candle.Low) {
				candle.Low = price
			}

			final := now.Second() == 59
			sink.OnCandle(enum.IntervalOneMinute, market.CandleTick{
				Open:  candle.Open,
				High:  candle.High,
				Low:   candle.Low,
				Close: candle.Close,
				Day:   market.EncodeDay(now),
				Time:  market.EncodeTime(now),
				Final: final,
			})

			side := enum.SideBuy
			if rng.Intn(2) == 1 {
				side = enum.SideSell
			}
			sink.OnTrade(side, decimal.NewFromInt(s.baseSize))

			if final {
				candle = market.Candle{Open: price, High: price, Low: price, Close: price}
			}
		}
	}
}
