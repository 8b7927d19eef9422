package market

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/logs"

	"main/internal/market/enum"
)

// Instrument owns the live aggregation state for one venue symbol: the
// six-interval candle ladder, the order-book aggregate, the trade tally,
// the rolling close average and the gated snapshot. Writes come from a
// single venue feed; the strategy engine only reads snapshot copies.
type Instrument struct {
	Venue    enum.Venue
	Category enum.Category

	mu         sync.Mutex
	name       Name
	candles    [enum.IntervalCount]Candle
	trades     TradeTally
	book       BookAggregate
	rolling    RollingAverage
	snapshot   Snapshot
	active     bool
	logging    bool
	lastUpdate time.Time

	depthRefresh func(*Instrument)
	onComplete   []func(*Instrument)
}

// NewInstrument creates an instrument with an empty ladder.
func NewInstrument(venue enum.Venue, category enum.Category, name Name, logging bool) *Instrument {
	inst := &Instrument{
		Venue:    venue,
		Category: category,
		name:     name,
		logging:  logging,
	}
	for i := range inst.candles {
		inst.candles[i] = NewCandle(enum.Interval(i + 1))
		inst.snapshot.Candles[i] = Candle{Interval: enum.Interval(i + 1)}
	}
	return inst
}

// Name returns the current identity.
func (inst *Instrument) Name() Name {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.name
}

// ID returns the full market symbol.
func (inst *Instrument) ID() string {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.name.ID()
}

// SetExpiration replaces the expiration suffix and reports whether the
// identity actually changed.
func (inst *Instrument) SetExpiration(suffix string) bool {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	if inst.name.Expiration == suffix {
		return false
	}
	inst.name.Expiration = suffix
	return true
}

// IsActive reports whether the venue feed for this instrument is live.
func (inst *Instrument) IsActive() bool {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.active
}

// SetActive flags the venue feed state.
func (inst *Instrument) SetActive(active bool) {
	inst.mu.Lock()
	inst.active = active
	inst.mu.Unlock()
}

// LastUpdate returns the time of the most recent mutation.
func (inst *Instrument) LastUpdate() time.Time {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.lastUpdate
}

// SetDepthRefresh installs the hook that requeries venue depth at each
// one-minute close. The hook runs outside the instrument lock and is
// expected to call ApplyBookDepth or ZeroBook.
func (inst *Instrument) SetDepthRefresh(fn func(*Instrument)) {
	inst.mu.Lock()
	inst.depthRefresh = fn
	inst.mu.Unlock()
}

// OnComplete registers a listener fired on the false-to-true edge of the
// snapshot complete flag.
func (inst *Instrument) OnComplete(fn func(*Instrument)) {
	inst.mu.Lock()
	inst.onComplete = append(inst.onComplete, fn)
	inst.mu.Unlock()
}

// ApplyCandleTick routes one candle update into the ladder. A tick opens
// a new interval exactly when the adapter marks it final or its day/time
// differ from the stored candle; only that edge triggers the one-minute
// depth refresh and snapshot copy-out.
func (inst *Instrument) ApplyCandleTick(interval enum.Interval, tick CandleTick) {
	if !interval.IsAvailable() {
		return
	}

	inst.mu.Lock()
	c := &inst.candles[interval.Index()]
	if !c.isBoundary(tick) {
		c.applyOHLC(tick)
		inst.lastUpdate = time.Now()
		inst.mu.Unlock()
		return
	}

	if tick.Final {
		// a final update carries the completed candle's values
		c.applyOHLC(tick)
		if tick.Day != 0 {
			c.Day, c.Time = tick.Day, tick.Time
		}
	}
	oneMinute := interval == enum.IntervalOneMinute
	refresh := inst.depthRefresh
	inst.mu.Unlock()

	if oneMinute && refresh != nil {
		refresh(inst)
	}

	inst.mu.Lock()
	c = &inst.candles[interval.Index()]
	inst.snapshot.Candles[interval.Index()] = *c

	var fire []func(*Instrument)
	if oneMinute {
		inst.snapshot.Book = inst.book
		inst.snapshot.Trades = inst.trades
		inst.rolling.Append(c.Close)
		if !inst.snapshot.Complete {
			inst.snapshot.Complete = true
			fire = append(fire, inst.onComplete...)
		}
		inst.trades.Reset()
		if inst.logging {
			inst.logQuote(c)
		}
	}
	if !tick.Final {
		// tick is the first update of the new interval
		c.Day, c.Time = tick.Day, tick.Time
		c.applyOHLC(tick)
	}
	inst.lastUpdate = time.Now()
	inst.mu.Unlock()

	for _, fn := range fire {
		fn(inst)
	}
}

// ApplyTrade accumulates one trade into the tally.
func (inst *Instrument) ApplyTrade(side enum.Side, quantity decimal.Decimal) {
	inst.mu.Lock()
	inst.trades.Apply(side, quantity)
	inst.lastUpdate = time.Now()
	inst.mu.Unlock()
}

// ApplyBookDepth recomputes the book aggregate from fresh depth levels.
// Empty depth zeroes the aggregate.
func (inst *Instrument) ApplyBookDepth(asks, bids []Level) {
	inst.mu.Lock()
	if len(asks) == 0 && len(bids) == 0 {
		inst.book.Zero()
	} else {
		inst.book.Reduce(asks, bids)
	}
	inst.mu.Unlock()
}

// ZeroBook clears the book aggregate after a failed depth query.
func (inst *Instrument) ZeroBook() {
	inst.mu.Lock()
	inst.book.Zero()
	inst.mu.Unlock()
}

// SetBookAggregate stores precomputed sums pushed by the terminal bridge.
func (inst *Instrument) SetBookAggregate(book BookAggregate) {
	inst.mu.Lock()
	inst.book = book
	inst.lastUpdate = time.Now()
	inst.mu.Unlock()
}

// SetTradeTally stores precomputed trade counters pushed by the terminal
// bridge.
func (inst *Instrument) SetTradeTally(tally TradeTally) {
	inst.mu.Lock()
	inst.trades = tally
	inst.lastUpdate = time.Now()
	inst.mu.Unlock()
}

// SeedCloses preloads historical one-minute closes into the rolling
// average so mean-reversion strategies evaluate right after start.
func (inst *Instrument) SeedCloses(closes []decimal.Decimal) {
	inst.mu.Lock()
	for _, v := range closes {
		inst.rolling.Append(v)
	}
	inst.mu.Unlock()
}

// Reset clears the tally, the book and the snapshot complete flag.
func (inst *Instrument) Reset() {
	inst.mu.Lock()
	inst.trades = TradeTally{}
	inst.book.Zero()
	inst.snapshot.Complete = false
	inst.mu.Unlock()
}

// Snapshot returns a copy of the gated snapshot.
func (inst *Instrument) Snapshot() Snapshot {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.snapshot
}

// ClearComplete drops the complete flag, run by the minute status sweep.
func (inst *Instrument) ClearComplete() {
	inst.mu.Lock()
	inst.snapshot.Complete = false
	inst.mu.Unlock()
}

// RollingMean returns the 60-close mean, zero while the window fills.
func (inst *Instrument) RollingMean() decimal.Decimal {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.rolling.Mean()
}

func (inst *Instrument) logQuote(c *Candle) {
	logs.Infof("quote %s %s %d %06d o=%s h=%s l=%s c=%s buy=%s sell=%s asks=%s/%s bids=%s/%s",
		inst.Venue, inst.name.ID(), c.Day, c.Time,
		c.Open, c.High, c.Low, c.Close,
		inst.snapshot.Trades.Buy, inst.snapshot.Trades.Sell,
		inst.snapshot.Book.AllAsks, inst.snapshot.Book.BestAsks,
		inst.snapshot.Book.AllBids, inst.snapshot.Book.BestBids,
	)
}
