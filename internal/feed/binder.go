package feed

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/logs"

	"main/internal/market"
	"main/internal/market/enum"
	"main/internal/obs"
	"main/internal/registry"
)

const depthFetchTimeout = 3 * time.Second

// Binder connects venue adapters to registry instruments: it installs
// the minute-close depth refresh hook, counts traffic and keeps
// subscriptions alive across expiration rollovers.
type Binder struct {
	reg      *registry.Registry
	metrics  *obs.Metrics
	adapters map[enum.Venue]Adapter
}

func NewBinder(reg *registry.Registry, metrics *obs.Metrics) *Binder {
	return &Binder{
		reg:      reg,
		metrics:  metrics,
		adapters: make(map[enum.Venue]Adapter),
	}
}

// Register adds a venue adapter. Later registrations for the same
// venue replace earlier ones.
func (b *Binder) Register(adapter Adapter) {
	if adapter == nil {
		return
	}
	b.adapters[adapter.Venue()] = adapter
}

// Bind wires every registered adapter to its venue's instruments and
// starts the streams. Renamed instruments are resubscribed so the
// venue sees the rolled contract ID.
func (b *Binder) Bind(ctx context.Context) {
	for venue, adapter := range b.adapters {
		for _, inst := range b.reg.ByVenue(venue) {
			b.bindInstrument(ctx, adapter, inst)
		}
	}

	b.reg.OnRename(func(rn registry.Rename) {
		adapter, ok := b.adapters[rn.Instrument.Venue]
		if !ok {
			return
		}
		if err := adapter.Subscribe(ctx, rn.Instrument, b.sinkFor(rn.Instrument)); err != nil {
			logs.Errorf("resubscribe %s after rollover: %v", rn.Instrument.ID(), err)
		}
	})
}

func (b *Binder) bindInstrument(ctx context.Context, adapter Adapter, inst *market.Instrument) {
	inst.SetDepthRefresh(func(target *market.Instrument) {
		b.refreshDepth(ctx, adapter, target)
	})
	inst.OnComplete(func(*market.Instrument) {
		b.metrics.IncCompletion()
	})

	if err := adapter.Subscribe(ctx, inst, b.sinkFor(inst)); err != nil {
		logs.Errorf("subscribe %s on %s: %v", inst.ID(), adapter.Venue(), err)
	}
}

// refreshDepth pulls a fresh book ahead of the snapshot copy at each
// minute close. A failed query zeroes the book so stale depth never
// reaches a snapshot.
func (b *Binder) refreshDepth(ctx context.Context, adapter Adapter, inst *market.Instrument) {
	b.metrics.IncDepthQuery()

	fetchCtx, cancel := context.WithTimeout(ctx, depthFetchTimeout)
	defer cancel()

	asks, bids, err := adapter.FetchDepth(fetchCtx, inst)
	if err != nil {
		logs.Errorf("fetch depth %s: %v", inst.ID(), err)
		inst.ZeroBook()
		return
	}
	inst.ApplyBookDepth(asks, bids)
}

func (b *Binder) sinkFor(inst *market.Instrument) Sink {
	return &instrumentSink{inst: inst, metrics: b.metrics}
}

// instrumentSink routes one adapter stream into its instrument.
type instrumentSink struct {
	inst    *market.Instrument
	metrics *obs.Metrics
}

func (s *instrumentSink) OnCandle(interval enum.Interval, tick market.CandleTick) {
	s.metrics.IncCandleTick()
	s.inst.ApplyCandleTick(interval, tick)
}

func (s *instrumentSink) OnTrade(side enum.Side, quantity decimal.Decimal) {
	s.metrics.IncTrade()
	s.inst.ApplyTrade(side, quantity)
}

func (s *instrumentSink) OnDepth(asks, bids []market.Level) {
	s.inst.ApplyBookDepth(asks, bids)
}
