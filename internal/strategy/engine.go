package strategy

import (
	"sync"
	"time"

	"main/internal/market"
	"main/internal/obs"
	"main/internal/registry"
)

// Evaluator computes a signal from the current snapshots of a binding's
// legs. ok is false when the evaluation must be deferred (missing data,
// zero denominator), leaving the prior signal untouched.
type Evaluator func(now time.Time) (Signal, bool)

// binding gates one strategy on the joint completion of its legs.
// fired arms at most one evaluation between status sweeps.
type binding struct {
	mu       sync.Mutex
	strategy *Strategy
	legs     []*market.Instrument
	evaluate Evaluator
	fired    bool
}

// Engine owns the strategy set, wires each strategy to the completion
// events of its legs and publishes every computed signal to its
// listeners.
type Engine struct {
	reg     *registry.Registry
	metrics *obs.Metrics
	now     func() time.Time

	mu         sync.Mutex
	strategies []*Strategy
	bindings   []*binding
	onSignal   []func(*Strategy, Signal)
}

// NewEngine creates an engine over the registry's instruments.
func NewEngine(reg *registry.Registry, metrics *obs.Metrics) *Engine {
	return &Engine{
		reg:     reg,
		metrics: metrics,
		now:     time.Now,
	}
}

// Strategies returns the configured strategy list.
func (e *Engine) Strategies() []*Strategy {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Strategy, len(e.strategies))
	copy(out, e.strategies)
	return out
}

// Find returns the strategy with the given code, nil when absent.
func (e *Engine) Find(code string) *Strategy {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, s := range e.strategies {
		if s.Code == code {
			return s
		}
	}
	return nil
}

// OnSignal registers a listener for every published signal.
func (e *Engine) OnSignal(fn func(*Strategy, Signal)) {
	e.mu.Lock()
	e.onSignal = append(e.onSignal, fn)
	e.mu.Unlock()
}

// Add registers a strategy without a binding. Its signal only changes
// through Publish.
func (e *Engine) Add(s *Strategy) {
	e.mu.Lock()
	e.strategies = append(e.strategies, s)
	e.mu.Unlock()
}

// Bind registers a strategy and arms its evaluator on the completion
// events of the legs. The evaluator runs only when every leg's snapshot
// is complete at once, at most once between status sweeps.
func (e *Engine) Bind(s *Strategy, evaluate Evaluator, legs ...*market.Instrument) {
	b := &binding{strategy: s, legs: legs, evaluate: evaluate}

	e.mu.Lock()
	e.strategies = append(e.strategies, s)
	e.bindings = append(e.bindings, b)
	e.mu.Unlock()

	for _, leg := range legs {
		leg.OnComplete(func(*market.Instrument) {
			e.tryEvaluate(b)
		})
	}
}

func (e *Engine) tryEvaluate(b *binding) {
	b.mu.Lock()
	if b.fired {
		b.mu.Unlock()
		return
	}
	for _, leg := range b.legs {
		if !leg.Snapshot().Complete {
			b.mu.Unlock()
			return
		}
	}
	b.fired = true
	b.mu.Unlock()

	started := time.Now()
	sig, ok := b.evaluate(e.now())
	e.metrics.ObserveEvaluation(time.Since(started))
	if !ok {
		return
	}
	e.Publish(b.strategy, sig)
}

// Publish stores the signal on the strategy and notifies listeners.
func (e *Engine) Publish(s *Strategy, sig Signal) {
	s.setSignal(sig)
	e.metrics.IncSignal()

	e.mu.Lock()
	listeners := make([]func(*Strategy, Signal), len(e.onSignal))
	copy(listeners, e.onSignal)
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(s, sig)
	}
}

// Sweep clears every snapshot complete flag and re-arms the bindings.
// It must run before the next batch of venue ticks so a stale flag never
// causes a spurious re-evaluation.
func (e *Engine) Sweep() {
	for _, inst := range e.reg.Instruments() {
		inst.ClearComplete()
	}

	e.mu.Lock()
	bindings := make([]*binding, len(e.bindings))
	copy(bindings, e.bindings)
	e.mu.Unlock()

	for _, b := range bindings {
		b.mu.Lock()
		b.fired = false
		b.mu.Unlock()
	}
}
