package obs

import (
	"sync/atomic"
	"time"
)

// Metrics collects lightweight counters and latency stats for the
// aggregation, evaluation and distribution paths.
type Metrics struct {
	candleTicks   uint64
	trades        uint64
	depthQueries  uint64
	completions   uint64
	evaluations   uint64
	signals       uint64
	authSuccess   uint64
	authFailure   uint64
	broadcasts    uint64
	broadcastErrs uint64
	queueDrops    uint64

	evalLatency      LatencyStats
	broadcastLatency LatencyStats
}

// LatencyStats aggregates duration samples in nanoseconds.
type LatencyStats struct {
	count uint64
	sum   uint64
	min   uint64
	max   uint64
}

// LatencySnapshot is a point-in-time view of latency stats.
type LatencySnapshot struct {
	Count uint64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
}

// Snapshot captures the current metrics values.
type Snapshot struct {
	CandleTicks      uint64
	Trades           uint64
	DepthQueries     uint64
	Completions      uint64
	Evaluations      uint64
	Signals          uint64
	AuthSuccess      uint64
	AuthFailure      uint64
	Broadcasts       uint64
	BroadcastErrs    uint64
	QueueDrops       uint64
	EvalLatency      LatencySnapshot
	BroadcastLatency LatencySnapshot
}

// NewMetrics allocates a metrics container.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// IncCandleTick records one normalized candle update.
func (m *Metrics) IncCandleTick() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.candleTicks, 1)
}

// IncTrade records one normalized trade.
func (m *Metrics) IncTrade() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.trades, 1)
}

// IncDepthQuery records one minute-close depth refresh.
func (m *Metrics) IncDepthQuery() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.depthQueries, 1)
}

// IncCompletion records one snapshot completion.
func (m *Metrics) IncCompletion() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.completions, 1)
}

// ObserveEvaluation records one strategy evaluation and its duration.
func (m *Metrics) ObserveEvaluation(d time.Duration) {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.evaluations, 1)
	m.evalLatency.Observe(d)
}

// IncSignal records one published signal.
func (m *Metrics) IncSignal() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.signals, 1)
}

// IncAuth records one authentication outcome.
func (m *Metrics) IncAuth(success bool) {
	if m == nil {
		return
	}
	if success {
		atomic.AddUint64(&m.authSuccess, 1)
	} else {
		atomic.AddUint64(&m.authFailure, 1)
	}
}

// ObserveBroadcast records one signal fan-out and its duration.
func (m *Metrics) ObserveBroadcast(d time.Duration) {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.broadcasts, 1)
	m.broadcastLatency.Observe(d)
}

// IncBroadcastErr records one failed session write.
func (m *Metrics) IncBroadcastErr() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.broadcastErrs, 1)
}

// IncQueueDrop records a dropped signal event.
func (m *Metrics) IncQueueDrop() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.queueDrops, 1)
}

// Snapshot returns a copy of the current metrics values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	return Snapshot{
		CandleTicks:      atomic.LoadUint64(&m.candleTicks),
		Trades:           atomic.LoadUint64(&m.trades),
		DepthQueries:     atomic.LoadUint64(&m.depthQueries),
		Completions:      atomic.LoadUint64(&m.completions),
		Evaluations:      atomic.LoadUint64(&m.evaluations),
		Signals:          atomic.LoadUint64(&m.signals),
		AuthSuccess:      atomic.LoadUint64(&m.authSuccess),
		AuthFailure:      atomic.LoadUint64(&m.authFailure),
		Broadcasts:       atomic.LoadUint64(&m.broadcasts),
		BroadcastErrs:    atomic.LoadUint64(&m.broadcastErrs),
		QueueDrops:       atomic.LoadUint64(&m.queueDrops),
		EvalLatency:      m.evalLatency.Snapshot(),
		BroadcastLatency: m.broadcastLatency.Snapshot(),
	}
}

// Observe records a duration sample.
func (l *LatencyStats) Observe(d time.Duration) {
	if d < 0 {
		return
	}
	nanos := uint64(d)
	atomic.AddUint64(&l.count, 1)
	atomic.AddUint64(&l.sum, nanos)

	for {
		min := atomic.LoadUint64(&l.min)
		if min != 0 && nanos >= min {
			break
		}
		if atomic.CompareAndSwapUint64(&l.min, min, nanos) {
			break
		}
	}

	for {
		max := atomic.LoadUint64(&l.max)
		if nanos <= max {
			break
		}
		if atomic.CompareAndSwapUint64(&l.max, max, nanos) {
			break
		}
	}
}

// Snapshot returns the aggregated latency stats.
func (l *LatencyStats) Snapshot() LatencySnapshot {
	count := atomic.LoadUint64(&l.count)
	if count == 0 {
		return LatencySnapshot{}
	}
	sum := atomic.LoadUint64(&l.sum)
	min := atomic.LoadUint64(&l.min)
	max := atomic.LoadUint64(&l.max)
	return LatencySnapshot{
		Count: count,
		Min:   time.Duration(min),
		Max:   time.Duration(max),
		Avg:   time.Duration(sum / count),
	}
}
