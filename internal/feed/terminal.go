package feed

import (
	"context"
	"encoding/json"
	"net"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"main/internal/market"
	"main/internal/market/enum"
	"main/internal/obs"
	"main/internal/registry"
	"main/pkg/frame"
	"main/pkg/tcp"
)

const (
	terminalKindCandle = "candle"
	terminalKindTrade  = "trade"
	terminalKindBook   = "book"
)

type terminalLevel struct {
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"qty"`
}

// terminalFrame is one framed JSON packet pushed by the trading
// terminal. Candle packets always carry the day and time stamps, so
// interval boundaries are detected by stamp change rather than a
// final flag.
type terminalFrame struct {
	Kind     string `json:"kind"`
	Symbol   string `json:"name"`
	Board    string `json:"type"`
	Interval string `json:"interval"`

	Open  decimal.Decimal `json:"open"`
	High  decimal.Decimal `json:"high"`
	Low   decimal.Decimal `json:"low"`
	Close decimal.Decimal `json:"close"`
	Day   int             `json:"day"`
	Time  int             `json:"time"`

	Side     string          `json:"side"`
	Quantity decimal.Decimal `json:"qty"`

	Asks []terminalLevel `json:"asks"`
	Bids []terminalLevel `json:"bids"`
}

// TerminalBridge ingests indicator exports from a desktop trading
// terminal over TCP. Instruments appear in the registry the first time
// the terminal mentions them.
type TerminalBridge struct {
	reg     *registry.Registry
	metrics *obs.Metrics
	server  *tcp.Server
}

func NewTerminalBridge(addr string, reg *registry.Registry, metrics *obs.Metrics) (*TerminalBridge, error) {
	server, err := tcp.NewServer(addr)
	if err != nil {
		return nil, err
	}
	return &TerminalBridge{reg: reg, metrics: metrics, server: server}, nil
}

// Start listens for terminal connections until the context is done.
func (b *TerminalBridge) Start(ctx context.Context) error {
	if err := b.server.Listen(); err != nil {
		return err
	}
	logs.Infof("terminal bridge listening on %s", b.server.Addr())

	go func() {
		<-ctx.Done()
		b.server.Close()
	}()

	go func() {
		for {
			select {
			case <-sys.Shutdown():
				return
			case <-ctx.Done():
				return
			default:
			}

			conn, err := b.server.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
				}
				logs.Errorf("accept terminal connection: %v", err)
				continue
			}
			go b.serve(conn)
		}
	}()
	return nil
}

func (b *TerminalBridge) serve(conn net.Conn) {
	defer conn.Close()
	logs.Infof("terminal connected from %s", conn.RemoteAddr())

	for {
		payload, err := frame.Read(conn)
		if err != nil {
			logs.Infof("terminal disconnected from %s", conn.RemoteAddr())
			return
		}

		var f terminalFrame
		if err := json.Unmarshal(payload, &f); err != nil {
			logs.Errorf("decode terminal frame: %v", err)
			continue
		}
		b.apply(f)
	}
}

func (b *TerminalBridge) apply(f terminalFrame) {
	if f.Symbol == "" {
		return
	}
	category, ok := enum.ParseCategory(f.Board)
	if !ok {
		category = enum.CategoryTerminalFutures
	}
	inst := b.reg.Ensure(enum.VenueTerminal, category, f.Symbol)

	switch f.Kind {
	case terminalKindCandle:
		interval, ok := enum.ParseInterval(f.Interval)
		if !ok {
			logs.Errorf("terminal frame %s: unknown interval %q", f.Symbol, f.Interval)
			return
		}
		b.metrics.IncCandleTick()
		inst.ApplyCandleTick(interval, market.CandleTick{
			Open:  f.Open,
			High:  f.High,
			Low:   f.Low,
			Close: f.Close,
			Day:   f.Day,
			Time:  f.Time,
		})

	case terminalKindTrade:
		side, ok := enum.ParseSide(f.Side)
		if !ok {
			logs.Errorf("terminal frame %s: unknown side %q", f.Symbol, f.Side)
			return
		}
		b.metrics.IncTrade()
		inst.ApplyTrade(side, f.Quantity)

	case terminalKindBook:
		asks := make([]market.Level, 0, len(f.Asks))
		for _, lvl := range f.Asks {
			asks = append(asks, market.Level{Price: lvl.Price, Quantity: lvl.Quantity})
		}
		bids := make([]market.Level, 0, len(f.Bids))
		for _, lvl := range f.Bids {
			bids = append(bids, market.Level{Price: lvl.Price, Quantity: lvl.Quantity})
		}
		inst.ApplyBookDepth(asks, bids)

	default:
		logs.Errorf("terminal frame %s: unknown kind %q", f.Symbol, f.Kind)
	}
}
