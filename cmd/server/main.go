package main

import (
	"context"
	"flag"
	"log"
	"time"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"main/internal/connector"
	"main/internal/feed"
	"main/internal/market/enum"
	"main/internal/obs"
	"main/internal/ops"
	"main/internal/session"
	"main/internal/strategy"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config (empty = built-in defaults)")
	flag.Parse()

	cfg, err := ops.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if cfg.Profiling.Enabled {
		appName := cfg.Profiling.AppName
		if appName == "" {
			appName = "signal/server"
		}
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: appName,
			ServerAddress:   cfg.Profiling.ServerAddr,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			log.Fatalf("pyroscope start failed: %v", err)
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg, err := ops.BuildRegistry(cfg)
	if err != nil {
		log.Fatalf("registry build failed: %v", err)
	}
	metrics := obs.NewMetrics()

	store := session.NewStore()
	if cfg.Postgres != nil {
		ledger, err := session.NewLedger(cfg.Postgres.Option())
		if err != nil {
			log.Fatalf("ledger open failed: %v", err)
		}
		defer ledger.Close()
		if err := ledger.Hydrate(store); err != nil {
			log.Fatalf("ledger hydrate failed: %v", err)
		}
		ledger.Attach(store)
	}

	engine := strategy.NewEngine(reg, metrics)

	conn, err := connector.New(cfg.Connector, store, engine, metrics)
	if err != nil {
		log.Fatalf("connector build failed: %v", err)
	}
	if err := conn.Start(ctx); err != nil {
		log.Fatalf("connector start failed: %v", err)
	}

	binder := feed.NewBinder(reg, metrics)
	if cfg.Synthetic != nil {
		venue, ok := enum.ParseVenue(cfg.Synthetic.Venue)
		if !ok {
			log.Fatalf("synthetic feed: unknown venue %q", cfg.Synthetic.Venue)
		}
		binder.Register(feed.NewSynthetic(
			venue,
			cfg.Synthetic.BasePrice,
			cfg.Synthetic.BaseSize,
			cfg.Synthetic.Spread,
			time.Duration(cfg.Synthetic.TickMs)*time.Millisecond,
		))
	}
	binder.Bind(ctx)

	bridge, err := feed.NewTerminalBridge(cfg.Terminal.Addr, reg, metrics)
	if err != nil {
		log.Fatalf("terminal bridge build failed: %v", err)
	}
	if err := bridge.Start(ctx); err != nil {
		log.Fatalf("terminal bridge start failed: %v", err)
	}

	// The catalog binds after the feeds so completion listeners observe
	// live instruments from the first minute.
	if err := strategy.Build(engine, reg, cfg.Strategies); err != nil {
		log.Fatalf("strategy build failed: %v", err)
	}

	engine.StartStatusSweep(ctx)
	reg.StartDailyCheck(ctx)

	logs.Infof("server up, %d instruments, %d strategies", len(reg.Instruments()), len(engine.Strategies()))
	<-sys.Shutdown()
	logs.Infof("server shutting down")
}
