package ops

import (
	"os"
	"path/filepath"
	"testing"

	"main/internal/market/enum"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}

	if len(cfg.Instruments) == 0 || len(cfg.Strategies) != 10 {
		t.Fatalf("defaults incomplete: %d instruments, %d strategies",
			len(cfg.Instruments), len(cfg.Strategies))
	}
	if cfg.Connector.AuthAddr == "" || cfg.Connector.DataAddr == "" || cfg.Terminal.Addr == "" {
		t.Fatalf("default addresses missing: %+v", cfg.Connector)
	}
	if cfg.Postgres != nil {
		t.Fatal("defaults must not configure a database")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"instruments": [
			{"venue": "Okx", "category": "Spot", "symbol": "BTC-USDT"},
			{"venue": "Okx", "category": "Futures", "symbol": "BTC-USDT-"}
		],
		"strategies": [
			{"code": "0001", "venue": "Okx", "kind": "spread", "leverage": 1, "legs": [
				{"venue": "Okx", "symbol": "BTC-USDT", "category": "Spot", "minQty": "0.1", "priceStep": "1", "precision": 5},
				{"venue": "Okx", "symbol": "BTC-USDT-", "category": "Futures", "minQty": "0.1", "priceStep": "0.01", "precision": 1}
			]}
		],
		"connector": {"auth_addr": ":9090", "data_addr": ":9091", "capacity": 50},
		"logging": {"quotes": true}
	}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if len(cfg.Instruments) != 2 || len(cfg.Strategies) != 1 {
		t.Fatalf("file sections ignored: %d instruments, %d strategies",
			len(cfg.Instruments), len(cfg.Strategies))
	}
	if cfg.Connector.AuthAddr != ":9090" || cfg.Connector.Capacity != 50 {
		t.Fatalf("connector section ignored: %+v", cfg.Connector)
	}
	if cfg.Terminal.Addr != defaultTerminalAddr {
		t.Fatalf("missing terminal addr must fall back, got %q", cfg.Terminal.Addr)
	}
	if !cfg.Logging.Quotes {
		t.Fatal("logging flag ignored")
	}
}

func TestBuildRegistry(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}

	reg, err := BuildRegistry(cfg)
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	if len(reg.Instruments()) != len(cfg.Instruments) {
		t.Fatalf("registry size mismatch: %d vs %d",
			len(reg.Instruments()), len(cfg.Instruments))
	}

	// expiring categories get their suffix at creation
	if inst := reg.FindByBase(enum.VenueOkx, enum.CategoryFutures, "BTC-USDT-"); inst == nil {
		t.Fatal("okx futures missing from default registry")
	} else if inst.ID() == "BTC-USDT-" {
		t.Fatal("okx futures carries no expiration suffix")
	}

	if inst := reg.Find(enum.VenueTerminal, enum.CategoryTerminalEquity, "SBER"); inst == nil {
		t.Fatal("terminal equity missing from default registry")
	}
}

func TestBuildRegistryRejectsUnknownNames(t *testing.T) {
	cfg := FileConfig{Instruments: []InstrumentConfig{{Venue: "Nasdaq", Category: "Spot", Symbol: "XYZ"}}}
	if _, err := BuildRegistry(cfg); err == nil {
		t.Fatal("unknown venue must fail")
	}

	cfg = FileConfig{Instruments: []InstrumentConfig{{Venue: "Okx", Category: "Options", Symbol: "XYZ"}}}
	if _, err := BuildRegistry(cfg); err == nil {
		t.Fatal("unknown category must fail")
	}
}
