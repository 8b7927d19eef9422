// Package ops loads the server configuration and resolves it into the
// runtime pieces: the instrument registry, the strategy catalog and
// the listener settings.
package ops

import (
	"encoding/json"
	"os"

	"github.com/yanun0323/errors"

	"main/internal/connector"
	"main/internal/market/enum"
	"main/internal/registry"
	"main/internal/strategy"
	"main/pkg/conn"
)

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Instruments []InstrumentConfig `json:"instruments"`
	Strategies  []strategy.Spec    `json:"strategies"`
	Connector   connector.Config   `json:"connector"`
	Terminal    TerminalConfig     `json:"terminal"`
	Synthetic   *SyntheticConfig   `json:"synthetic"`
	Postgres    *PostgresConfig    `json:"postgres"`
	Logging     LoggingConfig      `json:"logging"`
	Profiling   ProfilingConfig    `json:"profiling"`
}

// InstrumentConfig declares one registry instrument. For expiring
// categories Symbol is the base the rollover suffix attaches to.
type InstrumentConfig struct {
	Venue    string `json:"venue"`
	Category string `json:"category"`
	Symbol   string `json:"symbol"`
}

// TerminalConfig describes the terminal bridge listener.
type TerminalConfig struct {
	Addr string `json:"addr"`
}

// SyntheticConfig enables the in-process data generator for a venue.
type SyntheticConfig struct {
	Venue     string `json:"venue"`
	BasePrice int64  `json:"base_price"`
	BaseSize  int64  `json:"base_size"`
	Spread    int64  `json:"spread"`
	TickMs    int    `json:"tick_ms"`
}

// PostgresConfig describes the optional subscription ledger database.
type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"sslmode"`
}

// Option converts the config into connection options.
func (p *PostgresConfig) Option() conn.Option {
	return conn.Option{
		Host:     p.Host,
		Port:     p.Port,
		User:     p.User,
		Password: p.Password,
		Database: p.Database,
		SSLMode:  p.SSLMode,
	}
}

// LoggingConfig captures optional runtime logging flags.
type LoggingConfig struct {
	Quotes bool `json:"quotes"`
}

// ProfilingConfig describes the optional continuous profiler.
type ProfilingConfig struct {
	Enabled    bool   `json:"enabled"`
	ServerAddr string `json:"server_addr"`
	AppName    string `json:"app_name"`
}

// Load reads a JSON config file. An empty path yields the built-in
// defaults; a file with empty instrument or strategy lists falls back
// to the defaults for those sections.
func Load(path string) (FileConfig, error) {
	var cfg FileConfig

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return FileConfig{}, errors.Wrap(err, "read config file")
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return FileConfig{}, errors.Wrap(err, "parse config file")
		}
	}

	if len(cfg.Instruments) == 0 {
		cfg.Instruments = DefaultInstruments()
	}
	if len(cfg.Strategies) == 0 {
		cfg.Strategies = DefaultStrategies()
	}
	if cfg.Connector.AuthAddr == "" {
		cfg.Connector.AuthAddr = defaultAuthAddr
	}
	if cfg.Connector.DataAddr == "" {
		cfg.Connector.DataAddr = defaultDataAddr
	}
	if cfg.Terminal.Addr == "" {
		cfg.Terminal.Addr = defaultTerminalAddr
	}
	return cfg, nil
}

// BuildRegistry creates the registry and populates it from the config.
func BuildRegistry(cfg FileConfig) (*registry.Registry, error) {
	reg := registry.New(cfg.Logging.Quotes)
	for _, spec := range cfg.Instruments {
		venue, ok := enum.ParseVenue(spec.Venue)
		if !ok {
			return nil, errors.Errorf("unknown venue %q", spec.Venue)
		}
		category, ok := enum.ParseCategory(spec.Category)
		if !ok {
			return nil, errors.Errorf("unknown category %q", spec.Category)
		}
		reg.Add(venue, category, spec.Symbol)
	}
	return reg, nil
}
