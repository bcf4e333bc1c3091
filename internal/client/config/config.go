package config

import (
	"io"
	"time"

	"github.com/spf13/pflag"
)

// Config holds runtime settings for the paydesk CLI.
//
// Fields:
//   - BaseURL: scheme://host:port of the backend API.
//   - SessionDB: path of the SQLite file holding the durable session.
//   - RequestTimeout: per-request HTTP timeout; zero disables it.
//   - WatchDebounce: quiet window before a cross-process session change is announced.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	BaseURL        string
	SessionDB      string
	RequestTimeout time.Duration
	WatchDebounce  time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8000"
	c.SessionDB = "paydesk.db"
	c.RequestTimeout = 5 * time.Second
	c.WatchDebounce = 200 * time.Millisecond
	c.LogLevel = "info"
}

// Load builds a Config from defaults, then the JSON file named by the
// config flag, then the flags set on fs. fs must have been populated by
// RegisterFlags and parsed.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path, err := fs.GetString(flagConfig)
	if err != nil {
		return nil, err
	}
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig parses args (program name excluded) on a private flag set and
// calls Load. Unknown flags and positionals are ignored. Malformed input
// panics.
func LoadConfig(args []string) *Config {
	fs := pflag.NewFlagSet("paydesk", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.ParseErrorsAllowlist.UnknownFlags = true
	RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
	cfg, err := Load(fs)
	if err != nil {
		panic(err)
	}
	return cfg
}
