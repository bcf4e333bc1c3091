package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flag names shared by RegisterFlags and applyFlags.
const (
	flagAddr     = "addr"
	flagDB       = "db"
	flagTimeout  = "timeout"
	flagLogLevel = "log-level"
	flagConfig   = "config"
)

// RegisterFlags declares the configuration flags on fs. Defaults are left
// empty: a flag only overrides the lower layers when it is set.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(flagAddr, "a", "", "base URL of the backend API")
	fs.StringP(flagDB, "d", "", "session database path")
	fs.IntP(flagTimeout, "t", 0, "request timeout in seconds, 0 disables it")
	fs.StringP(flagLogLevel, "l", "", "log level (debug, info, warn, error)")
	fs.StringP(flagConfig, "c", "", "JSON config file")
}

// applyFlags overlays the flags that were explicitly set on fs. Flags that
// were never passed keep whatever defaults or JSON put in cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err != nil || !fs.Changed(name) {
			return
		}
		err = apply()
	}

	set(flagAddr, func() (e error) { cfg.BaseURL, e = fs.GetString(flagAddr); return })
	set(flagDB, func() (e error) { cfg.SessionDB, e = fs.GetString(flagDB); return })
	set(flagLogLevel, func() (e error) { cfg.LogLevel, e = fs.GetString(flagLogLevel); return })
	set(flagTimeout, func() error {
		secs, e := fs.GetInt(flagTimeout)
		if e != nil {
			return e
		}
		cfg.RequestTimeout = time.Duration(secs) * time.Second
		return nil
	})
	return err
}
