// Package config loads runtime configuration for the paydesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c or --config.
//  3. Command-line flags (see applyFlags). Only flags that were actually
//     passed override earlier values.
//
// The flags are declared by RegisterFlags on a pflag.FlagSet, normally
// cobra's persistent flags, and read back by Load. LoadConfig does the same
// on a private flag set for callers without cobra.
//
// Supported flags
//
//	-a, --addr string        base URL of the backend API
//	-d, --db string          session database path
//	-t, --timeout int        request timeout (seconds, 0 disables)
//	-l, --log-level string   log level
//	-c, --config string      JSON config file
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "5s"
// or integer nanoseconds:
//
//	{
//	  "base_url": "http://localhost:8000",
//	  "session_db": "/home/me/.paydesk.db",
//	  "request_timeout": "5s",
//	  "watch_debounce": "200ms",
//	  "log_level": "debug"
//	}
//
// Fields missing from the file keep their defaults.
package config
