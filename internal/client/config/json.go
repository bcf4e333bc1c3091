package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/paydesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero" so a partial file only overrides
// what it names.
type JsonConfig struct {
	BaseURL        *string         `json:"base_url"`
	SessionDB      *string         `json:"session_db"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	WatchDebounce  *timex.Duration `json:"watch_debounce"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays cfg with the values in the JSON file at path. An
// empty path does nothing.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	var jc JsonConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.BaseURL != nil {
		cfg.BaseURL = *jc.BaseURL
	}
	if jc.SessionDB != nil {
		cfg.SessionDB = *jc.SessionDB
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.WatchDebounce != nil {
		cfg.WatchDebounce = jc.WatchDebounce.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
