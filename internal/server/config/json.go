package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/paydesk/internal/flagx"
	"github.com/dmitrijs2005/paydesk/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// Interval fields use timex.Duration, which accepts both "1s" strings and
// integer nanoseconds. Absent fields keep their current value.
type JsonConfig struct {
	EndpointAddr                 *string         `json:"endpoint_addr"`
	SecretKey                    *string         `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	CheckoutBaseURL              *string         `json:"checkout_base_url"`
	LogLevel                     *string         `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config. Without it nothing is loaded. Read or unmarshal errors panic.
func parseJson(config *Config, args []string) {
	jsonConfigFile := flagx.ConfigPath(args)
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.CheckoutBaseURL != nil {
		config.CheckoutBaseURL = *c.CheckoutBaseURL
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
}
