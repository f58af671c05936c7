// Package config handles configuration for the CloudShare CLI, including
// defaults, JSON overlay, and command-line flags.
package config

import "errors"

// Config holds runtime settings for the CLI.
//
// Fields:
//   - APIBaseURL: base URL of the CloudShare REST backend. Required.
//   - ShareOrigin: origin used when deriving public share links.
//   - GatewayKeyID: publishable key id of the payment gateway. Purchases are
//     unavailable (gateway not ready) while it is empty.
//   - Currency: ISO currency code sent on create-order.
type Config struct {
	APIBaseURL   string
	ShareOrigin  string
	GatewayKeyID string
	Currency     string
}

// ErrAPIBaseURLRequired is returned by Validate when no backend URL was
// configured. The client cannot function without one, so callers treat this
// as fatal at startup.
var ErrAPIBaseURLRequired = errors.New("api base url is required")

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = ""
	c.ShareOrigin = "https://cloudshare.app"
	c.GatewayKeyID = ""
	c.Currency = "INR"
}

// Validate checks the values no session can run without.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return ErrAPIBaseURLRequired
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
