package config

import "fmt"

// HTTPConfig defines the API listener.
type HTTPConfig struct {
	// Addr is the listen address. Set it to "-" to disable the API.
	Addr string `json:"addr"`
	// Token, when set, is required as a bearer token on /api/v1 routes.
	Token               string `json:"token"`
	ReadTimeoutSeconds  int    `json:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `json:"write_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeoutSeconds == 0 {
		c.ReadTimeoutSeconds = 10
	}
	if c.WriteTimeoutSeconds == 0 {
		c.WriteTimeoutSeconds = 30
	}
}

// Validate checks the timeouts.
func (c HTTPConfig) Validate() error {
	if c.ReadTimeoutSeconds < 0 || c.WriteTimeoutSeconds < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

// Enabled reports whether the API should be served.
func (c HTTPConfig) Enabled() bool { return c.Addr != "-" }
