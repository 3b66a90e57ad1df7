package config

import "fmt"

// ElexonConfig defines how raw settlement records are fetched.
type ElexonConfig struct {
	// Mode selects the fetcher: "api" hits the Insights API, "mock" runs a
	// local stand-in server and fetches from it.
	Mode string `json:"mode"`
	// BaseURL is the API root, without a trailing slash.
	BaseURL string `json:"base_url"`
	// MockAddress is the listen address of the mock server in mock mode.
	MockAddress string `json:"mock_address"`
	// TimeoutSeconds bounds a single fetch call.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *ElexonConfig) SetDefaults() {
	if c.Mode == "" {
		c.Mode = "api"
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://data.elexon.co.uk/bmrs/api/v1"
	}
	if c.MockAddress == "" {
		c.MockAddress = "127.0.0.1:0"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
}

// Validate checks mandatory fields.
func (c ElexonConfig) Validate() error {
	if c.Mode != "api" && c.Mode != "mock" {
		return fmt.Errorf("unknown elexon mode %q", c.Mode)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	return nil
}
