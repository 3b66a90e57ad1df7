package config

import "fmt"

// MetricsConfig enables the metric sinks.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}

// Validate checks field combinations.
func (c MetricsConfig) Validate() error {
	if c.InfluxEnabled && (c.InfluxURL == "" || c.InfluxOrg == "" || c.InfluxBucket == "") {
		return fmt.Errorf("influx_url, influx_org and influx_bucket are required when influx is enabled")
	}
	return nil
}
