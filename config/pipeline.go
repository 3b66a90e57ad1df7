package config

import (
	"settlementwatch/core/normalize"
)

// PipelineConfig holds the settings handed to the core pipeline.
type PipelineConfig struct {
	Normalize normalize.Config `json:"normalize"`
}

// SetDefaults applies sane defaults.
func (c *PipelineConfig) SetDefaults() {
	c.Normalize.SetDefaults()
}

// Validate checks the configuration.
func (c PipelineConfig) Validate() error {
	return c.Normalize.Validate()
}
