package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"settlementwatch/infra/publish"
)

// Config is the root configuration of the service.
type Config struct {
	Elexon   ElexonConfig   `json:"elexon"`
	Pipeline PipelineConfig `json:"pipeline"`
	Metrics  MetricsConfig  `json:"metrics"`
	Publish  publish.Config `json:"publish"`
	API      APIConfig      `json:"api"`
}

// Load reads the configuration file at path, applies SW_-prefixed
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("SW_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "sw_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Elexon.SetDefaults()
	cfg.Pipeline.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Publish.SetDefaults()
	cfg.API.SetDefaults()
	if err := cfg.Elexon.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Pipeline.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Publish.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// APIConfig configures the report HTTP server.
type APIConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}
