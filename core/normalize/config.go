package normalize

import "fmt"

// Config holds normalization settings. It is passed in explicitly; the
// normalizer keeps no module-level state.
type Config struct {
	// MinCompleteFraction is the fraction of the 48 periods that must end
	// up with both a volume and a price before the day is considered
	// healthy. Falling below it is reported as a warning, never an error:
	// the normalizer still returns a full 48-slot series.
	MinCompleteFraction float64 `json:"min_complete_fraction"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.MinCompleteFraction == 0 {
		c.MinCompleteFraction = 0.5
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.MinCompleteFraction < 0 || c.MinCompleteFraction > 1 {
		return fmt.Errorf("min_complete_fraction must be within [0,1], got %v", c.MinCompleteFraction)
	}
	return nil
}
