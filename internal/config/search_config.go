package config

import (
	"fmt"
)

// SearchConfig narrows which fetched listings survive filtering. An empty
// keyword or location list disables that filter.
type SearchConfig struct {
	Keywords   []string `mapstructure:"keywords"`
	Locations  []string `mapstructure:"locations"`
	MaxAgeDays int      `mapstructure:"max_age_days"`
	ProfileDir string   `mapstructure:"profile_dir"`
}

func (config SearchConfig) validate() error {

	if config.MaxAgeDays < 0 {
		return fmt.Errorf("max_age_days must be non-negative")
	}

	if config.ProfileDir == "" {
		return fmt.Errorf("missing variable: profile_dir")
	}

	return nil
}
