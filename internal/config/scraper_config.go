package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ScraperConfig struct {
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	RequestTimeout       time.Duration `mapstructure:"request_timeout"`
	MaxRetries           int           `mapstructure:"max_retries"`
}

func (config ScraperConfig) validate() error {

	if config.MaxRequestsPerSecond <= 0 {
		return fmt.Errorf("max_requests_per_second must be positive")
	}

	if config.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}

	if config.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative")
	}

	return nil
}

func (config ScraperConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("scraper.max_requests_per_second", "SCRAPER_MAX_REQUESTS_PER_SECOND")
}
