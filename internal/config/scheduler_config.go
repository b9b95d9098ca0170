package config

import (
	"fmt"
)

type SchedulerConfig struct {
	CronSpec             string `mapstructure:"cron_spec"`
	SeenExpirationInDays int    `mapstructure:"seen_expiration_days"`
	MetricsListenAddr    string `mapstructure:"metrics_listen_addr"`
}

func (config SchedulerConfig) validate() error {

	if config.CronSpec == "" {
		return fmt.Errorf("missing variable: cron_spec")
	}

	if config.SeenExpirationInDays <= 0 {
		return fmt.Errorf("seen_expiration_days must be positive")
	}

	return nil
}
