package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type StoreConfig struct {
	BaseDir          string `mapstructure:"base_dir"`
	ConnectionString string `mapstructure:"connection_string"`
	ReportPath       string `mapstructure:"report_path"`
}

func (config StoreConfig) validate() error {

	if config.BaseDir == "" {
		return fmt.Errorf("missing variable: base_dir")
	}

	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: store connection string")
	}

	if config.ReportPath == "" {
		return fmt.Errorf("missing variable: report_path")
	}

	return nil
}

func (config StoreConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("store.connection_string", "STORE_CONNECTION_STRING")
}
