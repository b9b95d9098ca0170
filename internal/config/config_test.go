package config

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Config_LoadsFromFile(t *testing.T) {
	os.Setenv("MODE", "test")

	cfg := Get()

	assert.Equal(t, LevelInfo, cfg.Logger.LogLevel)
	assert.Contains(t, cfg.Search.Keywords, "backend engineer")
	assert.Equal(t, 2, cfg.Scraper.MaxRetries)
	assert.Equal(t, "0 */3 * * *", cfg.Scheduler.CronSpec)
	assert.Equal(t, 30, cfg.Scheduler.SeenExpirationInDays)
}

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {
	override := Config{
		Logger: LoggerConfig{
			LogLevel:     LevelDebug,
			AppName:      "override_app",
			LokiURL:      "http://loki.override:3100",
			LokiUser:     "overrideUser",
			LokiPassword: "overridePassword",
		},
		Scraper: ScraperConfig{
			MaxRequestsPerSecond: 99,
		},
		Store: StoreConfig{
			ConnectionString: "newConnectionString",
		},
	}
	os.Setenv("MODE", "test")

	os.Setenv("LOG_LEVEL", string(override.Logger.LogLevel))
	os.Setenv("APP_NAME", override.Logger.AppName)
	os.Setenv("LOKI_URL", override.Logger.LokiURL)
	os.Setenv("LOKI_USER", override.Logger.LokiUser)
	os.Setenv("LOKI_PASSWORD", override.Logger.LokiPassword)
	os.Setenv("SCRAPER_MAX_REQUESTS_PER_SECOND", fmt.Sprintf("%f", override.Scraper.MaxRequestsPerSecond))
	os.Setenv("STORE_CONNECTION_STRING", override.Store.ConnectionString)

	defer func() {
		for _, name := range []string{"LOG_LEVEL", "APP_NAME", "LOKI_URL", "LOKI_USER",
			"LOKI_PASSWORD", "SCRAPER_MAX_REQUESTS_PER_SECOND", "STORE_CONNECTION_STRING"} {
			os.Unsetenv(name)
		}
	}()

	cfg := Get()

	assert.Equal(t, override.Logger.LogLevel, cfg.Logger.LogLevel)
	assert.Equal(t, override.Logger.AppName, cfg.Logger.AppName)
	assert.Equal(t, override.Logger.LokiURL, cfg.Logger.LokiURL)
	assert.Equal(t, override.Logger.LokiUser, cfg.Logger.LokiUser)
	assert.Equal(t, override.Logger.LokiPassword, cfg.Logger.LokiPassword)
	assert.Equal(t, override.Scraper.MaxRequestsPerSecond, cfg.Scraper.MaxRequestsPerSecond)
	assert.Equal(t, override.Store.ConnectionString, cfg.Store.ConnectionString)
}
