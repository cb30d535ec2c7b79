package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the process-level configuration. The mutable app settings live in
// the settings store; this only covers what must be known before storage is
// opened.
type Config struct {
	StoragePath     string
	SessionSecret   string
	DefaultRadiusKm float64
}

// Load reads an optional config.yaml from the working directory with
// environment overrides (WATERDROP_STORAGE_PATH and friends).
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("storage.path", "water_delivery.db")
	v.SetDefault("session.secret", "water_delivery_session_secret_2024")
	v.SetDefault("notify.radius_km", 10.0)

	v.SetEnvPrefix("WATERDROP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		StoragePath:     v.GetString("storage.path"),
		SessionSecret:   v.GetString("session.secret"),
		DefaultRadiusKm: v.GetFloat64("notify.radius_km"),
	}, nil
}

// Default returns the built-in configuration without touching files or the
// environment.
func Default() *Config {
	return &Config{
		StoragePath:     "water_delivery.db",
		SessionSecret:   "water_delivery_session_secret_2024",
		DefaultRadiusKm: 10,
	}
}
