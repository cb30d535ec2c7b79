package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "water_delivery.db", cfg.StoragePath)
	assert.NotEmpty(t, cfg.SessionSecret)
	assert.Equal(t, 10.0, cfg.DefaultRadiusKm)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("WATERDROP_STORAGE_PATH", "/tmp/override.db")
	t.Setenv("WATERDROP_NOTIFY_RADIUS_KM", "25")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.db", cfg.StoragePath)
	assert.Equal(t, 25.0, cfg.DefaultRadiusKm)
}
