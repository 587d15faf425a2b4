package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
api:
  base_url: http://localhost:5000
game:
  game_id: 3
  ship_id: 7
`)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.API.BaseURL)
	assert.Equal(t, 3, cfg.Game.GameID)
	assert.Equal(t, 7, cfg.Game.ShipID)
	assert.Equal(t, 500*time.Millisecond, cfg.Lookup.Debounce)
	assert.Equal(t, 3, cfg.Lookup.MinQueryLength)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://localhost:5000
game:
  game_id: 3
  ship_id: 7
`)
	t.Setenv("TRAVELLER_GAME_SHIP_ID", "11")
	t.Setenv("TRAVELLER_LOOKUP_DEBOUNCE", "250ms")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 11, cfg.Game.ShipID)
	assert.Equal(t, 250*time.Millisecond, cfg.Lookup.Debounce)
}

func TestLoadConfig_MissingIdentifiers(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://localhost:5000
`)

	_, err := config.LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "game.game_id")
	assert.Contains(t, err.Error(), "game.ship_id")
}

func TestValidateConfig_FileOutputNeedsPath(t *testing.T) {
	cfg := &config.Config{
		API:  config.APIConfig{BaseURL: "http://localhost:5000"},
		Game: config.GameConfig{GameID: 1, ShipID: 1},
	}
	config.SetDefaults(cfg)
	cfg.Logging.Output = "file"

	err := config.ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.file_path")
}
