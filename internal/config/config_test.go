package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SPREADSHEET_ID", "sheet-123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sheet-123", cfg.SpreadsheetID)
	assert.Equal(t, "0", cfg.SheetGID)
	assert.Equal(t, "results.csv", cfg.OutputPath)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 30*time.Second, cfg.NavTimeout)
	assert.Equal(t, 3*time.Second, cfg.MinDelay)
	assert.Equal(t, 7*time.Second, cfg.MaxDelay)
	assert.Equal(t, 5*time.Second, cfg.AuctionMinDelay)
	assert.Equal(t, 10*time.Second, cfg.AuctionMaxDelay)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "inventory-results", cfg.RedisChannel)
	assert.False(t, cfg.Debug)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SPREADSHEET_ID", "sheet-123")
	t.Setenv("HEADLESS", "false")
	t.Setenv("MIN_DELAY", "1s")
	t.Setenv("MAX_DELAY", "2s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEBUG", "true")
	t.Setenv("OUTPUT_PATH", "/tmp/out.csv")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Headless)
	assert.Equal(t, time.Second, cfg.MinDelay)
	assert.Equal(t, 2*time.Second, cfg.MaxDelay)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/tmp/out.csv", cfg.OutputPath)
}

func TestLoadRequiresSpreadsheetID(t *testing.T) {
	t.Setenv("SPREADSHEET_ID", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRejectsInvertedDelays(t *testing.T) {
	t.Setenv("SPREADSHEET_ID", "sheet-123")
	t.Setenv("MIN_DELAY", "10s")
	t.Setenv("MAX_DELAY", "2s")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetDurationOrDefaultIgnoresGarbage(t *testing.T) {
	t.Setenv("NAV_TIMEOUT", "not-a-duration")
	assert.Equal(t, 30*time.Second, getDurationOrDefault("NAV_TIMEOUT", 30*time.Second))
}
