package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the scraper run needs from the environment.
type Config struct {
	// Spreadsheet source
	SpreadsheetID    string
	SheetGID         string
	SupplierSheetGID string

	// Result delivery
	GASWebAppURL string
	OutputPath   string

	// Browser
	Headless        bool
	NavTimeout      time.Duration
	MinDelay        time.Duration
	MaxDelay        time.Duration
	AuctionMinDelay time.Duration
	AuctionMaxDelay time.Duration

	// Optional infrastructure
	DatabaseURL  string
	RedisAddr    string
	RedisChannel string
	MetricsAddr  string

	// Diagnostics
	LogLevel  string
	LogFormat string
	Debug     bool
}

// Load reads configuration from the environment, with a .env file applied
// first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Default().Debug("loaded environment from .env file")
	}

	cfg := &Config{
		SpreadsheetID:    os.Getenv("SPREADSHEET_ID"),
		SheetGID:         getEnvOrDefault("SHEET_GID", "0"),
		SupplierSheetGID: os.Getenv("SUPPLIER_SHEET_GID"),

		GASWebAppURL: os.Getenv("GAS_WEB_APP_URL"),
		OutputPath:   getEnvOrDefault("OUTPUT_PATH", "results.csv"),

		Headless:        getBoolOrDefault("HEADLESS", true),
		NavTimeout:      getDurationOrDefault("NAV_TIMEOUT", 30*time.Second),
		MinDelay:        getDurationOrDefault("MIN_DELAY", 3*time.Second),
		MaxDelay:        getDurationOrDefault("MAX_DELAY", 7*time.Second),
		AuctionMinDelay: getDurationOrDefault("AUCTION_MIN_DELAY", 5*time.Second),
		AuctionMaxDelay: getDurationOrDefault("AUCTION_MAX_DELAY", 10*time.Second),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisChannel: getEnvOrDefault("REDIS_CHANNEL", "inventory-results"),
		MetricsAddr:  os.Getenv("METRICS_ADDR"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "text"),
		Debug:     getBoolOrDefault("DEBUG", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("SPREADSHEET_ID is required")
	}
	if c.MinDelay > c.MaxDelay {
		return fmt.Errorf("MIN_DELAY %s exceeds MAX_DELAY %s", c.MinDelay, c.MaxDelay)
	}
	if c.AuctionMinDelay > c.AuctionMaxDelay {
		return fmt.Errorf("AUCTION_MIN_DELAY %s exceeds AUCTION_MAX_DELAY %s", c.AuctionMinDelay, c.AuctionMaxDelay)
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBoolOrDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getDurationOrDefault(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
