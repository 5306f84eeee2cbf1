package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Prices   PricesConfig
	Yahoo    YahooConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `env:"SERVER_PORT" envDefault:"5001"`
	Host string `env:"SERVER_HOST" envDefault:"localhost"`
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string `env:"DB_PATH" envDefault:"./data/portfolio_growth.db"`
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost"`
}

// PricesConfig controls price history loading and the nightly refresh job.
type PricesConfig struct {
	// FetchConcurrency bounds the number of symbols fetched from the provider at once.
	FetchConcurrency int    `env:"PRICE_FETCH_CONCURRENCY" envDefault:"4"`
	RefreshCron      string `env:"PRICE_REFRESH_CRON" envDefault:"0 6 * * 1-6"`
}

// YahooConfig holds Yahoo Finance client configuration
type YahooConfig struct {
	BaseURL string        `env:"YAHOO_BASE_URL" envDefault:"https://query1.finance.yahoo.com"`
	Timeout time.Duration `env:"YAHOO_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if config.Prices.FetchConcurrency < 1 {
		return nil, fmt.Errorf("PRICE_FETCH_CONCURRENCY must be at least 1, got %d", config.Prices.FetchConcurrency)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// SetupLogger installs a JSON slog handler at the configured level as the default logger.
// Unknown levels fall back to info.
func SetupLogger(cfg *Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLogLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)
	return logger
}

// ParseLogLevel maps a LOG_LEVEL value to a slog level.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warning", "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
