package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Logging   LoggingConfig   `toml:"logging"`
	Yahoo     YahooConfig     `toml:"yahoo"`
	Provider  ProviderConfig  `toml:"provider"`
	Analytics AnalyticsConfig `toml:"analytics"`
	Screens   ScreensConfig   `toml:"screens"`
}

// LoggingConfig controls the arbor logger
type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// YahooConfig controls the Yahoo Finance API client
type YahooConfig struct {
	BaseURL        string        `toml:"base_url"`
	RequestTimeout time.Duration `toml:"request_timeout"`             // HTTP request timeout
	RateLimit      int           `toml:"rate_limit" validate:"gte=1"` // Requests per second
	UserAgent      string        `toml:"user_agent"`
}

// ProviderConfig controls the series provider layer
type ProviderConfig struct {
	BenchmarkSymbol string `toml:"benchmark_symbol"`                // Market factor for regressions (default: ^GSPC)
	HistoryMonths   int    `toml:"history_months" validate:"gte=1"` // Months of daily history for factor analysis
	MaxWorkers      int    `toml:"max_workers" validate:"gte=1"`    // Concurrent fetches for multi-symbol requests
}

// AnalyticsConfig holds the tunable thresholds for the analytics core.
// These are passed into analytics functions explicitly so the core stays
// free of package-level globals.
type AnalyticsConfig struct {
	RSIPeriod               int     `toml:"rsi_period" validate:"gte=2"`
	MinRegressionObs        int     `toml:"min_regression_obs" validate:"gte=3"`       // Observation floor for factor regression
	PeriodsPerYear          float64 `toml:"periods_per_year"`                          // Annualization factor (252 for daily)
	MomentumWindowDays      int     `toml:"momentum_window_days" validate:"gte=1"`     // Search window around the ideal lookback date
	UnusualActivityMultiple float64 `toml:"unusual_activity_multiple" validate:"gt=0"` // Volume/OI ratio that flags a contract
	RegimeBetaRatio         float64 `toml:"regime_beta_ratio" validate:"gt=1"`         // Long-vs-short beta ratio that flags a regime shift
}

// ScreensConfig controls screen rendering limits
type ScreensConfig struct {
	TopStrikes     int `toml:"top_strikes" validate:"gte=1"`    // Strikes shown per side on the options screen
	TermStructure  int `toml:"term_structure" validate:"gte=2"` // Expirations sampled for the term structure
	BatchLimit     int `toml:"batch_limit" validate:"gte=1"`    // Max symbols in a batch ticker request
	SectorHoldings int `toml:"sector_holdings" validate:"gte=1"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Yahoo: YahooConfig{
			BaseURL:        "https://query1.finance.yahoo.com",
			RequestTimeout: 30 * time.Second,
			RateLimit:      5,
			UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
		},
		Provider: ProviderConfig{
			BenchmarkSymbol: "^GSPC",
			HistoryMonths:   12,
			MaxWorkers:      10,
		},
		Analytics: AnalyticsConfig{
			RSIPeriod:               14,
			MinRegressionObs:        30,
			PeriodsPerYear:          252,
			MomentumWindowDays:      5,
			UnusualActivityMultiple: 2.0,
			RegimeBetaRatio:         2.0,
		},
		Screens: ScreensConfig{
			TopStrikes:     10,
			TermStructure:  3,
			BatchLimit:     20,
			SectorHoldings: 10,
		},
	}
}

// LoadFromFile loads configuration from a TOML file, applies environment
// variable overrides, and validates the result. A missing file is not an
// error; defaults apply.
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyEnvOverrides applies SPECULA_* environment variable overrides.
// Env vars take precedence over file values; CLI flags over both.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("SPECULA_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("SPECULA_YAHOO_BASE_URL"); v != "" {
		config.Yahoo.BaseURL = v
	}
	if v := os.Getenv("SPECULA_BENCHMARK"); v != "" {
		config.Provider.BenchmarkSymbol = v
	}
	if v := os.Getenv("SPECULA_MAX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.Provider.MaxWorkers = n
		}
	}
	if v := os.Getenv("SPECULA_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.Yahoo.RateLimit = n
		}
	}
}
