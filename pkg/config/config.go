package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultFallbackRate = 0.054 // ZAR->USD static fallback

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// External rate provider
	RateAPIURL     string
	RateAPIKey     string
	RateAPITimeout time.Duration

	// Rate resolution
	FallbackRate             decimal.Decimal
	FallbackFromCurrency     string
	FallbackToCurrency       string
	FallbackInversePrecision int32
	RateCacheMaxAge          time.Duration // freshness bound for persisted rates
	RateTableCacheTTL        time.Duration // in-memory table cache lifetime

	// Daily update scheduling
	DailyUpdateEnabled  bool
	DailyUpdateCronSpec string
	DailyUpdateTimezone string

	// Operator endpoints
	AdminRateLimit string // ulule/limiter format, e.g. "10-M"

	StatsWindowDays int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RATE_API_URL", "https://api.exchangerate-api.com/v4/latest")
	viper.SetDefault("RATE_API_KEY", "")
	viper.SetDefault("RATE_API_TIMEOUT", "10s")
	viper.SetDefault("FALLBACK_RATE", defaultFallbackRate)
	viper.SetDefault("FALLBACK_FROM_CURRENCY", "ZAR")
	viper.SetDefault("FALLBACK_TO_CURRENCY", "USD")
	viper.SetDefault("FALLBACK_INVERSE_PRECISION", 6)
	viper.SetDefault("RATE_CACHE_MAX_AGE", "4h")
	viper.SetDefault("RATE_TABLE_CACHE_TTL", "15m")
	viper.SetDefault("DAILY_UPDATE_ENABLED", true)
	viper.SetDefault("DAILY_UPDATE_CRON", "0 5 * * *")
	viper.SetDefault("DAILY_UPDATE_TIMEZONE", "Africa/Johannesburg")
	viper.SetDefault("ADMIN_RATE_LIMIT", "30-M")
	viper.SetDefault("STATS_WINDOW_DAYS", 30)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.RateAPIURL = strings.TrimRight(viper.GetString("RATE_API_URL"), "/")
	cfg.RateAPIKey = viper.GetString("RATE_API_KEY")
	cfg.RateAPITimeout = durationOrDefault("RATE_API_TIMEOUT", 10*time.Second)

	fallbackRate := viper.GetFloat64("FALLBACK_RATE")
	if fallbackRate <= 0 {
		log.Printf("Warning: Invalid value for FALLBACK_RATE (%v). Defaulting to %v.\n", fallbackRate, defaultFallbackRate)
		fallbackRate = defaultFallbackRate
	}
	cfg.FallbackRate = decimal.NewFromFloat(fallbackRate)

	cfg.FallbackFromCurrency = strings.ToUpper(strings.TrimSpace(viper.GetString("FALLBACK_FROM_CURRENCY")))
	cfg.FallbackToCurrency = strings.ToUpper(strings.TrimSpace(viper.GetString("FALLBACK_TO_CURRENCY")))
	if cfg.FallbackFromCurrency == "" || cfg.FallbackToCurrency == "" || cfg.FallbackFromCurrency == cfg.FallbackToCurrency {
		log.Println("Warning: Invalid fallback currency pair. Defaulting to ZAR/USD.")
		cfg.FallbackFromCurrency = "ZAR"
		cfg.FallbackToCurrency = "USD"
	}

	cfg.FallbackInversePrecision = viper.GetInt32("FALLBACK_INVERSE_PRECISION")
	if cfg.FallbackInversePrecision < 0 || cfg.FallbackInversePrecision > 12 {
		log.Printf("Warning: Invalid value for FALLBACK_INVERSE_PRECISION (%d). Defaulting to 6.\n", cfg.FallbackInversePrecision)
		cfg.FallbackInversePrecision = 6
	}

	cfg.RateCacheMaxAge = durationOrDefault("RATE_CACHE_MAX_AGE", 4*time.Hour)
	cfg.RateTableCacheTTL = durationOrDefault("RATE_TABLE_CACHE_TTL", 15*time.Minute)

	cfg.DailyUpdateEnabled = viper.GetBool("DAILY_UPDATE_ENABLED")
	cfg.DailyUpdateCronSpec = viper.GetString("DAILY_UPDATE_CRON")
	cfg.DailyUpdateTimezone = viper.GetString("DAILY_UPDATE_TIMEZONE")

	cfg.AdminRateLimit = viper.GetString("ADMIN_RATE_LIMIT")

	cfg.StatsWindowDays = viper.GetInt("STATS_WINDOW_DAYS")
	if cfg.StatsWindowDays <= 0 {
		cfg.StatsWindowDays = 30
	}

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
