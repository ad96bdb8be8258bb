package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	MigrationsPath string
	JWTSecret      string

	// Ledger
	CurrencyScale     int32
	ReportCacheSize   int
	PostingMaxRetries uint
	PostingTxTimeout  time.Duration

	// HTTP
	RateLimit          string
	CORSAllowedOrigins []string

	// Notifications
	PosthogAPIKey   string
	PosthogEndpoint string

	// Cash flow classification
	CashFlowCashAccounts      []string
	CashFlowInvestingPrefixes []string
	CashFlowFinancingPrefixes []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	// Environment variables override the defaults above.
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("CURRENCY_SCALE", 2)
	v.SetDefault("REPORT_CACHE_SIZE", 512)
	v.SetDefault("POSTING_MAX_RETRIES", 3)
	v.SetDefault("POSTING_TX_TIMEOUT", "5s")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
	v.SetDefault("CASHFLOW_CASH_ACCOUNTS", "1000")
	v.SetDefault("CASHFLOW_INVESTING_PREFIXES", "15")
	v.SetDefault("CASHFLOW_FINANCING_PREFIXES", "25")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:               v.GetString("PGSQL_URL"),
		Port:                      v.GetString("PORT"),
		IsProduction:              v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:             v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:             strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		MigrationsPath:            v.GetString("MIGRATIONS_PATH"),
		JWTSecret:                 v.GetString("JWT_SECRET"),
		ReportCacheSize:           v.GetInt("REPORT_CACHE_SIZE"),
		RateLimit:                 v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:        splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		PosthogAPIKey:             v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:           v.GetString("POSTHOG_ENDPOINT"),
		CashFlowCashAccounts:      splitList(v.GetString("CASHFLOW_CASH_ACCOUNTS")),
		CashFlowInvestingPrefixes: splitList(v.GetString("CASHFLOW_INVESTING_PREFIXES")),
		CashFlowFinancingPrefixes: splitList(v.GetString("CASHFLOW_FINANCING_PREFIXES")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER is %s", StoragePostgres)
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.IsProduction && cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET is the default insecure key. THIS IS NOT FOR PRODUCTION.")
	}

	scale := v.GetInt("CURRENCY_SCALE")
	if scale < 0 || scale > 18 {
		return nil, fmt.Errorf("CURRENCY_SCALE must be between 0 and 18, got %d", scale)
	}
	cfg.CurrencyScale = int32(scale)

	retries := v.GetInt("POSTING_MAX_RETRIES")
	if retries < 0 {
		return nil, fmt.Errorf("POSTING_MAX_RETRIES must not be negative, got %d", retries)
	}
	cfg.PostingMaxRetries = uint(retries)

	timeoutStr := v.GetString("POSTING_TX_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid POSTING_TX_TIMEOUT %q: %w", timeoutStr, err)
	}
	cfg.PostingTxTimeout = timeout

	if cfg.ReportCacheSize <= 0 {
		log.Printf("Warning: Invalid value for REPORT_CACHE_SIZE (%d). Defaulting to 512.\n", cfg.ReportCacheSize)
		cfg.ReportCacheSize = 512
	}
	if len(cfg.CashFlowCashAccounts) == 0 {
		log.Println("Warning: CASHFLOW_CASH_ACCOUNTS not set. Cash flow statements will be rejected.")
	}

	return cfg, nil
}

// splitList splits a comma separated value, dropping blanks.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
