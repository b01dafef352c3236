package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port string

	// Operations source
	DataSource     string // file | sqlite | sheets
	OperationsPath string
	SQLiteDBPath   string

	// User settings
	UserSettingsPath string

	// Quote providers
	CurrencyAPIURL  string
	StockAPIURL     string
	StockAPIKey     string
	BaseCurrency    string
	LookupTimeout   time.Duration
	QuoteCacheSize  int
	QuoteCacheTTL   time.Duration

	// AMQP (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		DataSource:     getEnv("DATA_SOURCE", "file"),
		OperationsPath: getEnv("OPERATIONS_PATH", "./data/operations.csv"),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/moneyview.db"),

		UserSettingsPath: getEnv("USER_SETTINGS_PATH", "./user_settings.json"),

		CurrencyAPIURL: getEnv("CURRENCY_API_URL", "https://api.exchangerate-api.com/v4/latest"),
		StockAPIURL:    getEnv("STOCK_API_URL", "https://financialmodelingprep.com/api/v3/quote"),
		StockAPIKey:    getEnv("FMP_API_KEY", ""),
		BaseCurrency:   getEnv("BASE_CURRENCY", "RUB"),
		LookupTimeout:  getEnvDuration("LOOKUP_TIMEOUT", 10*time.Second),
		QuoteCacheSize: getEnvInt("QUOTE_CACHE_SIZE", 128),
		QuoteCacheTTL:  getEnvDuration("QUOTE_CACHE_TTL", 5*time.Minute),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "moneyview"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "report_events"),
	}
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataSource {
	case "file", "sqlite", "sheets":
	default:
		problems = append(problems, fmt.Sprintf("invalid data source '%s': must be one of [file sqlite sheets]", c.DataSource))
	}

	if c.DataSource == "file" && c.OperationsPath == "" {
		problems = append(problems, "operations path cannot be empty when using the file source")
	}

	if c.DataSource == "sqlite" {
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLite database path cannot be empty when using the sqlite source")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					problems = append(problems, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.UserSettingsPath == "" {
		problems = append(problems, "user settings path cannot be empty")
	}

	for name, raw := range map[string]string{
		"currency API URL": c.CurrencyAPIURL,
		"stock API URL":    c.StockAPIURL,
	} {
		if raw == "" {
			problems = append(problems, fmt.Sprintf("%s cannot be empty", name))
			continue
		}
		if u, err := url.Parse(raw); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			problems = append(problems, fmt.Sprintf("invalid %s '%s'", name, raw))
		}
	}

	if c.BaseCurrency == "" {
		problems = append(problems, "base currency cannot be empty")
	}

	if c.LookupTimeout < time.Second {
		problems = append(problems, fmt.Sprintf("invalid lookup timeout %v: must be at least 1 second", c.LookupTimeout))
	}
	if c.QuoteCacheSize < 1 {
		problems = append(problems, fmt.Sprintf("invalid quote cache size %d: must be at least 1", c.QuoteCacheSize))
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", u.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
