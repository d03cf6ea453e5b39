package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	applog "expense-tracker/internal/log"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	// Storage
	DataBackend  string
	ExpensesFile string
	SQLiteDBPath string

	// AMQP change events (disabled when AMQPURL is empty)
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	// Output
	LogLevel       string
	CurrencySymbol string
}

func Load() *Config {
	cfg := &Config{
		DataBackend:  getEnv("DATA_BACKEND", BackendJSON),
		ExpensesFile: getEnv("EXPENSES_FILE", "./expenses.json"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/expenses.db"),

		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "expenses"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "expense_events"),

		LogLevel:       getEnv("LOG_LEVEL", "warn"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate data backend
	validBackends := []string{BackendJSON, BackendSQLite, BackendMemory}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case BackendJSON:
		if strings.TrimSpace(c.ExpensesFile) == "" {
			errors = append(errors, "expenses file path cannot be empty when using json backend")
		} else if info, err := os.Stat(c.ExpensesFile); err == nil && info.IsDir() {
			errors = append(errors, fmt.Sprintf("expenses file '%s' is a directory", c.ExpensesFile))
		}
	case BackendSQLite:
		if strings.TrimSpace(c.SQLiteDBPath) == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			// Check if directory exists or can be created
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPRoutingKey == "" {
			errors = append(errors, "AMQP routing key cannot be empty when AMQP URL is provided")
		}
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if c.CurrencySymbol == "" {
		errors = append(errors, "currency symbol cannot be empty")
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// StoragePath returns the location the selected backend persists to.
func (c *Config) StoragePath() string {
	switch c.DataBackend {
	case BackendSQLite:
		return c.SQLiteDBPath
	case BackendJSON:
		return c.ExpensesFile
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
