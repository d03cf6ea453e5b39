// Package cli provides common CLI initialization utilities: environment
// loading, configuration, logging and backend wiring.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/joho/godotenv"

	"expense-tracker/internal/backend"
	"expense-tracker/internal/config"
	applog "expense-tracker/internal/log"
)

// Overrides carries command-line flags that take precedence over the
// environment. Empty fields leave the environment value in place.
type Overrides struct {
	DataBackend  string
	ExpensesFile string
}

// LoadEnvFile loads a .env file for local use.
// Errors are ignored silently as the file is optional.
func LoadEnvFile(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

// LoadAndValidateConfig loads configuration from the environment, applies
// overrides and validates the result.
func LoadAndValidateConfig(o Overrides) (*config.Config, error) {
	cfg := config.Load()
	if o.DataBackend != "" {
		cfg.DataBackend = o.DataBackend
	}
	if o.ExpensesFile != "" {
		cfg.ExpensesFile = o.ExpensesFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the application logger writing to out at the given
// level and sets it as the default logger.
func SetupLogger(level string, out io.Writer) (*applog.Logger, error) {
	lvl, err := applog.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	lc := applog.DefaultConfig()
	lc.Level = lvl
	lc.Component = applog.ComponentCLI
	if out != nil {
		lc.Output = out
	}
	logger := applog.New(lc)
	applog.SetDefault(logger)
	return logger, nil
}

// LogConfig records the effective configuration at debug level.
func LogConfig(logger *applog.Logger, cfg *config.Config) {
	logger.WithComponent(applog.ComponentConfig).Debug("Configuration loaded",
		applog.FieldBackend, cfg.DataBackend,
		applog.FieldPath, cfg.StoragePath(),
		"events", cfg.AMQPURL != "",
		"log_level", cfg.LogLevel)
}

// OpenBackend creates the configured store and optional event publisher.
func OpenBackend(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*backend.BackendResult, error) {
	start := time.Now()
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend at %s: %w", bcfg.Type, cfg.StoragePath(), err)
	}
	logger.DebugContext(ctx, "Backend ready",
		applog.FieldBackend, bcfg.Type.String(),
		applog.FieldDuration, time.Since(start).Milliseconds())
	return result, nil
}
