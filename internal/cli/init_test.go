package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATA_BACKEND", "EXPENSES_FILE", "SQLITE_DB_PATH",
		"AMQP_URL", "AMQP_EXCHANGE", "AMQP_ROUTING_KEY",
		"LOG_LEVEL", "CURRENCY_SYMBOL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadAndValidateConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXPENSES_FILE", "/from/env.json")

	cfg, err := LoadAndValidateConfig(Overrides{})
	if err != nil {
		t.Fatalf("LoadAndValidateConfig() error = %v", err)
	}
	if cfg.ExpensesFile != "/from/env.json" {
		t.Errorf("ExpensesFile = %q, want env value", cfg.ExpensesFile)
	}

	file := filepath.Join(t.TempDir(), "flag.json")
	cfg, err = LoadAndValidateConfig(Overrides{ExpensesFile: file, DataBackend: "memory"})
	if err != nil {
		t.Fatalf("LoadAndValidateConfig() error = %v", err)
	}
	if cfg.ExpensesFile != file || cfg.DataBackend != "memory" {
		t.Errorf("overrides not applied: %+v", cfg)
	}

	if _, err := LoadAndValidateConfig(Overrides{DataBackend: "postgres"}); err == nil {
		t.Errorf("expected validation error for unknown backend")
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("CURRENCY_SYMBOL=£\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	// godotenv does not override variables that are already set
	os.Unsetenv("CURRENCY_SYMBOL")

	LoadEnvFile(path)
	if got := os.Getenv("CURRENCY_SYMBOL"); got != "£" {
		t.Fatalf("CURRENCY_SYMBOL = %q, want £", got)
	}

	// missing files are ignored
	LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := SetupLogger("info", &buf)
	if err != nil {
		t.Fatalf("SetupLogger() error = %v", err)
	}
	logger.Info("hello")
	if !strings.Contains(buf.String(), "component=cli") {
		t.Fatalf("unexpected log output %q", buf.String())
	}

	if _, err := SetupLogger("verbose", &buf); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestOpenBackend(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadAndValidateConfig(Overrides{ExpensesFile: filepath.Join(t.TempDir(), "e.json")})
	if err != nil {
		t.Fatalf("LoadAndValidateConfig() error = %v", err)
	}
	logger, _ := SetupLogger("error", &bytes.Buffer{})

	result, err := OpenBackend(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("OpenBackend() error = %v", err)
	}
	c, err := result.Store.Load(context.Background())
	if err != nil || len(c) != 0 {
		t.Fatalf("expected empty collection, got %+v (err=%v)", c, err)
	}
}

func TestLogConfig(t *testing.T) {
	clearEnv(t)
	file := filepath.Join(t.TempDir(), "e.json")
	cfg, err := LoadAndValidateConfig(Overrides{ExpensesFile: file})
	if err != nil {
		t.Fatalf("LoadAndValidateConfig() error = %v", err)
	}
	var buf bytes.Buffer
	logger, _ := SetupLogger("debug", &buf)

	LogConfig(logger, cfg)
	out := buf.String()
	for _, want := range []string{"component=config", "backend=json", "path=" + file} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestOpenBackend_LogsAndReportsPath(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	var buf bytes.Buffer
	logger, _ := SetupLogger("debug", &buf)

	cfg, err := LoadAndValidateConfig(Overrides{DataBackend: "memory"})
	if err != nil {
		t.Fatalf("LoadAndValidateConfig() error = %v", err)
	}
	if _, err := OpenBackend(context.Background(), cfg, logger); err != nil {
		t.Fatalf("OpenBackend() error = %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "backend=memory") || !strings.Contains(out, "duration_ms=") {
		t.Fatalf("unexpected log output %q", out)
	}

	// a regular file where the database directory should be
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg.DataBackend = "sqlite"
	cfg.SQLiteDBPath = filepath.Join(blocker, "expenses.db")
	_, err = OpenBackend(context.Background(), cfg, logger)
	if err == nil {
		t.Fatalf("expected error for unusable database path")
	}
	if !strings.Contains(err.Error(), cfg.SQLiteDBPath) {
		t.Fatalf("error should name the path: %v", err)
	}
}
