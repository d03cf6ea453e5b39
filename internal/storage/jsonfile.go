package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"expense-tracker/internal/core"
	applog "expense-tracker/internal/log"
)

// JSONFileStore keeps the collection as a pretty-printed JSON array in a
// single file.
type JSONFileStore struct {
	path   string
	logger *applog.Logger
}

func NewJSONFileStore(path string, logger *applog.Logger) *JSONFileStore {
	if logger == nil {
		logger = applog.Discard()
	}
	return &JSONFileStore{
		path:   path,
		logger: logger.WithComponent(applog.ComponentStorage),
	}
}

// Path returns the data file location.
func (s *JSONFileStore) Path() string {
	return s.path
}

func (s *JSONFileStore) Load(ctx context.Context) (core.Collection, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.DebugContext(ctx, "No data file yet, starting empty", applog.FieldPath, s.path)
		return core.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return core.Collection{}, nil
	}

	var c core.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		s.logger.ErrorContext(ctx, "Data file is not valid JSON",
			applog.FieldPath, s.path,
			applog.FieldErrorType, applog.ErrorTypeCorruptState,
			applog.FieldError, err)
		return nil, fmt.Errorf("load %s: %w: %w", s.path, core.ErrCorruptState, err)
	}
	if c == nil {
		c = core.Collection{}
	}

	s.logger.DebugContext(ctx, "Loaded expenses",
		applog.FieldOperation, applog.OpLoad,
		applog.FieldPath, s.path,
		applog.FieldCount, len(c))
	return c, nil
}

// Save writes to a temporary file next to the target and renames it over the
// target, so readers see either the old or the new content.
func (s *JSONFileStore) Save(ctx context.Context, c core.Collection) error {
	if c == nil {
		c = core.Collection{}
	}
	payload, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp data file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp data file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp data file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod temp data file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}

	s.logger.DebugContext(ctx, "Saved expenses",
		applog.FieldOperation, applog.OpSave,
		applog.FieldPath, s.path,
		applog.FieldCount, len(c))
	return nil
}
