package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"expense-tracker/internal/core"
	applog "expense-tracker/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the collection in a single SQLite table. The position
// column preserves collection order across load/save.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *applog.Logger
}

func NewSQLiteStore(dbPath string, logger *applog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = applog.Discard()
	}
	logger = logger.WithComponent(applog.ComponentStorage)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	if _, err := migrateSchema(dbPath, logger); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// one writer, one file
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath, logger: logger}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (core.Collection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount, date FROM expenses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	c := core.Collection{}
	for rows.Next() {
		var (
			e    core.Expense
			date string
		)
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Date, err = core.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("expense %d: %w: %w", e.ID, core.ErrCorruptState, err)
		}
		c = append(c, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	s.logger.DebugContext(ctx, "Loaded expenses",
		applog.FieldOperation, applog.OpLoad,
		applog.FieldPath, s.path,
		applog.FieldCount, len(c))
	return c, nil
}

// Save rewrites the table inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, c core.Collection) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (position, id, description, amount, date) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range c {
		if _, err = stmt.ExecContext(ctx, i, e.ID, e.Description, e.Amount, e.Date.String()); err != nil {
			return fmt.Errorf("insert expense %d: %w", e.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit expenses: %w", err)
	}

	s.logger.DebugContext(ctx, "Saved expenses",
		applog.FieldOperation, applog.OpSave,
		applog.FieldPath, s.path,
		applog.FieldCount, len(c))
	return nil
}
