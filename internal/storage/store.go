// Package storage persists the expense collection.
//
// Every backend loads the whole collection and rewrites the whole collection;
// there are no incremental writes.
package storage

import (
	"context"

	"expense-tracker/internal/core"
)

// Store is the persistence boundary for the expense collection.
type Store interface {
	// Load returns the persisted collection. Missing or empty state yields an
	// empty collection; unparseable state yields core.ErrCorruptState.
	Load(ctx context.Context) (core.Collection, error)

	// Save replaces the persisted state with exactly c.
	Save(ctx context.Context, c core.Collection) error
}
