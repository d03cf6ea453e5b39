package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"expense-tracker/internal/core"
)

func sampleCollection() core.Collection {
	return core.Collection{
		{ID: 1, Description: "Lunch", Amount: 20, Date: core.NewDate(2026, 10, 19)},
		{ID: 3, Description: "Taxi to the airport, late", Amount: 15.75, Date: core.NewDate(2026, 9, 2)},
		{ID: 2, Description: "Coffee", Amount: 0.1, Date: core.NewDate(2025, 3, 31)},
	}
}

// storeContract runs the behaviour every backend has to share.
func storeContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("empty state loads as empty collection", func(t *testing.T) {
		s := newStore(t)
		c, err := s.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if c == nil || len(c) != 0 {
			t.Fatalf("expected empty non-nil collection, got %#v", c)
		}
	})

	t.Run("round trip preserves fields and order", func(t *testing.T) {
		s := newStore(t)
		want := sampleCollection()
		if err := s.Save(ctx, want); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := s.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d expenses, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i].ID != want[i].ID ||
				got[i].Description != want[i].Description ||
				got[i].Amount != want[i].Amount ||
				got[i].Date.String() != want[i].Date.String() {
				t.Fatalf("expense %d: got %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("save replaces previous content", func(t *testing.T) {
		s := newStore(t)
		if err := s.Save(ctx, sampleCollection()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if err := s.Save(ctx, sampleCollection()[:1]); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := s.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(got) != 1 || got[0].ID != 1 {
			t.Fatalf("expected only expense 1, got %+v", got)
		}

		if err := s.Save(ctx, nil); err != nil {
			t.Fatalf("Save(nil) error = %v", err)
		}
		got, err = s.Load(ctx)
		if err != nil || len(got) != 0 {
			t.Fatalf("expected empty collection after saving nil, got %+v (err=%v)", got, err)
		}
	})
}

func TestJSONFileStore(t *testing.T) {
	storeContract(t, func(t *testing.T) Store {
		return NewJSONFileStore(filepath.Join(t.TempDir(), "expenses.json"), nil)
	})
}

func TestSQLiteStore(t *testing.T) {
	storeContract(t, func(t *testing.T) Store {
		s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "db", "expenses.db"), nil)
		if err != nil {
			t.Fatalf("NewSQLiteStore() error = %v", err)
		}
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestJSONFileStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	if err := os.WriteFile(path, []byte("  \n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := NewJSONFileStore(path, nil).Load(context.Background())
	if err != nil || len(c) != 0 {
		t.Fatalf("expected empty collection, got %+v (err=%v)", c, err)
	}
}

func TestJSONFileStore_CorruptFile(t *testing.T) {
	for _, content := range []string{"{not json", `{"id":1}`, `[{"id":1,"date":"yesterday"}]`} {
		path := filepath.Join(t.TempDir(), "expenses.json")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		_, err := NewJSONFileStore(path, nil).Load(context.Background())
		if !errors.Is(err, core.ErrCorruptState) {
			t.Fatalf("%q: expected ErrCorruptState, got %v", content, err)
		}
	}
}

func TestJSONFileStore_Format(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expenses.json")
	s := NewJSONFileStore(path, nil)

	err := s.Save(context.Background(), core.Collection{
		{ID: 1, Description: "Lunch", Amount: 20, Date: core.NewDate(2026, 10, 19)},
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "[\n  {\n    \"id\": 1,\n    \"description\": \"Lunch\",\n    \"amount\": 20,\n    \"date\": \"2026-10-19\"\n  }\n]"
	if string(data) != want {
		t.Fatalf("unexpected file content:\n%s\nwant:\n%s", data, want)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestJSONFileStore_ReadsForeignFormatting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	compact := `[{"id":7,"description":"Books","amount":12.345,"date":"2026-01-05"}]`
	if err := os.WriteFile(path, []byte(compact), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := NewJSONFileStore(path, nil).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(c) != 1 || c[0].ID != 7 || c[0].Amount != 12.345 || c[0].Date.Month() != 1 {
		t.Fatalf("unexpected collection %+v", c)
	}
}

func TestMemoryStore_IsolatesCallers(t *testing.T) {
	s := NewMemoryStore(sampleCollection()...)
	c, _ := s.Load(context.Background())
	c[0].Description = "mutated"

	again, _ := s.Load(context.Background())
	if again[0].Description != "Lunch" {
		t.Fatalf("load should return a copy, got %q", again[0].Description)
	}
	if s.Saves() != 0 {
		t.Fatalf("expected no saves, got %d", s.Saves())
	}
}
