package core

import (
	"errors"
	"testing"
)

func sample() Collection {
	return Collection{
		{ID: 1, Description: "a", Amount: 1, Date: NewDate(2026, 3, 1)},
		{ID: 4, Description: "b", Amount: 2, Date: NewDate(2026, 4, 1)},
		{ID: 2, Description: "c", Amount: 3, Date: NewDate(2025, 3, 1)},
	}
}

func TestNextID(t *testing.T) {
	if got := Collection(nil).NextID(); got != 1 {
		t.Fatalf("empty collection: expected 1, got %d", got)
	}
	if got := sample().NextID(); got != 5 {
		t.Fatalf("expected max+1 = 5, got %d", got)
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	c := sample()
	out, err := c.Remove(4)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 2 {
		t.Fatalf("unexpected result %+v", out)
	}
	if len(c) != 3 || c[1].ID != 4 {
		t.Fatalf("original collection modified: %+v", c)
	}

	if _, err := c.Remove(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindEditsInPlace(t *testing.T) {
	c := sample()
	e, err := c.Find(2)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	e.Description = "changed"
	if c[2].Description != "changed" {
		t.Fatalf("expected in-place edit")
	}
	if _, err := c.Find(3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInMonth(t *testing.T) {
	c := sample()
	tests := []struct {
		year, month int
		ids         []int
	}{
		{2026, 3, []int{1}},
		{2025, 3, []int{2}},
		{2026, 4, []int{4}},
		{2026, 13, nil},
		{2026, 0, nil},
	}
	for _, tt := range tests {
		got := c.InMonth(tt.year, tt.month)
		if len(got) != len(tt.ids) {
			t.Fatalf("%d-%d: expected %v, got %+v", tt.year, tt.month, tt.ids, got)
		}
		for i, id := range tt.ids {
			if got[i].ID != id {
				t.Fatalf("%d-%d: expected %v, got %+v", tt.year, tt.month, tt.ids, got)
			}
		}
	}
}
