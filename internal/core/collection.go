package core

import "time"

// Collection is the full ordered set of expenses, oldest first.
type Collection []Expense

// NextID returns one more than the highest id present, or 1 when empty.
func (c Collection) NextID() int {
	max := 0
	for _, e := range c {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

// IndexOf returns the position of the expense with the given id, or -1.
func (c Collection) IndexOf(id int) int {
	for i, e := range c {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Find returns a pointer into the collection so callers can edit in place.
func (c Collection) Find(id int) (*Expense, error) {
	i := c.IndexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	return &c[i], nil
}

// Remove drops the expense with the given id keeping the order of the rest.
func (c Collection) Remove(id int) (Collection, error) {
	i := c.IndexOf(id)
	if i < 0 {
		return c, ErrNotFound
	}
	out := make(Collection, 0, len(c)-1)
	out = append(out, c[:i]...)
	out = append(out, c[i+1:]...)
	return out, nil
}

// InMonth keeps the expenses dated in the given month of the given year.
// Out of range months simply match nothing.
func (c Collection) InMonth(year, month int) Collection {
	var out Collection
	for _, e := range c {
		if e.Date.Year() == year && e.Date.Month() == month {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a copy that can be mutated without touching c.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Clock is the source of "today" for new expenses and monthly summaries.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the local wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
