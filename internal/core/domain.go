package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the on-disk representation of an expense date.
const DateLayout = "2006-01-02"

type (
	Date struct {
		time.Time
	}

	Expense struct {
		ID          int     `json:"id"`
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Date        Date    `json:"date"`
	}
)

var (
	ErrUsage        = errors.New("usage error")
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("expense not found")
	ErrCorruptState = errors.New("corrupt expense data")

	ErrInvalidDate      = fmt.Errorf("%w: date cannot be zero", ErrValidation)
	ErrInvalidDay       = fmt.Errorf("%w: invalid day", ErrValidation)
	ErrInvalidMonth     = fmt.Errorf("%w: invalid month", ErrValidation)
	ErrInvalidID        = fmt.Errorf("%w: id must be a positive integer", ErrValidation)
	ErrEmptyDescription = fmt.Errorf("%w: description cannot be empty", ErrValidation)
	ErrInvalidAmount    = fmt.Errorf("%w: amount must be a positive number", ErrValidation)
)

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date must be a string, got %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Validate checks the record invariants every saved expense must hold.
func (e Expense) Validate() error {
	if e.ID < 1 {
		return ErrInvalidID
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if !(e.Amount > 0) {
		return ErrInvalidAmount
	}
	return nil
}

// ChangeKind names a mutation applied to the collection.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "expense.added"
	ChangeUpdated ChangeKind = "expense.updated"
	ChangeDeleted ChangeKind = "expense.deleted"
)

// Change describes a saved mutation. For deletions Expense holds the removed
// record.
type Change struct {
	Kind    ChangeKind
	Expense Expense
}
