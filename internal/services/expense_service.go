package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"expense-tracker/internal/core"
	applog "expense-tracker/internal/log"
	"expense-tracker/internal/storage"
)

// Notifier is told about every mutation after it has been saved.
type Notifier interface {
	Notify(ctx context.Context, change core.Change) error
}

// Options for each command. An empty string means the argument was not
// supplied.
type (
	AddOptions struct {
		Description string
		Amount      string
	}

	UpdateOptions struct {
		ID          string
		Description string
		Amount      string
	}

	DeleteOptions struct {
		ID string
	}

	SummaryOptions struct {
		Month string
	}
)

// ExpenseService implements the add, list, update, delete and summary
// commands. Each call is one load, at most one mutation and at most one save.
type ExpenseService struct {
	store    storage.Store
	notifier Notifier
	clock    core.Clock
	out      io.Writer
	currency string
	logger   *applog.Logger
}

type Option func(*ExpenseService)

// WithNotifier publishes saved mutations through n.
func WithNotifier(n Notifier) Option {
	return func(s *ExpenseService) { s.notifier = n }
}

// WithClock overrides the source of "today".
func WithClock(c core.Clock) Option {
	return func(s *ExpenseService) { s.clock = c }
}

// WithCurrency sets the symbol printed in front of amounts.
func WithCurrency(symbol string) Option {
	return func(s *ExpenseService) { s.currency = symbol }
}

func WithLogger(l *applog.Logger) Option {
	return func(s *ExpenseService) { s.logger = l }
}

func NewExpenseService(store storage.Store, out io.Writer, opts ...Option) *ExpenseService {
	s := &ExpenseService{
		store:    store,
		clock:    core.SystemClock,
		out:      out,
		currency: "$",
		logger:   applog.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent(applog.ComponentExpense)
	return s
}

// Add appends a new expense dated today.
func (s *ExpenseService) Add(ctx context.Context, opts AddOptions) (core.Expense, error) {
	description := strings.TrimSpace(opts.Description)
	if description == "" || strings.TrimSpace(opts.Amount) == "" {
		return core.Expense{}, fmt.Errorf("%w: add requires --description and --amount", core.ErrUsage)
	}
	amount, err := core.ParseAmount(opts.Amount)
	if err != nil {
		s.logger.DebugContext(ctx, "Rejected amount",
			applog.FieldOperation, applog.OpAdd,
			applog.FieldErrorType, applog.ErrorTypeValidation,
			applog.FieldAmount, opts.Amount)
		return core.Expense{}, err
	}

	c, err := s.store.Load(ctx)
	if err != nil {
		return core.Expense{}, err
	}

	e := core.Expense{
		ID:          c.NextID(),
		Description: opts.Description,
		Amount:      amount,
		Date:        core.DateOf(s.clock.Now()),
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("expense %d: %w", e.ID, err)
	}
	c = append(c, e)

	if err := s.store.Save(ctx, c); err != nil {
		return core.Expense{}, fmt.Errorf("save expenses: %w", err)
	}
	s.logger.InfoContext(ctx, "Expense added",
		applog.NewFields().WithOperation(applog.OpAdd).
			WithExpense(e.ID, e.Description, e.Amount, e.Date.String()).ToSlice()...)
	s.notify(ctx, core.Change{Kind: core.ChangeAdded, Expense: e})

	fmt.Fprintf(s.out, "Expense added successfully (ID: %d)\n", e.ID)
	return e, nil
}

// List prints every expense in collection order.
func (s *ExpenseService) List(ctx context.Context) (core.Collection, error) {
	c, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(c) == 0 {
		fmt.Fprintln(s.out, msgNoExpenses)
		return c, nil
	}
	if err := writeTable(s.out, c, s.currency); err != nil {
		return nil, fmt.Errorf("write table: %w", err)
	}
	return c, nil
}

// Delete removes one expense. An unknown id is reported, not returned as an
// error.
func (s *ExpenseService) Delete(ctx context.Context, opts DeleteOptions) error {
	raw := strings.TrimSpace(opts.ID)
	if raw == "" {
		return fmt.Errorf("%w: delete requires --id", core.ErrUsage)
	}

	c, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	id, ok := parseID(raw)
	i := -1
	if ok {
		i = c.IndexOf(id)
	}
	if i < 0 {
		s.reportNotFound(ctx, applog.OpDelete, raw)
		return nil
	}

	removed := c[i]
	c, err = c.Remove(id)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, c); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	s.logger.InfoContext(ctx, "Expense deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldExpenseID, id)
	s.notify(ctx, core.Change{Kind: core.ChangeDeleted, Expense: removed})

	fmt.Fprintf(s.out, "Expense with ID %d deleted successfully.\n", id)
	return nil
}

// Update changes the description and/or amount of one expense. If the new
// amount is invalid nothing is saved, including a new description.
func (s *ExpenseService) Update(ctx context.Context, opts UpdateOptions) error {
	raw := strings.TrimSpace(opts.ID)
	if raw == "" {
		return fmt.Errorf("%w: update requires --id", core.ErrUsage)
	}

	c, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	id, ok := parseID(raw)
	var e *core.Expense
	if ok {
		e, err = c.Find(id)
	}
	if !ok || err != nil {
		s.reportNotFound(ctx, applog.OpUpdate, raw)
		return nil
	}

	if opts.Description != "" {
		e.Description = opts.Description
	}
	if strings.TrimSpace(opts.Amount) != "" {
		amount, err := core.ParseAmount(opts.Amount)
		if err != nil {
			s.logger.DebugContext(ctx, "Rejected amount, update discarded",
				applog.FieldOperation, applog.OpUpdate,
				applog.FieldErrorType, applog.ErrorTypeValidation,
				applog.FieldExpenseID, id,
				applog.FieldAmount, opts.Amount)
			return err
		}
		e.Amount = amount
	}
	updated := *e
	if err := updated.Validate(); err != nil {
		s.logger.WarnContext(ctx, "Refusing to save invalid expense",
			applog.FieldOperation, applog.OpUpdate,
			applog.FieldErrorType, applog.ErrorTypeValidation,
			applog.FieldExpenseID, id,
			applog.FieldError, err)
		return fmt.Errorf("expense %d: %w", id, err)
	}

	if err := s.store.Save(ctx, c); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	s.logger.InfoContext(ctx, "Expense updated",
		applog.NewFields().WithOperation(applog.OpUpdate).
			WithExpense(updated.ID, updated.Description, updated.Amount, updated.Date.String()).ToSlice()...)
	s.notify(ctx, core.Change{Kind: core.ChangeUpdated, Expense: updated})

	fmt.Fprintf(s.out, "Expense with ID %d updated successfully.\n", id)
	return nil
}

// Summary prints the total of all expenses, or of one month of the current
// year when a month is given. Months outside 1-12 match nothing.
func (s *ExpenseService) Summary(ctx context.Context, opts SummaryOptions) (decimal.Decimal, error) {
	c, err := s.store.Load(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if len(c) == 0 {
		fmt.Fprintln(s.out, msgNoExpenses)
		return decimal.Zero, nil
	}

	raw := strings.TrimSpace(opts.Month)
	if raw == "" {
		total := core.Total(c)
		fmt.Fprintf(s.out, "Total expenses: %s\n", core.FormatMoney(s.currency, total))
		return total, nil
	}

	var subset core.Collection
	year := s.clock.Now().Year()
	label := raw
	if month, err := strconv.Atoi(raw); err == nil {
		subset = c.InMonth(year, month)
		label = strconv.Itoa(month)
	}
	total := core.Total(subset)

	s.logger.DebugContext(ctx, "Monthly summary",
		applog.FieldOperation, applog.OpSummary,
		applog.FieldYear, year,
		applog.FieldMonth, label,
		applog.FieldCount, len(subset))

	fmt.Fprintf(s.out, "Total expenses for month %s: %s\n", label, core.FormatMoney(s.currency, total))
	return total, nil
}

func (s *ExpenseService) reportNotFound(ctx context.Context, op, raw string) {
	s.logger.DebugContext(ctx, "Expense not found",
		applog.FieldOperation, op,
		applog.FieldErrorType, applog.ErrorTypeNotFound,
		applog.FieldExpenseID, raw)
	fmt.Fprintf(s.out, "Expense with ID %s not found.\n", raw)
}

// notify never fails the command: the mutation is already saved.
func (s *ExpenseService) notify(ctx context.Context, change core.Change) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, change); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish expense event",
			applog.FieldOperation, applog.OpPublish,
			applog.FieldErrorType, applog.ErrorTypeNetwork,
			applog.FieldExpenseID, change.Expense.ID,
			applog.FieldError, err)
	}
}

func parseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}
