package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"expense-tracker/internal/core"
)

// ExpenseEvent is published after a mutation has been saved. It carries the
// full record so consumers never need to read the data file.
type ExpenseEvent struct {
	MessageID   string          `json:"message_id"`
	Type        core.ChangeKind `json:"type"`
	ID          int             `json:"id"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Date        string          `json:"date"`
	Timestamp   time.Time       `json:"timestamp"`
}

// NewExpenseEvent builds an event for change stamped at now.
func NewExpenseEvent(change core.Change, now time.Time) *ExpenseEvent {
	return &ExpenseEvent{
		MessageID:   uuid.NewString(),
		Type:        change.Kind,
		ID:          change.Expense.ID,
		Description: change.Expense.Description,
		Amount:      change.Expense.Amount,
		Date:        change.Expense.Date.String(),
		Timestamp:   now.UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
