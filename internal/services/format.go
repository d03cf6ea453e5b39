package services

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"expense-tracker/internal/core"
)

const msgNoExpenses = "No expenses found."

const tableHeader = "Expenses:\n\n" +
	"ID  Date       Description        Amount\n" +
	"--  ---------- ------------------ -------\n"

// writeTable renders fixed-width columns. Values wider than their column
// push the rest of the row right instead of being cut.
func writeTable(w io.Writer, c core.Collection, currency string) error {
	if _, err := io.WriteString(w, tableHeader); err != nil {
		return err
	}
	for _, e := range c {
		amount := core.FormatMoney(currency, decimal.NewFromFloat(e.Amount))
		if _, err := fmt.Fprintf(w, "%-3d %-10s %-18s %s\n", e.ID, e.Date, e.Description, amount); err != nil {
			return err
		}
	}
	return nil
}
