// Package core provides money parsing and handling utilities.
//
// Amounts are stored as float64 to stay compatible with the JSON data file,
// but parsing and summing go through decimal values so totals print the way
// a person adding receipts would expect.
package core

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user input into a positive amount.
//
// Surrounding whitespace is ignored. Anything that is not a plain finite
// number (including NaN and Inf spellings) or is not strictly greater than
// zero yields ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("20")    -> 20, nil
//	ParseAmount("12.50") -> 12.5, nil
//	ParseAmount("-5")    -> 0, ErrInvalidAmount
//	ParseAmount("abc")   -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return 0, ErrInvalidAmount
	}
	f, _ := d.Float64()
	if !(f > 0) || math.IsInf(f, 0) {
		// underflowed to zero or overflowed float64
		return 0, ErrInvalidAmount
	}
	return f, nil
}

// Total sums the amounts of the given expenses.
func Total(expenses []Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(decimal.NewFromFloat(e.Amount))
	}
	return sum
}

// FormatMoney renders an amount with two decimals behind a currency symbol.
func FormatMoney(symbol string, amount decimal.Decimal) string {
	return symbol + amount.StringFixed(2)
}
