package entity

import (
	"fmt"
	"time"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// DateLayout is the interchange format for transaction dates (calendar
// date only, no time-of-day semantics).
const DateLayout = "2006-01-02"

// ParseTransactionType converts a raw string into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TypeIncome:
		return TypeIncome, nil
	case TypeExpense:
		return TypeExpense, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// Transaction represents a single income or expense record.
// ID and the timestamps are assigned by the storage layer; they are
// empty on a record that has not been persisted yet.
type Transaction struct {
	ID          string          `json:"_id,omitempty"`
	Amount      float64         `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
	CreatedAt   time.Time       `json:"createdAt,omitzero"`
	UpdatedAt   time.Time       `json:"updatedAt,omitzero"`
}

// DateValue parses the transaction date. The date is stored as a
// calendar-date string; RFC 3339 timestamps are accepted for
// compatibility with clients that send full datetimes.
func (t *Transaction) DateValue() (time.Time, error) {
	return ParseDate(t.Date)
}

// ParseDate parses an interchange date string.
func ParseDate(s string) (time.Time, error) {
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return d, nil
}
