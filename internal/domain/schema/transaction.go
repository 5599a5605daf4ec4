package schema

import (
	"regexp"
	"strings"
	"time"

	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/entity"
)

// Domain limits for a transaction record.
const (
	MinAmount      = 0.01
	MaxAmount      = 9999999.99
	MaxDescription = 200
	dateWindowYrs  = 10
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

func transactionFields(required bool) []Field {
	return []Field{
		{
			Name:     "amount",
			Required: required,
			Missing:  "Amount is required",
			Rules: []Rule{
				{Check: isNumber, Message: "Amount must be a number"},
				{Check: numberAtLeast(MinAmount), Message: "Amount must be greater than 0"},
				{Check: numberAtMost(MaxAmount), Message: "Amount cannot exceed 9,999,999.99"},
			},
		},
		{
			Name:     "date",
			Required: required,
			Missing:  "Date is required",
			Rules: []Rule{
				{Check: isString, Message: "Date must be a string"},
				{Check: stringNotBlank, Message: "Date is required"},
				{Check: dateParses, Message: "Invalid date format"},
				{Check: dateInWindow, Message: "Date must be within the last 10 years and not in the future"},
			},
		},
		{
			Name:     "description",
			Required: required,
			Missing:  "Description is required",
			Rules: []Rule{
				{Check: isString, Message: "Description must be a string"},
				{Check: stringNotBlank, Message: "Description cannot be empty or only whitespace"},
				{Check: trimmedMaxLen(MaxDescription), Message: "Description must be less than 200 characters"},
			},
		},
		{
			Name:     "type",
			Required: required,
			Missing:  "Transaction type is required",
			Rules: []Rule{
				{Check: isTransactionType, Message: "Transaction type must be either income or expense"},
			},
		},
	}
}

// CreateSchema validates a full transaction payload. Create and replace
// share it: a replacement record must satisfy every rule a fresh one does.
var CreateSchema = &Schema{Fields: transactionFields(true)}

// PartialSchema validates a partial-update payload: per-field rules are
// applied only to fields actually present, and at least one known field
// must be present.
var PartialSchema = &Schema{
	Fields:     transactionFields(false),
	RequireAny: true,
	EmptyMsg:   "At least one field must be provided for update",
}

// ValidateCreate parses and validates an untrusted request body as a
// complete transaction, returning the normalized record. The date-window
// rule evaluates against the supplied now.
func ValidateCreate(data []byte, now time.Time) (*entity.Transaction, error) {
	payload, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if errs := CreateSchema.Validate(payload, now); len(errs) > 0 {
		return nil, errs
	}

	typ, _ := entity.ParseTransactionType(payload["type"].(string))
	return &entity.Transaction{
		Amount:      payload["amount"].(float64),
		Date:        strings.TrimSpace(payload["date"].(string)),
		Description: strings.TrimSpace(payload["description"].(string)),
		Type:        typ,
	}, nil
}

// PartialUpdate carries the subset of fields present in a partial-update
// payload. Nil means the field was absent and must keep its stored value.
type PartialUpdate struct {
	Amount      *float64
	Date        *string
	Description *string
	Type        *entity.TransactionType
}

// Apply overlays the present fields onto an existing record.
func (p *PartialUpdate) Apply(tx *entity.Transaction) {
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}
	if p.Date != nil {
		tx.Date = *p.Date
	}
	if p.Description != nil {
		tx.Description = *p.Description
	}
	if p.Type != nil {
		tx.Type = *p.Type
	}
}

// ValidatePartial parses and validates an untrusted partial-update body.
func ValidatePartial(data []byte, now time.Time) (*PartialUpdate, error) {
	payload, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if errs := PartialSchema.Validate(payload, now); len(errs) > 0 {
		return nil, errs
	}

	upd := &PartialUpdate{}
	if v, ok := payload["amount"]; ok && v != nil {
		amount := v.(float64)
		upd.Amount = &amount
	}
	if v, ok := payload["date"]; ok && v != nil {
		date := strings.TrimSpace(v.(string))
		upd.Date = &date
	}
	if v, ok := payload["description"]; ok && v != nil {
		desc := strings.TrimSpace(v.(string))
		upd.Description = &desc
	}
	if v, ok := payload["type"]; ok && v != nil {
		typ, _ := entity.ParseTransactionType(v.(string))
		upd.Type = &typ
	}
	return upd, nil
}

// ValidateID checks a path-supplied identifier against the storage
// layer's object-id format before any lookup happens.
func ValidateID(id string) error {
	if id == "" {
		return ErrorList{{Field: "id", Message: "Transaction ID is required"}}
	}
	if !objectIDPattern.MatchString(id) {
		return ErrorList{{Field: "id", Message: "Invalid transaction ID format"}}
	}
	return nil
}

// ---- field predicates ----

func isNumber(v any, _ time.Time) bool {
	_, ok := v.(float64)
	return ok
}

func numberAtLeast(min float64) func(any, time.Time) bool {
	return func(v any, _ time.Time) bool {
		return v.(float64) >= min
	}
}

func numberAtMost(max float64) func(any, time.Time) bool {
	return func(v any, _ time.Time) bool {
		return v.(float64) <= max
	}
}

func isString(v any, _ time.Time) bool {
	_, ok := v.(string)
	return ok
}

func stringNotBlank(v any, _ time.Time) bool {
	return strings.TrimSpace(v.(string)) != ""
}

func trimmedMaxLen(max int) func(any, time.Time) bool {
	return func(v any, _ time.Time) bool {
		return len(strings.TrimSpace(v.(string))) <= max
	}
}

func dateParses(v any, _ time.Time) bool {
	_, err := entity.ParseDate(strings.TrimSpace(v.(string)))
	return err == nil
}

// dateInWindow enforces oldest-acceptable <= date <= now. The lower
// bound keeps the same time-of-day as now, so a date exactly ten years
// back only passes when validated at midnight.
func dateInWindow(v any, now time.Time) bool {
	d, err := entity.ParseDate(strings.TrimSpace(v.(string)))
	if err != nil {
		return false
	}
	oldest := now.AddDate(-dateWindowYrs, 0, 0)
	return !d.After(now) && !d.Before(oldest)
}

func isTransactionType(v any, _ time.Time) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, err := entity.ParseTransactionType(s)
	return err == nil
}
