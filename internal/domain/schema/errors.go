package schema

import (
	"errors"
	"strings"
)

// ErrMalformedInput signals a payload that could not be parsed into a
// structured candidate at all. It is deliberately distinct from field
// validation failures so callers can branch on the error category.
var ErrMalformedInput = errors.New("invalid JSON format")

// FieldError is a single violated rule, attached to the field that
// violated it.
type FieldError struct {
	Field   string
	Message string
}

// ErrorList collects every violated rule from one validation pass.
// It renders as "field: message" pairs joined by ", ", mirroring the
// inline feedback the form layer surfaces.
type ErrorList []FieldError

func (e ErrorList) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, ", ")
}

// Has reports whether the list contains an error for the given field.
func (e ErrorList) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}
