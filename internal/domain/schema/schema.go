package schema

import (
	"encoding/json"
	"time"
)

// Rule is one predicate over a field value with the message reported
// when the predicate fails. Rules never stop the overall validation
// pass; every field gets its say before an error is rendered.
type Rule struct {
	Check   func(v any, now time.Time) bool
	Message string
}

// Field holds the ordered rules for one payload field. Rules run in
// order and stop at the first failure for that field, so later rules
// may assume the shape earlier rules established.
type Field struct {
	Name     string
	Required bool
	Missing  string // message when a required field is absent
	Rules    []Rule
}

// Schema validates an untrusted decoded payload against a fixed set of
// field rules. Validation depends on the current time only through the
// explicit now parameter, which keeps the date-window rules testable.
type Schema struct {
	Fields []Field

	// RequireAny rejects payloads that contain none of the known
	// fields. Used by the partial-update variant.
	RequireAny bool
	EmptyMsg   string
}

// Decode parses raw JSON into the generic payload shape a Schema
// validates. Anything that is not a JSON object is malformed input,
// not a field error.
func Decode(data []byte) (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil || payload == nil {
		return nil, ErrMalformedInput
	}
	return payload, nil
}

// Validate applies every field's rules against the payload and collects
// all violations. A nil return means the payload passed.
func (s *Schema) Validate(payload map[string]any, now time.Time) ErrorList {
	var errs ErrorList

	if s.RequireAny && !s.anyPresent(payload) {
		return ErrorList{{Field: "body", Message: s.EmptyMsg}}
	}

	for _, f := range s.Fields {
		v, present := payload[f.Name]
		if !present || v == nil {
			if f.Required {
				errs = append(errs, FieldError{Field: f.Name, Message: f.Missing})
			}
			continue
		}
		for _, r := range f.Rules {
			if !r.Check(v, now) {
				errs = append(errs, FieldError{Field: f.Name, Message: r.Message})
				break
			}
		}
	}

	return errs
}

func (s *Schema) anyPresent(payload map[string]any) bool {
	for _, f := range s.Fields {
		if v, ok := payload[f.Name]; ok && v != nil {
			return true
		}
	}
	return false
}
