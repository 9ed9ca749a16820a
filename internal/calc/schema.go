package calc

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"cuelang.org/go/cue"
)

// FieldType enumerates the semantic types an input field can take.
type FieldType string

const (
	// FieldNumber is a float64 input, optionally bounded or whole.
	FieldNumber FieldType = "number"
	// FieldEnum is a selection from a fixed option list.
	FieldEnum FieldType = "enum"
	// FieldDate is a calendar date in YYYY-MM-DD form.
	FieldDate FieldType = "date"
	// FieldText is non-empty free text.
	FieldText FieldType = "text"
)

// Field describes one input of a calculator.
type Field struct {
	Name    string    `json:"name"`
	Label   string    `json:"label"`
	Type    FieldType `json:"type"`
	Unit    string    `json:"unit,omitempty"`    // display unit, numbers only
	Min     *float64  `json:"min,omitempty"`     // inclusive lower bound
	Max     *float64  `json:"max,omitempty"`     // inclusive upper bound
	Integer bool      `json:"integer,omitempty"` // number must be whole
	Options []string  `json:"options,omitempty"` // enum values, display order
}

// Refinement is a cross-field rule checked after every per-field constraint
// has passed. Rule is a compiled boolean expression evaluated over an
// `inputs` struct holding the coerced values.
type Refinement struct {
	Fields  []string // fields the rule reads, for error attribution
	Message string   // human-readable violation text
	Rule    cue.Value
}

// Holds reports whether the rule is satisfied by the coerced inputs.
func (r *Refinement) Holds(v Values) (bool, error) {
	filled := r.Rule.FillPath(cue.ParsePath("inputs"), v.encode())
	if err := filled.Err(); err != nil {
		return false, fmt.Errorf("fill rule inputs: %w", err)
	}
	ok, err := filled.LookupPath(cue.ParsePath("ok")).Bool()
	if err != nil {
		return false, fmt.Errorf("evaluate rule: %w", err)
	}
	return ok, nil
}

// InputSchema declares the inputs a calculator accepts. Every declared field
// is required and unknown fields are rejected.
type InputSchema struct {
	Fields      []Field
	Refinements []Refinement
}

// FieldByName returns the declared field with the given name.
func (s *InputSchema) FieldByName(name string) (*Field, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// Coerce validates raw inputs against the schema and converts them to typed
// Values. Raw values may be JSON scalars or CLI strings. On any violation it
// returns a *ValidationError listing every offending field; the caller must
// not compute while one is pending.
func (s *InputSchema) Coerce(raw map[string]any) (Values, error) {
	var fieldErrs []FieldError

	for name := range raw {
		if _, ok := s.FieldByName(name); !ok {
			fieldErrs = append(fieldErrs, FieldError{Field: name, Message: "is not a recognized field"})
		}
	}

	values := make(Values, len(s.Fields))
	for _, field := range s.Fields {
		rawVal, present := raw[field.Name]
		if !present {
			fieldErrs = append(fieldErrs, FieldError{Field: field.Name, Message: "is required"})
			continue
		}
		val, msg := coerceField(&field, rawVal)
		if msg != "" {
			fieldErrs = append(fieldErrs, FieldError{Field: field.Name, Message: msg})
			continue
		}
		values[field.Name] = val
	}

	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: sortedFieldErrors(fieldErrs, s)}
	}

	// Cross-field rules run only on fully coerced inputs.
	for i := range s.Refinements {
		r := &s.Refinements[i]
		ok, err := r.Holds(values)
		if err != nil {
			return nil, fmt.Errorf("refinement %q: %w", r.Message, err)
		}
		if !ok {
			fieldErrs = append(fieldErrs, FieldError{
				Field:   strings.Join(r.Fields, ", "),
				Message: r.Message,
			})
		}
	}
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	return values, nil
}

// coerceField converts one raw value to its typed form, returning a
// human-readable message when the value violates the field's constraints.
func coerceField(field *Field, raw any) (Value, string) {
	switch field.Type {
	case FieldNumber:
		return coerceNumber(field, raw)
	case FieldEnum:
		return coerceEnum(field, raw)
	case FieldDate:
		return coerceDate(raw)
	case FieldText:
		return coerceText(raw)
	default:
		return nil, fmt.Sprintf("has unsupported type %q", field.Type)
	}
}

func coerceNumber(field *Field, raw any) (Value, string) {
	var v float64
	switch t := raw.(type) {
	case float64:
		v = t
	case float32:
		v = float64(t)
	case int:
		v = float64(t)
	case int64:
		v = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return nil, "must be a number"
		}
		v = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil, "must be a number"
		}
		v = parsed
	default:
		return nil, "must be a number"
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, "must be a number"
	}
	if field.Min != nil && v < *field.Min {
		return nil, "must be ≥ " + formatBound(*field.Min)
	}
	if field.Max != nil && v > *field.Max {
		return nil, "must be ≤ " + formatBound(*field.Max)
	}
	if field.Integer && v != math.Trunc(v) {
		return nil, "must be a whole number"
	}
	return NumberValue(v), ""
}

func coerceEnum(field *Field, raw any) (Value, string) {
	s, ok := raw.(string)
	if !ok {
		return nil, "must be one of: " + strings.Join(field.Options, ", ")
	}
	s = strings.TrimSpace(s)
	for _, opt := range field.Options {
		if s == opt {
			return StringValue(s), ""
		}
	}
	return nil, "must be one of: " + strings.Join(field.Options, ", ")
}

func coerceDate(raw any) (Value, string) {
	switch t := raw.(type) {
	case string:
		parsed, err := time.Parse(dateLayout, strings.TrimSpace(t))
		if err != nil {
			return nil, "must be a date in YYYY-MM-DD form"
		}
		return DateValue(parsed), ""
	case time.Time:
		return NewDateValue(t.Year(), t.Month(), t.Day()), ""
	default:
		return nil, "must be a date in YYYY-MM-DD form"
	}
}

func coerceText(raw any) (Value, string) {
	s, ok := raw.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil, "must not be empty"
	}
	return StringValue(strings.TrimSpace(s)), ""
}

// formatBound renders a bound with the fewest digits that round-trip.
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// sortedFieldErrors orders per-field errors by schema declaration order so
// messages are stable regardless of map iteration. Unknown fields sort last,
// alphabetically.
func sortedFieldErrors(errs []FieldError, s *InputSchema) []FieldError {
	rank := func(field string) int {
		for i := range s.Fields {
			if s.Fields[i].Name == field {
				return i
			}
		}
		return len(s.Fields)
	}
	out := make([]FieldError, len(errs))
	copy(out, errs)
	slices.SortStableFunc(out, func(a, b FieldError) int {
		if ra, rb := rank(a.Field), rank(b.Field); ra != rb {
			return ra - rb
		}
		return strings.Compare(a.Field, b.Field)
	})
	return out
}

// Bound is a convenience for optional Field bounds.
func Bound(v float64) *float64 {
	return &v
}
