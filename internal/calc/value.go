package calc

import (
	"fmt"
	"strconv"
	"time"
)

// dateLayout is the wire and display form for date inputs and results.
const dateLayout = "2006-01-02"

// Value is a sealed interface over the typed inputs a calculator accepts.
// Only NumberValue, StringValue, and DateValue implement it. Every value
// renders itself in its plain wire form.
type Value interface {
	fmt.Stringer
	calcValue() // Sealed - only these types implement it
}

// NumberValue is a numeric input. All numeric inputs are float64; rounding
// happens at presentation time only, never on the value itself.
type NumberValue float64

func (NumberValue) calcValue() {}

// String renders the number with the fewest digits that round-trip.
func (n NumberValue) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// StringValue is an enum selection or a free-text input.
type StringValue string

func (StringValue) calcValue() {}

func (s StringValue) String() string { return string(s) }

// DateValue is a calendar date input, normalized to midnight UTC.
type DateValue time.Time

func (DateValue) calcValue() {}

func (d DateValue) String() string { return time.Time(d).Format(dateLayout) }

// NewDateValue builds a DateValue from a calendar date.
func NewDateValue(year int, month time.Month, day int) DateValue {
	return DateValue(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Values maps field names to coerced input values. Compute functions receive
// a Values that has already passed schema validation, so the typed accessors
// below do not report absence.
type Values map[string]Value

// Number returns the numeric value of a field, or 0 when the field is absent
// or not a number.
func (v Values) Number(name string) float64 {
	if n, ok := v[name].(NumberValue); ok {
		return float64(n)
	}
	return 0
}

// Text returns the string value of a field, or "" when the field is absent
// or not a string.
func (v Values) Text(name string) string {
	if s, ok := v[name].(StringValue); ok {
		return string(s)
	}
	return ""
}

// Date returns the date value of a field, or the zero time when the field is
// absent or not a date.
func (v Values) Date(name string) time.Time {
	if d, ok := v[name].(DateValue); ok {
		return time.Time(d)
	}
	return time.Time{}
}

// encode converts the values to plain Go types for rule evaluation.
// Dates become ISO strings so lexicographic comparison matches calendar order.
func (v Values) encode() map[string]any {
	out := make(map[string]any, len(v))
	for name, val := range v {
		switch t := val.(type) {
		case NumberValue:
			out[name] = float64(t)
		case StringValue:
			out[name] = string(t)
		case DateValue:
			out[name] = time.Time(t).Format(dateLayout)
		}
	}
	return out
}
