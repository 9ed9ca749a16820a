package calc

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// displayPrinter renders human-facing numbers with digit grouping.
var displayPrinter = message.NewPrinter(language.English)

// ResultValue is one labeled output of a computation. The raw value is never
// rounded; Precision applies at presentation time only.
type ResultValue struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Value     Value  `json:"-"`
	Unit      string `json:"unit,omitempty"`
	Precision int    `json:"precision,omitempty"`
}

// Num builds a numeric result value.
func Num(name, label string, value float64, unit string, precision int) ResultValue {
	return ResultValue{Name: name, Label: label, Value: NumberValue(value), Unit: unit, Precision: precision}
}

// Txt builds a textual result value.
func Txt(name, label, value string) ResultValue {
	return ResultValue{Name: name, Label: label, Value: StringValue(value)}
}

// Day builds a date result value.
func Day(name, label string, value time.Time) ResultValue {
	return ResultValue{Name: name, Label: label, Value: DateValue(value)}
}

// Display renders the value for human-facing output, with digit grouping.
func (rv ResultValue) Display() string {
	switch v := rv.Value.(type) {
	case NumberValue:
		return displayPrinter.Sprint(number.Decimal(float64(v), number.Scale(rv.Precision)))
	case StringValue:
		return string(v)
	case DateValue:
		return time.Time(v).Format(dateLayout)
	}
	return ""
}

// Plain renders the value without digit grouping, for machine-readable
// output such as CSV cells.
func (rv ResultValue) Plain() string {
	switch v := rv.Value.(type) {
	case NumberValue:
		return strconv.FormatFloat(float64(v), 'f', rv.Precision, 64)
	case StringValue:
		return string(v)
	case DateValue:
		return time.Time(v).Format(dateLayout)
	}
	return ""
}

// Result is the ordered set of values one computation produced. It carries
// no presentation state, so formatters and the history log consume it
// independently.
type Result struct {
	Values []ResultValue `json:"values"`
}

// NewResult builds a result from ordered values.
func NewResult(values ...ResultValue) *Result {
	return &Result{Values: values}
}

// Summary renders the whole result on one line. This is the string the
// history log stores.
func (r *Result) Summary() string {
	parts := make([]string, 0, len(r.Values))
	for _, rv := range r.Values {
		s := rv.Label + ": " + rv.Display()
		if rv.Unit != "" {
			s += " " + rv.Unit
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "; ")
}
