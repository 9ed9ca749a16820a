package calc

import "fmt"

// Category groups calculators for catalog listings.
type Category string

const (
	CategoryConversion   Category = "conversion"
	CategoryConstruction Category = "construction"
	CategoryMath         Category = "math"
	CategoryDatetime     Category = "datetime"
	CategoryFinance      Category = "finance"
	CategoryHealth       Category = "health"
)

// Categories lists all known categories in display order.
func Categories() []Category {
	return []Category{
		CategoryConversion,
		CategoryConstruction,
		CategoryMath,
		CategoryDatetime,
		CategoryFinance,
		CategoryHealth,
	}
}

// ParseCategory validates a category string.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if s == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// ComputeFunc is the pure computation of one calculator. Implementations
// must be deterministic and free of I/O; inputs arrive coerced and valid.
type ComputeFunc func(Values) (*Result, error)

// Definition is one calculator: identity, input schema, and computation.
// Definitions are assembled once at startup and read-only afterward.
type Definition struct {
	ID          string
	Name        string
	Category    Category
	Description string
	Schema      *InputSchema
	Func        ComputeFunc
}

// Evaluate validates raw inputs against the schema and, when they are valid,
// runs the calculator's pure function. It returns the coerced values
// alongside the result because exporting a computation renders both. Invalid
// inputs return a *ValidationError naming every offending field; nothing is
// computed.
func (d *Definition) Evaluate(raw map[string]any) (Values, *Result, error) {
	values, err := d.Schema.Coerce(raw)
	if err != nil {
		if verr, ok := AsValidationError(err); ok {
			verr.CalculatorID = d.ID
		}
		return nil, nil, err
	}
	result, err := d.Func(values)
	if err != nil {
		return nil, nil, fmt.Errorf("compute %s: %w", d.ID, err)
	}
	return values, result, nil
}

// Compute is Evaluate for callers that only need the result.
func (d *Definition) Compute(raw map[string]any) (*Result, error) {
	_, result, err := d.Evaluate(raw)
	return result, err
}
