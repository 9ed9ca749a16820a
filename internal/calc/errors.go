package calc

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError describes one invalid or missing input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError reports every input violation found while coercing raw
// inputs against a schema. Computation is never attempted while one of these
// is pending, and no partial results exist.
type ValidationError struct {
	CalculatorID string       `json:"calculator_id,omitempty"`
	Fields       []FieldError `json:"fields"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	if e.CalculatorID != "" {
		return fmt.Sprintf("invalid inputs for %s: %s", e.CalculatorID, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("invalid inputs: %s", strings.Join(parts, "; "))
}

// AsValidationError unwraps err to a *ValidationError if one is present.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
