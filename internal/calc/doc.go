// Package calc defines the computation contract every calculator satisfies:
// a declarative input schema, typed input values, a pure compute function,
// and a structured result.
//
// Inputs move through one pipeline: raw values (CLI strings or JSON scalars)
// are coerced against the schema, per-field constraints and cross-field
// refinement rules are checked, and only fully valid Values reach the
// compute function. Violations surface as a ValidationError that names every
// offending field; partial computation never happens.
//
// Numeric policy: all numbers are float64 end to end. Display precision is a
// property of each ResultValue and applies when rendering, never to the
// computed value itself.
package calc
