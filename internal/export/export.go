// Package export renders one computation as a downloadable document: a
// human-readable text block or a two-line CSV table. Rendering is a pure
// function of the definition, inputs, and result, and produces identical
// bytes for identical arguments.
package export

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/ramizraja09/calcpad/internal/calc"
)

// Kind selects the export representation.
type Kind string

const (
	// KindText is the multi-line human-readable block.
	KindText Kind = "text"
	// KindCSV is the two-line delimited table: header line, data line.
	KindCSV Kind = "csv"
)

// Kinds lists the supported export kinds.
func Kinds() []string {
	return []string{string(KindText), string(KindCSV)}
}

// ParseKind validates an export kind string.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindText, KindCSV:
		return k, nil
	default:
		return "", fmt.Errorf("unsupported export kind %q (valid: %s)", s, strings.Join(Kinds(), ", "))
	}
}

// Format renders one computation. Inputs must be the coerced values the
// computation ran on; they appear in schema declaration order, results in
// computation order.
func Format(def *calc.Definition, inputs calc.Values, result *calc.Result, kind Kind) (string, error) {
	switch kind {
	case KindText:
		return formatText(def, inputs, result), nil
	case KindCSV:
		return formatCSV(def, inputs, result)
	default:
		return "", fmt.Errorf("unsupported export kind %q", kind)
	}
}

func formatText(def *calc.Definition, inputs calc.Values, result *calc.Result) string {
	var b strings.Builder
	b.WriteString(def.Name)
	b.WriteString("\n\nInputs:\n")
	for _, f := range def.Schema.Fields {
		v, ok := inputs[f.Name]
		if !ok {
			continue
		}
		b.WriteString("  ")
		b.WriteString(f.Label)
		b.WriteString(": ")
		b.WriteString(v.String())
		if f.Unit != "" {
			b.WriteString(" ")
			b.WriteString(f.Unit)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nResults:\n")
	for _, rv := range result.Values {
		b.WriteString("  ")
		b.WriteString(rv.Label)
		b.WriteString(": ")
		b.WriteString(rv.Display())
		if rv.Unit != "" {
			b.WriteString(" ")
			b.WriteString(rv.Unit)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatCSV writes a header of input labels then result labels, and one data
// row of plain (ungrouped) values. encoding/csv quotes any cell containing
// the delimiter, a quote, or a newline, so the output round-trips.
func formatCSV(def *calc.Definition, inputs calc.Values, result *calc.Result) (string, error) {
	header := make([]string, 0, len(def.Schema.Fields)+len(result.Values))
	row := make([]string, 0, len(def.Schema.Fields)+len(result.Values))
	for _, f := range def.Schema.Fields {
		v, ok := inputs[f.Name]
		if !ok {
			continue
		}
		header = append(header, f.Label)
		row = append(row, v.String())
	}
	for _, rv := range result.Values {
		header = append(header, rv.Label)
		row = append(row, rv.Plain())
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.WriteAll([][]string{header, row}); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	return buf.String(), nil
}
