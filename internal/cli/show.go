package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramizraja09/calcpad/internal/calc"
	"github.com/ramizraja09/calcpad/internal/store"
)

// FieldDetail describes one input field in the show output.
type FieldDetail struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Unit    string   `json:"unit,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Integer bool     `json:"integer,omitempty"`
	Options []string `json:"options,omitempty"`
}

// CalculatorDetail is the full show payload for one calculator.
type CalculatorDetail struct {
	CalculatorSummary
	Fields []FieldDetail `json:"fields"`
	Rules  []string      `json:"rules,omitempty"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <calculator-id>",
		Short: "Show one calculator's inputs and rules",
		Long: `Show a calculator's description, input fields with their constraints,
and any cross-field rules.

Example:
  calcpad show bmi
  calcpad show loan-payment --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	def, ok := reg.Get(id)
	if !ok {
		return unknownCalculator(formatter, id)
	}

	if opts.Format == "json" {
		adapter, closeStore := openAdapter(opts)
		defer closeStore()
		favorites := store.NewFavorites(adapter, opts.Logger)

		detail := CalculatorDetail{
			CalculatorSummary: CalculatorSummary{
				ID:          def.ID,
				Name:        def.Name,
				Category:    string(def.Category),
				Description: def.Description,
				Favorited:   favorites.Contains(cmd.Context(), def.ID),
			},
		}
		for _, f := range def.Schema.Fields {
			detail.Fields = append(detail.Fields, FieldDetail{
				Name:    f.Name,
				Label:   f.Label,
				Type:    string(f.Type),
				Unit:    f.Unit,
				Min:     f.Min,
				Max:     f.Max,
				Integer: f.Integer,
				Options: f.Options,
			})
		}
		for _, r := range def.Schema.Refinements {
			detail.Rules = append(detail.Rules, r.Message)
		}
		return formatter.Success(detail)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s (%s)\n", def.Name, def.ID)
	fmt.Fprintf(w, "Category: %s\n\n", def.Category)
	fmt.Fprintf(w, "%s\n\n", def.Description)
	fmt.Fprintln(w, "Inputs:")
	for _, f := range def.Schema.Fields {
		fmt.Fprintf(w, "  %-12s %s (%s)\n", f.Name, f.Label, describeField(f))
	}
	if len(def.Schema.Refinements) > 0 {
		fmt.Fprintln(w, "\nRules:")
		for _, r := range def.Schema.Refinements {
			fmt.Fprintf(w, "  - %s\n", r.Message)
		}
	}
	return nil
}

// unknownCalculator reports an id that is not in the registry.
func unknownCalculator(formatter *OutputFormatter, id string) error {
	message := fmt.Sprintf("unknown calculator %q (run 'calcpad list' to see the catalog)", id)
	_ = formatter.Error(ErrCodeUnknownCalculator, message, nil)
	return NewExitError(ExitCommandError, message)
}

// describeField renders a field's constraints on one line.
func describeField(f calc.Field) string {
	if f.Type == calc.FieldEnum {
		return "one of: " + strings.Join(f.Options, ", ")
	}

	parts := []string{string(f.Type)}
	if f.Integer {
		parts = append(parts, "integer")
	}
	if f.Min != nil {
		parts = append(parts, "min "+strconv.FormatFloat(*f.Min, 'f', -1, 64))
	}
	if f.Max != nil {
		parts = append(parts, "max "+strconv.FormatFloat(*f.Max, 'f', -1, 64))
	}
	if f.Unit != "" {
		parts = append(parts, "in "+f.Unit)
	}
	return strings.Join(parts, ", ")
}
