package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramizraja09/calcpad/internal/calc"
	"github.com/ramizraja09/calcpad/internal/export"
	"github.com/ramizraja09/calcpad/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	InputsJSON string
	Save       bool
	Export     string
	Out        string
}

// ResultView is one rendered result value in JSON output.
type ResultView struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// RunView is the run command's JSON payload.
type RunView struct {
	ID      string       `json:"id"`
	Values  []ResultView `json:"values"`
	Summary string       `json:"summary"`
	Saved   bool         `json:"saved,omitempty"`
	Export  string       `json:"export,omitempty"`
	Out     string       `json:"out,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <calculator-id> [field=value ...]",
		Short: "Run a calculator",
		Long: `Run a calculator with the given inputs.

Inputs are field=value pairs, or a JSON object passed via --inputs.
Pairs win over --inputs when both name the same field.

Example:
  calcpad run bmi weight=70 height=175
  calcpad run length-converter value=10 from=meters to=feet
  calcpad run acreage --inputs '{"length": 208.71, "width": 208.71}' --export csv
  calcpad run bmi weight=70 height=175 --save`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculator(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.InputsJSON, "inputs", "", "inputs as a JSON object")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "record this computation in the calculator's history")
	cmd.Flags().StringVar(&opts.Export, "export", "", "render the computation as an export (text|csv)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "write the export to this file instead of stdout")

	return cmd
}

func runCalculator(opts *RunOptions, id string, pairs []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var kind export.Kind
	if opts.Export != "" {
		var err error
		kind, err = export.ParseKind(opts.Export)
		if err != nil {
			_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
			return NewExitError(ExitCommandError, err.Error())
		}
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	def, ok := reg.Get(id)
	if !ok {
		return unknownCalculator(formatter, id)
	}

	raw, err := collectInputs(opts.InputsJSON, pairs)
	if err != nil {
		_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	values, result, err := def.Evaluate(raw)
	if err != nil {
		if verr, ok := calc.AsValidationError(err); ok {
			return outputValidationError(formatter, verr)
		}
		return WrapExitError(ExitFailure, "computation failed", err)
	}

	view := RunView{ID: def.ID, Summary: result.Summary()}
	for _, rv := range result.Values {
		view.Values = append(view.Values, ResultView{
			Name:  rv.Name,
			Label: rv.Label,
			Value: rv.Display(),
			Unit:  rv.Unit,
		})
	}

	if opts.Save {
		adapter, closeStore := openAdapter(opts.RootOptions)
		defer closeStore()
		history := store.NewHistory(adapter, opts.Logger)
		history.Append(cmd.Context(), def.ID, raw, result.Summary())
		view.Saved = true
	}

	var content string
	if opts.Export != "" {
		content, err = export.Format(def, values, result, kind)
		if err != nil {
			_ = formatter.Error(ErrCodeExport, err.Error(), nil)
			return NewExitError(ExitFailure, err.Error())
		}
		if opts.Out != "" {
			if err := os.WriteFile(opts.Out, []byte(content), 0o644); err != nil {
				message := fmt.Sprintf("write export: %v", err)
				_ = formatter.Error(ErrCodeExport, message, nil)
				return NewExitError(ExitCommandError, message)
			}
			view.Out = opts.Out
		} else {
			view.Export = content
		}
	}

	if opts.Format == "json" {
		return formatter.Success(view)
	}

	w := cmd.OutOrStdout()
	if opts.Export != "" && opts.Out == "" {
		// The export content is the command's output, ready to redirect.
		fmt.Fprint(w, content)
		return nil
	}

	fmt.Fprintln(w, def.Name)
	for _, rv := range result.Values {
		line := "  " + rv.Label + ": " + rv.Display()
		if rv.Unit != "" {
			line += " " + rv.Unit
		}
		fmt.Fprintln(w, line)
	}
	if view.Saved || view.Out != "" {
		fmt.Fprintln(w)
		if view.Saved {
			fmt.Fprintln(w, "Saved to history.")
		}
		if view.Out != "" {
			fmt.Fprintf(w, "Exported to %s.\n", view.Out)
		}
	}
	return nil
}

// collectInputs merges the --inputs JSON object with field=value pairs.
// Pair values stay strings; schema coercion parses them by field type.
func collectInputs(inputsJSON string, pairs []string) (map[string]any, error) {
	raw := make(map[string]any, len(pairs))
	if inputsJSON != "" {
		if err := json.Unmarshal([]byte(inputsJSON), &raw); err != nil {
			return nil, fmt.Errorf("parse --inputs: %w", err)
		}
	}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("input %q is not in field=value form", pair)
		}
		raw[name] = value
	}
	return raw, nil
}

// outputValidationError renders field-level validation failures.
func outputValidationError(formatter *OutputFormatter, verr *calc.ValidationError) error {
	message := fmt.Sprintf("invalid inputs for %s", verr.CalculatorID)
	if formatter.Format == "json" {
		_ = formatter.Error(ErrCodeInvalidInput, message, verr.Fields)
		return NewExitError(ExitFailure, message)
	}

	fmt.Fprintf(formatter.Writer, "✗ Invalid inputs for %s\n\n", verr.CalculatorID)
	for _, fe := range verr.Fields {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", fe.Field, fe.Message)
	}
	return NewExitError(ExitFailure, message)
}
