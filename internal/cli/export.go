package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ramizraja09/calcpad/internal/export"
	"github.com/ramizraja09/calcpad/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Entry int
	Kind  string
	Out   string
}

// ExportView is the export command's JSON payload.
type ExportView struct {
	ID      string `json:"id"`
	Entry   int    `json:"entry"`
	Kind    string `json:"kind"`
	Out     string `json:"out,omitempty"`
	Content string `json:"content,omitempty"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <calculator-id>",
		Short: "Export a saved calculation",
		Long: `Export a saved calculation as a shareable document.

The entry is recomputed from its stored inputs, so the export always
reflects the current calculator, not the result text captured at save
time. Entry 1 is the most recent.

Example:
  calcpad export bmi
  calcpad export acreage --entry 3 --kind csv
  calcpad export bmi --kind text --out bmi.txt`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Entry, "entry", 1, "which history entry to export (1 = most recent)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "text", "export kind (text|csv)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "write the export to this file instead of stdout")

	return cmd
}

func runExport(opts *ExportOptions, id string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	kind, err := export.ParseKind(opts.Kind)
	if err != nil {
		_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	def, ok := reg.Get(id)
	if !ok {
		return unknownCalculator(formatter, id)
	}

	adapter, closeStore := openAdapter(opts.RootOptions)
	defer closeStore()
	history := store.NewHistory(adapter, opts.Logger)

	entries := history.Load(cmd.Context(), id)
	if len(entries) == 0 {
		message := fmt.Sprintf("no history for %s (run 'calcpad run %s --save' first)", id, id)
		_ = formatter.Error(ErrCodeExport, message, nil)
		return NewExitError(ExitCommandError, message)
	}
	if opts.Entry < 1 || opts.Entry > len(entries) {
		message := fmt.Sprintf("--entry %d is out of range (history has %d entries)", opts.Entry, len(entries))
		_ = formatter.Error(ErrCodeConfig, message, nil)
		return NewExitError(ExitCommandError, message)
	}
	entry := entries[opts.Entry-1]

	values, result, err := def.Evaluate(entry.Inputs)
	if err != nil {
		message := fmt.Sprintf("stored inputs are no longer valid for %s", id)
		_ = formatter.Error(ErrCodeExport, message, nil)
		return WrapExitError(ExitFailure, message, err)
	}

	content, err := export.Format(def, values, result, kind)
	if err != nil {
		_ = formatter.Error(ErrCodeExport, err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}

	view := ExportView{ID: id, Entry: opts.Entry, Kind: string(kind)}
	if opts.Out != "" {
		if err := os.WriteFile(opts.Out, []byte(content), 0o644); err != nil {
			message := fmt.Sprintf("write export: %v", err)
			_ = formatter.Error(ErrCodeExport, message, nil)
			return NewExitError(ExitCommandError, message)
		}
		view.Out = opts.Out
	} else {
		view.Content = content
	}

	if opts.Format == "json" {
		return formatter.Success(view)
	}

	w := cmd.OutOrStdout()
	if opts.Out != "" {
		fmt.Fprintf(w, "Exported entry %d of %s to %s.\n", opts.Entry, id, opts.Out)
		return nil
	}
	fmt.Fprint(w, content)
	return nil
}
