package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramizraja09/calcpad/internal/store"
)

// HistoryOptions holds flags for the history list command.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// ClearView is the history clear command's JSON payload.
type ClearView struct {
	ID      string `json:"id"`
	Cleared bool   `json:"cleared"`
}

// NewHistoryCommand creates the history command and its subcommands.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect saved calculations",
		Long: `Inspect the saved calculation history of a calculator.

History is recorded by 'run --save' and keeps the 50 most recent
computations per calculator, newest first.

Example:
  calcpad history list bmi
  calcpad history list bmi --limit 5
  calcpad history clear bmi`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newHistoryListCommand(rootOpts))
	cmd.AddCommand(newHistoryClearCommand(rootOpts))

	return cmd
}

func newHistoryListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list <calculator-id>",
		Short:         "List saved calculations, newest first",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "show at most this many entries (0 = all)")

	return cmd
}

func newHistoryClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear <calculator-id>",
		Short:         "Delete a calculator's saved history",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryClear(rootOpts, args[0], cmd)
		},
	}
}

func runHistoryList(opts *HistoryOptions, id string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	adapter, closeStore := openAdapter(opts.RootOptions)
	defer closeStore()
	history := store.NewHistory(adapter, opts.Logger)

	// Ids are not checked against the catalog here so that history
	// recorded under a retired calculator stays readable.
	entries := history.Load(cmd.Context(), id)
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}

	if opts.Format == "json" {
		if entries == nil {
			entries = []store.Entry{}
		}
		return formatter.Success(entries)
	}

	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintf(w, "No history for %s.\n", id)
		return nil
	}
	fmt.Fprintf(w, "History for %s:\n", id)
	for i, e := range entries {
		fmt.Fprintf(w, "  %2d. %s  %s\n", i+1, e.Timestamp.Format(time.RFC3339), e.Result)
	}
	return nil
}

func runHistoryClear(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	adapter, closeStore := openAdapter(opts)
	defer closeStore()
	history := store.NewHistory(adapter, opts.Logger)
	history.Clear(cmd.Context(), id)

	if opts.Format == "json" {
		return formatter.Success(ClearView{ID: id, Cleared: true})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Cleared history for %s.\n", id)
	return nil
}
