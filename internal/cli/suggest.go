package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ramizraja09/calcpad/internal/suggest"
)

// SuggestionView is one suggested calculator in JSON output. ID is empty
// when the suggested name does not match a catalog entry.
type SuggestionView struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// NewSuggestCommand creates the suggest command.
func NewSuggestCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <prompt...>",
		Short: "Ask the suggestion service which calculators fit a problem",
		Long: `Ask the configured suggestion service which calculators fit a
free-form problem description.

Requires suggest.url in the config file (or CALCPAD_SUGGEST_URL).

Example:
  calcpad suggest how big is my lot in acres
  calcpad suggest "monthly cost of a 30 year mortgage"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(rootOpts, strings.Join(args, " "), cmd)
		},
	}

	return cmd
}

func runSuggest(opts *RootOptions, prompt string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Config.SuggestURL == "" {
		message := "suggestion service is not configured (set suggest.url)"
		_ = formatter.Error(ErrCodeSuggest, message, nil)
		return NewExitError(ExitCommandError, message)
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	client := suggest.NewClient(opts.Config.SuggestURL,
		suggest.WithToken(opts.Config.SuggestToken),
		suggest.WithTimeout(opts.Config.SuggestTimeout),
		suggest.WithRetries(opts.Config.SuggestRetries),
	)

	suggestions, err := client.Suggest(cmd.Context(), prompt, reg.Names())
	if err != nil {
		opts.Logger.Debug("suggestion request failed", "error", err)
		message := "suggestion service is unavailable, try again later"
		_ = formatter.Error(ErrCodeSuggest, message, nil)
		return NewExitError(ExitFailure, message)
	}

	views := make([]SuggestionView, 0, len(suggestions))
	for _, name := range suggestions {
		view := SuggestionView{Name: name}
		if def, ok := reg.ByName(name); ok {
			view.ID = def.ID
		}
		views = append(views, view)
	}

	if opts.Format == "json" {
		return formatter.Success(views)
	}

	w := cmd.OutOrStdout()
	if len(views) == 0 {
		fmt.Fprintln(w, "No suggestions.")
		return nil
	}
	fmt.Fprintln(w, "Suggested calculators:")
	for _, view := range views {
		if view.ID != "" {
			fmt.Fprintf(w, "  %s (%s)\n", view.Name, view.ID)
		} else {
			fmt.Fprintf(w, "  %s (not in this catalog)\n", view.Name)
		}
	}
	return nil
}
