package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramizraja09/calcpad/internal/calc"
	"github.com/ramizraja09/calcpad/internal/store"
)

// CalculatorSummary is one row of the list output.
type CalculatorSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Favorited   bool   `json:"favorited"`
}

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Category string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available calculators",
		Long: `List every calculator in the catalog, grouped by category.

Example:
  calcpad list
  calcpad list --category finance`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "only list calculators in this category")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
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

	categories := calc.Categories()
	if opts.Category != "" {
		cat, err := calc.ParseCategory(opts.Category)
		if err != nil {
			_ = formatter.Error(ErrCodeConfig, err.Error(), nil)
			return NewExitError(ExitCommandError, err.Error())
		}
		categories = []calc.Category{cat}
	}

	adapter, closeStore := openAdapter(opts.RootOptions)
	defer closeStore()
	favorited := make(map[string]bool)
	for _, id := range store.NewFavorites(adapter, opts.Logger).Load(cmd.Context()) {
		favorited[id] = true
	}

	if opts.Format == "json" {
		summaries := make([]CalculatorSummary, 0, reg.Len())
		for _, cat := range categories {
			for _, def := range reg.ByCategory(cat) {
				summaries = append(summaries, CalculatorSummary{
					ID:          def.ID,
					Name:        def.Name,
					Category:    string(def.Category),
					Description: def.Description,
					Favorited:   favorited[def.ID],
				})
			}
		}
		return formatter.Success(summaries)
	}

	w := cmd.OutOrStdout()
	for _, cat := range categories {
		defs := reg.ByCategory(cat)
		if len(defs) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", cat)
		for _, def := range defs {
			star := " "
			if favorited[def.ID] {
				star = "*"
			}
			fmt.Fprintf(w, "%s %-24s%s\n", star, def.ID, def.Name)
		}
		fmt.Fprintln(w)
	}
	return nil
}
