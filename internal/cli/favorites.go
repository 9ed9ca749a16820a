package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ramizraja09/calcpad/internal/store"
)

// FavoriteView is one favorite in JSON output. Name is empty when the
// stored id is not in the current catalog.
type FavoriteView struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ToggleView is the favorites toggle command's JSON payload.
type ToggleView struct {
	ID        string   `json:"id"`
	Favorited bool     `json:"favorited"`
	Favorites []string `json:"favorites"`
}

// NewFavoritesCommand creates the favorites command and its subcommands.
func NewFavoritesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite calculators",
		Long: `Manage the set of favorite calculators.

Without a subcommand, lists the current favorites.

Example:
  calcpad favorites
  calcpad favorites toggle bmi`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavoritesList(rootOpts, cmd)
		},
	}

	cmd.AddCommand(newFavoritesListCommand(rootOpts))
	cmd.AddCommand(newFavoritesToggleCommand(rootOpts))

	return cmd
}

func newFavoritesListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List favorite calculators",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavoritesList(rootOpts, cmd)
		},
	}
}

func newFavoritesToggleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <calculator-id>",
		Short: "Add or remove a favorite",
		Long: `Add a calculator to the favorites, or remove it if already present.

Example:
  calcpad favorites toggle bmi`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFavoritesToggle(rootOpts, args[0], cmd)
		},
	}
}

func runFavoritesList(opts *RootOptions, cmd *cobra.Command) error {
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

	adapter, closeStore := openAdapter(opts)
	defer closeStore()
	favorites := store.NewFavorites(adapter, opts.Logger)
	ids := favorites.Load(cmd.Context())

	if opts.Format == "json" {
		views := make([]FavoriteView, 0, len(ids))
		for _, id := range ids {
			view := FavoriteView{ID: id}
			if def, ok := reg.Get(id); ok {
				view.Name = def.Name
			}
			views = append(views, view)
		}
		return formatter.Success(views)
	}

	w := cmd.OutOrStdout()
	if len(ids) == 0 {
		fmt.Fprintln(w, "No favorites yet.")
		return nil
	}
	fmt.Fprintln(w, "Favorites:")
	for _, id := range ids {
		name := "(not in this catalog)"
		if def, ok := reg.Get(id); ok {
			name = def.Name
		}
		fmt.Fprintf(w, "  %-24s%s\n", id, name)
	}
	return nil
}

func runFavoritesToggle(opts *RootOptions, id string, cmd *cobra.Command) error {
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

	adapter, closeStore := openAdapter(opts)
	defer closeStore()
	favorites := store.NewFavorites(adapter, opts.Logger)

	// A stale favorite from an older catalog can still be removed, but
	// only known calculators can be added.
	if _, known := reg.Get(id); !known && !favorites.Contains(cmd.Context(), id) {
		return unknownCalculator(formatter, id)
	}

	updated := favorites.Toggle(cmd.Context(), id)
	favorited := slices.Contains(updated, id)

	if opts.Format == "json" {
		return formatter.Success(ToggleView{ID: id, Favorited: favorited, Favorites: updated})
	}

	w := cmd.OutOrStdout()
	if favorited {
		fmt.Fprintf(w, "Added %s to favorites.\n", id)
	} else {
		fmt.Fprintf(w, "Removed %s from favorites.\n", id)
	}
	return nil
}
