package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ramizraja09/calcpad/internal/catalog"
	"github.com/ramizraja09/calcpad/internal/registry"
	"github.com/ramizraja09/calcpad/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string
	StorePath  string // --store override for Config.StorePath

	// Resolved in PersistentPreRunE, available to every command.
	Config Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the calcpad CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "calcpad",
		Short: "Calcpad - a catalog of everyday calculators",
		Long: `Calcpad bundles a catalog of everyday calculators with declarative input
validation, per-calculator history, favorites, and deterministic exports.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			// Configure logging based on verbose flag
			logLevel := slog.LevelInfo
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: logLevel,
			}))

			cfg, err := LoadConfig(opts.ConfigFile)
			if err != nil {
				return err
			}
			if opts.StorePath != "" {
				cfg.StorePath = opts.StorePath
			}
			opts.Config = cfg
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default is $HOME/.calcpad.yaml)")
	cmd.PersistentFlags().StringVar(&opts.StorePath, "store", "", "path to the SQLite state database (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewFavoritesCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewSuggestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadRegistry assembles the built-in calculator catalog.
func loadRegistry() (*registry.Registry, error) {
	reg, err := catalog.New()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to assemble calculator catalog", err)
	}
	return reg, nil
}

// openAdapter opens the configured SQLite store. When the backing store
// cannot be opened the CLI degrades to an in-memory adapter so every feature
// stays usable; state then lasts only for the process.
func openAdapter(opts *RootOptions) (store.Adapter, func()) {
	path := opts.Config.StorePath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		opts.Logger.Warn("persistent store unavailable, state will not survive this run",
			"path", path, "error", err)
		return store.NewMemory(), func() {}
	}

	st, err := store.Open(path)
	if err != nil {
		opts.Logger.Warn("persistent store unavailable, state will not survive this run",
			"path", path, "error", err)
		return store.NewMemory(), func() {}
	}
	return st, func() {
		if err := st.Close(); err != nil {
			opts.Logger.Error("error closing store", "error", err)
		}
	}
}
