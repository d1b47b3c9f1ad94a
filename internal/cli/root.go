package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/dailymind/internal/catalog"
	"github.com/roach88/dailymind/internal/engine"
	"github.com/roach88/dailymind/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	Database    string
	CatalogPath string
	Seed        int64
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the dailymind CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "dailymind",
		Short: "Daily cognitive challenge engine",
		Long: `dailymind picks a small set of game challenges each day, tracks
completion progress, awards points, and maintains a day-over-day streak.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			configureLogging(opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", defaultDatabasePath(), "path to SQLite state database")
	cmd.PersistentFlags().StringVar(&opts.CatalogPath, "catalog", "", "path to YAML game catalog (default: embedded catalog)")
	cmd.PersistentFlags().Int64Var(&opts.Seed, "seed", 0, "random seed for game selection (0 = time-based)")

	// Add subcommands
	cmd.AddCommand(NewTodayCommand(opts))
	cmd.AddCommand(NewStartCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewRefreshCommand(opts))
	cmd.AddCommand(NewNewCommand(opts))
	cmd.AddCommand(NewStreakCommand(opts))
	cmd.AddCommand(NewProgressCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))

	return cmd
}

// Execute runs the root command and returns its exit code.
func Execute() int {
	cmd := NewRootCommand()
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// configureLogging installs the default slog handler for the process.
func configureLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// defaultDatabasePath places the state database under the user config dir,
// falling back to the working directory when none is available.
func defaultDatabasePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "dailymind.db"
	}
	return dir + string(os.PathSeparator) + "dailymind" + string(os.PathSeparator) + "state.db"
}

// openEngine builds the engine from the global options. The returned close
// function must be called when the command finishes.
func openEngine(opts *RootOptions) (*engine.Engine, func(), error) {
	cat, err := loadCatalog(opts)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load catalog", err)
	}

	if dir := dirOf(opts.Database); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "failed to create state directory", err)
		}
	}
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open state database", err)
	}
	closeFn := func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing state database", "error", closeErr)
		}
	}

	engOpts := []engine.Option{engine.WithLogger(slog.Default())}
	if opts.Seed != 0 {
		engOpts = append(engOpts, engine.WithRandom(engine.NewSeededSource(opts.Seed)))
	}

	return engine.New(st, cat, engOpts...), closeFn, nil
}

// loadCatalog returns the configured catalog, or the embedded default.
func loadCatalog(opts *RootOptions) (*catalog.Catalog, error) {
	if opts.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(opts.CatalogPath)
}

// dirOf returns the directory portion of a path, or "" for bare names and
// the in-memory database.
func dirOf(path string) string {
	if path == ":memory:" {
		return ""
	}
	for i := len(path) - 1; i >= 0; i-- {
		if os.IsPathSeparator(path[i]) {
			return path[:i]
		}
	}
	return ""
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
