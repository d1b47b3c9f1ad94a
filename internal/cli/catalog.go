package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dailymind/internal/catalog"
)

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate game catalogs",
	}
	cmd.AddCommand(newCatalogValidateCommand(opts))
	cmd.AddCommand(newCatalogListCommand(opts))
	return cmd
}

// newCatalogValidateCommand creates the catalog validate command.
func newCatalogValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a YAML catalog file against the schema",
		Long: `Parse a catalog file and check it against the catalog schema:
known categories and difficulties, positive requirements, unique game IDs.

Exits 0 when the catalog is valid, 1 otherwise.

Example:
  dailymind catalog validate ./games.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			cat, err := catalog.LoadFile(args[0])
			if err != nil {
				if f.Format == "json" {
					return f.Fail(err)
				}
				return WrapExitError(ExitFailure, "catalog invalid", err)
			}
			payload := struct {
				Valid bool `json:"valid"`
				Games int  `json:"games"`
			}{Valid: true, Games: cat.Len()}
			return f.Emit(payload, fmt.Sprintf("catalog valid: %d games", cat.Len()))
		},
	}
}

// newCatalogListCommand creates the catalog list command.
func newCatalogListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the games in the configured catalog",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			cat, err := loadCatalog(opts)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load catalog", err)
			}

			games := cat.Games()
			var b strings.Builder
			for _, g := range games {
				fmt.Fprintf(&b, "%-8s %-16s %-16s %-7s req=%d\n",
					g.ID, g.Name, g.Category, g.Difficulty, g.DefaultRequirement)
			}
			return f.Emit(games, strings.TrimRight(b.String(), "\n"))
		},
	}
}
