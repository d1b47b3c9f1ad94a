package cli

import (
	"github.com/spf13/cobra"
)

// NewNewCommand creates the new command.
func NewNewCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Discard today's challenges and draw a fresh set",
		Long: `Explicitly replace today's challenge set with freshly drawn games.

This is the one way a same-date set gets replaced; progress on the
discarded challenges is lost. The streak is untouched.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, closeFn, err := openEngine(opts)
			if err != nil {
				return err
			}
			defer closeFn()

			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			set, err := eng.RegenerateAll(cmd.Context())
			if err != nil {
				return f.Fail(err)
			}
			return f.Emit(set, renderSet(set))
		},
	}
}
