package cli

import (
	"github.com/spf13/cobra"
)

// NewTodayCommand creates the today command.
func NewTodayCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's challenges, generating them if needed",
		Long: `Show the daily challenge set for today.

A set is generated on first use each calendar date and then reused for the
rest of that date. An existing set is never replaced here; use "dailymind
new" to explicitly draw fresh challenges.

Example:
  dailymind today
  dailymind today --format json`,
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
			set, err := eng.ActiveChallenges(cmd.Context())
			if err != nil {
				return f.Fail(err)
			}
			return f.Emit(set, renderSet(set))
		},
	}
}
