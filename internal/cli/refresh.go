package cli

import (
	"github.com/spf13/cobra"
)

// NewRefreshCommand creates the refresh command.
func NewRefreshCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh <challenge-id>",
		Short: "Swap a challenge for a new game of the same type",
		Long: `Replace one challenge with a new one built from a game not already
active today. The challenge type stays the same; the requirement, label,
and point award come from the substitute game. The replacement starts
uncompleted.

Fails without changing anything when every catalog game is already active.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, closeFn, err := openEngine(opts)
			if err != nil {
				return err
			}
			defer closeFn()

			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			set, err := eng.Refresh(cmd.Context(), args[0])
			if err != nil {
				return f.Fail(err)
			}
			return f.Emit(set, renderSet(set))
		},
	}
}
