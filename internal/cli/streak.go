package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStreakCommand creates the streak command.
func NewStreakCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the consecutive-day completion streak",
		Long: `Show how many days in a row at least one challenge was completed.

A streak survives as long as its most recent completion is today or
yesterday; skipping a full day resets it to zero.`,
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
			streak, err := eng.Streak(cmd.Context())
			if err != nil {
				return f.Fail(err)
			}

			var text string
			switch {
			case streak.Count == 1:
				text = "1 day streak"
			default:
				text = fmt.Sprintf("%d day streak", streak.Count)
			}
			if streak.Count == 0 {
				text += " - complete a challenge to start your streak!"
			} else {
				text += fmt.Sprintf(" (last completed %s)", streak.LastCompleted)
			}
			return f.Emit(streak, text)
		},
	}
}
