package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/dailymind/internal/engine"
)

// NewReportCommand creates the report command.
func NewReportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report <challenge-id> <outcome>",
		Short: "Report a mini-game outcome for a challenge",
		Long: `Record a finished attempt against a challenge.

The outcome is the game's normalized 0-100 progress figure. Reporting
completes the challenge; a challenge can only be completed once. The first
completion of a day advances the streak.

Example:
  dailymind report challenge-1741597200000-0 95`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := strconv.Atoi(args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "outcome must be an integer", err)
			}

			eng, closeFn, err := openEngine(opts)
			if err != nil {
				return err
			}
			defer closeFn()

			// The celebration line renders from the completion event, the
			// same signal a graphical frontend would consume.
			var completed *engine.ChallengeCompleted
			eng.Subscribe(func(ev engine.ChallengeCompleted) {
				completed = &ev
			})

			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			c, err := eng.ReportOutcome(cmd.Context(), args[0], outcome)
			if err != nil {
				return f.Fail(err)
			}

			text := fmt.Sprintf("Challenge completed! %s at %d%%", c.Game.Name, c.Progress)
			if completed != nil {
				text += fmt.Sprintf("\nYou earned +%d points", completed.Points)
			}
			return f.Emit(c, text)
		},
	}
}
