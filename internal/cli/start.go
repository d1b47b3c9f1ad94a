package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStartCommand creates the start command.
func NewStartCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start <challenge-id>",
		Short: "Validate that a challenge can be attempted",
		Long: `Check a challenge out for an attempt and print its details.

The engine does not run any mini-game; this confirms the challenge exists
and is not already completed, so a launcher can hand it to the game. When
the game finishes, report the normalized outcome with "dailymind report".`,
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
			c, err := eng.StartChallenge(cmd.Context(), args[0])
			if err != nil {
				return f.Fail(err)
			}
			text := fmt.Sprintf("Ready: %s - %s (+%d pts)", c.Game.Name, c.RequirementLabel, c.Points)
			return f.Emit(c, text)
		},
	}
}
