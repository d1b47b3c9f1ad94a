package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// progressPayload is the JSON shape for the progress command.
type progressPayload struct {
	Percent int `json:"percent"`
}

// NewProgressCommand creates the progress command.
func NewProgressCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show today's completion percentage",
		Long: `Show how much of today's challenge set is completed, as a rounded
percentage. Prints 0 when no set exists yet; this command never generates
one as a side effect.`,
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
			percent, err := eng.DailyProgressPercent(cmd.Context())
			if err != nil {
				return f.Fail(err)
			}
			return f.Emit(progressPayload{Percent: percent}, fmt.Sprintf("Daily progress: %d%%", percent))
		},
	}
}
