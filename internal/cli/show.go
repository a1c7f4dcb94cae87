package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <session-file>",
		Short: "Show a session's state",
		Long: `Show a session's intent history, current variations, and approvals.
With --format json the full session document is emitted.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runShow(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := newFormatter(opts, cmd)

	sess, err := loadSession(formatter, path)
	if err != nil {
		return err
	}

	if formatter.Format == "json" {
		return formatter.Success(sess)
	}

	w := formatter.Writer
	fmt.Fprintln(w, sess)

	if len(sess.IntentHistory) > 0 {
		fmt.Fprintln(w, "intent history:")
		for _, entry := range sess.IntentHistory {
			fmt.Fprintf(w, "  #%d %s\n", entry.Iteration, entry.Text)
		}
	}

	if len(sess.Variations) > 0 {
		fmt.Fprintln(w, "variations:")
		for _, spec := range sess.Variations {
			fmt.Fprintf(w, "  %s (seed %s)\n", spec.VariationID, spec.Seed)
		}
	}

	if len(sess.Approvals) > 0 {
		fmt.Fprintln(w, "approvals:")
		for _, a := range sess.Approvals {
			fmt.Fprintf(w, "  %s -> %s (%.0fx%.0fx%.0f cm)\n",
				a.ApprovedID, a.VariationID,
				a.Dimensions.Height, a.Dimensions.Width, a.Dimensions.Depth)
		}
	}

	return nil
}
