package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// IntentResult is the payload for a recorded intent line.
type IntentResult struct {
	Iteration uint32 `json:"iteration"`
	Text      string `json:"text"`
}

func (r IntentResult) String() string {
	return fmt.Sprintf("recorded intent #%d: %s", r.Iteration, r.Text)
}

// NewIntentCommand creates the intent command.
func NewIntentCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intent <session-file> <text>...",
		Short: "Record a creative intent line on a session",
		Long: `Record a line of creative intent ("taller, more weathered") on a
session. Intent history is append-only and numbers iterations
sequentially; it feeds the AI adjustment loop but never mutates
parameters by itself.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntent(rootOpts, cmd, args[0], strings.Join(args[1:], " "))
		},
	}

	return cmd
}

func runIntent(opts *RootOptions, cmd *cobra.Command, path, text string) error {
	formatter := newFormatter(opts, cmd)

	sess, err := loadSession(formatter, path)
	if err != nil {
		return err
	}

	iter, err := sess.PushIntent(text)
	if err != nil {
		return reportSessionErr(formatter, err)
	}

	if err := saveAndIndex(cmd.Context(), opts, sess, path); err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "cannot save session", err)
	}

	return formatter.Success(IntentResult{Iteration: iter, Text: text})
}
