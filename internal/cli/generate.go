package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// GenerateResult is the payload after generating variations.
type GenerateResult struct {
	Appended   bool     `json:"appended"`
	Variations []string `json:"variations"`
}

func (r GenerateResult) String() string {
	verb := "generated"
	if r.Appended {
		verb = "appended"
	}
	return fmt.Sprintf("%s %d variation(s)\n  %s", verb, len(r.Variations),
		strings.Join(r.Variations, "\n  "))
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		appendMode bool
		intentText string
	)

	cmd := &cobra.Command{
		Use:   "generate <session-file> <count>",
		Short: "Generate a batch of variation specs",
		Long: `Generate variation specs from the session's seed and current base
parameters. Without --append the batch replaces the current
collection (specs still referenced by approvals are retained);
with --append new specs join the collection at fresh indices.

Generation is pure: the same seed and parameters always produce the
same specs, so a batch can be regenerated at any time.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(rootOpts, cmd, args[0], args[1], appendMode, intentText)
		},
	}

	cmd.Flags().BoolVar(&appendMode, "append", false, "add to the current collection instead of replacing it")
	cmd.Flags().StringVar(&intentText, "intent", "", "intent text to snapshot into the generated specs")

	return cmd
}

func runGenerate(opts *RootOptions, cmd *cobra.Command, path, countArg string, appendMode bool, intentText string) error {
	formatter := newFormatter(opts, cmd)

	count, err := strconv.ParseUint(countArg, 10, 64)
	if err != nil || count == 0 {
		msg := fmt.Sprintf("invalid count %q: must be a positive integer", countArg)
		_ = formatter.Error(ErrCodeGeneric, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	sess, err := loadSession(formatter, path)
	if err != nil {
		return err
	}

	if appendMode {
		sess.AppendVariations(count, intentText)
	} else {
		sess.GenerateVariations(count, intentText)
	}

	if err := saveAndIndex(cmd.Context(), opts, sess, path); err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "cannot save session", err)
	}

	ids := make([]string, len(sess.Variations))
	for i, spec := range sess.Variations {
		ids[i] = spec.VariationID
	}

	return formatter.Success(GenerateResult{Appended: appendMode, Variations: ids})
}
