package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/forge/internal/session"
)

// ApproveResult is the payload for a recorded approval.
type ApproveResult struct {
	ApprovedID  string `json:"approved_id"`
	VariationID string `json:"variation_id"`
}

func (r ApproveResult) String() string {
	return fmt.Sprintf("approved %s as %s", r.VariationID, r.ApprovedID)
}

// NewApproveCommand creates the approve command.
func NewApproveCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		height, width, depth float64
		label                string
	)

	cmd := &cobra.Command{
		Use:   "approve <session-file> <variation-id>",
		Short: "Approve a variation with real-world dimensions",
		Long: `Approve one of the session's current variations, binding it to
real-world dimensions (in centimeters) and export settings. An
approval is immutable once recorded; a variation can be approved at
most once.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApprove(rootOpts, cmd, args[0], args[1], session.Dimensions{
				Height: height,
				Width:  width,
				Depth:  depth,
			}, label)
		},
	}

	cmd.Flags().Float64Var(&height, "height", 0, "asset height in cm (required)")
	cmd.Flags().Float64Var(&width, "width", 0, "asset width in cm (required)")
	cmd.Flags().Float64Var(&depth, "depth", 0, "asset depth in cm (required)")
	cmd.Flags().StringVar(&label, "label", "", "user label for export naming")
	_ = cmd.MarkFlagRequired("height")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("depth")

	return cmd
}

func runApprove(opts *RootOptions, cmd *cobra.Command, path, variationID string, dims session.Dimensions, label string) error {
	formatter := newFormatter(opts, cmd)

	sess, err := loadSession(formatter, path)
	if err != nil {
		return err
	}

	approvedID, err := sess.ApproveVariation(variationID, dims, session.DefaultExportSettings(), label)
	if err != nil {
		return reportSessionErr(formatter, err)
	}

	if err := saveAndIndex(cmd.Context(), opts, sess, path); err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "cannot save session", err)
	}

	return formatter.Success(ApproveResult{
		ApprovedID:  approvedID,
		VariationID: variationID,
	})
}
