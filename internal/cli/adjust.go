package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/forge/internal/ai"
	"github.com/roach88/forge/internal/param"
)

// AdjustResult is the payload after applying an adjustment.
type AdjustResult struct {
	Params param.Set `json:"params"`
	Notes  string    `json:"notes,omitempty"`
}

func (r AdjustResult) String() string {
	s := fmt.Sprintf("base parameters adjusted\n  height_scale      %.3f\n  extrusion_depth   %.3f\n  bevel_amount      %.3f\n  symmetry_break    %.3f\n  erosion_intensity %.3f\n  detail_density    %.3f",
		r.Params.HeightScale.Value,
		r.Params.ExtrusionDepth.Value,
		r.Params.BevelAmount.Value,
		r.Params.SymmetryBreak.Value,
		r.Params.ErosionIntensity.Value,
		r.Params.DetailDensity.Value)
	if r.Notes != "" {
		s += "\n  notes: " + r.Notes
	}
	return s
}

// NewAdjustCommand creates the adjust command.
func NewAdjustCommand(rootOpts *RootOptions) *cobra.Command {
	var payloadPath string

	cmd := &cobra.Command{
		Use:   "adjust <session-file>",
		Short: "Apply an AI adjustment payload to the base parameters",
		Long: `Apply a parameter adjustment payload to a session's base
parameters. The payload is the strict JSON produced by the intent
interpretation model: sparse additive deltas plus optional confidence
and notes. Unknown fields are rejected. Adjusted values clamp to
their bounds; they never fail.

Adjustments only shape future generations. Existing variation specs
are immutable snapshots.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdjust(rootOpts, cmd, args[0], payloadPath)
		},
	}

	cmd.Flags().StringVar(&payloadPath, "payload", "", "AI response JSON file (required)")
	_ = cmd.MarkFlagRequired("payload")

	return cmd
}

func runAdjust(opts *RootOptions, cmd *cobra.Command, path, payloadPath string) error {
	formatter := newFormatter(opts, cmd)

	sess, err := loadSession(formatter, path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(payloadPath)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "cannot read payload", err)
	}

	resp, err := ai.ParseResponse(data)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid payload", err)
	}

	if resp.Confidence != nil {
		formatter.VerboseLog("payload confidence: %.2f", *resp.Confidence)
	}

	sess.ApplyBaseDelta(resp.Adjustments)

	if err := saveAndIndex(cmd.Context(), opts, sess, path); err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "cannot save session", err)
	}

	result := AdjustResult{Params: sess.BaseParams}
	if resp.Notes != nil {
		result.Notes = *resp.Notes
	}
	return formatter.Success(result)
}
