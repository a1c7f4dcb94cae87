package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/forge/internal/export"
	"github.com/roach88/forge/internal/session"
)

// ExportResult is the payload for a resolved export.
type ExportResult struct {
	ApprovedID string  `json:"approved_id"`
	Preset     string  `json:"preset"`
	Format     string  `json:"format"`
	Engine     string  `json:"engine"`
	Path       string  `json:"path"`
	HeightCm   float64 `json:"height_cm"`
	WidthCm    float64 `json:"width_cm"`
	DepthCm    float64 `json:"depth_cm"`
}

func (r ExportResult) String() string {
	return fmt.Sprintf("export %s (%s, %s)\n%s", r.ApprovedID, r.Preset, r.Format, r.Path)
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		preset string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "export <session-file> <approved-id>",
		Short: "Resolve export settings for an approved design",
		Long: `Resolve the export configuration for an approved design using a
target preset (bevy, unreal5, unity, web) and print the output path
the mesh pipeline will write. Approval dimensions travel with the
result so downstream scaling stays exact.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, cmd, args[0], args[1], preset, outDir)
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "bevy", "export preset (bevy|unreal5|unity|web)")
	cmd.Flags().StringVar(&outDir, "out", "exports", "output directory")

	return cmd
}

func runExport(opts *RootOptions, cmd *cobra.Command, path, approvedID, preset, outDir string) error {
	formatter := newFormatter(opts, cmd)

	sess, err := loadSession(formatter, path)
	if err != nil {
		return err
	}

	approval := sess.FindApproval(approvedID)
	if approval == nil {
		msg := fmt.Sprintf("no approval %s in session", approvedID)
		_ = formatter.Error(string(session.ErrCodeOrphanedApproval), msg, nil)
		return NewExitError(ExitFailure, msg)
	}

	cfg, err := export.Preset(preset)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "bad preset", err)
	}
	if err := cfg.Validate(); err != nil {
		_ = formatter.Error(string(export.CodeOf(err)), err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid export config", err)
	}

	return formatter.Success(ExportResult{
		ApprovedID: approvedID,
		Preset:     preset,
		Format:     string(cfg.Format),
		Engine:     string(cfg.Engine),
		Path:       cfg.OutputPath(outDir, approval.UserLabel, approval.VariationID),
		HeightCm:   approval.Dimensions.Height,
		WidthCm:    approval.Dimensions.Width,
		DepthCm:    approval.Dimensions.Depth,
	})
}
