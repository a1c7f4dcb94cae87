package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/forge/internal/param"
	"github.com/roach88/forge/internal/profile"
	"github.com/roach88/forge/internal/project"
	"github.com/roach88/forge/internal/session"
)

// NewSessionResult is the payload for a created session.
type NewSessionResult struct {
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
}

func (r NewSessionResult) String() string {
	return fmt.Sprintf("created session %s\n%s", r.SessionID, r.Path)
}

// NewNewCommand creates the new command.
func NewNewCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		seed        uint64
		inputType   string
		profilePath string
	)

	cmd := &cobra.Command{
		Use:   "new <asset-class> <input-path>",
		Short: "Start a variation session from a 2D input",
		Long: `Start a new variation session for an asset class (arena_prop,
arena_wall, pillar, debris) from a drawn sketch or uploaded image.

The seed fixes every variation the session will ever generate; reuse
a seed to reproduce a session's specs exactly. A CUE style profile
can pre-shape the base parameters before the first generation.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(rootOpts, cmd, args[0], args[1], seed, inputType, profilePath)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "base seed for deterministic generation (required)")
	cmd.Flags().StringVar(&inputType, "input-type", "image", "base input type (drawn|image)")
	cmd.Flags().StringVar(&profilePath, "profile", "", "CUE style profile to apply")
	_ = cmd.MarkFlagRequired("seed")

	return cmd
}

func runNew(opts *RootOptions, cmd *cobra.Command, classArg, inputPath string, seed uint64, inputType, profilePath string) error {
	formatter := newFormatter(opts, cmd)

	class, err := param.ParseAssetClass(classArg)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "bad asset class", err)
	}

	var it session.BaseInputType
	switch inputType {
	case "drawn":
		it = session.InputDrawn
	case "image":
		it = session.InputImage
	default:
		msg := fmt.Sprintf("invalid input type %q: must be drawn or image", inputType)
		_ = formatter.Error(ErrCodeGeneric, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	ref := session.BaseInputRef{InputType: it, SourcePath: inputPath}

	var sess *session.Session
	if profilePath != "" {
		compiled, err := profile.LoadFile(profilePath)
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "cannot load profile", err)
		}
		formatter.VerboseLog("applying profile %q", compiled.Name)

		proj, err := project.New(compiled.Name, compiled.Style)
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "bad profile", err)
		}
		proj.ClassOverrides = compiled.ClassOverrides

		sess, err = proj.CreateSession(class, ref, param.Seed(seed))
		if err != nil {
			return reportSessionErr(formatter, err)
		}
	} else {
		sess, err = session.New(class, ref, param.Seed(seed))
		if err != nil {
			return reportSessionErr(formatter, err)
		}
	}

	path := sessionFilePath(opts.DataDir, sess.SessionID.String())
	if err := saveAndIndex(cmd.Context(), opts, sess, path); err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "cannot save session", err)
	}

	return formatter.Success(NewSessionResult{
		SessionID: sess.SessionID.String(),
		Path:      path,
	})
}
