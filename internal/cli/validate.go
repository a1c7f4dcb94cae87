package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/forge/internal/session"
)

// ValidationResult holds validation results for a session file.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <session-file>",
		Short: "Validate a session file",
		Long: `Validate a saved session file against the current schema version:
referential integrity of variations and approvals, parameter bounds,
and id uniqueness. Validation only detects corruption; it never
repairs the file.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := newFormatter(opts, cmd)

	_, err := session.Load(path, session.SchemaVersion)
	if err == nil {
		if formatter.Format == "json" {
			return formatter.Success(ValidationResult{Valid: true})
		}
		fmt.Fprintln(formatter.Writer, "session valid")
		return nil
	}

	code := session.CodeOf(err)
	if code == "" {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "cannot load session", err)
	}

	if formatter.Format == "json" {
		result := ValidationResult{
			Valid:   false,
			Code:    string(code),
			Message: err.Error(),
		}
		enc := json.NewEncoder(formatter.Writer)
		enc.SetIndent("", "  ")
		_ = enc.Encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error:  &CLIError{Code: string(code), Message: err.Error()},
		})
	} else {
		fmt.Fprintf(formatter.Writer, "session invalid\n  %s: %s\n", code, err.Error())
	}
	return WrapExitError(ExitFailure, "session invalid", err)
}
