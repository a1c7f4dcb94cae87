package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/forge/internal/session"
	"github.com/roach88/forge/internal/store"
)

// ErrCodeGeneric is the fallback error code for failures that carry
// no session or export error code.
const ErrCodeGeneric = "COMMAND_ERROR"

// CatalogFile is the catalog database filename inside the data dir.
const CatalogFile = "catalog.db"

// newFormatter builds the output formatter for a command invocation.
// Verbose logs go to stderr to avoid corrupting JSON output.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// sessionFilePath returns the canonical session file location for an id.
func sessionFilePath(dataDir, sessionID string) string {
	return filepath.Join(dataDir, sessionID+"."+session.FileExt)
}

// loadSession reads and validates a session file, mapping failures to
// the right exit code: validation failures are exit 1, unreadable
// files are exit 2. The formatter has already printed the error when
// a non-nil error is returned.
func loadSession(formatter *OutputFormatter, path string) (*session.Session, error) {
	s, err := session.Load(path, session.SchemaVersion)
	if err != nil {
		code := session.CodeOf(err)
		if code != "" {
			_ = formatter.Error(string(code), err.Error(), nil)
			return nil, WrapExitError(ExitFailure, "session invalid", err)
		}
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "cannot load session", err)
	}
	return s, nil
}

// saveAndIndex persists the session file and updates the catalog so
// `forge sessions` stays in sync. The file write is authoritative; a
// catalog failure after a successful save is still an error because
// listings would silently drift otherwise.
func saveAndIndex(ctx context.Context, opts *RootOptions, s *session.Session, path string) error {
	if err := session.Save(path, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	cat, err := store.Open(filepath.Join(opts.DataDir, CatalogFile))
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer cat.Close()

	if err := cat.IndexSession(ctx, s, path); err != nil {
		return fmt.Errorf("index session: %w", err)
	}

	return nil
}

// reportSessionErr prints a session operation failure and converts it
// into an exit-coded error. Session error codes are exit 1.
func reportSessionErr(formatter *OutputFormatter, err error) error {
	code := session.CodeOf(err)
	if code != "" {
		_ = formatter.Error(string(code), err.Error(), nil)
		return WrapExitError(ExitFailure, "operation rejected", err)
	}
	_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitCommandError, "operation failed", err)
}
