package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/forge/internal/store"
)

// NewSessionsCommand creates the sessions command.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	var classFilter string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List sessions known to the catalog",
		Long: `List the sessions indexed in the data directory's catalog, most
recently updated first. The catalog is updated on every save; session
files remain the source of truth.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(rootOpts, cmd, classFilter)
		},
	}

	cmd.Flags().StringVar(&classFilter, "class", "", "only list sessions for this asset class")

	return cmd
}

func runSessions(opts *RootOptions, cmd *cobra.Command, classFilter string) error {
	formatter := newFormatter(opts, cmd)

	cat, err := store.Open(filepath.Join(opts.DataDir, CatalogFile))
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "cannot open catalog", err)
	}
	defer cat.Close()

	entries, err := cat.ListSessions(cmd.Context(), classFilter)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "cannot list sessions", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "no sessions")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%s  %-10s  seed %-20s  %d variations, %d approvals\n",
			e.SessionID, e.AssetClass, e.BaseSeed, e.VariationCount, e.ApprovalCount)
	}
	return nil
}
