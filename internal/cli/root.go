package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	DataDir string // where session files and the catalog live
}

// envDefaults carries environment-provided defaults for the global
// flags. Flags still win when set explicitly.
type envDefaults struct {
	DataDir string `env:"FORGE_DATA_DIR" envDefault:"."`
	Format  string `env:"FORGE_FORMAT"   envDefault:"text"`
	Verbose bool   `env:"FORGE_VERBOSE"  envDefault:"false"`
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the forge CLI.
func NewRootCommand() *cobra.Command {
	defaults := envDefaults{}
	if err := env.Parse(&defaults); err != nil {
		// Unparseable environment falls back to built-in defaults.
		defaults = envDefaults{DataDir: ".", Format: "text"}
	}

	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "forge",
		Short: "Forge - deterministic variation sessions for 2D-to-3D assets",
		Long: `Forge turns a 2D sketch into a reproducible set of 3D asset
variations. Sessions record intent, parameter adjustments, generated
variation specs, and approvals; the same seed always reproduces the
same specs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			configureLogging(opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", defaults.Verbose, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", defaults.Format, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", defaults.DataDir, "directory for session files and catalog")

	// Add subcommands
	cmd.AddCommand(NewNewCommand(opts))
	cmd.AddCommand(NewIntentCommand(opts))
	cmd.AddCommand(NewAdjustCommand(opts))
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewApproveCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewSessionsCommand(opts))

	return cmd
}

// configureLogging routes engine logs to stderr. Session operations
// log at info level; without --verbose only warnings surface so the
// command output stays clean.
func configureLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
