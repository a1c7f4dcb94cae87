// Command forge is the CLI for deterministic 2D-to-3D variation
// sessions: create a session from a sketch, iterate on intent and
// parameters, generate reproducible variation batches, and approve
// designs for export.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/forge/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands print their own errors through the formatter; only
		// surface errors that bypassed it (flag parsing, usage).
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
