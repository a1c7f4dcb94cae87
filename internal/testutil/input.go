package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempBaseInput writes a placeholder sketch file under a test temp
// directory and returns its path. Sessions require the base input to
// resolve on disk, so tests that only exercise the state machine use
// this instead of real image data.
func TempBaseInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sketch.png")
	if err := os.WriteFile(path, []byte("sketch"), 0o644); err != nil {
		t.Fatalf("write base input fixture: %v", err)
	}
	return path
}
