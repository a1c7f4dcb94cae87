package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Save validates the session and writes it to path as pretty JSON.
// Parent directories are created as needed. An invalid session is
// never written.
//
// The write is a single full-file write. Callers that need crash
// atomicity should write to a temp file and rename at their
// integration layer.
func Save(path string, s *Session) error {
	if err := s.Validate(s.SchemaVersion); err != nil {
		return fmt.Errorf("save session: validate: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save session: create parent dir %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("save session: marshal: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save session: write %s: %w", path, err)
	}

	slog.Info("session saved", "session_id", s.SessionID, "path", path)
	return nil
}

// Load reads a session file and validates it against expectedVersion.
//
// The decode is strict: unknown fields reject the file. Out-of-bounds
// parameters are a validation error, not silently repaired; callers
// that want repair over rejection can ClampAll explicitly and save. On
// any failure, including SCHEMA_VERSION_MISMATCH, no partial session
// is returned.
func Load(path, expectedVersion string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{
				Code:    ErrCodeInvalidPath,
				Message: "session file does not exist",
				Path:    path,
				Err:     err,
			}
		}
		return nil, fmt.Errorf("load session: read %s: %w", path, err)
	}

	// The version gate runs before full decode so a future-schema file
	// fails with a version error, not a shape error.
	var header struct {
		SchemaVersion string `json:"schema_version"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("load session: parse %s: %w", path, err)
	}
	if header.SchemaVersion != expectedVersion {
		return nil, &Error{
			Code: ErrCodeSchemaVersionMismatch,
			Want: expectedVersion,
			Got:  header.SchemaVersion,
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var s Session
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("load session: parse %s: %w", path, err)
	}

	if err := s.Validate(expectedVersion); err != nil {
		return nil, fmt.Errorf("load session: validate %s: %w", path, err)
	}

	slog.Info("session loaded", "session_id", s.SessionID, "path", path)
	return &s, nil
}
