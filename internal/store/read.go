package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SessionEntry is one catalog row describing a saved session file.
type SessionEntry struct {
	SessionID      string `json:"session_id"`
	AssetClass     string `json:"asset_class"`
	SchemaVersion  string `json:"schema_version"`
	BaseSeed       string `json:"base_seed"`
	FilePath       string `json:"file_path"`
	IntentCount    int    `json:"intent_count"`
	VariationCount int    `json:"variation_count"`
	ApprovalCount  int    `json:"approval_count"`
	UpdatedAt      int64  `json:"updated_at"`
}

// ApprovalEntry is one catalog row describing an approval.
type ApprovalEntry struct {
	ApprovedID  string  `json:"approved_id"`
	SessionID   string  `json:"session_id"`
	VariationID string  `json:"variation_id"`
	UserLabel   string  `json:"user_label"`
	HeightCm    float64 `json:"height_cm"`
	WidthCm     float64 `json:"width_cm"`
	DepthCm     float64 `json:"depth_cm"`
}

// ErrNotFound is returned when a catalog lookup matches nothing.
var ErrNotFound = errors.New("not found in catalog")

// ListSessions returns all catalog entries, optionally filtered by
// asset class (empty string means all). Ordering is deterministic:
// most recently updated first, id as tiebreak.
func (s *Store) ListSessions(ctx context.Context, assetClass string) ([]SessionEntry, error) {
	query := `
		SELECT session_id, asset_class, schema_version, base_seed, file_path,
		       intent_count, variation_count, approval_count, updated_at
		FROM sessions
	`
	var args []any
	if assetClass != "" {
		query += ` WHERE asset_class = ?`
		args = append(args, assetClass)
	}
	query += ` ORDER BY updated_at DESC, session_id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	entries := []SessionEntry{}
	for rows.Next() {
		var e SessionEntry
		if err := rows.Scan(
			&e.SessionID, &e.AssetClass, &e.SchemaVersion, &e.BaseSeed, &e.FilePath,
			&e.IntentCount, &e.VariationCount, &e.ApprovalCount, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan session entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return entries, nil
}

// GetSession returns the catalog entry for one session id.
func (s *Store) GetSession(ctx context.Context, sessionID string) (*SessionEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT session_id, asset_class, schema_version, base_seed, file_path,
		       intent_count, variation_count, approval_count, updated_at
		FROM sessions
		WHERE session_id = ?
	`, sessionID)

	var e SessionEntry
	err := row.Scan(
		&e.SessionID, &e.AssetClass, &e.SchemaVersion, &e.BaseSeed, &e.FilePath,
		&e.IntentCount, &e.VariationCount, &e.ApprovalCount, &e.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}

	return &e, nil
}

// ListApprovals returns the approvals recorded for a session, ordered
// by approved id for determinism.
func (s *Store) ListApprovals(ctx context.Context, sessionID string) ([]ApprovalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT approved_id, session_id, variation_id, user_label,
		       height_cm, width_cm, depth_cm
		FROM approvals
		WHERE session_id = ?
		ORDER BY approved_id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list approvals: %w", err)
	}
	defer rows.Close()

	entries := []ApprovalEntry{}
	for rows.Next() {
		var e ApprovalEntry
		if err := rows.Scan(
			&e.ApprovedID, &e.SessionID, &e.VariationID, &e.UserLabel,
			&e.HeightCm, &e.WidthCm, &e.DepthCm,
		); err != nil {
			return nil, fmt.Errorf("scan approval entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate approvals: %w", err)
	}

	return entries, nil
}
