package store

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/forge/internal/session"
)

// IndexSession upserts a session's catalog row and replaces its
// approval rows. Called after every successful session.Save so the
// catalog tracks the file.
//
// The whole update runs in one transaction: a crash mid-index leaves
// the previous catalog state, never a half-indexed session.
func (s *Store) IndexSession(ctx context.Context, sess *session.Session, filePath string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("index session: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions
		(session_id, asset_class, schema_version, base_seed, file_path,
		 intent_count, variation_count, approval_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			asset_class     = excluded.asset_class,
			schema_version  = excluded.schema_version,
			base_seed       = excluded.base_seed,
			file_path       = excluded.file_path,
			intent_count    = excluded.intent_count,
			variation_count = excluded.variation_count,
			approval_count  = excluded.approval_count,
			updated_at      = excluded.updated_at
	`,
		sess.SessionID.String(),
		sess.AssetClass.String(),
		sess.SchemaVersion,
		sess.BaseSeed.String(),
		filePath,
		len(sess.IntentHistory),
		len(sess.Variations),
		len(sess.Approvals),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("index session: %w", err)
	}

	// Approvals are append-only in the session, so replacing the rows
	// wholesale is equivalent to syncing and much simpler.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM approvals WHERE session_id = ?`, sess.SessionID.String()); err != nil {
		return fmt.Errorf("index session: clear approvals: %w", err)
	}

	for _, a := range sess.Approvals {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO approvals
			(approved_id, session_id, variation_id, user_label, height_cm, width_cm, depth_cm)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			a.ApprovedID,
			sess.SessionID.String(),
			a.VariationID,
			a.UserLabel,
			a.Dimensions.Height,
			a.Dimensions.Width,
			a.Dimensions.Depth,
		)
		if err != nil {
			return fmt.Errorf("index session: approval %s: %w", a.ApprovedID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("index session: commit: %w", err)
	}

	return nil
}

// RemoveSession deletes a session and its approvals from the catalog.
// The session file itself is untouched.
func (s *Store) RemoveSession(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("remove session %s: %w", sessionID, err)
	}
	return nil
}
