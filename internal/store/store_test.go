package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/forge/internal/param"
	"github.com/roach88/forge/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	input := filepath.Join(t.TempDir(), "input.png")
	require.NoError(t, os.WriteFile(input, []byte("png"), 0o644))

	sess, err := session.New(param.AssetPillar, session.BaseInputRef{
		InputType:  session.InputDrawn,
		SourcePath: input,
	}, param.Seed(42))
	require.NoError(t, err)
	return sess
}

func TestOpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestIndexAndGetSession(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess := newTestSession(t)
	sess.GenerateVariations(5, "stone pillar")
	_, err := sess.PushIntent("stone pillar")
	require.NoError(t, err)

	require.NoError(t, s.IndexSession(ctx, sess, "/data/s.forge.json"))

	e, err := s.GetSession(ctx, sess.SessionID.String())
	require.NoError(t, err)
	assert.Equal(t, "pillar", e.AssetClass)
	assert.Equal(t, session.SchemaVersion, e.SchemaVersion)
	assert.Equal(t, "42", e.BaseSeed)
	assert.Equal(t, "/data/s.forge.json", e.FilePath)
	assert.Equal(t, 1, e.IntentCount)
	assert.Equal(t, 5, e.VariationCount)
	assert.Equal(t, 0, e.ApprovalCount)
}

func TestIndexSessionUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess := newTestSession(t)
	require.NoError(t, s.IndexSession(ctx, sess, "/data/a.forge.json"))

	sess.GenerateVariations(3, "x")
	require.NoError(t, s.IndexSession(ctx, sess, "/data/b.forge.json"))

	e, err := s.GetSession(ctx, sess.SessionID.String())
	require.NoError(t, err)
	assert.Equal(t, "/data/b.forge.json", e.FilePath)
	assert.Equal(t, 3, e.VariationCount)

	entries, err := s.ListSessions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "upsert must not duplicate rows")
}

func TestIndexSessionSyncsApprovals(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess := newTestSession(t)
	sess.GenerateVariations(3, "x")
	approvedID, err := sess.ApproveVariation(sess.Variations[1].VariationID,
		session.Dimensions{Height: 250, Width: 60, Depth: 60},
		session.DefaultExportSettings(), "pillar_a")
	require.NoError(t, err)

	require.NoError(t, s.IndexSession(ctx, sess, "/data/s.forge.json"))

	approvals, err := s.ListApprovals(ctx, sess.SessionID.String())
	require.NoError(t, err)
	require.Len(t, approvals, 1)
	assert.Equal(t, approvedID, approvals[0].ApprovedID)
	assert.Equal(t, "pillar_a", approvals[0].UserLabel)
	assert.Equal(t, 250.0, approvals[0].HeightCm)

	// Re-indexing keeps the approval set in sync, not duplicated.
	require.NoError(t, s.IndexSession(ctx, sess, "/data/s.forge.json"))
	approvals, err = s.ListApprovals(ctx, sess.SessionID.String())
	require.NoError(t, err)
	assert.Len(t, approvals, 1)
}

func TestListSessionsFilterByClass(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	pillar := newTestSession(t)
	require.NoError(t, s.IndexSession(ctx, pillar, "/data/p.forge.json"))

	input := filepath.Join(t.TempDir(), "wall.png")
	require.NoError(t, os.WriteFile(input, []byte("png"), 0o644))
	wall, err := session.New(param.AssetArenaWall, session.BaseInputRef{
		InputType:  session.InputImage,
		SourcePath: input,
	}, param.Seed(7))
	require.NoError(t, err)
	require.NoError(t, s.IndexSession(ctx, wall, "/data/w.forge.json"))

	all, err := s.ListSessions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pillars, err := s.ListSessions(ctx, "pillar")
	require.NoError(t, err)
	require.Len(t, pillars, 1)
	assert.Equal(t, pillar.SessionID.String(), pillars[0].SessionID)
}

func TestGetSessionNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetSession(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveSessionCascades(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess := newTestSession(t)
	sess.GenerateVariations(1, "x")
	_, err := sess.ApproveVariation(sess.Variations[0].VariationID,
		session.Dimensions{Height: 1, Width: 1, Depth: 1},
		session.DefaultExportSettings(), "")
	require.NoError(t, err)
	require.NoError(t, s.IndexSession(ctx, sess, "/data/s.forge.json"))

	require.NoError(t, s.RemoveSession(ctx, sess.SessionID.String()))

	_, err = s.GetSession(ctx, sess.SessionID.String())
	assert.ErrorIs(t, err, ErrNotFound)

	approvals, err := s.ListApprovals(ctx, sess.SessionID.String())
	require.NoError(t, err)
	assert.Empty(t, approvals)
}
