package session

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/forge/internal/param"
)

// newTestSession creates a session whose base input resolves to a real
// file under t.TempDir.
func newTestSession(t *testing.T) *Session {
	t.Helper()

	input := filepath.Join(t.TempDir(), "input.png")
	require.NoError(t, os.WriteFile(input, []byte("png"), 0o644))

	s, err := New(param.AssetArenaProp, BaseInputRef{
		InputType:  InputDrawn,
		SourcePath: input,
	}, param.Seed(42))
	require.NoError(t, err)
	return s
}

func TestNewSessionDefaults(t *testing.T) {
	s := newTestSession(t)

	assert.NotEqual(t, "", s.SessionID.String())
	assert.Equal(t, SchemaVersion, s.SchemaVersion)
	assert.Equal(t, param.DefaultSet(), s.BaseParams)
	assert.Empty(t, s.IntentHistory)
	assert.Empty(t, s.Variations)
	assert.Empty(t, s.Approvals)
}

func TestNewSessionRejectsMissingBaseInput(t *testing.T) {
	_, err := New(param.AssetPillar, BaseInputRef{
		InputType:  InputImage,
		SourcePath: filepath.Join(t.TempDir(), "nope.png"),
	}, param.Seed(1))

	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidPath, CodeOf(err))
}

func TestPushIntentSequentialIterations(t *testing.T) {
	s := newTestSession(t)

	for i := 0; i < 5; i++ {
		iter, err := s.PushIntent("more damage")
		require.NoError(t, err)
		assert.Equal(t, uint32(i), iter)
	}

	seen := make(map[uint32]bool)
	for _, e := range s.IntentHistory {
		assert.False(t, seen[e.Iteration], "iteration %d reused", e.Iteration)
		seen[e.Iteration] = true
	}
}

func TestPushIntentRejectsBlank(t *testing.T) {
	s := newTestSession(t)

	_, err := s.PushIntent("   \t\n")
	require.Error(t, err)
	assert.Equal(t, ErrCodeEmptyIntent, CodeOf(err))
	assert.Empty(t, s.IntentHistory)
}

func TestApplyBaseDeltaOnlyAffectsFutureBatches(t *testing.T) {
	s := newTestSession(t)
	s.GenerateVariations(3, "first")
	snapshot := s.Variations[0].Params

	off := 0.5
	s.ApplyBaseDelta(param.Delta{HeightScale: &off})

	assert.Equal(t, 1.5, s.BaseParams.HeightScale.Value)
	// Existing snapshots are immutable.
	assert.Equal(t, snapshot, s.Variations[0].Params)

	s.GenerateVariations(3, "second")
	assert.Equal(t, 1.5, s.Variations[0].Params.HeightScale.Value)
}

func TestGenerateVariationsReplacesBatch(t *testing.T) {
	s := newTestSession(t)

	s.GenerateVariations(5, "stone pillar")
	require.Len(t, s.Variations, 5)
	assert.Equal(t, "var_0000_13679457532755275413", s.Variations[0].VariationID)
	assert.Equal(t, "var_0004_13469799137962766343", s.Variations[4].VariationID)

	s.GenerateVariations(3, "rougher")
	assert.Len(t, s.Variations, 3)
}

func TestAppendVariationsContinuesIndexSequence(t *testing.T) {
	s := newTestSession(t)

	s.GenerateVariations(5, "first")
	s.AppendVariations(5, "more")
	require.Len(t, s.Variations, 10)
	assert.Equal(t, "var_0005_8913683988413733765", s.Variations[5].VariationID)

	// A second append keeps growing the index; IDs never collide.
	s.AppendVariations(5, "even more")
	require.Len(t, s.Variations, 15)

	seen := make(map[string]bool)
	for _, spec := range s.Variations {
		assert.False(t, seen[spec.VariationID], "duplicate %s", spec.VariationID)
		seen[spec.VariationID] = true
	}
	require.NoError(t, s.Validate(SchemaVersion))
}

func TestApproveVariation(t *testing.T) {
	s := newTestSession(t)
	s.GenerateVariations(5, "stone pillar")
	id := s.Variations[0].VariationID

	approvedID, err := s.ApproveVariation(id,
		Dimensions{Height: 250, Width: 60, Depth: 60},
		DefaultExportSettings(), "pillar_a")
	require.NoError(t, err)
	assert.Equal(t, "appr_0_"+id, approvedID)

	got := s.FindApproval(approvedID)
	require.NotNil(t, got)
	assert.Equal(t, id, got.VariationID)
	assert.Equal(t, "pillar_a", got.UserLabel)
}

func TestApproveVariationDuplicate(t *testing.T) {
	s := newTestSession(t)
	s.GenerateVariations(2, "x")
	id := s.Variations[0].VariationID

	_, err := s.ApproveVariation(id, Dimensions{Height: 1, Width: 1, Depth: 1}, DefaultExportSettings(), "")
	require.NoError(t, err)

	_, err = s.ApproveVariation(id, Dimensions{Height: 1, Width: 1, Depth: 1}, DefaultExportSettings(), "")
	require.Error(t, err)
	assert.Equal(t, ErrCodeDuplicateApproval, CodeOf(err))
	assert.Len(t, s.Approvals, 1)
}

func TestApproveVariationUnknown(t *testing.T) {
	s := newTestSession(t)
	s.GenerateVariations(2, "x")

	_, err := s.ApproveVariation("var_9999_1", Dimensions{Height: 1, Width: 1, Depth: 1}, DefaultExportSettings(), "")
	require.Error(t, err)
	assert.Equal(t, ErrCodeUnknownVariation, CodeOf(err))
}

func TestApproveVariationInvalidDimensions(t *testing.T) {
	s := newTestSession(t)
	s.GenerateVariations(1, "x")
	id := s.Variations[0].VariationID

	cases := []Dimensions{
		{Height: 0, Width: 1, Depth: 1},
		{Height: 1, Width: -2, Depth: 1},
		{Height: 1, Width: 1, Depth: math.NaN()},
		{Height: math.Inf(1), Width: 1, Depth: 1},
	}
	for _, dims := range cases {
		_, err := s.ApproveVariation(id, dims, DefaultExportSettings(), "")
		require.Error(t, err, "dims %+v", dims)
		assert.Equal(t, ErrCodeInvalidDimensions, CodeOf(err))
	}
}

func TestRegenerationRetainsApprovedSpecs(t *testing.T) {
	s := newTestSession(t)
	s.GenerateVariations(5, "first")
	id := s.Variations[2].VariationID

	_, err := s.ApproveVariation(id, Dimensions{Height: 1, Width: 1, Depth: 1}, DefaultExportSettings(), "keeper")
	require.NoError(t, err)

	// Change the parameters so the regenerated batch differs, then
	// replace with a smaller batch that does not reproduce index 2.
	off := 0.3
	s.ApplyBaseDelta(param.Delta{ErosionIntensity: &off})
	s.GenerateVariations(2, "second")

	// The approved spec is pinned into the new collection.
	require.Len(t, s.Variations, 3)
	pinned := s.FindVariation(id)
	require.NotNil(t, pinned)
	assert.Equal(t, 0.0, pinned.Params.ErosionIntensity.Value, "pinned snapshot keeps its original params")

	require.NoError(t, s.Validate(SchemaVersion))
}

func TestRegenerationSameSeedReproducesApprovedID(t *testing.T) {
	s := newTestSession(t)
	s.GenerateVariations(5, "first")
	id := s.Variations[0].VariationID

	_, err := s.ApproveVariation(id, Dimensions{Height: 1, Width: 1, Depth: 1}, DefaultExportSettings(), "")
	require.NoError(t, err)

	// Same seed and count: the fresh batch reproduces the approved id,
	// so nothing extra is pinned and no duplicate appears.
	s.GenerateVariations(5, "again")
	require.Len(t, s.Variations, 5)
	require.NoError(t, s.Validate(SchemaVersion))
}

func TestAppendAfterSmallerRegenerationSkipsPinnedIndices(t *testing.T) {
	s := newTestSession(t)
	s.GenerateVariations(5, "first")
	id := s.Variations[4].VariationID

	_, err := s.ApproveVariation(id, Dimensions{Height: 1, Width: 1, Depth: 1}, DefaultExportSettings(), "keeper")
	require.NoError(t, err)

	// A smaller replacement pins the index-4 approval. The counter
	// must not rewind to 2, or a later append would regenerate index 4
	// and collide with the pinned spec.
	s.GenerateVariations(2, "second")
	assert.Equal(t, uint64(5), s.NextVariationIndex)

	s.AppendVariations(3, "third")
	require.Len(t, s.Variations, 6)

	seen := make(map[string]bool)
	for _, spec := range s.Variations {
		require.False(t, seen[spec.VariationID], "duplicate id %s", spec.VariationID)
		seen[spec.VariationID] = true
	}
	require.NoError(t, s.Validate(SchemaVersion))
}
