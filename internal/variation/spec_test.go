package variation

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/forge/internal/param"
)

func TestGenerateBatchCountAndOrder(t *testing.T) {
	sid := uuid.New()
	specs := GenerateBatch(sid, param.AssetPillar, param.Seed(42), param.DefaultSet(), "stone pillar", 0, 5)

	require.Len(t, specs, 5)
	for i, spec := range specs {
		seed := param.Seed(42).Derive(uint64(i))
		assert.Equal(t, fmt.Sprintf("var_%04d_%d", i, seed), spec.VariationID)
		assert.Equal(t, seed, spec.Seed)
		assert.Equal(t, sid, spec.SessionID)
		assert.Equal(t, param.AssetPillar, spec.AssetClass)
		assert.Equal(t, param.SchemaVersion, spec.SchemaVersion)
		assert.Equal(t, param.DefaultSet(), spec.Params)
		assert.Equal(t, "stone pillar", spec.IntentText)
	}
}

func TestGenerateBatchKnownIDs(t *testing.T) {
	// Scenario from the session contract: base seed 42, five specs.
	specs := GenerateBatch(uuid.New(), param.AssetArenaProp, param.Seed(42), param.DefaultSet(), "x", 0, 5)

	want := []string{
		"var_0000_13679457532755275413",
		"var_0001_13432527470776545160",
		"var_0002_18105923034897077331",
		"var_0003_17864077645780634326",
		"var_0004_13469799137962766343",
	}
	require.Len(t, specs, len(want))
	for i, w := range want {
		assert.Equal(t, w, specs[i].VariationID)
	}
}

func TestGenerateBatchDistinctIDs(t *testing.T) {
	specs := GenerateBatch(uuid.New(), param.AssetDebris, param.Seed(99), param.DefaultSet(), "rubble", 0, 50)

	seen := make(map[string]bool)
	for _, spec := range specs {
		assert.False(t, seen[spec.VariationID], "duplicate id %s", spec.VariationID)
		seen[spec.VariationID] = true
	}
}

func TestGenerateBatchDeterministic(t *testing.T) {
	sid := uuid.New()
	a := GenerateBatch(sid, param.AssetArenaWall, param.Seed(7), param.DefaultSet(), "wall", 0, 10)
	b := GenerateBatch(sid, param.AssetArenaWall, param.Seed(7), param.DefaultSet(), "wall", 0, 10)
	assert.Equal(t, a, b)
}

func TestGenerateBatchStartOffset(t *testing.T) {
	// Appended batches continue the index sequence, so IDs never
	// collide with an earlier batch from the same seed.
	first := GenerateBatch(uuid.New(), param.AssetPillar, param.Seed(42), param.DefaultSet(), "a", 0, 5)
	second := GenerateBatch(uuid.New(), param.AssetPillar, param.Seed(42), param.DefaultSet(), "b", 5, 5)

	assert.Equal(t, "var_0005_8913683988413733765", second[0].VariationID)
	for _, s2 := range second {
		for _, s1 := range first {
			assert.NotEqual(t, s1.VariationID, s2.VariationID)
		}
	}
}

func TestGenerateBatchEmptyIntentPermitted(t *testing.T) {
	specs := GenerateBatch(uuid.New(), param.AssetPillar, param.Seed(1), param.DefaultSet(), "  ", 0, 3)
	require.Len(t, specs, 3)
}

func TestGenerateBatchZeroCount(t *testing.T) {
	specs := GenerateBatch(uuid.New(), param.AssetPillar, param.Seed(1), param.DefaultSet(), "x", 0, 0)
	assert.Empty(t, specs)
}
