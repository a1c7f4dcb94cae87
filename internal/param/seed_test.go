package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedDeriveDeterminism(t *testing.T) {
	base := Seed(42)

	first := make([]Seed, 8)
	for i := range first {
		first[i] = base.Derive(uint64(i))
	}

	// Same inputs must produce the same output on every call.
	for i := range first {
		assert.Equal(t, first[i], base.Derive(uint64(i)))
	}
}

func TestSeedDeriveKnownValues(t *testing.T) {
	// Pinned outputs. These values are part of the persisted-session
	// contract: historical variation IDs embed them. If this test ever
	// fails, the mixing constants changed and old sessions can no
	// longer be reproduced.
	base := Seed(42)

	expected := []Seed{
		13679457532755275413,
		13432527470776545160,
		18105923034897077331,
		17864077645780634326,
		13469799137962766343,
	}
	for i, want := range expected {
		assert.Equal(t, want, base.Derive(uint64(i)), "derive(42, %d)", i)
	}
}

func TestSeedDeriveChangesWithInput(t *testing.T) {
	assert.NotEqual(t, Seed(42).Derive(0), Seed(42).Derive(1))
	assert.NotEqual(t, Seed(42).Derive(0), Seed(43).Derive(0))
}

func TestSeedDeriveDistinctOverRange(t *testing.T) {
	// No collisions across a realistic batch size.
	seen := make(map[Seed]bool)
	base := Seed(7)
	for i := uint64(0); i < 1000; i++ {
		s := base.Derive(i)
		assert.False(t, seen[s], "collision at index %d", i)
		seen[s] = true
	}
}

func TestSeedString(t *testing.T) {
	assert.Equal(t, "42", Seed(42).String())
	assert.Equal(t, "13679457532755275413", Seed(42).Derive(0).String())
}
