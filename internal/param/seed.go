package param

import "strconv"

// Seed is an opaque deterministic value controlling reproducible
// variation generation. Seeds are immutable; Derive produces new ones.
type Seed uint64

// SplitMix64 mixing constants. These are part of the persisted-session
// contract: changing them breaks reproduction of historical sessions.
const (
	seedGamma = 0x9E3779B97F4A7C15
	seedMulA  = 0xBF58476D1CE4E5B9
	seedMulB  = 0x94D049BB133111EB
)

// Derive deterministically maps (seed, index) to a child seed.
//
// The construction is SplitMix64-style: add a fixed odd constant plus
// the index, then two rounds of xor-shift and multiply-by-odd-constant.
// It is pure and total, and deliberately avoids any PRNG library so
// that the mapping can never drift between versions. For a fixed seed,
// iterating index 0..N reproduces byte-identical output on every
// platform.
func (s Seed) Derive(index uint64) Seed {
	z := uint64(s) + seedGamma + index
	z = (z ^ (z >> 30)) * seedMulA
	z = (z ^ (z >> 27)) * seedMulB
	return Seed(z ^ (z >> 31))
}

// String formats the seed as an unsigned decimal, matching its
// representation inside variation IDs.
func (s Seed) String() string {
	return strconv.FormatUint(uint64(s), 10)
}
