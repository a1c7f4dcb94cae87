package param

// Bounded is a scalar confined to a fixed inclusive range.
//
// The invariant min < max is enforced at construction; the invariant
// min <= value <= max is enforced after every mutation by clamping,
// never by rejection.
type Bounded struct {
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// NewBounded constructs a bounded parameter. It fails with
// INVALID_BOUNDS if min >= max; an out-of-range value is not an error,
// it is clamped into [min, max].
func NewBounded(value, min, max float64) (Bounded, error) {
	if !(min < max) {
		return Bounded{}, newInvalidBounds(min, max)
	}
	b := Bounded{Value: value, Min: min, Max: max}
	return b.Clamped(), nil
}

// Set stores a new value, then clamps. The effective stored value may
// differ from the requested one.
func (b *Bounded) Set(value float64) {
	b.Value = value
	*b = b.Clamped()
}

// Clamped returns a copy with the value forced into [Min, Max].
// Clamping an already-valid value is a no-op.
func (b Bounded) Clamped() Bounded {
	if b.Value < b.Min {
		b.Value = b.Min
	} else if b.Value > b.Max {
		b.Value = b.Max
	}
	return b
}

// InRange reports whether the value currently satisfies the bounds.
// Every mutation path clamps, so this is false only for state that
// bypassed the constructor (e.g. hand-edited session files).
func (b Bounded) InRange() bool {
	return b.Value >= b.Min && b.Value <= b.Max
}
