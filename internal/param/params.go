package param

// Set is the canonical parameter set for v1 generation: six bounded
// scalars that together describe one generation configuration. A Set
// is owned by exactly one session (or transiently by a style profile
// before session creation).
type Set struct {
	// HeightScale scales the silhouette height in the final asset.
	HeightScale Bounded `json:"height_scale"` // [0.5, 2.0]
	// ExtrusionDepth is the depth of extrusion for 2.5D -> 3D.
	ExtrusionDepth Bounded `json:"extrusion_depth"` // [0.1, 1.0]
	// BevelAmount softens edges.
	BevelAmount Bounded `json:"bevel_amount"` // [0.0, 0.5]
	// SymmetryBreak controls how strongly symmetry is broken.
	SymmetryBreak Bounded `json:"symmetry_break"` // [0.0, 1.0]
	// ErosionIntensity is wear/damage intensity.
	ErosionIntensity Bounded `json:"erosion_intensity"` // [0.0, 1.0]
	// DetailDensity is fine detail variation.
	DetailDensity Bounded `json:"detail_density"` // [0.0, 1.0]
}

// DefaultSet returns the fixed v1 defaults with their declared ranges.
func DefaultSet() Set {
	return Set{
		HeightScale:      Bounded{Value: 1.0, Min: 0.5, Max: 2.0},
		ExtrusionDepth:   Bounded{Value: 0.5, Min: 0.1, Max: 1.0},
		BevelAmount:      Bounded{Value: 0.10, Min: 0.0, Max: 0.5},
		SymmetryBreak:    Bounded{Value: 0.0, Min: 0.0, Max: 1.0},
		ErosionIntensity: Bounded{Value: 0.0, Min: 0.0, Max: 1.0},
		DetailDensity:    Bounded{Value: 0.20, Min: 0.0, Max: 1.0},
	}
}

// Delta is a sparse additive adjustment: one optional offset per Set
// field. A nil field means "no change". AI suggestions and UI edits
// both reduce to a Delta.
type Delta struct {
	HeightScale      *float64 `json:"height_scale,omitempty"`
	ExtrusionDepth   *float64 `json:"extrusion_depth,omitempty"`
	BevelAmount      *float64 `json:"bevel_amount,omitempty"`
	SymmetryBreak    *float64 `json:"symmetry_break,omitempty"`
	ErosionIntensity *float64 `json:"erosion_intensity,omitempty"`
	DetailDensity    *float64 `json:"detail_density,omitempty"`
}

// IsZero reports whether the delta carries no adjustments at all.
func (d Delta) IsZero() bool {
	return d.HeightScale == nil && d.ExtrusionDepth == nil &&
		d.BevelAmount == nil && d.SymmetryBreak == nil &&
		d.ErosionIntensity == nil && d.DetailDensity == nil
}

// fields enumerates the set in declaration order. Validation reports
// the first offender in this order.
func (s *Set) fields() []struct {
	name string
	b    *Bounded
} {
	return []struct {
		name string
		b    *Bounded
	}{
		{"height_scale", &s.HeightScale},
		{"extrusion_depth", &s.ExtrusionDepth},
		{"bevel_amount", &s.BevelAmount},
		{"symmetry_break", &s.SymmetryBreak},
		{"erosion_intensity", &s.ErosionIntensity},
		{"detail_density", &s.DetailDensity},
	}
}

// ApplyDelta adds each present offset to its field and clamps that
// field. Absent fields are untouched. Clamping is per-field, so the
// order of application never changes the final state.
func (s *Set) ApplyDelta(d Delta) {
	apply := func(b *Bounded, off *float64) {
		if off != nil {
			b.Set(b.Value + *off)
		}
	}
	apply(&s.HeightScale, d.HeightScale)
	apply(&s.ExtrusionDepth, d.ExtrusionDepth)
	apply(&s.BevelAmount, d.BevelAmount)
	apply(&s.SymmetryBreak, d.SymmetryBreak)
	apply(&s.ErosionIntensity, d.ErosionIntensity)
	apply(&s.DetailDensity, d.DetailDensity)
}

// ClampAll re-clamps every field. Used defensively after
// deserialization; on an uncorrupted set it is a no-op.
func (s *Set) ClampAll() {
	for _, f := range s.fields() {
		*f.b = f.b.Clamped()
	}
}

// Validate fails with OUT_OF_RANGE naming the first field found
// outside its bounds. Every mutation path clamps, so this exists to
// catch corrupted or forged persisted state on load.
func (s *Set) Validate() error {
	for _, f := range s.fields() {
		if !f.b.InRange() {
			return newOutOfRange(f.name, f.b.Value, f.b.Min, f.b.Max)
		}
	}
	return nil
}
