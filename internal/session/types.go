package session

import (
	"encoding/json"
	"fmt"
	"math"
)

// BaseInputType records where the base silhouette came from.
type BaseInputType string

const (
	InputDrawn BaseInputType = "drawn"
	InputImage BaseInputType = "image"
)

// BaseInputRef references the base input. v1 keeps this as a path so
// session files stay small; an embedded-bytes option can come later
// for portable sessions.
type BaseInputRef struct {
	InputType  BaseInputType `json:"input_type"`
	SourcePath string        `json:"source_path"`
}

// IntentEntry is one line of the append-only intent log. Iteration is
// the entry's position, assigned at append time and never reused.
type IntentEntry struct {
	Iteration uint32 `json:"iteration"`
	Text      string `json:"text"`
}

// Dimensions are real-world dimensions for the final 3D asset, in
// centimeters. Unreal uses centimeters by default, so this keeps
// exports predictable.
type Dimensions struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
}

// IsValid reports whether all three dimensions are positive and finite.
func (d Dimensions) IsValid() bool {
	for _, v := range []float64{d.Height, d.Width, d.Depth} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return false
		}
	}
	return true
}

// PivotMode is the pivot placement hint for engine integration.
type PivotMode string

const (
	PivotCenter     PivotMode = "center"
	PivotBaseCenter PivotMode = "base_center"
)

// CollisionMode is the collision generation hint.
type CollisionMode string

const (
	CollisionNone   CollisionMode = "none"
	CollisionBox    CollisionMode = "box"
	CollisionConvex CollisionMode = "convex"
)

// ExportSettings are chosen at approval time and handed to the export
// layer unchanged.
type ExportSettings struct {
	Pivot        PivotMode     `json:"pivot"`
	Collision    CollisionMode `json:"collision"`
	GenerateLODs bool          `json:"generate_lods"`
}

// DefaultExportSettings returns the v1 defaults: base-center pivot,
// box collision, no LODs.
func DefaultExportSettings() ExportSettings {
	return ExportSettings{
		Pivot:        PivotBaseCenter,
		Collision:    CollisionBox,
		GenerateLODs: false,
	}
}

// ApprovedDesign is a user's binding selection of one variation plus
// real-world sizing and export intent. Approvals accumulate
// monotonically; none is ever removed in v1.
type ApprovedDesign struct {
	ApprovedID  string         `json:"approved_id"`
	VariationID string         `json:"variation_id"`
	Dimensions  Dimensions     `json:"dimensions_cm"`
	Export      ExportSettings `json:"export"`
	UserLabel   string         `json:"user_label,omitempty"`
}

// ApprovedID synthesizes the approval identifier from its ordinal and
// the approved variation's id.
func ApprovedID(ordinal int, variationID string) string {
	return fmt.Sprintf("appr_%d_%s", ordinal, variationID)
}

func validateEnum[T comparable](name string, got T, allowed ...T) error {
	for _, a := range allowed {
		if got == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s: %v", name, got)
}

// UnmarshalJSON rejects unknown input types so corrupted session files
// fail loudly at decode time rather than at validation.
func (t *BaseInputType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := BaseInputType(s)
	if err := validateEnum("base input type", v, InputDrawn, InputImage); err != nil {
		return err
	}
	*t = v
	return nil
}

// UnmarshalJSON rejects unknown pivot modes.
func (p *PivotMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := PivotMode(s)
	if err := validateEnum("pivot mode", v, PivotCenter, PivotBaseCenter); err != nil {
		return err
	}
	*p = v
	return nil
}

// UnmarshalJSON rejects unknown collision modes.
func (c *CollisionMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := CollisionMode(s)
	if err := validateEnum("collision mode", v, CollisionNone, CollisionBox, CollisionConvex); err != nil {
		return err
	}
	*c = v
	return nil
}
