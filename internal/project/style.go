package project

import (
	"fmt"
	"log/slog"

	"github.com/roach88/forge/internal/param"
)

// TextureStyle is the visual texture style for a project's assets.
type TextureStyle string

const (
	StylePixelArt    TextureStyle = "pixel_art"
	StyleRealistic   TextureStyle = "realistic"
	StyleHandPainted TextureStyle = "hand_painted"
	StyleStylized    TextureStyle = "stylized"
	StyleLowPoly     TextureStyle = "low_poly"
)

// AestheticProfile holds overall aesthetic preferences. All values are
// normalized to [0, 1].
type AestheticProfile struct {
	// GeometryComplexity: 0 = simple/blocky, 1 = highly detailed.
	GeometryComplexity float64 `json:"geometry_complexity"`
	// Realism: 0 = cartoon/abstract, 1 = photorealistic.
	Realism float64 `json:"realism"`
	// WearTendency: 0 = pristine, 1 = heavily weathered.
	WearTendency float64 `json:"wear_tendency"`
	// SymmetryPreference: 0 = asymmetric, 1 = highly symmetric.
	SymmetryPreference float64 `json:"symmetry_preference"`
}

// DefaultAesthetic returns midpoint preferences with light wear.
func DefaultAesthetic() AestheticProfile {
	return AestheticProfile{
		GeometryComplexity: 0.5,
		Realism:            0.5,
		WearTendency:       0.3,
		SymmetryPreference: 0.5,
	}
}

// Validate checks every aesthetic value is in [0, 1].
func (a AestheticProfile) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"geometry_complexity", a.GeometryComplexity},
		{"realism", a.Realism},
		{"wear_tendency", a.WearTendency},
		{"symmetry_preference", a.SymmetryPreference},
	}
	for _, f := range fields {
		if f.value < 0 || f.value > 1 {
			return &Error{
				Code:    ErrCodeInvalidStyleValue,
				Field:   f.name,
				Value:   f.value,
				Message: "aesthetic value out of range [0.0, 1.0]",
			}
		}
	}
	return nil
}

// ColorPalette defines the project's coloring. Colors are RGB triples
// in [0, 1].
type ColorPalette struct {
	Name   string       `json:"name"`
	Colors [][3]float64 `json:"colors"`
	// Strict limits generation to exactly these colors instead of
	// treating them as guidance.
	Strict bool `json:"strict"`
}

// DefaultPalette returns a neutral gray/brown palette.
func DefaultPalette() ColorPalette {
	return ColorPalette{
		Name: "Default",
		Colors: [][3]float64{
			{0.5, 0.5, 0.5},
			{0.6, 0.4, 0.2},
			{0.3, 0.3, 0.3},
		},
	}
}

// Validate checks every channel is in [0, 1]. An empty palette is
// allowed but logged.
func (p ColorPalette) Validate() error {
	for i, color := range p.Colors {
		for ch, v := range color {
			if v < 0 || v > 1 {
				return &Error{
					Code:    ErrCodeInvalidStyleValue,
					Field:   fmt.Sprintf("colors[%d][%d]", i, ch),
					Value:   v,
					Message: "color channel out of range [0.0, 1.0]",
				}
			}
		}
	}
	if len(p.Colors) == 0 {
		slog.Warn("color palette has no colors defined", "palette", p.Name)
	}
	return nil
}

// AssetReference points at a previously approved asset kept for style
// learning.
type AssetReference struct {
	ApprovedID string `json:"approved_id"`
	AssetPath  string `json:"asset_path,omitempty"`
	ApprovedAt int64  `json:"approved_at"`
}

// StyleProfile is the project-wide style: every session created in the
// project seeds its parameters from it, which is what keeps all assets
// looking like the work of one artist.
type StyleProfile struct {
	TextureStyle TextureStyle `json:"texture_style"`
	// PixelSize applies only to pixel_art (pixels per unit).
	PixelSize uint32 `json:"pixel_size,omitempty"`

	Aesthetic    AestheticProfile `json:"aesthetic"`
	ColorPalette ColorPalette     `json:"color_palette"`

	// PixelDensity: higher = more detailed, lower = blockier.
	PixelDensity float64 `json:"pixel_density"`
	// EdgeSharpness: 0 = smooth/beveled, 1 = hard edges.
	EdgeSharpness float64 `json:"edge_sharpness"`

	ReferenceAssets []AssetReference `json:"reference_assets,omitempty"`
	StyleNotes      string           `json:"style_notes,omitempty"`
}

// DefaultStyle returns a stylized midpoint profile.
func DefaultStyle() StyleProfile {
	return StyleProfile{
		TextureStyle:  StyleStylized,
		Aesthetic:     DefaultAesthetic(),
		ColorPalette:  DefaultPalette(),
		PixelDensity:  0.5,
		EdgeSharpness: 0.5,
	}
}

// Minecraft returns a blocky pixel-art profile: clean, symmetric, hard
// edges.
func Minecraft() StyleProfile {
	return StyleProfile{
		TextureStyle: StylePixelArt,
		PixelSize:    16,
		Aesthetic: AestheticProfile{
			GeometryComplexity: 0.2,
			Realism:            0.0,
			WearTendency:       0.2,
			SymmetryPreference: 0.7,
		},
		ColorPalette: ColorPalette{
			Name: "Minecraft",
			Colors: [][3]float64{
				{0.545, 0.271, 0.075},
				{0.502, 0.502, 0.502},
				{0.133, 0.545, 0.133},
				{0.824, 0.706, 0.549},
			},
			Strict: true,
		},
		PixelDensity:  0.1,
		EdgeSharpness: 1.0,
		StyleNotes:    "Blocky, pixelated aesthetic inspired by Minecraft",
	}
}

// DarkFantasy returns a weathered, realistic medieval profile.
func DarkFantasy() StyleProfile {
	return StyleProfile{
		TextureStyle: StyleRealistic,
		Aesthetic: AestheticProfile{
			GeometryComplexity: 0.7,
			Realism:            0.8,
			WearTendency:       0.8,
			SymmetryPreference: 0.3,
		},
		ColorPalette: ColorPalette{
			Name: "Dark Fantasy",
			Colors: [][3]float64{
				{0.2, 0.2, 0.2},
				{0.3, 0.25, 0.2},
				{0.15, 0.15, 0.18},
				{0.4, 0.35, 0.3},
			},
		},
		PixelDensity:  0.8,
		EdgeSharpness: 0.3,
		StyleNotes:    "Dark, weathered, realistic medieval fantasy",
	}
}

// ApplyToParams maps the aesthetic preferences onto a parameter set
// and clamps the result.
func (sp StyleProfile) ApplyToParams(params param.Set) param.Set {
	params.ErosionIntensity.Value = sp.Aesthetic.WearTendency
	params.SymmetryBreak.Value = 1.0 - sp.Aesthetic.SymmetryPreference
	params.DetailDensity.Value = sp.Aesthetic.GeometryComplexity
	params.BevelAmount.Value = 1.0 - sp.EdgeSharpness

	params.ClampAll()

	slog.Debug("style profile applied to parameters",
		"erosion", params.ErosionIntensity.Value,
		"symmetry_break", params.SymmetryBreak.Value,
		"detail", params.DetailDensity.Value,
		"bevel", params.BevelAmount.Value)

	return params
}

// AddReference records an approved asset for future style learning.
func (sp *StyleProfile) AddReference(approvedID, assetPath string, approvedAt int64) {
	sp.ReferenceAssets = append(sp.ReferenceAssets, AssetReference{
		ApprovedID: approvedID,
		AssetPath:  assetPath,
		ApprovedAt: approvedAt,
	})
	slog.Info("reference asset added to style profile",
		"approved_id", approvedID,
		"total_references", len(sp.ReferenceAssets))
}

// Validate checks the full profile.
func (sp StyleProfile) Validate() error {
	if err := sp.Aesthetic.Validate(); err != nil {
		return err
	}
	if err := sp.ColorPalette.Validate(); err != nil {
		return err
	}
	if sp.PixelDensity < 0 || sp.PixelDensity > 1 {
		return &Error{
			Code:    ErrCodeInvalidStyleValue,
			Field:   "pixel_density",
			Value:   sp.PixelDensity,
			Message: "style value out of range [0.0, 1.0]",
		}
	}
	if sp.EdgeSharpness < 0 || sp.EdgeSharpness > 1 {
		return &Error{
			Code:    ErrCodeInvalidStyleValue,
			Field:   "edge_sharpness",
			Value:   sp.EdgeSharpness,
			Message: "style value out of range [0.0, 1.0]",
		}
	}
	if sp.TextureStyle == StylePixelArt && sp.PixelSize == 0 {
		return &Error{
			Code:    ErrCodeInvalidStyleValue,
			Field:   "pixel_size",
			Message: "pixel_art style requires a pixel size",
		}
	}
	return nil
}
