// Package export defines export configurations for turning approved
// designs into game engine assets. It produces configuration and
// output paths only; mesh and file encoding belong to the export
// pipeline proper.
package export

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Format is a supported 3D export format.
type Format string

const (
	FormatGLTF Format = "gltf" // glTF 2.0 binary, primary for Bevy
	FormatOBJ  Format = "obj"  // Wavefront OBJ, simple meshes
	FormatFBX  Format = "fbx"  // Autodesk FBX, for other engines
)

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatGLTF:
		return "glb"
	case FormatOBJ:
		return "obj"
	case FormatFBX:
		return "fbx"
	}
	return ""
}

// SupportsLOD reports whether the format can carry LOD levels.
func (f Format) SupportsLOD() bool {
	return f == FormatGLTF || f == FormatFBX
}

// SupportsMaterials reports whether the format can carry materials.
func (f Format) SupportsMaterials() bool {
	return f == FormatGLTF || f == FormatOBJ || f == FormatFBX
}

// Engine is the target game engine for export optimization.
type Engine string

const (
	EngineBevy    Engine = "bevy"
	EngineUnreal5 Engine = "unreal_engine_5"
	EngineUnreal4 Engine = "unreal_engine_4"
	EngineUnity   Engine = "unity"
	EngineGeneric Engine = "generic"
)

// Axis is a coordinate system axis.
type Axis string

const (
	AxisX Axis = "X"
	AxisY Axis = "Y"
	AxisZ Axis = "Z"
)

// UpAxis returns the engine's recommended up-axis.
func (e Engine) UpAxis() Axis {
	switch e {
	case EngineUnreal5, EngineUnreal4:
		return AxisZ
	default:
		return AxisY
	}
}

// UnitInfo returns the engine's unit scale factor and unit name.
// Bevy and Unity use meters; Unreal uses centimeters.
func (e Engine) UnitInfo() (float64, string) {
	switch e {
	case EngineUnreal5, EngineUnreal4:
		return 100.0, "centimeters"
	default:
		return 1.0, "meters"
	}
}

// IsRightHanded reports whether the engine uses a right-handed
// coordinate system. Unreal is left-handed.
func (e Engine) IsRightHanded() bool {
	return e != EngineUnreal5 && e != EngineUnreal4
}

// LODConfig controls level-of-detail generation.
type LODConfig struct {
	LevelCount         uint32    `json:"level_count"`
	ReductionFactor    float64   `json:"reduction_factor"` // triangle reduction per level, in (0, 1)
	MinTriangleCount   uint32    `json:"min_triangle_count"`
	DistanceThresholds []float64 `json:"distance_thresholds"` // ascending, in engine units
}

// DefaultLODConfig returns a three-level config with generic distance
// thresholds.
func DefaultLODConfig() LODConfig {
	return LODConfig{
		LevelCount:         3,
		ReductionFactor:    0.5,
		MinTriangleCount:   100,
		DistanceThresholds: []float64{0, 10, 30, 100},
	}
}

// BevyLODConfig returns distance thresholds tuned for Bevy scenes.
func BevyLODConfig() LODConfig {
	return LODConfig{
		LevelCount:         3,
		ReductionFactor:    0.5,
		MinTriangleCount:   100,
		DistanceThresholds: []float64{0, 15, 50, 150},
	}
}

// Validate checks the LOD configuration.
func (c LODConfig) Validate() error {
	if c.LevelCount > 10 {
		slog.Warn("unusually high LOD count", "level_count", c.LevelCount)
	}
	if c.ReductionFactor <= 0 || c.ReductionFactor >= 1 {
		return &Error{
			Code:   ErrCodeInvalidLODConfig,
			Reason: fmt.Sprintf("reduction_factor %v must be in (0.0, 1.0)", c.ReductionFactor),
		}
	}
	if c.MinTriangleCount == 0 {
		return &Error{Code: ErrCodeInvalidLODConfig, Reason: "min_triangle_count must be > 0"}
	}
	for i := 1; i < len(c.DistanceThresholds); i++ {
		if c.DistanceThresholds[i-1] >= c.DistanceThresholds[i] {
			return &Error{
				Code:   ErrCodeInvalidLODConfig,
				Reason: "distance_thresholds must be in ascending order",
			}
		}
	}
	return nil
}

// MaterialSystem selects the material model.
type MaterialSystem string

const (
	MaterialPBR    MaterialSystem = "pbr"
	MaterialLegacy MaterialSystem = "legacy"
)

// MaterialConfig controls material and texture generation.
type MaterialConfig struct {
	System                    MaterialSystem `json:"system"`
	GenerateTextures          bool           `json:"generate_textures"`
	TextureResolution         uint32         `json:"texture_resolution"` // power of 2
	GenerateNormalMaps        bool           `json:"generate_normal_maps"`
	GenerateAOMaps            bool           `json:"generate_ao_maps"`
	GenerateMetallicRoughness bool           `json:"generate_metallic_roughness"`
	BaseColor                 *[3]float64    `json:"base_color,omitempty"` // RGB in [0, 1]
	Roughness                 float64        `json:"roughness"`            // [0, 1]
	Metallic                  float64        `json:"metallic"`             // [0, 1]
}

// DefaultMaterialConfig returns a PBR config with 2048px textures.
func DefaultMaterialConfig() MaterialConfig {
	return MaterialConfig{
		System:                    MaterialPBR,
		GenerateTextures:          true,
		TextureResolution:         2048,
		GenerateNormalMaps:        true,
		GenerateAOMaps:            true,
		GenerateMetallicRoughness: true,
		Roughness:                 0.7,
		Metallic:                  0.0,
	}
}

// BevyMaterialConfig returns the PBR workflow Bevy expects, with a
// resolution balanced for games.
func BevyMaterialConfig() MaterialConfig {
	c := DefaultMaterialConfig()
	c.TextureResolution = 1024
	return c
}

// Validate checks the material configuration.
func (c MaterialConfig) Validate() error {
	if c.GenerateTextures {
		if c.TextureResolution == 0 || c.TextureResolution&(c.TextureResolution-1) != 0 {
			return &Error{
				Code:   ErrCodeInvalidMaterialConfig,
				Reason: fmt.Sprintf("texture_resolution %d is not a power of 2", c.TextureResolution),
			}
		}
		if c.TextureResolution < 256 || c.TextureResolution > 8192 {
			slog.Warn("unusual texture resolution", "resolution", c.TextureResolution)
		}
	}
	if c.Roughness < 0 || c.Roughness > 1 {
		return &Error{
			Code:   ErrCodeInvalidMaterialConfig,
			Reason: fmt.Sprintf("roughness %v must be in [0.0, 1.0]", c.Roughness),
		}
	}
	if c.Metallic < 0 || c.Metallic > 1 {
		return &Error{
			Code:   ErrCodeInvalidMaterialConfig,
			Reason: fmt.Sprintf("metallic %v must be in [0.0, 1.0]", c.Metallic),
		}
	}
	if c.BaseColor != nil {
		for i, v := range c.BaseColor {
			if v < 0 || v > 1 {
				return &Error{
					Code:   ErrCodeInvalidMaterialConfig,
					Reason: fmt.Sprintf("base_color[%d] = %v must be in [0.0, 1.0]", i, v),
				}
			}
		}
	}
	return nil
}

// NamingConfig controls asset filename generation.
type NamingConfig struct {
	Prefix             string `json:"prefix"`
	IncludeSessionID   bool   `json:"include_session_id"`
	IncludeVariationID bool   `json:"include_variation_id"`
	Separator          string `json:"separator"`
	Lowercase          bool   `json:"lowercase"`
}

// DefaultNamingConfig returns lowercase names with the variation id,
// no prefix.
func DefaultNamingConfig() NamingConfig {
	return NamingConfig{
		IncludeVariationID: true,
		Separator:          "_",
		Lowercase:          true,
	}
}

// invalidFilenameChars are rejected in prefixes and stripped from user
// labels.
const invalidFilenameChars = `/\:*?"<>|`

// Filename builds the output filename from a user label and variation
// id. The label is NFC-normalized first so the same visible label
// always produces the same bytes on disk, regardless of how the input
// method composed it.
func (n NamingConfig) Filename(userLabel, variationID, extension string) string {
	label := norm.NFC.String(userLabel)
	label = strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidFilenameChars, r) {
			return -1
		}
		return r
	}, label)

	var parts []string
	if n.Prefix != "" {
		parts = append(parts, n.Prefix)
	}
	if label != "" {
		parts = append(parts, label)
	}
	if n.IncludeVariationID {
		parts = append(parts, variationID)
	}

	name := strings.Join(parts, n.Separator)
	if n.Lowercase {
		name = strings.ToLower(name)
	}
	return name + "." + extension
}

// Validate checks the naming configuration.
func (n NamingConfig) Validate() error {
	if strings.ContainsAny(n.Prefix, invalidFilenameChars) {
		return &Error{
			Code:   ErrCodeInvalidNamingConfig,
			Reason: fmt.Sprintf("prefix %q contains an invalid filename character", n.Prefix),
		}
	}
	if len(n.Separator) > 5 {
		slog.Warn("unusually long filename separator", "separator", n.Separator)
	}
	return nil
}

// Config is the complete export configuration handed to the export
// pipeline together with one approved design.
type Config struct {
	Format   Format         `json:"format"`
	Engine   Engine         `json:"target_engine"`
	LOD      *LODConfig     `json:"lod_config,omitempty"`
	Material MaterialConfig `json:"material_config"`
	Naming   NamingConfig   `json:"naming"`
}

// Bevy returns the preset for the Bevy game engine, the primary
// target: glTF, tuned LODs, PBR materials, lowercase names.
func Bevy() Config {
	lod := BevyLODConfig()
	return Config{
		Format:   FormatGLTF,
		Engine:   EngineBevy,
		LOD:      &lod,
		Material: BevyMaterialConfig(),
		Naming:   DefaultNamingConfig(),
	}
}

// Unreal5 returns the preset for Unreal Engine 5: FBX with the SM
// static-mesh prefix convention.
func Unreal5() Config {
	lod := DefaultLODConfig()
	naming := DefaultNamingConfig()
	naming.Prefix = "SM"
	naming.Lowercase = false
	return Config{
		Format:   FormatFBX,
		Engine:   EngineUnreal5,
		LOD:      &lod,
		Material: DefaultMaterialConfig(),
		Naming:   naming,
	}
}

// Unity returns the preset for the Unity engine.
func Unity() Config {
	lod := DefaultLODConfig()
	return Config{
		Format:   FormatFBX,
		Engine:   EngineUnity,
		LOD:      &lod,
		Material: DefaultMaterialConfig(),
		Naming:   DefaultNamingConfig(),
	}
}

// WebPreview returns a preset for in-browser preview: glTF, no LODs,
// smaller textures.
func WebPreview() Config {
	material := DefaultMaterialConfig()
	material.TextureResolution = 1024
	naming := DefaultNamingConfig()
	naming.Prefix = "preview"
	return Config{
		Format:   FormatGLTF,
		Engine:   EngineGeneric,
		Material: material,
		Naming:   naming,
	}
}

// Preset resolves a preset by name. The set is closed.
func Preset(name string) (Config, error) {
	switch name {
	case "bevy":
		return Bevy(), nil
	case "unreal5", "unreal_engine_5":
		return Unreal5(), nil
	case "unity":
		return Unity(), nil
	case "web", "web_preview":
		return WebPreview(), nil
	}
	return Config{}, fmt.Errorf("unknown export preset %q", name)
}

// Validate checks the whole configuration, including cross-field
// constraints.
func (c Config) Validate() error {
	if c.LOD != nil {
		if !c.Format.SupportsLOD() {
			return &Error{
				Code:   ErrCodeIncompatibleSettings,
				Reason: fmt.Sprintf("%s format does not support LOD generation", c.Format),
			}
		}
		if err := c.LOD.Validate(); err != nil {
			return err
		}
	}
	if err := c.Material.Validate(); err != nil {
		return err
	}
	return c.Naming.Validate()
}

// OutputPath returns the output file path for an approved asset.
func (c Config) OutputPath(baseDir, userLabel, variationID string) string {
	return filepath.Join(baseDir, c.Naming.Filename(userLabel, variationID, c.Format.Extension()))
}
