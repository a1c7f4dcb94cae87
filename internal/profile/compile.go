// Package profile compiles CUE-authored style profiles into project
// style profiles and per-class parameter overrides.
//
// Profiles are authored as a single CUE struct:
//
//	profile: {
//		name:        "dark_keep"
//		base:        "dark_fantasy" // optional preset to start from
//		style: {
//			texture_style:  "realistic"
//			edge_sharpness: 0.2
//			aesthetic: wear_tendency: 0.9
//		}
//		class_overrides: pillar: height_scale: 1.8
//	}
//
// Scalar override values are target values for the named parameter,
// applied on top of the default set and clamped.
package profile

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"

	"github.com/roach88/forge/internal/param"
	"github.com/roach88/forge/internal/project"
)

// CompileError reports a profile compilation failure with its CUE
// source position when available.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Compiled is the result of compiling one profile file.
type Compiled struct {
	Name           string
	Style          project.StyleProfile
	ClassOverrides project.ClassOverrides
}

// LoadFile reads and compiles a profile CUE file.
func LoadFile(path string) (*Compiled, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load profile: read %s: %w", path, err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("load profile: parse %s: %w", path, err)
	}

	return Compile(v.LookupPath(cue.ParsePath("profile")))
}

// Compile parses a CUE value holding the profile struct.
func Compile(v cue.Value) (*Compiled, error) {
	if !v.Exists() {
		return nil, &CompileError{Field: "profile", Message: "profile struct is required"}
	}
	if err := v.Err(); err != nil {
		return nil, &CompileError{Field: "profile", Message: err.Error(), Pos: v.Pos()}
	}

	c := &Compiled{ClassOverrides: project.ClassOverrides{}}

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return nil, &CompileError{Field: "name", Message: "name is required", Pos: v.Pos()}
	}
	name, err := nameVal.String()
	if err != nil {
		return nil, &CompileError{Field: "name", Message: err.Error(), Pos: nameVal.Pos()}
	}
	c.Name = name

	c.Style, err = parseStyle(v)
	if err != nil {
		return nil, err
	}

	if err := parseClassOverrides(v, c.ClassOverrides); err != nil {
		return nil, err
	}

	if err := c.Style.Validate(); err != nil {
		return nil, &CompileError{Field: "style", Message: err.Error(), Pos: v.Pos()}
	}

	return c, nil
}

// basePreset resolves the optional base preset name.
func basePreset(name string) (project.StyleProfile, error) {
	switch name {
	case "", "default":
		return project.DefaultStyle(), nil
	case "minecraft":
		return project.Minecraft(), nil
	case "dark_fantasy":
		return project.DarkFantasy(), nil
	}
	return project.StyleProfile{}, fmt.Errorf("unknown base preset %q", name)
}

func parseStyle(v cue.Value) (project.StyleProfile, error) {
	base := ""
	if bv := v.LookupPath(cue.ParsePath("base")); bv.Exists() {
		s, err := bv.String()
		if err != nil {
			return project.StyleProfile{}, &CompileError{Field: "base", Message: err.Error(), Pos: bv.Pos()}
		}
		base = s
	}
	style, err := basePreset(base)
	if err != nil {
		return project.StyleProfile{}, &CompileError{Field: "base", Message: err.Error(), Pos: v.Pos()}
	}

	sv := v.LookupPath(cue.ParsePath("style"))
	if !sv.Exists() {
		return style, nil
	}

	if tv := sv.LookupPath(cue.ParsePath("texture_style")); tv.Exists() {
		s, err := tv.String()
		if err != nil {
			return style, &CompileError{Field: "texture_style", Message: err.Error(), Pos: tv.Pos()}
		}
		style.TextureStyle = project.TextureStyle(s)
	}
	if pv := sv.LookupPath(cue.ParsePath("pixel_size")); pv.Exists() {
		n, err := pv.Int64()
		if err != nil || n < 0 {
			return style, &CompileError{Field: "pixel_size", Message: "must be a non-negative integer", Pos: pv.Pos()}
		}
		style.PixelSize = uint32(n)
	}
	if err := parseFloat(sv, "pixel_density", &style.PixelDensity); err != nil {
		return style, err
	}
	if err := parseFloat(sv, "edge_sharpness", &style.EdgeSharpness); err != nil {
		return style, err
	}
	if nv := sv.LookupPath(cue.ParsePath("style_notes")); nv.Exists() {
		s, err := nv.String()
		if err != nil {
			return style, &CompileError{Field: "style_notes", Message: err.Error(), Pos: nv.Pos()}
		}
		style.StyleNotes = s
	}

	if av := sv.LookupPath(cue.ParsePath("aesthetic")); av.Exists() {
		if err := parseFloat(av, "geometry_complexity", &style.Aesthetic.GeometryComplexity); err != nil {
			return style, err
		}
		if err := parseFloat(av, "realism", &style.Aesthetic.Realism); err != nil {
			return style, err
		}
		if err := parseFloat(av, "wear_tendency", &style.Aesthetic.WearTendency); err != nil {
			return style, err
		}
		if err := parseFloat(av, "symmetry_preference", &style.Aesthetic.SymmetryPreference); err != nil {
			return style, err
		}
	}

	return style, nil
}

// parseFloat overwrites *dst when the field is present.
func parseFloat(v cue.Value, field string, dst *float64) error {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil
	}
	f, err := fv.Float64()
	if err != nil {
		return &CompileError{Field: field, Message: err.Error(), Pos: fv.Pos()}
	}
	*dst = f
	return nil
}

// parameter target fields accepted in class_overrides blocks.
var overrideFields = []string{
	"height_scale",
	"extrusion_depth",
	"bevel_amount",
	"symmetry_break",
	"erosion_intensity",
	"detail_density",
}

func parseClassOverrides(v cue.Value, out project.ClassOverrides) error {
	ov := v.LookupPath(cue.ParsePath("class_overrides"))
	if !ov.Exists() {
		return nil
	}

	iter, err := ov.Fields()
	if err != nil {
		return &CompileError{Field: "class_overrides", Message: err.Error(), Pos: ov.Pos()}
	}

	for iter.Next() {
		className := iter.Selector().String()
		class, err := param.ParseAssetClass(className)
		if err != nil {
			return &CompileError{
				Field:   "class_overrides",
				Message: err.Error(),
				Pos:     iter.Value().Pos(),
			}
		}

		set := param.DefaultSet()
		for _, field := range overrideFields {
			fv := iter.Value().LookupPath(cue.ParsePath(field))
			if !fv.Exists() {
				continue
			}
			target, err := fv.Float64()
			if err != nil {
				return &CompileError{Field: field, Message: err.Error(), Pos: fv.Pos()}
			}
			setTarget(&set, field, target)
		}

		out[class] = set
	}

	return nil
}

// setTarget sets one named parameter to a target value, clamped.
func setTarget(set *param.Set, field string, target float64) {
	switch field {
	case "height_scale":
		set.HeightScale.Set(target)
	case "extrusion_depth":
		set.ExtrusionDepth.Set(target)
	case "bevel_amount":
		set.BevelAmount.Set(target)
	case "symmetry_break":
		set.SymmetryBreak.Set(target)
	case "erosion_intensity":
		set.ErosionIntensity.Set(target)
	case "detail_density":
		set.DetailDensity.Set(target)
	}
}
