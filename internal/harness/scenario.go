package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/forge/internal/param"
)

// Scenario defines a workflow test scenario: a fresh session driven
// through a sequence of steps, with expected error codes checked per
// step and the resulting trace compared against a golden snapshot.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// AssetClass is the wire name of the session's asset class.
	AssetClass string `yaml:"asset_class"`

	// BaseSeed seeds the session. Variation ids in steps and golden
	// files are derived from this value, so it must be explicit.
	BaseSeed uint64 `yaml:"base_seed"`

	// Steps is the workflow to execute, in order.
	Steps []Step `yaml:"steps"`
}

// Step is one session operation in a scenario.
type Step struct {
	// Op selects the operation: intent, adjust, generate, append,
	// approve.
	Op string `yaml:"op"`

	// Text is the intent line (op: intent).
	Text string `yaml:"text,omitempty"`

	// Delta holds sparse parameter adjustments keyed by parameter name
	// (op: adjust).
	Delta map[string]float64 `yaml:"delta,omitempty"`

	// Count is the number of variations to produce (op: generate,
	// append).
	Count uint64 `yaml:"count,omitempty"`

	// Intent is the intent text snapshotted into generated specs
	// (op: generate, append).
	Intent string `yaml:"intent,omitempty"`

	// Variation is the variation id to approve (op: approve).
	Variation string `yaml:"variation,omitempty"`

	// Approval dimensions in centimeters (op: approve).
	HeightCm float64 `yaml:"height_cm,omitempty"`
	WidthCm  float64 `yaml:"width_cm,omitempty"`
	DepthCm  float64 `yaml:"depth_cm,omitempty"`

	// Label is the optional user label for the approval (op: approve).
	Label string `yaml:"label,omitempty"`

	// ExpectError is the error code the step must fail with. Empty
	// means the step must succeed.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Step operation constants.
const (
	OpIntent   = "intent"
	OpAdjust   = "adjust"
	OpGenerate = "generate"
	OpAppend   = "append"
	OpApprove  = "approve"
)

// deltaFields is the set of parameter names a step delta may address.
var deltaFields = map[string]bool{
	"height_scale":      true,
	"extrusion_depth":   true,
	"bevel_amount":      true,
	"symmetry_break":    true,
	"erosion_intensity": true,
	"detail_density":    true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "step:" vs "steps:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if _, err := param.ParseAssetClass(s.AssetClass); err != nil {
		return fmt.Errorf("asset_class: %w", err)
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step based on its op.
func validateStep(index int, st *Step) error {
	switch st.Op {
	case OpIntent:
		// Empty text is allowed so scenarios can exercise the
		// EMPTY_INTENT rejection path.
	case OpAdjust:
		if len(st.Delta) == 0 {
			return fmt.Errorf("steps[%d]: delta is required for adjust", index)
		}
		for name := range st.Delta {
			if !deltaFields[name] {
				return fmt.Errorf("steps[%d]: unknown delta field %q", index, name)
			}
		}
	case OpGenerate, OpAppend:
		if st.Count == 0 {
			return fmt.Errorf("steps[%d]: count is required for %s", index, st.Op)
		}
	case OpApprove:
		if st.Variation == "" {
			return fmt.Errorf("steps[%d]: variation is required for approve", index)
		}
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, st.Op)
	}

	return nil
}

// toDelta converts a step's delta map into a sparse parameter delta.
func (st *Step) toDelta() param.Delta {
	var d param.Delta
	for name, v := range st.Delta {
		v := v
		switch name {
		case "height_scale":
			d.HeightScale = &v
		case "extrusion_depth":
			d.ExtrusionDepth = &v
		case "bevel_amount":
			d.BevelAmount = &v
		case "symmetry_break":
			d.SymmetryBreak = &v
		case "erosion_intensity":
			d.ErosionIntensity = &v
		case "detail_density":
			d.DetailDensity = &v
		}
	}
	return d
}
