package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, `
name: minimal
description: generates one variation
asset_class: pillar
base_seed: 42
steps:
  - op: generate
    count: 1
    intent: "test"
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "minimal", s.Name)
	assert.Equal(t, "pillar", s.AssetClass)
	assert.Equal(t, uint64(42), s.BaseSeed)
	require.Len(t, s.Steps, 1)
	assert.Equal(t, OpGenerate, s.Steps[0].Op)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: has a typo
asset_class: pillar
base_seed: 1
step:
  - op: generate
    count: 1
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step")
}

func TestLoadScenario_RequiredFields(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing name",
			yaml: `
description: d
asset_class: pillar
base_seed: 1
steps:
  - op: generate
    count: 1
`,
			wantErr: "name is required",
		},
		{
			name: "bad asset class",
			yaml: `
name: n
description: d
asset_class: spaceship
base_seed: 1
steps:
  - op: generate
    count: 1
`,
			wantErr: "asset_class",
		},
		{
			name: "empty steps",
			yaml: `
name: n
description: d
asset_class: pillar
base_seed: 1
steps: []
`,
			wantErr: "steps list is required",
		},
		{
			name: "unknown op",
			yaml: `
name: n
description: d
asset_class: pillar
base_seed: 1
steps:
  - op: teleport
`,
			wantErr: "unknown op",
		},
		{
			name: "adjust without delta",
			yaml: `
name: n
description: d
asset_class: pillar
base_seed: 1
steps:
  - op: adjust
`,
			wantErr: "delta is required",
		},
		{
			name: "adjust with unknown field",
			yaml: `
name: n
description: d
asset_class: pillar
base_seed: 1
steps:
  - op: adjust
    delta:
      glow_intensity: 0.5
`,
			wantErr: "unknown delta field",
		},
		{
			name: "generate without count",
			yaml: `
name: n
description: d
asset_class: pillar
base_seed: 1
steps:
  - op: generate
`,
			wantErr: "count is required",
		},
		{
			name: "approve without variation",
			yaml: `
name: n
description: d
asset_class: pillar
base_seed: 1
steps:
  - op: approve
    height_cm: 1
    width_cm: 1
    depth_cm: 1
`,
			wantErr: "variation is required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestStepToDelta(t *testing.T) {
	st := Step{
		Op: OpAdjust,
		Delta: map[string]float64{
			"height_scale":   0.3,
			"detail_density": -0.1,
		},
	}

	d := st.toDelta()
	require.NotNil(t, d.HeightScale)
	assert.Equal(t, 0.3, *d.HeightScale)
	require.NotNil(t, d.DetailDensity)
	assert.Equal(t, -0.1, *d.DetailDensity)
	assert.Nil(t, d.ExtrusionDepth)
	assert.Nil(t, d.BevelAmount)
	assert.Nil(t, d.SymmetryBreak)
	assert.Nil(t, d.ErosionIntensity)
}
