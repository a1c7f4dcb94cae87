package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot is the serialized form of a scenario execution, compared
// byte-for-byte against a golden file. Field order is fixed by the
// struct, so marshaling is deterministic.
type Snapshot struct {
	ScenarioName string       `json:"scenario_name"`
	AssetClass   string       `json:"asset_class"`
	BaseSeed     uint64       `json:"base_seed"`
	Trace        []TraceEvent `json:"trace"`
	Final        FinalState   `json:"final"`
}

// RunWithGolden executes a scenario and compares the snapshot against
// a golden file at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if the scenario execution itself fails; expectation
// mismatches and snapshot drift are reported through t.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}

	snapshot := Snapshot{
		ScenarioName: scenario.Name,
		AssetClass:   scenario.AssetClass,
		BaseSeed:     scenario.BaseSeed,
		Trace:        result.Trace,
		Final:        result.Final,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
