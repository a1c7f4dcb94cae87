// Package harness provides a workflow testing framework for the
// variation session engine.
//
// A scenario drives a fresh session through a sequence of steps
// (intent, adjust, generate, append, approve) and records an event
// trace plus the final session state. Because variation ids derive
// entirely from the base seed and index, the trace is byte-identical
// across runs and can be pinned with golden files.
package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/forge/internal/param"
	"github.com/roach88/forge/internal/session"
	"github.com/roach88/forge/internal/testutil"
)

// Harness executes one scenario against a live session.
type Harness struct {
	sess *session.Session
	seq  *testutil.SeqCounter
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh session with a throwaway base
// input file, so scenarios are fully isolated from one another.
//
// Run returns an error only when the harness itself cannot proceed
// (bad asset class, fixture setup failure, or a step failing in a way
// the scenario did not expect and the session cannot continue from).
// Expectation mismatches are recorded as result errors instead.
func Run(scenario *Scenario) (*Result, error) {
	class, err := param.ParseAssetClass(scenario.AssetClass)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	dir, err := os.MkdirTemp("", "forge-harness-*")
	if err != nil {
		return nil, fmt.Errorf("scenario %s: create fixture dir: %w", scenario.Name, err)
	}
	defer os.RemoveAll(dir)

	inputPath := filepath.Join(dir, "sketch.png")
	if err := os.WriteFile(inputPath, []byte("sketch"), 0o644); err != nil {
		return nil, fmt.Errorf("scenario %s: write fixture: %w", scenario.Name, err)
	}

	sess, err := session.New(class, session.BaseInputRef{
		InputType:  session.InputDrawn,
		SourcePath: inputPath,
	}, param.Seed(scenario.BaseSeed))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: create session: %w", scenario.Name, err)
	}

	h := &Harness{
		sess: sess,
		seq:  testutil.NewSeqCounter(),
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(i, &step, result); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
	}

	result.Final = h.finalState()
	return result, nil
}

// executeStep runs one step, checks its error expectation, and
// appends a trace event.
func (h *Harness) executeStep(index int, st *Step, result *Result) error {
	event := TraceEvent{
		Seq: h.seq.Next(),
		Op:  st.Op,
	}

	var stepErr error
	switch st.Op {
	case OpIntent:
		var iter uint32
		iter, stepErr = h.sess.PushIntent(st.Text)
		if stepErr == nil {
			event.Iteration = &iter
		}
	case OpAdjust:
		h.sess.ApplyBaseDelta(st.toDelta())
	case OpGenerate:
		h.sess.GenerateVariations(st.Count, st.Intent)
		event.Variations = h.variationIDs()
	case OpAppend:
		h.sess.AppendVariations(st.Count, st.Intent)
		event.Variations = h.variationIDs()
	case OpApprove:
		var approvedID string
		approvedID, stepErr = h.sess.ApproveVariation(st.Variation, session.Dimensions{
			Height: st.HeightCm,
			Width:  st.WidthCm,
			Depth:  st.DepthCm,
		}, session.DefaultExportSettings(), st.Label)
		if stepErr == nil {
			event.ApprovedID = approvedID
		}
	default:
		return fmt.Errorf("step %d: unknown op %q", index, st.Op)
	}

	switch {
	case st.ExpectError == "" && stepErr != nil:
		return fmt.Errorf("step %d (%s): unexpected failure: %w", index, st.Op, stepErr)
	case st.ExpectError != "" && stepErr == nil:
		result.AddError(fmt.Sprintf("step %d (%s): expected %s, succeeded", index, st.Op, st.ExpectError))
	case st.ExpectError != "":
		code := string(session.CodeOf(stepErr))
		if code != st.ExpectError {
			result.AddError(fmt.Sprintf("step %d (%s): expected %s, got %s", index, st.Op, st.ExpectError, code))
		}
		event.Error = code
	}

	result.Trace = append(result.Trace, event)
	return nil
}

// variationIDs snapshots the session's current variation id order.
func (h *Harness) variationIDs() []string {
	ids := make([]string, len(h.sess.Variations))
	for i, spec := range h.sess.Variations {
		ids[i] = spec.VariationID
	}
	return ids
}

func (h *Harness) finalState() FinalState {
	p := h.sess.BaseParams
	return FinalState{
		IntentCount:        len(h.sess.IntentHistory),
		VariationCount:     len(h.sess.Variations),
		ApprovalCount:      len(h.sess.Approvals),
		NextVariationIndex: h.sess.NextVariationIndex,
		HeightScale:        p.HeightScale.Value,
		ExtrusionDepth:     p.ExtrusionDepth.Value,
		BevelAmount:        p.BevelAmount.Value,
		SymmetryBreak:      p.SymmetryBreak.Value,
		ErosionIntensity:   p.ErosionIntensity.Value,
		DetailDensity:      p.DetailDensity.Value,
	}
}
