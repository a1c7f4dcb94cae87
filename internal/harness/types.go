package harness

// TraceEvent is one entry in a scenario's execution trace.
//
// Session ids are deliberately absent: they are random per run, and
// the trace must be byte-identical across runs for golden comparison.
type TraceEvent struct {
	Seq int64  `json:"seq"`
	Op  string `json:"op"`

	// Iteration is the intent ordinal assigned (op: intent).
	Iteration *uint32 `json:"iteration,omitempty"`

	// Variations lists the session's full variation id collection
	// after the op (op: generate, append). Listing the collection
	// rather than the fresh batch makes approval pinning visible.
	Variations []string `json:"variations,omitempty"`

	// ApprovedID is the approval id assigned (op: approve).
	ApprovedID string `json:"approved_id,omitempty"`

	// Error is the error code the step failed with, when the scenario
	// expected the failure.
	Error string `json:"error,omitempty"`
}

// FinalState summarizes the session after the last step.
type FinalState struct {
	IntentCount        int     `json:"intent_count"`
	VariationCount     int     `json:"variation_count"`
	ApprovalCount      int     `json:"approval_count"`
	NextVariationIndex uint64  `json:"next_variation_index"`
	HeightScale        float64 `json:"height_scale"`
	ExtrusionDepth     float64 `json:"extrusion_depth"`
	BevelAmount        float64 `json:"bevel_amount"`
	SymmetryBreak      float64 `json:"symmetry_break"`
	ErosionIntensity   float64 `json:"erosion_intensity"`
	DetailDensity      float64 `json:"detail_density"`
}

// Result captures a scenario execution: the event trace, the final
// session state, and any step failures.
type Result struct {
	Trace  []TraceEvent
	Final  FinalState
	Errors []string
}

// NewResult creates an empty result.
func NewResult() *Result {
	return &Result{}
}

// AddError records a step failure message.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// Passed reports whether every step behaved as the scenario expected.
func (r *Result) Passed() bool {
	return len(r.Errors) == 0
}
