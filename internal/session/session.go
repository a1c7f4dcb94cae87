// Package session implements the durable unit of creative work: one
// base input, its parameter history, generated variations, and
// approvals.
//
// A session moves through three observable states: empty (no
// variations, no approvals), previewing (variations populated), and
// reviewed (at least one approval). The transitions are not exclusive;
// generating a new batch returns a reviewed session to previewing
// while its approvals remain valid.
//
// Sessions are single-threaded value state. No method blocks, spawns
// work, or takes a context; a hosting application that wants
// concurrent access must serialize it externally, one exclusive owner
// per call.
package session

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/forge/internal/param"
	"github.com/roach88/forge/internal/variation"
)

// FileExt is the recommended suffix for saved session files.
const FileExt = "forge.json"

// SchemaVersion is the engine's current session schema version.
// Validate and Load take the expected version as an explicit argument
// so multiple schema generations can coexist in one process; this
// constant is only the current default.
const SchemaVersion = param.SchemaVersion

// Session aggregates one base input reference, one base seed, the
// current parameter set, an append-only intent history, the current
// variation batch, and an append-only approval list. The session is
// the exclusive owner and sole mutator of all four collections.
type Session struct {
	SessionID     uuid.UUID        `json:"session_id"`
	AssetClass    param.AssetClass `json:"asset_class"`
	SchemaVersion string           `json:"schema_version"`

	BaseInput BaseInputRef `json:"base_input"`

	BaseSeed   param.Seed `json:"base_seed"`
	BaseParams param.Set  `json:"base_params"`

	IntentHistory []IntentEntry `json:"intent_history"`

	// Variations holds the most recently generated batch for preview
	// selection, plus any older specs still pinned by approvals.
	Variations []variation.Spec `json:"variations"`

	// Approvals are designs ready for 3D generation and export.
	Approvals []ApprovedDesign `json:"approvals"`

	// NextVariationIndex is the first batch index the next append will
	// use. It only ever grows across appends, which is what keeps
	// variation IDs unique across independently generated batches.
	NextVariationIndex uint64 `json:"next_variation_index"`

	Notes string `json:"notes,omitempty"`
}

// New creates a session with a fresh id and default parameters. It
// fails with INVALID_PATH if the base input's referenced resource does
// not exist.
func New(assetClass param.AssetClass, baseInput BaseInputRef, baseSeed param.Seed) (*Session, error) {
	if err := checkBaseInput(baseInput); err != nil {
		return nil, err
	}

	s := &Session{
		SessionID:     uuid.New(),
		AssetClass:    assetClass,
		SchemaVersion: SchemaVersion,
		BaseInput:     baseInput,
		BaseSeed:      baseSeed,
		BaseParams:    param.DefaultSet(),
		IntentHistory: []IntentEntry{},
		Variations:    []variation.Spec{},
		Approvals:     []ApprovedDesign{},
	}

	slog.Info("session created",
		"session_id", s.SessionID,
		"asset_class", assetClass.String(),
		"base_seed", baseSeed.String())

	return s, nil
}

func checkBaseInput(ref BaseInputRef) error {
	if _, err := os.Stat(ref.SourcePath); err != nil {
		return &Error{
			Code:    ErrCodeInvalidPath,
			Message: "base input does not resolve",
			Path:    ref.SourcePath,
			Err:     err,
		}
	}
	return nil
}

// PushIntent appends an intent line with the next sequential iteration
// number and returns that number. Blank text fails with EMPTY_INTENT.
func (s *Session) PushIntent(text string) (uint32, error) {
	if strings.TrimSpace(text) == "" {
		return 0, newError(ErrCodeEmptyIntent, "intent text is empty")
	}

	iter := uint32(len(s.IntentHistory))
	s.IntentHistory = append(s.IntentHistory, IntentEntry{Iteration: iter, Text: text})
	return iter, nil
}

// ApplyBaseDelta applies a sparse additive delta to the session's base
// parameters. It affects only future variation generation; existing
// spec snapshots are immutable.
func (s *Session) ApplyBaseDelta(d param.Delta) {
	s.BaseParams.ApplyDelta(d)
	slog.Debug("base parameter delta applied", "session_id", s.SessionID)
}

// GenerateVariations replaces the current batch wholesale with count
// fresh specs at indices 0..count-1 and advances the append counter
// past them.
//
// Discarding a non-empty batch is information, not an error: a warning
// is logged and any spec still referenced by an approval is retained
// after the fresh batch, so prior approvals always resolve.
func (s *Session) GenerateVariations(count uint64, intentText string) {
	if len(s.Variations) > 0 {
		slog.Warn("discarding existing variation batch",
			"session_id", s.SessionID,
			"discarded", len(s.Variations))
	}

	batch := variation.GenerateBatch(
		s.SessionID, s.AssetClass, s.BaseSeed, s.BaseParams, intentText, 0, count)

	batch = append(batch, s.pinnedByApprovals(batch)...)

	s.Variations = batch
	// The counter never rewinds: a pinned approval may reference an
	// index past count, and a later append must not regenerate it.
	s.NextVariationIndex = max(s.NextVariationIndex, count)

	slog.Info("variation batch generated",
		"session_id", s.SessionID,
		"count", count)
}

// AppendVariations generates count fresh specs at the next sequential
// indices and adds them to the existing collection. The monotonic
// per-session index guarantees merged IDs stay unique no matter how
// replace and append calls are interleaved.
func (s *Session) AppendVariations(count uint64, intentText string) {
	batch := variation.GenerateBatch(
		s.SessionID, s.AssetClass, s.BaseSeed, s.BaseParams, intentText,
		s.NextVariationIndex, count)

	s.Variations = append(s.Variations, batch...)
	s.NextVariationIndex += count

	slog.Info("variation batch appended",
		"session_id", s.SessionID,
		"count", count,
		"total", len(s.Variations))
}

// pinnedByApprovals returns the current specs that approvals still
// reference and that the fresh batch did not reproduce. Identical IDs
// can only come from an identical index and seed, in which case the
// fresh spec supersedes the old snapshot.
func (s *Session) pinnedByApprovals(fresh []variation.Spec) []variation.Spec {
	if len(s.Approvals) == 0 {
		return nil
	}

	freshIDs := make(map[string]bool, len(fresh))
	for _, spec := range fresh {
		freshIDs[spec.VariationID] = true
	}

	approved := make(map[string]bool, len(s.Approvals))
	for _, a := range s.Approvals {
		approved[a.VariationID] = true
	}

	var pinned []variation.Spec
	for _, spec := range s.Variations {
		if approved[spec.VariationID] && !freshIDs[spec.VariationID] {
			pinned = append(pinned, spec)
			freshIDs[spec.VariationID] = true // guard against duplicates in the old batch
		}
	}

	if len(pinned) > 0 {
		slog.Info("retained approval-pinned variations",
			"session_id", s.SessionID,
			"pinned", len(pinned))
	}

	return pinned
}

// FindVariation returns the current spec with the given id, or nil.
func (s *Session) FindVariation(variationID string) *variation.Spec {
	for i := range s.Variations {
		if s.Variations[i].VariationID == variationID {
			return &s.Variations[i]
		}
	}
	return nil
}

// ApproveVariation binds a chosen variation to an immutable
// ApprovedDesign and returns the new approved id.
//
// Fails with INVALID_DIMENSIONS if any dimension is non-positive or
// non-finite, UNKNOWN_VARIATION if no current variation carries the
// id, and DUPLICATE_APPROVAL if the id is already approved.
func (s *Session) ApproveVariation(variationID string, dims Dimensions, export ExportSettings, userLabel string) (string, error) {
	if !dims.IsValid() {
		return "", newError(ErrCodeInvalidDimensions, "dimensions must be positive finite numbers")
	}

	if s.FindVariation(variationID) == nil {
		return "", &Error{
			Code:        ErrCodeUnknownVariation,
			Message:     "no current variation with this id",
			VariationID: variationID,
		}
	}

	for _, a := range s.Approvals {
		if a.VariationID == variationID {
			return "", &Error{
				Code:        ErrCodeDuplicateApproval,
				Message:     "variation already approved",
				VariationID: variationID,
			}
		}
	}

	approvedID := ApprovedID(len(s.Approvals), variationID)
	s.Approvals = append(s.Approvals, ApprovedDesign{
		ApprovedID:  approvedID,
		VariationID: variationID,
		Dimensions:  dims,
		Export:      export,
		UserLabel:   userLabel,
	})

	slog.Info("variation approved",
		"session_id", s.SessionID,
		"variation_id", variationID,
		"approved_id", approvedID)

	return approvedID, nil
}

// FindApproval returns the approval with the given id, or nil.
func (s *Session) FindApproval(approvedID string) *ApprovedDesign {
	for i := range s.Approvals {
		if s.Approvals[i].ApprovedID == approvedID {
			return &s.Approvals[i]
		}
	}
	return nil
}

// String summarizes the session for logs and CLI text output.
func (s *Session) String() string {
	return fmt.Sprintf("session %s (%s): %d intents, %d variations, %d approvals",
		s.SessionID, s.AssetClass, len(s.IntentHistory), len(s.Variations), len(s.Approvals))
}
