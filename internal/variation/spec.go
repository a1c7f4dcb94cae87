// Package variation produces deterministic variation specs from a base
// seed and parameter set. Specs are immutable once created: later
// parameter edits affect only future batches, never past snapshots.
package variation

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/forge/internal/param"
)

// Spec is one deterministically generated candidate configuration
// offered for preview. All fields are fixed at generation time.
//
// In v1 every spec in a batch shares identical parameters; only the
// seed differs. The seed is what makes downstream geometry generation
// (out of scope here) produce distinct results.
type Spec struct {
	VariationID   string           `json:"variation_id"`
	SessionID     uuid.UUID        `json:"base_session_id"`
	AssetClass    param.AssetClass `json:"asset_class"`
	SchemaVersion string           `json:"schema_version"`
	Seed          param.Seed       `json:"seed"`
	Params        param.Set        `json:"params"`
	IntentText    string           `json:"intent_text"`
}

// ID synthesizes the variation identifier for a batch index and its
// derived seed. The format is part of the persisted-session contract.
func ID(index uint64, seed param.Seed) string {
	return fmt.Sprintf("var_%04d_%d", index, seed)
}

// GenerateBatch creates count deterministic specs for indices
// [start, start+count). Each spec derives its seed from the base seed
// at its index and snapshots baseParams unchanged.
//
// An empty intent text is permitted (a regeneration with only a seed
// change has nothing new to say); it is logged, not rejected.
func GenerateBatch(
	sessionID uuid.UUID,
	assetClass param.AssetClass,
	baseSeed param.Seed,
	baseParams param.Set,
	intentText string,
	start, count uint64,
) []Spec {
	if strings.TrimSpace(intentText) == "" {
		slog.Warn("generating variations with empty intent text",
			"session_id", sessionID,
			"count", count)
	}

	specs := make([]Spec, 0, count)
	for i := start; i < start+count; i++ {
		seed := baseSeed.Derive(i)
		specs = append(specs, Spec{
			VariationID:   ID(i, seed),
			SessionID:     sessionID,
			AssetClass:    assetClass,
			SchemaVersion: param.SchemaVersion,
			Seed:          seed,
			Params:        baseParams,
			IntentText:    intentText,
		})
	}

	slog.Debug("variation batch generated",
		"session_id", sessionID,
		"start", start,
		"count", count)

	return specs
}
