// Package ai parses and validates the JSON payload returned by the AI
// suggestion layer. It never invokes a model: the network side lives
// elsewhere, and this package only decides whether a payload is safe
// to hand to the session as a parameter delta.
package ai

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/roach88/forge/internal/param"
)

// Response is the accepted payload shape. The schema is strict: any
// unrecognized field rejects the whole payload, so a model that starts
// emitting extra keys fails loudly instead of being half-understood.
type Response struct {
	Adjustments param.Delta `json:"adjustments"`
	Confidence  *float64    `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
	Notes       *string     `json:"notes,omitempty"`
}

// Telemetry records metadata about the model call for diagnostics.
// It is not persisted with sessions.
type Telemetry struct {
	ModelName  string   `json:"model_name"`
	TimeTakenS float64  `json:"time_taken_s"`
	Version    string   `json:"version"`
	Warnings   []string `json:"warnings,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseResponse strictly decodes and validates an AI payload. The
// session core consumes only the Adjustments field.
func ParseResponse(data []byte) (*Response, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var resp Response
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("parse ai response: %w", err)
	}

	// Trailing garbage after the object is as suspect as an unknown field.
	if dec.More() {
		return nil, fmt.Errorf("parse ai response: trailing data after payload")
	}

	if err := validate.Struct(&resp); err != nil {
		return nil, fmt.Errorf("validate ai response: %w", err)
	}

	return &resp, nil
}
