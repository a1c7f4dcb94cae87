package session

// Validate runs the full consistency check against the given expected
// schema version. It is pure and read-only: always safe to call, never
// mutates.
//
// Checks run in order and short-circuit on the first failure:
//
//  1. schema version matches expectedVersion
//  2. base input reference still resolves
//  3. every parameter is within its declared bounds
//  4. no two current variations share an id
//  5. every approval resolves to a current variation
//  6. every approval's dimensions are valid
//
// Run it before persisting and after loading; Save and Load do so
// themselves.
func (s *Session) Validate(expectedVersion string) error {
	if s.SchemaVersion != expectedVersion {
		return &Error{
			Code: ErrCodeSchemaVersionMismatch,
			Want: expectedVersion,
			Got:  s.SchemaVersion,
		}
	}

	if err := checkBaseInput(s.BaseInput); err != nil {
		return err
	}

	if err := s.BaseParams.Validate(); err != nil {
		return &Error{
			Code:    ErrCodeInvalidParameters,
			Message: "base parameters out of bounds",
			Err:     err,
		}
	}

	seen := make(map[string]bool, len(s.Variations))
	for _, spec := range s.Variations {
		if seen[spec.VariationID] {
			return &Error{
				Code:        ErrCodeDuplicateVariation,
				Message:     "duplicate variation id",
				VariationID: spec.VariationID,
			}
		}
		seen[spec.VariationID] = true

		if err := spec.Params.Validate(); err != nil {
			return &Error{
				Code:        ErrCodeInvalidParameters,
				Message:     "variation parameters out of bounds",
				VariationID: spec.VariationID,
				Err:         err,
			}
		}
	}

	for _, a := range s.Approvals {
		if !seen[a.VariationID] {
			return &Error{
				Code:        ErrCodeOrphanedApproval,
				Message:     "approval references a variation not in the current set",
				VariationID: a.VariationID,
				ApprovedID:  a.ApprovedID,
			}
		}
	}

	for _, a := range s.Approvals {
		if !a.Dimensions.IsValid() {
			return &Error{
				Code:        ErrCodeInvalidDimensions,
				Message:     "approval dimensions must be positive finite numbers",
				ApprovedID:  a.ApprovedID,
				VariationID: a.VariationID,
			}
		}
	}

	return nil
}
