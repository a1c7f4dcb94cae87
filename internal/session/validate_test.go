package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCleanSession(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Validate(SchemaVersion))

	s.GenerateVariations(5, "x")
	require.NoError(t, s.Validate(SchemaVersion))

	_, err := s.ApproveVariation(s.Variations[0].VariationID,
		Dimensions{Height: 2.5, Width: 1.0, Depth: 0.5}, DefaultExportSettings(), "a")
	require.NoError(t, err)
	require.NoError(t, s.Validate(SchemaVersion))
}

func TestValidateSchemaVersionMismatch(t *testing.T) {
	s := newTestSession(t)

	err := s.Validate("2.0")
	require.Error(t, err)
	assert.Equal(t, ErrCodeSchemaVersionMismatch, CodeOf(err))
}

func TestValidateBaseInputGone(t *testing.T) {
	s := newTestSession(t)
	s.BaseInput.SourcePath = s.BaseInput.SourcePath + ".missing"

	err := s.Validate(SchemaVersion)
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidPath, CodeOf(err))
}

func TestValidateForgedParameters(t *testing.T) {
	s := newTestSession(t)
	s.BaseParams.HeightScale.Value = 99

	err := s.Validate(SchemaVersion)
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidParameters, CodeOf(err))
}

func TestValidateDuplicateVariation(t *testing.T) {
	s := newTestSession(t)
	s.GenerateVariations(2, "x")
	s.Variations = append(s.Variations, s.Variations[0])

	err := s.Validate(SchemaVersion)
	require.Error(t, err)
	assert.Equal(t, ErrCodeDuplicateVariation, CodeOf(err))
}

func TestValidateOrphanedApproval(t *testing.T) {
	s := newTestSession(t)
	s.GenerateVariations(2, "x")
	s.Approvals = append(s.Approvals, ApprovedDesign{
		ApprovedID:  "appr_0_var_9999_1",
		VariationID: "var_9999_1",
		Dimensions:  Dimensions{Height: 1, Width: 1, Depth: 1},
		Export:      DefaultExportSettings(),
	})

	err := s.Validate(SchemaVersion)
	require.Error(t, err)
	assert.Equal(t, ErrCodeOrphanedApproval, CodeOf(err))
}

func TestValidateForgedApprovalDimensions(t *testing.T) {
	s := newTestSession(t)
	s.GenerateVariations(1, "x")
	s.Approvals = append(s.Approvals, ApprovedDesign{
		ApprovedID:  "appr_0_" + s.Variations[0].VariationID,
		VariationID: s.Variations[0].VariationID,
		Dimensions:  Dimensions{Height: -1, Width: 1, Depth: 1},
		Export:      DefaultExportSettings(),
	})

	err := s.Validate(SchemaVersion)
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidDimensions, CodeOf(err))
}

func TestValidateCheckOrder(t *testing.T) {
	// Version mismatch wins over every later corruption.
	s := newTestSession(t)
	s.SchemaVersion = "0.9"
	s.BaseParams.HeightScale.Value = 99

	err := s.Validate(SchemaVersion)
	require.Error(t, err)
	assert.Equal(t, ErrCodeSchemaVersionMismatch, CodeOf(err))
}
