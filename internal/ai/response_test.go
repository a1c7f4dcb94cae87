package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponseMinimal(t *testing.T) {
	resp, err := ParseResponse([]byte(`{"adjustments": {}}`))
	require.NoError(t, err)
	assert.True(t, resp.Adjustments.IsZero())
	assert.Nil(t, resp.Confidence)
	assert.Nil(t, resp.Notes)
}

func TestParseResponseFull(t *testing.T) {
	payload := `{
		"adjustments": {"erosion_intensity": 0.2, "bevel_amount": -0.05},
		"confidence": 0.85,
		"notes": "more weathering as requested"
	}`

	resp, err := ParseResponse([]byte(payload))
	require.NoError(t, err)

	require.NotNil(t, resp.Adjustments.ErosionIntensity)
	assert.Equal(t, 0.2, *resp.Adjustments.ErosionIntensity)
	require.NotNil(t, resp.Adjustments.BevelAmount)
	assert.Equal(t, -0.05, *resp.Adjustments.BevelAmount)
	assert.Nil(t, resp.Adjustments.HeightScale)

	require.NotNil(t, resp.Confidence)
	assert.Equal(t, 0.85, *resp.Confidence)
}

func TestParseResponseRejectsUnknownField(t *testing.T) {
	_, err := ParseResponse([]byte(`{"adjustments": {}, "mood": "optimistic"}`))
	assert.Error(t, err)
}

func TestParseResponseRejectsUnknownAdjustment(t *testing.T) {
	_, err := ParseResponse([]byte(`{"adjustments": {"spikiness": 0.9}}`))
	assert.Error(t, err)
}

func TestParseResponseRejectsBadConfidence(t *testing.T) {
	_, err := ParseResponse([]byte(`{"adjustments": {}, "confidence": 1.5}`))
	assert.Error(t, err)

	_, err = ParseResponse([]byte(`{"adjustments": {}, "confidence": -0.1}`))
	assert.Error(t, err)
}

func TestParseResponseRejectsTrailingData(t *testing.T) {
	_, err := ParseResponse([]byte(`{"adjustments": {}} {"adjustments": {}}`))
	assert.Error(t, err)
}
