package param

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetClassRoundTrip(t *testing.T) {
	for _, class := range AllAssetClasses {
		data, err := json.Marshal(class)
		require.NoError(t, err)

		var back AssetClass
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, class, back)
	}
}

func TestAssetClassWireNames(t *testing.T) {
	assert.Equal(t, "arena_prop", AssetArenaProp.String())
	assert.Equal(t, "arena_wall", AssetArenaWall.String())
	assert.Equal(t, "pillar", AssetPillar.String())
	assert.Equal(t, "debris", AssetDebris.String())
}

func TestAssetClassRejectsUnknown(t *testing.T) {
	var class AssetClass
	err := json.Unmarshal([]byte(`"castle"`), &class)
	assert.Error(t, err)

	_, err = ParseAssetClass("ArenaProp") // debug-format names are not wire names
	assert.Error(t, err)
}

func TestAssetClassMarshalRejectsInvalidValue(t *testing.T) {
	_, err := json.Marshal(AssetClass(99))
	assert.Error(t, err)
}
