package param

import (
	"encoding/json"
	"fmt"
)

// AssetClass is the closed category of object being generated. The set
// is deliberately small in v1; extend here, not at call sites.
type AssetClass int

const (
	AssetArenaProp AssetClass = iota
	AssetArenaWall
	AssetPillar
	AssetDebris
)

// AllAssetClasses lists every class in canonical order. Iteration over
// class-keyed maps should follow this order for deterministic output.
var AllAssetClasses = []AssetClass{
	AssetArenaProp,
	AssetArenaWall,
	AssetPillar,
	AssetDebris,
}

var assetClassNames = map[AssetClass]string{
	AssetArenaProp: "arena_prop",
	AssetArenaWall: "arena_wall",
	AssetPillar:    "pillar",
	AssetDebris:    "debris",
}

// String returns the snake_case wire name.
func (a AssetClass) String() string {
	if name, ok := assetClassNames[a]; ok {
		return name
	}
	return fmt.Sprintf("asset_class(%d)", int(a))
}

// ParseAssetClass maps a wire name back to its class. Unknown names
// are an error; the set is closed.
func ParseAssetClass(name string) (AssetClass, error) {
	for class, n := range assetClassNames {
		if n == name {
			return class, nil
		}
	}
	return 0, fmt.Errorf("unknown asset class %q", name)
}

// MarshalJSON encodes the class as its snake_case name.
func (a AssetClass) MarshalJSON() ([]byte, error) {
	name, ok := assetClassNames[a]
	if !ok {
		return nil, fmt.Errorf("marshal asset class: invalid value %d", int(a))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a snake_case name, rejecting unknown values.
func (a *AssetClass) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("unmarshal asset class: %w", err)
	}
	class, err := ParseAssetClass(name)
	if err != nil {
		return err
	}
	*a = class
	return nil
}
