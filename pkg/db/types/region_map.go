package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Rect is a normalized screen rectangle. All fields are fractions of the
// capture resolution in [0,1].
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// RegionMap maps named capture regions to their rectangles, persisted as JSONB.
type RegionMap map[string]Rect

// Value marshals the map into JSON for Postgres.
func (m RegionMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the map.
func (m *RegionMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("region map: unsupported scan type %T", value)
	}

	result := make(RegionMap)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*m = result
	return nil
}
