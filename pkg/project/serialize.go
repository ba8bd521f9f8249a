package project

import (
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Serialize converts the project into its structural form: nested
// map[string]any and []any values only, keyed like the JSON export.
func Serialize(p *Project) (map[string]any, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("serialize project: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("serialize project: %w", err)
	}
	return m, nil
}

// Deserialize rebuilds a project from its structural form and normalizes the
// topology addresses. Input produced by Serialize yields an equal project.
func Deserialize(m map[string]any) (*Project, error) {
	p := &Project{}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  p,
	})
	if err != nil {
		return nil, fmt.Errorf("deserialize project: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("deserialize project: %w", err)
	}

	p.Topology.NormalizeAddresses()
	return p, nil
}
