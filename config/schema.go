package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// JSONSchema describes limits as an object of positive integers.
func (Limits) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "object",
		Description: "Per-file or per-pattern limits; the first key contained in a path wins",
		AdditionalProperties: &jsonschema.Schema{
			Type:    "integer",
			Minimum: json.Number("1"),
		},
	}
}

// Schema returns the JSON schema of the config file format.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
	s := r.Reflect(&File{})
	s.Title = "mdtoken configuration"
	s.Description = "Token limits for markdown files (" + DefaultFileName + ")"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
