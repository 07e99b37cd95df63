package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for the core draugr.yml sections.
// Extension sections are not part of the schema.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	type BaseConfig struct {
		Publish PublishSection `yaml:"publish,omitempty" jsonschema:"description=Overrides for the unattended deploy"`
		Install InstallSection `yaml:"install,omitempty" jsonschema:"description=Dependency installer settings"`
		State   StateSection   `yaml:"state,omitempty" jsonschema:"description=Persisted client state location"`
	}

	schema := r.Reflect(&BaseConfig{})
	schema.Title = "draugr Configuration"
	schema.Description = "Schema for the core draugr.yml properties."

	return json.MarshalIndent(schema, "", "  ")
}
