package config

import (
	"github.com/Mahdiglm/draugr-deploy/schema"
)

// SchemaValidator validates configuration against the generated JSON Schema.
type SchemaValidator struct {
	validator *schema.Validator
}

// NewSchemaValidator compiles the schema produced by GenerateSchema.
func NewSchemaValidator() (*SchemaValidator, error) {
	data, err := GenerateSchema()
	if err != nil {
		return nil, err
	}
	validator, err := schema.NewValidator("draugr.json", data)
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{validator: validator}, nil
}

// Validate validates the core sections of cfg. Extensions are skipped.
func (v *SchemaValidator) Validate(cfg *Config) error {
	core := struct {
		Publish PublishSection `json:"publish"`
		Install InstallSection `json:"install"`
		State   StateSection   `json:"state"`
	}{cfg.Publish, cfg.Install, cfg.State}
	return v.validator.Validate(core)
}
