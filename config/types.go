package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Config is the optional draugr.yml file. Every field has a built-in default,
// so a missing file and an empty file behave the same.
type Config struct {
	Publish PublishSection `yaml:"publish,omitempty" toml:"publish,omitempty" json:"publish,omitempty" jsonschema:"description=Overrides for the unattended deploy"`
	Install InstallSection `yaml:"install,omitempty" toml:"install,omitempty" json:"install,omitempty" jsonschema:"description=Dependency installer settings"`
	State   StateSection   `yaml:"state,omitempty" toml:"state,omitempty" json:"state,omitempty" jsonschema:"description=Persisted client state location"`

	// Extensions captures all other top-level keys (logging, tui, ...).
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`
}

// PublishSection overrides fields of the unattended publish configuration.
// Pointer booleans distinguish "not set" from false.
type PublishSection struct {
	Dir      string   `yaml:"dir,omitempty" toml:"dir,omitempty" json:"dir,omitempty" jsonschema:"description=Build output directory to publish"`
	Branch   string   `yaml:"branch,omitempty" toml:"branch,omitempty" json:"branch,omitempty" jsonschema:"description=Hosting branch on the remote,pattern=^[A-Za-z0-9/_.-]+$"`
	Repo     string   `yaml:"repo,omitempty" toml:"repo,omitempty" json:"repo,omitempty" jsonschema:"description=Remote repository URL"`
	Name     string   `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty" jsonschema:"description=Committer name"`
	Email    string   `yaml:"email,omitempty" toml:"email,omitempty" json:"email,omitempty" jsonschema:"description=Committer email"`
	Message  string   `yaml:"message,omitempty" toml:"message,omitempty" json:"message,omitempty" jsonschema:"description=Commit message"`
	Dotfiles *bool    `yaml:"dotfiles,omitempty" toml:"dotfiles,omitempty" json:"dotfiles,omitempty" jsonschema:"description=Include files whose name starts with a dot"`
	Silent   *bool    `yaml:"silent,omitempty" toml:"silent,omitempty" json:"silent,omitempty" jsonschema:"description=Suppress progress logging"`
	Exclude  []string `yaml:"exclude,omitempty" toml:"exclude,omitempty" json:"exclude,omitempty" jsonschema:"description=Patterns of files left out of the published tree"`
}

// InstallSection configures the dependency installer.
type InstallSection struct {
	Manager string `yaml:"manager,omitempty" toml:"manager,omitempty" json:"manager,omitempty" jsonschema:"description=Package manager executable,enum=npm,enum=yarn,enum=pnpm,enum=bun"`
	Package string `yaml:"package,omitempty" toml:"package,omitempty" json:"package,omitempty" jsonschema:"description=Package added to the project"`
}

// StateSection locates the persisted client state file.
type StateSection struct {
	Path string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty" jsonschema:"description=Path of the state file"`
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded draugr.yml into the provided target struct. The target must be a pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// A missing key leaves the target zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
