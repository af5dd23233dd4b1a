// Package config loads lens configuration from lens.yml (or lens.toml),
// discovered by walking up from the working directory with a fallback to
// the user config directory. All sections are optional; zero values give a
// usable viewer.
package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Config is the root of the lens configuration file.
type Config struct {
	// Theme selects the color theme and icon set for the TUI.
	Theme ThemeConfig `yaml:"theme" toml:"theme"`

	// Tree controls the initial state of the document tree.
	Tree TreeConfig `yaml:"tree" toml:"tree"`

	// Search sets the default matching policy for `/` searches.
	Search SearchConfig `yaml:"search" toml:"search"`

	// Extensions holds custom configuration sections that components decode
	// on demand via UnmarshalExtension (the logging section lives here).
	Extensions map[string]interface{} `yaml:"extensions" toml:"extensions"`
}

// ThemeConfig selects the viewer's appearance.
type ThemeConfig struct {
	// Name is the theme name ("kanagawa", "kanagawa-light", "terminal").
	Name string `yaml:"name" toml:"name"`
	// NerdFont enables nerd-font icons; nil means auto (on unless
	// LENS_ICONS=ascii is set).
	NerdFont *bool `yaml:"nerd_font" toml:"nerd_font"`
}

// TreeConfig controls how the document tree is built.
type TreeConfig struct {
	// StartCollapsed builds the tree with every object and array collapsed,
	// showing only the top-level entries.
	StartCollapsed bool `yaml:"start_collapsed" toml:"start_collapsed"`
}

// SearchConfig sets search defaults. Both can be toggled at runtime.
type SearchConfig struct {
	// Regex treats search terms as regular expressions by default.
	Regex bool `yaml:"regex" toml:"regex"`
	// GroupsOnly highlights only regexp capture-group contents.
	GroupsOnly bool `yaml:"groups_only" toml:"groups_only"`
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded lens.yml into the provided target struct. The target must be a
// pointer. This gives components a type-safe view of their custom section.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{}
	// into the strongly-typed target struct. We configure it to use
	// `yaml` tags for consistency.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// applyDefaults fills in values for fields the file left unset.
func (c *Config) applyDefaults() {
	if c.Theme.Name == "" {
		c.Theme.Name = "kanagawa"
	}
}
