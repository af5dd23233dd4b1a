package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/lens/errors"
)

// configFileNames are the files recognized during discovery, in preference
// order within a directory.
var configFileNames = []string{"lens.yml", "lens.yaml", "lens.toml"}

// FindConfigFile walks up from startDir looking for a lens config file,
// then falls back to the user config directory (~/.config/lens/). Returns
// a CONFIG_NOT_FOUND error when no file exists anywhere on the path.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if userDir, err := os.UserConfigDir(); err == nil {
		for _, name := range configFileNames {
			candidate := filepath.Join(userDir, "lens", name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}

	return "", errors.ConfigNotFound(filepath.Join(startDir, configFileNames[0]))
}

// Load reads and decodes a single config file. The format is chosen by
// extension: .toml decodes with go-toml, everything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file")
	}

	var cfg Config
	if strings.HasSuffix(path, ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.ConfigInvalid(err.Error()).WithDetail("path", path)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.ConfigInvalid(err.Error()).WithDetail("path", path)
		}
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadDefault discovers and loads the nearest config file. When none is
// found a default-valued Config is returned rather than an error, so every
// component can run unconfigured.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	path, err := FindConfigFile(cwd)
	if err != nil {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg, nil
	}

	return Load(path)
}
