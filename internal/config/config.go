package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config carries the optional file-level defaults for flags every command
// takes. All fields may be empty; flags override whatever is set here.
type Config struct {
	DefaultProfile     string `yaml:"default_profile"`
	DefaultRegion      string `yaml:"default_region"`
	DefaultInstanceARN string `yaml:"default_instance_arn"`
}

// Path returns the config file location, ~/.config/idc-audit/config.yaml.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "idc-audit", "config.yaml"), nil
}

// Load reads the config file. A missing file (or an unresolvable home
// directory) is not an error; it yields a zero config so flags and the
// environment decide everything.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return &Config{}, nil
	case err != nil:
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Merge resolves each setting as flag value over file default.
func (c *Config) Merge(profile, region, instanceARN string) (string, string, string) {
	pick := func(flag, fallback string) string {
		if flag != "" {
			return flag
		}
		return fallback
	}
	return pick(profile, c.DefaultProfile),
		pick(region, c.DefaultRegion),
		pick(instanceARN, c.DefaultInstanceARN)
}
