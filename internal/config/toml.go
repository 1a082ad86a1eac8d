// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Plan  PlanConfig  `toml:"plan"`
	Setup SetupConfig `toml:"setup"`
}

// PlanConfig maps scheduling constants. Pointer fields distinguish "unset"
// from an explicit zero.
type PlanConfig struct {
	Gap       *int `toml:"gap"`
	Prep      *int `toml:"prep"`
	Readiness *int `toml:"readiness"`
	Lead      *int `toml:"lead"`
}

// SetupConfig maps setup selection settings.
type SetupConfig struct {
	Name  *string `toml:"name"`
	Label *string `toml:"label"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
