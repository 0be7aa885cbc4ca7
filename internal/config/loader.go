package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "lanes.yaml"

// LoadLanes loads the lane runner configuration over the embedded defaults.
func LoadLanes(customPath string) (LanesConfig, error) {
	return LoadLanesOver(EmbeddedLanesConfig(), customPath)
}

// LoadLanesOver loads the lane runner configuration on top of base.
// Search order: customPath -> ~/.lanes/configs/lanes.yaml -> ./configs/lanes.yaml -> base.
// Fields missing from a file keep their base values. Environment
// overrides are applied last and the result is validated.
func LoadLanesOver(base LanesConfig, customPath string) (LanesConfig, error) {
	cfg := base

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return finish(cfg)
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return finish(cfg)
			}
			cfg = base
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return finish(cfg)
		}
		cfg = base
	}

	return finish(cfg)
}

// EmbeddedLanesConfig parses the embedded default file, falling back to
// DefaultLanesConfig if it does not parse.
func EmbeddedLanesConfig() LanesConfig {
	cfg := DefaultLanesConfig()
	if err := yaml.Unmarshal(defaultLanesYAML, &cfg); err != nil {
		return DefaultLanesConfig()
	}
	return cfg
}

// Locate returns the config file LoadLanes would read for customPath, or
// false when only the embedded defaults apply.
func Locate(customPath string) (string, bool) {
	if customPath != "" {
		return customPath, true
	}
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// finish applies environment overrides and validates.
func finish(cfg LanesConfig) (LanesConfig, error) {
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields tagged with `env` from the environment
// (LANES_SPEED, LANES_SPAWN_CHANCE, LANES_LAUNCH_VELOCITY, LANES_FALL_FLOOR).
// Unset variables leave the current values untouched.
func ApplyEnv(cfg *LanesConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lanes", "configs", filename)
}
