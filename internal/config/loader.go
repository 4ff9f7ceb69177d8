package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SlingshotFile is the configuration file name looked up in each search location.
const SlingshotFile = "slingshot.yaml"

// LoadSlingshot loads the slingshot configuration.
// Search order: customPath -> ~/.slingshot/configs/slingshot.yaml -> ./configs/slingshot.yaml -> embedded default.
// Files only need to contain the keys they override; the rest keep default values.
func LoadSlingshot(customPath string) (SlingshotConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultSlingshotConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseSlingshot(data)
		if err != nil {
			return DefaultSlingshotConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(SlingshotFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseSlingshot(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", SlingshotFile)); err == nil {
		if cfg, err := parseSlingshot(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseSlingshot(defaultSlingshotYAML)
	if err != nil {
		return DefaultSlingshotConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseSlingshot decodes YAML over the hardcoded defaults and validates the result.
func parseSlingshot(data []byte) (SlingshotConfig, error) {
	cfg := DefaultSlingshotConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c SlingshotConfig) Validate() error {
	switch {
	case c.World.Scale <= 0:
		return fmt.Errorf("world.scale must be positive, got %v", c.World.Scale)
	case c.World.TimeStep <= 0:
		return fmt.Errorf("world.time_step must be positive, got %v", c.World.TimeStep)
	case c.World.VelocityIterations <= 0 || c.World.PositionIterations <= 0:
		return fmt.Errorf("world solver iterations must be positive")
	case c.Projectile.Radius <= 0 || c.Target.Radius <= 0:
		return fmt.Errorf("projectile and target radius must be positive")
	case c.Projectile.PerLevel < 1:
		return fmt.Errorf("projectile.per_level must be at least 1, got %d", c.Projectile.PerLevel)
	case c.Editor.BaseHeight <= 0:
		return fmt.Errorf("editor.base_height must be positive, got %v", c.Editor.BaseHeight)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".slingshot", "configs", filename)
}
