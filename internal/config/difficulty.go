package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the accepted presets in ascending difficulty.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (expected easy, normal or hard)", s)
}

// ApplySlingshotPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplySlingshotPreset(cfg *SlingshotConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Projectile.PerLevel = 5
		cfg.Target.DestroyImpulse *= 0.5
	case DifficultyHard:
		cfg.Projectile.PerLevel = 2
		cfg.Target.DestroyImpulse *= 2
	}
}
