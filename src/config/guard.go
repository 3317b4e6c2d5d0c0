package config

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Level controls how much of the codebase gets scanned.
type Level string

const (
	LevelChanged Level = "changed"
	LevelFull    Level = "full"
)

// CheckConfig holds per-check overrides.
type CheckConfig struct {
	Enabled  *bool  `yaml:"enabled,omitempty"`
	Severity string `yaml:"severity,omitempty"` // "error" or "warning"
}

// GuardConfig holds analysis configuration.
type GuardConfig struct {
	Level        Level                  `yaml:"level"`
	CacheDir     string                 `yaml:"cache_dir"`
	TargetBranch string                 `yaml:"target_branch"`
	Exclude      []string               `yaml:"exclude"`
	Checks       map[string]CheckConfig `yaml:"checks"`

	// MinEngineVersion pins the oldest engine this config was written for.
	// The CLI refuses to run with an older engine, so a repo's conventions
	// are never half-enforced by a stale install.
	MinEngineVersion string `yaml:"min_engine_version"`
}

// DefaultGuardConfig returns production defaults.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		Level:   LevelChanged,
		Exclude: []string{},
		Checks:  map[string]CheckConfig{},
	}
}

// CheckEngineVersion verifies the running engine satisfies the config's
// min_engine_version constraint. An empty constraint always passes.
func (g GuardConfig) CheckEngineVersion(engineVersion string) error {
	if g.MinEngineVersion == "" {
		return nil
	}
	min, err := semver.NewVersion(g.MinEngineVersion)
	if err != nil {
		return fmt.Errorf("invalid min_engine_version %q: %w", g.MinEngineVersion, err)
	}
	cur, err := semver.NewVersion(engineVersion)
	if err != nil {
		return fmt.Errorf("invalid engine version %q: %w", engineVersion, err)
	}
	if cur.LessThan(min) {
		return fmt.Errorf("engine %s is older than required min_engine_version %s", cur, min)
	}
	return nil
}
