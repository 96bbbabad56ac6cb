package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/zev.yaml
var defaultZevYAML []byte

// DefaultZevConfig returns the hardcoded default configuration.
// It mirrors defaults/zev.yaml and is the fallback if the embedded file
// cannot be parsed.
func DefaultZevConfig() ZevConfig {
	return ZevConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
			SpawnY: -4,
		},
		Timing: TimingConfig{
			DropBase:      time.Second,
			DropStep:      100 * time.Millisecond,
			DropFloor:     100 * time.Millisecond,
			LinesPerLevel: 10,
		},
		Scoring: ScoringConfig{
			LineRewards:  []int{0, 100, 300, 500, 800},
			SoftDrop:     1,
			HardDropCell: 2,
		},
		Twists: TwistConfig{
			Enabled:         true,
			Chance:          0.4,
			Duration:        10 * time.Second,
			PerturbChance:   0.01,
			ScoreMultiplier: 2,
			VanishAttempts:  10,
			GhostCount:      5,
			PortalCount:     3,
			MessageTime:     3 * time.Second,
		},
	}
}

// ClassicZevConfig returns the defaults with every twist and random
// perturbation switched off.
func ClassicZevConfig() ZevConfig {
	cfg := DefaultZevConfig()
	cfg.Twists.Enabled = false
	cfg.Twists.Chance = 0
	cfg.Twists.PerturbChance = 0
	return cfg
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultZevYAML
}
