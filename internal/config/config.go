// Package config provides YAML-based game configuration loading and
// difficulty presets for the game of Zev.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ZevConfig contains all configuration for the game of Zev.
type ZevConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Timing  TimingConfig  `yaml:"timing"`
	Scoring ScoringConfig `yaml:"scoring"`
	Twists  TwistConfig   `yaml:"twists"`
}

// BoardConfig defines the playfield dimensions and spawn position.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	SpawnY int `yaml:"spawn_y"` // Row of the piece origin at spawn; negative is above the board
}

// TimingConfig defines the gravity speed curve.
type TimingConfig struct {
	DropBase      time.Duration `yaml:"drop_base"`  // Interval at level 1
	DropStep      time.Duration `yaml:"drop_step"`  // Reduction per level
	DropFloor     time.Duration `yaml:"drop_floor"` // Fastest allowed interval
	LinesPerLevel int           `yaml:"lines_per_level"`
}

// ScoringConfig defines point awards.
type ScoringConfig struct {
	LineRewards  []int `yaml:"line_rewards"` // Indexed by lines cleared in one lock
	SoftDrop     int   `yaml:"soft_drop"`    // Per cell
	HardDropCell int   `yaml:"hard_drop"`    // Per cell
}

// TwistConfig defines the twist engine parameters.
type TwistConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Chance          float64       `yaml:"chance"`           // Probability of a twist on each spawn
	Duration        time.Duration `yaml:"duration"`         // Lifetime of an active twist
	PerturbChance   float64       `yaml:"perturb_chance"`   // Per-tick chance of a random nudge/spin
	ScoreMultiplier int           `yaml:"score_multiplier"` // Reward factor while "multiplier" is active
	VanishAttempts  int           `yaml:"vanish_attempts"`
	GhostCount      int           `yaml:"ghost_count"`
	PortalCount     int           `yaml:"portal_count"`
	MessageTime     time.Duration `yaml:"message_time"` // How long announcements stay on screen
	Disabled        []string      `yaml:"disabled"`     // Twist kinds never chosen
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyChaos  DifficultyPreset = "chaos"
)

// ParsePreset converts a CLI flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyChaos:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, chaos)", s)
	}
}

// ApplyPreset modifies the twist settings for a difficulty preset.
func ApplyPreset(cfg *ZevConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Twists.Chance = 0.2
		cfg.Twists.Duration = 6 * time.Second
		cfg.Twists.PerturbChance = 0
	case DifficultyHard:
		cfg.Twists.Chance = 0.6
		cfg.Twists.Duration = 15 * time.Second
		cfg.Twists.PerturbChance = 0.02
	case DifficultyChaos:
		cfg.Twists.Chance = 1.0
		cfg.Twists.Duration = 20 * time.Second
		cfg.Twists.PerturbChance = 0.05
	}
}

// Validate reports the first configuration value that cannot produce a
// playable game.
func (c ZevConfig) Validate() error {
	switch {
	case c.Board.Width < 4:
		return errors.New("config: board.width must be at least 4")
	case c.Board.Height < 4:
		return errors.New("config: board.height must be at least 4")
	case c.Timing.DropFloor <= 0:
		return errors.New("config: timing.drop_floor must be positive")
	case c.Timing.DropBase < c.Timing.DropFloor:
		return errors.New("config: timing.drop_base must not be below drop_floor")
	case c.Timing.DropStep < 0:
		return errors.New("config: timing.drop_step must not be negative")
	case c.Timing.LinesPerLevel <= 0:
		return errors.New("config: timing.lines_per_level must be positive")
	case len(c.Scoring.LineRewards) < 2:
		return errors.New("config: scoring.line_rewards needs at least two entries")
	case c.Twists.Chance < 0 || c.Twists.Chance > 1:
		return fmt.Errorf("config: twists.chance %v outside [0, 1]", c.Twists.Chance)
	case c.Twists.PerturbChance < 0 || c.Twists.PerturbChance > 1:
		return fmt.Errorf("config: twists.perturb_chance %v outside [0, 1]", c.Twists.PerturbChance)
	case c.Twists.Enabled && c.Twists.Duration <= 0:
		return errors.New("config: twists.duration must be positive")
	}
	return nil
}

// LineReward returns the base award for clearing n lines at once, before the
// level factor. Counts beyond the table use its last entry.
func (s ScoringConfig) LineReward(n int) int {
	if n <= 0 || len(s.LineRewards) == 0 {
		return 0
	}
	if n >= len(s.LineRewards) {
		return s.LineRewards[len(s.LineRewards)-1]
	}
	return s.LineRewards[n]
}

// LevelFor returns the level reached after clearing the given number of lines.
func (t TimingConfig) LevelFor(lines int) int {
	per := t.LinesPerLevel
	if per <= 0 {
		per = 10
	}
	return lines/per + 1
}

// DropInterval returns the gravity interval for a level:
// max(floor, base - (level-1)*step).
func (t TimingConfig) DropInterval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	interval := t.DropBase - time.Duration(level-1)*t.DropStep
	return max(interval, t.DropFloor)
}
