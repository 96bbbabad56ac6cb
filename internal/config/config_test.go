package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultZevConfig()
	var fromYAML ZevConfig
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}

	if fromYAML.Board != cfg.Board {
		t.Errorf("board = %+v, want %+v", fromYAML.Board, cfg.Board)
	}
	if fromYAML.Timing != cfg.Timing {
		t.Errorf("timing = %+v, want %+v", fromYAML.Timing, cfg.Timing)
	}
	if fromYAML.Twists.Duration != 10*time.Second {
		t.Errorf("twist duration = %v, want 10s", fromYAML.Twists.Duration)
	}
	if len(fromYAML.Scoring.LineRewards) != 5 || fromYAML.Scoring.LineRewards[4] != 800 {
		t.Errorf("line rewards = %v", fromYAML.Scoring.LineRewards)
	}
	if err := fromYAML.Validate(); err != nil {
		t.Errorf("embedded config invalid: %v", err)
	}
}

func TestDropInterval(t *testing.T) {
	timing := DefaultZevConfig().Timing
	tests := []struct {
		level int
		want  time.Duration
	}{
		{0, time.Second},
		{1, time.Second},
		{2, 900 * time.Millisecond},
		{5, 600 * time.Millisecond},
		{10, 100 * time.Millisecond},
		{11, 100 * time.Millisecond},
		{50, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := timing.DropInterval(tt.level); got != tt.want {
			t.Errorf("DropInterval(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLevelFor(t *testing.T) {
	timing := DefaultZevConfig().Timing
	tests := map[int]int{0: 1, 9: 1, 10: 2, 19: 2, 25: 3, 100: 11}
	for lines, want := range tests {
		if got := timing.LevelFor(lines); got != want {
			t.Errorf("LevelFor(%d) = %d, want %d", lines, got, want)
		}
	}
}

func TestLineReward(t *testing.T) {
	scoring := DefaultZevConfig().Scoring
	want := []int{0, 100, 300, 500, 800, 800}
	for n, w := range want {
		if got := scoring.LineReward(n); got != w {
			t.Errorf("LineReward(%d) = %d, want %d", n, got, w)
		}
	}
	if got := scoring.LineReward(-1); got != 0 {
		t.Errorf("LineReward(-1) = %d, want 0", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ZevConfig)
		ok     bool
	}{
		{"defaults", func(*ZevConfig) {}, true},
		{"classic", func(c *ZevConfig) { *c = ClassicZevConfig() }, true},
		{"narrow board", func(c *ZevConfig) { c.Board.Width = 2 }, false},
		{"zero floor", func(c *ZevConfig) { c.Timing.DropFloor = 0 }, false},
		{"base below floor", func(c *ZevConfig) { c.Timing.DropBase = 50 * time.Millisecond }, false},
		{"chance above one", func(c *ZevConfig) { c.Twists.Chance = 1.5 }, false},
		{"zero lines per level", func(c *ZevConfig) { c.Timing.LinesPerLevel = 0 }, false},
		{"no rewards", func(c *ZevConfig) { c.Scoring.LineRewards = nil }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultZevConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseAndApplyPreset(t *testing.T) {
	p, err := ParsePreset("")
	if err != nil || p != DifficultyNormal {
		t.Fatalf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}

	cfg := DefaultZevConfig()
	ApplyPreset(&cfg, DifficultyNormal)
	if cfg.Twists.Chance != 0.4 {
		t.Errorf("normal preset changed chance to %v", cfg.Twists.Chance)
	}

	ApplyPreset(&cfg, DifficultyChaos)
	if cfg.Twists.Chance != 1.0 {
		t.Errorf("chaos chance = %v, want 1", cfg.Twists.Chance)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("chaos preset invalid: %v", err)
	}
}

func TestLoadZevCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zev.yaml")
	data := []byte("board:\n  width: 12\ntwists:\n  duration: 4s\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadZev(path)
	if err != nil {
		t.Fatalf("LoadZev: %v", err)
	}
	if cfg.Board.Width != 12 {
		t.Errorf("width = %d, want 12", cfg.Board.Width)
	}
	if cfg.Board.Height != 20 {
		t.Errorf("height = %d, want default 20", cfg.Board.Height)
	}
	if cfg.Twists.Duration != 4*time.Second {
		t.Errorf("duration = %v, want 4s", cfg.Twists.Duration)
	}
}

func TestLoadZevErrors(t *testing.T) {
	if _, err := LoadZev(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board:\n  width: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadZev(path); err == nil {
		t.Error("expected validation error")
	}
}
