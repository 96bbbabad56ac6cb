package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/joelgranik/game-of-zev/internal/config"
	"github.com/joelgranik/game-of-zev/internal/core"
	"github.com/joelgranik/game-of-zev/internal/games/zev"
	"github.com/joelgranik/game-of-zev/internal/platform/sound"
)

// newLogger builds the process logger. The TUI owns the terminal, so logs
// are dropped unless a file is given or the caller allows stderr.
func newLogger(allowStderr bool) (*log.Logger, func(), error) {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}

	var (
		w       io.Writer = io.Discard
		closeFn           = func() {}
	)
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case allowStderr:
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "zev",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadGameConfig reads the config file and applies the difficulty preset.
func loadGameConfig() (config.ZevConfig, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.ZevConfig{}, "", err
	}
	cfg, err := config.LoadZev(flagConfig)
	if err != nil {
		return config.ZevConfig{}, "", err
	}
	return cfg, preset, nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openSound starts audio output. Failure is not fatal: the game runs silent.
func openSound(logger *log.Logger) (zev.SoundPlayer, func()) {
	if !flagSound && !flagMusic {
		return nil, func() {}
	}
	player, err := sound.Open(sound.Options{
		Volume:  flagVolume,
		Effects: flagSound,
		Music:   flagMusic,
		Logger:  logger,
	})
	if err != nil {
		logger.Warn("audio unavailable, playing silent", "err", err)
		return nil, func() {}
	}
	return player, player.Close
}
