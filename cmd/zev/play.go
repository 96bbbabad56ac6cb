package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joelgranik/game-of-zev/internal/config"
	"github.com/joelgranik/game-of-zev/internal/games/zev"
	"github.com/joelgranik/game-of-zev/internal/platform/tui"
	"github.com/joelgranik/game-of-zev/internal/registry"
	"github.com/joelgranik/game-of-zev/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode directly",
	Long: `Start playing the given mode, "zev" when omitted.

Controls:
  Left/Right, A/D   - Move
  Down, S           - Soft drop
  Up, W             - Rotate
  Space             - Hard drop
  P                 - Pause
  R                 - Restart
  Tab               - Scores (paused or game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy    - Rare, short twists and no perturbations
  normal  - The configured settings
  hard    - Frequent, long twists and occasional perturbations
  chaos   - A twist with every piece

Examples:
  zev play
  zev play zev_classic
  zev play --difficulty chaos --seed 42
  zev play --config ./my-zev.yaml --log-file zev.log -v`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := string(zev.ModeTwisted)
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'zev list' to see available modes", gameID)
	}

	zc, preset, err := loadGameConfig()
	if err != nil {
		return err
	}
	config.ApplyPreset(&zc, preset)

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.OpenMemory()
	if err != nil {
		// Continue without a leaderboard - game still works
		logger.Warn("could not open leaderboard", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	player, closeSound := openSound(logger)
	defer closeSound()

	logger.Info("starting", "mode", gameID, "difficulty", preset)
	return tui.Run(game, store, runtimeConfig(), tui.Options{
		Config: &zc,
		Sound:  player,
		Logger: logger,
		Player: currentUser(),
	})
}
