package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joelgranik/game-of-zev/internal/config"
	"github.com/joelgranik/game-of-zev/internal/games/zev"
	"github.com/joelgranik/game-of-zev/internal/platform/tui"
	"github.com/joelgranik/game-of-zev/internal/registry"
	"github.com/joelgranik/game-of-zev/internal/storage"
)

// runMenu loops between the mode picker, the leaderboard and games.
// The leaderboard lives in memory for the life of the process.
func runMenu(_ *cobra.Command, _ []string) error {
	base, preset, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.OpenMemory()
	if err != nil {
		logger.Warn("could not open leaderboard", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	player, closeSound := openSound(logger)
	defer closeSound()

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg, preset)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config
		preset = menuResult.Difficulty

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		if menuResult.GameID == "" {
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		zc := base
		config.ApplyPreset(&zc, preset)

		// Fresh seed for each game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg, tui.Options{
			Config: &zc,
			Sound:  player,
			Logger: logger,
			Player: currentUser(),
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if player != nil {
			// A quit mid-game leaves the melody running.
			player.Trigger(zev.SoundMusicStop)
		}
	}
}

// currentUser names local runs on the leaderboard.
func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
