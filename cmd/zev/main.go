// zev is a falling-block puzzle for the terminal where the rules keep
// changing under you.
//
// Usage:
//
//	zev                  - Start menu to pick a mode and difficulty
//	zev play [mode]      - Play a mode directly (zev or zev_classic)
//	zev list             - List available modes
//	zev twists           - Describe every twist
//	zev config           - Print the default configuration
//	zev serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Load game settings from a YAML file
//	--difficulty <preset> - easy, normal, hard or chaos
//	--sound / --music     - Toggle sound effects and background music
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/joelgranik/game-of-zev/internal/games/zev"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagSound      bool
	flagMusic      bool
	flagVolume     float64
	flagLogFile    string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zev",
	Short: "The Game of Zev - falling blocks with a twist",
	Long: `The Game of Zev is a falling-block puzzle played in your terminal.
Every new piece may bring a twist: gravity flips, controls go drunk,
the board mirrors itself, and stranger things.

Running zev without a command opens the mode picker.

Available commands:
  play     - Play a mode directly
  list     - Show all available modes
  twists   - Describe every twist
  config   - Print the default configuration
  serve    - Start SSH server for remote play

Examples:
  zev
  zev play --difficulty chaos
  zev play zev_classic
  zev serve --ssh :2222`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, chaos")
	pf.BoolVar(&flagSound, "sound", true, "Play sound effects")
	pf.BoolVar(&flagMusic, "music", true, "Play background music")
	pf.Float64Var(&flagVolume, "volume", 0.8, "Master volume (0-1)")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log twist and line events")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(twistsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}
