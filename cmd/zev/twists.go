package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joelgranik/game-of-zev/internal/games/zev"
)

var twistsCmd = &cobra.Command{
	Use:   "twists",
	Short: "Describe every twist",
	Long: `Lists every twist a piece can bring, with the message shown when it starts.

Twists can be switched off by name in the config file:

  twists:
    disabled: [gravity_flip, drunk_controls]`,
	Run: runTwists,
}

func runTwists(_ *cobra.Command, _ []string) {
	catalog := zev.Catalog()

	maxLen := len("Twist")
	for _, k := range catalog {
		maxLen = max(maxLen, len(k.String()))
	}

	fmt.Printf("  %-*s  %-8s  %s\n", maxLen, "Twist", "Kind", "Message")
	fmt.Printf("  %s  %s  %s\n", strings.Repeat("-", maxLen), strings.Repeat("-", 8), strings.Repeat("-", 7))
	for _, k := range catalog {
		kind := "gameplay"
		if k.Cosmetic() {
			kind = "visual"
		}
		fmt.Printf("  %-*s  %-8s  %s\n", maxLen, k.String(), kind, k.Message())
	}

	fmt.Println()
	fmt.Printf("%d twists. Run 'zev play --difficulty chaos' to meet them all.\n", len(catalog))
}
