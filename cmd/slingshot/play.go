package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/games/slingshot"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/platform/tui"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/registry"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/storage"
)

var (
	flagOffline bool
	flagSelect  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Load every level from the level store and play them in order.

Controls:
  Mouse drag - Pull the bird back from the launcher, release to fire
  R          - Restart the current level
  P/Space    - Pause
  Ctrl+S     - Save a text screenshot
  ?          - Toggle help
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - 5 birds per level, pigs pop at half the impact
  normal - 3 birds per level
  hard   - 2 birds per level, pigs need twice the impact

Examples:
  slingshot play
  slingshot play --select
  slingshot play --offline --difficulty easy
  slingshot play --api http://levels.local:3000`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagOffline, "offline", false, "Play the built-in levels without a level store")
	playCmd.Flags().BoolVar(&flagSelect, "select", false, "Pick the starting level from a list")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := newGameLogger()
	defer closeLog()

	cfg := loadConfig(logger)
	levels := campaignOrExit(cfg, flagOffline, logger)
	slingshot.SetLevels(levels)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	newGame := func() (registry.Game, error) {
		g := slingshot.NewWithLevels(levels, cfg)
		g.SetLogger(logger)
		return g, nil
	}

	var runErr error
	if flagSelect {
		runErr = tui.RunSession(store, runtimeConfig(), "SUPER MAD FLYING CREATURES", tui.EntriesFromLevels(levels), newGame)
	} else {
		game, _ := newGame()
		runErr = tui.Run(game, store, runtimeConfig())
	}

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
