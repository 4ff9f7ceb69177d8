// slingshot is Super Mad Flying Creatures in the terminal: drag the bird back
// with the mouse, let go, and knock the pigs out of their towers.
//
// Usage:
//
//	slingshot play              - Play the campaign from the level store
//	slingshot serve             - Start SSH server for remote play
//	slingshot store             - Run the level store HTTP API
//	slingshot levels <cmd>      - List, fetch, upload, delete or watch levels
//	slingshot scores            - Show high scores
//	slingshot config            - Print the default tuning config
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--db <path>          - Set database path (default: ~/.slingshot/slingshot.db)
//	--api <url>          - Level store base URL (default: http://localhost:3000)
//	--config <path>      - Tuning config YAML
//	--difficulty <name>  - easy, normal or hard
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write game logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/levelstore"
)

var (
	flagFPS        int
	flagDBPath     string
	flagAPI        string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slingshot",
	Short: "Super Mad Flying Creatures - a slingshot physics game for your terminal",
	Long: `Super Mad Flying Creatures is a slingshot physics game. Drag the bird
back from the launcher, release to fly, and knock out every pig in the level.

Levels are built in the level editor and served by the level store.

Available commands:
  play     - Play the campaign
  serve    - Start SSH server for remote play
  store    - Run the level store HTTP API
  levels   - Manage levels in the store
  scores   - View high scores
  config   - Print the default tuning config

Examples:
  slingshot store --watch ./levels
  slingshot play
  slingshot play --offline
  slingshot serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.StringVar(&flagDBPath, "db", "~/.slingshot/slingshot.db", "Path to levels and scores database")
	pf.StringVar(&flagAPI, "api", levelstore.DefaultBaseURL, "Level store base URL")
	pf.StringVar(&flagConfig, "config", "", "Path to custom tuning config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write game logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
