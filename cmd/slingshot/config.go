package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default tuning config",
	Long: `Print the built-in tuning config as YAML. Save it to
~/.slingshot/configs/slingshot.yaml or ./configs/slingshot.yaml, or pass it
with --config, to change gravity, materials, bird counts and delays.

Examples:
  slingshot config > ~/.slingshot/configs/slingshot.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		os.Stdout.Write(config.DefaultYAML())
	},
}
