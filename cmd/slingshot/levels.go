package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/level"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/levelstore"
)

const requestTimeout = 15 * time.Second

var flagPutID string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Manage levels in the level store",
	Long: `Talk to a running level store (see --api).

Examples:
  slingshot levels list
  slingshot levels get 3f2c...
  slingshot levels put castle.json
  slingshot levels put castle.json --id castle
  slingshot levels delete castle
  slingshot levels watch`,
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List levels in play order",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		client := levelstore.NewClient(flagAPI)
		descs, err := client.LoadAll(ctx)
		if errors.Is(err, levelstore.ErrNoLevels) {
			fmt.Println("No levels available.")
			fmt.Println()
			fmt.Println("Create one in the editor or with 'slingshot levels put <file>'.")
			return
		}
		if err != nil {
			fatalf("%v", err)
		}

		maxIDLen := 2
		for _, d := range descs {
			maxIDLen = max(maxIDLen, len(d.ID))
		}

		fmt.Printf("  %-3s  %-*s  %5s  %6s  %s\n", "#", maxIDLen, "ID", "Pigs", "Blocks", "Catapult")
		fmt.Printf("  %-3s  %-*s  %5s  %6s  %s\n", "-", maxIDLen, "--", "----", "------", "--------")
		for i, d := range descs {
			targets, blocks, hasCatapult := d.Counts()
			catapult := "default"
			if hasCatapult {
				catapult = "placed"
			}
			fmt.Printf("  %-3d  %-*s  %5d  %6d  %s\n", i+1, maxIDLen, d.ID, targets, blocks, catapult)
		}
	},
}

var levelsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a level document",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		d, err := levelstore.NewClient(flagAPI).Get(ctx, args[0])
		if err != nil {
			fatalf("%v", err)
		}
		out, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			fatalf("%v", err)
		}
		fmt.Println(string(out))
	},
}

var levelsPutCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Upload a level document",
	Long: `Upload a level file. Without --id the store assigns a new id; with
--id the level is created or replaced under that id.`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fatalf("%v", err)
		}
		d, err := level.Parse(data)
		if err != nil {
			fatalf("%s: %v", filepath.Base(args[0]), err)
		}
		if err := level.Validate(d); err != nil {
			fatalf("%s: %v", filepath.Base(args[0]), err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		client := levelstore.NewClient(flagAPI)

		if flagPutID == "" {
			id, err := client.Create(ctx, d)
			if err != nil {
				fatalf("%v", err)
			}
			fmt.Printf("Level created (ID = %s)\n", id)
			return
		}

		created, err := client.Update(ctx, flagPutID, d)
		if err != nil {
			fatalf("%v", err)
		}
		verb := "updated"
		if created {
			verb = "created"
		}
		fmt.Printf("Level %s (ID = %s)\n", verb, flagPutID)
	},
}

var levelsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a level",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := levelstore.NewClient(flagAPI).Delete(ctx, args[0]); err != nil {
			fatalf("%v", err)
		}
		fmt.Println("Level deleted.")
	},
}

var levelsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print level changes as they happen",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Watching %s (Ctrl+C to stop)\n", flagAPI)
		err := levelstore.NewClient(flagAPI).Watch(ctx, func(e levelstore.Event) {
			fmt.Printf("%s  %-7s  %s\n", time.Now().Format("15:04:05"), strings.ToUpper(e.Type), e.ID)
		})
		if err != nil {
			fatalf("%v", err)
		}
	},
}

func init() {
	levelsPutCmd.Flags().StringVar(&flagPutID, "id", "", "Store the level under this id")

	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsGetCmd)
	levelsCmd.AddCommand(levelsPutCmd)
	levelsCmd.AddCommand(levelsDeleteCmd)
	levelsCmd.AddCommand(levelsWatchCmd)
}
