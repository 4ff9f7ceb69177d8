package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/config"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/core"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/games/slingshot"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/level"
	"github.com/YeisonMunoz18/PG29-YeisonMunoz-JWA-A2/internal/levelstore"
)

// fatalf prints an error and exits, as every command does on failure.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newServiceLogger builds the logger for long-running services.
func newServiceLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	setLevel(logger)
	return logger
}

// newGameLogger builds the logger for interactive play. The terminal belongs
// to the game, so output goes to --log-file or nowhere.
func newGameLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fatalf("cannot open log file: %v", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "slingshot",
	})
	setLevel(logger)
	return logger, func() { f.Close() }
}

func setLevel(logger *log.Logger) {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fatalf("invalid --log-level %q", flagLogLevel)
	}
	logger.SetLevel(lvl)
}

// loadConfig loads tuning and hands the same settings to the game package.
func loadConfig(logger *log.Logger) config.SlingshotConfig {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fatalf("%v", err)
	}

	cfg, err := config.LoadSlingshot(flagConfig)
	if err != nil {
		fatalf("cannot load config: %v", err)
	}
	config.ApplySlingshotPreset(&cfg, preset)

	slingshot.SetConfigPath(flagConfig)
	slingshot.SetDifficultyPreset(string(preset))
	logger.Debug("config loaded", "path", flagConfig, "difficulty", preset)
	return cfg
}

func translateOptions(cfg config.SlingshotConfig) level.Options {
	return level.Options{
		Scale:           cfg.World.Scale,
		BaseHeight:      cfg.Editor.BaseHeight,
		DefaultLauncher: core.V(cfg.Projectile.DefaultLaunchX, cfg.Projectile.DefaultLaunchY),
	}
}

// loadCampaign fetches every level from the store, or returns the built-in
// levels when offline.
func loadCampaign(cfg config.SlingshotConfig, offline bool, logger *log.Logger) ([]level.SimLevel, error) {
	opts := translateOptions(cfg)
	if offline {
		return level.Builtin(opts.DefaultLauncher), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	descs, err := levelstore.NewClient(flagAPI).LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("levels loaded", "count", len(descs), "api", flagAPI)
	return level.FromDescriptors(descs, opts), nil
}

// campaignOrExit loads the campaign, turning the two expected failures into
// readable messages.
func campaignOrExit(cfg config.SlingshotConfig, offline bool, logger *log.Logger) []level.SimLevel {
	levels, err := loadCampaign(cfg, offline, logger)
	switch {
	case errors.Is(err, levelstore.ErrNoLevels):
		fatalf("%s", slingshot.NoticeNoLevels)
	case err != nil:
		fatalf("cannot load levels from %s: %v\nRun 'slingshot store' or use --offline.", flagAPI, err)
	}
	return levels
}

func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}
