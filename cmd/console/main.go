// Command console plays one game of Jobstack Tycoon on stdin/stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/warp/jobstack/config"
	"github.com/warp/jobstack/console"
	"github.com/warp/jobstack/factory"
	"github.com/warp/jobstack/logger"
	"github.com/warp/jobstack/tycoon"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	profileName := flag.String("profile", "", "Generation profile (overrides game.profile)")
	seed := flag.Uint64("seed", 0, "Random seed (overrides game.seed)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *profileName != "" {
		cfg.Game.Profile = *profileName
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	// Logs go to stderr so they never interleave with the prompts.
	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	profiles := factory.NewProfileFactory()
	if cfg.Game.ProfileFile != "" {
		if _, err := profiles.LoadFile(cfg.Game.ProfileFile); err != nil {
			log.Fatal("failed to load profile file", zap.String("path", cfg.Game.ProfileFile), zap.Error(err))
		}
	}
	profile, err := profiles.Lookup(cfg.Game.Profile)
	if err != nil {
		log.Fatal("unknown profile", zap.Strings("available", profiles.Names()), zap.Error(err))
	}

	f := tycoon.NewEntityFactory(profile, tycoon.NewSource(cfg.Game.Seed))
	g, err := console.NewShell(os.Stdin, os.Stdout, f, log).Play()
	if err != nil {
		if errors.Is(err, console.ErrInputClosed) {
			fmt.Println()
			os.Exit(0)
		}
		log.Fatal("game aborted", zap.Int("round", g.Round), zap.Error(err))
	}
}
