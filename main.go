package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/catsland/common"
	"github.com/milk9111/catsland/levels"
	"github.com/milk9111/catsland/prefabs"
	"go.uber.org/zap"
)

func main() {
	levelName := flag.String("level", "", "level name from the manifest to start at")
	debug := flag.Bool("debug", false, "enable debug mode")
	levelsDir := flag.String("levels-dir", levels.Dir, "directory searched for level files before the embedded copies")
	prefabsDir := flag.String("prefabs-dir", prefabs.Dir, "directory searched for prefab files before the embedded copies")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logger, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	levels.Dir = *levelsDir
	prefabs.Dir = *prefabsDir

	game, err := NewGame(*levelName, *debug, logger)
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}
	defer game.Close()

	ebiten.SetTPS(common.TickRate)
	ebiten.SetWindowSize(common.ScreenWidth, common.ScreenHeight)
	ebiten.SetWindowTitle("Cats Always Land on their Feet")

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game exited", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	return cfg.Build()
}
