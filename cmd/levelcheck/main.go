// Command levelcheck loads every level in the manifest and simulates each
// one headless without input, reporting where the player comes to rest.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/milk9111/catsland/common"
	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/ecs/component"
	"github.com/milk9111/catsland/ecs/entity"
	"github.com/milk9111/catsland/ecs/system"
	"github.com/milk9111/catsland/levels"
	"github.com/milk9111/catsland/prefabs"
	"go.uber.org/zap"
)

func main() {
	seconds := flag.Float64("seconds", 5, "simulated time per level")
	levelsDir := flag.String("levels-dir", levels.Dir, "directory searched for level files before the embedded copies")
	prefabsDir := flag.String("prefabs-dir", prefabs.Dir, "directory searched for prefab files before the embedded copies")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	levels.Dir = *levelsDir
	prefabs.Dir = *prefabsDir

	if err := run(logger, int(*seconds*common.TickRate)); err != nil {
		logger.Error("levelcheck failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, ticks int) error {
	manifest, err := levels.LoadManifest()
	if err != nil {
		return err
	}
	all, err := levels.LoadAll(context.Background(), manifest.Levels)
	if err != nil {
		return err
	}
	specs, err := entity.LoadSpecs()
	if err != nil {
		return err
	}

	failed := 0
	for _, lvl := range all {
		settings := specs.Physics
		w := ecs.NewWorld()
		player, err := entity.SpawnLevel(w, lvl, specs)
		if err != nil {
			return err
		}
		sched := system.NewPipeline(&settings, logger.Named(lvl.Name).WithOptions(zap.IncreaseLevel(zap.WarnLevel)))

		landed, died := false, false
		for i := 0; i < ticks && !died; i++ {
			sched.Update(w)
			for _, evt := range w.Events().Drain() {
				switch evt.Type {
				case ecs.EventLanded:
					landed = true
				case ecs.EventPlayerDied:
					died = true
				}
			}
		}

		fields := []zap.Field{zap.String("level", lvl.Name), zap.Bool("landed", landed), zap.Bool("died", died)}
		if tr, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			fields = append(fields, zap.Float64("x", tr.Position.X), zap.Float64("y", tr.Position.Y))
		}
		if !landed || died {
			failed++
			logger.Warn("player does not settle after spawning", fields...)
			continue
		}
		logger.Info("ok", fields...)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d levels failed", failed, len(all))
	}
	return nil
}
