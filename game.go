package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/catsland/common"
	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/ecs/component"
	"github.com/milk9111/catsland/ecs/entity"
	"github.com/milk9111/catsland/ecs/system"
	"github.com/milk9111/catsland/levels"
	"github.com/milk9111/catsland/prefabs"
	"go.uber.org/zap"
)

const preloadTimeout = 5 * time.Second

type gameState int

const (
	stateLoading gameState = iota
	statePlaying
	stateWon
)

type Game struct {
	logger *zap.Logger

	manifest levels.Manifest
	levels   []*levels.Level
	index    int

	specs    entity.Specs
	settings *prefabs.PhysicsSettings

	world  *ecs.World
	sched  *ecs.Scheduler
	player ecs.Entity

	state   gameState
	debug   bool
	paused  bool
	quit    bool
	deaths  int
	pauseUI *ebitenui.UI
	watcher *levels.Watcher
}

// NewGame preloads every level in the manifest and prepares the systems.
// The first level is spawned on the first Update.
func NewGame(levelName string, debug bool, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	manifest, err := levels.LoadManifest()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), preloadTimeout)
	defer cancel()
	all, err := levels.LoadAll(ctx, manifest.Levels)
	if err != nil {
		return nil, err
	}

	specs, err := entity.LoadSpecs()
	if err != nil {
		return nil, err
	}

	g := &Game{
		logger:   logger,
		manifest: manifest,
		levels:   all,
		specs:    specs,
		settings: &prefabs.PhysicsSettings{},
		debug:    debug,
	}
	*g.settings = specs.Physics
	g.sched = system.NewPipeline(g.settings, logger)

	if levelName != "" {
		i, ok := manifest.Index(levelName)
		if !ok {
			return nil, fmt.Errorf("unknown level %q", levelName)
		}
		g.index = i
	}

	watcher, err := levels.NewWatcher(logger, levels.Dir, prefabs.Dir)
	if err != nil {
		logger.Warn("hot reload disabled", zap.Error(err))
	} else {
		g.watcher = watcher
	}

	g.pauseUI = NewPauseUI(g)
	if err := g.spawnCurrent(); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.state == statePlaying {
		g.paused = !g.paused
	}

	g.pollReload()

	switch g.state {
	case stateLoading:
		if err := g.spawnCurrent(); err != nil {
			// keep playing the previous world until the files are fixed
			g.logger.Error("spawn level", zap.Error(err))
			g.state = statePlaying
		}
	case statePlaying:
		if g.paused {
			g.pauseUI.Update()
			return nil
		}
		if in, ok := ecs.Get(g.world, g.player, component.InputComponent.Kind()); ok {
			readInput(in)
		}
		g.sched.Update(g.world)
		g.handleEvents(g.world.Events().Drain())
	case stateWon:
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.index = 0
			g.deaths = 0
			g.state = stateLoading
		}
	}
	return nil
}

// spawnCurrent rebuilds the world from the current level.
func (g *Game) spawnCurrent() error {
	lvl := g.levels[g.index]
	w := ecs.NewWorld()
	player, err := entity.SpawnLevel(w, lvl, g.specs)
	if err != nil {
		return err
	}
	g.world = w
	g.player = player
	g.state = statePlaying
	g.paused = false
	g.logger.Info("level started", zap.String("level", lvl.Name), zap.Int("index", g.index))
	return nil
}

// handleEvents logs the tick's events and applies the first terminal one.
// Goals resolve before bounds, so finishing a level on the tick the player
// leaves the screen counts as a completion.
func (g *Game) handleEvents(events []ecs.Event) {
	for _, evt := range events {
		switch evt.Type {
		case ecs.EventGravityRotated:
			if rot, ok := evt.Data.(ecs.GravityRotation); ok {
				g.logger.Debug("gravity rotated", zap.Stringer("from", rot.From), zap.Stringer("to", rot.To))
			}
		case ecs.EventLanded, ecs.EventJumped:
			g.logger.Debug(evt.Type.String(), zap.Stringer("entity", evt.Entity))
		}
	}

	terminal, ok := ecs.FirstOf(events, ecs.EventLevelComplete, ecs.EventPlayerDied)
	if !ok {
		return
	}
	switch terminal.Type {
	case ecs.EventPlayerDied:
		g.deaths++
		g.state = stateLoading
	case ecs.EventLevelComplete:
		if g.index+1 >= len(g.levels) {
			g.logger.Info("all levels complete", zap.Int("deaths", g.deaths))
			g.state = stateWon
			return
		}
		g.index++
		g.state = stateLoading
	}
}

// pollReload applies file changes reported by the watcher without blocking.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("watch", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	if prefabs.IsPrefabFile(path) {
		specs, err := entity.LoadSpecs()
		if err != nil {
			g.logger.Error("reload prefabs", zap.String("path", path), zap.Error(err))
			return
		}
		g.specs = specs
		*g.settings = specs.Physics
		g.logger.Info("prefabs reloaded", zap.String("path", path))
		g.state = stateLoading
		return
	}

	name := levels.NameOf(path)
	i, ok := g.manifest.Index(name)
	if !ok {
		return
	}
	lvl, err := levels.LoadLevel(name)
	if err != nil {
		g.logger.Error("reload level", zap.String("level", name), zap.Error(err))
		return
	}
	g.levels[i] = lvl
	g.logger.Info("level reloaded", zap.String("level", name))
	if i == g.index && g.state != stateWon {
		g.state = stateLoading
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(screen, g.world, g.debug)

	lvl := g.levels[g.index]
	goals := len(g.world.Query(component.GoalTagComponent.Kind()))
	hud := fmt.Sprintf("%s (%d/%d)  goals: %d  deaths: %d", lvl.Name, g.index+1, len(g.levels), goals, g.deaths)
	if g.debug {
		hud += fmt.Sprintf("\nTPS: %.1f  FPS: %.1f", ebiten.ActualTPS(), ebiten.ActualFPS())
		hud += debugPlayerInfo(g.world, g.player)
	}
	drawText(screen, hud, 4, 4)

	switch {
	case g.state == stateWon:
		drawText(screen, fmt.Sprintf("All levels complete with %d deaths.\nPress Enter to play again.", g.deaths),
			common.ScreenWidth/2-120, common.ScreenHeight/2)
	case g.paused:
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.ScreenWidth, common.ScreenHeight
}
