package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/ecs/component"
	"github.com/milk9111/catsland/levels"
	"github.com/milk9111/catsland/prefabs"
)

// Specs bundles the prefab data a level needs to spawn.
type Specs struct {
	Physics prefabs.PhysicsSettings
	Player  prefabs.PlayerSpec
	Goal    prefabs.ColliderSpec
}

// LoadSpecs reads every prefab used by SpawnLevel.
func LoadSpecs() (Specs, error) {
	physics, err := prefabs.LoadPhysicsSettings()
	if err != nil {
		return Specs{}, err
	}
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return Specs{}, err
	}
	goal, err := prefabs.LoadGoalSpec()
	if err != nil {
		return Specs{}, err
	}
	return Specs{Physics: physics, Player: player, Goal: goal}, nil
}

// SpawnLevel loads a level into the world and returns the player entity.
func SpawnLevel(w *ecs.World, lvl *levels.Level, specs Specs) (ecs.Entity, error) {
	if lvl == nil {
		return 0, fmt.Errorf("level: nil level")
	}

	bounds := ecs.CreateEntity(w)
	if err := ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Bounds: lvl.WorldBounds()}); err != nil {
		return 0, fmt.Errorf("level %s: bounds: %w", lvl.Name, err)
	}

	for i, g := range lvl.Grounds {
		if _, err := NewGround(w, g.Pos.Vector(), g.Dim.Vector()); err != nil {
			return 0, fmt.Errorf("level %s: ground %d: %w", lvl.Name, i, err)
		}
	}

	goalSize := cp.Vector{X: specs.Goal.Box.Width, Y: specs.Goal.Box.Height}
	for i, g := range lvl.Goals {
		if _, err := NewGoal(w, g.Vector(), goalSize); err != nil {
			return 0, fmt.Errorf("level %s: goal %d: %w", lvl.Name, i, err)
		}
	}

	player, err := NewPlayerAt(w, specs.Player, specs.Physics, lvl.Spawn.Vector(), lvl.GravityDirection())
	if err != nil {
		return 0, fmt.Errorf("level %s: %w", lvl.Name, err)
	}
	return player, nil
}
