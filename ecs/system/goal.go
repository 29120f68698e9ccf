package system

import (
	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/ecs/component"
	"github.com/milk9111/catsland/ecs/entity"
	"go.uber.org/zap"
)

// GoalSystem collects goals the player touched this tick and reports the
// level complete when the last one is gone.
type GoalSystem struct {
	logger *zap.Logger
}

func NewGoalSystem(logger *zap.Logger) *GoalSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoalSystem{logger: logger}
}

func (s *GoalSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	collected := 0
	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.CollisionEventsComponent.Kind(), func(player ecs.Entity, _ *component.PlayerTag, events *component.CollisionEvents) {
		for _, evt := range events.Buffer {
			if evt.Type != component.CollisionTypeGoal {
				continue
			}
			goal := ecs.Entity(evt.Entity)
			if !entity.DestroyWithColliders(w, goal) {
				continue
			}
			collected++
			w.Events().Push(ecs.Event{Type: ecs.EventGoalCollected, Entity: goal})
			s.logger.Info("goal collected", zap.Stringer("goal", goal), zap.Stringer("player", player))
		}
	})
	if collected == 0 {
		return
	}
	if _, remaining := ecs.First(w, component.GoalTagComponent.Kind()); !remaining {
		w.Events().Push(ecs.Event{Type: ecs.EventLevelComplete})
		s.logger.Info("level complete")
	}
}
