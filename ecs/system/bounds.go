package system

import (
	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/ecs/component"
	"go.uber.org/zap"
)

// BoundsSystem reports players that left the level bounds.
type BoundsSystem struct {
	logger *zap.Logger
}

func NewBoundsSystem(logger *zap.Logger) *BoundsSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoundsSystem{logger: logger}
}

func (s *BoundsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	level, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, _ := ecs.Get(w, level, component.LevelBoundsComponent.Kind())

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, tr *component.Transform) {
		if bounds.Bounds.ContainsVect(tr.Position) {
			return
		}
		w.Events().Push(ecs.Event{Type: ecs.EventPlayerDied, Entity: e})
		s.logger.Info("player left level bounds",
			zap.Stringer("entity", e),
			zap.Float64("x", tr.Position.X),
			zap.Float64("y", tr.Position.Y),
		)
	})
}
