package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/catsland/common"
	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/ecs/component"
	"github.com/milk9111/catsland/ecs/entity"
	"github.com/milk9111/catsland/geom"
	"github.com/milk9111/catsland/prefabs"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testPlayerSpec() prefabs.PlayerSpec {
	return prefabs.PlayerSpec{
		Name: "player",
		Box:  prefabs.BoxSpec{Width: 30, Height: 20},
		Rays: []prefabs.RaySpec{
			{Offset: prefabs.VectorSpec{X: -12}, Direction: prefabs.VectorSpec{Y: -12}},
			{Offset: prefabs.VectorSpec{X: 12}, Direction: prefabs.VectorSpec{Y: -12}},
		},
	}
}

func newPipeline(t *testing.T, settings *prefabs.PhysicsSettings) *ecs.Scheduler {
	t.Helper()
	return NewPipeline(settings, zaptest.NewLogger(t))
}

func spawnPlayer(t *testing.T, w *ecs.World, settings prefabs.PhysicsSettings, pos cp.Vector) ecs.Entity {
	t.Helper()
	e, err := entity.NewPlayerAt(w, testPlayerSpec(), settings, pos, common.Down)
	require.NoError(t, err)
	return e
}

func spawnGround(t *testing.T, w *ecs.World, pos, size cp.Vector) ecs.Entity {
	t.Helper()
	e, err := entity.NewGround(w, pos, size)
	require.NoError(t, err)
	return e
}

// addBody creates a bare collision participant with one box.
func addBody(t *testing.T, w *ecs.World, pos, size, delta cp.Vector, kind component.CollisionType, buffer bool) (ecs.Entity, ecs.Entity) {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}))
	require.NoError(t, ecs.Add(w, e, component.MovementComponent.Kind(), &component.Movement{Delta: delta}))
	if kind != 0 {
		require.NoError(t, ecs.Add(w, e, component.CollisionTypeComponent.Kind(), &kind))
	}
	if buffer {
		require.NoError(t, ecs.Add(w, e, component.CollisionEventsComponent.Kind(), &component.CollisionEvents{}))
	}
	box, err := entity.AttachBox(w, e, cp.Vector{}, geom.Box{Size: size})
	require.NoError(t, err)
	return e, box
}

func get[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	require.True(t, ok, "missing component on %v", e)
	return v
}

func eventsOfType(events []ecs.Event, typ ecs.EventType) []ecs.Event {
	var out []ecs.Event
	for _, evt := range events {
		if evt.Type == typ {
			out = append(out, evt)
		}
	}
	return out
}
