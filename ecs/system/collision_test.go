package system

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/ecs/component"
	"github.com/milk9111/catsland/ecs/entity"
	"github.com/milk9111/catsland/geom"
	"github.com/milk9111/catsland/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCollisionClearKeepsCapacity(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	events := &component.CollisionEvents{}
	for i := 0; i < 4; i++ {
		events.Push(component.CollisionEvent{Entity: uint64(i)})
	}
	require.NoError(t, ecs.Add(w, e, component.CollisionEventsComponent.Kind(), events))
	capBefore := cap(events.Buffer)

	NewCollisionClearSystem().Update(w)

	assert.Zero(t, events.Len())
	assert.Equal(t, capBefore, cap(events.Buffer))
}

func TestRayDriverTagsHitsWithBoxOwner(t *testing.T) {
	w := ecs.NewWorld()
	settings := prefabs.DefaultPhysicsSettings()
	player := spawnPlayer(t, w, settings, cp.Vector{X: 0, Y: 22})
	ground := spawnGround(t, w, cp.Vector{}, cp.Vector{X: 200, Y: 24})

	NewCollisionSystem(zaptest.NewLogger(t)).Update(w)

	events := get(t, w, player, component.CollisionEventsComponent.Kind())
	rays := events.Rays()
	require.Len(t, rays, 2)
	for _, evt := range rays {
		assert.Equal(t, uint64(ground), evt.Entity)
		assert.Equal(t, component.CollisionTypeGround, evt.Type)
		assert.InDelta(t, 10, evt.Data.Ray.Toi, 1e-9)
		assert.Equal(t, cp.Vector{X: 0, Y: 1}, evt.Data.Ray.Normal)
		ray, ok := ecs.Get(w, ecs.Entity(evt.Collider), component.RayColliderComponent.Kind())
		require.True(t, ok, "collider should be the player's ray")
		assert.Equal(t, uint64(player), ray.Owner)
	}
	assert.InDelta(t, -12, rays[0].Data.Ray.Point.X, 1e-9)
	assert.InDelta(t, 12, rays[1].Data.Ray.Point.X, 1e-9)
	assert.InDelta(t, 12, rays[0].Data.Ray.Point.Y, 1e-9)
}

func TestBoxDriverSweepsBothDirections(t *testing.T) {
	w := ecs.NewWorld()
	a, aBox := addBody(t, w, cp.Vector{X: 10}, cp.Vector{X: 4, Y: 4}, cp.Vector{X: -10}, component.CollisionTypePlayer, true)
	b, bBox := addBody(t, w, cp.Vector{}, cp.Vector{X: 6, Y: 6}, cp.Vector{X: 10}, component.CollisionTypeGround, true)

	NewCollisionSystem(zaptest.NewLogger(t)).Update(w)

	aEvents := get(t, w, a, component.CollisionEventsComponent.Kind()).Sweeps()
	require.Len(t, aEvents, 1)
	assert.Equal(t, uint64(b), aEvents[0].Entity)
	assert.Equal(t, uint64(aBox), aEvents[0].Collider)
	assert.Equal(t, component.CollisionTypeGround, aEvents[0].Type)
	assert.Equal(t, cp.Vector{X: 5, Y: 0}, aEvents[0].Data.Sweep.Position)
	assert.Equal(t, 5.0, aEvents[0].Data.Sweep.Time)
	assert.Equal(t, cp.Vector{X: 1, Y: 0}, aEvents[0].Data.Sweep.Normal)

	bEvents := get(t, w, b, component.CollisionEventsComponent.Kind()).Sweeps()
	require.Len(t, bEvents, 1)
	assert.Equal(t, uint64(a), bEvents[0].Entity)
	assert.Equal(t, uint64(bBox), bEvents[0].Collider)
	assert.Equal(t, component.CollisionTypePlayer, bEvents[0].Type)
	assert.Equal(t, cp.Vector{X: 5, Y: 0}, bEvents[0].Data.Sweep.Position)
	assert.Equal(t, cp.Vector{X: -1, Y: 0}, bEvents[0].Data.Sweep.Normal)
}

func TestBoxDriverSkipsReceiversWithoutBuffer(t *testing.T) {
	w := ecs.NewWorld()
	a, _ := addBody(t, w, cp.Vector{X: 10}, cp.Vector{X: 4, Y: 4}, cp.Vector{X: -10}, component.CollisionTypePlayer, true)
	// untagged and unbuffered: never a receiver, never a partner of a hit
	_, _ = addBody(t, w, cp.Vector{X: 500}, cp.Vector{X: 4, Y: 4}, cp.Vector{}, 0, false)
	ground, _ := addBody(t, w, cp.Vector{}, cp.Vector{X: 6, Y: 6}, cp.Vector{}, component.CollisionTypeGround, false)

	require.NotPanics(t, func() { NewCollisionSystem(zaptest.NewLogger(t)).Update(w) })

	events := get(t, w, a, component.CollisionEventsComponent.Kind())
	require.Equal(t, 1, events.Len())
	assert.Equal(t, uint64(ground), events.Buffer[0].Entity)
	assert.False(t, ecs.Has(w, ground, component.CollisionEventsComponent.Kind()))
}

func TestBoxDriverIgnoresSameOwner(t *testing.T) {
	w := ecs.NewWorld()
	a, _ := addBody(t, w, cp.Vector{}, cp.Vector{X: 4, Y: 4}, cp.Vector{X: 1}, component.CollisionTypePlayer, true)
	// second box on the same owner overlapping the first
	_, err := entity.AttachBox(w, a, cp.Vector{X: 1}, geom.Box{Size: cp.Vector{X: 4, Y: 4}})
	require.NoError(t, err)

	NewCollisionSystem(zaptest.NewLogger(t)).Update(w)

	assert.Zero(t, get(t, w, a, component.CollisionEventsComponent.Kind()).Len())
}

func TestMissingCollisionTypePanics(t *testing.T) {
	w := ecs.NewWorld()
	_, _ = addBody(t, w, cp.Vector{X: 10}, cp.Vector{X: 4, Y: 4}, cp.Vector{X: -10}, component.CollisionTypePlayer, true)
	_, _ = addBody(t, w, cp.Vector{}, cp.Vector{X: 6, Y: 6}, cp.Vector{}, 0, false)

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		NewCollisionSystem(zaptest.NewLogger(t)).Update(w)
	}()

	require.NotNil(t, recovered, "expected panic")
	err, ok := recovered.(error)
	require.True(t, ok, "panic value should be an error, got %T", recovered)
	assert.True(t, errors.Is(err, component.ErrMissingCollisionType))
}

func TestEventsAppendInVisitOrder(t *testing.T) {
	w := ecs.NewWorld()
	a, _ := addBody(t, w, cp.Vector{X: 20}, cp.Vector{X: 4, Y: 4}, cp.Vector{X: -40}, component.CollisionTypePlayer, true)
	near, _ := addBody(t, w, cp.Vector{X: 10}, cp.Vector{X: 2, Y: 2}, cp.Vector{}, component.CollisionTypeGoal, false)
	far, _ := addBody(t, w, cp.Vector{X: 0}, cp.Vector{X: 2, Y: 2}, cp.Vector{}, component.CollisionTypeGround, false)

	NewCollisionSystem(zaptest.NewLogger(t)).Update(w)

	events := get(t, w, a, component.CollisionEventsComponent.Kind()).Buffer
	require.Len(t, events, 2)
	assert.Equal(t, uint64(near), events[0].Entity)
	assert.Equal(t, uint64(far), events[1].Entity)
	assert.Less(t, events[0].Data.Sweep.Time, events[1].Data.Sweep.Time)
}

func TestCollisionEventsDrain(t *testing.T) {
	events := &component.CollisionEvents{}
	for i := 1; i <= 3; i++ {
		events.Push(component.CollisionEvent{Entity: uint64(i), Type: component.CollisionTypeGround})
	}
	capBefore := cap(events.Buffer)

	drained := events.Drain()

	require.Len(t, drained, 3)
	for i, evt := range drained {
		assert.Equal(t, uint64(i+1), evt.Entity)
	}
	assert.Zero(t, events.Len())
	assert.Equal(t, capBefore, cap(events.Buffer))

	// refilling the buffer must not reach the drained copy
	events.Push(component.CollisionEvent{Entity: 99, Type: component.CollisionTypeGoal})
	assert.Equal(t, uint64(1), drained[0].Entity)
	assert.Equal(t, component.CollisionTypeGround, drained[0].Type)
	assert.Nil(t, (&component.CollisionEvents{}).Drain())
}
