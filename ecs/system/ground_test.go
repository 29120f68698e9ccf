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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const eps = 1e-6

// landedPlayer drops a player onto a wide floor whose top is at y=12.
func landedPlayer(t *testing.T, settings *prefabs.PhysicsSettings) (*ecs.World, *ecs.Scheduler, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	sched := newPipeline(t, settings)
	spawnGround(t, w, cp.Vector{}, cp.Vector{X: 400, Y: 24})
	player := spawnPlayer(t, w, *settings, cp.Vector{X: 0, Y: 40})

	jump := get(t, w, player, component.JumpStateComponent.Kind())
	for i := 0; i < 100 && !jump.OnGround; i++ {
		sched.Update(w)
	}
	require.True(t, jump.OnGround, "player never landed")
	return w, sched, player
}

func TestPlayerLandsOnFloor(t *testing.T) {
	settings := prefabs.DefaultPhysicsSettings()
	w, sched, player := landedPlayer(t, &settings)

	tr := get(t, w, player, component.TransformComponent.Kind())
	vel := get(t, w, player, component.VelocityComponent.Kind())
	assert.InDelta(t, 12+10+settings.SkinWidth, tr.Position.Y, eps)
	assert.InDelta(t, 0, vel.Value.Y, eps)

	// resting on the floor must not re-land or drift
	for i := 0; i < 50; i++ {
		sched.Update(w)
	}
	assert.InDelta(t, 12+10+settings.SkinWidth, tr.Position.Y, eps)
	assert.InDelta(t, 0, tr.Position.X, eps)
	assert.True(t, get(t, w, player, component.JumpStateComponent.Kind()).OnGround)

	events := w.Events().Drain()
	landed := eventsOfType(events, ecs.EventLanded)
	require.Len(t, landed, 1)
	assert.Equal(t, player, landed[0].Entity)
	assert.Empty(t, eventsOfType(events, ecs.EventGravityRotated))
}

func TestJumpDoesNotRegroundOnFirstTick(t *testing.T) {
	settings := prefabs.DefaultPhysicsSettings()
	w, sched, player := landedPlayer(t, &settings)
	w.Events().Drain()

	input := get(t, w, player, component.InputComponent.Kind())
	jump := get(t, w, player, component.JumpStateComponent.Kind())
	tr := get(t, w, player, component.TransformComponent.Kind())
	before := tr.Position.Y

	input.Jump, input.JumpPressed = true, true
	sched.Update(w)

	assert.False(t, jump.OnGround)
	assert.Greater(t, tr.Position.Y, before)
	assert.Len(t, eventsOfType(w.Events().Drain(), ecs.EventJumped), 1)

	input.JumpPressed = false
	sched.Update(w)
	assert.False(t, jump.OnGround)
	assert.Empty(t, eventsOfType(w.Events().Drain(), ecs.EventLanded))
}

func TestWalkingSlidesAlongFloor(t *testing.T) {
	settings := prefabs.DefaultPhysicsSettings()
	w, sched, player := landedPlayer(t, &settings)

	input := get(t, w, player, component.InputComponent.Kind())
	tr := get(t, w, player, component.TransformComponent.Kind())
	input.MoveX = 1
	x := tr.Position.X
	sched.Update(w)

	step := settings.HorizontalSpeed / common.TickRate
	assert.InDelta(t, x+step, tr.Position.X, eps)
	assert.InDelta(t, 12+10+settings.SkinWidth, tr.Position.Y, eps)
	assert.True(t, get(t, w, player, component.JumpStateComponent.Kind()).OnGround)
}

func TestWalkingStopsAtWall(t *testing.T) {
	settings := prefabs.DefaultPhysicsSettings()
	w, sched, player := landedPlayer(t, &settings)
	// left face at x=48, overlapping the floor's top
	spawnGround(t, w, cp.Vector{X: 60, Y: 40}, cp.Vector{X: 24, Y: 40})

	input := get(t, w, player, component.InputComponent.Kind())
	tr := get(t, w, player, component.TransformComponent.Kind())
	vel := get(t, w, player, component.VelocityComponent.Kind())
	input.MoveX = 1

	wallStop := 48 - 15 - settings.SkinWidth
	for i := 0; i < 40; i++ {
		sched.Update(w)
		require.LessOrEqual(t, tr.Position.X, wallStop+eps, "tick %d went through the wall", i)
	}
	assert.InDelta(t, wallStop, tr.Position.X, eps)
	assert.InDelta(t, 12+10+settings.SkinWidth, tr.Position.Y, eps)
	assert.InDelta(t, 0, vel.Value.X, eps)
}

func TestWalkingOffLedgeClearsGround(t *testing.T) {
	settings := prefabs.DefaultPhysicsSettings()
	w, sched, player := landedPlayer(t, &settings)

	input := get(t, w, player, component.InputComponent.Kind())
	jump := get(t, w, player, component.JumpStateComponent.Kind())
	input.MoveX = 1
	for i := 0; i < 100 && jump.OnGround; i++ {
		sched.Update(w)
	}
	assert.False(t, jump.OnGround)
	assert.False(t, jump.TurnedThisJump)

	// falling off a ledge is not a jump apex
	for i := 0; i < 20; i++ {
		sched.Update(w)
	}
	assert.Equal(t, common.Down, get(t, w, player, component.GravityDirectionComponent.Kind()).Dir)
}

func TestOrientationRotatesOncePerAirbornePhase(t *testing.T) {
	w := ecs.NewWorld()
	settings := prefabs.DefaultPhysicsSettings()
	player := spawnPlayer(t, w, settings, cp.Vector{X: 1000, Y: 1000})
	ground := NewGroundSystem(&settings, zaptest.NewLogger(t))

	vel := get(t, w, player, component.VelocityComponent.Kind())
	acc := get(t, w, player, component.AccelerationComponent.Kind())
	jump := get(t, w, player, component.JumpStateComponent.Kind())
	gravity := get(t, w, player, component.GravityDirectionComponent.Kind())

	tick := func(v cp.Vector) {
		vel.Value = v
		ground.Update(w)
	}

	// moving left and rising against downward gravity
	tick(cp.Vector{X: -10, Y: 5})
	require.Equal(t, common.Down, gravity.Dir)
	require.Equal(t, common.Up, jump.LastVertical)
	require.Equal(t, common.Left, jump.LastHorizontal)

	// apex: now falling with gravity
	acc.Value = cp.Vector{X: 3, Y: 3}
	tick(cp.Vector{X: -10, Y: -5})
	assert.Equal(t, common.Right, gravity.Dir, "moving against forward turns counterclockwise")
	assert.True(t, jump.TurnedThisJump)
	assert.Equal(t, cp.Vector{}, acc.Value)
	assertColliders(t, w, player, cp.Vector{X: 20, Y: 30}, common.Right)

	// another flip in the same airborne phase does nothing
	tick(cp.Vector{X: -5, Y: 0})
	tick(cp.Vector{X: 5, Y: 0})
	assert.Equal(t, common.Right, gravity.Dir)

	// land, then leave the ground: buffers are empty so no foot ray holds it
	jump.OnGround = true
	tick(cp.Vector{})
	require.False(t, jump.OnGround)
	require.False(t, jump.TurnedThisJump)

	tick(cp.Vector{X: -5, Y: 0})
	tick(cp.Vector{X: 5, Y: 3})
	assert.Equal(t, common.Down, gravity.Dir, "moving along forward turns clockwise")
	assertColliders(t, w, player, cp.Vector{X: 30, Y: 20}, common.Down)

	rotations := eventsOfType(w.Events().Drain(), ecs.EventGravityRotated)
	require.Len(t, rotations, 2)
	assert.Equal(t, ecs.GravityRotation{From: common.Down, To: common.Right}, rotations[0].Data)
	assert.Equal(t, ecs.GravityRotation{From: common.Right, To: common.Down}, rotations[1].Data)
}

func assertColliders(t *testing.T, w *ecs.World, owner ecs.Entity, size cp.Vector, gravity common.Direction) {
	t.Helper()
	ecs.ForEach(w, component.BoxColliderComponent.Kind(), func(_ ecs.Entity, b *component.BoxCollider) {
		if b.Owner == uint64(owner) {
			assert.Equal(t, size, b.Box.Size)
		}
	})
	var offsets []cp.Vector
	ecs.ForEach(w, component.RayColliderComponent.Kind(), func(_ ecs.Entity, r *component.RayCollider) {
		if r.Owner != uint64(owner) {
			return
		}
		d, ok := geom.DirectionOf(r.Ray.Direction)
		require.True(t, ok)
		assert.Equal(t, gravity, d)
		assert.InDelta(t, 12, r.Ray.Length(), eps)
		offsets = append(offsets, r.Offset)
	})
	require.Len(t, offsets, 2)
	// feet stay side by side across the gravity axis
	axis := gravity.Forward().Vector()
	assert.InDelta(t, 24, offsets[0].Sub(offsets[1]).Dot(axis)*-1, eps)
}

func TestFallingDetectionNeedsRayAlongGravity(t *testing.T) {
	ground := uint64(99)
	cases := []struct {
		name     string
		events   []component.CollisionEvent
		grounded bool
	}{
		{"no_events", nil, false},
		{
			name: "ground_ray_down",
			events: []component.CollisionEvent{{
				Entity: ground, Type: component.CollisionTypeGround,
				Data: component.RayHit(geom.RayIntersection{RayDirection: cp.Vector{Y: -12}}),
			}},
			grounded: true,
		},
		{
			name: "ground_ray_sideways",
			events: []component.CollisionEvent{{
				Entity: ground, Type: component.CollisionTypeGround,
				Data: component.RayHit(geom.RayIntersection{RayDirection: cp.Vector{X: 12}}),
			}},
		},
		{
			name: "goal_ray_down",
			events: []component.CollisionEvent{{
				Entity: ground, Type: component.CollisionTypeGoal,
				Data: component.RayHit(geom.RayIntersection{RayDirection: cp.Vector{Y: -12}}),
			}},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			jump := &component.JumpState{OnGround: true, TurnedThisJump: true}
			m := mover{
				jump:    jump,
				events:  &component.CollisionEvents{Buffer: c.events},
				gravity: &component.GravityDirection{Dir: common.Down},
			}
			NewGroundSystem(nil, zaptest.NewLogger(t)).detectFalling(m)
			assert.Equal(t, c.grounded, jump.OnGround)
			assert.Equal(t, c.grounded, jump.TurnedThisJump)
		})
	}
}

func TestEarliestGround(t *testing.T) {
	sweep := func(entity uint64, typ component.CollisionType, time float64, normal cp.Vector) component.CollisionEvent {
		return component.CollisionEvent{Entity: entity, Type: typ, Data: component.SweepHit(geom.Sweep{Time: time, Normal: normal})}
	}
	up := cp.Vector{Y: 1}
	down := cp.Vector{Y: -1}
	falling := cp.Vector{Y: -4}

	t.Run("smallest_time", func(t *testing.T) {
		best, ok := earliestGround([]component.CollisionEvent{
			sweep(1, component.CollisionTypeGround, 3, up),
			sweep(2, component.CollisionTypeGround, 1, up),
			sweep(3, component.CollisionTypeGoal, 0.5, up),
		}, falling)
		require.True(t, ok)
		assert.Equal(t, uint64(2), best.Entity)
	})
	t.Run("tie_keeps_first", func(t *testing.T) {
		best, ok := earliestGround([]component.CollisionEvent{
			sweep(1, component.CollisionTypeGround, 2, up),
			sweep(2, component.CollisionTypeGround, 2, up),
		}, falling)
		require.True(t, ok)
		assert.Equal(t, uint64(1), best.Entity)
	})
	t.Run("separating_contact_ignored", func(t *testing.T) {
		_, ok := earliestGround([]component.CollisionEvent{
			sweep(1, component.CollisionTypeGround, 0, down),
		}, falling)
		assert.False(t, ok)
	})
	t.Run("push_out_uses_reversed_normal", func(t *testing.T) {
		best, ok := earliestGround([]component.CollisionEvent{
			sweep(1, component.CollisionTypeGround, 0, down),
		}, cp.Vector{})
		require.True(t, ok)
		assert.Equal(t, up, surfaceNormal(best.Data.Sweep, cp.Vector{}))
	})
}

func TestClampInto(t *testing.T) {
	cases := []struct {
		name   string
		v      cp.Vector
		normal cp.Vector
		want   cp.Vector
	}{
		{"into_floor", cp.Vector{X: 3, Y: -4}, cp.Vector{Y: 1}, cp.Vector{X: 3}},
		{"away_from_floor", cp.Vector{X: 3, Y: 4}, cp.Vector{Y: 1}, cp.Vector{X: 3, Y: 4}},
		{"into_wall", cp.Vector{X: 5, Y: -2}, cp.Vector{X: -1}, cp.Vector{Y: -2}},
		{"along_surface", cp.Vector{X: 5}, cp.Vector{Y: 1}, cp.Vector{X: 5}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := clampInto(c.v, c.normal)
			assert.InDelta(t, c.want.X, got.X, eps)
			assert.InDelta(t, c.want.Y, got.Y, eps)
		})
	}
}

func TestPushOutOfOverlapWhileResting(t *testing.T) {
	w := ecs.NewWorld()
	settings := prefabs.DefaultPhysicsSettings()
	spawnGround(t, w, cp.Vector{}, cp.Vector{X: 400, Y: 24})
	// sunk 2 units into the floor and not moving
	player := spawnPlayer(t, w, settings, cp.Vector{X: 0, Y: 20})

	NewCollisionClearSystem().Update(w)
	NewCollisionSystem(zaptest.NewLogger(t)).Update(w)
	NewGroundSystem(&settings, zaptest.NewLogger(t)).Update(w)

	tr := get(t, w, player, component.TransformComponent.Kind())
	assert.InDelta(t, 22+settings.SkinWidth, tr.Position.Y, eps)
	assert.True(t, get(t, w, player, component.JumpStateComponent.Kind()).OnGround)
}

func TestGroundSystemSkipsBodiesWithoutGravity(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	jump := &component.JumpState{OnGround: true}
	require.NoError(t, ecs.Add(w, e, component.JumpStateComponent.Kind(), jump))
	require.NoError(t, ecs.Add(w, e, component.CollisionEventsComponent.Kind(), &component.CollisionEvents{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}))
	require.NoError(t, ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{Value: cp.Vector{Y: -50}}))

	NewGroundSystem(nil, zaptest.NewLogger(t)).Update(w)

	// no foot ray hit would clear the flag if the body were resolved
	assert.True(t, jump.OnGround)
	assert.Zero(t, w.Events().Len())
}

func TestRotationTurnsGravityAgainstHorizontalMotion(t *testing.T) {
	for _, g := range common.Directions {
		for _, along := range []bool{true, false} {
			name := g.String() + "_backward"
			if along {
				name = g.String() + "_forward"
			}
			t.Run(name, func(t *testing.T) {
				w := ecs.NewWorld()
				settings := prefabs.DefaultPhysicsSettings()
				player, err := entity.NewPlayerAt(w, testPlayerSpec(), settings, cp.Vector{X: 1000, Y: 1000}, g)
				require.NoError(t, err)
				ground := NewGroundSystem(&settings, zaptest.NewLogger(t))
				vel := get(t, w, player, component.VelocityComponent.Kind())
				gravity := get(t, w, player, component.GravityDirectionComponent.Kind())

				horizontal := g.Forward().Vector().Mult(10)
				want := g.Clockwise()
				if !along {
					horizontal = horizontal.Neg()
					want = g.Counterclockwise()
				}

				vel.Value = horizontal.Add(g.Vector().Mult(-5))
				ground.Update(w)
				vel.Value = horizontal.Add(g.Vector().Mult(5))
				ground.Update(w)

				assert.Equal(t, want, gravity.Dir)
				assert.Less(t, gravity.Dir.Vector().Dot(horizontal), 0.0)
			})
		}
	}
}
