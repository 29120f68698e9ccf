package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/ecs/component"
	"github.com/milk9111/catsland/geom"
	"github.com/milk9111/catsland/prefabs"
	"go.uber.org/zap"
)

// GroundSystem consumes collision buffers of movers. Each tick it clears the
// grounded flag when no foot ray touches ground along gravity, resolves the
// earliest ground sweep, and turns gravity a quarter turn once per airborne
// phase when the mover starts falling again.
type GroundSystem struct {
	settings *prefabs.PhysicsSettings
	logger   *zap.Logger
}

func NewGroundSystem(settings *prefabs.PhysicsSettings, logger *zap.Logger) *GroundSystem {
	if settings == nil {
		defaults := prefabs.DefaultPhysicsSettings()
		settings = &defaults
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroundSystem{settings: settings, logger: logger}
}

type mover struct {
	entity  ecs.Entity
	jump    *component.JumpState
	events  *component.CollisionEvents
	tr      *component.Transform
	vel     *component.Velocity
	gravity *component.GravityDirection
	acc     *component.Acceleration
	move    *component.Movement
}

func (s *GroundSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	boxes := collectBoxes(w)
	byEntity := make(map[ecs.Entity]boxRef, len(boxes))
	for _, b := range boxes {
		byEntity[b.entity] = b
	}

	ecs.ForEach4(w,
		component.JumpStateComponent.Kind(),
		component.CollisionEventsComponent.Kind(),
		component.TransformComponent.Kind(),
		component.VelocityComponent.Kind(),
		func(e ecs.Entity, jump *component.JumpState, events *component.CollisionEvents, tr *component.Transform, vel *component.Velocity) {
			gravity, ok := ecs.Get(w, e, component.GravityDirectionComponent.Kind())
			if !ok {
				return
			}
			m := mover{entity: e, jump: jump, events: events, tr: tr, vel: vel, gravity: gravity}
			m.acc, _ = ecs.Get(w, e, component.AccelerationComponent.Kind())
			m.move, _ = ecs.Get(w, e, component.MovementComponent.Kind())

			s.detectFalling(m)
			s.resolveContact(w, m, boxes, byEntity)
			s.orient(w, m, boxes)
		})
}

func (s *GroundSystem) detectFalling(m mover) {
	if !m.jump.OnGround {
		return
	}
	for _, evt := range m.events.Rays() {
		if evt.Type != component.CollisionTypeGround {
			continue
		}
		if d, ok := geom.DirectionOf(evt.Data.Ray.RayDirection); ok && d == m.gravity.Dir {
			return
		}
	}
	m.jump.OnGround = false
	m.jump.TurnedThisJump = false
	s.logger.Debug("left ground", zap.Stringer("entity", m.entity))
}

func (s *GroundSystem) resolveContact(w *ecs.World, m mover, boxes []boxRef, byEntity map[ecs.Entity]boxRef) {
	var delta cp.Vector
	if m.move != nil {
		delta = m.move.Delta
	}
	best, ok := earliestGround(m.events.Sweeps(), delta)
	if !ok {
		return
	}
	sweep := best.Data.Sweep
	normal := surfaceNormal(sweep, delta)

	var offset cp.Vector
	col, hasCol := byEntity[ecs.Entity(best.Collider)]
	if hasCol {
		offset = col.col.Offset
	}

	if normal == m.gravity.Dir.Reverse().Vector() {
		if !m.jump.OnGround {
			w.Events().Push(ecs.Event{Type: ecs.EventLanded, Entity: m.entity})
			s.logger.Debug("landed", zap.Stringer("entity", m.entity), zap.Stringer("gravity", m.gravity.Dir))
		}
		m.jump.OnGround = true
	}

	center := sweep.Position.Add(normal.Mult(s.settings.SkinWidth))
	m.tr.Position = center.Sub(offset)
	s.clampInto(m, normal)

	if m.move == nil {
		return
	}
	rest := tangential(delta.Mult(1-sweep.Fraction(delta)), normal)
	if hasCol && !geom.IsZero(rest) {
		var wall cp.Vector
		rest, wall = s.clipSlide(center, col.col.Box, rest, m.events, best, boxes)
		if !geom.IsZero(wall) {
			s.clampInto(m, wall)
		}
	}
	m.move.Delta = rest
}

// clipSlide sweeps the slide remainder once against the other ground boxes
// touched this tick and stops it at the earliest one. It returns the
// clipped remainder and the normal it was stopped by, if any.
func (s *GroundSystem) clipSlide(center cp.Vector, box geom.Box, rest cp.Vector, events *component.CollisionEvents, skip component.CollisionEvent, boxes []boxRef) (cp.Vector, cp.Vector) {
	seen := make(map[uint64]bool)
	var (
		found bool
		first geom.Sweep
	)
	for _, evt := range events.Sweeps() {
		if evt.Type != component.CollisionTypeGround || evt.Entity == skip.Entity || seen[evt.Entity] {
			continue
		}
		seen[evt.Entity] = true
		for _, b := range boxes {
			if b.owner != ecs.Entity(evt.Entity) {
				continue
			}
			hit, ok := geom.SweepBox(center, box.Size, b.center, b.col.Box.Size, rest)
			if !ok || rest.Dot(hit.Normal) >= 0 {
				continue
			}
			if !found || hit.Time < first.Time {
				first, found = hit, true
			}
		}
	}
	if !found {
		return rest, cp.Vector{}
	}
	return first.Position.Add(first.Normal.Mult(s.settings.SkinWidth)).Sub(center), first.Normal
}

func (s *GroundSystem) clampInto(m mover, normal cp.Vector) {
	m.vel.Value = clampInto(m.vel.Value, normal)
	if m.acc != nil {
		m.acc.Value = clampInto(m.acc.Value, normal)
	}
}

func (s *GroundSystem) orient(w *ecs.World, m mover, boxes []boxRef) {
	g := m.gravity.Dir
	forward := g.Forward()

	vertical := m.jump.LastVertical
	if dv := m.vel.Value.Dot(g.Vector()); dv > 0 {
		vertical = g
	} else if dv < 0 {
		vertical = g.Reverse()
	}
	horizontal := m.jump.LastHorizontal
	if dh := m.vel.Value.Dot(forward.Vector()); dh > 0 {
		horizontal = forward
	} else if dh < 0 {
		horizontal = forward.Reverse()
	}

	startedFalling := vertical == g && m.jump.LastVertical != g
	m.jump.LastVertical = vertical
	m.jump.LastHorizontal = horizontal
	if !startedFalling || m.jump.TurnedThisJump || m.jump.OnGround {
		return
	}

	if m.acc != nil {
		m.acc.Value = cp.Vector{}
	}
	m.jump.TurnedThisJump = true

	next, turn := g.Counterclockwise(), cp.Vector.Perp
	if horizontal == forward {
		next, turn = g.Clockwise(), cp.Vector.ReversePerp
	}
	m.gravity.Dir = next

	owner := uint64(m.entity)
	for _, b := range boxes {
		if b.col.Owner == owner {
			b.col.Box = b.col.Box.Rotated()
			b.col.Offset = turn(b.col.Offset)
		}
	}
	ecs.ForEach(w, component.RayColliderComponent.Kind(), func(_ ecs.Entity, r *component.RayCollider) {
		if r.Owner != owner {
			return
		}
		r.Ray.Direction = next.Vector().Mult(r.Ray.Length())
		r.Offset = turn(r.Offset)
	})

	w.Events().Push(ecs.Event{
		Type:   ecs.EventGravityRotated,
		Entity: m.entity,
		Data:   ecs.GravityRotation{From: g, To: next},
	})
	s.logger.Debug("gravity rotated",
		zap.Stringer("entity", m.entity),
		zap.Stringer("from", g),
		zap.Stringer("to", next),
	)
}

// earliestGround picks the ground sweep with the smallest time, keeping the
// first on ties. Contacts the mover is already moving away from are skipped.
func earliestGround(sweeps []component.CollisionEvent, delta cp.Vector) (component.CollisionEvent, bool) {
	var (
		best  component.CollisionEvent
		found bool
	)
	for _, evt := range sweeps {
		if evt.Type != component.CollisionTypeGround {
			continue
		}
		if delta.Dot(surfaceNormal(evt.Data.Sweep, delta)) > 0 {
			continue
		}
		if !found || evt.Data.Sweep.Time < best.Data.Sweep.Time {
			best, found = evt, true
		}
	}
	return best, found
}

// surfaceNormal points away from the struck box. Push-out sweeps of a
// resting mover carry the push axis towards the box instead.
func surfaceNormal(sweep geom.Sweep, delta cp.Vector) cp.Vector {
	if geom.IsZero(delta) {
		return sweep.Normal.Neg()
	}
	return sweep.Normal
}

// clampInto drops the part of v pointing into a surface with the given
// outward normal, keeping the tangential part.
func clampInto(v, normal cp.Vector) cp.Vector {
	if v.Dot(normal.Neg()) <= 0 {
		return v
	}
	return tangential(v, normal)
}

func tangential(v, normal cp.Vector) cp.Vector {
	t := normal.Perp()
	return t.Mult(v.Dot(t))
}
