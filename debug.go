package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/catsland/common"
	"github.com/milk9111/catsland/ecs"
	"github.com/milk9111/catsland/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	backgroundColor = colornames.Midnightblue
	groundColor     = colornames.Slategray
	goalColor       = colornames.Gold
	playerColor     = colornames.Orange
	outlineColor    = colornames.Lime
	rayColor        = colornames.Red
	rayHitColor     = colornames.Cyan
)

// toScreen flips world y (up) into screen y (down).
func toScreen(v cp.Vector) (float32, float32) {
	return float32(v.X), float32(common.ScreenHeight - v.Y)
}

// drawWorld fills every box collider and, in debug mode, outlines boxes and
// draws rays. Rays that hit this tick are highlighted.
func drawWorld(screen *ebiten.Image, w *ecs.World, debug bool) {
	screen.Fill(backgroundColor)

	ecs.ForEach(w, component.BoxColliderComponent.Kind(), func(_ ecs.Entity, c *component.BoxCollider) {
		owner := ecs.Entity(c.Owner)
		tr, ok := ecs.Get(w, owner, component.TransformComponent.Kind())
		if !ok {
			return
		}
		bb := c.Box.Bounds(tr.Position.Add(c.Offset))
		x, y := toScreen(cp.Vector{X: bb.L, Y: bb.T})
		width, height := float32(bb.R-bb.L), float32(bb.T-bb.B)
		vector.DrawFilledRect(screen, x, y, width, height, fillColor(w, owner), false)
		if debug {
			vector.StrokeRect(screen, x, y, width, height, 1, outlineColor, false)
		}
	})

	if !debug {
		return
	}
	ecs.ForEach(w, component.RayColliderComponent.Kind(), func(e ecs.Entity, c *component.RayCollider) {
		owner := ecs.Entity(c.Owner)
		tr, ok := ecs.Get(w, owner, component.TransformComponent.Kind())
		if !ok {
			return
		}
		from := tr.Position.Add(c.Offset)
		x0, y0 := toScreen(from)
		x1, y1 := toScreen(from.Add(c.Ray.Direction))
		clr := rayColor
		if rayHit(w, owner, e) {
			clr = rayHitColor
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, false)
	})
}

func fillColor(w *ecs.World, owner ecs.Entity) color.Color {
	switch {
	case ecs.Has(w, owner, component.PlayerTagComponent.Kind()):
		return playerColor
	case ecs.Has(w, owner, component.GoalTagComponent.Kind()):
		return goalColor
	default:
		return groundColor
	}
}

func rayHit(w *ecs.World, owner, ray ecs.Entity) bool {
	events, ok := ecs.Get(w, owner, component.CollisionEventsComponent.Kind())
	if !ok {
		return false
	}
	for _, evt := range events.Rays() {
		if evt.Collider == uint64(ray) {
			return true
		}
	}
	return false
}

func debugPlayerInfo(w *ecs.World, player ecs.Entity) string {
	tr, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return ""
	}
	out := fmt.Sprintf("\npos: (%.2f, %.2f)", tr.Position.X, tr.Position.Y)
	if vel, ok := ecs.Get(w, player, component.VelocityComponent.Kind()); ok {
		out += fmt.Sprintf("  vel: (%.1f, %.1f)", vel.Value.X, vel.Value.Y)
	}
	if gd, ok := ecs.Get(w, player, component.GravityDirectionComponent.Kind()); ok {
		out += fmt.Sprintf("\ngravity: %v", gd.Dir)
	}
	if js, ok := ecs.Get(w, player, component.JumpStateComponent.Kind()); ok {
		out += fmt.Sprintf("  on ground: %t  turned: %t", js.OnGround, js.TurnedThisJump)
	}
	return out
}

func drawText(screen *ebiten.Image, s string, x, y int) {
	ebitenutil.DebugPrintAt(screen, s, x, y)
}
