package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/catsland/geom"
)

// BoxCollider is an axis aligned box attached to Owner at Offset from the
// owner's transform.
type BoxCollider struct {
	Owner  uint64 // ecs.Entity
	Offset cp.Vector
	Box    geom.Box
}

var BoxColliderComponent = NewComponent[BoxCollider]()

// RayCollider is a ray cast from Owner's transform plus Offset.
type RayCollider struct {
	Owner  uint64
	Offset cp.Vector
	Ray    geom.Ray
}

var RayColliderComponent = NewComponent[RayCollider]()
