package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/catsland/common"
)

type Velocity struct {
	Value cp.Vector
}

var VelocityComponent = NewComponent[Velocity]()

type Acceleration struct {
	Value cp.Vector
}

var AccelerationComponent = NewComponent[Acceleration]()

// Gravity is the strength of the pull along GravityDirection.
type Gravity struct {
	Value float64
}

var GravityComponent = NewComponent[Gravity]()

// GravityDirection is the direction an entity falls in.
type GravityDirection struct {
	Dir common.Direction
}

var GravityDirectionComponent = NewComponent[GravityDirection]()

// Movement is the displacement planned for the current tick. Collision
// sweeps use it before it is applied to the transform.
type Movement struct {
	Delta cp.Vector
}

var MovementComponent = NewComponent[Movement]()
