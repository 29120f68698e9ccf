package geom

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/catsland/common"
)

// Vector helpers missing from cp.Vector. All are per-axis unless noted.

func IsZero(v cp.Vector) bool {
	return v.X == 0 && v.Y == 0
}

func IsFinite(v cp.Vector) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func Abs(v cp.Vector) cp.Vector {
	return cp.Vector{X: math.Abs(v.X), Y: math.Abs(v.Y)}
}

func MulAxes(a, b cp.Vector) cp.Vector {
	return cp.Vector{X: a.X * b.X, Y: a.Y * b.Y}
}

// DivAxes divides per axis. A zero divisor yields an infinity or NaN.
func DivAxes(a, b cp.Vector) cp.Vector {
	return cp.Vector{X: a.X / b.X, Y: a.Y / b.Y}
}

// Recip returns 1/v per axis.
func Recip(v cp.Vector) cp.Vector {
	return DivAxes(cp.Vector{X: 1, Y: 1}, v)
}

func ClampAxes(v, lo, hi cp.Vector) cp.Vector {
	return cp.Vector{
		X: common.Clamp(v.X, lo.X, hi.X),
		Y: common.Clamp(v.Y, lo.Y, hi.Y),
	}
}

// Sign maps each axis to -1, 0 or 1. An axis-aligned vector becomes a unit
// vector, which makes it comparable with common.DirectionFromVector.
func Sign(v cp.Vector) cp.Vector {
	return cp.Vector{X: common.Sign(v.X), Y: common.Sign(v.Y)}
}

// Rotate rotates v counterclockwise by angle radians.
func Rotate(v cp.Vector, angle float64) cp.Vector {
	return v.Rotate(cp.ForAngle(angle))
}

// DirectionOf reports the cardinal direction v points along, if it is
// axis-aligned and non-zero.
func DirectionOf(v cp.Vector) (common.Direction, bool) {
	return common.DirectionFromVector(Sign(v))
}
