package geom

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/catsland/common"
)

// RayIntersection describes where a ray first meets a box.
// Toi is measured in the units of RayDirection's length, not as a fraction.
type RayIntersection struct {
	Toi          float64
	Point        cp.Vector
	Normal       cp.Vector
	RayOrigin    cp.Vector
	RayDirection cp.Vector
}

// minToi keeps the earlier candidate. A NaN time never wins.
func minToi(a, b RayIntersection) RayIntersection {
	if math.IsNaN(a.Toi) {
		return b
	}
	if math.IsNaN(b.Toi) {
		return a
	}
	if a.Toi < b.Toi {
		return a
	}
	return b
}

// maxToi keeps the later candidate. A NaN time never wins.
func maxToi(a, b RayIntersection) RayIntersection {
	if math.IsNaN(a.Toi) {
		return b
	}
	if math.IsNaN(b.Toi) {
		return a
	}
	if a.Toi > b.Toi {
		return a
	}
	return b
}

// Raycast runs the slab test of a ray starting at origin against box centered
// at center. A zero-length ray never hits.
func Raycast(origin cp.Vector, ray Ray, center cp.Vector, box Box) (RayIntersection, bool) {
	length := ray.Length()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return RayIntersection{}, false
	}

	bounds := box.Bounds(center)
	bottomLeft := cp.Vector{X: bounds.L, Y: bounds.B}.Sub(origin)
	topRight := cp.Vector{X: bounds.R, Y: bounds.T}.Sub(origin)

	// t is the distance along the ray to each extended side of the box.
	// Zero direction components turn into infinities here on purpose.
	dir := ray.Direction.Normalize()
	inv := Recip(dir)
	tTopRight := MulAxes(topRight, inv)
	tBottomLeft := MulAxes(bottomLeft, inv)

	side := func(toi float64, normal common.Direction) RayIntersection {
		return RayIntersection{
			Toi:          toi,
			Normal:       normal.Vector(),
			RayOrigin:    origin,
			RayDirection: ray.Direction,
		}
	}
	left := side(tBottomLeft.X, common.Left)
	right := side(tTopRight.X, common.Right)
	top := side(tTopRight.Y, common.Up)
	bottom := side(tBottomLeft.Y, common.Down)

	tmin := maxToi(minToi(left, right), minToi(top, bottom))
	tmax := minToi(maxToi(left, right), maxToi(top, bottom))

	switch {
	case math.IsNaN(tmin.Toi) || math.IsNaN(tmax.Toi):
		return RayIntersection{}, false
	case tmax.Toi < tmin.Toi: // misses
		return RayIntersection{}, false
	case tmin.Toi < 0 && tmax.Toi < 0: // behind the origin
		return RayIntersection{}, false
	case tmin.Toi < 0 && tmax.Toi > length: // starts inside, exits past the end
		return RayIntersection{}, false
	case tmin.Toi > 0 && tmin.Toi >= length: // out of reach
		return RayIntersection{}, false
	}

	hit := tmax
	if tmin.Toi >= 0 {
		hit = tmin
	}
	hit.Point = origin.Add(dir.Mult(hit.Toi))
	return hit, true
}
