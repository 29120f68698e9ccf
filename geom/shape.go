package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Ray is a segment whose origin is supplied at test time. The length of
// Direction is how far the ray reaches.
type Ray struct {
	Direction cp.Vector
}

func (r Ray) Length() float64 {
	return r.Direction.Length()
}

// Box is an axis-aligned box whose center is supplied at test time.
// Size is the full width and height.
type Box struct {
	Size cp.Vector
}

// NewBox builds a box, folding negative sizes to their magnitude.
func NewBox(width, height float64) Box {
	return Box{Size: cp.Vector{X: math.Abs(width), Y: math.Abs(height)}}
}

// Bounds returns the box extents around center.
func (b Box) Bounds(center cp.Vector) cp.BB {
	return cp.NewBBForExtents(center, b.Size.X/2, b.Size.Y/2)
}

// Inflate returns the Minkowski sum of b and other.
func (b Box) Inflate(other Box) Box {
	return Box{Size: b.Size.Add(other.Size)}
}

// Rotated swaps width and height.
func (b Box) Rotated() Box {
	return Box{Size: cp.Vector{X: b.Size.Y, Y: b.Size.X}}
}
