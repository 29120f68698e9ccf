package geom

import "github.com/jakecoffman/cp"

// Sweep is the first contact of a moving box. Position leaves the mover
// touching the target. Time is the distance travelled before contact, in the
// units of the requested displacement; see Fraction.
type Sweep struct {
	Position cp.Vector
	Time     float64
	Normal   cp.Vector
}

// Fraction converts Time into the share of delta travelled.
func (s Sweep) Fraction(delta cp.Vector) float64 {
	l := delta.Length()
	if l == 0 {
		return 0
	}
	return s.Time / l
}

// SweepBox moves box A by delta and reports where it first touches box B.
//
// Without motion the boxes are only tested for overlap, and A is pushed out
// at Time 0. Boxes that merely touch do not count. With motion, B is
// inflated by A's size and the problem becomes a raycast from A's center.
func SweepBox(aPos, aSize, bPos, bSize, delta cp.Vector) (Sweep, bool) {
	if IsZero(delta) {
		hit, ok := Overlap(aPos, aSize, bPos, bSize)
		if !ok || IsZero(hit.Delta) {
			return Sweep{}, false
		}
		return Sweep{
			Position: aPos.Sub(hit.Delta),
			Time:     0,
			Normal:   hit.Normal,
		}, true
	}

	inflated := Box{Size: bSize}.Inflate(Box{Size: aSize})
	hit, ok := Raycast(aPos, Ray{Direction: delta}, bPos, inflated)
	if !ok {
		return Sweep{}, false
	}
	return Sweep{
		Position: hit.Point,
		Time:     hit.Toi,
		Normal:   hit.Normal,
	}, true
}
