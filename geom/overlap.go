package geom

import "github.com/jakecoffman/cp"

// AabbIntersection is the single-axis resolution of two overlapping boxes.
// Adding Delta to the second box separates it from the first. Normal points
// away from the first box. Point lies on the struck face of the first box.
type AabbIntersection struct {
	Delta  cp.Vector
	Normal cp.Vector
	Point  cp.Vector
}

// Overlap runs the separating axis test between box A and box B. Touching
// boxes overlap with a zero Delta.
func Overlap(aPos, aSize, bPos, bSize cp.Vector) (AabbIntersection, bool) {
	d := bPos.Sub(aPos)
	p := aSize.Add(bSize).Mult(0.5).Sub(Abs(d))
	if !(p.X >= 0 && p.Y >= 0) {
		return AabbIntersection{}, false
	}

	if p.X < p.Y {
		s := pushSign(d.X)
		return AabbIntersection{
			Delta:  cp.Vector{X: p.X * s},
			Normal: cp.Vector{X: s},
			Point:  cp.Vector{X: aPos.X + aSize.X/2*s, Y: bPos.Y},
		}, true
	}

	s := pushSign(d.Y)
	return AabbIntersection{
		Delta:  cp.Vector{Y: p.Y * s},
		Normal: cp.Vector{Y: s},
		Point:  cp.Vector{X: bPos.X, Y: aPos.Y + aSize.Y/2*s},
	}, true
}

func pushSign(d float64) float64 {
	if d < 0 {
		return -1
	}
	return 1
}
