package common

import "github.com/jakecoffman/cp"

// Direction is one of the four cardinal directions. The y axis points up.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in declaration order.
var Directions = [...]Direction{Up, Down, Left, Right}

// DirectionFromVector matches v exactly against the four unit vectors.
// Any other vector, including scaled ones, reports ok=false.
func DirectionFromVector(v cp.Vector) (Direction, bool) {
	switch v {
	case cp.Vector{X: 0, Y: 1}:
		return Up, true
	case cp.Vector{X: 0, Y: -1}:
		return Down, true
	case cp.Vector{X: -1, Y: 0}:
		return Left, true
	case cp.Vector{X: 1, Y: 0}:
		return Right, true
	}
	return Up, false
}

// Vector returns the unit vector for d.
func (d Direction) Vector() cp.Vector {
	switch d {
	case Up:
		return cp.Vector{X: 0, Y: 1}
	case Down:
		return cp.Vector{X: 0, Y: -1}
	case Left:
		return cp.Vector{X: -1, Y: 0}
	default:
		return cp.Vector{X: 1, Y: 0}
	}
}

func (d Direction) Reverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Clockwise turns a quarter turn clockwise: Up, Right, Down, Left.
func (d Direction) Clockwise() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	default:
		return Up
	}
}

// Counterclockwise turns a quarter turn counterclockwise: Up, Left, Down, Right.
func (d Direction) Counterclockwise() Direction {
	switch d {
	case Up:
		return Left
	case Left:
		return Down
	case Down:
		return Right
	default:
		return Up
	}
}

// Forward is the walking axis for a body pulled towards d.
// With gravity Down, forward is Right.
func (d Direction) Forward() Direction {
	return d.Counterclockwise()
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// ParseDirection accepts the names produced by String.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range Directions {
		if d.String() == s {
			return d, true
		}
	}
	return Down, false
}
