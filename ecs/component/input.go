package component

import "github.com/jakecoffman/cp"

// Input stores per-tick input state for an entity. MoveX and MoveY are in
// [-1, 1] with y up.
type Input struct {
	MoveX       float64
	MoveY       float64
	Jump        bool
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()

// Move returns the movement axes as a vector.
func (i *Input) Move() cp.Vector {
	if i == nil {
		return cp.Vector{}
	}
	return cp.Vector{X: i.MoveX, Y: i.MoveY}
}
