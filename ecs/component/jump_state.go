package component

import "github.com/milk9111/catsland/common"

// JumpState tracks grounding and the once-per-airborne-phase gravity turn.
// LastHorizontal and LastVertical keep the most recent non-zero direction
// of travel along each gravity axis.
type JumpState struct {
	OnGround       bool
	TurnedThisJump bool
	LastHorizontal common.Direction
	LastVertical   common.Direction
}

var JumpStateComponent = NewComponent[JumpState]()
