package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type GoalTag struct{}

var GoalTagComponent = NewComponent[GoalTag]()

type GroundTag struct{}

var GroundTagComponent = NewComponent[GroundTag]()
