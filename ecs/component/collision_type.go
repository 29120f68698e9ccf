package component

// CollisionType classifies an entity for collision consumers. It is copied
// into every event raised against the entity.
type CollisionType uint8

const (
	CollisionTypePlayer CollisionType = iota + 1
	CollisionTypeGoal
	CollisionTypeGround
)

func (t CollisionType) String() string {
	switch t {
	case CollisionTypePlayer:
		return "player"
	case CollisionTypeGoal:
		return "goal"
	case CollisionTypeGround:
		return "ground"
	default:
		return "unknown"
	}
}

var CollisionTypeComponent = NewComponent[CollisionType]()
