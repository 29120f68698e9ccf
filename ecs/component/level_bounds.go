package component

import "github.com/jakecoffman/cp"

// LevelBounds stores the world-space area a player may occupy. Leaving it
// kills the player.
type LevelBounds struct {
	Bounds cp.BB
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
