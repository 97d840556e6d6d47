package component

import "github.com/milk9111/traverse/player"

// ClimbingWall groups the grip colliders of a wall. They only take part in
// world queries after a climb request and until the climb is cancelled.
type ClimbingWall struct {
	Colliders []player.ColliderID
	Enabled   bool
}

var ClimbingWallComponent = NewComponent[ClimbingWall]()
