package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/traverse/player"
)

// Player binds an entity to its locomotion controller.
type Player struct {
	Controller *player.Controller
	Prefab     string
	Spawn      mgl64.Vec3
}

var PlayerComponent = NewComponent[Player]()
