package component

import "github.com/milk9111/traverse/player"

// PhysicsBody is the simulated rigid body the controller steers.
type PhysicsBody struct {
	Body *player.Body
	// Collider is the body's own box in the physics world, moved with it.
	// Zero for bodies that are not queryable.
	Collider player.ColliderID
	// Grounded is the physics system's own contact result from the last step.
	Grounded bool
	// Airborne counts consecutive frames without ground contact.
	Airborne int
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// StaticBox is level geometry registered with the physics world.
type StaticBox struct {
	Collider player.WorldCollider
	Name     string
}

var StaticBoxComponent = NewComponent[StaticBox]()
