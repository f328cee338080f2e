package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and body configuration.
// Gravity is per body: the space itself has none, matching arcade-style
// bodies that each carry their own gravity.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	Width    float64
	Height   float64
	Mass     float64
	Gravity  float64
	Solid    bool
	Disabled bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
