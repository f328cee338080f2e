package component

// Velocity in field units per second. Controllers and AI write it; the
// physics system pushes it into the body before stepping and reads the
// integrated value back afterwards.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()
