package component

// Collider is the overlap box centered on the Transform.
type Collider struct {
	Width  float64
	Height float64
}

var ColliderComponent = NewComponent[Collider]()
