package component

import "time"

// Dying marks an entity playing its death effect. It no longer interacts
// with anything and is destroyed once Elapsed reaches Duration.
type Dying struct {
	Elapsed    time.Duration
	Duration   time.Duration
	StartScale float64
	EndScale   float64
}

var DyingComponent = NewComponent[Dying]()
