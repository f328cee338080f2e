package component

import "time"

// Hazard is a seeking enemy. Target is a non-owning player handle
// (an ecs.Entity value); it is resolved through the world every tick and
// never dereferenced once the player is gone.
type Hazard struct {
	Target     uint64
	Following  bool
	SpawnedAt  time.Duration
	Damage     int
	RetargetIn time.Duration
}

var HazardComponent = NewComponent[Hazard]()
