package component

// Pickup grants score and healing once. Active is cleared the moment it is
// consumed so a second overlap in the same tick is ignored.
type Pickup struct {
	Score  int
	Heal   int
	Active bool
}

var PickupComponent = NewComponent[Pickup]()
