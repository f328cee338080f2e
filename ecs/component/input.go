package component

// Direction is one of the four movement inputs.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// Input stores the per-tick directional state for an entity.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
}

var InputComponent = NewComponent[Input]()
