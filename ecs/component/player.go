package component

type Player struct {
	MoveSpeed float64
	JumpSpeed float64
	OnGround  bool
	Alive     bool
}

var PlayerComponent = NewComponent[Player]()
