package component

// SpriteKind names the visual the presentation layer should create.
type SpriteKind string

const (
	SpritePlayer    SpriteKind = "player"
	SpriteHazard    SpriteKind = "ketchup"
	SpritePickup    SpriteKind = "raisin"
	SpriteExplosion SpriteKind = "explosion"
)

type Sprite struct {
	Kind SpriteKind
}

var SpriteComponent = NewComponent[Sprite]()
