package main

import (
	"image/color"
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/ketchup/assets"
	"github.com/milk9111/ketchup/common"
	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/round"
)

var (
	colorBackground = color.NRGBA{R: 0x1d, G: 0x1b, B: 0x22, A: 0xff}
	colorPlayer     = colornames.Gold
	colorHazard     = colornames.Crimson
	colorPickup     = colornames.Saddlebrown
	colorExplosion  = colornames.Orangered
	colorHealth     = colornames.Limegreen
	colorHealthBack = colornames.Darkslategray
	colorButton     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x30}
	colorButtonDown = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x70}
)

const touchButtonSize = 72

// touchPad is four on-screen buttons mirroring the arrow keys. Touches and
// the left mouse button both press them.
type touchPad struct {
	width, height float64
	held          map[round.Direction]bool
	touchIDs      []ebiten.TouchID
}

func newTouchPad(width, height float64) *touchPad {
	return &touchPad{width: width, height: height, held: make(map[round.Direction]bool, 4)}
}

func (p *touchPad) buttons() map[round.Direction][4]float64 {
	y := p.height - touchButtonSize - 12
	return map[round.Direction][4]float64{
		round.Left:  {12, y, touchButtonSize, touchButtonSize},
		round.Right: {24 + touchButtonSize, y, touchButtonSize, touchButtonSize},
		round.Down:  {p.width - 2*touchButtonSize - 24, y, touchButtonSize, touchButtonSize},
		round.Up:    {p.width - touchButtonSize - 12, y, touchButtonSize, touchButtonSize},
	}
}

func (p *touchPad) Update() {
	clear(p.held)

	var points [][2]float64
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	for _, id := range p.touchIDs {
		x, y := ebiten.TouchPosition(id)
		points = append(points, [2]float64{float64(x), float64(y)})
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		points = append(points, [2]float64{float64(x), float64(y)})
	}

	for dir, r := range p.buttons() {
		for _, pt := range points {
			if pt[0] >= r[0] && pt[0] < r[0]+r[2] && pt[1] >= r[1] && pt[1] < r[1]+r[3] {
				p.held[dir] = true
				break
			}
		}
	}
}

func (p *touchPad) Draw(screen *ebiten.Image) {
	for dir, r := range p.buttons() {
		clr := colorButton
		if p.held[dir] {
			clr = colorButtonDown
		}
		vector.FillRect(screen, float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3]), clr, false)
	}
}

// controls reads arrow keys, WASD and the touch pad.
type controls struct {
	pad *touchPad
}

var directionKeys = map[round.Direction][]ebiten.Key{
	round.Left:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	round.Right: {ebiten.KeyArrowRight, ebiten.KeyD},
	round.Up:    {ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeySpace},
	round.Down:  {ebiten.KeyArrowDown, ebiten.KeyS},
}

func (c controls) IsDown(dir round.Direction) bool {
	for _, k := range directionKeys[dir] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return c.pad != nil && c.pad.held[dir]
}

// restartPressed covers the keyboard. Taps go through the result panel's
// Play again button.
func restartPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
}

// hud keeps the numbers the overlay draws.
type hud struct {
	score     int
	health    int
	maxHealth int
	over      bool
	phase     round.Phase
}

func (h *hud) SetScore(score int) {
	h.score = score
}

func (h *hud) SetHealth(current, max int) {
	h.health = current
	h.maxHealth = max
}

func (h *hud) RoundOver(phase round.Phase, score int) {
	h.over = true
	h.phase = phase
	h.score = score
}

func (h *hud) reset() {
	*h = hud{}
}

type sprite struct {
	kind     round.SpriteKind
	x, y     float64
	rotation float64
	scale    float64
}

// spriteLayer mirrors entity visuals as flat shapes.
type spriteLayer struct {
	cfg     round.Config
	sprites map[ecs.Entity]*sprite
}

func newSpriteLayer(cfg round.Config) *spriteLayer {
	return &spriteLayer{cfg: cfg, sprites: make(map[ecs.Entity]*sprite)}
}

func (l *spriteLayer) Spawn(e ecs.Entity, kind round.SpriteKind, x, y float64) {
	l.sprites[e] = &sprite{kind: kind, x: x, y: y, scale: 1}
}

func (l *spriteLayer) Move(e ecs.Entity, x, y, rotation, scale float64) {
	s, ok := l.sprites[e]
	if !ok {
		return
	}
	s.x, s.y, s.rotation, s.scale = x, y, rotation, scale
}

func (l *spriteLayer) Despawn(e ecs.Entity) {
	delete(l.sprites, e)
}

func (l *spriteLayer) reset(cfg round.Config) {
	l.cfg = cfg
	clear(l.sprites)
}

func (l *spriteLayer) Draw(screen *ebiten.Image, dx, dy float64) {
	for _, s := range l.sprites {
		x := float32(s.x + dx)
		y := float32(s.y + dy)
		switch s.kind {
		case round.SpritePlayer:
			w := float32(l.cfg.PlayerWidth * s.scale)
			h := float32(l.cfg.PlayerHeight * s.scale)
			vector.FillRect(screen, x-w/2, y-h/2, w, h, colorPlayer, false)
		case round.SpriteHazard:
			r := float32(l.cfg.HazardSize / 2 * s.scale)
			vector.FillCircle(screen, x, y, r, colorHazard, true)
			// nozzle marks the heading
			nx := x + float32(math.Sin(s.rotation))*r
			ny := y - float32(math.Cos(s.rotation))*r
			vector.FillCircle(screen, nx, ny, r/3, colorHazard, true)
		case round.SpritePickup:
			r := float32(l.cfg.PickupSize / 2 * s.scale)
			vector.FillCircle(screen, x, y, r, colorPickup, true)
		case round.SpriteExplosion:
			r := float32(l.cfg.HazardSize * l.cfg.HazardScale / 2 * s.scale)
			vector.FillCircle(screen, x, y, r, colorExplosion, true)
		}
	}
}

// soundBank plays the generated tones. A failed load is logged once and
// the sound stays silent.
type soundBank struct {
	muted  bool
	failed map[string]bool
}

func newSoundBank(muted bool) *soundBank {
	return &soundBank{muted: muted, failed: make(map[string]bool)}
}

func (b *soundBank) Play(name string) {
	if b.muted || b.failed[name] {
		return
	}
	p, err := assets.LoadAudioPlayer(name)
	if err != nil {
		log.Printf("sound %s: %v", name, err)
		b.failed[name] = true
		return
	}
	p.Play()
}

// shaker offsets the camera by a fraction of the screen width that fades
// over the shake window.
type shaker struct {
	width     float64
	intensity float64
	duration  time.Duration
	remaining time.Duration
}

func (s *shaker) Shake(intensity float64, d time.Duration) {
	if intensity <= 0 || d <= 0 {
		return
	}
	s.intensity = intensity
	s.duration = d
	s.remaining = d
}

func (s *shaker) Update(dt time.Duration) {
	if s.remaining > 0 {
		s.remaining -= dt
	}
}

func (s *shaker) Offset() (float64, float64) {
	if s.remaining <= 0 || s.duration <= 0 {
		return 0, 0
	}
	t := 1 - float64(s.remaining)/float64(s.duration)
	amp := common.Lerp(s.intensity*s.width, 0, t)
	return (rand.Float64()*2 - 1) * amp, (rand.Float64()*2 - 1) * amp
}
