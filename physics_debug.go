package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

// drawPhysics outlines every shape in the round's space. Used by -debug.
func drawPhysics(screen *ebiten.Image, space *cp.Space, dx, dy float64) {
	if space == nil || screen == nil {
		return
	}
	cp.DrawSpace(space, &shapeDrawer{screen: screen, dx: dx, dy: dy})
}

type shapeDrawer struct {
	screen *ebiten.Image
	dx, dy float64
}

func (d *shapeDrawer) line(a, b cp.Vector, c color.Color) {
	vector.StrokeLine(d.screen, float32(a.X+d.dx), float32(a.Y+d.dy), float32(b.X+d.dx), float32(b.Y+d.dy), 1, c, false)
}

func (d *shapeDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := toRGBA(outline)
	const steps = 16
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / steps)
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		d.line(prev, cur, c)
		prev = cur
	}
	d.line(pos, cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}, c)
}

func (d *shapeDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, toRGBA(fill))
}

func (d *shapeDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, toRGBA(outline))
}

func (d *shapeDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	c := toRGBA(outline)
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], c)
	}
}

func (d *shapeDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	c := toRGBA(fill)
	l := size / 2
	d.line(cp.Vector{X: pos.X - l, Y: pos.Y}, cp.Vector{X: pos.X + l, Y: pos.Y}, c)
	d.line(cp.Vector{X: pos.X, Y: pos.Y - l}, cp.Vector{X: pos.X, Y: pos.Y + l}, c)
}

func (d *shapeDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *shapeDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

// ShapeColor: sensors (hazards, the ground probe) yellow, walls blue,
// the player magenta.
func (d *shapeDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	switch {
	case shape == nil:
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	case shape.Sensor():
		return cp.FColor{R: 1.0, G: 0.85, B: 0.2, A: 1.0}
	case shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC:
		return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
	}
	return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}
}

func (d *shapeDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *shapeDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *shapeDrawer) Data() interface{} {
	return nil
}

func toRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		return uint8(math.Max(0, math.Min(1, float64(v))) * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
