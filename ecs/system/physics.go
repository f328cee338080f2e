package system

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/ketchup/ecs"
	"github.com/milk9111/ketchup/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeHazard
	collisionTypeSolid
)

// PhysicsSystem owns the Chipmunk space. Components are the source of
// truth for velocity going in; the space is the source of truth for
// position coming out.
type PhysicsSystem struct {
	space         *cp.Space
	width         float64
	height        float64
	handlersReady bool
	wallsReady    bool

	entities     map[ecs.Entity]*bodyInfo
	groundShapes map[*cp.Shape]ecs.Entity
	grounded     map[ecs.Entity]bool
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
}

func NewPhysicsSystem(width, height float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:        space,
		width:        width,
		height:       height,
		entities:     make(map[ecs.Entity]*bodyInfo),
		groundShapes: make(map[*cp.Shape]ecs.Entity),
		grounded:     make(map[ecs.Entity]bool),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// BodyCount returns how many entities currently have a body in the space.
func (ps *PhysicsSystem) BodyCount() int {
	if ps == nil {
		return 0
	}
	return len(ps.entities)
}

func (ps *PhysicsSystem) Update(w *ecs.World, dt time.Duration) {
	if ps == nil || w == nil || ps.space == nil {
		return
	}

	ps.ensureHandlers()
	ps.ensureWalls()
	ps.cleanupEntities(w)
	ps.syncEntities(w)

	for e := range ps.grounded {
		ps.grounded[e] = false
	}

	if dt > 0 {
		ps.space.Step(dt.Seconds())
	}

	ps.syncTransforms(w)
	ps.flushPlayerContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		playerEntity, okA := sys.groundShapes[shapeA]
		if !okA {
			var okB bool
			playerEntity, okB = sys.groundShapes[shapeB]
			if !okB {
				return true
			}
		}

		n := arb.Normal()
		if !okA {
			n = n.Neg()
		}
		// Grounded only when the contact pushes the sensor up (screen-down y).
		if n.Y <= 0.5 {
			return true
		}
		sys.grounded[playerEntity] = true
		return true
	}

	ps.handlersReady = true
}

// ensureWalls closes the field with four static segments. Only solid
// bodies collide with them; hazards are sensors and leave the field freely.
func (ps *PhysicsSystem) ensureWalls() {
	if ps.wallsReady || ps.width <= 0 || ps.height <= 0 {
		return
	}

	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: ps.width, Y: 0}},
		{a: cp.Vector{X: 0, Y: ps.height}, b: cp.Vector{X: ps.width, Y: ps.height}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: ps.height}},
		{a: cp.Vector{X: ps.width, Y: 0}, b: cp.Vector{X: ps.width, Y: ps.height}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, 1)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
	}
	ps.wallsReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, bodyComp *component.PhysicsBody, tr *component.Transform) {
			if bodyComp.Disabled {
				return
			}
			info := ps.entities[e]
			if info == nil {
				info = ps.createBodyInfo(w, e, bodyComp, tr)
				if info == nil {
					return
				}
				ps.entities[e] = info
				bodyComp.Body = info.body
				bodyComp.Shape = info.shapes[0]
			}

			if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
				info.body.SetVelocity(vel.X, vel.Y)
			}
			info.body.SetAngle(0)
			info.body.SetAngularVelocity(0)
		})
}

func (ps *PhysicsSystem) createBodyInfo(w *ecs.World, e ecs.Entity, bodyComp *component.PhysicsBody, tr *component.Transform) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		return nil
	}
	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}

	body := cp.NewBody(mass, cp.MomentForBox(mass, width, height))
	body.SetPosition(cp.Vector{X: tr.X, Y: tr.Y})
	gravity := cp.Vector{Y: bodyComp.Gravity}
	body.SetVelocityUpdateFunc(func(body *cp.Body, _ cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, gravity, damping, dt)
	})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	info := &bodyInfo{body: body, shapes: []*cp.Shape{shape}}

	isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
	if isPlayer {
		shape.SetCollisionType(collisionTypePlayer)
	} else {
		shape.SetCollisionType(collisionTypeHazard)
	}
	// Non-solid bodies pass through the walls.
	shape.SetSensor(!bodyComp.Solid)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	if isPlayer {
		groundShape := cp.NewBox2(body, cp.BB{
			L: -width * 0.45,
			B: height / 2.0,
			R: width * 0.45,
			T: height/2.0 + 2,
		}, 0)
		groundShape.SetSensor(true)
		groundShape.SetCollisionType(collisionTypePlayerGround)
		ps.space.AddShape(groundShape)
		ps.groundShapes[groundShape] = e
		ps.grounded[e] = false
		info.shapes = append(info.shapes, groundShape)
	}
	return info
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		tr.X = pos.X
		tr.Y = pos.Y
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			v := info.body.Velocity()
			vel.X = v.X
			vel.Y = v.Y
		}
	}
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	for e, grounded := range ps.grounded {
		player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok {
			continue
		}
		player.OnGround = grounded
	}
}

// cleanupEntities removes bodies of destroyed entities and of entities
// whose body was disabled (dying hazards).
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && !bodyComp.Disabled {
			continue
		} else if ok {
			bodyComp.Body = nil
			bodyComp.Shape = nil
		}

		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.groundShapes, shape)
		}
		ps.space.RemoveBody(info.body)
		delete(ps.entities, e)
		delete(ps.grounded, e)
	}
}
