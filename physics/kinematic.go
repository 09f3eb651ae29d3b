package physics

import (
	"math"

	"github.com/LazyCat420/battle-bots/common/utils"
	"github.com/LazyCat420/battle-bots/common/utils/vector"
)

// kinematicWorld is a deterministic first-order integrator. It backs the 3D
// profile and doubles as the dependency-free engine used by simulation tests:
// identical inputs replay to identical floats on every platform.
//
// Dynamic bodies collide as their ground-plane circles, walls act as planar
// barriers whatever their height, and the floor plane clamps body reference
// points to z >= 0.
type kinematicWorld struct {
	gravity   vector.Vector3
	bodies    []*kinematicBody
	plane     *kinematicBody
	onContact func(c Contact)
	touching  map[pairKey]bool
	destroyed bool
}

type pairKey struct {
	lo int
	hi int
}

func makePairKey(a int, b int) pairKey {
	if a < b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

// NewKinematicWorld builds the integrator backend. The 3D profile passes a
// downward gravity; a null vector keeps everything in the ground plane.
func NewKinematicWorld(gravity vector.Vector3) World {
	return &kinematicWorld{
		gravity:  gravity,
		touching: make(map[pairKey]bool),
	}
}

func (w *kinematicWorld) checkAlive() {
	utils.Assert(!w.destroyed, "physics: kinematic world used after Destroy")
}

func (w *kinematicWorld) CreateBody(def BodyDef) Body {
	w.checkAlive()

	b := &kinematicBody{
		world:       w,
		index:       len(w.bodies),
		shape:       def.Shape,
		position:    def.Position,
		angle:       def.Angle,
		radius:      bodyRadius(def),
		halfExtents: def.HalfExtents,
		mass:        bodyMass(def),
		restitution: def.Restitution,
		damping:     def.LinearDamping,
		static:      def.Static,
		userdata:    def.UserData,
	}
	w.bodies = append(w.bodies, b)

	return b
}

func (w *kinematicWorld) CreateStaticBox(position vector.Vector3, halfExtents vector.Vector3, userdata interface{}) Body {
	return w.CreateBody(BodyDef{
		Shape:       BodyShapes.Box,
		Position:    position,
		HalfExtents: halfExtents,
		Static:      true,
		UserData:    userdata,
	})
}

func (w *kinematicWorld) CreateStaticPlane(userdata interface{}) Body {
	w.checkAlive()

	body := w.CreateBody(BodyDef{
		Shape:    BodyShapes.Box,
		Static:   true,
		UserData: userdata,
	}).(*kinematicBody)
	w.plane = body

	return body
}

func (w *kinematicWorld) OnCollisionStart(fn func(c Contact)) {
	w.checkAlive()
	w.onContact = fn
}

func (w *kinematicWorld) Destroy() {
	w.checkAlive()
	w.destroyed = true
	w.onContact = nil
}

func (w *kinematicWorld) Step(dt float64) {
	w.checkAlive()

	for _, b := range w.bodies {
		if b.static || b.removed {
			continue
		}

		b.velocity = b.velocity.Add(w.gravity.Scale(dt))
		// Same damping model as box2d: v *= 1 / (1 + dt*d)
		if b.damping > 0 {
			b.velocity = b.velocity.Scale(1.0 / (1.0 + dt*b.damping))
		}
		b.position = b.position.Add(b.velocity.Scale(dt))
	}

	touchingNow := make(map[pairKey]bool)
	newContacts := make([]Contact, 0)

	note := func(a *kinematicBody, b *kinematicBody, point vector.Vector3) {
		key := makePairKey(a.index, b.index)
		if touchingNow[key] {
			return
		}
		touchingNow[key] = true
		if !w.touching[key] {
			newContacts = append(newContacts, Contact{A: a, B: b, Position: point})
		}
	}

	for _, b := range w.bodies {
		if b.static || b.removed {
			continue
		}

		if w.plane != nil && b.position.GetZ() < 0 {
			x, y, _ := b.position.Get()
			b.position = vector.MakeVector3(x, y, 0)
			if vz := b.velocity.GetZ(); vz < 0 {
				b.velocity = vector.MakeVector3(b.velocity.GetX(), b.velocity.GetY(), -b.restitution*vz)
			}
			note(b, w.plane, b.position)
		}

		for _, wall := range w.bodies {
			if !wall.static || wall.removed || wall == w.plane {
				continue
			}
			if point, hit := w.resolveCircleBox(b, wall); hit {
				note(b, wall, point)
			}
		}
	}

	for i := 0; i < len(w.bodies); i++ {
		a := w.bodies[i]
		if a.static || a.removed {
			continue
		}
		for j := i + 1; j < len(w.bodies); j++ {
			b := w.bodies[j]
			if b.static || b.removed {
				continue
			}
			if point, hit := w.resolveCircleCircle(a, b); hit {
				note(a, b, point)
			}
		}
	}

	w.touching = touchingNow

	if w.onContact != nil {
		for _, c := range newContacts {
			w.onContact(c)
		}
	}
}

// resolveCircleBox pushes a dynamic body's ground circle out of a static box
// and kills the inward velocity component.
func (w *kinematicWorld) resolveCircleBox(b *kinematicBody, wall *kinematicBody) (vector.Vector3, bool) {
	px, py, pz := b.position.Get()
	cx, cy, _ := wall.position.Get()
	hx, hy, _ := wall.halfExtents.Get()

	closestX := math.Max(cx-hx, math.Min(px, cx+hx))
	closestY := math.Max(cy-hy, math.Min(py, cy+hy))

	dx := px - closestX
	dy := py - closestY
	distSq := dx*dx + dy*dy

	// Exact touch still counts as contact, so a body pressed against a wall
	// keeps its pair in the touching set instead of re-firing every step.
	if distSq > b.radius*b.radius {
		return vector.MakeNullVector3(), false
	}

	var nx, ny float64
	var depth float64

	if distSq > 0 {
		dist := math.Sqrt(distSq)
		nx, ny = dx/dist, dy/dist
		depth = b.radius - dist
	} else {
		// Center inside the box: eject along the shallowest axis.
		left := px - (cx - hx)
		right := (cx + hx) - px
		bottom := py - (cy - hy)
		top := (cy + hy) - py

		min := left
		nx, ny = -1, 0
		if right < min {
			min = right
			nx, ny = 1, 0
		}
		if bottom < min {
			min = bottom
			nx, ny = 0, -1
		}
		if top < min {
			min = top
			nx, ny = 0, 1
		}
		depth = min + b.radius
	}

	normal := vector.MakeVector3(nx, ny, 0)
	b.position = b.position.Add(normal.Scale(depth))

	vn := b.velocity.Dot(normal)
	if vn < 0 {
		b.velocity = b.velocity.Sub(normal.Scale((1.0 + b.restitution) * vn))
	}

	return vector.MakeVector3(closestX, closestY, pz), true
}

// resolveCircleCircle separates two overlapping dynamic bodies symmetrically
// and removes their approach velocity.
func (w *kinematicWorld) resolveCircleCircle(a *kinematicBody, b *kinematicBody) (vector.Vector3, bool) {
	delta := b.position.Sub(a.position).Flatten()
	distSq := delta.MagSq()
	sum := a.radius + b.radius

	if distSq > sum*sum {
		return vector.MakeNullVector3(), false
	}

	var normal vector.Vector3
	var depth float64

	if distSq > 0 {
		dist := math.Sqrt(distSq)
		normal = delta.DivScalar(dist)
		depth = sum - dist
	} else {
		normal = vector.MakeVector3(1, 0, 0)
		depth = sum
	}

	a.position = a.position.Sub(normal.Scale(depth / 2))
	b.position = b.position.Add(normal.Scale(depth / 2))

	if approach := b.velocity.Sub(a.velocity).Dot(normal); approach < 0 {
		half := normal.Scale(approach / 2)
		a.velocity = a.velocity.Add(half)
		b.velocity = b.velocity.Sub(half)
	}

	point := a.position.Add(normal.Scale(a.radius))
	return point, true
}

func bodyRadius(def BodyDef) float64 {
	if def.Shape == BodyShapes.Box {
		return math.Max(def.HalfExtents.GetX(), def.HalfExtents.GetY())
	}
	return def.Radius
}

func bodyMass(def BodyDef) float64 {
	var area float64
	if def.Shape == BodyShapes.Box {
		area = 4 * def.HalfExtents.GetX() * def.HalfExtents.GetY()
	} else {
		area = math.Pi * def.Radius * def.Radius
	}

	mass := def.Density * area
	if mass <= 0 {
		mass = 1
	}
	return mass
}

type kinematicBody struct {
	world       *kinematicWorld
	index       int
	shape       _bodyshape
	position    vector.Vector3
	angle       float64
	velocity    vector.Vector3
	radius      float64
	halfExtents vector.Vector3
	mass        float64
	restitution float64
	damping     float64
	static      bool
	userdata    interface{}
	removed     bool
}

func (b *kinematicBody) checkAlive() {
	utils.Assert(!b.removed, "physics: body used after Remove")
	b.world.checkAlive()
}

func (b *kinematicBody) Position() vector.Vector3 {
	b.checkAlive()
	return b.position
}

func (b *kinematicBody) Angle() float64 {
	b.checkAlive()
	return b.angle
}

func (b *kinematicBody) SetPose(position vector.Vector3, angle float64) {
	b.checkAlive()
	b.position = position
	b.angle = angle
}

func (b *kinematicBody) Velocity() vector.Vector3 {
	b.checkAlive()
	return b.velocity
}

func (b *kinematicBody) SetVelocity(v vector.Vector3) {
	b.checkAlive()
	b.velocity = v
}

func (b *kinematicBody) ApplyImpulse(impulse vector.Vector3) {
	b.checkAlive()
	b.velocity = b.velocity.Add(impulse.DivScalar(b.mass))
}

func (b *kinematicBody) UserData() interface{} {
	return b.userdata
}

func (b *kinematicBody) Remove() {
	b.checkAlive()
	b.removed = true
}
