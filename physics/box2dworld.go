package physics

import (
	"github.com/bytearena/box2d"

	"github.com/LazyCat420/battle-bots/common/utils"
	"github.com/LazyCat420/battle-bots/common/utils/vector"
)

const (
	b2VelocityIterations = 8 // higher improves stability; default 8 in testbed
	b2PositionIterations = 3 // higher improves overlap resolution; default 3 in testbed
)

// box2dWorld simulates the arena ground plane top-down; Z is ignored on the
// way in and reads back as zero.
type box2dWorld struct {
	world     *box2d.B2World
	listener  *collisionListener
	onContact func(c Contact)
	destroyed bool
}

// NewBox2dWorld builds the flat-profile backend: a zero-gravity box2d world.
func NewBox2dWorld() World {
	gravity := box2d.MakeB2Vec2(0.0, 0.0) // top-down, no gravity
	world := box2d.MakeB2World(gravity)

	w := &box2dWorld{
		world:    &world,
		listener: newCollisionListener(),
	}
	w.world.SetContactListener(w.listener)

	return w
}

func (w *box2dWorld) checkAlive() {
	utils.Assert(!w.destroyed, "physics: box2d world used after Destroy")
}

func (w *box2dWorld) Step(dt float64) {
	w.checkAlive()

	w.world.Step(dt, b2VelocityIterations, b2PositionIterations)

	for _, collision := range w.listener.PopCollisions() {

		bodyA, okA := collision.GetFixtureA().GetBody().GetUserData().(*box2dBody)
		bodyB, okB := collision.GetFixtureB().GetBody().GetUserData().(*box2dBody)
		if !okA || !okB {
			continue
		}

		if w.onContact == nil {
			continue
		}

		worldManifold := box2d.MakeB2WorldManifold()
		collision.GetWorldManifold(&worldManifold)

		w.onContact(Contact{
			A:        bodyA,
			B:        bodyB,
			Position: vector.FromB2Vec2(worldManifold.Points[0]),
		})
	}
}

func (w *box2dWorld) CreateBody(def BodyDef) Body {
	w.checkAlive()

	bodydef := box2d.MakeB2BodyDef()
	bodydef.Position.Set(def.Position.GetX(), def.Position.GetY())
	bodydef.Angle = def.Angle
	if def.Static {
		bodydef.Type = box2d.B2BodyType.B2_staticBody
	} else {
		bodydef.Type = box2d.B2BodyType.B2_dynamicBody
		bodydef.AllowSleep = false
	}
	bodydef.FixedRotation = def.FixedRotation
	bodydef.LinearDamping = def.LinearDamping

	body := w.world.CreateBody(&bodydef)

	fixturedef := box2d.MakeB2FixtureDef()

	switch def.Shape {
	case BodyShapes.Box:
		shape := box2d.MakeB2PolygonShape()
		shape.SetAsBox(def.HalfExtents.GetX(), def.HalfExtents.GetY())
		fixturedef.Shape = &shape
	default:
		// Spheres, cylinders and capsules all trace the same circle on the
		// simulation plane.
		shape := box2d.MakeB2CircleShape()
		shape.SetRadius(def.Radius)
		fixturedef.Shape = &shape
	}

	fixturedef.Density = def.Density
	fixturedef.Friction = def.Friction
	fixturedef.Restitution = def.Restitution
	body.CreateFixtureFromDef(&fixturedef)
	body.SetBullet(false)

	b := &box2dBody{
		world:    w,
		body:     body,
		userdata: def.UserData,
	}
	body.SetUserData(b)

	return b
}

func (w *box2dWorld) CreateStaticBox(position vector.Vector3, halfExtents vector.Vector3, userdata interface{}) Body {
	return w.CreateBody(BodyDef{
		Shape:       BodyShapes.Box,
		Position:    position,
		HalfExtents: halfExtents,
		Friction:    0.4,
		Static:      true,
		UserData:    userdata,
	})
}

func (w *box2dWorld) CreateStaticPlane(userdata interface{}) Body {
	w.checkAlive()

	// Top-down has no floor; the handle only mirrors the 3D profile's arena
	// construction sequence.
	bodydef := box2d.MakeB2BodyDef()
	bodydef.Type = box2d.B2BodyType.B2_staticBody

	body := w.world.CreateBody(&bodydef)

	b := &box2dBody{
		world:    w,
		body:     body,
		userdata: userdata,
	}
	body.SetUserData(b)

	return b
}

func (w *box2dWorld) OnCollisionStart(fn func(c Contact)) {
	w.checkAlive()
	w.onContact = fn
}

func (w *box2dWorld) Destroy() {
	w.checkAlive()
	w.destroyed = true
	w.onContact = nil
	w.world = nil
}

type box2dBody struct {
	world    *box2dWorld
	body     *box2d.B2Body
	userdata interface{}
	removed  bool
}

func (b *box2dBody) checkAlive() {
	utils.Assert(!b.removed, "physics: body used after Remove")
	b.world.checkAlive()
}

func (b *box2dBody) Position() vector.Vector3 {
	b.checkAlive()
	return vector.FromB2Vec2(b.body.GetPosition())
}

func (b *box2dBody) Angle() float64 {
	b.checkAlive()
	return b.body.GetAngle()
}

func (b *box2dBody) SetPose(position vector.Vector3, angle float64) {
	b.checkAlive()
	b.body.SetTransform(position.ToB2Vec2(), angle)
}

func (b *box2dBody) Velocity() vector.Vector3 {
	b.checkAlive()
	return vector.FromB2Vec2(b.body.GetLinearVelocity())
}

func (b *box2dBody) SetVelocity(v vector.Vector3) {
	b.checkAlive()
	b.body.SetLinearVelocity(v.ToB2Vec2())
}

func (b *box2dBody) ApplyImpulse(impulse vector.Vector3) {
	b.checkAlive()
	b.body.ApplyLinearImpulse(impulse.ToB2Vec2(), b.body.GetWorldCenter(), true)
}

func (b *box2dBody) UserData() interface{} {
	return b.userdata
}

func (b *box2dBody) Remove() {
	b.checkAlive()
	b.world.world.DestroyBody(b.body)
	b.removed = true
}

// collisionListener implements box2d.B2ContactListenerInterface, buffering
// new contacts until the world step completes.
type collisionListener struct {
	collisionbuffer []box2d.B2ContactInterface
}

func newCollisionListener() *collisionListener {
	return &collisionListener{}
}

func (listener *collisionListener) PopCollisions() []box2d.B2ContactInterface {
	defer func() { listener.collisionbuffer = make([]box2d.B2ContactInterface, 0) }()
	return listener.collisionbuffer
}

// Called when two fixtures begin to touch.
func (listener *collisionListener) BeginContact(contact box2d.B2ContactInterface) { // contact has to be backed by a pointer
	listener.collisionbuffer = append(listener.collisionbuffer, contact)
}

// Called when two fixtures cease to touch.
func (listener *collisionListener) EndContact(contact box2d.B2ContactInterface) { // contact has to be backed by a pointer
}

func (listener *collisionListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) { // contact has to be backed by a pointer
}

func (listener *collisionListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) { // contact has to be backed by a pointer
}
