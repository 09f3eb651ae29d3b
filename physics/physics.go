// Package physics abstracts the rigid-body simulation behind the duel
// engine. The engine depends only on the World and Body contracts below; one
// backend wraps box2d for the flat arena profile, another integrates a
// deterministic kinematic approximation for the 3D profile and for tests.
package physics

import (
	"github.com/LazyCat420/battle-bots/common/utils/vector"
)

// World is one isolated simulation. Implementations are not safe for
// concurrent use; the match loop owns them from a single goroutine.
//
// Operating on a destroyed World, like operating on a removed Body, is a
// programmer error and panics. Handles are never reused.
type World interface {
	// Step advances the simulation by exactly one fixed timestep. It is not
	// re-entrant and must be called exactly once per simulation tick.
	// Collision callbacks registered through OnCollisionStart fire during
	// the call, once per new contact.
	Step(dt float64)

	// CreateBody constructs a static or dynamic body from def. The config is
	// the caller's responsibility; no validation happens here.
	CreateBody(def BodyDef) Body

	// CreateStaticBox adds an immobile box obstacle (arena walls). userdata
	// is attached the same way BodyDef.UserData is.
	CreateStaticBox(position vector.Vector3, halfExtents vector.Vector3, userdata interface{}) Body

	// CreateStaticPlane adds the arena floor at z = 0. The flat profile has
	// no vertical axis and returns an inert handle so both profiles share
	// arena construction.
	CreateStaticPlane(userdata interface{}) Body

	// OnCollisionStart registers the listener invoked once per new contact
	// per step. Damage is range-gated and never depends on it; contacts feed
	// the presentation layer.
	OnCollisionStart(fn func(c Contact))

	// Destroy releases the simulation. Every handle created from this World
	// becomes unusable.
	Destroy()
}

// Body is an opaque handle on one rigid body. Poses and velocities are raw:
// nothing here clamps to arena bounds or speed limits, callers do.
type Body interface {
	Position() vector.Vector3
	Angle() float64
	SetPose(position vector.Vector3, angle float64)
	Velocity() vector.Vector3
	SetVelocity(v vector.Vector3)

	// ApplyImpulse applies an instantaneous impulse at the body center.
	ApplyImpulse(impulse vector.Vector3)

	// UserData returns the value attached through BodyDef. It stays readable
	// after removal so contact consumers can still identify the body.
	UserData() interface{}

	// Remove takes the body out of the simulation. The handle is dead
	// afterwards.
	Remove()
}

type _bodyshape string

func (s _bodyshape) String() string {
	return string(s)
}

var BodyShapes = struct {
	Box      _bodyshape
	Sphere   _bodyshape
	Cylinder _bodyshape
	Capsule  _bodyshape
}{
	Box:      _bodyshape("box"),
	Sphere:   _bodyshape("sphere"),
	Cylinder: _bodyshape("cylinder"),
	Capsule:  _bodyshape("capsule"),
}

// BodyDef describes a body at creation time. Round shapes use Radius, boxes
// use HalfExtents. Height only matters to cylinders and capsules in the 3D
// profile and falls back to 2×Radius when zero.
type BodyDef struct {
	Shape         _bodyshape
	Position      vector.Vector3
	Angle         float64
	Radius        float64
	HalfExtents   vector.Vector3
	Height        float64
	Density       float64
	Friction      float64
	Restitution   float64
	LinearDamping float64
	Static        bool
	FixedRotation bool
	UserData      interface{}
}

// Contact reports two bodies beginning to touch during a Step.
type Contact struct {
	A        Body
	B        Body
	Position vector.Vector3
}
