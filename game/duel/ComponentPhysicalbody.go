package duel

import (
	"github.com/LazyCat420/battle-bots/common/utils/vector"
	"github.com/LazyCat420/battle-bots/physics"
)

func (game DuelGame) CastPhysicalBody(data interface{}) *PhysicalBody {
	return data.(*PhysicalBody)
}

type PhysicalBody struct {
	body     physics.Body
	maxSpeed float64 // expressed in m/s

	// Pose projection read by perceptions, combat and snapshots. Only Sync
	// refreshes it from the physics world, after the step; during a tick it
	// holds the previous tick's resolved pose, whatever the world is doing.
	position vector.Vector3
	angle    float64
	velocity vector.Vector3
}

func NewPhysicalBody(body physics.Body, maxSpeed float64) *PhysicalBody {
	p := &PhysicalBody{
		body:     body,
		maxSpeed: maxSpeed,
	}
	return p.Sync()
}

func (p PhysicalBody) GetBody() physics.Body {
	return p.body
}

func (p PhysicalBody) GetPosition() vector.Vector3 {
	return p.position
}

func (p PhysicalBody) GetOrientation() float64 {
	return p.angle
}

func (p PhysicalBody) GetVelocity() vector.Vector3 {
	return p.velocity
}

func (p PhysicalBody) GetMaxSpeed() float64 {
	return p.maxSpeed
}

func (p *PhysicalBody) SetVelocity(v vector.Vector3) *PhysicalBody {
	p.body.SetVelocity(v)
	p.velocity = v
	return p
}

func (p *PhysicalBody) SetOrientation(angle float64) *PhysicalBody {
	p.body.SetPose(p.body.Position(), angle)
	p.angle = angle
	return p
}

func (p *PhysicalBody) ApplyImpulse(impulse vector.Vector3) *PhysicalBody {
	p.body.ApplyImpulse(impulse)
	return p
}

func (p *PhysicalBody) Sync() *PhysicalBody {
	p.position = p.body.Position()
	p.angle = p.body.Angle()
	p.velocity = p.body.Velocity()
	return p
}
