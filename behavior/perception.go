package behavior

import (
	"math"
	"math/rand"

	"github.com/LazyCat420/battle-bots/common/utils/vector"
)

// Perception is the world as one bot is allowed to see it for one tick. The
// engine rebuilds it every invocation; everything in it is a copied value, so
// whatever the script does to its side of the mirror, the simulation state
// and the values it already read stay what they were.
type Perception struct {
	Self  PerceptionSelf
	Enemy PerceptionEnemy
	Arena PerceptionArena
}

type PerceptionSelf struct {
	Position vector.Vector3
	Angle    float64
	Health   float64
	Velocity vector.Vector3
}

type PerceptionEnemy struct {
	Position vector.Vector3
	Health   float64
}

type PerceptionArena struct {
	Width float64
	Depth float64
}

func vectorToObject(v vector.Vector3) map[string]interface{} {
	x, y, z := v.Get()
	return map[string]interface{}{
		"x": x,
		"y": y,
		"z": z,
	}
}

// buildAPI assembles the single object handed to a behavior script. The
// script gets no other globals: reads are copies of the perception, writes
// land in the intent buffer.
func buildAPI(perception Perception, rng *rand.Rand, intent *Intent) map[string]interface{} {
	selfx, selfy, _ := perception.Self.Position.Get()

	return map[string]interface{}{
		"self": map[string]interface{}{
			"position": vectorToObject(perception.Self.Position),
			"angle":    perception.Self.Angle,
			"health":   perception.Self.Health,
			"velocity": vectorToObject(perception.Self.Velocity),
		},
		"enemy": map[string]interface{}{
			"position": vectorToObject(perception.Enemy.Position),
			"health":   perception.Enemy.Health,
		},
		"distanceToEnemy": perception.Enemy.Position.Sub(perception.Self.Position).Mag(),
		"arena": map[string]interface{}{
			"width": perception.Arena.Width,
			"depth": perception.Arena.Depth,
		},

		"angleTo": func(x float64, y float64) float64 {
			return math.Atan2(y-selfy, x-selfx)
		},
		"distanceTo": func(x float64, y float64) float64 {
			return math.Hypot(x-selfx, y-selfy)
		},
		"random": func(min float64, max float64) float64 {
			return min + rng.Float64()*(max-min)
		},

		"moveToward": func(x float64, y float64) {
			intent.Movement = MovementKinds.MoveToward
			intent.Target = vector.MakeVector3(x, y, 0)
		},
		"strafe": func(dir float64) {
			intent.Movement = MovementKinds.Strafe
			intent.StrafeDir = dir
		},
		"stop": func() {
			intent.Movement = MovementKinds.Stop
		},
		"rotateTo": func(angle float64) {
			intent.Rotate = true
			intent.RotateTo = angle
		},
		"attack": func() {
			intent.Attack = true
		},
	}
}
