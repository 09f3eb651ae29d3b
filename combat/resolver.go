// Package combat holds the pure attack resolution rules. Nothing in here
// keeps state: the engine feeds in stats and distances measured at intent
// time and applies the results itself.
package combat

import (
	"math"

	"github.com/LazyCat420/battle-bots/common/utils/vector"
)

const (
	// Each armor point shaves 5% off incoming damage; armor 10 halves it.
	ArmorReductionPerPoint = 0.05

	// Resolved damage never drops below this floor: an attack that lands
	// always costs the target something.
	MinDamage = 1.0

	// Impulse magnitude applied to the target per point of base damage.
	KnockbackScale = 3.0

	// Share of the knockback magnitude redirected upward in the 3D profile.
	KnockbackUpRatio = 0.25
)

// CanAttempt reports whether the weapon is off cooldown. Only off-cooldown
// attempts consume the weapon (cooldown reset, swing animation).
func CanAttempt(cooldownRemaining float64) bool {
	return cooldownRemaining <= 0
}

// InRange reports whether a target dist away can be reached. Zero distance
// is in range.
func InRange(dist float64, weaponRange float64) bool {
	return dist <= weaponRange
}

// Hits combines the two attack gates: off cooldown, target in reach.
func Hits(dist float64, weaponRange float64, cooldownRemaining float64) bool {
	return CanAttempt(cooldownRemaining) && InRange(dist, weaponRange)
}

// Damage is the health loss inflicted by a landed hit:
// max(1, base × (1 − armor × 0.05)).
func Damage(baseDamage float64, targetArmor float64) float64 {
	mitigated := baseDamage * (1.0 - targetArmor*ArmorReductionPerPoint)
	return math.Max(MinDamage, mitigated)
}

// Knockback is the impulse a landed hit applies to the target, proportional
// to base damage, along the attacker→target direction. A degenerate
// direction (stacked bots) falls back to the attacker's facing. When lifted,
// part of the magnitude points up (+Z), popping the target off the ground in
// the 3D profile.
func Knockback(baseDamage float64, towardTarget vector.Vector3, attackerFacing float64, lifted bool) vector.Vector3 {
	dir := towardTarget.Flatten()
	if dir.IsNull() {
		dir = vector.MakePlanarVector3(attackerFacing)
	} else {
		dir = dir.Normalize()
	}

	magnitude := baseDamage * KnockbackScale
	impulse := dir.Scale(magnitude)

	if lifted {
		impulse = impulse.Add(vector.MakeVector3(0, 0, magnitude*KnockbackUpRatio))
	}

	return impulse
}
