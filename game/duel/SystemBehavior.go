package duel

import (
	"math"

	"github.com/LazyCat420/battle-bots/behavior"
	"github.com/LazyCat420/battle-bots/combat"
	"github.com/LazyCat420/battle-bots/common/utils"
	"github.com/LazyCat420/battle-bots/common/utils/vector"
)

// systemBehavior runs both scripts and applies what they asked for. Bot 0
// always goes first. A dead bot still evaluates: its death only lands in
// systemVictory, after everything else.
func systemBehavior(game *DuelGame) {

	for index := range game.bots {

		qr := game.getEntity(game.bots[index], game.scriptComponent, game.identityComponent)
		if qr == nil {
			continue
		}

		scriptAspect := game.CastScript(qr.Components[game.scriptComponent])
		if scriptAspect.IsIdle() {
			continue
		}

		intent, err := scriptAspect.GetSandbox().Invoke(game.buildPerception(index), game.ticknum)
		if err != nil {
			identityAspect := game.CastIdentity(qr.Components[game.identityComponent])
			utils.Debug("duel-behavior", err.Error())
			game.scriptFaults = append(game.scriptFaults, ScriptFault{
				BotId:  identityAspect.GetBotId().String(),
				Tick:   game.ticknum,
				Reason: err.Error(),
			})
			continue
		}

		game.applyIntent(index, intent)
	}
}

// buildPerception assembles one bot's view of the world from the pose
// projection, never from the live physics state.
func (game *DuelGame) buildPerception(index int) behavior.Perception {

	self := game.getEntity(game.bots[index], game.physicalBodyComponent, game.healthComponent)
	enemy := game.getEntity(game.bots[1-index], game.physicalBodyComponent, game.healthComponent)
	utils.Assert(self != nil && enemy != nil, "duel: perception for a disposed bot")

	selfPhysical := game.CastPhysicalBody(self.Components[game.physicalBodyComponent])
	selfHealth := game.CastHealth(self.Components[game.healthComponent])
	enemyPhysical := game.CastPhysicalBody(enemy.Components[game.physicalBodyComponent])
	enemyHealth := game.CastHealth(enemy.Components[game.healthComponent])

	return behavior.Perception{
		Self: behavior.PerceptionSelf{
			Position: selfPhysical.GetPosition(),
			Angle:    selfPhysical.GetOrientation(),
			Health:   selfHealth.GetLife(),
			Velocity: selfPhysical.GetVelocity(),
		},
		Enemy: behavior.PerceptionEnemy{
			Position: enemyPhysical.GetPosition(),
			Health:   enemyHealth.GetLife(),
		},
		Arena: behavior.PerceptionArena{
			Width: game.settings.ArenaWidth,
			Depth: game.settings.ArenaDepth,
		},
	}
}

// applyIntent translates one intent buffer into simulation state. Movement
// and rotation first, then the attack: range is measured after the tick's
// movement is applied.
func (game *DuelGame) applyIntent(index int, intent behavior.Intent) {

	self := game.getEntity(game.bots[index],
		game.identityComponent,
		game.physicalBodyComponent,
		game.weaponComponent,
	)
	enemy := game.getEntity(game.bots[1-index],
		game.identityComponent,
		game.physicalBodyComponent,
		game.healthComponent,
	)
	utils.Assert(self != nil && enemy != nil, "duel: intent for a disposed bot")

	identityAspect := game.CastIdentity(self.Components[game.identityComponent])
	physicalAspect := game.CastPhysicalBody(self.Components[game.physicalBodyComponent])
	weaponAspect := game.CastWeapon(self.Components[game.weaponComponent])

	enemyIdentity := game.CastIdentity(enemy.Components[game.identityComponent])
	enemyPhysical := game.CastPhysicalBody(enemy.Components[game.physicalBodyComponent])
	enemyHealth := game.CastHealth(enemy.Components[game.healthComponent])

	switch intent.Movement {
	case behavior.MovementKinds.MoveToward:
		direction := intent.Target.Sub(physicalAspect.GetPosition()).Flatten()
		if direction.IsNull() {
			physicalAspect.SetVelocity(stripPlanar(physicalAspect.GetVelocity()))
		} else {
			physicalAspect.SetVelocity(withPlanar(
				direction.SetMag(physicalAspect.GetMaxSpeed()),
				physicalAspect.GetVelocity(),
			))
		}

	case behavior.MovementKinds.Strafe:
		side := math.Max(-1, math.Min(1, intent.StrafeDir))
		lateral := vector.
			MakePlanarVector3(physicalAspect.GetOrientation()).
			OrthogonalCounterClockwise().
			Scale(physicalAspect.GetMaxSpeed() * side)
		physicalAspect.SetVelocity(withPlanar(lateral, physicalAspect.GetVelocity()))

	case behavior.MovementKinds.Stop:
		physicalAspect.SetVelocity(stripPlanar(physicalAspect.GetVelocity()))
	}

	if intent.Rotate {
		physicalAspect.SetOrientation(intent.RotateTo)
	}

	if intent.Attack && weaponAspect.IsReady() {

		// Any off-cooldown attempt spends the weapon, hit or miss.
		weaponAspect.TriggerCooldown()
		weaponAspect.StartAttackAnimation()

		toEnemy := enemyPhysical.GetPosition().Sub(physicalAspect.GetPosition())
		if combat.InRange(toEnemy.Mag(), weaponAspect.GetRange()) {

			damage := combat.Damage(weaponAspect.GetBaseDamage(), enemyIdentity.GetDefinition().Armor)
			enemyHealth.AddLife(-damage)

			enemyPhysical.ApplyImpulse(combat.Knockback(
				weaponAspect.GetBaseDamage(),
				toEnemy,
				physicalAspect.GetOrientation(),
				game.settings.Lifted,
			))

			game.damageEvents = append(game.damageEvents, DamageEvent{
				AttackerId: identityAspect.GetBotId().String(),
				TargetId:   enemyIdentity.GetBotId().String(),
				Damage:     damage,
				Position:   enemyPhysical.GetPosition(),
				Tick:       game.ticknum,
			})
		}
	}
}

// withPlanar replaces the ground-plane components of current with planar,
// keeping whatever vertical motion the world gave the body.
func withPlanar(planar vector.Vector3, current vector.Vector3) vector.Vector3 {
	x, y, _ := planar.Get()
	return vector.MakeVector3(x, y, current.GetZ())
}

func stripPlanar(current vector.Vector3) vector.Vector3 {
	return vector.MakeVector3(0, 0, current.GetZ())
}
