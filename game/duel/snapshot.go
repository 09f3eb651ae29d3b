package duel

import (
	"github.com/LazyCat420/battle-bots/common/utils"
	"github.com/LazyCat420/battle-bots/common/utils/vector"
)

type BotSnapshot struct {
	Id                string         `json:"id"`
	Name              string         `json:"name"`
	Position          vector.Vector3 `json:"position"`
	Angle             float64        `json:"angle"`
	Velocity          vector.Vector3 `json:"velocity"`
	Health            float64        `json:"health"`
	MaxHealth         float64        `json:"maxHealth"`
	CooldownRemaining float64        `json:"cooldownRemaining"`
	Attacking         bool           `json:"isAttacking"`
	AnimationFrame    int            `json:"attackAnimationFrame"`
	Animation         string         `json:"animation"`
}

// Snapshot is one tick's worth of observable state. Everything in it is a
// copy; holding one across ticks is safe.
type Snapshot struct {
	Tick          int     `json:"tick"`
	TimeRemaining float64 `json:"timeRemaining"`
	Finished      bool    `json:"finished"`
	Winner        string  `json:"winner,omitempty"` // winning bot id; empty while running and on a draw
	Draw          bool    `json:"draw,omitempty"`

	Bots [2]BotSnapshot `json:"bots"`

	DamageEvents []DamageEvent  `json:"damageEvents,omitempty"`
	ScriptFaults []ScriptFault  `json:"scriptFaults,omitempty"`
	Contacts     []ContactEvent `json:"contacts,omitempty"`
}

func (game *DuelGame) GetSnapshot() Snapshot {

	snapshot := Snapshot{
		Tick:          game.ticknum,
		TimeRemaining: game.timeRemaining,
		Finished:      game.finished,
		Draw:          game.finished && game.winner < 0,

		DamageEvents: append([]DamageEvent(nil), game.damageEvents...),
		ScriptFaults: append([]ScriptFault(nil), game.scriptFaults...),
		Contacts:     append([]ContactEvent(nil), game.contacts...),
	}

	for index := range game.bots {
		qr := game.getEntity(game.bots[index],
			game.identityComponent,
			game.physicalBodyComponent,
			game.healthComponent,
			game.weaponComponent,
		)
		utils.Assert(qr != nil, "duel: snapshot of a disposed bot")

		identityAspect := game.CastIdentity(qr.Components[game.identityComponent])
		physicalAspect := game.CastPhysicalBody(qr.Components[game.physicalBodyComponent])
		healthAspect := game.CastHealth(qr.Components[game.healthComponent])
		weaponAspect := game.CastWeapon(qr.Components[game.weaponComponent])

		snapshot.Bots[index] = BotSnapshot{
			Id:                identityAspect.GetBotId().String(),
			Name:              identityAspect.GetName(),
			Position:          physicalAspect.GetPosition(),
			Angle:             physicalAspect.GetOrientation(),
			Velocity:          physicalAspect.GetVelocity(),
			Health:            healthAspect.GetLife(),
			MaxHealth:         healthAspect.GetMaxLife(),
			CooldownRemaining: weaponAspect.GetCooldownRemaining(),
			Attacking:         weaponAspect.IsAttacking(),
			AnimationFrame:    weaponAspect.GetAnimationFrame(),
			Animation:         weaponAspect.GetAnimation(),
		}

		if game.finished && game.winner == index {
			snapshot.Winner = identityAspect.GetBotId().String()
		}
	}

	return snapshot
}
