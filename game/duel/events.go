package duel

import (
	"github.com/LazyCat420/battle-bots/common/utils/vector"
)

// DamageEvent records one landed hit. Events live for exactly one tick: they
// ride the snapshot emitted at the end of the tick that produced them and are
// cleared when the next tick begins.
type DamageEvent struct {
	AttackerId string         `json:"attackerId"`
	TargetId   string         `json:"targetId"`
	Damage     float64        `json:"damage"`
	Position   vector.Vector3 `json:"position"`
	Tick       int            `json:"tick"`
}

// ScriptFault records a behavior invocation that threw or blew its budget.
// The bot idled for that tick; the match goes on.
type ScriptFault struct {
	BotId  string `json:"botId"`
	Tick   int    `json:"tick"`
	Reason string `json:"reason"`
}

// ContactEvent is presentation feed: something touched something this tick.
type ContactEvent struct {
	BodyA    string         `json:"bodyA"`
	BodyB    string         `json:"bodyB"`
	Position vector.Vector3 `json:"position"`
	Tick     int            `json:"tick"`
}
