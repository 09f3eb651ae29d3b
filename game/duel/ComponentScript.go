package duel

import (
	"github.com/LazyCat420/battle-bots/behavior"
)

func (game DuelGame) CastScript(data interface{}) *Script {
	return data.(*Script)
}

// Script carries a bot's behavior sandbox. A bot whose script failed to
// compile gets an idle Script instead: it stays in the arena, it just never
// acts.
type Script struct {
	sandbox *behavior.Sandbox
	idle    bool
}

func NewScript(sandbox *behavior.Sandbox) *Script {
	return &Script{sandbox: sandbox}
}

func NewIdleScript() *Script {
	return &Script{idle: true}
}

func (script Script) IsIdle() bool {
	return script.idle
}

func (script Script) GetSandbox() *behavior.Sandbox {
	return script.sandbox
}
