package duel

import (
	uuid "github.com/satori/go.uuid"

	"github.com/LazyCat420/battle-bots/bot"
)

func (game DuelGame) CastIdentity(data interface{}) *Identity {
	return data.(*Identity)
}

type Identity struct {
	botid      uuid.UUID
	name       string
	index      int
	definition bot.Definition
}

func NewIdentity(index int, def bot.Definition) *Identity {
	return &Identity{
		botid:      uuid.NewV4(),
		name:       def.Name,
		index:      index,
		definition: def,
	}
}

func (identity Identity) GetBotId() uuid.UUID {
	return identity.botid
}

func (identity Identity) GetName() string {
	return identity.name
}

func (identity Identity) GetIndex() int {
	return identity.index
}

func (identity Identity) GetDefinition() bot.Definition {
	return identity.definition
}
