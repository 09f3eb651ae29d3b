package duel

import (
	"github.com/bytearena/ecs"

	"github.com/LazyCat420/battle-bots/behavior"
	"github.com/LazyCat420/battle-bots/bot"
	"github.com/LazyCat420/battle-bots/common/types"
	"github.com/LazyCat420/battle-bots/common/utils"
	"github.com/LazyCat420/battle-bots/common/utils/vector"
	"github.com/LazyCat420/battle-bots/physics"
)

func (game *DuelGame) NewEntityBot(index int, def bot.Definition, position vector.Vector3, angle float64) *ecs.Entity {

	entity := game.manager.NewEntity()

	shape := physics.BodyShapes.Sphere
	switch def.Shape {
	case "box":
		shape = physics.BodyShapes.Box
	case "cylinder":
		shape = physics.BodyShapes.Cylinder
	case "capsule":
		shape = physics.BodyShapes.Capsule
	}

	body := game.physicalWorld.CreateBody(physics.BodyDef{
		Shape:         shape,
		Position:      position,
		Angle:         angle,
		Radius:        def.Size,
		HalfExtents:   vector.MakeVector3(def.Size, def.Size, def.Size),
		Height:        def.Size * 2,
		Density:       20.0,
		Friction:      0.3,
		Restitution:   0.1,
		LinearDamping: 2.0,
		FixedRotation: true,
		UserData: types.MakePhysicalBodyDescriptor(
			types.PhysicalBodyDescriptorType.Bot,
			entity.GetID().String(),
		),
	})

	script := NewIdleScript()
	sandbox, err := behavior.NewSandbox(
		def.Name,
		def.Behavior,
		game.settings.Seed+int64(index),
		game.settings.BehaviorBudget,
	)
	if err != nil {
		// Authoring error: the bot spends the whole match idle.
		utils.Debug("duel", err.Error())
	} else {
		script = NewScript(sandbox)
	}

	animation := ""
	if arch, ok := game.settings.Archetypes.Lookup(def.Weapon.Type); ok {
		animation = arch.Animation
	}

	return entity.
		AddComponent(game.identityComponent, NewIdentity(index, def)).
		AddComponent(game.physicalBodyComponent, NewPhysicalBody(body, def.Speed*game.settings.SpeedScale)).
		AddComponent(game.healthComponent, NewHealth(game.settings.MaxHealth)).
		AddComponent(game.weaponComponent, NewWeapon(def.Weapon, animation)).
		AddComponent(game.scriptComponent, script)
}
