// Package duel simulates a one-on-one bot fight: two scripted combatants, a
// walled arena, range-gated weapons and a physics world that settles the
// pushing and shoving.
package duel

import (
	"math"
	"time"

	"github.com/bytearena/ecs"

	"github.com/LazyCat420/battle-bots/bot"
	"github.com/LazyCat420/battle-bots/combat"
	"github.com/LazyCat420/battle-bots/common/types"
	"github.com/LazyCat420/battle-bots/common/utils"
	"github.com/LazyCat420/battle-bots/common/utils/vector"
	"github.com/LazyCat420/battle-bots/physics"
)

// Settings is everything the simulation needs to know beyond the two bot
// definitions. The match layer fills it from its config.
type Settings struct {
	Duration       time.Duration
	ArenaWidth     float64
	ArenaDepth     float64
	WallHeight     float64
	MaxHealth      float64
	SpeedScale     float64 // m/s per speed point
	BehaviorBudget time.Duration
	Lifted         bool // 3D profile: knockback gets an up component
	Seed           int64

	Archetypes *combat.ArchetypeTable
}

type DuelGame struct {
	ticknum int

	settings Settings
	manager  *ecs.Manager

	identityComponent     *ecs.Component
	physicalBodyComponent *ecs.Component
	healthComponent       *ecs.Component
	weaponComponent       *ecs.Component
	scriptComponent       *ecs.Component

	botsView *ecs.View

	// Fixed evaluation order: bots[0] always acts before bots[1].
	bots [2]ecs.EntityID

	physicalWorld physics.World

	timeRemaining float64
	finished      bool
	winner        int // bot index; -1 while running and on a draw

	damageEvents []DamageEvent
	scriptFaults []ScriptFault
	contacts     []ContactEvent
}

// NewDuelGame wires the entity manager, the arena geometry and both bot
// entities. Definitions are trusted as already validated; creation order
// fixes the evaluation order for the whole match.
func NewDuelGame(settings Settings, defA bot.Definition, defB bot.Definition, world physics.World) *DuelGame {
	if settings.Archetypes == nil {
		settings.Archetypes = combat.DefaultArchetypes()
	}

	manager := ecs.NewManager()

	game := &DuelGame{
		settings: settings,
		manager:  manager,

		identityComponent:     manager.NewComponent(),
		physicalBodyComponent: manager.NewComponent(),
		healthComponent:       manager.NewComponent(),
		weaponComponent:       manager.NewComponent(),
		scriptComponent:       manager.NewComponent(),

		physicalWorld: world,

		timeRemaining: settings.Duration.Seconds(),
		winner:        -1,
	}

	game.botsView = manager.CreateView(
		game.identityComponent,
		game.physicalBodyComponent,
		game.healthComponent,
		game.weaponComponent,
		game.scriptComponent,
	)

	game.physicalBodyComponent.SetDestructor(func(entity *ecs.Entity, data interface{}) {
		physicalAspect := data.(*PhysicalBody)
		physicalAspect.GetBody().Remove()
	})

	world.OnCollisionStart(func(c physics.Contact) {
		game.contacts = append(game.contacts, ContactEvent{
			BodyA:    game.bodyName(c.A),
			BodyB:    game.bodyName(c.B),
			Position: c.Position,
			Tick:     game.ticknum,
		})
	})

	game.initArena()

	// Mirrored spawns on the X axis, facing each other.
	spawnX := settings.ArenaWidth / 4
	a := game.NewEntityBot(0, defA, vector.MakeVector3(-spawnX, 0, 0), 0)
	b := game.NewEntityBot(1, defB, vector.MakeVector3(spawnX, 0, 0), math.Pi)
	game.bots = [2]ecs.EntityID{a.GetID(), b.GetID()}

	return game
}

func (game DuelGame) getEntity(id ecs.EntityID, tagelements ...interface{}) *ecs.QueryResult {
	return game.manager.GetEntityByID(id, tagelements...)
}

// bodyName resolves a physics body to the name contact events carry. Bodies
// without a bot descriptor are arena geometry.
func (game *DuelGame) bodyName(body physics.Body) string {
	descriptor, ok := body.UserData().(types.PhysicalBodyDescriptor)
	if !ok || descriptor.Type != types.PhysicalBodyDescriptorType.Bot {
		return "arena"
	}

	for _, entityresult := range game.botsView.Get() {
		if entityresult.Entity.GetID().String() == descriptor.ID {
			return game.CastIdentity(entityresult.Components[game.identityComponent]).GetName()
		}
	}

	return "arena"
}

func (game *DuelGame) Finished() bool {
	return game.finished
}

// Winner returns the winning bot's index, or -1 for a draw. Meaningless
// before Finished.
func (game *DuelGame) Winner() int {
	return game.winner
}

func (game *DuelGame) TimeRemaining() float64 {
	return game.timeRemaining
}

func (game *DuelGame) Tick() int {
	return game.ticknum
}

func (game *DuelGame) finish(winner int) {
	game.finished = true
	game.winner = winner
}

// finishOnTime settles an expired match: higher health wins, equal health is
// a draw.
func (game *DuelGame) finishOnTime() {
	healthA := game.botHealth(0).GetLife()
	healthB := game.botHealth(1).GetLife()

	switch {
	case healthA > healthB:
		game.finish(0)
	case healthB > healthA:
		game.finish(1)
	default:
		game.finish(-1)
	}
}

func (game *DuelGame) botHealth(index int) *Health {
	qr := game.getEntity(game.bots[index], game.healthComponent)
	utils.Assert(qr != nil, "duel: bot entity without health")
	return game.CastHealth(qr.Components[game.healthComponent])
}

// Step advances the simulation by exactly one tick. Not reentrant; the match
// loop is the only caller.
func (game *DuelGame) Step(ticknum int, dt float64) {

	utils.Assert(!game.finished, "duel: Step on a finished game")

	game.ticknum = ticknum

	///////////////////////////////////////////////////////////////////////////
	// The previous tick's events rode its snapshot; start clean.
	///////////////////////////////////////////////////////////////////////////
	game.damageEvents = nil
	game.scriptFaults = nil
	game.contacts = nil

	///////////////////////////////////////////////////////////////////////////
	// Clock first: an expired match ends before anyone moves.
	///////////////////////////////////////////////////////////////////////////
	game.timeRemaining -= dt
	if game.timeRemaining <= 0 {
		game.timeRemaining = 0
		game.finishOnTime()
		return
	}

	///////////////////////////////////////////////////////////////////////////
	// Behaviors, in fixed order: bot 0 then bot 1. Poses are only re-synced
	// after the physics step, so each bot reads the opponent where the
	// previous tick left it. That staleness is the tie-break.
	///////////////////////////////////////////////////////////////////////////
	systemBehavior(game)

	///////////////////////////////////////////////////////////////////////////
	// One physics step per tick. Contacts surface as events here.
	///////////////////////////////////////////////////////////////////////////
	systemPhysics(game, dt)

	///////////////////////////////////////////////////////////////////////////
	// Pull the resolved poses back into the projection.
	///////////////////////////////////////////////////////////////////////////
	systemSync(game)

	///////////////////////////////////////////////////////////////////////////
	// Cooldowns tick down; attack animations play out.
	///////////////////////////////////////////////////////////////////////////
	systemCooldown(game, dt)
	systemAnimation(game)

	///////////////////////////////////////////////////////////////////////////
	// Deaths are only observed here, so both bots got their full tick and
	// simultaneous lethal hits stay a draw.
	///////////////////////////////////////////////////////////////////////////
	systemVictory(game)
}

// Destroy disposes the bot entities and releases the physics world. The game
// is unusable afterwards.
func (game *DuelGame) Destroy() {
	entities := make([]*ecs.Entity, 0)
	for _, entityresult := range game.botsView.Get() {
		entities = append(entities, entityresult.Entity)
	}
	game.manager.DisposeEntities(entities...)

	game.physicalWorld.Destroy()
}
