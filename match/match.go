// Package match runs one duel from countdown to verdict at a fixed tick rate
// and publishes a frame per tick to subscribed observers.
package match

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ttacon/chalk"

	"github.com/LazyCat420/battle-bots/bot"
	"github.com/LazyCat420/battle-bots/combat"
	"github.com/LazyCat420/battle-bots/common/types"
	"github.com/LazyCat420/battle-bots/common/utils"
	"github.com/LazyCat420/battle-bots/common/utils/vector"
	"github.com/LazyCat420/battle-bots/game/duel"
	"github.com/LazyCat420/battle-bots/physics"
)

// Gravity for the lifted profile, arcade-weight so launched bots land within
// a few ticks.
const liftedGravity = 20.0

// Frame is what observers receive once per tick: the match framing around
// the simulation snapshot.
type Frame struct {
	Status string      `json:"status"`
	Arena  ArenaConfig `json:"arena"`
	duel.Snapshot
}

type Match struct {
	config Config
	defA   bot.Definition
	defB   bot.Definition

	status      _matchstatus
	statusmutex *sync.Mutex

	game    *duel.DuelGame
	ticknum int

	stopticking chan bool
	stoponce    *sync.Once
	done        chan interface{}
	doneonce    *sync.Once

	observers      []chan Frame
	observersmutex *sync.Mutex

	tearDownCallbacks      []types.TearDownCallback
	tearDownCallbacksMutex *sync.Mutex
}

func NewMatch(config Config, defA bot.Definition, defB bot.Definition) *Match {
	return &Match{
		config: config,
		defA:   defA,
		defB:   defB,

		status:      MatchStatuses.Waiting,
		statusmutex: &sync.Mutex{},

		stopticking: make(chan bool),
		stoponce:    &sync.Once{},
		done:        make(chan interface{}),
		doneonce:    &sync.Once{},

		observers:      make([]chan Frame, 0),
		observersmutex: &sync.Mutex{},

		tearDownCallbacks:      make([]types.TearDownCallback, 0),
		tearDownCallbacksMutex: &sync.Mutex{},
	}
}

func (m *Match) Status() _matchstatus {
	m.statusmutex.Lock()
	res := m.status
	m.statusmutex.Unlock()
	return res
}

func (m *Match) setStatus(next _matchstatus) {
	m.statusmutex.Lock()
	defer m.statusmutex.Unlock()
	utils.Assert(
		next.rank() > m.status.rank(),
		"match: lifecycle can only move forward ("+m.status.String()+" to "+next.String()+")",
	)
	m.status = next
}

// init builds the physics backend and the simulation; script compilation
// happens inside the game constructor.
func (m *Match) init() error {
	world, err := worldForProfile(m.config)
	if err != nil {
		return err
	}

	table := combat.DefaultArchetypes()
	if m.config.ArchetypesFile != "" {
		table, err = combat.LoadArchetypes(m.config.ArchetypesFile)
		if err != nil {
			return fmt.Errorf("loading archetypes for match: %w", err)
		}
	}

	m.game = duel.NewDuelGame(duel.Settings{
		Duration:       time.Duration(m.config.DurationSec * float64(time.Second)),
		ArenaWidth:     m.config.Arena.Width,
		ArenaDepth:     m.config.Arena.Depth,
		WallHeight:     m.config.Arena.WallHeight,
		MaxHealth:      m.config.MaxHealth,
		SpeedScale:     m.config.SpeedScale,
		BehaviorBudget: time.Duration(m.config.BehaviorBudgetMs * float64(time.Millisecond)),
		Lifted:         m.config.Profile == Profile3d,
		Seed:           m.config.Seed,
		Archetypes:     table,
	}, m.defA, m.defB, world)

	return nil
}

func worldForProfile(config Config) (physics.World, error) {
	switch config.Profile {
	case Profile2d:
		return physics.NewBox2dWorld(), nil
	case Profile3d:
		return physics.NewKinematicWorld(vector.MakeVector3(0, 0, -liftedGravity)), nil
	}
	return nil, fmt.Errorf("match: no physics backend for profile %q", config.Profile)
}

func (m *Match) doTick() {

	m.ticknum++

	dolog := (m.ticknum % m.config.TicksPerSec) == 0
	if dolog {
		log.Println(chalk.Yellow, "######## Tick ########", m.ticknum, chalk.Reset)
	}

	m.game.Step(m.ticknum, 1.0/float64(m.config.TicksPerSec))

	if m.game.Finished() {
		m.setStatus(MatchStatuses.Finished)
	}

	m.publish(m.buildFrame())
}

func (m *Match) buildFrame() Frame {
	return Frame{
		Status:   m.Status().String(),
		Arena:    m.config.Arena,
		Snapshot: m.game.GetSnapshot(),
	}
}

// publish pushes a value copy of the frame to every observer, each on its
// own goroutine so a slow consumer never stalls the tick loop.
func (m *Match) publish(frame Frame) {
	m.observersmutex.Lock()
	observers := m.observers
	m.observersmutex.Unlock()

	for _, subscriber := range observers {
		go func(s chan Frame) {
			s <- frame
		}(subscriber)
	}
}

func (m *Match) closeDone() {
	m.doneonce.Do(func() {
		close(m.done)
	})
}
