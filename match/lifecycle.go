package match

import (
	"time"

	"github.com/LazyCat420/battle-bots/common/types"
	"github.com/LazyCat420/battle-bots/common/utils"
)

// Start validates the config, builds the simulation, runs the countdown and
// begins ticking. The returned channel is closed once the match is over,
// whether it finished on its own or was stopped.
func (m *Match) Start() (chan interface{}, error) {

	if err := m.config.validate(); err != nil {
		return nil, err
	}

	utils.Debug("match", "Initializing "+m.defA.Name+" vs "+m.defB.Name)

	initerr := make(chan error)
	go func() {
		initerr <- m.init()
	}()
	if err := <-initerr; err != nil {
		return nil, err
	}

	m.AddTearDownCall(func() error {
		m.Stop()
		<-m.done
		m.game.Destroy()
		return nil
	})

	if m.config.CountdownSec > 0 {
		m.setStatus(MatchStatuses.Countdown)
		m.publish(m.buildFrame())
		time.Sleep(time.Duration(m.config.CountdownSec * float64(time.Second)))
	}

	// A stop during the countdown means the fight never starts.
	select {
	case <-m.stopticking:
		m.closeDone()
		return m.done, nil
	default:
	}

	m.setStatus(MatchStatuses.Fighting)
	m.startTicking()

	return m.done, nil
}

// Stop halts ticking. Idempotent and safe in any state; it does not reset
// the match state nor release resources, TearDown does that.
func (m *Match) Stop() {
	m.stoponce.Do(func() {
		utils.Debug("match", "Received stop signal")
		close(m.stopticking)
	})
}

func (m *Match) startTicking() {

	tickduration := time.Duration((1000000 / time.Duration(m.config.TicksPerSec)) * time.Microsecond)
	ticker := time.Tick(tickduration)

	go func() {
		defer m.closeDone()

		for {
			select {
			case <-m.stopticking:
				{
					utils.Debug("core-loop", "Received stop ticking signal")
					return
				}
			case <-ticker:
				{
					m.doTick()
					if m.Status() == MatchStatuses.Finished {
						return
					}
				}
			}
		}
	}()
}

func (m *Match) SubscribeStateObservation() chan Frame {
	ch := make(chan Frame)
	m.observersmutex.Lock()
	m.observers = append(m.observers, ch)
	m.observersmutex.Unlock()
	return ch
}

func (m *Match) AddTearDownCall(fn types.TearDownCallback) {
	m.tearDownCallbacksMutex.Lock()
	defer m.tearDownCallbacksMutex.Unlock()

	m.tearDownCallbacks = append(m.tearDownCallbacks, fn)
}

// TearDown runs the teardown stack in reverse registration order, then
// resets it so a second call is a no-op.
func (m *Match) TearDown() {
	utils.Debug("match", "teardown")

	m.tearDownCallbacksMutex.Lock()

	for i := len(m.tearDownCallbacks) - 1; i >= 0; i-- {
		utils.Debug("teardown", "Executing TearDownCallback")
		m.tearDownCallbacks[i]()
	}

	m.tearDownCallbacks = make([]types.TearDownCallback, 0)

	m.tearDownCallbacksMutex.Unlock()
}
