// Package behavior runs bot scripts. Each bot gets its own embedded
// JavaScript interpreter, a capability-restricted api object and a wall-clock
// budget per invocation; whatever happens inside the script stays inside the
// script.
package behavior

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/dop251/goja"
)

// ErrCompile marks authoring errors: the script does not parse, its top-level
// code throws, or it never produces a behavior function. Callers treat it as
// permanent and stop invoking the bot.
var ErrCompile = errors.New("behavior script does not compile")

const errBudgetExceeded = "behavior budget exceeded"

// Sandbox holds one bot's interpreter for the duration of a match.
type Sandbox struct {
	name   string
	vm     *goja.Runtime
	entry  goja.Callable
	rng    *rand.Rand
	budget time.Duration
}

// NewSandbox compiles and evaluates the script source. The source must either
// evaluate to a function value or declare a global function named "behavior";
// that function is then called once per tick as behavior(api, tick). seed
// feeds the script's random(); budget caps one invocation's wall-clock time,
// 0 meaning no cap.
func NewSandbox(name string, source string, seed int64, budget time.Duration) (*Sandbox, error) {
	program, err := goja.Compile(name, source, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}

	vm := goja.New()

	v, err := vm.RunProgram(program)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}

	entry, ok := goja.AssertFunction(v)
	if !ok {
		entry, ok = goja.AssertFunction(vm.Get("behavior"))
	}
	if !ok {
		return nil, fmt.Errorf("%w: script must evaluate to a function or declare behavior(api, tick)", ErrCompile)
	}

	return &Sandbox{
		name:   name,
		vm:     vm,
		entry:  entry,
		rng:    rand.New(rand.NewSource(seed)),
		budget: budget,
	}, nil
}

// Invoke runs one tick of the script. On success it returns the intent
// buffer the script filled; on a runtime fault or an exceeded budget it
// returns a zero intent and the fault, and the sandbox stays usable for the
// next tick.
func (sandbox *Sandbox) Invoke(perception Perception, ticknum int) (Intent, error) {
	intent := &Intent{}
	api := sandbox.vm.ToValue(buildAPI(perception, sandbox.rng, intent))

	// A budget timer from a previous invocation may have fired after the call
	// returned; drop its leftover interrupt before running again.
	sandbox.vm.ClearInterrupt()

	var timer *time.Timer
	if sandbox.budget > 0 {
		timer = time.AfterFunc(sandbox.budget, func() {
			sandbox.vm.Interrupt(errBudgetExceeded)
		})
	}

	_, err := sandbox.entry(goja.Undefined(), api, sandbox.vm.ToValue(ticknum))

	if timer != nil {
		timer.Stop()
	}
	sandbox.vm.ClearInterrupt()

	if err != nil {
		return Intent{}, fmt.Errorf("%s: behavior fault at tick %d: %w", sandbox.name, ticknum, err)
	}

	return *intent, nil
}
