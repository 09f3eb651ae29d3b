package behavior

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/LazyCat420/battle-bots/common/utils/vector"
)

func testPerception() Perception {
	return Perception{
		Self: PerceptionSelf{
			Position: vector.MakeVector3(5, 5, 0),
			Angle:    0,
			Health:   100,
			Velocity: vector.MakeNullVector3(),
		},
		Enemy: PerceptionEnemy{
			Position: vector.MakeVector3(8, 9, 0),
			Health:   80,
		},
		Arena: PerceptionArena{Width: 100, Depth: 100},
	}
}

func mustSandbox(t *testing.T, source string) *Sandbox {
	t.Helper()
	sandbox, err := NewSandbox("test-bot", source, 1, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	return sandbox
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"syntax error", "function (((("},
		{"top-level throw", "throw new Error('boom');"},
		{"no function produced", "var x = 42;"},
		{"behavior global not a function", "var behavior = 42;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSandbox("broken", tt.source, 1, 0)
			if err == nil {
				t.Fatal("expected a compile error")
			}
			if !errors.Is(err, ErrCompile) {
				t.Errorf("error %v does not wrap ErrCompile", err)
			}
		})
	}
}

func TestFunctionExpressionEntry(t *testing.T) {
	sandbox := mustSandbox(t, `(function(api, tick) { api.attack(); })`)

	intent, err := sandbox.Invoke(testPerception(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !intent.Attack {
		t.Error("attack intent not recorded")
	}
}

func TestGlobalBehaviorEntry(t *testing.T) {
	sandbox := mustSandbox(t, `function behavior(api, tick) { api.stop(); }`)

	intent, err := sandbox.Invoke(testPerception(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if intent.Movement != MovementKinds.Stop {
		t.Errorf("movement = %q, want stop", intent.Movement)
	}
}

func TestLastCallPerCategoryWins(t *testing.T) {
	sandbox := mustSandbox(t, `(function(api, tick) {
		api.moveToward(1, 1);
		api.strafe(-1);
		api.moveToward(30, 40);
		api.rotateTo(1);
		api.rotateTo(2.5);
		api.attack();
	})`)

	intent, err := sandbox.Invoke(testPerception(), 0)
	if err != nil {
		t.Fatal(err)
	}

	if intent.Movement != MovementKinds.MoveToward {
		t.Errorf("movement = %q, want the last movement call to win", intent.Movement)
	}
	if !intent.Target.Equals(vector.MakeVector3(30, 40, 0)) {
		t.Errorf("target = %v, want (30, 40, 0)", intent.Target)
	}
	if !intent.Rotate || intent.RotateTo != 2.5 {
		t.Errorf("rotation = %v/%v, want the last rotateTo to win", intent.Rotate, intent.RotateTo)
	}
	if !intent.Attack {
		t.Error("attack lost")
	}
}

func TestStopOverridesMoveToward(t *testing.T) {
	sandbox := mustSandbox(t, `(function(api, tick) {
		api.moveToward(10, 10);
		api.stop();
	})`)

	intent, err := sandbox.Invoke(testPerception(), 0)
	if err != nil {
		t.Fatal(err)
	}

	if intent.Movement != MovementKinds.Stop {
		t.Errorf("movement = %q, want stop", intent.Movement)
	}
}

func TestRuntimeFaultIsolatedPerTick(t *testing.T) {
	sandbox := mustSandbox(t, `(function(api, tick) {
		if (tick === 0) {
			api.moveToward(1, 1);
			undefinedFunction();
		}
		api.attack();
	})`)

	intent, err := sandbox.Invoke(testPerception(), 0)
	if err == nil {
		t.Fatal("expected a fault")
	}
	if errors.Is(err, ErrCompile) {
		t.Error("runtime fault reported as a compile error")
	}
	if intent.Movement != MovementKinds.None || intent.Attack {
		t.Errorf("partial intent survived the fault: %+v", intent)
	}

	// The sandbox keeps working on the next tick.
	intent, err = sandbox.Invoke(testPerception(), 1)
	if err != nil {
		t.Fatalf("sandbox unusable after a fault: %v", err)
	}
	if !intent.Attack {
		t.Error("intent not recorded after recovery")
	}
}

func TestBudgetInterruptsRunawayScript(t *testing.T) {
	sandbox := mustSandbox(t, `(function(api, tick) {
		if (tick === 0) {
			while (true) {}
		}
		api.attack();
	})`)

	start := time.Now()
	_, err := sandbox.Invoke(testPerception(), 0)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("runaway script returned")
	}
	if !strings.Contains(err.Error(), "budget") {
		t.Errorf("fault %q does not mention the budget", err)
	}
	if elapsed > 5*time.Second {
		t.Errorf("interrupt took %v", elapsed)
	}

	// Still usable afterwards.
	intent, err := sandbox.Invoke(testPerception(), 1)
	if err != nil {
		t.Fatalf("sandbox unusable after an interrupt: %v", err)
	}
	if !intent.Attack {
		t.Error("intent not recorded after an interrupt")
	}
}

func TestPerceptionRebuiltEveryTick(t *testing.T) {
	sandbox := mustSandbox(t, `(function(api, tick) {
		if (tick === 0) {
			api.self.position.x = 999;
		}
		api.rotateTo(api.self.position.x);
	})`)

	if _, err := sandbox.Invoke(testPerception(), 0); err != nil {
		t.Fatal(err)
	}

	intent, err := sandbox.Invoke(testPerception(), 1)
	if err != nil {
		t.Fatal(err)
	}

	if intent.RotateTo != 5 {
		t.Errorf("tick 1 saw x = %v, want the engine value 5", intent.RotateTo)
	}
}

func TestPerceptionValues(t *testing.T) {
	sandbox := mustSandbox(t, `(function(api, tick) {
		api.rotateTo(api.distanceToEnemy);
		api.strafe(api.angleTo(5, 15));
		api.moveToward(api.arena.width, api.enemy.health);
	})`)

	intent, err := sandbox.Invoke(testPerception(), 0)
	if err != nil {
		t.Fatal(err)
	}

	// self (5,5) to enemy (8,9) is a 3-4-5 triangle
	if math.Abs(intent.RotateTo-5) > 1e-9 {
		t.Errorf("distanceToEnemy = %v, want 5", intent.RotateTo)
	}

	// (5,15) is straight up from (5,5)
	if math.Abs(intent.StrafeDir-math.Pi/2) > 1e-9 {
		t.Errorf("angleTo = %v, want pi/2", intent.StrafeDir)
	}

	if !intent.Target.Equals(vector.MakeVector3(100, 80, 0)) {
		t.Errorf("target = %v, want (arena.width, enemy.health)", intent.Target)
	}
}

func TestRandomIsSeeded(t *testing.T) {
	source := `(function(api, tick) { api.rotateTo(api.random(0, 100)); })`

	a, err := NewSandbox("a", source, 7, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSandbox("b", source, 7, 0)
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewSandbox("c", source, 8, 0)
	if err != nil {
		t.Fatal(err)
	}

	ia, _ := a.Invoke(testPerception(), 0)
	ib, _ := b.Invoke(testPerception(), 0)
	ic, _ := c.Invoke(testPerception(), 0)

	if ia.RotateTo != ib.RotateTo {
		t.Errorf("same seed diverged: %v vs %v", ia.RotateTo, ib.RotateTo)
	}
	if ia.RotateTo == ic.RotateTo {
		t.Error("different seeds produced the same first draw")
	}

	if ia.RotateTo < 0 || ia.RotateTo >= 100 {
		t.Errorf("random(0, 100) = %v, out of range", ia.RotateTo)
	}
}

func TestNoBudgetMeansNoCap(t *testing.T) {
	sandbox, err := NewSandbox("uncapped", `(function(api, tick) {
		var total = 0;
		for (var i = 0; i < 100000; i++) { total += i; }
		api.rotateTo(total > 0 ? 1 : 0);
	})`, 1, 0)
	if err != nil {
		t.Fatal(err)
	}

	intent, err := sandbox.Invoke(testPerception(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if intent.RotateTo != 1 {
		t.Error("script did not run to completion")
	}
}
