package physics

import (
	"math"
	"testing"

	"github.com/LazyCat420/battle-bots/common/utils/vector"
)

const eps = 1e-9

func mustPanic(t *testing.T, msg string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected a panic", msg)
		}
	}()
	fn()
}

func makeTestBody(w World, x float64, y float64) Body {
	return w.CreateBody(BodyDef{
		Shape:    BodyShapes.Sphere,
		Position: vector.MakeVector3(x, y, 0),
		Radius:   1,
		Density:  1,
	})
}

func TestStepIntegratesVelocity(t *testing.T) {
	w := NewKinematicWorld(vector.MakeNullVector3())
	defer w.Destroy()

	body := makeTestBody(w, 0, 0)
	body.SetVelocity(vector.MakeVector3(3, -2, 0))

	w.Step(0.5)

	if !body.Position().Equals(vector.MakeVector3(1.5, -1, 0)) {
		t.Errorf("position = %v, want (1.5, -1, 0)", body.Position())
	}
}

func TestApplyImpulseScalesByMass(t *testing.T) {
	w := NewKinematicWorld(vector.MakeNullVector3())
	defer w.Destroy()

	// Unit box footprint at density 2 weighs 2.
	body := w.CreateBody(BodyDef{
		Shape:       BodyShapes.Box,
		HalfExtents: vector.MakeVector3(0.5, 0.5, 0.5),
		Density:     2,
	})

	body.ApplyImpulse(vector.MakeVector3(4, 0, 0))

	if !body.Velocity().Equals(vector.MakeVector3(2, 0, 0)) {
		t.Errorf("velocity = %v, want (2, 0, 0)", body.Velocity())
	}
}

func TestLinearDamping(t *testing.T) {
	w := NewKinematicWorld(vector.MakeNullVector3())
	defer w.Destroy()

	body := w.CreateBody(BodyDef{
		Shape:         BodyShapes.Sphere,
		Radius:        1,
		Density:       1,
		LinearDamping: 1,
	})
	body.SetVelocity(vector.MakeVector3(10, 0, 0))

	w.Step(0.5)

	want := 10.0 / 1.5
	if got := body.Velocity().GetX(); math.Abs(got-want) > eps {
		t.Errorf("damped velocity = %v, want %v", got, want)
	}
}

func TestGravityAndPlaneClamp(t *testing.T) {
	w := NewKinematicWorld(vector.MakeVector3(0, 0, -10))
	defer w.Destroy()

	w.CreateStaticPlane(nil)

	body := w.CreateBody(BodyDef{
		Shape:    BodyShapes.Sphere,
		Position: vector.MakeVector3(0, 0, 1),
		Radius:   1,
		Density:  1,
	})

	contacts := 0
	w.OnCollisionStart(func(c Contact) {
		contacts++
	})

	for i := 0; i < 60; i++ {
		w.Step(0.1)
	}

	if z := body.Position().GetZ(); z != 0 {
		t.Errorf("body settled at z = %v, want 0", z)
	}

	if contacts != 1 {
		t.Errorf("plane fired %d contacts, want 1 for a body at rest on it", contacts)
	}
}

func TestWallStopsBody(t *testing.T) {
	w := NewKinematicWorld(vector.MakeNullVector3())
	defer w.Destroy()

	// Left face of the wall is at x = 9.
	w.CreateStaticBox(vector.MakeVector3(10, 0, 0), vector.MakeVector3(1, 5, 1), nil)

	body := makeTestBody(w, 7, 0)
	body.SetVelocity(vector.MakeVector3(2, 0, 0))

	for i := 0; i < 10; i++ {
		w.Step(0.5)
	}

	if got := body.Position().GetX(); got > 8+eps {
		t.Errorf("body ended inside the wall margin: x = %v, want <= 8", got)
	}

	if got := body.Velocity().GetX(); got > eps {
		t.Errorf("inward velocity survived the wall: vx = %v", got)
	}
}

func TestWallContactFiresOncePerTouch(t *testing.T) {
	w := NewKinematicWorld(vector.MakeNullVector3())
	defer w.Destroy()

	w.CreateStaticBox(vector.MakeVector3(10, 0, 0), vector.MakeVector3(1, 5, 1), nil)
	body := makeTestBody(w, 7, 0)

	contacts := 0
	w.OnCollisionStart(func(c Contact) {
		contacts++
	})

	// Press into the wall and hold.
	body.SetVelocity(vector.MakeVector3(2, 0, 0))
	for i := 0; i < 5; i++ {
		w.Step(0.5)
	}
	if contacts != 1 {
		t.Fatalf("holding against the wall fired %d contacts, want 1", contacts)
	}

	// Back off, then press again: that is a new touch.
	body.SetVelocity(vector.MakeVector3(-2, 0, 0))
	w.Step(0.5)
	body.SetVelocity(vector.MakeVector3(2, 0, 0))
	w.Step(0.5)

	if contacts != 2 {
		t.Errorf("re-touching the wall fired %d contacts in total, want 2", contacts)
	}
}

func TestBodiesSeparate(t *testing.T) {
	w := NewKinematicWorld(vector.MakeNullVector3())
	defer w.Destroy()

	a := makeTestBody(w, 0, 0)
	b := makeTestBody(w, 1.5, 0)

	contacts := 0
	w.OnCollisionStart(func(c Contact) {
		contacts++
	})

	w.Step(0.1)

	dist := b.Position().Sub(a.Position()).Mag()
	if math.Abs(dist-2) > eps {
		t.Errorf("separation = %v, want the radius sum 2", dist)
	}

	if contacts != 1 {
		t.Errorf("overlap fired %d contacts, want 1", contacts)
	}

	w.Step(0.1)
	if contacts != 1 {
		t.Errorf("resting touch re-fired: %d contacts in total", contacts)
	}
}

func TestContactCarriesBodies(t *testing.T) {
	w := NewKinematicWorld(vector.MakeNullVector3())
	defer w.Destroy()

	a := w.CreateBody(BodyDef{
		Shape:    BodyShapes.Sphere,
		Position: vector.MakeVector3(0, 0, 0),
		Radius:   1,
		Density:  1,
		UserData: "left",
	})
	w.CreateBody(BodyDef{
		Shape:    BodyShapes.Sphere,
		Position: vector.MakeVector3(1, 0, 0),
		Radius:   1,
		Density:  1,
		UserData: "right",
	})

	var got Contact
	fired := false
	w.OnCollisionStart(func(c Contact) {
		got = c
		fired = true
	})

	w.Step(0.1)

	if !fired {
		t.Fatal("no contact for overlapping bodies")
	}

	if got.A != a && got.B != a {
		t.Error("contact does not reference the colliding bodies")
	}

	names := map[interface{}]bool{
		got.A.UserData(): true,
		got.B.UserData(): true,
	}
	if !names["left"] || !names["right"] {
		t.Errorf("contact userdata = %v, want both bodies", names)
	}
}

func TestUseAfterRemovePanics(t *testing.T) {
	w := NewKinematicWorld(vector.MakeNullVector3())
	defer w.Destroy()

	body := makeTestBody(w, 0, 0)
	userdata := body.UserData()
	body.Remove()

	mustPanic(t, "Position after Remove", func() { body.Position() })
	mustPanic(t, "SetVelocity after Remove", func() { body.SetVelocity(vector.MakeNullVector3()) })
	mustPanic(t, "double Remove", func() { body.Remove() })

	// UserData stays readable so contact consumers can identify the corpse.
	if body.UserData() != userdata {
		t.Error("UserData changed after Remove")
	}
}

func TestUseAfterDestroyPanics(t *testing.T) {
	w := NewKinematicWorld(vector.MakeNullVector3())
	body := makeTestBody(w, 0, 0)

	w.Destroy()

	mustPanic(t, "Step after Destroy", func() { w.Step(0.1) })
	mustPanic(t, "CreateBody after Destroy", func() { makeTestBody(w, 1, 1) })
	mustPanic(t, "body of a destroyed world", func() { body.Position() })
	mustPanic(t, "double Destroy", func() { w.Destroy() })
}

func TestRemovedBodyIgnoredBySimulation(t *testing.T) {
	w := NewKinematicWorld(vector.MakeNullVector3())
	defer w.Destroy()

	a := makeTestBody(w, 0, 0)
	b := makeTestBody(w, 1.5, 0)

	contacts := 0
	w.OnCollisionStart(func(c Contact) {
		contacts++
	})

	b.Remove()
	w.Step(0.1)

	if contacts != 0 {
		t.Errorf("removed body collided: %d contacts", contacts)
	}

	if !a.Position().Equals(vector.MakeVector3(0, 0, 0)) {
		t.Errorf("removed body displaced a live one to %v", a.Position())
	}
}
