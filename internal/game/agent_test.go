package game

import (
	"math"
	"math/rand"
	"testing"
)

// checkBasis verifies the agent's local basis is orthonormal.
func checkBasis(t *testing.T, a *Agent) {
	t.Helper()
	if !almostEq(a.forward.Length(), 1, 1e-9) {
		t.Errorf("%s: |forward| = %v, want 1", a.label, a.forward.Length())
	}
	if !almostEq(a.side.Length(), 1, 1e-9) {
		t.Errorf("%s: |side| = %v, want 1", a.label, a.side.Length())
	}
	if !almostEq(a.up.Length(), 1, 1e-9) {
		t.Errorf("%s: |up| = %v, want 1", a.label, a.up.Length())
	}
	if d := a.forward.Dot(a.side); !almostEq(d, 0, 1e-9) {
		t.Errorf("%s: forward·side = %v, want 0", a.label, d)
	}
	if d := a.forward.Dot(a.up); !almostEq(d, 0, 1e-9) {
		t.Errorf("%s: forward·up = %v, want 0", a.label, d)
	}
}

func TestApplySteeringForce_ClampsToMaxForce(t *testing.T) {
	a := newAgent("A", RoleWanderer, -1, Vec3{})

	// A raw force far over the cap must contribute exactly maxForce of
	// acceleration, not its raw length.
	raw := Vec3{X: 1000}
	a.ApplySteeringForce(raw, tickDT)

	// From rest, one tick of acceleration gives speed = |accel|*dt.
	wantSpeed := a.maxForce * tickDT
	if !almostEq(a.speed, wantSpeed, 1e-12) {
		t.Errorf("speed after clamped tick = %v, want %v", a.speed, wantSpeed)
	}
}

func TestApplySteeringForce_NeverAmplifies(t *testing.T) {
	a := newAgent("A", RoleWanderer, -1, Vec3{})
	small := Vec3{X: 0.5}
	a.ApplySteeringForce(small, tickDT)
	wantSpeed := 0.5 * tickDT
	if !almostEq(a.speed, wantSpeed, 1e-12) {
		t.Errorf("speed = %v, want %v (sub-cap force must pass through)", a.speed, wantSpeed)
	}
}

func TestApplySteeringForce_SpeedBound(t *testing.T) {
	a := newAgent("A", RoleWanderer, -1, Vec3{})

	for i := 0; i < 5000; i++ {
		a.ApplySteeringForce(Vec3{X: 100, Z: 40}, tickDT)
		if a.speed < 0 || a.speed > a.maxSpeed+1e-9 {
			t.Fatalf("tick %d: speed %v outside [0, %v]", i, a.speed, a.maxSpeed)
		}
	}
	// Under sustained forward force speed saturates at the cap.
	if !almostEq(a.speed, a.maxSpeed, 1e-9) {
		t.Errorf("saturated speed = %v, want %v", a.speed, a.maxSpeed)
	}
}

func TestApplySteeringForce_HeadingStaysUnit(t *testing.T) {
	a := newAgent("A", RoleWanderer, -1, Vec3{})
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		force := Vec3{
			X: rng.Float64()*20 - 10,
			Z: rng.Float64()*20 - 10,
		}
		a.ApplySteeringForce(force, tickDT)
		checkBasis(t, &a)
		if t.Failed() {
			t.Fatalf("basis degraded at tick %d", i)
		}
	}
}

func TestApplySteeringForce_DegenerateVelocity(t *testing.T) {
	a := newAgent("A", RoleWanderer, -1, Vec3{X: 2, Z: 3})
	prevForward := a.forward
	prevPos := a.position

	a.ApplySteeringForce(Vec3{}, tickDT)

	if a.speed != 0 {
		t.Errorf("speed = %v, want 0 on degenerate velocity", a.speed)
	}
	if a.forward != prevForward {
		t.Errorf("forward changed on degenerate velocity: %v", a.forward)
	}
	if a.position != prevPos {
		t.Errorf("position changed on degenerate velocity: %v", a.position)
	}
}

func TestApplySteeringForce_ReorientsTowardVelocity(t *testing.T) {
	a := newAgent("A", RoleWanderer, -1, Vec3{})
	// Push sideways (+Z) from rest: forward must adopt the velocity
	// direction immediately.
	a.ApplySteeringForce(Vec3{Z: 1}, tickDT)
	if !almostEq(a.forward.Z, 1, 1e-9) {
		t.Errorf("forward = %v, want +Z", a.forward)
	}
	checkBasis(t, &a)
}

func TestResetOnRing(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	center := Vec3{X: 14, Z: -8}

	for i := 0; i < 200; i++ {
		a := newAgent("P", RolePursuer, 0, Vec3{})
		a.speed = 2.5
		a.resetOnRing(rng, center)

		d := a.position.Dist(center)
		if d < ringInner || d > ringOuter {
			t.Fatalf("reset %d: distance %v outside [%v, %v]", i, d, float64(ringInner), float64(ringOuter))
		}
		if a.speed != 0 {
			t.Fatalf("reset %d: speed = %v, want 0", i, a.speed)
		}
		if a.position.Y != 0 || !almostEq(a.forward.Y, 0, 1e-12) {
			t.Fatalf("reset %d: left the horizontal plane (pos=%v fwd=%v)", i, a.position, a.forward)
		}
		checkBasis(t, &a)
	}
}

func TestRegenerateBasis_VerticalForward(t *testing.T) {
	a := newAgent("A", RoleWanderer, -1, Vec3{})
	// Forward parallel to up is the one degenerate basis case; the world
	// vertical fallback must still yield an orthonormal frame.
	a.forward = Vec3{Y: 1}
	a.regenerateBasis()
	if math.IsNaN(a.side.X) || math.IsNaN(a.up.X) {
		t.Fatalf("NaN basis: side=%v up=%v", a.side, a.up)
	}
	if !almostEq(a.side.Length(), 1, 1e-9) {
		t.Errorf("|side| = %v, want 1", a.side.Length())
	}
}
