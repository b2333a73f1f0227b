package game

import (
	"strings"
	"testing"
)

func TestOpenRoster_RejectsNegativeCount(t *testing.T) {
	r, err := OpenRoster(-1)
	if err == nil {
		t.Fatal("expected error for negative pursuer count")
	}
	if r != nil {
		t.Fatal("roster returned alongside error")
	}
	if !strings.Contains(err.Error(), "pursuer count") {
		t.Errorf("unhelpful error: %v", err)
	}
}

func TestOpenRoster_Population(t *testing.T) {
	r, err := OpenRoster(4, WithRosterSeed(9))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if got := r.AgentCount(); got != 5 {
		t.Fatalf("AgentCount = %d, want 5", got)
	}
	if r.Agent(0).Role() != RoleWanderer || r.Agent(0).Label() != "W" {
		t.Errorf("index 0 is %s/%s, want the wanderer", r.Agent(0).Label(), r.Agent(0).Role())
	}
	for i := 1; i < r.AgentCount(); i++ {
		p := r.Agent(i)
		if p.Role() != RolePursuer {
			t.Errorf("index %d role = %s, want pursuer", i, p.Role())
		}
		// Pursuers open scattered on the spawn ring around the wanderer.
		d := p.Position().Dist(r.Wanderer().Position())
		if d < ringInner || d > ringOuter {
			t.Errorf("%s opened at distance %v, want within [%v, %v]", p.Label(), d, float64(ringInner), float64(ringOuter))
		}
	}

	// The render-layer accessors agree with the agents themselves.
	if r.PositionOf(1) != r.Agent(1).Position() ||
		r.HeadingOf(1) != r.Agent(1).Forward() ||
		r.RadiusOf(1) != r.Agent(1).Radius() {
		t.Error("render accessors disagree with agent state")
	}
}

func TestOpenRoster_ZeroPursuers(t *testing.T) {
	r, err := OpenRoster(0, WithRosterSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if r.AgentCount() != 1 {
		t.Fatalf("AgentCount = %d, want 1", r.AgentCount())
	}
	// A lone wanderer still steps fine.
	if err := r.Step(tickDT, nil); err != nil {
		t.Fatal(err)
	}
}

func TestStep_RejectsBadDT(t *testing.T) {
	r, err := OpenRoster(1, WithRosterSeed(2))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	before := r.Agent(1).Position()
	for _, dt := range []float64{0, -0.006} {
		if err := r.Step(dt, nil); err == nil {
			t.Errorf("dt=%v: expected error", dt)
		}
	}
	// Rejection happens before any mutation.
	if r.Tick() != 0 {
		t.Errorf("tick advanced to %d on rejected step", r.Tick())
	}
	if r.Agent(1).Position() != before {
		t.Error("pursuer moved on rejected step")
	}
}

func TestStep_AfterCloseFails(t *testing.T) {
	r, err := OpenRoster(1)
	if err != nil {
		t.Fatal(err)
	}
	r.Close()
	if err := r.Step(tickDT, nil); err == nil {
		t.Fatal("expected error stepping a closed roster")
	}
}

func TestStep_TeleportSemantics(t *testing.T) {
	r, err := OpenRoster(0, WithRosterSeed(4))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	w := r.Wanderer()
	prevForward := w.Forward()
	prevSpeed := w.Speed()

	dest := Vec3{X: -33, Z: 12}
	if err := r.Step(tickDT, &dest); err != nil {
		t.Fatal(err)
	}

	if w.Position() != dest {
		t.Errorf("position = %v, want teleport destination %v", w.Position(), dest)
	}
	// Teleport implies no velocity or orientation.
	if w.Forward() != prevForward {
		t.Errorf("forward changed by teleport: %v", w.Forward())
	}
	if w.Speed() != prevSpeed {
		t.Errorf("speed changed by teleport: %v", w.Speed())
	}
}

func TestStep_AutonomousWandererMoves(t *testing.T) {
	r, err := OpenRoster(0, WithRosterSeed(6))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	for i := 0; i < 500; i++ {
		if err := r.Step(tickDT, nil); err != nil {
			t.Fatal(err)
		}
	}
	w := r.Wanderer()
	if w.Position().Dist(Vec3{}) < 1 {
		t.Errorf("wanderer barely moved in 3s: %v", w.Position())
	}
	if w.Position().Y != 0 {
		t.Errorf("wanderer left the horizontal plane: %v", w.Position())
	}
}

func TestStep_Determinism(t *testing.T) {
	run := func() Vec3 {
		ts := NewTestSim(WithSeed(77), WithPursuers(3), WithAutonomousWander(true))
		ts.RunTicks(1000)
		return ts.Roster.Wanderer().Position()
	}
	a, b := run(), run()
	if a != b {
		t.Errorf("same seed diverged: %v vs %v", a, b)
	}
}

func TestTestSim_LimitAndDTOverrides(t *testing.T) {
	ts := NewTestSim(
		WithSeed(2),
		WithPursuers(1),
		WithDT(0.01),
		WithLimits(5, 10),
		WithWandererAt(0, 0, 0),
		WithPursuerAt(0, 25, 0, 0),
	)
	ts.RunTicks(100) // 1s at the overridden dt

	p := ts.Roster.Agent(1)
	if p.MaxSpeed() != 5 || p.MaxForce() != 10 {
		t.Fatalf("limits not applied: maxSpeed=%v maxForce=%v", p.MaxSpeed(), p.MaxForce())
	}
	// Accelerating at 10 from rest saturates the 5 cap within half the run.
	if !almostEq(p.Speed(), 5, 1e-9) {
		t.Errorf("speed = %v, want saturated at 5", p.Speed())
	}
}

func TestRosterOrder_StableAcrossSteps(t *testing.T) {
	r, err := OpenRoster(3, WithRosterSeed(8))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	labels := func() []string {
		out := make([]string, r.AgentCount())
		for i := range out {
			out[i] = r.Agent(i).Label()
		}
		return out
	}
	before := labels()
	for i := 0; i < 200; i++ {
		if err := r.Step(tickDT, nil); err != nil {
			t.Fatal(err)
		}
	}
	after := labels()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("roster order changed: %v → %v", before, after)
		}
	}
}
