package game

import (
	"fmt"
	"math/rand"
	"time"
)

// tickDT is the fixed simulation timestep in seconds. Hosts that schedule
// ticks at another cadence pass their own dt to Step; everything in this
// repo uses the fixed step.
const tickDT = 0.006

// Roster owns the whole agent population: the wanderer at index 0 and a
// fixed count of pursuers after it, all held by value in one slice.
// Pursuers reference their quarry by roster index, so no reference can
// outlive the agent it points at.
type Roster struct {
	agents   []Agent
	tick     int
	captures int // contact-triggered resets since open
	rng      *rand.Rand
	log      *SimLog
	closed   bool
}

// RosterOption configures a Roster at open time.
type RosterOption func(*Roster)

// WithRosterSeed seeds the roster's RNG for deterministic runs.
func WithRosterSeed(seed int64) RosterOption {
	return func(r *Roster) {
		r.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation, not crypto
	}
}

// WithRosterLog attaches a SimLog that receives contact/reset/move events.
func WithRosterLog(sl *SimLog) RosterOption {
	return func(r *Roster) {
		r.log = sl
	}
}

// OpenRoster allocates one wanderer plus pursuerCount pursuers, all at the
// origin with zero speed. A negative pursuerCount is rejected before any
// allocation.
func OpenRoster(pursuerCount int, opts ...RosterOption) (*Roster, error) {
	if pursuerCount < 0 {
		return nil, fmt.Errorf("open roster: pursuer count must be >= 0, got %d", pursuerCount)
	}

	r := &Roster{}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- simulation, not crypto
	}

	r.agents = make([]Agent, 0, 1+pursuerCount)
	r.agents = append(r.agents, newAgent("W", RoleWanderer, -1, Vec3{}))
	for i := 0; i < pursuerCount; i++ {
		p := newAgent(fmt.Sprintf("P%d", i), RolePursuer, 0, Vec3{})
		// Pursuers start scattered on the spawn ring, not on top of the
		// quarry, so the demo opens mid-chase.
		p.resetOnRing(r.rng, r.agents[0].position)
		r.agents = append(r.agents, p)
	}
	return r, nil
}

// Step advances the simulation by one tick of dt seconds. If teleport is
// non-nil the wanderer is moved there directly (position only — teleport
// implies no velocity or orientation); otherwise it wanders autonomously.
// Each pursuer is then contact-checked against the wanderer and either
// reset onto the spawn ring or steered by predictive pursuit. Validation
// happens before any state mutation: a rejected tick changes nothing.
func (r *Roster) Step(dt float64, teleport *Vec3) error {
	if r.closed {
		return fmt.Errorf("step: roster is closed")
	}
	if dt <= 0 {
		return fmt.Errorf("step: dt must be > 0, got %g", dt)
	}
	r.tick++

	w := &r.agents[0]
	if teleport != nil {
		w.teleport(*teleport)
	} else {
		wander := w.SteerForWander(r.rng, dt)
		steer := w.forward.Add(wander.Scale(wanderBias))
		w.ApplySteeringForce(steer, dt)
	}

	for i := 1; i < len(r.agents); i++ {
		p := &r.agents[i]
		quarry := &r.agents[p.quarry]

		d := p.position.Dist(quarry.position)
		if d < p.radius+quarry.radius {
			r.captures++
			if r.log != nil {
				r.log.Add(r.tick, p.label, "contact", "caught",
					fmt.Sprintf("d=%.3f < r=%.3f", d, p.radius+quarry.radius), d)
			}
			p.resetOnRing(r.rng, quarry.position)
			if r.log != nil {
				r.log.Add(r.tick, p.label, "reset", "ring",
					fmt.Sprintf("respawn at d=%.1f", p.position.Dist(quarry.position)),
					p.position.Dist(quarry.position))
			}
			continue
		}

		force := SteerForPursuit(p, quarry, maxPredictionTime)
		p.ApplySteeringForce(force, dt)
	}

	if r.log != nil {
		for i := range r.agents {
			a := &r.agents[i]
			r.log.AddVerbose(r.tick, a.label, "move", "position",
				fmt.Sprintf("(%.3f,%.3f,%.3f)", a.position.X, a.position.Y, a.position.Z),
				a.speed)
		}
	}
	return nil
}

// AgentCount returns the population size (wanderer + pursuers).
func (r *Roster) AgentCount() int { return len(r.agents) }

// Agent returns the agent at roster index i (0 is the wanderer).
func (r *Roster) Agent(i int) *Agent { return &r.agents[i] }

// Wanderer returns the quarry agent.
func (r *Roster) Wanderer() *Agent { return &r.agents[0] }

// PositionOf, HeadingOf and RadiusOf are the read-only surface exposed to
// the render layer.
func (r *Roster) PositionOf(i int) Vec3  { return r.agents[i].position }
func (r *Roster) HeadingOf(i int) Vec3   { return r.agents[i].forward }
func (r *Roster) RadiusOf(i int) float64 { return r.agents[i].radius }

// Tick returns the number of completed simulation ticks.
func (r *Roster) Tick() int { return r.tick }

// Captures returns how many contact-triggered resets have fired since open.
func (r *Roster) Captures() int { return r.captures }

// Close releases the population. Further Step calls are rejected.
func (r *Roster) Close() {
	r.agents = nil
	r.closed = true
}
