package game

// TestSim is a headless simulation harness used by tests and the headless
// report tool. It wraps a Roster but has no Ebiten dependency and supports
// deterministic seeding, structured logging, and per-agent placement.
type TestSim struct {
	Roster *Roster
	SimLog *SimLog

	DT float64 // seconds per tick

	seed         int64
	pursuerCount int
	wander       bool // autonomous wanderer when no teleport is fed
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // seed, counts, verbosity — applied first
	simOptAgent                      // placement/limits — applied after the roster exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithPursuers sets how many pursuers the roster opens with.
func WithPursuers(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.pursuerCount = n
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithDT overrides the default tick duration.
func WithDT(dt float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.DT = dt
	}}
}

// WithAutonomousWander controls whether RunTicks lets the wanderer steer
// itself. Off by default so convergence tests see a stationary quarry.
func WithAutonomousWander(on bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.wander = on
	}}
}

// WithWandererAt places the wanderer.
func WithWandererAt(x, y, z float64) SimOption {
	return SimOption{simOptAgent, func(ts *TestSim) {
		ts.Roster.Wanderer().teleport(Vec3{X: x, Y: y, Z: z})
	}}
}

// WithPursuerAt places pursuer i (roster index i+1), facing the wanderer's
// current position with zero speed.
func WithPursuerAt(i int, x, y, z float64) SimOption {
	return SimOption{simOptAgent, func(ts *TestSim) {
		p := ts.Roster.Agent(i + 1)
		p.teleport(Vec3{X: x, Y: y, Z: z})
		fwd := ts.Roster.Wanderer().Position().Sub(p.position).Normalize()
		if fwd.LengthSq() < epsilon {
			fwd = Vec3{X: 1}
		}
		p.forward = fwd
		p.up = Vec3{Y: 1}
		p.regenerateBasis()
		p.speed = 0
	}}
}

// WithLimits overrides maxSpeed/maxForce for every agent in the roster.
func WithLimits(maxSpeed, maxForce float64) SimOption {
	return SimOption{simOptAgent, func(ts *TestSim) {
		for i := 0; i < ts.Roster.AgentCount(); i++ {
			a := ts.Roster.Agent(i)
			a.maxSpeed = maxSpeed
			a.maxForce = maxForce
		}
	}}
}

// NewTestSim constructs a TestSim from the given options in two ordered
// passes:
//  1. Infrastructure (seed, pursuer count, verbosity, tick duration)
//  2. Open the roster
//  3. Agent placement and limit overrides
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		DT:           tickDT,
		seed:         1,
		pursuerCount: 1,
		SimLog:       NewSimLog(false),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}

	// OpenRoster only fails on a negative count; harness callers pass
	// literals, so a failure here is a test-authorship bug.
	r, err := OpenRoster(ts.pursuerCount, WithRosterSeed(ts.seed), WithRosterLog(ts.SimLog))
	if err != nil {
		panic(err)
	}
	ts.Roster = r

	for _, o := range opts {
		if o.kind == simOptAgent {
			o.fn(ts)
		}
	}
	return ts
}

// RunTicks advances the simulation n ticks. When autonomous wander is off
// the wanderer is pinned in place by feeding its own position back as the
// external teleport each tick.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.stepOnce()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if
// predicate returns true. Returns the tick at which the predicate was
// satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.stepOnce()
		if predicate(ts) {
			return ts.Roster.Tick()
		}
	}
	return -1
}

// StepTeleport advances one tick with an externally supplied wanderer
// position, mirroring player input in the windowed demo.
func (ts *TestSim) StepTeleport(pos Vec3) {
	if err := ts.Roster.Step(ts.DT, &pos); err != nil {
		panic(err)
	}
}

func (ts *TestSim) stepOnce() {
	var teleport *Vec3
	if !ts.wander {
		pin := ts.Roster.Wanderer().Position()
		teleport = &pin
	}
	if err := ts.Roster.Step(ts.DT, teleport); err != nil {
		panic(err)
	}
}

// CurrentTick returns the roster's completed tick count.
func (ts *TestSim) CurrentTick() int { return ts.Roster.Tick() }
