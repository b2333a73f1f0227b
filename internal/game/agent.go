package game

import (
	"math"
	"math/rand"
)

// Default physical limits shared by the wanderer and every pursuer.
const (
	defaultMaxForce = 5.0 // steering force cap, units/s²
	defaultMaxSpeed = 3.0 // units/s
	defaultRadius   = 0.5 // bounding radius, units

	// Spawn annulus around the quarry used when a pursuer catches it.
	ringInner = 20.0
	ringOuter = 30.0
)

// Role distinguishes the quarry from its chasers.
type Role int

const (
	RoleWanderer Role = iota // the quarry: player-driven or autonomous
	RolePursuer              // chases the wanderer by predictive seek
)

func (r Role) String() string {
	switch r {
	case RoleWanderer:
		return "wanderer"
	case RolePursuer:
		return "pursuer"
	default:
		return "unknown"
	}
}

// Agent is one vehicle in the simulation: a point mass with an orthonormal
// local basis, a scalar speed along forward, and fixed physical limits.
// Pursuers carry the roster index of their quarry; there is no pointer to
// dangle — the roster owns every agent by value.
type Agent struct {
	label  string
	role   Role
	quarry int // roster index of the chased agent; -1 for the wanderer

	position Vec3
	forward  Vec3 // unit length
	side     Vec3
	up       Vec3
	speed    float64 // magnitude along forward, in [0, maxSpeed]

	maxForce float64
	maxSpeed float64
	radius   float64

	// Band-limited wander walk state (see SteerForWander).
	wanderSide float64
	wanderUp   float64
}

// newAgent creates an agent at pos with default limits, facing +X.
func newAgent(label string, role Role, quarry int, pos Vec3) Agent {
	return Agent{
		label:    label,
		role:     role,
		quarry:   quarry,
		position: pos,
		forward:  Vec3{X: 1},
		side:     Vec3{Z: -1},
		up:       Vec3{Y: 1},
		maxForce: defaultMaxForce,
		maxSpeed: defaultMaxSpeed,
		radius:   defaultRadius,
	}
}

// Read-only accessors for the render layer and tests.
func (a *Agent) Label() string     { return a.label }
func (a *Agent) Role() Role        { return a.role }
func (a *Agent) Position() Vec3    { return a.position }
func (a *Agent) Forward() Vec3     { return a.forward }
func (a *Agent) Speed() float64    { return a.speed }
func (a *Agent) MaxSpeed() float64 { return a.maxSpeed }
func (a *Agent) MaxForce() float64 { return a.maxForce }
func (a *Agent) Radius() float64   { return a.radius }

// Velocity is forward scaled by speed.
func (a *Agent) Velocity() Vec3 { return a.forward.Scale(a.speed) }

// ApplySteeringForce advances the agent's kinematics by one tick under a
// desired steering force. The force is truncated to maxForce (never
// amplified), integrated as acceleration with unit mass, and the resulting
// speed is clamped to [0, maxSpeed]. When the new velocity is non-degenerate
// the agent adopts its direction as the new forward and re-orthonormalizes
// side/up; a degenerate velocity zeroes speed and keeps the prior heading.
func (a *Agent) ApplySteeringForce(force Vec3, dt float64) {
	clipped := force.TruncateLength(a.maxForce)

	// velocity = forward*speed + accel*dt, mass is implicitly 1.
	vel := a.forward.Scale(a.speed).Add(clipped.Scale(dt))

	newSpeed := vel.Length()
	if newSpeed < epsilon {
		a.speed = 0
		return
	}
	if newSpeed > a.maxSpeed {
		newSpeed = a.maxSpeed
	}
	a.speed = newSpeed

	a.forward = vel.Scale(1 / vel.Length())
	a.regenerateBasis()

	a.position = a.position.Add(a.forward.Scale(a.speed * dt))
}

// regenerateBasis re-derives side and up so the basis stays orthonormal
// after forward changes: side = up₀×forward normalized, up = forward×side.
func (a *Agent) regenerateBasis() {
	side := a.up.Cross(a.forward).Normalize()
	if side.LengthSq() < epsilon {
		// forward is (anti)parallel to up; derive side from the world X
		// axis instead.
		side = Vec3{X: 1}.Cross(a.forward).Normalize()
	}
	a.side = side
	a.up = a.forward.Cross(a.side)
}

// teleport moves the agent without implying any velocity or orientation.
func (a *Agent) teleport(pos Vec3) {
	a.position = pos
}

// resetOnRing redraws the agent's position uniformly at random on the
// [ringInner, ringOuter] annulus around center in the horizontal plane,
// randomizes its heading in that plane, and zeroes its speed.
func (a *Agent) resetOnRing(rng *rand.Rand, center Vec3) {
	dist := ringInner + rng.Float64()*(ringOuter-ringInner)
	angle := rng.Float64() * 2 * math.Pi
	a.position = center.Add(Vec3{X: math.Cos(angle) * dist, Z: math.Sin(angle) * dist})

	heading := rng.Float64() * 2 * math.Pi
	a.forward = Vec3{X: math.Cos(heading), Z: math.Sin(heading)}
	a.up = Vec3{Y: 1}
	a.regenerateBasis()
	a.speed = 0
}
