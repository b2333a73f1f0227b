package game

import "math/rand"

const (
	// wanderRate is the per-second speed of the wander random walk.
	wanderRate = 12.0
	// wanderBias scales the lateral wander term relative to the forward bias.
	wanderBias = 3.0
	// maxPredictionTime caps the pursuit look-ahead horizon, in seconds.
	// Without the cap a near-stationary or receding quarry produces wildly
	// unstable predicted positions.
	maxPredictionTime = 20.0
)

// Seek returns a steering force of magnitude maxForce pointing from the
// agent toward target. A degenerate offset (agent already at target) yields
// the zero force. Pure — no hidden state.
func Seek(target Vec3, a *Agent) Vec3 {
	return target.Sub(a.position).Normalize().Scale(a.maxForce)
}

// SteerForWander produces a small band-limited random steering perturbation.
// Two persistent scalar walks keep consecutive ticks correlated (smooth
// wandering rather than white noise); the result is projected onto the
// agent's side/up axes and flattened to the horizontal plane. Callers bias
// the returned force with the current forward, e.g.
// forward + wander*wanderBias, before ApplySteeringForce.
func (a *Agent) SteerForWander(rng *rand.Rand, dt float64) Vec3 {
	speed := wanderRate * dt
	a.wanderSide = scalarRandomWalk(a.wanderSide, speed, -1, 1, rng)
	a.wanderUp = scalarRandomWalk(a.wanderUp, speed, -1, 1, rng)
	return a.side.Scale(a.wanderSide).Add(a.up.Scale(a.wanderUp)).SetYZero()
}

// scalarRandomWalk nudges value by a uniform step in ±walkSpeed, clamped
// to [min, max].
func scalarRandomWalk(value, walkSpeed, min, max float64, rng *rand.Rand) float64 {
	next := value + (rng.Float64()*2-1)*walkSpeed
	if next < min {
		return min
	}
	if next > max {
		return max
	}
	return next
}

// SteerForPursuit returns a steering force aimed at where the quarry will
// be rather than where it is. The look-ahead is estimated from the gap and
// the closing speed, then clamped to [0, maxPrediction]; a stationary
// quarry reduces the whole thing exactly to Seek(quarry.position).
//
// The time estimate is a tunable policy, not a bit-exact contract — only
// the clamp and the stationary-quarry case are load-bearing.
func SteerForPursuit(pursuer, quarry *Agent, maxPrediction float64) Vec3 {
	return Seek(PursuitTarget(pursuer, quarry, maxPrediction), pursuer)
}

// PursuitTarget returns the predicted quarry position SteerForPursuit aims
// at. Exposed separately so the demo can draw the aim point.
func PursuitTarget(pursuer, quarry *Agent, maxPrediction float64) Vec3 {
	offset := quarry.position.Sub(pursuer.position)
	dist := offset.Length()
	if dist < epsilon {
		return quarry.position
	}

	// Positive when the quarry is fleeing along the pursuer→quarry line,
	// negative when it is closing on the pursuer.
	fleeing := quarry.Velocity().Dot(offset.Scale(1 / dist))

	var predictionTime float64
	switch {
	case pursuer.speed <= quarry.speed || fleeing < 0:
		// No speed advantage, or the quarry is coming to us anyway: a
		// short direct estimate avoids overshooting the intercept.
		predictionTime = dist / pursuer.maxSpeed
	default:
		closing := pursuer.maxSpeed - fleeing
		if closing < epsilon {
			predictionTime = maxPrediction
		} else {
			predictionTime = dist / closing
		}
	}
	if predictionTime > maxPrediction {
		predictionTime = maxPrediction
	}

	return quarry.position.Add(quarry.Velocity().Scale(predictionTime))
}
