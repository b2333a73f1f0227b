package game

import "math"

// Vec3 is a 3-component point or direction. The simulation runs on the
// horizontal XZ plane; +Y is up.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale multiplies all components by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSq() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

func (v Vec3) Length() float64 {
	l2 := v.LengthSq()
	if l2 == 0 {
		return 0
	}
	return math.Sqrt(l2)
}

// Dist returns the distance between v and o as points.
func (v Vec3) Dist(o Vec3) float64 { return v.Sub(o).Length() }

// Normalize returns the unit vector in v's direction.
// A degenerate (near-zero) vector normalizes to the zero vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < epsilon {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// TruncateLength rescales v to length max when it is longer; shorter
// vectors pass through unchanged (never amplified).
func (v Vec3) TruncateLength(max float64) Vec3 {
	l := v.Length()
	if l <= max {
		return v
	}
	return v.Scale(max / l)
}

// SetYZero projects v onto the horizontal plane.
func (v Vec3) SetYZero() Vec3 { return Vec3{v.X, 0, v.Z} }

// epsilon is the degenerate-length threshold used throughout the sim.
const epsilon = 1e-9
