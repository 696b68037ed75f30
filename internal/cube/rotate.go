package cube

import "math"

// SnapEpsilon is the tolerance used to pull quaternion components back onto
// the values reachable by quarter turns.
const SnapEpsilon = 0.001

// Quat is a unit quaternion (X, Y, Z, W).
type Quat struct {
	X, Y, Z, W float64
}

// Identity is the solved-pose orientation.
var Identity = Quat{W: 1}

// Mul returns q * r.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Rotate applies the rotation to an integer vector and rounds the result
// back onto the lattice.
func (q Quat) Rotate(v Vec3) Vec3 {
	vx, vy, vz := float64(v[0]), float64(v[1]), float64(v[2])
	// t = 2 * (q.xyz x v)
	tx := 2 * (q.Y*vz - q.Z*vy)
	ty := 2 * (q.Z*vx - q.X*vz)
	tz := 2 * (q.X*vy - q.Y*vx)
	// v' = v + w*t + q.xyz x t
	rx := vx + q.W*tx + (q.Y*tz - q.Z*ty)
	ry := vy + q.W*ty + (q.Z*tx - q.X*tz)
	rz := vz + q.W*tz + (q.X*ty - q.Y*tx)
	return Vec3{int(math.Round(rx)), int(math.Round(ry)), int(math.Round(rz))}
}

// ApproxEqual reports whether two quaternions describe the same rotation
// within eps. q and -q are the same rotation.
func (q Quat) ApproxEqual(r Quat, eps float64) bool {
	near := func(a, b Quat) bool {
		return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps &&
			math.Abs(a.Z-b.Z) <= eps && math.Abs(a.W-b.W) <= eps
	}
	return near(q, r) || near(q, Quat{-r.X, -r.Y, -r.Z, -r.W})
}

// QuarterTurn returns the quaternion for a 90 degree turn about the axis in
// the signed direction (right-hand rule).
func QuarterTurn(axis Axis, direction int) Quat {
	half := float64(direction) * math.Pi / 4
	s, c := math.Sin(half), math.Cos(half)
	switch axis {
	case X:
		return Quat{X: s, W: c}
	case Y:
		return Quat{Y: s, W: c}
	default:
		return Quat{Z: s, W: c}
	}
}

// snapTargets are the magnitudes a component can take after any chain of
// quarter turns.
var snapTargets = [...]float64{0, 0.5, math.Sqrt2 / 2, 1}

func snap(v float64) float64 {
	a := math.Abs(v)
	for _, t := range snapTargets {
		if math.Abs(a-t) < SnapEpsilon {
			return math.Copysign(t, v)
		}
	}
	return v
}

// Snap normalizes every component onto the quarter-turn lattice.
func (q Quat) Snap() Quat {
	return Quat{X: snap(q.X), Y: snap(q.Y), Z: snap(q.Z), W: snap(q.W)}
}

// RotatePosition90 rotates a lattice point 90 degrees about the axis.
// Integer arithmetic only.
func RotatePosition90(p Vec3, axis Axis, direction int) Vec3 {
	x, y, z := p[0], p[1], p[2]
	switch axis {
	case X:
		if direction > 0 {
			return Vec3{x, -z, y}
		}
		return Vec3{x, z, -y}
	case Y:
		if direction > 0 {
			return Vec3{z, y, -x}
		}
		return Vec3{-z, y, x}
	default:
		if direction > 0 {
			return Vec3{-y, x, z}
		}
		return Vec3{y, -x, z}
	}
}

// ComposeOrientation left-multiplies the orientation by a quarter turn and
// snaps the result.
func ComposeOrientation(q Quat, axis Axis, direction int) Quat {
	return QuarterTurn(axis, direction).Mul(q).Snap()
}
