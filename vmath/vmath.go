// Package vmath provides the scalar, vector and rotation utilities shared by the
// simulation kernel: interpolation and easing helpers, seeded Perlin noise, a
// seeded random generator, color-space conversions and Bézier curve sampling.
//
// Vector, quaternion and matrix arithmetic comes from mgl64; this package only
// adds the operations mgl64 does not cover, together with the degenerate-input
// contract the kernel relies on everywhere: near-zero inputs produce documented
// sentinels (zero vector, identity quaternion), never NaN or Inf.
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Tau is a full turn in radians.
	Tau = 2 * math.Pi

	// Deg2Rad converts degrees to radians when multiplied.
	Deg2Rad = math.Pi / 180.0

	// Rad2Deg converts radians to degrees when multiplied.
	Rad2Deg = 180.0 / math.Pi

	// zeroLenSq is the squared-length threshold under which a vector is
	// treated as zero for normalization purposes.
	zeroLenSq = 1e-8
)

// Clamp01 restricts t to the [0, 1] interval.
func Clamp01(t float64) float64 {
	return mgl64.Clamp(t, 0, 1)
}

// Lerp interpolates linearly between a and b by t. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InverseLerp returns where v sits between a and b, in [0, 1] for v inside the
// interval. A zero-length interval returns 0.
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return (v - a) / (b - a)
}

// Remap maps v from the [inMin, inMax] interval onto [outMin, outMax].
func Remap(v, inMin, inMax, outMin, outMax float64) float64 {
	return Lerp(outMin, outMax, InverseLerp(inMin, inMax, v))
}

// SmoothStep is the classic cubic Hermite interpolation 3t²-2t³ of t clamped
// to [0, 1].
func SmoothStep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// SmootherStep is Perlin's 6t⁵-15t⁴+10t³ variant with zero second derivatives
// at both ends.
func SmootherStep(t float64) float64 {
	t = Clamp01(t)
	return t * t * t * (t*(t*6-15) + 10)
}

// SinDeg returns the sine of an angle given in degrees.
func SinDeg(degrees float64) float64 {
	return math.Sin(degrees * Deg2Rad)
}

// CosDeg returns the cosine of an angle given in degrees.
func CosDeg(degrees float64) float64 {
	return math.Cos(degrees * Deg2Rad)
}

// TanDeg returns the tangent of an angle given in degrees.
func TanDeg(degrees float64) float64 {
	return math.Tan(degrees * Deg2Rad)
}

// SafeNormalize returns the unit vector pointing along v, or the zero vector
// when v is too short to normalize.
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	if v.LenSqr() < zeroLenSq {
		return mgl64.Vec3{}
	}
	return v.Normalize()
}

// ClampMagnitude returns v unchanged if its length does not exceed limit,
// otherwise v scaled down to the limit. A non-positive limit returns the zero
// vector.
func ClampMagnitude(v mgl64.Vec3, limit float64) mgl64.Vec3 {
	if limit <= 0 {
		return mgl64.Vec3{}
	}
	lenSq := v.LenSqr()
	if lenSq <= limit*limit {
		return v
	}
	return v.Mul(limit / math.Sqrt(lenSq))
}

// MoveTowards advances from current toward target by at most maxDelta,
// landing exactly on target once within range.
func MoveTowards(current, target mgl64.Vec3, maxDelta float64) mgl64.Vec3 {
	delta := target.Sub(current)
	distSq := delta.LenSqr()
	if distSq == 0 || (maxDelta >= 0 && distSq <= maxDelta*maxDelta) {
		return target
	}
	return current.Add(delta.Mul(maxDelta / math.Sqrt(distSq)))
}

// Lerp3 interpolates linearly between two vectors by t. t is not clamped.
func Lerp3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Project returns the projection of v onto the direction onto. A degenerate
// direction yields the zero vector.
func Project(v, onto mgl64.Vec3) mgl64.Vec3 {
	lenSq := onto.LenSqr()
	if lenSq < zeroLenSq {
		return mgl64.Vec3{}
	}
	return onto.Mul(v.Dot(onto) / lenSq)
}

// Reject returns the component of v perpendicular to onto.
func Reject(v, onto mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(Project(v, onto))
}

// ProjectOnPlane removes from v its component along the plane normal.
func ProjectOnPlane(v, normal mgl64.Vec3) mgl64.Vec3 {
	return Reject(v, normal)
}

// SafeQuatNormalize normalizes q, returning the identity quaternion when q is
// too close to zero for the result to be meaningful.
func SafeQuatNormalize(q mgl64.Quat) mgl64.Quat {
	lenSq := q.W*q.W + q.V.LenSqr()
	if lenSq < zeroLenSq {
		return mgl64.QuatIdent()
	}
	return q.Normalize()
}

// EulerFromQuat extracts rotations about the x, y and z axes from a unit
// quaternion using the standard ZYX decomposition. The y component is clamped
// to ±π/2 at gimbal lock (|sin| >= 1).
func EulerFromQuat(q mgl64.Quat) mgl64.Vec3 {
	x, y, z := q.V.X(), q.V.Y(), q.V.Z()
	w := q.W

	sinrCosp := 2 * (w*x + y*z)
	cosrCosp := 1 - 2*(x*x+y*y)
	rx := math.Atan2(sinrCosp, cosrCosp)

	var ry float64
	sinp := 2 * (w*y - z*x)
	if math.Abs(sinp) >= 1 {
		ry = math.Copysign(math.Pi/2, sinp)
	} else {
		ry = math.Asin(sinp)
	}

	sinyCosp := 2 * (w*z + x*y)
	cosyCosp := 1 - 2*(y*y+z*z)
	rz := math.Atan2(sinyCosp, cosyCosp)

	return mgl64.Vec3{rx, ry, rz}
}

// QuatFromEuler builds a quaternion from rotations about the x, y and z axes,
// applied in ZYX order (the inverse of EulerFromQuat).
func QuatFromEuler(angles mgl64.Vec3) mgl64.Quat {
	qz := mgl64.QuatRotate(angles.Z(), mgl64.Vec3{0, 0, 1})
	qy := mgl64.QuatRotate(angles.Y(), mgl64.Vec3{0, 1, 0})
	qx := mgl64.QuatRotate(angles.X(), mgl64.Vec3{1, 0, 0})
	return qz.Mul(qy).Mul(qx).Normalize()
}

// QuatLookRotation returns the rotation orienting the +z axis toward forward
// with the given up hint. Degenerate inputs return the identity quaternion.
func QuatLookRotation(forward, up mgl64.Vec3) mgl64.Quat {
	f := SafeNormalize(forward)
	if f.LenSqr() < zeroLenSq {
		return mgl64.QuatIdent()
	}
	side := SafeNormalize(up.Cross(f))
	if side.LenSqr() < zeroLenSq {
		// forward and up are parallel, pick any perpendicular axis
		side = SafeNormalize(mgl64.Vec3{1, 0, 0}.Cross(f))
		if side.LenSqr() < zeroLenSq {
			side = SafeNormalize(mgl64.Vec3{0, 0, 1}.Cross(f))
		}
	}
	u := f.Cross(side)

	m := mgl64.Mat3{
		side.X(), side.Y(), side.Z(),
		u.X(), u.Y(), u.Z(),
		f.X(), f.Y(), f.Z(),
	}
	return SafeQuatNormalize(mgl64.Mat4ToQuat(m.Mat4()))
}
