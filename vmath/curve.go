package vmath

import "github.com/go-gl/mathgl/mgl64"

// QuadraticBezier evaluates a quadratic Bézier curve through p0, p1, p2 at
// parameter t. t is clamped to [0, 1], so callers can feed raw animation
// time without guarding the endpoints.
func QuadraticBezier(p0, p1, p2 mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.QuadraticBezierCurve3D(Clamp01(t), p0, p1, p2)
}

// CubicBezier evaluates a cubic Bézier curve through p0, p1, p2, p3 at
// parameter t. t is clamped to [0, 1].
func CubicBezier(p0, p1, p2, p3 mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.CubicBezierCurve3D(Clamp01(t), p0, p1, p2, p3)
}

// CatmullRom evaluates a centripetal-free (uniform) Catmull-Rom spline
// segment between p1 and p2, with p0 and p3 as the neighboring control
// points. t is clamped to [0, 1].
func CatmullRom(p0, p1, p2, p3 mgl64.Vec3, t float64) mgl64.Vec3 {
	t = Clamp01(t)
	t2 := t * t
	t3 := t2 * t

	// Standard uniform Catmull-Rom basis with tension 0.5.
	c0 := -0.5*t3 + t2 - 0.5*t
	c1 := 1.5*t3 - 2.5*t2 + 1.0
	c2 := -1.5*t3 + 2.0*t2 + 0.5*t
	c3 := 0.5*t3 - 0.5*t2

	return p0.Mul(c0).Add(p1.Mul(c1)).Add(p2.Mul(c2)).Add(p3.Mul(c3))
}
