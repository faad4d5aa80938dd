// Package raycast implements ray and swept-shape queries against the
// collision shapes.
//
// Boxes use the slab method: the ray is clipped against the three pairs of
// parallel planes bounding the box, and the entry interval survives exactly
// when the per-axis intervals overlap. Because the interval starts at zero, a
// ray that begins inside a box reports a hit at distance zero with a zero
// normal. Triangles use the Möller-Trumbore algorithm, which solves for the
// barycentric coordinates of the intersection without precomputing the
// triangle's plane. Oriented boxes are cast in local space and the result
// is rotated back. Swept shapes reduce to a ray against a Minkowski-expanded
// box.
//
// References:
//   - Kay, Kajiya: "Ray Tracing Complex Scenes" (1986)
//   - Möller, Trumbore: "Fast, Minimum Storage Ray-Triangle Intersection" (1997)
package raycast

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/skiffworks/skiff/actor"
	"github.com/skiffworks/skiff/vmath"
)

const (
	// parallelEpsilon is the direction-component cutoff below which a ray is
	// treated as parallel to a slab.
	parallelEpsilon = 1e-8

	// denomEpsilon is the denominator cutoff below which a ray is treated as
	// parallel to a plane or triangle.
	denomEpsilon = 1e-6
)

// Ray is a half-line from Origin along a unit Direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay returns a ray with the direction normalized. A zero direction stays
// zero, producing a ray that cannot hit anything beyond its own origin.
func NewRay(origin, direction mgl64.Vec3) Ray {
	return Ray{Origin: origin, Direction: vmath.SafeNormalize(direction)}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Hit describes the nearest intersection found by a cast. On a miss, Hit is
// false and Distance is +Inf.
type Hit struct {
	Hit      bool
	Distance float64
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
}

// Miss returns the sentinel no-intersection result.
func Miss() Hit {
	return Hit{Distance: math.Inf(1)}
}

// Sphere casts a ray against a sphere. A ray starting inside the sphere hits
// the far surface on the way out.
func Sphere(r Ray, s actor.Sphere) Hit {
	if r.Direction.LenSqr() < parallelEpsilon {
		return Miss()
	}

	oc := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	b := 2 * oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return Miss()
	}

	sqrtD := math.Sqrt(discriminant)
	t := (-b - sqrtD) / (2 * a)
	if t < 0 {
		t = (-b + sqrtD) / (2 * a)
	}
	if t < 0 {
		return Miss()
	}

	point := r.At(t)
	return Hit{
		Hit:      true,
		Distance: t,
		Point:    point,
		Normal:   vmath.SafeNormalize(point.Sub(s.Center)),
	}
}

// Box casts a ray against an axis-aligned box using the slab method. The
// normal is that of the face the ray enters through; a ray starting inside
// the box hits at distance zero with a zero normal.
func Box(r Ray, box actor.AABB) Hit {
	tmin := 0.0
	tmax := math.Inf(1)
	var normal mgl64.Vec3

	for i := 0; i < 3; i++ {
		if math.Abs(r.Direction[i]) < parallelEpsilon {
			if r.Origin[i] < box.Min[i] || r.Origin[i] > box.Max[i] {
				return Miss()
			}
			continue
		}

		invD := 1 / r.Direction[i]
		t1 := (box.Min[i] - r.Origin[i]) * invD
		t2 := (box.Max[i] - r.Origin[i]) * invD
		n1 := axisVec(i, -1)
		n2 := axisVec(i, 1)
		if t1 > t2 {
			t1, t2 = t2, t1
			n1, n2 = n2, n1
		}

		if t1 > tmin {
			tmin = t1
			normal = n1
		}
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return Miss()
		}
	}

	return Hit{Hit: true, Distance: tmin, Point: r.At(tmin), Normal: normal}
}

// Plane casts a ray against an infinite plane. The reported normal is the
// plane normal regardless of which side the ray approaches from.
func Plane(r Ray, p actor.Plane) Hit {
	denom := p.Normal.Dot(r.Direction)
	if math.Abs(denom) < denomEpsilon {
		return Miss()
	}

	t := -(p.Normal.Dot(r.Origin) + p.Distance) / denom
	if t < 0 {
		return Miss()
	}

	return Hit{Hit: true, Distance: t, Point: r.At(t), Normal: p.Normal}
}

// Triangle casts a ray against a triangle with the Möller-Trumbore algorithm.
// Both faces are hit; the reported normal follows the winding of the
// triangle, not the approach side.
func Triangle(r Ray, tri actor.Triangle) Hit {
	e1 := tri.B.Sub(tri.A)
	e2 := tri.C.Sub(tri.A)

	h := r.Direction.Cross(e2)
	a := e1.Dot(h)
	if math.Abs(a) < denomEpsilon {
		return Miss()
	}

	f := 1 / a
	s := r.Origin.Sub(tri.A)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return Miss()
	}

	q := s.Cross(e1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return Miss()
	}

	t := f * e2.Dot(q)
	if t < 0 {
		return Miss()
	}

	return Hit{Hit: true, Distance: t, Point: r.At(t), Normal: tri.Normal()}
}

// OBB casts a ray against an oriented box by transforming the ray into the
// box's local frame, casting against the centered AABB, and rotating the
// result back to world space.
func OBB(r Ray, box actor.OBB) Hit {
	axes := [3]mgl64.Vec3{box.Axis(0), box.Axis(1), box.Axis(2)}

	localRay := Ray{
		Origin: box.WorldToLocal(r.Origin),
		Direction: mgl64.Vec3{
			r.Direction.Dot(axes[0]),
			r.Direction.Dot(axes[1]),
			r.Direction.Dot(axes[2]),
		},
	}
	localBox := actor.AABB{
		Min: box.HalfExtents.Mul(-1),
		Max: box.HalfExtents,
	}

	hit := Box(localRay, localBox)
	if !hit.Hit {
		return hit
	}

	hit.Point = box.LocalToWorld(hit.Point)
	hit.Normal = axes[0].Mul(hit.Normal.X()).
		Add(axes[1].Mul(hit.Normal.Y())).
		Add(axes[2].Mul(hit.Normal.Z()))
	return hit
}

// SweepSphereAABB slides a sphere along a velocity and reports the first
// contact with a box within that displacement. The sweep reduces to a ray
// from the sphere center against the box expanded by the radius.
func SweepSphereAABB(s actor.Sphere, velocity mgl64.Vec3, box actor.AABB) Hit {
	hit := Box(NewRay(s.Center, velocity), box.Expanded(s.Radius))
	if !hit.Hit || hit.Distance > velocity.Len() {
		return Miss()
	}
	return hit
}

// SweepAABBs slides a box along a velocity and reports the first contact
// with a stationary box within that displacement, using the Minkowski sum of
// the stationary box and the moving box's half extents.
func SweepAABBs(moving actor.AABB, velocity mgl64.Vec3, stationary actor.AABB) Hit {
	he := moving.HalfExtents()
	expanded := actor.AABB{
		Min: stationary.Min.Sub(he),
		Max: stationary.Max.Add(he),
	}

	hit := Box(NewRay(moving.Center(), velocity), expanded)
	if !hit.Hit || hit.Distance > velocity.Len() {
		return Miss()
	}
	return hit
}

func axisVec(i int, sign float64) mgl64.Vec3 {
	var v mgl64.Vec3
	v[i] = sign
	return v
}
