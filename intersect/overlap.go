// Package intersect implements boolean overlap tests and closest-point
// queries between convex shapes.
//
// Box pairs are resolved with the Separating Axis Theorem (SAT): two convex
// shapes are disjoint exactly when some axis separates their projections.
// Oriented boxes test 15 candidate axes (3+3 face normals and 9 edge cross
// products), triangles against boxes test 13. Cross-product axes from
// near-parallel edge pairs degenerate toward zero length and are skipped,
// since projecting onto them says nothing about separation.
//
// References:
//   - Gottschalk, Lin, Manocha: "OBBTree: A Hierarchical Structure for Rapid
//     Interference Detection" (1996)
//   - Ericson: "Real-Time Collision Detection" (2005), chapter 5
package intersect

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/skiffworks/skiff/actor"
)

// degenerateAxisSq is the squared-length cutoff below which a SAT axis is
// considered degenerate and skipped.
const degenerateAxisSq = 1e-6

// Spheres reports whether two spheres overlap or touch.
func Spheres(a, b actor.Sphere) bool {
	radiusSum := a.Radius + b.Radius
	return b.Center.Sub(a.Center).LenSqr() <= radiusSum*radiusSum
}

// SphereAABB reports whether a sphere overlaps an axis-aligned box.
func SphereAABB(s actor.Sphere, box actor.AABB) bool {
	closest := ClosestOnAABB(s.Center, box)
	return closest.Sub(s.Center).LenSqr() <= s.Radius*s.Radius
}

// SpherePlane reports whether a sphere touches an infinite plane.
func SpherePlane(s actor.Sphere, p actor.Plane) bool {
	return math.Abs(p.DistanceTo(s.Center)) <= s.Radius
}

// AABBs reports whether two axis-aligned boxes overlap or touch.
func AABBs(a, b actor.AABB) bool {
	return a.Overlaps(b)
}

// AABBPlane reports whether an axis-aligned box touches an infinite plane.
// The box projects onto the plane normal with radius r = e·|n|; the box and
// plane intersect when the center's distance is within that radius.
func AABBPlane(box actor.AABB, p actor.Plane) bool {
	e := box.HalfExtents()
	r := e.X()*math.Abs(p.Normal.X()) +
		e.Y()*math.Abs(p.Normal.Y()) +
		e.Z()*math.Abs(p.Normal.Z())
	return math.Abs(p.DistanceTo(box.Center())) <= r
}

// OBBs reports whether two oriented boxes overlap, testing all 15 SAT axes.
func OBBs(a, b actor.OBB) bool {
	aAxes := [3]mgl64.Vec3{a.Axis(0), a.Axis(1), a.Axis(2)}
	bAxes := [3]mgl64.Vec3{b.Axis(0), b.Axis(1), b.Axis(2)}

	axes := [15]mgl64.Vec3{
		aAxes[0], aAxes[1], aAxes[2],
		bAxes[0], bAxes[1], bAxes[2],
		aAxes[0].Cross(bAxes[0]), aAxes[0].Cross(bAxes[1]), aAxes[0].Cross(bAxes[2]),
		aAxes[1].Cross(bAxes[0]), aAxes[1].Cross(bAxes[1]), aAxes[1].Cross(bAxes[2]),
		aAxes[2].Cross(bAxes[0]), aAxes[2].Cross(bAxes[1]), aAxes[2].Cross(bAxes[2]),
	}

	d := b.Center.Sub(a.Center)

	for _, axis := range axes {
		if axis.LenSqr() < degenerateAxisSq {
			continue
		}
		axis = axis.Normalize()

		projA := math.Abs(a.HalfExtents.X()*aAxes[0].Dot(axis)) +
			math.Abs(a.HalfExtents.Y()*aAxes[1].Dot(axis)) +
			math.Abs(a.HalfExtents.Z()*aAxes[2].Dot(axis))
		projB := math.Abs(b.HalfExtents.X()*bAxes[0].Dot(axis)) +
			math.Abs(b.HalfExtents.Y()*bAxes[1].Dot(axis)) +
			math.Abs(b.HalfExtents.Z()*bAxes[2].Dot(axis))

		if math.Abs(d.Dot(axis)) > projA+projB {
			return false
		}
	}
	return true
}

// OBBAABB reports whether an oriented box overlaps an axis-aligned box by
// promoting the AABB to an identity-rotation OBB.
func OBBAABB(obb actor.OBB, aabb actor.AABB) bool {
	return OBBs(obb, actor.NewOBB(aabb.Center(), aabb.HalfExtents()))
}

// TriangleAABB reports whether a triangle overlaps an axis-aligned box,
// testing the 9 edge cross axes, the 3 box normals and the triangle normal.
func TriangleAABB(tri actor.Triangle, box actor.AABB) bool {
	c := box.Center()
	e := box.HalfExtents()

	// Triangle in box-centered space
	v0 := tri.A.Sub(c)
	v1 := tri.B.Sub(c)
	v2 := tri.C.Sub(c)

	f0 := v1.Sub(v0)
	f1 := v2.Sub(v1)
	f2 := v0.Sub(v2)

	axes := [9]mgl64.Vec3{
		{0, -f0.Z(), f0.Y()}, {f0.Z(), 0, -f0.X()}, {-f0.Y(), f0.X(), 0},
		{0, -f1.Z(), f1.Y()}, {f1.Z(), 0, -f1.X()}, {-f1.Y(), f1.X(), 0},
		{0, -f2.Z(), f2.Y()}, {f2.Z(), 0, -f2.X()}, {-f2.Y(), f2.X(), 0},
	}

	for _, axis := range axes {
		if axis.LenSqr() < degenerateAxisSq {
			continue
		}

		p0 := v0.Dot(axis)
		p1 := v1.Dot(axis)
		p2 := v2.Dot(axis)

		r := e.X()*math.Abs(axis.X()) + e.Y()*math.Abs(axis.Y()) + e.Z()*math.Abs(axis.Z())
		if math.Max(-max3(p0, p1, p2), min3(p0, p1, p2)) > r {
			return false
		}
	}

	// Box face normals reduce to interval checks per component
	for i := 0; i < 3; i++ {
		minT := min3(v0[i], v1[i], v2[i])
		maxT := max3(v0[i], v1[i], v2[i])
		if minT > e[i] || maxT < -e[i] {
			return false
		}
	}

	// Triangle face normal
	n := f0.Cross(f1)
	d := n.Dot(v0)
	r := e.X()*math.Abs(n.X()) + e.Y()*math.Abs(n.Y()) + e.Z()*math.Abs(n.Z())
	return math.Abs(d) <= r
}

// SphereTriangle reports whether a sphere touches a triangle.
func SphereTriangle(s actor.Sphere, tri actor.Triangle) bool {
	closest := ClosestOnTriangle(s.Center, tri)
	return closest.Sub(s.Center).LenSqr() <= s.Radius*s.Radius
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
