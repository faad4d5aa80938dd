package intersect

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/skiffworks/skiff/actor"
)

// ClosestOnAABB returns the point on or inside an axis-aligned box nearest
// to p. Interior points map to themselves.
func ClosestOnAABB(p mgl64.Vec3, box actor.AABB) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(p.X(), box.Min.X(), box.Max.X()),
		mgl64.Clamp(p.Y(), box.Min.Y(), box.Max.Y()),
		mgl64.Clamp(p.Z(), box.Min.Z(), box.Max.Z()),
	}
}

// ClosestOnOBB returns the point on or inside an oriented box nearest to p.
// The query point is clamped against the box extents in local space and
// mapped back to world space.
func ClosestOnOBB(p mgl64.Vec3, box actor.OBB) mgl64.Vec3 {
	local := box.WorldToLocal(p)
	for i := 0; i < 3; i++ {
		local[i] = mgl64.Clamp(local[i], -box.HalfExtents[i], box.HalfExtents[i])
	}
	return box.LocalToWorld(local)
}

// ClosestOnTriangle returns the point on a triangle nearest to p, resolving
// the Voronoi region of p against the triangle's vertices, edges and face
// (Ericson 2005, section 5.1.5).
func ClosestOnTriangle(p mgl64.Vec3, tri actor.Triangle) mgl64.Vec3 {
	ab := tri.B.Sub(tri.A)
	ac := tri.C.Sub(tri.A)
	ap := p.Sub(tri.A)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return tri.A
	}

	bp := p.Sub(tri.B)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return tri.B
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return tri.A.Add(ab.Mul(v))
	}

	cp := p.Sub(tri.C)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return tri.C
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return tri.A.Add(ac.Mul(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return tri.B.Add(tri.C.Sub(tri.B).Mul(w))
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return tri.A.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// DistanceToSphere returns the distance from p to the surface of a sphere,
// or 0 when p lies inside it.
func DistanceToSphere(p mgl64.Vec3, s actor.Sphere) float64 {
	return math.Max(0, p.Sub(s.Center).Len()-s.Radius)
}

// DistanceToAABB returns the distance from p to an axis-aligned box, or 0
// when p lies inside it.
func DistanceToAABB(p mgl64.Vec3, box actor.AABB) float64 {
	return ClosestOnAABB(p, box).Sub(p).Len()
}
