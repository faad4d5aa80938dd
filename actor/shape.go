package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/skiffworks/skiff/vmath"
)

// Sphere represents a spherical collision shape
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// ContainsPoint checks if a point is inside or on the sphere
func (s Sphere) ContainsPoint(point mgl64.Vec3) bool {
	return point.Sub(s.Center).LenSqr() <= s.Radius*s.Radius
}

// AABB returns the tight axis-aligned bounds of the sphere
func (s Sphere) AABB() AABB {
	radiusVec := mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{
		Min: s.Center.Sub(radiusVec),
		Max: s.Center.Add(radiusVec),
	}
}

// OBB represents an oriented box defined by its center, half-extents and
// a rotation mapping local axes to world space
type OBB struct {
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
	Rotation    mgl64.Quat
}

// NewOBB creates an oriented box with an identity rotation
func NewOBB(center, halfExtents mgl64.Vec3) OBB {
	return OBB{
		Center:      center,
		HalfExtents: halfExtents,
		Rotation:    mgl64.QuatIdent(),
	}
}

// Axis returns the i-th local axis (0=x, 1=y, 2=z) in world space
func (o OBB) Axis(i int) mgl64.Vec3 {
	var local mgl64.Vec3
	local[i] = 1
	return o.Rotation.Rotate(local)
}

// LocalToWorld maps a point from box space to world space
func (o OBB) LocalToWorld(local mgl64.Vec3) mgl64.Vec3 {
	return o.Rotation.Rotate(local).Add(o.Center)
}

// WorldToLocal maps a point from world space to box space
func (o OBB) WorldToLocal(world mgl64.Vec3) mgl64.Vec3 {
	d := world.Sub(o.Center)
	return mgl64.Vec3{
		d.Dot(o.Axis(0)),
		d.Dot(o.Axis(1)),
		d.Dot(o.Axis(2)),
	}
}

// AABB returns conservative axis-aligned bounds enclosing the rotated box
func (o OBB) AABB() AABB {
	corners := [8]mgl64.Vec3{
		{-o.HalfExtents.X(), -o.HalfExtents.Y(), -o.HalfExtents.Z()},
		{+o.HalfExtents.X(), -o.HalfExtents.Y(), -o.HalfExtents.Z()},
		{-o.HalfExtents.X(), +o.HalfExtents.Y(), -o.HalfExtents.Z()},
		{+o.HalfExtents.X(), +o.HalfExtents.Y(), -o.HalfExtents.Z()},
		{-o.HalfExtents.X(), -o.HalfExtents.Y(), +o.HalfExtents.Z()},
		{+o.HalfExtents.X(), -o.HalfExtents.Y(), +o.HalfExtents.Z()},
		{-o.HalfExtents.X(), +o.HalfExtents.Y(), +o.HalfExtents.Z()},
		{+o.HalfExtents.X(), +o.HalfExtents.Y(), +o.HalfExtents.Z()},
	}

	worldCorner := o.Rotation.Rotate(corners[0]).Add(o.Center)
	min := worldCorner
	max := worldCorner

	for i := 1; i < 8; i++ {
		worldCorner = o.Rotation.Rotate(corners[i]).Add(o.Center)

		min[0] = math.Min(min[0], worldCorner[0])
		min[1] = math.Min(min[1], worldCorner[1])
		min[2] = math.Min(min[2], worldCorner[2])

		max[0] = math.Max(max[0], worldCorner[0])
		max[1] = math.Max(max[1], worldCorner[1])
		max[2] = math.Max(max[2], worldCorner[2])
	}

	return AABB{Min: min, Max: max}
}

// Plane represents an infinite plane satisfying Normal · p + Distance = 0
// for every point p on the plane. Normal must be normalized.
type Plane struct {
	Normal   mgl64.Vec3
	Distance float64
}

// NewPlane builds a plane from a normal (normalized here) and its constant
func NewPlane(normal mgl64.Vec3, distance float64) Plane {
	return Plane{Normal: vmath.SafeNormalize(normal), Distance: distance}
}

// PlaneFromPoint builds a plane through the given point with the given normal
func PlaneFromPoint(normal, point mgl64.Vec3) Plane {
	n := vmath.SafeNormalize(normal)
	return Plane{Normal: n, Distance: -n.Dot(point)}
}

// DistanceTo returns the signed distance from a point to the plane
func (p Plane) DistanceTo(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) + p.Distance
}

// ClosestPoint projects a point onto the plane
func (p Plane) ClosestPoint(point mgl64.Vec3) mgl64.Vec3 {
	return point.Sub(p.Normal.Mul(p.DistanceTo(point)))
}

// Triangle represents a triangle by its three vertices
type Triangle struct {
	A mgl64.Vec3
	B mgl64.Vec3
	C mgl64.Vec3
}

// Normal returns the unit normal of the triangle following the winding
// order A, B, C. Degenerate triangles yield the zero vector.
func (t Triangle) Normal() mgl64.Vec3 {
	return vmath.SafeNormalize(t.B.Sub(t.A).Cross(t.C.Sub(t.A)))
}

// Centroid returns the barycenter of the triangle
func (t Triangle) Centroid() mgl64.Vec3 {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Len() * 0.5
}

// AABB returns the tight axis-aligned bounds of the triangle
func (t Triangle) AABB() AABB {
	return AABBFromPoints([]mgl64.Vec3{t.A, t.B, t.C})
}

// BoundingSphere computes an enclosing sphere with Ritter's two-pass
// algorithm: seed the sphere from the most distant extreme pair, then grow
// it to cover any stragglers. Not minimal but close, and a single pass over
// the points either way.
func BoundingSphere(points []mgl64.Vec3) Sphere {
	if len(points) == 0 {
		return Sphere{}
	}
	if len(points) == 1 {
		return Sphere{Center: points[0], Radius: 0}
	}

	// Extreme point indices on each axis
	minX, maxX, minY, maxY, minZ, maxZ := 0, 0, 0, 0, 0, 0
	for i := 1; i < len(points); i++ {
		if points[i].X() < points[minX].X() {
			minX = i
		}
		if points[i].X() > points[maxX].X() {
			maxX = i
		}
		if points[i].Y() < points[minY].Y() {
			minY = i
		}
		if points[i].Y() > points[maxY].Y() {
			maxY = i
		}
		if points[i].Z() < points[minZ].Z() {
			minZ = i
		}
		if points[i].Z() > points[maxZ].Z() {
			maxZ = i
		}
	}

	distX := points[maxX].Sub(points[minX]).LenSqr()
	distY := points[maxY].Sub(points[minY]).LenSqr()
	distZ := points[maxZ].Sub(points[minZ]).LenSqr()

	min, max := minX, maxX
	if distY > distX && distY > distZ {
		min, max = minY, maxY
	} else if distZ > distX && distZ > distY {
		min, max = minZ, maxZ
	}

	center := points[min].Add(points[max]).Mul(0.5)
	radius := points[max].Sub(center).Len()

	// Growth pass: shift the center toward each outlier and widen just
	// enough to keep previously covered points inside
	for _, p := range points {
		d := p.Sub(center)
		dist := d.Len()
		if dist > radius {
			newRadius := (radius + dist) * 0.5
			k := (newRadius - radius) / dist
			radius = newRadius
			center = center.Add(d.Mul(k))
		}
	}

	return Sphere{Center: center, Radius: radius}
}
