package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// Sphere Tests
// =============================================================================

func TestSphereContainsPoint(t *testing.T) {
	sphere := Sphere{Center: mgl64.Vec3{1, 0, 0}, Radius: 2}

	tests := []struct {
		name  string
		point mgl64.Vec3
		want  bool
	}{
		{name: "center", point: mgl64.Vec3{1, 0, 0}, want: true},
		{name: "inside", point: mgl64.Vec3{2, 1, 0}, want: true},
		{name: "on surface", point: mgl64.Vec3{3, 0, 0}, want: true},
		{name: "outside", point: mgl64.Vec3{4, 0, 0}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sphere.ContainsPoint(tt.point); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestSphereAABB(t *testing.T) {
	sphere := Sphere{Center: mgl64.Vec3{1, 2, 3}, Radius: 0.5}
	box := sphere.AABB()

	if !vec3AlmostEqual(box.Min, mgl64.Vec3{0.5, 1.5, 2.5}, 1e-12) {
		t.Errorf("AABB Min = %v, want {0.5 1.5 2.5}", box.Min)
	}
	if !vec3AlmostEqual(box.Max, mgl64.Vec3{1.5, 2.5, 3.5}, 1e-12) {
		t.Errorf("AABB Max = %v, want {1.5 2.5 3.5}", box.Max)
	}
}

// =============================================================================
// OBB Tests
// =============================================================================

func TestOBBAxes_Identity(t *testing.T) {
	obb := NewOBB(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 2, 3})

	if !vec3AlmostEqual(obb.Axis(0), mgl64.Vec3{1, 0, 0}, 1e-12) {
		t.Errorf("Axis(0) = %v, want {1 0 0}", obb.Axis(0))
	}
	if !vec3AlmostEqual(obb.Axis(1), mgl64.Vec3{0, 1, 0}, 1e-12) {
		t.Errorf("Axis(1) = %v, want {0 1 0}", obb.Axis(1))
	}
	if !vec3AlmostEqual(obb.Axis(2), mgl64.Vec3{0, 0, 1}, 1e-12) {
		t.Errorf("Axis(2) = %v, want {0 0 1}", obb.Axis(2))
	}
}

func TestOBBAxes_Rotated(t *testing.T) {
	// Quarter turn about z maps +x to +y
	obb := OBB{
		Center:      mgl64.Vec3{0, 0, 0},
		HalfExtents: mgl64.Vec3{1, 1, 1},
		Rotation:    mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}),
	}

	if !vec3AlmostEqual(obb.Axis(0), mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("Axis(0) = %v, want {0 1 0}", obb.Axis(0))
	}
	if !vec3AlmostEqual(obb.Axis(2), mgl64.Vec3{0, 0, 1}, 1e-9) {
		t.Errorf("Axis(2) = %v, want {0 0 1}", obb.Axis(2))
	}
}

func TestOBBLocalWorldRoundTrip(t *testing.T) {
	obb := OBB{
		Center:      mgl64.Vec3{5, -2, 1},
		HalfExtents: mgl64.Vec3{1, 2, 3},
		Rotation:    mgl64.QuatRotate(0.7, mgl64.Vec3{0, 1, 0}),
	}

	local := mgl64.Vec3{0.5, -1, 2}
	world := obb.LocalToWorld(local)
	back := obb.WorldToLocal(world)

	if !vec3AlmostEqual(back, local, 1e-9) {
		t.Errorf("WorldToLocal(LocalToWorld(%v)) = %v, want original", local, back)
	}
}

func TestOBBAABB_Rotated(t *testing.T) {
	// A unit cube rotated 45 degrees about z widens to sqrt(2) on x and y
	obb := OBB{
		Center:      mgl64.Vec3{0, 0, 0},
		HalfExtents: mgl64.Vec3{1, 1, 1},
		Rotation:    mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1}),
	}

	box := obb.AABB()
	sqrt2 := math.Sqrt(2)

	if !almostEqual(box.Max.X(), sqrt2, 1e-9) {
		t.Errorf("AABB Max.X = %v, want %v", box.Max.X(), sqrt2)
	}
	if !almostEqual(box.Max.Y(), sqrt2, 1e-9) {
		t.Errorf("AABB Max.Y = %v, want %v", box.Max.Y(), sqrt2)
	}
	// z extent is unchanged by a rotation about z
	if !almostEqual(box.Max.Z(), 1, 1e-9) {
		t.Errorf("AABB Max.Z = %v, want 1", box.Max.Z())
	}
}

// =============================================================================
// Plane Tests
// =============================================================================

func TestPlaneDistanceTo(t *testing.T) {
	// Horizontal plane through y = 2
	plane := PlaneFromPoint(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 2, 0})

	tests := []struct {
		name  string
		point mgl64.Vec3
		want  float64
	}{
		{name: "above", point: mgl64.Vec3{0, 5, 0}, want: 3},
		{name: "below", point: mgl64.Vec3{0, -1, 0}, want: -3},
		{name: "on plane", point: mgl64.Vec3{7, 2, -4}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plane.DistanceTo(tt.point); !almostEqual(got, tt.want, 1e-12) {
				t.Errorf("DistanceTo(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestPlaneClosestPoint(t *testing.T) {
	plane := PlaneFromPoint(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 4})

	got := plane.ClosestPoint(mgl64.Vec3{3, -2, 10})
	want := mgl64.Vec3{3, -2, 4}
	if !vec3AlmostEqual(got, want, 1e-12) {
		t.Errorf("ClosestPoint = %v, want %v", got, want)
	}
	if !almostEqual(plane.DistanceTo(got), 0, 1e-12) {
		t.Errorf("projected point is not on the plane, distance = %v", plane.DistanceTo(got))
	}
}

func TestNewPlane_NormalizesInput(t *testing.T) {
	plane := NewPlane(mgl64.Vec3{0, 10, 0}, -2)

	if !vec3AlmostEqual(plane.Normal, mgl64.Vec3{0, 1, 0}, 1e-12) {
		t.Errorf("Normal = %v, want {0 1 0}", plane.Normal)
	}
}

// =============================================================================
// Triangle Tests
// =============================================================================

func TestTriangleNormal(t *testing.T) {
	// Counter-clockwise in the xy plane, normal points along +z
	tri := Triangle{
		A: mgl64.Vec3{0, 0, 0},
		B: mgl64.Vec3{1, 0, 0},
		C: mgl64.Vec3{0, 1, 0},
	}

	if got := tri.Normal(); !vec3AlmostEqual(got, mgl64.Vec3{0, 0, 1}, 1e-12) {
		t.Errorf("Normal() = %v, want {0 0 1}", got)
	}
}

func TestTriangleNormal_Degenerate(t *testing.T) {
	// Collinear vertices have no well-defined normal
	tri := Triangle{
		A: mgl64.Vec3{0, 0, 0},
		B: mgl64.Vec3{1, 0, 0},
		C: mgl64.Vec3{2, 0, 0},
	}

	if got := tri.Normal(); got != (mgl64.Vec3{}) {
		t.Errorf("Normal() = %v, want zero vector", got)
	}
}

func TestTriangleCentroidAndArea(t *testing.T) {
	tri := Triangle{
		A: mgl64.Vec3{0, 0, 0},
		B: mgl64.Vec3{3, 0, 0},
		C: mgl64.Vec3{0, 3, 0},
	}

	if got, want := tri.Centroid(), (mgl64.Vec3{1, 1, 0}); !vec3AlmostEqual(got, want, 1e-12) {
		t.Errorf("Centroid() = %v, want %v", got, want)
	}
	if got := tri.Area(); !almostEqual(got, 4.5, 1e-12) {
		t.Errorf("Area() = %v, want 4.5", got)
	}
}

func TestTriangleAABB(t *testing.T) {
	tri := Triangle{
		A: mgl64.Vec3{-1, 0, 2},
		B: mgl64.Vec3{3, -2, 0},
		C: mgl64.Vec3{0, 1, 5},
	}

	box := tri.AABB()
	if !vec3AlmostEqual(box.Min, mgl64.Vec3{-1, -2, 0}, 1e-12) {
		t.Errorf("AABB Min = %v, want {-1 -2 0}", box.Min)
	}
	if !vec3AlmostEqual(box.Max, mgl64.Vec3{3, 1, 5}, 1e-12) {
		t.Errorf("AABB Max = %v, want {3 1 5}", box.Max)
	}
}

// =============================================================================
// BoundingSphere Tests
// =============================================================================

func TestBoundingSphere_Empty(t *testing.T) {
	s := BoundingSphere(nil)
	if s != (Sphere{}) {
		t.Errorf("BoundingSphere(nil) = %v, want zero sphere", s)
	}
}

func TestBoundingSphere_SinglePoint(t *testing.T) {
	p := mgl64.Vec3{1, 2, 3}
	s := BoundingSphere([]mgl64.Vec3{p})

	if !vec3AlmostEqual(s.Center, p, 1e-12) {
		t.Errorf("Center = %v, want %v", s.Center, p)
	}
	if s.Radius != 0 {
		t.Errorf("Radius = %v, want 0", s.Radius)
	}
}

func TestBoundingSphere_TwoPoints(t *testing.T) {
	points := []mgl64.Vec3{
		{-1, 0, 0},
		{1, 0, 0},
	}

	s := BoundingSphere(points)
	if !vec3AlmostEqual(s.Center, mgl64.Vec3{0, 0, 0}, 1e-9) {
		t.Errorf("Center = %v, want origin", s.Center)
	}
	if !almostEqual(s.Radius, 1, 1e-9) {
		t.Errorf("Radius = %v, want 1", s.Radius)
	}
}

func TestBoundingSphere_ContainsAllPoints(t *testing.T) {
	points := []mgl64.Vec3{
		{-1, -1, -1},
		{1, -1, -1},
		{-1, 1, -1},
		{1, 1, -1},
		{-1, -1, 1},
		{1, -1, 1},
		{-1, 1, 1},
		{1, 1, 1},
		{0.5, 0.2, -0.7},
	}

	s := BoundingSphere(points)

	// Small tolerance for accumulated float error in the growth pass
	for _, p := range points {
		dist := p.Sub(s.Center).Len()
		if dist > s.Radius+1e-9 {
			t.Errorf("point %v outside sphere: dist %v > radius %v", p, dist, s.Radius)
		}
	}

	// Ritter stays within a modest factor of the optimal radius (sqrt(3)
	// for the unit cube corners)
	if s.Radius > math.Sqrt(3)*1.2 {
		t.Errorf("Radius = %v, want near %v", s.Radius, math.Sqrt(3))
	}
}

func TestBoundingSphere_CoincidentPoints(t *testing.T) {
	p := mgl64.Vec3{2, 2, 2}
	points := []mgl64.Vec3{p, p, p}

	s := BoundingSphere(points)
	if !vec3AlmostEqual(s.Center, p, 1e-12) {
		t.Errorf("Center = %v, want %v", s.Center, p)
	}
	if !almostEqual(s.Radius, 0, 1e-12) {
		t.Errorf("Radius = %v, want 0", s.Radius)
	}
}
