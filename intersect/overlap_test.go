package intersect

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/skiffworks/skiff/actor"
)

func unitBox() actor.AABB {
	return actor.AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}
}

// =============================================================================
// Sphere Overlap Tests
// =============================================================================

func TestSpheres(t *testing.T) {
	tests := []struct {
		name string
		a, b actor.Sphere
		want bool
	}{
		{
			name: "overlapping",
			a:    actor.Sphere{Center: mgl64.Vec3{0, 0, 0}, Radius: 2},
			b:    actor.Sphere{Center: mgl64.Vec3{3, 0, 0}, Radius: 2},
			want: true,
		},
		{
			name: "touching",
			a:    actor.Sphere{Center: mgl64.Vec3{0, 0, 0}, Radius: 1},
			b:    actor.Sphere{Center: mgl64.Vec3{3, 0, 0}, Radius: 2},
			want: true,
		},
		{
			name: "separated",
			a:    actor.Sphere{Center: mgl64.Vec3{0, 0, 0}, Radius: 1},
			b:    actor.Sphere{Center: mgl64.Vec3{3.01, 0, 0}, Radius: 2},
			want: false,
		},
		{
			name: "contained",
			a:    actor.Sphere{Center: mgl64.Vec3{0, 0, 0}, Radius: 5},
			b:    actor.Sphere{Center: mgl64.Vec3{1, 0, 0}, Radius: 1},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Spheres(tt.a, tt.b); got != tt.want {
				t.Errorf("Spheres() = %v, want %v", got, tt.want)
			}
			if got := Spheres(tt.b, tt.a); got != tt.want {
				t.Errorf("Spheres() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSphereAABB(t *testing.T) {
	box := unitBox()

	tests := []struct {
		name   string
		sphere actor.Sphere
		want   bool
	}{
		{
			name:   "center inside",
			sphere: actor.Sphere{Center: mgl64.Vec3{0.5, 0, 0}, Radius: 0.1},
			want:   true,
		},
		{
			name:   "overlapping face",
			sphere: actor.Sphere{Center: mgl64.Vec3{1.5, 0, 0}, Radius: 1},
			want:   true,
		},
		{
			name:   "touching face",
			sphere: actor.Sphere{Center: mgl64.Vec3{2, 0, 0}, Radius: 1},
			want:   true,
		},
		{
			name:   "separated",
			sphere: actor.Sphere{Center: mgl64.Vec3{3, 0, 0}, Radius: 1},
			want:   false,
		},
		{
			name:   "near corner outside",
			sphere: actor.Sphere{Center: mgl64.Vec3{2, 2, 2}, Radius: 1},
			want:   false,
		},
		{
			name:   "near corner inside",
			sphere: actor.Sphere{Center: mgl64.Vec3{2, 2, 2}, Radius: 1.8},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SphereAABB(tt.sphere, box); got != tt.want {
				t.Errorf("SphereAABB() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpherePlane(t *testing.T) {
	ground := actor.Plane{Normal: mgl64.Vec3{0, 0, 1}, Distance: 0}

	tests := []struct {
		name   string
		sphere actor.Sphere
		want   bool
	}{
		{
			name:   "crossing",
			sphere: actor.Sphere{Center: mgl64.Vec3{0, 0, 1}, Radius: 2},
			want:   true,
		},
		{
			name:   "touching above",
			sphere: actor.Sphere{Center: mgl64.Vec3{0, 0, 3}, Radius: 3},
			want:   true,
		},
		{
			name:   "touching below",
			sphere: actor.Sphere{Center: mgl64.Vec3{0, 0, -3}, Radius: 3},
			want:   true,
		},
		{
			name:   "separated above",
			sphere: actor.Sphere{Center: mgl64.Vec3{0, 0, 3}, Radius: 2.9},
			want:   false,
		},
		{
			name:   "separated below",
			sphere: actor.Sphere{Center: mgl64.Vec3{0, 0, -3}, Radius: 2.9},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpherePlane(tt.sphere, ground); got != tt.want {
				t.Errorf("SpherePlane() = %v, want %v", got, tt.want)
			}
		})
	}
}

// =============================================================================
// Box Overlap Tests
// =============================================================================

func TestAABBs(t *testing.T) {
	a := unitBox()

	overlapping := actor.AABB{Min: mgl64.Vec3{0.5, 0.5, 0.5}, Max: mgl64.Vec3{2, 2, 2}}
	if !AABBs(a, overlapping) {
		t.Error("AABBs() = false for overlapping boxes, want true")
	}

	separated := actor.AABB{Min: mgl64.Vec3{2, 2, 2}, Max: mgl64.Vec3{3, 3, 3}}
	if AABBs(a, separated) {
		t.Error("AABBs() = true for separated boxes, want false")
	}
}

func TestAABBPlane(t *testing.T) {
	tests := []struct {
		name  string
		box   actor.AABB
		plane actor.Plane
		want  bool
	}{
		{
			name:  "crossing",
			box:   actor.AABB{Min: mgl64.Vec3{-1, -1, -0.5}, Max: mgl64.Vec3{1, 1, 1}},
			plane: actor.Plane{Normal: mgl64.Vec3{0, 0, 1}, Distance: 0},
			want:  true,
		},
		{
			name:  "above",
			box:   actor.AABB{Min: mgl64.Vec3{-1, -1, 1.5}, Max: mgl64.Vec3{1, 1, 2.5}},
			plane: actor.Plane{Normal: mgl64.Vec3{0, 0, 1}, Distance: 0},
			want:  false,
		},
		{
			name:  "touching",
			box:   actor.AABB{Min: mgl64.Vec3{-1, -1, 0}, Max: mgl64.Vec3{1, 1, 2}},
			plane: actor.Plane{Normal: mgl64.Vec3{0, 0, 1}, Distance: 0},
			want:  true,
		},
		{
			name:  "diagonal normal separated",
			box:   actor.AABB{Min: mgl64.Vec3{1, 1, -1}, Max: mgl64.Vec3{3, 3, 1}},
			plane: actor.NewPlane(mgl64.Vec3{1, 1, 0}, 0),
			want:  false,
		},
		{
			name:  "diagonal normal crossing",
			box:   actor.AABB{Min: mgl64.Vec3{-0.5, -1.5, -1}, Max: mgl64.Vec3{1.5, 0.5, 1}},
			plane: actor.NewPlane(mgl64.Vec3{1, 1, 0}, 0),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AABBPlane(tt.box, tt.plane); got != tt.want {
				t.Errorf("AABBPlane() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOBBs(t *testing.T) {
	unit := mgl64.Vec3{1, 1, 1}
	rot45 := mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1})

	tests := []struct {
		name string
		a, b actor.OBB
		want bool
	}{
		{
			name: "identical",
			a:    actor.NewOBB(mgl64.Vec3{0, 0, 0}, unit),
			b:    actor.NewOBB(mgl64.Vec3{0, 0, 0}, unit),
			want: true,
		},
		{
			name: "axis aligned overlapping",
			a:    actor.NewOBB(mgl64.Vec3{0, 0, 0}, unit),
			b:    actor.NewOBB(mgl64.Vec3{1.5, 0, 0}, unit),
			want: true,
		},
		{
			name: "axis aligned separated",
			a:    actor.NewOBB(mgl64.Vec3{0, 0, 0}, unit),
			b:    actor.NewOBB(mgl64.Vec3{2.5, 0, 0}, unit),
			want: false,
		},
		{
			name: "rotated overlapping",
			a:    actor.NewOBB(mgl64.Vec3{0, 0, 0}, unit),
			b:    actor.OBB{Center: mgl64.Vec3{2.2, 0, 0}, HalfExtents: unit, Rotation: rot45},
			want: true,
		},
		{
			name: "rotated separated",
			a:    actor.NewOBB(mgl64.Vec3{0, 0, 0}, unit),
			b:    actor.OBB{Center: mgl64.Vec3{2.5, 0, 0}, HalfExtents: unit, Rotation: rot45},
			want: false,
		},
		{
			name: "separated on z",
			a:    actor.NewOBB(mgl64.Vec3{0, 0, 0}, unit),
			b:    actor.NewOBB(mgl64.Vec3{0, 0, 2.5}, unit),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OBBs(tt.a, tt.b); got != tt.want {
				t.Errorf("OBBs() = %v, want %v", got, tt.want)
			}
			if got := OBBs(tt.b, tt.a); got != tt.want {
				t.Errorf("OBBs() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOBBAABB(t *testing.T) {
	box := unitBox()
	unit := mgl64.Vec3{1, 1, 1}
	rot45 := mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 0, 1})

	overlapping := actor.OBB{Center: mgl64.Vec3{2.2, 0, 0}, HalfExtents: unit, Rotation: rot45}
	if !OBBAABB(overlapping, box) {
		t.Error("OBBAABB() = false for rotated box reaching in, want true")
	}

	separated := actor.OBB{Center: mgl64.Vec3{2.5, 0, 0}, HalfExtents: unit, Rotation: rot45}
	if OBBAABB(separated, box) {
		t.Error("OBBAABB() = true for rotated box clear of AABB, want false")
	}
}

// =============================================================================
// Triangle Overlap Tests
// =============================================================================

func TestTriangleAABB(t *testing.T) {
	box := unitBox()

	tests := []struct {
		name string
		tri  actor.Triangle
		want bool
	}{
		{
			name: "crossing",
			tri: actor.Triangle{
				A: mgl64.Vec3{-2, 0, 0},
				B: mgl64.Vec3{2, 0, 0},
				C: mgl64.Vec3{0, 0, 2},
			},
			want: true,
		},
		{
			name: "above on z",
			tri: actor.Triangle{
				A: mgl64.Vec3{-2, 0, 5},
				B: mgl64.Vec3{2, 0, 5},
				C: mgl64.Vec3{0, 0, 7},
			},
			want: false,
		},
		{
			name: "coplanar with top face",
			tri: actor.Triangle{
				A: mgl64.Vec3{-0.5, -0.5, 1},
				B: mgl64.Vec3{0.5, -0.5, 1},
				C: mgl64.Vec3{0, 0.5, 1},
			},
			want: true,
		},
		{
			name: "large triangle spanning box",
			tri: actor.Triangle{
				A: mgl64.Vec3{-10, -10, 0},
				B: mgl64.Vec3{10, -10, 0},
				C: mgl64.Vec3{0, 20, 0},
			},
			want: true,
		},
		{
			name: "diagonal sliver past corner",
			tri: actor.Triangle{
				A: mgl64.Vec3{2, 0.5, 0},
				B: mgl64.Vec3{0.5, 2, 0},
				C: mgl64.Vec3{2, 2, 0},
			},
			want: false,
		},
		{
			name: "vertex inside",
			tri: actor.Triangle{
				A: mgl64.Vec3{0.5, 0.5, 0.5},
				B: mgl64.Vec3{5, 5, 5},
				C: mgl64.Vec3{5, 5, 6},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TriangleAABB(tt.tri, box); got != tt.want {
				t.Errorf("TriangleAABB() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSphereTriangle(t *testing.T) {
	tri := actor.Triangle{
		A: mgl64.Vec3{0, 0, 0},
		B: mgl64.Vec3{4, 0, 0},
		C: mgl64.Vec3{0, 4, 0},
	}

	tests := []struct {
		name   string
		sphere actor.Sphere
		want   bool
	}{
		{
			name:   "above face within radius",
			sphere: actor.Sphere{Center: mgl64.Vec3{1, 1, 0.5}, Radius: 1},
			want:   true,
		},
		{
			name:   "above face beyond radius",
			sphere: actor.Sphere{Center: mgl64.Vec3{1, 1, 2}, Radius: 1},
			want:   false,
		},
		{
			name:   "near edge within radius",
			sphere: actor.Sphere{Center: mgl64.Vec3{2, -0.4, 0}, Radius: 0.5},
			want:   true,
		},
		{
			name:   "near edge beyond radius",
			sphere: actor.Sphere{Center: mgl64.Vec3{2, -0.4, 0}, Radius: 0.3},
			want:   false,
		},
		{
			name:   "near vertex within radius",
			sphere: actor.Sphere{Center: mgl64.Vec3{4.5, -0.5, 0}, Radius: 1},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SphereTriangle(tt.sphere, tri); got != tt.want {
				t.Errorf("SphereTriangle() = %v, want %v", got, tt.want)
			}
		})
	}
}
