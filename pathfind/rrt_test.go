package pathfind

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/skiffworks/skiff/vmath"
)

// =============================================================================
// RRT Tests
// =============================================================================

func TestRRTFindsPathInEmptyVolume(t *testing.T) {
	planner := NewRRT(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10})
	planner.MaxIterations = 500

	start := mgl64.Vec3{1, 1, 1}
	goal := mgl64.Vec3{9, 9, 9}
	result := planner.FindPath(start, goal, vmath.NewRandom(42))
	if !result.Found {
		t.Fatal("path not found in empty volume")
	}
	if len(result.Points) < 2 {
		t.Fatalf("len(Points) = %d, want at least 2", len(result.Points))
	}
	if !vec3AlmostEqual(result.Points[0], start) {
		t.Errorf("Points[0] = %v, want %v", result.Points[0], start)
	}
	if !vec3AlmostEqual(result.Points[len(result.Points)-1], goal) {
		t.Errorf("last point = %v, want %v", result.Points[len(result.Points)-1], goal)
	}
	if straight := goal.Sub(start).Len(); result.Cost < straight-epsilon {
		t.Errorf("Cost = %v, below straight-line distance %v", result.Cost, straight)
	}
}

func TestRRTCostSumsSegments(t *testing.T) {
	planner := NewRRT(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10})

	result := planner.FindPath(mgl64.Vec3{2, 2, 2}, mgl64.Vec3{8, 8, 8}, vmath.NewRandom(7))
	if !result.Found {
		t.Fatal("path not found in empty volume")
	}
	sum := 0.0
	for i := 1; i < len(result.Points); i++ {
		sum += result.Points[i].Sub(result.Points[i-1]).Len()
	}
	if !almostEqual(result.Cost, sum) {
		t.Errorf("Cost = %v, segment sum = %v", result.Cost, sum)
	}
}

func TestRRTSameSeedSamePath(t *testing.T) {
	build := func() RRTResult {
		planner := NewRRT(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10})
		planner.AddObstacle(mgl64.Vec3{5, 5, 5}, 2)
		return planner.FindPath(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{9, 9, 9}, vmath.NewRandom(1234))
	}

	first := build()
	second := build()
	if first.Found != second.Found {
		t.Fatalf("Found = %v vs %v across identical runs", first.Found, second.Found)
	}
	if len(first.Points) != len(second.Points) {
		t.Fatalf("len(Points) = %d vs %d across identical runs", len(first.Points), len(second.Points))
	}
	for i := range first.Points {
		if first.Points[i] != second.Points[i] {
			t.Errorf("Points[%d] = %v vs %v", i, first.Points[i], second.Points[i])
		}
	}
}

func TestRRTCollidingEndpoints(t *testing.T) {
	planner := NewRRT(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10})
	planner.AddObstacle(mgl64.Vec3{1, 1, 1}, 1)

	if planner.FindPath(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{9, 9, 9}, vmath.NewRandom(1)).Found {
		t.Error("start inside obstacle must not produce a path")
	}
	if planner.FindPath(mgl64.Vec3{9, 9, 9}, mgl64.Vec3{1, 1, 1}, vmath.NewRandom(1)).Found {
		t.Error("goal inside obstacle must not produce a path")
	}
}

func TestRRTExhaustedBudget(t *testing.T) {
	planner := NewRRT(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10})
	planner.MaxIterations = 0

	result := planner.FindPath(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{9, 9, 9}, vmath.NewRandom(1))
	if result.Found {
		t.Error("zero iteration budget must not produce a path")
	}
	if len(result.Points) != 0 {
		t.Errorf("Points = %v, want empty", result.Points)
	}
}

func TestRRTAvoidsObstacles(t *testing.T) {
	planner := NewRRT(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10})
	planner.MaxIterations = 2000
	planner.AddObstacle(mgl64.Vec3{5, 5, 5}, 2)

	result := planner.FindPath(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{9, 9, 9}, vmath.NewRandom(99))
	if !result.Found {
		t.Fatal("path not found around obstacle")
	}
	for _, p := range result.Points {
		if p.Sub(mgl64.Vec3{5, 5, 5}).Len() < 2-epsilon {
			t.Errorf("waypoint %v lies inside the obstacle", p)
		}
	}
}

func TestRRTClearObstacles(t *testing.T) {
	planner := NewRRT(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 10, 10})
	planner.AddObstacle(mgl64.Vec3{1, 1, 1}, 1)
	planner.ClearObstacles()

	if !planner.FindPath(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{9, 9, 9}, vmath.NewRandom(42)).Found {
		t.Error("path not found after clearing obstacles")
	}
}
