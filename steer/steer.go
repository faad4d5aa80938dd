// Package steer implements stateless steering behaviors: pure functions
// mapping local kinematic context to a desired velocity or heading.
//
// Each behavior considers only the agent's own position and velocity plus
// whatever it can "see" (a target, a threat, nearby flockmates), which is
// what lets complex group motion emerge from per-agent rules with no
// central coordination. Behaviors return desired velocities capped at
// maxSpeed; callers blend them and feed the result to the physics layer.
// Degenerate inputs (coincident points, empty neighbor lists) return the
// zero vector rather than a NaN heading.
//
// References:
//   - Reynolds: "Flocks, Herds, and Schools: A Distributed Behavioral
//     Model" (1987)
//   - Reynolds: "Steering Behaviors for Autonomous Characters" (1999)
package steer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/skiffworks/skiff/vmath"
)

// arriveDeadzone is the distance below which Arrive considers the target
// reached and stops steering.
const arriveDeadzone = 0.001

// wanderJitter bounds the per-call change of the wander angle.
const wanderJitter = 0.25

// Seek returns the desired velocity straight toward a target at full speed.
func Seek(position, target mgl64.Vec3, maxSpeed float64) mgl64.Vec3 {
	return vmath.SafeNormalize(target.Sub(position)).Mul(maxSpeed)
}

// Flee returns the desired velocity straight away from a threat at full
// speed.
func Flee(position, threat mgl64.Vec3, maxSpeed float64) mgl64.Vec3 {
	return vmath.SafeNormalize(position.Sub(threat)).Mul(maxSpeed)
}

// Arrive steers toward a target at full speed, easing off linearly once
// within slowRadius so the agent reaches the target with near-zero speed
// instead of orbiting it.
func Arrive(position, target mgl64.Vec3, maxSpeed, slowRadius float64) mgl64.Vec3 {
	toTarget := target.Sub(position)
	dist := toTarget.Len()
	if dist < arriveDeadzone {
		return mgl64.Vec3{}
	}

	speed := maxSpeed
	if dist < slowRadius {
		speed = maxSpeed * (dist / slowRadius)
	}
	return vmath.SafeNormalize(toTarget).Mul(speed)
}

// Pursue seeks the point where the target will be, not where it is: the
// look-ahead time is the current distance at full speed, so far targets are
// led further than near ones.
func Pursue(position, targetPos, targetVel mgl64.Vec3, maxSpeed float64) mgl64.Vec3 {
	if maxSpeed <= 0 {
		return mgl64.Vec3{}
	}
	lookAhead := targetPos.Sub(position).Len() / maxSpeed
	return Seek(position, targetPos.Add(targetVel.Mul(lookAhead)), maxSpeed)
}

// Evade flees the point where the threat will be, using the same look-ahead
// as Pursue.
func Evade(position, threatPos, threatVel mgl64.Vec3, maxSpeed float64) mgl64.Vec3 {
	if maxSpeed <= 0 {
		return mgl64.Vec3{}
	}
	lookAhead := threatPos.Sub(position).Len() / maxSpeed
	return Flee(position, threatPos.Add(threatVel.Mul(lookAhead)), maxSpeed)
}

// Wander returns a meandering unit heading: a point on a circle projected
// wanderDistance ahead along forward, with the angle on that circle owned
// by the caller and jittered a little each call. Persisting the angle
// between calls is what makes consecutive headings coherent instead of
// white noise.
func Wander(forward mgl64.Vec3, wanderRadius, wanderDistance float64, wanderAngle *float64, rng *vmath.Random) mgl64.Vec3 {
	*wanderAngle += rng.Range(-wanderJitter, wanderJitter)

	circleCenter := vmath.SafeNormalize(forward).Mul(wanderDistance)
	displacement := mgl64.Vec3{
		math.Cos(*wanderAngle) * wanderRadius,
		math.Sin(*wanderAngle) * wanderRadius,
		0,
	}
	return vmath.SafeNormalize(circleCenter.Add(displacement))
}

// Separation returns the averaged repulsion from neighbors closer than
// radius, each weighted by inverse distance so near neighbors push harder.
// Coincident neighbors are skipped.
func Separation(position mgl64.Vec3, neighbors []mgl64.Vec3, radius float64) mgl64.Vec3 {
	var steering mgl64.Vec3
	count := 0
	for _, n := range neighbors {
		dist := position.Sub(n).Len()
		if dist > 0 && dist < radius {
			steering = steering.Add(vmath.SafeNormalize(position.Sub(n)).Mul(1 / dist))
			count++
		}
	}
	if count == 0 {
		return mgl64.Vec3{}
	}
	return steering.Mul(1 / float64(count))
}

// Alignment returns the unit correction from the agent's velocity toward
// the average velocity of its neighbors, or zero when there are none.
func Alignment(velocity mgl64.Vec3, neighborVelocities []mgl64.Vec3) mgl64.Vec3 {
	if len(neighborVelocities) == 0 {
		return mgl64.Vec3{}
	}
	var avg mgl64.Vec3
	for _, v := range neighborVelocities {
		avg = avg.Add(v)
	}
	avg = avg.Mul(1 / float64(len(neighborVelocities)))
	return vmath.SafeNormalize(avg.Sub(velocity))
}

// Cohesion returns the unit heading toward the centroid of the neighbors,
// or zero when there are none.
func Cohesion(position mgl64.Vec3, neighborPositions []mgl64.Vec3) mgl64.Vec3 {
	if len(neighborPositions) == 0 {
		return mgl64.Vec3{}
	}
	var center mgl64.Vec3
	for _, p := range neighborPositions {
		center = center.Add(p)
	}
	center = center.Mul(1 / float64(len(neighborPositions)))
	return vmath.SafeNormalize(center.Sub(position))
}
