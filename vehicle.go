package skiff

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/skiffworks/skiff/actor"
	"github.com/skiffworks/skiff/vmath"
)

// ThrustAction selects how a vehicle converts its target into forces.
type ThrustAction uint8

const (
	IDLE ThrustAction = iota
	GLIDE
	BOOST
	STABILIZE
)

func (a ThrustAction) String() string {
	switch a {
	case GLIDE:
		return "glide"
	case BOOST:
		return "boost"
	case STABILIZE:
		return "stabilize"
	default:
		return "idle"
	}
}

const (
	// TARGET_DEADZONE is the distance to target under which thrust calls do
	// nothing at all, drag included.
	TARGET_DEADZONE = 0.1

	BOOST_MULTIPLIER     = 1.5
	GLIDE_MULTIPLIER     = 0.3
	STABILIZE_MULTIPLIER = 0.5

	// STABILIZE keeps this fraction of the angular velocity on every call.
	STABILIZE_ANGULAR_FACTOR = 0.7

	// BANKING_GAIN scales the roll error into a z torque.
	BANKING_GAIN = 100.0
)

// VehicleID identifies a vehicle within a World. Ids are never reused.
type VehicleID int

// VehicleConfig holds the tuning of a single vehicle. Radius is the sphere
// proxy used for contact detection between vehicles.
type VehicleConfig struct {
	Mass               float64
	MaxThrust          float64
	Radius             float64
	LinearDamping      float64
	AngularDamping     float64
	DragCoefficient    float64
	MaxAngularVelocity float64
}

func DefaultVehicleConfig() VehicleConfig {
	return VehicleConfig{
		Mass:               1000,
		MaxThrust:          5000,
		Radius:             1,
		LinearDamping:      0.8,
		AngularDamping:     0.9,
		DragCoefficient:    0.1,
		MaxAngularVelocity: 2,
	}
}

func (c VehicleConfig) bodyConfig() actor.Config {
	return actor.Config{
		Mass:               c.Mass,
		LinearDamping:      c.LinearDamping,
		AngularDamping:     c.AngularDamping,
		DragCoefficient:    c.DragCoefficient,
		MaxAngularVelocity: c.MaxAngularVelocity,
	}
}

// Vehicle wraps a rigid body with target-seeking thrust semantics.
type Vehicle struct {
	Body   *actor.RigidBody
	Config VehicleConfig
	Target mgl64.Vec3

	id VehicleID
}

func (v *Vehicle) ID() VehicleID { return v.id }

// SetTarget stores the position thrust actions steer toward.
func (v *Vehicle) SetTarget(pos mgl64.Vec3) {
	v.Target = pos
}

// DistanceToTarget returns the distance between the vehicle and its target.
func (v *Vehicle) DistanceToTarget() float64 {
	return v.Target.Sub(v.Body.Transform.Position).Len()
}

func (v *Vehicle) directionToTarget() mgl64.Vec3 {
	return vmath.SafeNormalize(v.Target.Sub(v.Body.Transform.Position))
}

// ApplyThrust accumulates the force for one thrust action of the given
// intensity. Inside TARGET_DEADZONE of the target the call is a no-op.
// BOOST pushes toward the target at full multiplier; GLIDE coasts with drag;
// STABILIZE pushes while bleeding angular velocity; IDLE only applies drag.
func (v *Vehicle) ApplyThrust(action ThrustAction, intensity float64) {
	if v.DistanceToTarget() <= TARGET_DEADZONE {
		return
	}

	direction := v.directionToTarget()
	var force mgl64.Vec3

	switch action {
	case BOOST:
		force = direction.Mul(v.Config.MaxThrust * intensity * BOOST_MULTIPLIER)
	case GLIDE:
		force = direction.Mul(v.Config.MaxThrust * intensity * GLIDE_MULTIPLIER)
		v.applyDrag()
	case STABILIZE:
		force = direction.Mul(v.Config.MaxThrust * intensity * STABILIZE_MULTIPLIER)
		v.Body.AngularVelocity = v.Body.AngularVelocity.Mul(STABILIZE_ANGULAR_FACTOR)
	default:
		v.applyDrag()
	}

	if force.LenSqr() > 1e-6 {
		v.Body.ApplyForce(force)
	}
}

// applyDrag accumulates a drag force proportional to speed, opposing the
// velocity.
func (v *Vehicle) applyDrag() {
	velocity := v.Body.Velocity
	speed := velocity.Len()
	if speed > 1e-6 {
		drag := velocity.Mul(-v.Config.DragCoefficient)
		v.Body.ApplyForce(drag)
	}
}

// ApplyBanking accumulates a z torque proportional to the roll error,
// rolling the vehicle toward desiredRoll.
func (v *Vehicle) ApplyBanking(desiredRoll, rollFactor float64) {
	currentRoll := vmath.EulerFromQuat(v.Body.Transform.Rotation).X()
	difference := desiredRoll - currentRoll
	v.Body.ApplyTorque(mgl64.Vec3{0, 0, difference * rollFactor * BANKING_GAIN})
}

func (v *Vehicle) proxy() actor.Sphere {
	return actor.Sphere{Center: v.Body.Transform.Position, Radius: v.Config.Radius}
}

// VehicleState is a snapshot of a vehicle's kinematics. Every field is a
// copy; mutating a state never touches the world.
type VehicleState struct {
	ID              VehicleID
	Position        mgl64.Vec3
	Velocity        mgl64.Vec3
	Rotation        mgl64.Quat
	AngularVelocity mgl64.Vec3
	Roll            float64
	Pitch           float64
	Yaw             float64
}

// State returns the vehicle's current snapshot, with roll/pitch/yaw derived
// from the body quaternion.
func (v *Vehicle) State() VehicleState {
	euler := vmath.EulerFromQuat(v.Body.Transform.Rotation)
	return VehicleState{
		ID:              v.id,
		Position:        v.Body.Transform.Position,
		Velocity:        v.Body.Velocity,
		Rotation:        v.Body.Transform.Rotation,
		AngularVelocity: v.Body.AngularVelocity,
		Roll:            euler.X(),
		Pitch:           euler.Y(),
		Yaw:             euler.Z(),
	}
}
