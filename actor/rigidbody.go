package actor

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/skiffworks/skiff/vmath"
)

// maxStepSeconds bounds a single integration step. Larger deltas are
// truncated so one slow frame cannot explode velocities.
const maxStepSeconds = 0.1

// Config holds the physical properties of a rigid body, separate from its
// mutable state so configurations can be shared and compared.
type Config struct {
	Mass               float64 // kg
	LinearDamping      float64 // fraction of linear velocity shed per second
	AngularDamping     float64 // fraction of angular velocity shed per second
	DragCoefficient    float64 // aerodynamic drag, consumed by the vehicle layer
	MaxAngularVelocity float64 // rad/s, no clamp when <= 0
}

// DefaultConfig returns tuning suitable for a mid-size craft
func DefaultConfig() Config {
	return Config{
		Mass:               1000.0,
		LinearDamping:      0.8,
		AngularDamping:     0.9,
		DragCoefficient:    0.1,
		MaxAngularVelocity: 2.0,
	}
}

// RigidBody represents a rigid body in the physics simulation.
// Angular motion uses a unit moment of inertia: torque is angular
// acceleration. That keeps attitude control predictable for gameplay
// tuning at the cost of shape-dependent spin realism.
type RigidBody struct {
	// Spatial properties
	PreviousTransform Transform
	Transform         Transform

	// Linear motion
	Velocity mgl64.Vec3 // m/s

	// Angular motion
	AngularVelocity mgl64.Vec3 // rad/s

	accumulatedForce  mgl64.Vec3
	accumulatedTorque mgl64.Vec3

	Config Config
}

// NewRigidBody creates a body at rest with the given transform and config
func NewRigidBody(transform Transform, config Config) *RigidBody {
	return &RigidBody{
		PreviousTransform: transform,
		Transform:         transform,
		Config:            config,
	}
}

// ApplyForce accumulates a force through the center of mass for the next
// integration step
func (rb *RigidBody) ApplyForce(force mgl64.Vec3) {
	rb.accumulatedForce = rb.accumulatedForce.Add(force)
}

// ApplyForceAtPoint accumulates a force acting at a world-space point,
// splitting it into a linear part and the torque it induces
func (rb *RigidBody) ApplyForceAtPoint(force, point mgl64.Vec3) {
	rb.accumulatedForce = rb.accumulatedForce.Add(force)

	r := point.Sub(rb.Transform.Position)
	rb.accumulatedTorque = rb.accumulatedTorque.Add(r.Cross(force))
}

// ApplyTorque accumulates a torque for the next integration step
func (rb *RigidBody) ApplyTorque(torque mgl64.Vec3) {
	rb.accumulatedTorque = rb.accumulatedTorque.Add(torque)
}

// ApplyImpulse changes linear velocity immediately: dv = impulse / mass
func (rb *RigidBody) ApplyImpulse(impulse mgl64.Vec3) {
	if rb.Config.Mass > 0 {
		rb.Velocity = rb.Velocity.Add(impulse.Mul(1.0 / rb.Config.Mass))
	}
}

// ApplyAngularImpulse changes angular velocity immediately (unit inertia)
func (rb *RigidBody) ApplyAngularImpulse(impulse mgl64.Vec3) {
	rb.AngularVelocity = rb.AngularVelocity.Add(impulse)
	rb.clampAngularVelocity()
}

// ClearForces drops all accumulated force and torque
func (rb *RigidBody) ClearForces() {
	rb.accumulatedForce = mgl64.Vec3{0, 0, 0}
	rb.accumulatedTorque = mgl64.Vec3{0, 0, 0}
}

// Integrate advances the body state by dt seconds using semi-implicit
// Euler and clears the force accumulators. Zero or negative dt is a no-op.
func (rb *RigidBody) Integrate(dt float64) {
	if dt <= 0 {
		return
	}
	if dt > maxStepSeconds {
		dt = maxStepSeconds
	}

	rb.PreviousTransform = rb.Transform

	// Linear acceleration, a = F/m. Non-positive mass pins the body.
	var linearAcceleration mgl64.Vec3
	if rb.Config.Mass > 0 {
		linearAcceleration = rb.accumulatedForce.Mul(1.0 / rb.Config.Mass)
	}
	rb.Velocity = rb.Velocity.Add(linearAcceleration.Mul(dt))

	// Angular acceleration equals torque under the unit inertia model
	angularAcceleration := rb.accumulatedTorque
	rb.AngularVelocity = rb.AngularVelocity.Add(angularAcceleration.Mul(dt))
	rb.clampAngularVelocity()

	rb.applyDamping(dt)

	rb.Transform.Position = rb.Transform.Position.Add(rb.Velocity.Mul(dt))

	// Rotation update from angular velocity, axis-angle per step
	if rb.AngularVelocity.LenSqr() > 1e-10 {
		angVelMag := rb.AngularVelocity.Len()
		axis := rb.AngularVelocity.Mul(1.0 / angVelMag)
		angle := angVelMag * dt

		deltaRotation := mgl64.QuatRotate(angle, axis)
		rb.Transform.Rotation = rb.Transform.Rotation.Mul(deltaRotation).Normalize()
	}

	rb.ClearForces()
}

// applyDamping bleeds off velocity with the linearized decay
// factor max(0, 1 - damping*dt), the small-dt form of (1-damping)^dt
func (rb *RigidBody) applyDamping(dt float64) {
	linearFactor := 1.0 - rb.Config.LinearDamping*dt
	if linearFactor < 0 {
		linearFactor = 0
	}
	rb.Velocity = rb.Velocity.Mul(linearFactor)

	angularFactor := 1.0 - rb.Config.AngularDamping*dt
	if angularFactor < 0 {
		angularFactor = 0
	}
	rb.AngularVelocity = rb.AngularVelocity.Mul(angularFactor)
}

func (rb *RigidBody) clampAngularVelocity() {
	if rb.Config.MaxAngularVelocity > 0 {
		rb.AngularVelocity = vmath.ClampMagnitude(rb.AngularVelocity, rb.Config.MaxAngularVelocity)
	}
}

// Speed returns the magnitude of the linear velocity
func (rb *RigidBody) Speed() float64 {
	return rb.Velocity.Len()
}

// Forward returns the body's local +z axis in world space
func (rb *RigidBody) Forward() mgl64.Vec3 {
	return rb.Transform.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
}

// Up returns the body's local +y axis in world space
func (rb *RigidBody) Up() mgl64.Vec3 {
	return rb.Transform.Rotation.Rotate(mgl64.Vec3{0, 1, 0})
}

// Right returns the body's local +x axis in world space
func (rb *RigidBody) Right() mgl64.Vec3 {
	return rb.Transform.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
}

// Reset returns the body to the origin at rest with identity orientation,
// keeping its config
func (rb *RigidBody) Reset() {
	rb.Transform = NewTransform()
	rb.PreviousTransform = rb.Transform
	rb.Velocity = mgl64.Vec3{}
	rb.AngularVelocity = mgl64.Vec3{}
	rb.ClearForces()
}
