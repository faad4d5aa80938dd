package vmath

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Random is an explicitly seeded random source. Every component that needs
// randomness (RRT sampling, wander steering, scenario generation) receives a
// *Random instance; nothing in the kernel reads the process-global generator,
// which keeps runs reproducible from their seeds.
type Random struct {
	rng *rand.Rand
}

// NewRandom builds a generator from the given seed.
func NewRandom(seed uint32) *Random {
	return &Random{rng: rand.New(rand.NewSource(int64(seed)))}
}

// Float64 returns a uniform value in [0, 1).
func (r *Random) Float64() float64 {
	return r.rng.Float64()
}

// Range returns a uniform value in [min, max). Inverted bounds are swapped.
func (r *Random) Range(min, max float64) float64 {
	if max < min {
		min, max = max, min
	}
	return min + r.rng.Float64()*(max-min)
}

// IntRange returns a uniform integer in [min, max], both bounds inclusive.
// Inverted bounds are swapped.
func (r *Random) IntRange(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + r.rng.Intn(max-min+1)
}

// Gaussian returns a normally distributed value with the given mean and
// standard deviation.
func (r *Random) Gaussian(mean, stddev float64) float64 {
	return mean + stddev*r.rng.NormFloat64()
}

// UnitVec3 returns a uniformly distributed direction on the unit sphere.
func (r *Random) UnitVec3() mgl64.Vec3 {
	z := r.Range(-1, 1)
	theta := r.Range(0, Tau)
	s := math.Sqrt(1 - z*z)
	return mgl64.Vec3{s * math.Cos(theta), s * math.Sin(theta), z}
}

// InVolume returns a uniform position inside the axis-aligned volume spanned
// by min and max.
func (r *Random) InVolume(min, max mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		r.Range(min.X(), max.X()),
		r.Range(min.Y(), max.Y()),
		r.Range(min.Z(), max.Z()),
	}
}
