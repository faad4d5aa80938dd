package vmath

import "math"

// Easing functions map t in [0, 1] to a progress value in [0, 1] with the
// classic Penner coefficients. Inputs outside [0, 1] are clamped so animation
// drivers can feed raw timers without pre-checks.

// EaseLinear returns t unchanged (after clamping).
func EaseLinear(t float64) float64 {
	return Clamp01(t)
}

// EaseInQuad accelerates from zero velocity.
func EaseInQuad(t float64) float64 {
	t = Clamp01(t)
	return t * t
}

// EaseOutQuad decelerates to zero velocity.
func EaseOutQuad(t float64) float64 {
	t = Clamp01(t)
	return t * (2 - t)
}

// EaseInOutQuad accelerates until halfway, then decelerates.
func EaseInOutQuad(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EaseInCubic accelerates from zero velocity, sharper than quadratic.
func EaseInCubic(t float64) float64 {
	t = Clamp01(t)
	return t * t * t
}

// EaseOutCubic decelerates to zero velocity, sharper than quadratic.
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t) - 1
	return t*t*t + 1
}

// EaseInOutCubic accelerates until halfway, then decelerates.
func EaseInOutCubic(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return (t-1)*u*u + 1
}

const (
	elasticPeriod = 0.3
	elasticShift  = elasticPeriod / 4
)

// EaseOutElastic overshoots past 1 and oscillates back with an exponentially
// decaying amplitude.
func EaseOutElastic(t float64) float64 {
	t = Clamp01(t)
	if t == 0 {
		return 0
	}
	if t == 1 {
		return 1
	}
	return math.Pow(2, -10*t)*math.Sin((t-elasticShift)*Tau/elasticPeriod) + 1
}

// EaseInElastic is the time-reversed mirror of EaseOutElastic.
func EaseInElastic(t float64) float64 {
	t = Clamp01(t)
	if t == 0 {
		return 0
	}
	if t == 1 {
		return 1
	}
	u := t - 1
	return -math.Pow(2, 10*u) * math.Sin((u-elasticShift)*Tau/elasticPeriod)
}

// EaseInOutElastic runs EaseInElastic to the midpoint and EaseOutElastic after.
func EaseInOutElastic(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 0.5 * EaseInElastic(2*t)
	}
	return 0.5*EaseOutElastic(2*t-1) + 0.5
}

const bounceStiffness = 7.5625

// EaseOutBounce simulates a ball dropped on the ground, with bounce segment
// boundaries at 1/2.75, 2/2.75 and 2.5/2.75.
func EaseOutBounce(t float64) float64 {
	t = Clamp01(t)
	switch {
	case t < 1/2.75:
		return bounceStiffness * t * t
	case t < 2/2.75:
		t -= 1.5 / 2.75
		return bounceStiffness*t*t + 0.75
	case t < 2.5/2.75:
		t -= 2.25 / 2.75
		return bounceStiffness*t*t + 0.9375
	default:
		t -= 2.625 / 2.75
		return bounceStiffness*t*t + 0.984375
	}
}

// EaseInBounce is the time-reversed mirror of EaseOutBounce.
func EaseInBounce(t float64) float64 {
	return 1 - EaseOutBounce(1-Clamp01(t))
}

// EaseInOutBounce runs EaseInBounce to the midpoint and EaseOutBounce after.
func EaseInOutBounce(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 0.5 * EaseInBounce(2*t)
	}
	return 0.5*EaseOutBounce(2*t-1) + 0.5
}
