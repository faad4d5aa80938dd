package vmath

import "testing"

// =============================================================================
// Easing Endpoint Tests
// =============================================================================

func TestEase_Endpoints(t *testing.T) {
	eases := []struct {
		name string
		fn   func(float64) float64
	}{
		{name: "EaseLinear", fn: EaseLinear},
		{name: "EaseInQuad", fn: EaseInQuad},
		{name: "EaseOutQuad", fn: EaseOutQuad},
		{name: "EaseInOutQuad", fn: EaseInOutQuad},
		{name: "EaseInCubic", fn: EaseInCubic},
		{name: "EaseOutCubic", fn: EaseOutCubic},
		{name: "EaseInOutCubic", fn: EaseInOutCubic},
		{name: "EaseInElastic", fn: EaseInElastic},
		{name: "EaseOutElastic", fn: EaseOutElastic},
		{name: "EaseInOutElastic", fn: EaseInOutElastic},
		{name: "EaseInBounce", fn: EaseInBounce},
		{name: "EaseOutBounce", fn: EaseOutBounce},
		{name: "EaseInOutBounce", fn: EaseInOutBounce},
	}

	for _, e := range eases {
		t.Run(e.name, func(t *testing.T) {
			if got := e.fn(0); !almostEqual(got, 0, 1e-12) {
				t.Errorf("%s(0) = %v, want 0", e.name, got)
			}
			if got := e.fn(1); !almostEqual(got, 1, 1e-12) {
				t.Errorf("%s(1) = %v, want 1", e.name, got)
			}

			// Out-of-range inputs clamp to the endpoint values
			if got := e.fn(-0.5); !almostEqual(got, 0, 1e-12) {
				t.Errorf("%s(-0.5) = %v, want 0", e.name, got)
			}
			if got := e.fn(1.5); !almostEqual(got, 1, 1e-12) {
				t.Errorf("%s(1.5) = %v, want 1", e.name, got)
			}
		})
	}
}

// =============================================================================
// Easing Value Tests
// =============================================================================

func TestEaseQuad_Values(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) float64
		in   float64
		want float64
	}{
		{name: "EaseInQuad midpoint", fn: EaseInQuad, in: 0.5, want: 0.25},
		{name: "EaseOutQuad midpoint", fn: EaseOutQuad, in: 0.5, want: 0.75},
		{name: "EaseInOutQuad quarter", fn: EaseInOutQuad, in: 0.25, want: 0.125},
		{name: "EaseInOutQuad midpoint", fn: EaseInOutQuad, in: 0.5, want: 0.5},
		{name: "EaseInOutQuad three quarters", fn: EaseInOutQuad, in: 0.75, want: 0.875},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); !almostEqual(got, tt.want, 1e-12) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEaseCubic_Values(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) float64
		in   float64
		want float64
	}{
		{name: "EaseInCubic midpoint", fn: EaseInCubic, in: 0.5, want: 0.125},
		{name: "EaseOutCubic midpoint", fn: EaseOutCubic, in: 0.5, want: 0.875},
		{name: "EaseInOutCubic quarter", fn: EaseInOutCubic, in: 0.25, want: 0.0625},
		{name: "EaseInOutCubic midpoint", fn: EaseInOutCubic, in: 0.5, want: 0.5},
		{name: "EaseInOutCubic three quarters", fn: EaseInOutCubic, in: 0.75, want: 0.9375},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); !almostEqual(got, tt.want, 1e-12) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEaseOutBounce_Values(t *testing.T) {
	// First segment is a plain parabola
	if got := EaseOutBounce(0.2); !almostEqual(got, 7.5625*0.2*0.2, 1e-12) {
		t.Errorf("EaseOutBounce(0.2) = %v, want %v", got, 7.5625*0.2*0.2)
	}

	// Second segment value computed from the Penner coefficients
	if got := EaseOutBounce(0.5); !almostEqual(got, 0.765625, 1e-12) {
		t.Errorf("EaseOutBounce(0.5) = %v, want 0.765625", got)
	}
}

func TestEaseInOut_Midpoints(t *testing.T) {
	// Every in-out pair meets at exactly one half
	if got := EaseInOutElastic(0.5); !almostEqual(got, 0.5, 1e-12) {
		t.Errorf("EaseInOutElastic(0.5) = %v, want 0.5", got)
	}
	if got := EaseInOutBounce(0.5); !almostEqual(got, 0.5, 1e-12) {
		t.Errorf("EaseInOutBounce(0.5) = %v, want 0.5", got)
	}
}

func TestEaseMirrors(t *testing.T) {
	// In variants are time-reversed mirrors of the out variants
	for _, x := range []float64{0.1, 0.3, 0.6, 0.9} {
		if got, want := EaseInBounce(x), 1-EaseOutBounce(1-x); !almostEqual(got, want, 1e-12) {
			t.Errorf("EaseInBounce(%v) = %v, want %v", x, got, want)
		}
		if got, want := EaseInQuad(x), 1-EaseOutQuad(1-x); !almostEqual(got, want, 1e-12) {
			t.Errorf("EaseInQuad(%v) = %v, want %v", x, got, want)
		}
		if got, want := EaseInCubic(x), 1-EaseOutCubic(1-x); !almostEqual(got, want, 1e-12) {
			t.Errorf("EaseInCubic(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestEaseOutElastic_Overshoots(t *testing.T) {
	// The out variant must exceed 1 somewhere in its first oscillation
	overshoot := false
	for x := 0.05; x < 1.0; x += 0.01 {
		if EaseOutElastic(x) > 1.0 {
			overshoot = true
			break
		}
	}
	if !overshoot {
		t.Error("EaseOutElastic never exceeded 1, want an overshoot oscillation")
	}
}
