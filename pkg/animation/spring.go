package animation

import (
	"fmt"
	"math"
)

// SpringParams describes a spring-mass-damper system. All fields must be
// positive.
type SpringParams struct {
	Tension  float64
	Friction float64
	Mass     float64
}

// Validate reports whether the parameters describe a physical spring.
func (p SpringParams) Validate() error {
	if !(p.Tension > 0) || !(p.Friction > 0) || !(p.Mass > 0) {
		return fmt.Errorf("spring params must be positive (tension=%g friction=%g mass=%g)",
			p.Tension, p.Friction, p.Mass)
	}
	return nil
}

// NaturalFrequency returns sqrt(tension/mass).
func (p SpringParams) NaturalFrequency() float64 {
	return math.Sqrt(p.Tension / p.Mass)
}

// DampingRatio returns friction / (2*sqrt(tension*mass)). Values below 1
// oscillate; values at or above 1 approach the target monotonically.
func (p SpringParams) DampingRatio() float64 {
	return p.Friction / (2 * math.Sqrt(p.Tension*p.Mass))
}

// Underdamped reports whether the spring overshoots its target.
func (p SpringParams) Underdamped() bool {
	return p.DampingRatio() < 1
}

// criticalEpsilon is how close to 1 the damping ratio must be to use the
// critically damped form; the overdamped form divides by sqrt(zeta²-1).
const criticalEpsilon = 1e-9

// SpringEase returns the unit step response of the spring at time t.
// SpringEase(p, 0) == 0 and the result tends to 1 as t grows. Underdamped
// springs overshoot past 1 before settling; the value is not clamped.
func SpringEase(p SpringParams, t float64) float64 {
	if t <= 0 {
		return 0
	}
	omega := p.NaturalFrequency()
	zeta := p.DampingRatio()
	decay := zeta * omega

	switch {
	case zeta < 1-criticalEpsilon:
		omegaD := omega * math.Sqrt(1-zeta*zeta)
		envelope := math.Exp(-decay * t)
		return 1 - envelope*(math.Cos(omegaD*t)+(decay/omegaD)*math.Sin(omegaD*t))

	case zeta > 1+criticalEpsilon:
		omegaN := omega * math.Sqrt(zeta*zeta-1)
		// e^(-a t)·cosh(b t) and e^(-a t)·sinh(b t) with the exponents folded
		// together so neither factor overflows for large t. b < a always.
		slow := math.Exp((omegaN - decay) * t)
		fast := math.Exp(-(omegaN + decay) * t)
		cosh := (slow + fast) / 2
		sinh := (slow - fast) / 2
		return 1 - (cosh + (decay/omegaN)*sinh)

	default:
		return 1 - math.Exp(-omega*t)*(1+omega*t)
	}
}

// Curve binds p into a single-argument easing function.
func (p SpringParams) Curve() func(float64) float64 {
	return func(t float64) float64 { return SpringEase(p, t) }
}
