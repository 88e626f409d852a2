package anim

import "math"

// Ease maps normalised time in [0,1] to normalised progress.
type Ease func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 { return clamp01(t) }

// Power1InOut is a quadratic ease-in-out.
func Power1InOut(t float64) float64 { return inOut(clamp01(t), 2) }

// Power2Out is a cubic ease-out.
func Power2Out(t float64) float64 { return out(clamp01(t), 3) }

// Power2InOut is a cubic ease-in-out.
func Power2InOut(t float64) float64 { return inOut(clamp01(t), 3) }

// Power3Out is a quartic ease-out.
func Power3Out(t float64) float64 { return out(clamp01(t), 4) }

// Power1Out is a quadratic ease-out and the default for untyped tracks.
func Power1Out(t float64) float64 { return out(clamp01(t), 2) }

func out(t, p float64) float64 {
	return 1 - math.Pow(1-t, p)
}

func inOut(t, p float64) float64 {
	if t < 0.5 {
		return math.Pow(2*t, p) / 2
	}
	return 1 - math.Pow(2*(1-t), p)/2
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

func lerp(from, to, t float64) float64 {
	return from*(1-t) + to*t
}
