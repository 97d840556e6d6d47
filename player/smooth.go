package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// repeat loops t so it is never larger than length and never smaller than 0.
func repeat(t, length float64) float64 {
	return mgl64.Clamp(t-math.Floor(t/length)*length, 0, length)
}

// DeltaAngle is the shortest signed difference between two angles in degrees.
func DeltaAngle(current, target float64) float64 {
	d := repeat(target-current, 360)
	if d > 180 {
		d -= 360
	}
	return d
}

// SmoothDamp moves current toward target with a critically damped spring.
// velocity carries state between calls.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime

	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
	change := current - target
	originalTo := target
	target = current - change

	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	output := target + (change+temp)*exp

	// do not overshoot
	if (originalTo-current > 0) == (output > originalTo) {
		output = originalTo
		if dt > 0 {
			*velocity = (output - originalTo) / dt
		}
	}
	return output
}

// SmoothDampAngle is SmoothDamp for angles in degrees, taking the short way
// around.
func SmoothDampAngle(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	target = current + DeltaAngle(current, target)
	return SmoothDamp(current, target, velocity, smoothTime, dt)
}
