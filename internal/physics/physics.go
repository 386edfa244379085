// Package physics provides distance, interpolation and orbit helpers.
package physics

import "math"

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// Lerp moves a toward b by fraction t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpFrames applies a per-frame lerp rate over a fractional number of
// 60 Hz frames, so easing speed does not depend on the actual frame rate.
func LerpFrames(a, b, rate, frames float64) float64 {
	if frames <= 0 {
		return a
	}
	keep := math.Pow(1-rate, frames)
	return b + (a-b)*keep
}

// WrapAngle normalises an angle to [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// OrbitPosition projects a circular orbit of radius r at angle a onto a
// tilted plane: the vertical axis is squashed by tilt.
func OrbitPosition(cx, cy, r, a, tilt float64) (x, y float64) {
	return cx + r*math.Cos(a), cy + r*math.Sin(a)*tilt
}

// Clamp01 limits t to [0, 1].
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// EaseOutCubic decelerates toward 1.
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t) - 1
	return t*t*t + 1
}

// EaseOutBack overshoots slightly past 1 before settling.
func EaseOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	t = Clamp01(t) - 1
	return 1 + c3*t*t*t + c1*t*t
}
