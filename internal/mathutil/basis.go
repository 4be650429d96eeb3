package mathutil

import "math"

// VerticalTolerance is how close |forward·WorldUp| must be to 1 before
// forward is treated as vertical.
const VerticalTolerance = 1e-6

// Basis derives the right and up axes for a unit forward vector.
//
// The generic rule is right = normalize(WorldUp × forward) and
// up = forward × right. That cross product degenerates when forward is
// parallel to WorldUp, so a vertical forward takes WorldRight (pointing up)
// or its negation (pointing down) as the right axis instead.
func Basis(forward Vec3) (right, up Vec3) {
	d := forward.Dot(WorldUp)
	switch {
	case math.Abs(d) >= 1-VerticalTolerance && d > 0:
		right = WorldRight
	case math.Abs(d) >= 1-VerticalTolerance:
		right = WorldRight.Scale(-1)
	default:
		right = WorldUp.Cross(forward).Normalize()
	}
	up = forward.Cross(right)
	return right, up
}
