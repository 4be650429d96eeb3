package mathutil

import "math"

// Mat3 is a row-major 3×3 matrix: rotations, scales and camera bases.
type Mat3 [9]float64

func Mat3Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

func Mat3Diag(x, y, z float64) Mat3 {
	return Mat3{x, 0, 0, 0, y, 0, 0, 0, z}
}

// Mat3Rows builds the matrix whose rows are a, b and c. For an orthonormal
// basis this is the world-to-basis rotation.
func Mat3Rows(a, b, c Vec3) Mat3 {
	return Mat3{a[0], a[1], a[2], b[0], b[1], b[2], c[0], c[1], c[2]}
}

// Mat3Mul returns a × b.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r*3+c] = a[r*3]*b[c] + a[r*3+1]*b[3+c] + a[r*3+2]*b[6+c]
		}
	}
	return m
}

// MulVec3 returns m × v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		Vec3{m[0], m[1], m[2]}.Dot(v),
		Vec3{m[3], m[4], m[5]}.Dot(v),
		Vec3{m[6], m[7], m[8]}.Dot(v),
	}
}

func (m Mat3) Det() float64 {
	return Vec3{m[0], m[1], m[2]}.Dot(Vec3{m[3], m[4], m[5]}.Cross(Vec3{m[6], m[7], m[8]}))
}

// Inverse returns the inverse; ok is false for a singular matrix, in which
// case the identity is returned.
func (m Mat3) Inverse() (inv Mat3, ok bool) {
	d := m.Det()
	if math.Abs(d) < 1e-12 {
		return Mat3Identity(), false
	}
	// rows of the inverse are the columns of the adjugate
	a := Vec3{m[0], m[1], m[2]}
	b := Vec3{m[3], m[4], m[5]}
	c := Vec3{m[6], m[7], m[8]}
	bc, ca, ab := b.Cross(c).Scale(1/d), c.Cross(a).Scale(1/d), a.Cross(b).Scale(1/d)
	return Mat3{
		bc[0], ca[0], ab[0],
		bc[1], ca[1], ab[1],
		bc[2], ca[2], ab[2],
	}, true
}

// RotX rotates around the X axis by a radians.
func RotX(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{1, 0, 0, 0, c, -s, 0, s, c}
}

// RotY rotates around the Y axis by a radians.
func RotY(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{c, 0, s, 0, 1, 0, -s, 0, c}
}

func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
