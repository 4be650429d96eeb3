package mathutil

import "math"

// Quat is a rotation quaternion stored as (x, y, z, w).
type Quat [4]float64

// AxisAngle returns the rotation of angle radians around a unit axis.
func AxisAngle(axis Vec3, angle float64) Quat {
	s, c := math.Sincos(angle / 2)
	return Quat{axis[0] * s, axis[1] * s, axis[2] * s, c}
}

// EulerToQuat composes rotations around X, then Y, then Z (radians).
func EulerToQuat(rx, ry, rz float64) Quat {
	qx := AxisAngle(Vec3{1, 0, 0}, rx)
	qy := AxisAngle(Vec3{0, 1, 0}, ry)
	qz := AxisAngle(Vec3{0, 0, 1}, rz)
	return qz.Mul(qy).Mul(qx)
}

func (q Quat) vec() Vec3 { return Vec3{q[0], q[1], q[2]} }

// Mul returns q·p, the rotation p followed by q.
func (q Quat) Mul(p Quat) Quat {
	qv, pv := q.vec(), p.vec()
	v := pv.Scale(q[3]).Add(qv.Scale(p[3])).Add(qv.Cross(pv))
	return Quat{v[0], v[1], v[2], q[3]*p[3] - qv.Dot(pv)}
}

// Rotate applies the unit quaternion to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := q.vec()
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q[3])).Add(u.Cross(t))
}

// QuatToMat3 returns the rotation matrix of a unit quaternion; its columns
// are the rotated axes.
func QuatToMat3(q Quat) Mat3 {
	x := q.Rotate(Vec3{1, 0, 0})
	y := q.Rotate(Vec3{0, 1, 0})
	z := q.Rotate(Vec3{0, 0, 1})
	return Mat3{
		x[0], y[0], z[0],
		x[1], y[1], z[1],
		x[2], y[2], z[2],
	}
}
