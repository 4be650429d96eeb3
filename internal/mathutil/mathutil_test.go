package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertOrthonormal(t *testing.T, f, r, u Vec3) {
	t.Helper()
	assert.InDelta(t, 1, f.Len(), 1e-9)
	assert.InDelta(t, 1, r.Len(), 1e-9)
	assert.InDelta(t, 1, u.Len(), 1e-9)
	assert.InDelta(t, 0, f.Dot(r), 1e-9)
	assert.InDelta(t, 0, f.Dot(u), 1e-9)
	assert.InDelta(t, 0, r.Dot(u), 1e-9)
}

func TestBasisGeneric(t *testing.T) {
	f := Vec3{0, 0, 1}
	r, u := Basis(f)
	assert.True(t, r.ApproxEqual(Vec3{1, 0, 0}, 1e-12), "right %v", r)
	assert.True(t, u.ApproxEqual(Vec3{0, 1, 0}, 1e-12), "up %v", u)

	for _, f := range []Vec3{{1, 2, 3}, {-4, 0.5, 1}, {0.3, -0.9, 0.1}, {1, 0, 0}} {
		f = f.Normalize()
		r, u := Basis(f)
		assertOrthonormal(t, f, r, u)
	}
}

func TestBasisVertical(t *testing.T) {
	r, u := Basis(Vec3{0, 1, 0})
	assert.Equal(t, WorldRight, r)
	assertOrthonormal(t, Vec3{0, 1, 0}, r, u)

	r, u = Basis(Vec3{0, -1, 0})
	assert.Equal(t, Vec3{-1, 0, 0}, r)
	assertOrthonormal(t, Vec3{0, -1, 0}, r, u)

	// within tolerance of vertical still takes the special case
	f := Vec3{1e-9, 1, 0}.Normalize()
	r, _ = Basis(f)
	assert.Equal(t, WorldRight, r)
}

func TestLerp(t *testing.T) {
	a, b := Vec3{0, 0, 0}, Vec3{2, 4, -6}
	assert.Equal(t, Vec3{1, 2, -3}, a.Lerp(b, 0.5))
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
}

func TestNormalizeDegenerate(t *testing.T) {
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{
		Position: Vec3{3, -2, 7},
		Rotation: Vec3{30, 45, -60},
		Scale:    Vec3{2, 2, 0.5},
	}
	for _, p := range []Vec3{{0, 0, 0}, {1, 2, 3}, {-5, 0.25, 9}} {
		local := tr.WorldToLocal(p)
		back := tr.LocalToWorld(local)
		assert.True(t, back.ApproxEqual(p, 1e-9), "%v -> %v -> %v", p, local, back)
	}
}

func TestTransformIdentity(t *testing.T) {
	assert.True(t, Identity.Matrix().IsIdentity())
	assert.True(t, Transform{}.Matrix().IsIdentity(), "zero scale reads as 1")
	p := Vec3{1, 2, 3}
	assert.Equal(t, p, Identity.WorldToLocal(p))
}

func TestTransformRotation(t *testing.T) {
	tr := Transform{Rotation: Vec3{0, 90, 0}, Scale: Vec3{1, 1, 1}}
	got := tr.LocalToWorld(Vec3{1, 0, 0})
	assert.True(t, got.ApproxEqual(Vec3{0, 0, -1}, 1e-9), "got %v", got)
	assert.InDelta(t, math.Pi/2, Deg2Rad(90), 1e-12)
}

func TestMat3Inverse(t *testing.T) {
	m := Mat3Mul(RotX(0.4), Mat3Mul(RotY(-1.1), Mat3Diag(2, 3, 0.5)))
	inv, ok := m.Inverse()
	assert.True(t, ok)

	p := Vec3{1.5, -2, 7}
	assert.True(t, inv.MulVec3(m.MulVec3(p)).ApproxEqual(p, 1e-9))
	assert.InDelta(t, 3.0, m.Det(), 1e-9)

	_, ok = Mat3Diag(1, 0, 1).Inverse()
	assert.False(t, ok)
}

func TestBasisIsRightHanded(t *testing.T) {
	for _, f := range []Vec3{{0, 1, 0}, {0, -1, 0}, {2, -1, 0.5}} {
		f = f.Normalize()
		r, u := Basis(f)
		assert.InDelta(t, 1, Mat3Rows(r, u, f).Det(), 1e-9, "forward %v", f)
	}
}

func TestEulerOrder(t *testing.T) {
	q := EulerToQuat(0, 0, math.Pi/2)
	assert.True(t, q.Rotate(Vec3{1, 0, 0}).ApproxEqual(Vec3{0, 1, 0}, 1e-12))

	// X is applied first, then Y
	got := QuatToMat3(EulerToQuat(0.3, -0.7, 0))
	want := Mat3Mul(RotY(-0.7), RotX(0.3))
	for i := range got {
		assert.InDelta(t, want[i], got[i], 1e-12)
	}
}
