package viewmatrix

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lightning-mesh/internal/mathutil"
)

func TestFitCentersBounds(t *testing.T) {
	pts := []mathutil.Vec3{{-1, -2, 0}, {3, 6, 0}}
	f := Fit(pts, Camera{}, 100, 100, 10, 1)

	x0, y0, _ := f.Project(pts[0])
	x1, y1, _ := f.Project(pts[1])

	// y span (8) dominates, so it fills 100-2*10 pixels
	assert.InDelta(t, 10, f.Scale, 1e-9)
	assert.InDelta(t, 90, y0, 1e-9)
	assert.InDelta(t, 10, y1, 1e-9)
	assert.InDelta(t, 50, (x0+x1)/2, 1e-9)
}

func TestFitAspect(t *testing.T) {
	pts := []mathutil.Vec3{{0, 0, 0}, {10, 10, 0}}
	f := Fit(pts, Camera{}, 80, 40, 0, 0.5)
	x0, _, _ := f.Project(pts[0])
	x1, _, _ := f.Project(pts[1])
	assert.InDelta(t, 20, x1-x0, 1e-9, "x is squeezed by the aspect")
}

func TestCameraYaw(t *testing.T) {
	R := Camera{Yaw: 90}.Matrix()
	got := R.MulVec3(mathutil.Vec3{1, 0, 0})
	assert.True(t, got.ApproxEqual(mathutil.Vec3{0, 0, -1}, 1e-9), "got %v", got)
}

func TestPerspectiveShrinksFarPoints(t *testing.T) {
	pts := []mathutil.Vec3{{1, 1, -5}, {1, 1, 5}, {-1, -1, 0}}
	f := Fit(pts, Camera{Perspective: true}, 100, 100, 0, 1)
	farX, _, farZ := f.Project(pts[0])
	nearX, _, nearZ := f.Project(pts[1])
	assert.Greater(t, nearZ, farZ)
	assert.Greater(t, nearX, farX)
}

func TestProjectVertices(t *testing.T) {
	verts := [][3]float32{{0, 0, 0}, {1, 1, 1}}
	f := Fit(VertexPoints(verts), Camera{Pitch: 20}, 64, 64, 4, 1)
	px, py, pz := f.ProjectVertices(verts)
	assert.Len(t, px, 2)
	assert.Len(t, py, 2)
	assert.Len(t, pz, 2)
}
