package viewmatrix

import (
	"math"

	"lightning-mesh/internal/mathutil"
)

// DefaultFOV is the vertical field of view used when Camera.FOV is zero.
const DefaultFOV = 40.0

// Camera orbits the bolt: yaw around world Y, then pitch around X.
// Angles are in degrees.
type Camera struct {
	Yaw         float64 `json:"yaw" yaml:"yaw" toml:"yaw"`
	Pitch       float64 `json:"pitch" yaml:"pitch" toml:"pitch"`
	Perspective bool    `json:"perspective" yaml:"perspective" toml:"perspective"`
	FOV         float64 `json:"fov" yaml:"fov" toml:"fov"`
}

// Matrix returns the 3×3 world-to-view rotation.
func (c Camera) Matrix() mathutil.Mat3 {
	return mathutil.Mat3Mul(mathutil.RotX(mathutil.Deg2Rad(c.Pitch)), mathutil.RotY(mathutil.Deg2Rad(c.Yaw)))
}

// Frame maps rotated points onto a width×height pixel grid so the fitted
// bounds fill it minus a margin.
type Frame struct {
	R      mathutil.Mat3
	Center mathutil.Vec3
	Scale  float64
	Width  int
	Height int

	// Aspect stretches x relative to y, e.g. 2 for terminal cells that
	// are twice as tall as they are wide.
	Aspect float64

	persp        bool
	perspDist    float64
	perspZCenter float64
}

// Fit computes the frame for points seen through cam.
func Fit(points []mathutil.Vec3, cam Camera, width, height, margin int, aspect float64) Frame {
	if aspect <= 0 {
		aspect = 1
	}
	R := cam.Matrix()

	lo := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range points {
		t := R.MulVec3(p)
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], t[k])
			hi[k] = math.Max(hi[k], t[k])
		}
	}
	if len(points) == 0 {
		lo, hi = mathutil.Vec3{}, mathutil.Vec3{}
	}

	f := Frame{
		R:      R,
		Center: lo.Lerp(hi, 0.5),
		Width:  width,
		Height: height,
		Aspect: aspect,
	}

	spanX := math.Max((hi[0]-lo[0])*aspect, 0.001)
	spanY := math.Max(hi[1]-lo[1], 0.001)
	scaleX := float64(width-2*margin) / spanX
	scaleY := float64(height-2*margin) / spanY
	f.Scale = math.Max(math.Min(scaleX, scaleY), 1e-9)

	if cam.Perspective {
		fov := cam.FOV
		if fov == 0 {
			fov = DefaultFOV
		}
		halfExtent := math.Max(math.Max(hi[0]-lo[0], hi[1]-lo[1])/2, 0.001)
		f.persp = true
		f.perspZCenter = f.Center[2]
		f.perspDist = halfExtent/math.Tan(mathutil.Deg2Rad(fov/2)) + (hi[2]-lo[2])/2
	}
	return f
}

// Project maps a world point to pixel x, y and a depth where larger is
// closer to the viewer.
func (f Frame) Project(p mathutil.Vec3) (x, y, z float64) {
	t := f.R.MulVec3(p)
	if f.persp {
		depth := math.Max(f.perspDist-(t[2]-f.perspZCenter), 0.1)
		factor := f.perspDist / depth
		t[0] = (t[0]-f.Center[0])*factor + f.Center[0]
		t[1] = (t[1]-f.Center[1])*factor + f.Center[1]
	}
	x = (t[0]-f.Center[0])*f.Scale*f.Aspect + float64(f.Width)/2
	y = -(t[1]-f.Center[1])*f.Scale + float64(f.Height)/2
	return x, y, t[2]
}

// ProjectVertices projects mesh vertices into parallel screen slices.
func (f Frame) ProjectVertices(verts [][3]float32) (px, py, pz []float64) {
	n := len(verts)
	px = make([]float64, n)
	py = make([]float64, n)
	pz = make([]float64, n)
	for i, v := range verts {
		px[i], py[i], pz[i] = f.Project(mathutil.Vec3{float64(v[0]), float64(v[1]), float64(v[2])})
	}
	return px, py, pz
}

// VertexPoints widens mesh vertices for Fit.
func VertexPoints(verts [][3]float32) []mathutil.Vec3 {
	pts := make([]mathutil.Vec3, len(verts))
	for i, v := range verts {
		pts[i] = mathutil.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
	}
	return pts
}
