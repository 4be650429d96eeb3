package raster

import (
	"image"
	"math"

	"lightning-mesh/internal/mathutil"
)

// Blend selects how a triangle's fragments combine with the framebuffer.
type Blend int

const (
	// Opaque fragments are depth-tested and overwrite the pixel.
	Opaque Blend = iota
	// Additive fragments skip the depth test and add to the pixel.
	Additive
)

// RasterizeTriangle rasterizes one triangle of projected vertices, coloring
// fragments from the ramp at the interpolated UV.
//
// Hot path: no allocation in the pixel loop.
// Shading is flat (per-face, not per-pixel).
func RasterizeTriangle(
	fb *FrameBuffer,
	px, py, pz []float64,
	uvs [][2]float32,
	vi [3]int,
	ramp *image.NRGBA,
	lc *LightConfig,
	blend Blend,
) {
	nv := len(px)
	for _, i := range vi {
		if i < 0 || i >= nv || i >= len(uvs) {
			return
		}
	}

	x0, y0, z0 := px[vi[0]], py[vi[0]], pz[vi[0]]
	x1, y1, z1 := px[vi[1]], py[vi[1]], pz[vi[1]]
	x2, y2, z2 := px[vi[2]], py[vi[2]], pz[vi[2]]

	u0, v0 := float64(uvs[vi[0]][0]), float64(uvs[vi[0]][1])
	u1, v1 := float64(uvs[vi[1]][0]), float64(uvs[vi[1]][1])
	u2, v2 := float64(uvs[vi[2]][0]), float64(uvs[vi[2]][1])

	// Face normal for flat shading
	n := mathutil.Vec3{x1 - x0, y1 - y0, z1 - z0}.Cross(mathutil.Vec3{x2 - x0, y2 - y0, z2 - z0})
	if n.Len() < 1e-8 {
		return
	}
	shade := lc.ComputeShade(n.Normalize())
	if blend == Additive {
		shade *= lc.GlowGain
	}

	// Bounding box
	minX := max(int(math.Min(math.Min(x0, x1), x2)), 0)
	maxX := min(int(math.Max(math.Max(x0, x1), x2))+1, fb.Width-1)
	minY := max(int(math.Min(math.Min(y0, y1), y2)), 0)
	maxY := min(int(math.Max(math.Max(y0, y1), y2))+1, fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			zIdx := rowOff + sx
			z := w0*z0 + w1*z1 + w2*z2
			if blend == Opaque {
				if z <= fb.ZBuf[zIdx] {
					continue
				}
				fb.ZBuf[zIdx] = z
			}

			cr, cg, cb, ca := SampleRamp(ramp, w0*u0+w1*u1+w2*u2, w0*v0+w1*v1+w2*v2)
			if ca < 8 {
				continue
			}

			fr := lc.tonemap(cr, shade)
			fg := lc.tonemap(cg, shade)
			fbl := lc.tonemap(cb, shade)

			pxIdx := zIdx * 4
			if blend == Opaque {
				fb.Color[pxIdx] = clamp255(fr)
				fb.Color[pxIdx+1] = clamp255(fg)
				fb.Color[pxIdx+2] = clamp255(fbl)
				fb.Color[pxIdx+3] = ca
				continue
			}

			// Additive: add to existing pixel, clamp to 255
			fb.Color[pxIdx] = clamp255(float64(fb.Color[pxIdx]) + fr)
			fb.Color[pxIdx+1] = clamp255(float64(fb.Color[pxIdx+1]) + fg)
			fb.Color[pxIdx+2] = clamp255(float64(fb.Color[pxIdx+2]) + fbl)
			// Alpha: use brightness of added color (dark pixels stay transparent)
			if a := clamp255(fr*0.299 + fg*0.587 + fbl*0.114); a > fb.Color[pxIdx+3] {
				fb.Color[pxIdx+3] = a
			}
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
