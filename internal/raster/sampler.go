package raster

import "image"

// SampleRamp returns the bilinearly filtered ramp color at (u, v). u is a
// position along the ramp and is clamped; v wraps, so multi-row ramps can
// vary along the bolt.
func SampleRamp(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w, h := tex.Rect.Dx(), tex.Rect.Dy()

	u = min(max(u, 0), 1)
	v -= float64(int(v))
	if v < 0 {
		v++
	}

	fx, fy := u*float64(w-1), v*float64(h-1)
	x0, y0 := int(fx), int(fy)
	x1, y1 := min(x0+1, w-1), (y0+1)%h
	dx, dy := fx-float64(x0), fy-float64(y0)

	row0, row1 := y0*tex.Stride, y1*tex.Stride
	taps := [4]struct {
		off    int
		weight float64
	}{
		{row0 + x0*4, (1 - dx) * (1 - dy)},
		{row0 + x1*4, dx * (1 - dy)},
		{row1 + x0*4, (1 - dx) * dy},
		{row1 + x1*4, dx * dy},
	}

	var acc [4]float64
	for _, t := range taps {
		for c := range acc {
			acc[c] += float64(tex.Pix[t.off+c]) * t.weight
		}
	}
	return uint8(acc[0] + 0.5), uint8(acc[1] + 0.5), uint8(acc[2] + 0.5), uint8(acc[3] + 0.5)
}
