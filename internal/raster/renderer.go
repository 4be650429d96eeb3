package raster

import (
	"image"

	"lightning-mesh/internal/mesh"
	"lightning-mesh/internal/viewmatrix"
)

// Options controls a single render.
type Options struct {
	Size        int
	Supersample int
	Camera      viewmatrix.Camera

	// Glow adds an additive halo pass: the tube pushed GlowPixels (at
	// output resolution) further out along its normals.
	Glow       bool
	GlowPixels float64
}

// RenderMesh renders tube buffers to a transparent NRGBA image of
// Size*Supersample pixels square.
func RenderMesh(buf *mesh.Buffers, ramp *image.NRGBA, opt Options) *image.NRGBA {
	ss := max(opt.Supersample, 1)
	renderSize := opt.Size * ss
	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	if buf == nil || buf.VertexCount() == 0 || ramp == nil {
		return img
	}

	margin := 16 * ss
	frame := viewmatrix.Fit(viewmatrix.VertexPoints(buf.Vertices), opt.Camera, renderSize, renderSize, margin, 1)
	fb := NewFrameBuffer(renderSize, renderSize)
	lc := DefaultLightConfig()

	if opt.Glow {
		pixels := opt.GlowPixels
		if pixels <= 0 {
			pixels = 4
		}
		offset := float32(pixels * float64(ss) / frame.Scale)
		gx, gy, gz := frame.ProjectVertices(inflate(buf, offset))
		for i := 0; i < buf.TriangleCount(); i++ {
			RasterizeTriangle(fb, gx, gy, gz, buf.UVs, buf.Triangle(i), ramp, &lc, Additive)
		}
	}

	px, py, pz := frame.ProjectVertices(buf.Vertices)
	for i := 0; i < buf.TriangleCount(); i++ {
		RasterizeTriangle(fb, px, py, pz, buf.UVs, buf.Triangle(i), ramp, &lc, Opaque)
	}

	copy(img.Pix, fb.Color)
	return img
}

// inflate moves every vertex offset units along its normal.
func inflate(buf *mesh.Buffers, offset float32) [][3]float32 {
	out := make([][3]float32, len(buf.Vertices))
	for i, v := range buf.Vertices {
		n := buf.Normals[i]
		out[i] = [3]float32{v[0] + n[0]*offset, v[1] + n[1]*offset, v[2] + n[2]*offset}
	}
	return out
}
