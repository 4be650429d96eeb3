package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightning-mesh/internal/lightning"
	"lightning-mesh/internal/mathutil"
	"lightning-mesh/internal/mesh"
)

func solidRamp(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, c)
	img.SetNRGBA(1, 0, c)
	return img
}

func boltBuffers(t *testing.T) *mesh.Buffers {
	t.Helper()
	cfg := lightning.DefaultConfig()
	cfg.Seed = 7
	g, err := lightning.New(cfg, nil)
	require.NoError(t, err)
	branches, err := g.GenerateShape(mathutil.Vec3{0, 10, 0}, mathutil.Vec3{0, 0, 0})
	require.NoError(t, err)
	buf, err := mesh.NewBuilder(nil).BuildMesh(branches, 6, 0.15)
	require.NoError(t, err)
	return buf
}

func TestSampleRampClampsU(t *testing.T) {
	ramp := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	ramp.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	ramp.SetNRGBA(1, 0, color.NRGBA{200, 100, 50, 255})

	r, g, b, a := SampleRamp(ramp, 1, 0)
	assert.Equal(t, [4]uint8{200, 100, 50, 255}, [4]uint8{r, g, b, a})
	r, _, _, _ = SampleRamp(ramp, 1.7, 0)
	assert.Equal(t, uint8(200), r, "u is clamped, not wrapped")
	r, _, _, _ = SampleRamp(ramp, -3, 0)
	assert.Equal(t, uint8(0), r)
	r, _, _, _ = SampleRamp(ramp, 0.5, 0)
	assert.Equal(t, uint8(100), r)
}

func TestRasterizeDepth(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	lc := DefaultLightConfig()
	px := []float64{0, 8, 0}
	py := []float64{0, 0, 8}
	uvs := [][2]float32{{1, 0}, {1, 0}, {1, 0}}

	red := solidRamp(color.NRGBA{255, 0, 0, 255})
	blue := solidRamp(color.NRGBA{0, 0, 255, 255})

	RasterizeTriangle(fb, px, py, []float64{1, 1, 1}, uvs, [3]int{0, 1, 2}, red, &lc, Opaque)
	// farther triangle must not overwrite
	RasterizeTriangle(fb, px, py, []float64{0, 0, 0}, uvs, [3]int{0, 1, 2}, blue, &lc, Opaque)

	i := (1*8 + 1) * 4
	assert.Greater(t, fb.Color[i], uint8(0))
	assert.Equal(t, uint8(0), fb.Color[i+2])
	assert.Equal(t, uint8(255), fb.Color[i+3])

	// out of range indices are ignored
	RasterizeTriangle(fb, px, py, []float64{5, 5, 5}, uvs, [3]int{0, 1, 9}, blue, &lc, Opaque)
	assert.Equal(t, uint8(0), fb.Color[i+2])
}

func TestRasterizeAdditive(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	lc := DefaultLightConfig()
	px := []float64{0, 8, 0}
	py := []float64{0, 0, 8}
	pz := []float64{0, 0, 0}
	uvs := [][2]float32{{1, 0}, {1, 0}, {1, 0}}
	ramp := solidRamp(color.NRGBA{100, 100, 100, 255})

	RasterizeTriangle(fb, px, py, pz, uvs, [3]int{0, 1, 2}, ramp, &lc, Additive)
	once := fb.Color[(8+1)*4]
	RasterizeTriangle(fb, px, py, pz, uvs, [3]int{0, 1, 2}, ramp, &lc, Additive)
	assert.Greater(t, fb.Color[(8+1)*4], once)
}

func TestRenderMesh(t *testing.T) {
	buf := boltBuffers(t)
	ramp := solidRamp(color.NRGBA{180, 200, 255, 255})

	img := RenderMesh(buf, ramp, Options{Size: 64, Supersample: 2})
	assert.Equal(t, 128, img.Bounds().Dx())

	lit := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			lit++
		}
	}
	assert.Positive(t, lit)

	glow := RenderMesh(buf, ramp, Options{Size: 64, Supersample: 2, Glow: true})
	glowLit := 0
	for i := 3; i < len(glow.Pix); i += 4 {
		if glow.Pix[i] > 0 {
			glowLit++
		}
	}
	assert.Greater(t, glowLit, lit, "halo covers more pixels")
}

func TestRenderEmpty(t *testing.T) {
	img := RenderMesh(nil, nil, Options{Size: 16})
	assert.Equal(t, 16, img.Bounds().Dx())
	for _, p := range img.Pix {
		assert.Equal(t, uint8(0), p)
	}
}

func TestCoverage(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	fb.Color[3] = 255
	assert.InDelta(t, 0.25, fb.Coverage(), 1e-12)
}
