package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func dot(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := size / 2
	img.SetNRGBA(c, c, color.NRGBA{255, 255, 255, 255})
	return img
}

func TestDownsample(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	out := Downsample(img, 16, 16)
	assert.Equal(t, image.Rect(0, 0, 16, 16), out.Bounds())
	c := out.NRGBAAt(8, 8)
	assert.InDelta(t, 200, int(c.R), 2)
	assert.InDelta(t, 200, int(c.A), 2)

	assert.Same(t, out, Downsample(out, 32, 32), "never upsamples")
}

func TestBloomSpreadsLight(t *testing.T) {
	img := dot(9)
	out := Bloom(img, 2, 4)
	assert.Equal(t, uint8(0), img.NRGBAAt(5, 4).A, "source untouched")
	assert.Positive(t, out.NRGBAAt(5, 4).A)
	assert.Positive(t, out.NRGBAAt(6, 4).A)
	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).A, "outside the kernel")
	assert.Equal(t, uint8(255), out.NRGBAAt(4, 4).A)

	assert.Same(t, img, Bloom(img, 0, 1))
}

func TestOverBackground(t *testing.T) {
	img := dot(3)
	out := OverBackground(img, color.NRGBA{10, 20, 30, 255})
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, out.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, out.NRGBAAt(1, 1))
}
