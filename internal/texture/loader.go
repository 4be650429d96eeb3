package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
)

// LoadRamp decodes a PNG, JPEG or TGA color ramp. The left edge is the
// color for intensity 0, the right edge for intensity 1.
func LoadRamp(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

// DefaultRamp is a procedural 256×1 ramp from dim violet through electric
// blue to white.
func DefaultRamp() *image.NRGBA {
	stops := []struct {
		at float64
		c  color.NRGBA
	}{
		{0, color.NRGBA{60, 30, 120, 255}},
		{0.45, color.NRGBA{90, 140, 255, 255}},
		{0.8, color.NRGBA{190, 220, 255, 255}},
		{1, color.NRGBA{255, 255, 255, 255}},
	}

	const w = 256
	img := image.NewNRGBA(image.Rect(0, 0, w, 1))
	for x := 0; x < w; x++ {
		t := float64(x) / (w - 1)
		i := 1
		for i < len(stops)-1 && stops[i].at < t {
			i++
		}
		a, b := stops[i-1], stops[i]
		f := (t - a.at) / (b.at - a.at)
		img.SetNRGBA(x, 0, color.NRGBA{
			R: lerp8(a.c.R, b.c.R, f),
			G: lerp8(a.c.G, b.c.G, f),
			B: lerp8(a.c.B, b.c.B, f),
			A: 255,
		})
	}
	return img
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// No alpha: draw and set alpha to 255
		draw.Draw(dst, b, src, b.Min, draw.Src)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.Pix[dst.PixOffset(x, y)+3] = 255
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.SetNRGBA(x, y, color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA))
			}
		}
	}
	return dst
}
