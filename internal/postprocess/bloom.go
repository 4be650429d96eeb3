package postprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Bloom blurs the premultiplied image with a separable box filter of the
// given radius and adds it back scaled by strength. Alpha grows with the
// added light so the halo survives compositing.
func Bloom(img *image.NRGBA, radius int, strength float64) *image.NRGBA {
	if radius <= 0 || strength <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	// premultiplied float planes, 4 channels
	src := make([]float64, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			a := float64(img.Pix[si+3]) / 255
			di := (y*w + x) * 4
			src[di] = float64(img.Pix[si]) * a
			src[di+1] = float64(img.Pix[si+1]) * a
			src[di+2] = float64(img.Pix[si+2]) * a
			src[di+3] = float64(img.Pix[si+3])
		}
	}

	tmp := boxBlur(src, w, h, radius, 1, w)
	blur := boxBlur(tmp, w, h, radius, w, 1)

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		o := i * 4
		for c := 0; c < 4; c++ {
			out.Pix[o+c] = clamp8(src[o+c] + blur[o+c]*strength)
		}
		// premultiplied color may not exceed alpha
		a := out.Pix[o+3]
		for c := 0; c < 3; c++ {
			if out.Pix[o+c] > a {
				out.Pix[o+3] = out.Pix[o+c]
				a = out.Pix[o+3]
			}
		}
	}
	return unpremultiply(out)
}

// boxBlur averages 2r+1 samples along one axis. step is the pixel stride
// along the blurred axis and lineStep the stride between lines.
func boxBlur(src []float64, w, h, r, step, lineStep int) []float64 {
	dst := make([]float64, len(src))
	n, lines := w, h
	if step != 1 {
		n, lines = h, w
	}
	norm := 1 / float64(2*r+1)
	for l := 0; l < lines; l++ {
		start := l * lineStep
		for i := 0; i < n; i++ {
			var acc [4]float64
			for k := -r; k <= r; k++ {
				j := min(max(i+k, 0), n-1)
				si := (start + j*step) * 4
				for c := 0; c < 4; c++ {
					acc[c] += src[si+c]
				}
			}
			di := (start + i*step) * 4
			for c := 0; c < 4; c++ {
				dst[di+c] = acc[c] * norm
			}
		}
	}
	return dst
}

// OverBackground flattens img onto an opaque background color.
func OverBackground(img *image.NRGBA, bg color.Color) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return unpremultiply(dst)
}
