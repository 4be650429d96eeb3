package raster

import (
	"math"

	"lightning-mesh/internal/mathutil"
)

// LightConfig holds precomputed shading parameters. Lightning is mostly
// self-lit, so Emission dominates and the directional terms only add
// a little relief to the tube.
type LightConfig struct {
	LightDir mathutil.Vec3
	RimDir   mathutil.Vec3
	Emission float64
	Direct   float64
	Rim      float64
	Exposure float64
	InvGamma float64

	// GlowGain scales the additive halo pass.
	GlowGain float64
}

// DefaultLightConfig returns the standard bolt shading.
func DefaultLightConfig() LightConfig {
	return LightConfig{
		LightDir: mathutil.Vec3{180, 260, 140}.Normalize(),
		RimDir:   mathutil.Vec3{-160, 130, -210}.Normalize(),
		Emission: 1.6,
		Direct:   0.35,
		Rim:      0.25,
		Exposure: 1.1,
		InvGamma: 1.0 / 2.2,
		GlowGain: 0.35,
	}
}

// ComputeShade returns the combined lighting scalar for a face normal.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	// abs for double-sided
	ndlMain := math.Abs(normal.Dot(lc.LightDir))
	ndlRim := math.Abs(normal.Dot(lc.RimDir))
	return lc.Emission + ndlMain*lc.Direct + ndlRim*lc.Rim
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// tonemap shades an sRGB texel and returns the display value in [0,255].
func (lc *LightConfig) tonemap(c uint8, shade float64) float64 {
	v := ACESTonemap(srgbToLinear[c] * shade * lc.Exposure)
	return math.Pow(math.Max(v, 0), lc.InvGamma) * 255
}
