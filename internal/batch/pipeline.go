package batch

import (
	"image"

	"lightning-mesh/internal/config"
	"lightning-mesh/internal/lightning"
	"lightning-mesh/internal/mesh"
	"lightning-mesh/internal/postprocess"
	"lightning-mesh/internal/raster"
)

// Output is one generated, tessellated and rendered bolt.
type Output struct {
	Branches []*lightning.Branch
	Mesh     *mesh.Buffers
	Image    *image.NRGBA
}

// RenderBolt runs the full pipeline for cfg using builder for the mesh.
// The builder is Reset first so a bolt with the same point count as the
// previous one still gets fresh geometry.
func RenderBolt(builder *mesh.Builder, ramp *image.NRGBA, cfg config.Config) (*Output, error) {
	gen, err := lightning.New(cfg.Shape, cfg.Transform)
	if err != nil {
		return nil, err
	}
	branches, err := gen.GenerateShape(cfg.Origin, cfg.Impact)
	if err != nil {
		return nil, err
	}

	builder.Reset()
	buf, err := builder.BuildMesh(branches, cfg.Mesh.Resolution, cfg.Mesh.Radius)
	if err != nil {
		return nil, err
	}

	r := cfg.Render
	img := raster.RenderMesh(buf, ramp, raster.Options{
		Size:        r.Size,
		Supersample: r.Supersample,
		Camera:      r.Camera,
		Glow:        r.Glow,
		GlowPixels:  r.GlowPixels,
	})

	// Post-processing: supersample downsample
	if r.Supersample > 1 {
		img = postprocess.Downsample(img, r.Size, r.Size)
	}
	if r.Glow {
		img = postprocess.Bloom(img, r.BloomRadius, r.BloomStrength)
	}

	return &Output{Branches: branches, Mesh: buf, Image: img}, nil
}
