package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lightning-mesh/internal/batch"
	"lightning-mesh/internal/config"
	"lightning-mesh/internal/imageio"
	"lightning-mesh/internal/lightning"
	"lightning-mesh/internal/logx"
	"lightning-mesh/internal/mesh"
	"lightning-mesh/internal/objfile"
	"lightning-mesh/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json, .yaml, .toml)")
	seed := flag.Int64("seed", 0, "Random seed (default: from config)")
	output := flag.String("o", "bolt.webp", "Output image path")
	format := flag.String("format", "", "Image format: webp, tga, png (default: from -o extension)")
	size := flag.Int("size", 0, "Output size in pixels (default: 256)")
	res := flag.Int("res", 0, "Tube ring resolution (default: from config)")
	radius := flag.Float64("radius", 0, "Tube radius (default: from config)")
	ramp := flag.String("ramp", "", "Color ramp name or image path")
	objPath := flag.String("obj", "", "Also export the mesh as Wavefront OBJ")
	vv := flag.Bool("vv", false, "Debug logging")
	v := flag.Bool("v", false, "Verbose logging")
	q := flag.Bool("q", false, "Only log errors")

	flag.Parse()
	logx.Setup(logx.LevelFromFlags(*vv, *v, *q))

	seedSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})

	// Load config
	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	if *format == "" {
		*format = strings.TrimPrefix(filepath.Ext(*output), ".")
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Seed:       *seed,
		SeedSet:    seedSet,
		Format:     *format,
		Size:       *size,
		Resolution: *res,
		Radius:     *radius,
		Ramp:       *ramp,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	imgFormat, _ := imageio.ParseFormat(cfg.Render.Format)

	ramps := texture.NewCache(texture.BuildIndex(cfg.Render.RampDir))

	start := time.Now()
	builder := mesh.NewBuilder(mesh.ImmediateDisposer{})
	out, err := batch.RenderBolt(builder, ramps.Resolve(cfg.Render.Ramp), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := imageio.WriteFile(*output, out.Image, imgFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *output, err)
		os.Exit(1)
	}

	if *objPath != "" {
		if err := writeOBJ(*objPath, out.Mesh); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *objPath, err)
			os.Exit(1)
		}
	}

	s := lightning.Stats(out.Branches)
	fmt.Printf("Seed %d: %d branches, %d points, %d vertices, %d triangles\n",
		cfg.Shape.Seed, s.Branches, s.TotalPoints, out.Mesh.VertexCount(), out.Mesh.TriangleCount())
	fmt.Printf("Wrote %s in %s\n", *output, time.Since(start).Round(time.Millisecond))
}

func writeOBJ(path string, buf *mesh.Buffers) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := objfile.Write(f, buf, name); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
