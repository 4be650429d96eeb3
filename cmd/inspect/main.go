package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"lightning-mesh/internal/config"
	"lightning-mesh/internal/lightning"
	"lightning-mesh/internal/logx"
	"lightning-mesh/internal/mesh"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (.json, .yaml, .toml)")
	seed := flag.Int64("seed", 0, "Random seed (default: from config)")
	trace := flag.Bool("trace", false, "Print every subdivision pass")
	vv := flag.Bool("vv", false, "Debug logging")
	flag.Parse()
	logx.Setup(logx.LevelFromFlags(*vv, false, false))

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	seedSet := false
	flag.Visit(func(f *flag.Flag) { seedSet = seedSet || f.Name == "seed" })
	cfg.Resolve(config.Flags{Seed: *seed, SeedSet: seedSet})
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	gen, err := lightning.New(cfg.Shape, cfg.Transform)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if *trace {
		gen.Trace = func(e lightning.GenerationEvent) {
			fmt.Printf("  pass: branch=%d gen=%d points=%d branches=%d\n", e.Branch, e.Generation, e.Points, e.Branches)
		}
	}

	branches, err := gen.GenerateShape(cfg.Origin, cfg.Impact)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	s := lightning.Stats(branches)
	fmt.Printf("Seed %d: %d branches, %d points, %d segments, length %.2f\n",
		cfg.Shape.Seed, s.Branches, s.TotalPoints, s.TotalSegments, s.Length)

	// Tree: children listed under their parent
	children := map[int][]int{}
	for i, b := range branches {
		children[b.Parent] = append(children[b.Parent], i)
	}
	var walk func(i, depth int)
	walk = func(i, depth int) {
		b := branches[i]
		fmt.Printf("%s[%d] gen=%d spawn=%d points=%d intensity=%.3f width=%.3f length=%.2f\n",
			strings.Repeat("  ", depth), i, b.CreationGeneration, b.SpawnPointIndex,
			len(b.Points), b.Intensity, b.Width, b.Length())
		for _, c := range children[i] {
			walk(c, depth+1)
		}
	}
	for _, root := range children[-1] {
		walk(root, 0)
	}

	builder := mesh.NewBuilder(nil)
	buf, err := builder.BuildMesh(branches, cfg.Mesh.Resolution, cfg.Mesh.Radius)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Mesh: resolution=%d radius=%g vertices=%d triangles=%d indices=%d\n",
		cfg.Mesh.Resolution, cfg.Mesh.Radius, buf.VertexCount(), buf.TriangleCount(), len(buf.Indices))
}
