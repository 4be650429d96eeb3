package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"lightning-mesh/internal/batch"
	"lightning-mesh/internal/config"
	"lightning-mesh/internal/logx"
	"lightning-mesh/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to base config file (.json, .yaml, .toml)")
	jobsFile := flag.String("jobs", "jobs.yaml", "Path to YAML job manifest")
	outputDir := flag.String("output", "", "Output directory (default: from config)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	format := flag.String("format", "", "Image format: webp, tga, png")
	size := flag.Int("size", 0, "Output size in pixels")
	withOBJ := flag.Bool("obj", false, "Also export each mesh as Wavefront OBJ")
	testN := flag.Int("test", 0, "Render only first N jobs for testing")
	vv := flag.Bool("vv", false, "Debug logging")
	v := flag.Bool("v", false, "Verbose logging")
	q := flag.Bool("q", false, "Only log errors")

	flag.Parse()
	logx.Setup(logx.LevelFromFlags(*vv, *v, *q))

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

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir: *outputDir,
		Workers:   *workers,
		Format:    *format,
		Size:      *size,
	})

	jobs, err := batch.LoadJobs(*jobsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading jobs: %v\n", err)
		os.Exit(1)
	}

	// Limit for testing
	if *testN > 0 && *testN < len(jobs) {
		jobs = jobs[:*testN]
	}

	if len(jobs) == 0 {
		fmt.Println("No jobs to render.")
		os.Exit(0)
	}

	rampIndex := texture.BuildIndex(cfg.Render.RampDir)
	fmt.Printf("Ramps: %d indexed\n", rampIndex.Len())
	fmt.Printf("Jobs: %d, Workers: %d\n", len(jobs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := batch.Run(ctx, batch.Config{
		Base:      cfg,
		Ramps:     texture.NewCache(rampIndex),
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
		WriteOBJ:  *withOBJ,
	}, jobs)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	// Count results
	var failed []batch.Result
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	fmt.Printf("Rendered: %d/%d\n", len(results)-len(failed), len(results))

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		for _, r := range failed[:min(len(failed), 20)] {
			fmt.Printf("  %s (seed %d): %s\n", r.Name, r.Seed, r.Error)
		}
		if len(failed) > 20 {
			fmt.Printf("  ... and %d more\n", len(failed)-20)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing manifest: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Manifest: %s\n", manifestPath)
}
