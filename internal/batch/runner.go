package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"lightning-mesh/internal/config"
	"lightning-mesh/internal/imageio"
	"lightning-mesh/internal/lightning"
	"lightning-mesh/internal/mesh"
	"lightning-mesh/internal/objfile"
	"lightning-mesh/internal/texture"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Base      config.Config
	Ramps     texture.Resolver
	OutputDir string
	Workers   int

	// WriteOBJ also exports each mesh next to its image.
	WriteOBJ bool

	// ProgressEvery is the progress log interval; zero means 2s.
	ProgressEvery time.Duration
}

// Result holds the outcome of one job.
type Result struct {
	Name      string
	Seed      int64
	Image     string
	OBJ       string
	Summary   lightning.Summary
	Vertices  int
	Triangles int
	Success   bool
	Error     string
}

// Run renders all jobs on a worker pool. Every worker owns its own mesh
// builder. Jobs not started before ctx is cancelled fail with the
// context error.
func Run(ctx context.Context, cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := max(cfg.Workers, 1)
	every := cfg.ProgressEvery
	if every <= 0 {
		every = 2 * time.Second
	}
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					slog.Info("batch: progress", "done", p, "total", total, "rate", fmt.Sprintf("%.1f/s", rate))
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			builder := mesh.NewBuilder(mesh.ImmediateDisposer{})
			for idx := range jobChan {
				if err := ctx.Err(); err != nil {
					results[idx] = Result{Name: jobs[idx].Name, Seed: jobs[idx].Seed, Error: err.Error()}
				} else {
					results[idx] = processJob(builder, cfg, jobs[idx])
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	slog.Info("batch: finished", "jobs", total, "elapsed", time.Since(start).Round(time.Millisecond))
	return results
}

func processJob(builder *mesh.Builder, cfg Config, job Job) Result {
	res := Result{Name: job.Name, Seed: job.Seed}
	fail := func(err error) Result {
		slog.Warn("batch: job failed", "job", job.Name, "err", err)
		res.Error = err.Error()
		return res
	}

	bolt, err := job.Apply(cfg.Base)
	if err != nil {
		return fail(err)
	}
	if err := bolt.Validate(); err != nil {
		return fail(err)
	}
	format, err := imageio.ParseFormat(bolt.Render.Format)
	if err != nil {
		return fail(err)
	}

	ramp := texture.DefaultRamp()
	if cfg.Ramps != nil {
		ramp = cfg.Ramps.Resolve(bolt.Render.Ramp)
	}

	out, err := RenderBolt(builder, ramp, bolt)
	if err != nil {
		return fail(err)
	}

	imageName := job.Name + "." + string(format)
	if err := imageio.WriteFile(filepath.Join(cfg.OutputDir, imageName), out.Image, format); err != nil {
		return fail(err)
	}
	res.Image = imageName
	if cfg.WriteOBJ {
		objName := job.Name + ".obj"
		if err := writeOBJ(filepath.Join(cfg.OutputDir, objName), out, job.Name); err != nil {
			return fail(err)
		}
		res.OBJ = objName
	}

	res.Summary = lightning.Stats(out.Branches)
	res.Vertices = out.Mesh.VertexCount()
	res.Triangles = out.Mesh.TriangleCount()
	res.Success = true
	slog.Debug("batch: job done", "job", job.Name, "branches", res.Summary.Branches, "triangles", res.Triangles)
	return res
}

func writeOBJ(path string, out *Output, name string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := objfile.Write(f, out.Mesh, name); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
