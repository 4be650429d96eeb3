package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/gdamore/tcell/v2"

	"lightning-mesh/internal/config"
	"lightning-mesh/internal/lightning"
	"lightning-mesh/internal/logx"
	"lightning-mesh/internal/mesh"
	"lightning-mesh/internal/termview"
	"lightning-mesh/internal/texture"
)

type preview struct {
	screen   tcell.Screen
	cfg      config.Config
	ramp     *image.NRGBA
	disposer *mesh.DeferredDisposer
	builder  *mesh.Builder

	branches []*lightning.Branch
	status   string
}

func main() {
	configFile := flag.String("config", "", "Path to config file (.json, .yaml, .toml)")
	seed := flag.Int64("seed", 0, "Initial random seed")
	flag.Parse()

	// the terminal belongs to tcell; keep slog quiet
	logx.Setup(logx.LevelFromFlags(false, false, true))

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	seedSet := false
	flag.Visit(func(f *flag.Flag) { seedSet = seedSet || f.Name == "seed" })
	cfg.Resolve(config.Flags{Seed: *seed, SeedSet: seedSet})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	disposer := &mesh.DeferredDisposer{}
	p := &preview{
		screen:   screen,
		cfg:      cfg,
		ramp:     texture.NewCache(texture.BuildIndex(cfg.Render.RampDir)).Resolve(cfg.Render.Ramp),
		disposer: disposer,
		builder:  mesh.NewBuilder(disposer),
	}
	p.regenerate()

	for {
		p.draw()
		if !p.handle(screen.PollEvent()) {
			return
		}
	}
}

// regenerate rebuilds the bolt for the current seed. The builder keeps
// its buffers when the point count happens to match, so it is reset.
func (p *preview) regenerate() {
	gen, err := lightning.New(p.cfg.Shape, p.cfg.Transform)
	if err == nil {
		p.branches, err = gen.GenerateShape(p.cfg.Origin, p.cfg.Impact)
	}
	if err != nil {
		p.branches = nil
		p.status = err.Error()
		return
	}
	p.builder.Reset()
}

func (p *preview) draw() {
	termview.Draw(p.screen, p.branches, p.cfg.Render.Camera, p.ramp)

	status := p.status
	if len(p.branches) > 0 {
		buf, err := p.builder.BuildMesh(p.branches, p.cfg.Mesh.Resolution, p.cfg.Mesh.Radius)
		if err != nil {
			status = err.Error()
		} else {
			s := lightning.Stats(p.branches)
			status = fmt.Sprintf(" seed %d | %d branches %d pts | res %d: %d verts %d tris | allocs %d pending %d | space:reseed arrows:rotate +/-:res p:persp q:quit",
				p.cfg.Shape.Seed, s.Branches, s.TotalPoints, p.cfg.Mesh.Resolution,
				buf.VertexCount(), buf.TriangleCount(), p.builder.Allocations(), p.disposer.Pending())
		}
	}
	termview.DrawStatus(p.screen, status)
	p.screen.Show()

	// the frame is on screen; replaced meshes can go
	p.disposer.Flush()
}

// handle applies one event and reports whether to keep running.
func (p *preview) handle(ev tcell.Event) bool {
	cam := &p.cfg.Render.Camera
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			cam.Yaw -= 15
		case tcell.KeyRight:
			cam.Yaw += 15
		case tcell.KeyUp:
			cam.Pitch -= 15
		case tcell.KeyDown:
			cam.Pitch += 15
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				p.cfg.Shape.Seed++
				p.status = ""
				p.regenerate()
			case '+', '=':
				p.cfg.Mesh.Resolution++
			case '-':
				p.cfg.Mesh.Resolution = max(p.cfg.Mesh.Resolution-1, mesh.MinResolution)
			case 'p':
				cam.Perspective = !cam.Perspective
			}
		}
	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}
