package lightning

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"lightning-mesh/internal/mathutil"
)

// Space converts world coordinates into the bolt owner's local space.
// mathutil.Transform implements it.
type Space interface {
	WorldToLocal(p mathutil.Vec3) mathutil.Vec3
}

// GenerationEvent describes one finished subdivision pass over one branch.
type GenerationEvent struct {
	Branch     int
	Generation int
	Points     int
	Branches   int // total branches after the pass
}

// Generator builds branch trees. It is not safe for concurrent use.
type Generator struct {
	cfg   Config
	space Space

	// Trace, when set, is called after every (branch, generation) pass.
	Trace func(GenerationEvent)

	rnd      *rand.Rand
	branches []*Branch
}

// New validates cfg and returns a generator working in space.
// A nil space means world and local coordinates coincide.
func New(cfg Config, space Space) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if space == nil {
		space = mathutil.Identity
	}
	return &Generator{cfg: cfg, space: space}, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// GenerateShape builds the bolt from origin to impact (world space).
// Output is a pure function of the inputs and the configuration: the random
// source is reseeded from Config.Seed on every call.
func (g *Generator) GenerateShape(origin, impact mathutil.Vec3) ([]*Branch, error) {
	o := g.space.WorldToLocal(origin)
	i := g.space.WorldToLocal(impact)
	if o.Sub(i).Len() < 1e-9 {
		return nil, fmt.Errorf("lightning: origin %v, impact %v: %w", origin, impact, ErrDegenerateBolt)
	}

	g.rnd = rand.New(rand.NewSource(g.cfg.Seed))
	g.branches = []*Branch{mainBranch(o, i)}

	// The slice grows while it is walked; branches appended by an earlier
	// branch are processed later in the same loop.
	for bi := 0; bi < len(g.branches); bi++ {
		g.grow(bi)
	}

	out := g.branches
	g.branches = nil
	g.rnd = nil

	slog.Debug("lightning: shape generated", "seed", g.cfg.Seed, "branches", len(out))
	return out, nil
}

func mainBranch(origin, impact mathutil.Vec3) *Branch {
	forward := impact.Sub(origin)
	return &Branch{
		Points: []Point{
			newPoint(origin, forward),
			newPoint(impact, forward),
		},
		Intensity: 1,
		Width:     1,
		Parent:    -1,
	}
}

// grow runs every remaining generation on branch bi.
func (g *Generator) grow(bi int) {
	b := g.branches[bi]
	first := b.CreationGeneration
	if b.IsMain() {
		// endpoints already exist, generation 0 has nothing to do
		first = 1
	}

	for gen := first; gen <= g.cfg.MaxGenerations; gen++ {
		start := 0
		if gen == first {
			start = b.SpawnPointIndex
		}
		g.subdivide(bi, gen, start)

		if g.Trace != nil {
			g.Trace(GenerationEvent{
				Branch:     bi,
				Generation: gen,
				Points:     len(b.Points),
				Branches:   len(g.branches),
			})
		}
	}
}

// subdivide inserts a displaced midpoint into every segment of branch bi
// from start onward, possibly spawning children along the way.
func (g *Generator) subdivide(bi, gen, start int) {
	b := g.branches[bi]
	step := float64(gen - 1)
	bound := g.cfg.MaxMiddlePointDisplacement * math.Pow(g.cfg.DisplacementDecreaseMultiplierByGeneration, step)
	chance := g.cfg.NewBranchBirthChance * math.Pow(g.cfg.BirthChanceMultiplierByGeneration, step)

	for j := start; j < len(b.Points)-1; j++ {
		cur := &b.Points[j]
		if !cur.Subdividable {
			continue
		}
		next := b.Points[j+1]

		// the midpoint has no axes yet, so displace along the current point's
		mid := cur.Position.Lerp(next.Position, 0.5).
			Add(cur.Right.Scale(g.uniform(bound))).
			Add(cur.Up.Scale(g.uniform(bound)))

		b.Points = append(b.Points, Point{})
		copy(b.Points[j+2:], b.Points[j+1:])
		b.Points[j+1] = newPoint(mid, next.Position.Sub(mid))
		b.Points[j].face(mid.Sub(b.Points[j].Position))
		j++

		if gen == g.cfg.MaxGenerations || len(g.branches) >= g.cfg.MaxBranchesCount {
			continue
		}
		if r := g.rnd.Float64(); chance > 0 && r <= chance {
			g.spawn(bi, gen, j+1)
		}
	}
}

// spawn appends a child of branch bi diverging at index at.
func (g *Generator) spawn(bi, gen, at int) {
	parent := g.branches[bi]
	pts := make([]Point, len(parent.Points))
	copy(pts, parent.Points)

	g.branches = append(g.branches, &Branch{
		Points:             pts,
		Intensity:          parent.Intensity * g.cfg.NewBranchIntensityDecreaseMultiplier,
		Width:              parent.Width * g.cfg.NewBranchWidthDecreaseMultiplier,
		CreationGeneration: gen,
		SpawnPointIndex:    at,
		Parent:             bi,
	})
}

// uniform draws from [-bound, bound).
func (g *Generator) uniform(bound float64) float64 {
	return (g.rnd.Float64()*2 - 1) * bound
}
