package mesh

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/chewxy/math32"

	"lightning-mesh/internal/lightning"
)

// MinResolution is the smallest ring that still encloses a volume.
const MinResolution = 3

var (
	ErrInvalidResolution = errors.New("resolution below minimum")
	ErrInvalidRadius     = errors.New("radius must be positive")
	ErrNoBranches        = errors.New("no branches")
	ErrShortBranch       = errors.New("branch has fewer than 2 points")
)

// Builder turns branch polylines into a tube mesh and keeps the result
// between calls. Only one goroutine may use a Builder at a time.
type Builder struct {
	disposer Disposer

	buf        *Buffers
	points     int
	resolution int
	allocs     int

	// unit circle samples for the current resolution
	cos, sin []float32
}

// NewBuilder returns a builder that hands replaced buffers to disposer.
// A nil disposer leaves old buffers to the garbage collector.
func NewBuilder(disposer Disposer) *Builder {
	return &Builder{disposer: disposer}
}

// Allocations counts how many times fresh buffers were allocated.
func (mb *Builder) Allocations() int {
	return mb.allocs
}

// Buffers returns the current mesh, nil before the first build.
func (mb *Builder) Buffers() *Buffers {
	return mb.buf
}

// Reset disposes the current mesh and forgets the cached topology.
func (mb *Builder) Reset() {
	mb.dispose()
	mb.points, mb.resolution = 0, 0
}

// BuildMesh tessellates every branch into a tube of the given resolution
// and radius; each branch's radius is further scaled by its Width.
//
// When the total point count and resolution match the previous build the
// previous buffers are returned untouched, even if point positions or the
// radius changed since. Callers that need fresh geometry in that case call
// Reset first.
func (mb *Builder) BuildMesh(branches []*lightning.Branch, resolution int, radius float32) (*Buffers, error) {
	if resolution < MinResolution {
		return nil, fmt.Errorf("mesh: resolution %d: %w", resolution, ErrInvalidResolution)
	}
	if !(radius > 0) {
		return nil, fmt.Errorf("mesh: radius %g: %w", radius, ErrInvalidRadius)
	}
	if len(branches) == 0 {
		return nil, fmt.Errorf("mesh: %w", ErrNoBranches)
	}

	totalPoints, totalSegments := 0, 0
	for i, b := range branches {
		if len(b.Points) < 2 {
			return nil, fmt.Errorf("mesh: branch %d has %d points: %w", i, len(b.Points), ErrShortBranch)
		}
		totalPoints += len(b.Points)
		totalSegments += len(b.Points) - 1
	}

	if mb.buf != nil && totalPoints == mb.points && resolution == mb.resolution {
		return mb.buf, nil
	}

	mb.dispose()
	if resolution != mb.resolution {
		mb.ring(resolution)
	}
	mb.buf = newBuffers(resolution*totalPoints, 2*resolution*totalSegments)
	mb.points, mb.resolution = totalPoints, resolution
	mb.allocs++

	vtx, idx := 0, 0
	for _, b := range branches {
		vtx, idx = mb.tube(b, radius*float32(b.Width), vtx, idx)
	}

	slog.Debug("mesh: rebuilt", "points", totalPoints, "resolution", resolution,
		"vertices", mb.buf.VertexCount(), "triangles", mb.buf.TriangleCount())
	return mb.buf, nil
}

func (mb *Builder) dispose() {
	if mb.buf != nil && mb.disposer != nil {
		mb.disposer.Dispose(mb.buf)
	}
	mb.buf = nil
}

// ring samples resolution evenly spaced angles around the circle.
func (mb *Builder) ring(resolution int) {
	mb.cos = make([]float32, resolution)
	mb.sin = make([]float32, resolution)
	step := float32(2*math.Pi) / float32(resolution)
	for k := 0; k < resolution; k++ {
		mb.cos[k] = math32.Cos(step * float32(k))
		mb.sin[k] = math32.Sin(step * float32(k))
	}
}

// tube writes one branch starting at vertex vtx and index idx and returns
// the offsets just past what it wrote.
func (mb *Builder) tube(b *lightning.Branch, radius float32, vtx, idx int) (int, int) {
	res := mb.resolution
	buf := mb.buf
	base := vtx

	length := float32(b.Length())
	var travelled float32
	intensity := float32(b.Intensity)

	for pi, p := range b.Points {
		if pi > 0 {
			travelled += float32(p.Position.Sub(b.Points[pi-1].Position).Len())
		}
		v := float32(0)
		if length > 0 {
			v = travelled / length
		}

		c := p.Position.Float32()
		r := p.Right.Float32()
		u := p.Up.Float32()
		for k := 0; k < res; k++ {
			var n [3]float32
			for a := 0; a < 3; a++ {
				n[a] = mb.cos[k]*r[a] + mb.sin[k]*u[a]
			}
			buf.Vertices[vtx] = [3]float32{c[0] + radius*n[0], c[1] + radius*n[1], c[2] + radius*n[2]}
			buf.Normals[vtx] = n
			buf.UVs[vtx] = [2]float32{intensity, v}
			vtx++
		}
	}

	// two triangles per side quad between consecutive rings
	for s := 0; s < len(b.Points)-1; s++ {
		ring0 := base + s*res
		ring1 := ring0 + res
		for k := 0; k < res; k++ {
			k1 := (k + 1) % res
			a, bb := uint32(ring0+k), uint32(ring0+k1)
			c, d := uint32(ring1+k), uint32(ring1+k1)
			copy(buf.Indices[idx:], []uint32{a, c, bb, bb, c, d})
			idx += 6
		}
	}
	return vtx, idx
}
