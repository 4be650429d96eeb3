package lightning

import "lightning-mesh/internal/mathutil"

// Point is one node of a branch polyline with its local orientation.
// Forward, Right and Up are mutually orthogonal unit vectors.
type Point struct {
	Position mathutil.Vec3
	Forward  mathutil.Vec3
	Right    mathutil.Vec3
	Up       mathutil.Vec3

	// Subdividable marks whether the segment starting at this point may be
	// split by later generations.
	Subdividable bool
}

// newPoint creates a subdividable point with the basis derived from forward.
func newPoint(pos, forward mathutil.Vec3) Point {
	p := Point{Position: pos, Subdividable: true}
	p.face(forward)
	return p
}

// face re-orients the point so Forward points along dir.
func (p *Point) face(dir mathutil.Vec3) {
	p.Forward = dir.Normalize()
	p.Right, p.Up = mathutil.Basis(p.Forward)
}

// Branch is one polyline of the bolt plus the metadata it inherited at spawn.
type Branch struct {
	// Points is owned by this branch; children receive deep copies.
	Points []Point

	Intensity float64 // [0,1]
	Width     float64 // [0,1]

	// CreationGeneration is the generation during which the branch spawned.
	// The main branch has 0.
	CreationGeneration int

	// SpawnPointIndex is where the branch diverges from its parent's copied points.
	SpawnPointIndex int

	// Parent is the index of the spawning branch, -1 for the main branch.
	Parent int
}

// IsMain reports whether b is the root branch of the bolt.
func (b *Branch) IsMain() bool {
	return b.Parent < 0
}

// Segments returns the number of consecutive point pairs.
func (b *Branch) Segments() int {
	if len(b.Points) < 2 {
		return 0
	}
	return len(b.Points) - 1
}

// Length returns the polyline length.
func (b *Branch) Length() float64 {
	var l float64
	for i := 1; i < len(b.Points); i++ {
		l += b.Points[i].Position.Sub(b.Points[i-1].Position).Len()
	}
	return l
}

// Summary aggregates a generated bolt for logs and inspection tools.
type Summary struct {
	Branches      int
	TotalPoints   int
	TotalSegments int
	MaxGeneration int
	Length        float64
}

// Stats summarizes a branch list.
func Stats(branches []*Branch) Summary {
	var s Summary
	s.Branches = len(branches)
	for _, b := range branches {
		s.TotalPoints += len(b.Points)
		s.TotalSegments += b.Segments()
		s.Length += b.Length()
		if b.CreationGeneration > s.MaxGeneration {
			s.MaxGeneration = b.CreationGeneration
		}
	}
	return s
}
