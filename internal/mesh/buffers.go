package mesh

// Buffers is an indexed triangle mesh. Vertices, Normals and UVs are
// parallel arrays; Indices holds three entries per triangle.
type Buffers struct {
	Vertices [][3]float32
	Normals  [][3]float32

	// UVs carry the branch intensity in u and the normalized distance
	// along the branch in v.
	UVs [][2]float32

	Indices []uint32
}

func newBuffers(numVertex, numTriangle int) *Buffers {
	return &Buffers{
		Vertices: make([][3]float32, numVertex),
		Normals:  make([][3]float32, numVertex),
		UVs:      make([][2]float32, numVertex),
		Indices:  make([]uint32, 3*numTriangle),
	}
}

func (b *Buffers) VertexCount() int {
	return len(b.Vertices)
}

func (b *Buffers) TriangleCount() int {
	return len(b.Indices) / 3
}

// Triangle returns the vertex indices of triangle i.
func (b *Buffers) Triangle(i int) [3]int {
	return [3]int{int(b.Indices[3*i]), int(b.Indices[3*i+1]), int(b.Indices[3*i+2])}
}

// release drops every slice so the backing arrays can be collected.
func (b *Buffers) release() {
	b.Vertices = nil
	b.Normals = nil
	b.UVs = nil
	b.Indices = nil
}
