package objfile

import (
	"bufio"
	"fmt"
	"io"

	"lightning-mesh/internal/mesh"
)

// Write exports buffers as a Wavefront OBJ object. Every vertex carries its
// own texture coordinate and normal, so faces use v/vt/vn triples with the
// same 1-based index.
func Write(w io.Writer, buf *mesh.Buffers, name string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %d vertices, %d triangles\n", buf.VertexCount(), buf.TriangleCount())
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for _, v := range buf.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v[0], v[1], v[2])
	}
	for _, uv := range buf.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv[0], uv[1])
	}
	for _, n := range buf.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}
	for i := 0; i < buf.TriangleCount(); i++ {
		t := buf.Triangle(i)
		a, b, c := t[0]+1, t[1]+1, t[2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("objfile: write %s: %w", name, err)
	}
	return nil
}
