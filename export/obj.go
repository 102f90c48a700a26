// Package export writes populated height fields to mesh, raster and
// tabular formats.
package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pthm-cable/relief/terrain"
)

// MeshOptions selects the optional per-vertex records of an OBJ mesh.
type MeshOptions struct {
	Normals bool // vn records
	Texels  bool // vt records
}

// WriteOBJ writes f as a Wavefront OBJ mesh: size² vertices in row-major
// order, optional texel and normal records in the same order, and two
// triangles per grid quad using 1-based indices i*size+j+1.
func WriteOBJ(w io.Writer, f *terrain.HeightField, opts MeshOptions) error {
	bw := bufio.NewWriter(w)
	size := f.Size()

	f.EachCell(func(i, j int) {
		p := f.Position(i, j)
		fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
	})
	if opts.Texels {
		f.EachCell(func(i, j int) {
			t := f.Texel(i, j)
			fmt.Fprintf(bw, "vt %g %g\n", t.X, t.Y)
		})
	}
	if opts.Normals {
		f.EachCell(func(i, j int) {
			n := f.Normal(i, j)
			fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
		})
	}

	for i := 1; i < size; i++ {
		for j := 1; j < size; j++ {
			self := i*size + j + 1
			upLeft := (i-1)*size + j
			up := (i-1)*size + j + 1
			left := i*size + j

			writeFace(bw, opts, self, upLeft, up)
			writeFace(bw, opts, self, upLeft, left)
		}
	}

	// bufio keeps the first write error and returns it here.
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing mesh: %w", err)
	}
	return nil
}

func writeFace(w io.Writer, opts MeshOptions, a, b, c int) {
	fmt.Fprintf(w, "f %s %s %s\n", faceVertex(opts, a), faceVertex(opts, b), faceVertex(opts, c))
}

// faceVertex formats one face corner; vertex, texel and normal share an index.
func faceVertex(opts MeshOptions, idx int) string {
	switch {
	case opts.Texels && opts.Normals:
		return fmt.Sprintf("%d/%d/%d", idx, idx, idx)
	case opts.Normals:
		return fmt.Sprintf("%d//%d", idx, idx)
	case opts.Texels:
		return fmt.Sprintf("%d/%d", idx, idx)
	default:
		return fmt.Sprintf("%d", idx)
	}
}
