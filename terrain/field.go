// Package terrain synthesizes square height fields and derives their
// surface attributes (normals and texture coordinates).
package terrain

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Scale holds the world-space extents of a field.
// X and Y are half-widths of the grid, Z scales vertical displacement.
type Scale struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// HeightField is a size×size grid of positions with parallel normal and
// texel grids. All three grids are stored row-major, so cell (i, j) lives
// at index i*size+j in each of them.
type HeightField struct {
	size  int
	scale Scale

	positions []r3.Vec
	normals   []r3.Vec
	texels    []r2.Vec

	// strategy names the synthesizer that wrote the Z channel.
	strategy string
}

// New allocates a zeroed height field.
// The edge length must be at least 2 so the grid has a spacing.
func New(size int, scale Scale) (*HeightField, error) {
	if size < 2 {
		return nil, &ParamError{
			Param:      "size",
			Value:      size,
			Constraint: "must be at least 2",
			Err:        ErrInvalidDimension,
		}
	}
	n := size * size
	return &HeightField{
		size:      size,
		scale:     scale,
		positions: make([]r3.Vec, n),
		normals:   make([]r3.Vec, n),
		texels:    make([]r2.Vec, n),
	}, nil
}

// Size returns the edge length of the grid.
func (f *HeightField) Size() int { return f.size }

// Scale returns the world-space scale triple.
func (f *HeightField) Scale() Scale { return f.scale }

// Strategy returns the name of the synthesizer that populated the heights,
// or "" if no synthesizer has run yet.
func (f *HeightField) Strategy() string { return f.strategy }

func (f *HeightField) index(i, j int) int { return i*f.size + j }

// Position returns the 3D position of cell (i, j).
func (f *HeightField) Position(i, j int) r3.Vec { return f.positions[f.index(i, j)] }

// Height returns the Z component of cell (i, j).
func (f *HeightField) Height(i, j int) float64 { return f.positions[f.index(i, j)].Z }

// Normal returns the unit normal of cell (i, j).
func (f *HeightField) Normal(i, j int) r3.Vec { return f.normals[f.index(i, j)] }

// Texel returns the texture coordinate of cell (i, j).
func (f *HeightField) Texel(i, j int) r2.Vec { return f.texels[f.index(i, j)] }

// Heights returns a row-major copy of the Z channel.
func (f *HeightField) Heights() []float64 {
	out := make([]float64, len(f.positions))
	for k, p := range f.positions {
		out[k] = p.Z
	}
	return out
}

func (f *HeightField) setHeight(i, j int, h float64) {
	f.positions[f.index(i, j)].Z = h
}

// EachCell calls fn for every cell in row-major order.
func (f *HeightField) EachCell(fn func(i, j int)) {
	for i := 0; i < f.size; i++ {
		for j := 0; j < f.size; j++ {
			fn(i, j)
		}
	}
}
