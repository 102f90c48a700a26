package terrain

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// DeriveNormals estimates a unit surface normal for every cell from height
// differences: central inside the grid, one-sided on the border.
func DeriveNormals(f *HeightField) error {
	if err := checkPlanarScale(f.scale); err != nil {
		return err
	}

	size := float64(f.size)
	scalingX := -f.scale.Z / f.scale.X * size
	scalingY := -f.scale.Z / f.scale.Y * size

	// The z component is always 1, so the vector cannot be zero here.
	f.EachCell(func(i, j int) {
		dx, dy := f.gradient(i, j)
		n := r3.Vec{X: dx * scalingX, Y: dy * scalingY, Z: 1}
		f.normals[f.index(i, j)] = r3.Unit(n)
	})
	return nil
}

// checkPlanarScale rejects zero horizontal scales, which normal derivation
// divides by.
func checkPlanarScale(s Scale) error {
	if s.X == 0 {
		return &ParamError{Param: "scale.x", Value: s.X, Constraint: "must be non-zero", Err: ErrDegenerateScale}
	}
	if s.Y == 0 {
		return &ParamError{Param: "scale.y", Value: s.Y, Constraint: "must be non-zero", Err: ErrDegenerateScale}
	}
	return nil
}

// gradient returns the height derivatives along i and j at cell (i, j).
func (f *HeightField) gradient(i, j int) (dx, dy float64) {
	last := f.size - 1
	switch i {
	case 0:
		dx = f.Height(i+1, j) - f.Height(i, j)
	case last:
		dx = f.Height(i, j) - f.Height(i-1, j)
	default:
		dx = (f.Height(i+1, j) - f.Height(i-1, j)) / 2
	}
	switch j {
	case 0:
		dy = f.Height(i, j+1) - f.Height(i, j)
	case last:
		dy = f.Height(i, j) - f.Height(i, j-1)
	default:
		dy = (f.Height(i, j+1) - f.Height(i, j-1)) / 2
	}
	return dx, dy
}

// DeriveTexels assigns each cell its position in the unit square.
func DeriveTexels(f *HeightField) error {
	if f.size < 2 {
		return &ParamError{Param: "size", Value: f.size, Constraint: "must be at least 2", Err: ErrInvalidDimension}
	}
	last := float64(f.size - 1)
	f.EachCell(func(i, j int) {
		f.texels[f.index(i, j)] = r2.Vec{X: float64(i) / last, Y: float64(j) / last}
	})
	return nil
}
