package terrain

// InitializeGrid maps grid indices onto world space so the grid spans
// [-scale.X, scale.X] × [-scale.Y, scale.Y] with uniform spacing.
// Only the X and Y channels are written.
func InitializeGrid(f *HeightField) error {
	if f.size < 2 {
		return &ParamError{
			Param:      "size",
			Value:      f.size,
			Constraint: "must be at least 2",
			Err:        ErrInvalidDimension,
		}
	}

	last := float64(f.size - 1)
	sx, sy := f.scale.X, f.scale.Y
	f.EachCell(func(i, j int) {
		p := &f.positions[f.index(i, j)]
		p.X = float64(i)/last*2*sx - sx
		p.Y = float64(j)/last*2*sy - sy
	})
	return nil
}
