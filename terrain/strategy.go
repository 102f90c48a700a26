package terrain

import (
	"math"
	"math/rand/v2"
)

// Strategy names, as reported by HeightField.Strategy and accepted by
// configuration.
const (
	StrategyNoise        = "noise"
	StrategyDisplacement = "displacement"
)

// Strategy selects exactly one height synthesizer for a field.
// It is implemented only by Noise and Displacement.
type Strategy interface {
	Name() string
	validate(f *HeightField) error
	fill(f *HeightField)
}

// Noise configures fractal gradient noise synthesis.
type Noise struct {
	Frequency float64
	Amplitude float64
	Octaves   int
}

// Name implements Strategy.
func (Noise) Name() string { return StrategyNoise }

func (n Noise) validate(f *HeightField) error {
	if n.Octaves < 0 {
		return &ParamError{Param: "octaves", Value: n.Octaves, Constraint: "must be non-negative", Err: ErrInvalidParameter}
	}
	if !isFinite(n.Frequency) {
		return &ParamError{Param: "frequency", Value: n.Frequency, Constraint: "must be finite", Err: ErrInvalidParameter}
	}
	if !isFinite(n.Amplitude) {
		return &ParamError{Param: "amplitude", Value: n.Amplitude, Constraint: "must be finite", Err: ErrInvalidParameter}
	}
	// The last octave samples up to (size-1)·frequency·2^(octaves-1).
	if n.Octaves > 0 && !isFinite(math.Ldexp(n.Frequency, n.Octaves-1)*float64(f.size-1)) {
		return &ParamError{Param: "octaves", Value: n.Octaves, Constraint: "overflows the sample frequency", Err: ErrInvalidParameter}
	}
	return nil
}

func (n Noise) fill(f *HeightField) { fillNoise(f, n) }

// Displacement configures midpoint displacement synthesis.
type Displacement struct {
	// Magnitude is the standard deviation of the jitter relative to scale.Z.
	Magnitude float64
	// Roughness is the exponent of the per-pass jitter decay 2^Roughness.
	Roughness float64
	// Source feeds the corner and jitter distributions. Nil uses the
	// global math/rand/v2 source.
	Source rand.Source
}

// Name implements Strategy.
func (Displacement) Name() string { return StrategyDisplacement }

func (d Displacement) validate(f *HeightField) error {
	if !validSubdivision(f.size) {
		return &ParamError{Param: "size", Value: f.size, Constraint: "must be a power of two plus one (>= 3)", Err: ErrInvalidDimension}
	}
	if !isFinite(d.Magnitude) {
		return &ParamError{Param: "displacement", Value: d.Magnitude, Constraint: "must be finite", Err: ErrInvalidParameter}
	}
	if !isFinite(d.Roughness) {
		return &ParamError{Param: "roughness", Value: d.Roughness, Constraint: "must be finite", Err: ErrInvalidParameter}
	}
	return nil
}

func (d Displacement) fill(f *HeightField) { fillDisplacement(f, d) }

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Generate lays out the grid and writes heights with s. Every precondition
// is checked before the field is touched. A field populated by one strategy
// rejects the other; running the same strategy again recomputes the heights.
func Generate(f *HeightField, s Strategy) error {
	if f.strategy != "" && f.strategy != s.Name() {
		return &ParamError{Param: "strategy", Value: s.Name(), Constraint: "field already generated by " + f.strategy, Err: ErrStrategyConflict}
	}
	if err := s.validate(f); err != nil {
		return err
	}
	if err := InitializeGrid(f); err != nil {
		return err
	}
	s.fill(f)
	f.strategy = s.Name()
	return nil
}

// Build creates a field and runs the whole pipeline: grid layout, height
// synthesis with s, then normals and texels.
func Build(size int, scale Scale, s Strategy) (*HeightField, error) {
	f, err := New(size, scale)
	if err != nil {
		return nil, err
	}
	if err := checkPlanarScale(scale); err != nil {
		return nil, err
	}
	if err := Generate(f, s); err != nil {
		return nil, err
	}
	if err := DeriveNormals(f); err != nil {
		return nil, err
	}
	if err := DeriveTexels(f); err != nil {
		return nil, err
	}
	return f, nil
}
