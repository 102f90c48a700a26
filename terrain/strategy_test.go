package terrain

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewRejectsTinyGrid(t *testing.T) {
	for _, size := range []int{-1, 0, 1} {
		if _, err := New(size, Scale{X: 1, Y: 1, Z: 1}); !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("New(%d): got %v, want ErrInvalidDimension", size, err)
		}
	}
}

func TestInitializeGrid(t *testing.T) {
	f := newTestField(t, 3, Scale{X: 2, Y: 0.5, Z: 1})
	if err := InitializeGrid(f); err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		i, j int
		x, y float64
	}{
		{0, 0, -2, -0.5},
		{1, 1, 0, 0},
		{2, 2, 2, 0.5},
		{2, 0, 2, -0.5},
		{0, 1, -2, 0},
	}
	for _, c := range cases {
		p := f.Position(c.i, c.j)
		if p.X != c.x || p.Y != c.y || p.Z != 0 {
			t.Errorf("position(%d,%d) = %+v, want (%v,%v,0)", c.i, c.j, p, c.x, c.y)
		}
	}
}

func TestEndToEndNoiseScenario(t *testing.T) {
	f, err := Build(3, Scale{X: 1, Y: 1, Z: 1}, Noise{Frequency: 1, Amplitude: 1, Octaves: 1})
	if err != nil {
		t.Fatal(err)
	}

	if p := f.Position(0, 0); p.X != -1 || p.Y != -1 {
		t.Errorf("position(0,0) = %+v, want (-1,-1)", p)
	}
	if p := f.Position(2, 2); p.X != 1 || p.Y != 1 {
		t.Errorf("position(2,2) = %+v, want (1,1)", p)
	}

	f.EachCell(func(i, j int) {
		if l := r3.Norm(f.Normal(i, j)); math.Abs(l-1) > 1e-12 {
			t.Errorf("|normal(%d,%d)| = %v", i, j, l)
		}
		tx := f.Texel(i, j)
		if tx.X < 0 || tx.X > 1 || tx.Y < 0 || tx.Y > 1 {
			t.Errorf("texel(%d,%d) = %+v outside unit square", i, j, tx)
		}
	})
	if tx := f.Texel(1, 1); tx.X != 0.5 || tx.Y != 0.5 {
		t.Errorf("texel(1,1) = %+v, want (0.5,0.5)", tx)
	}
	if f.Strategy() != StrategyNoise {
		t.Errorf("strategy = %q, want noise", f.Strategy())
	}
}

func TestBuildDisplacement(t *testing.T) {
	f, err := Build(9, Scale{X: 1, Y: 1, Z: 1}, Displacement{Magnitude: 0.3, Roughness: 1, Source: rand.NewPCG(1, 1)})
	if err != nil {
		t.Fatal(err)
	}
	if f.Strategy() != StrategyDisplacement {
		t.Errorf("strategy = %q", f.Strategy())
	}
	if tx := f.Texel(8, 8); tx.X != 1 || tx.Y != 1 {
		t.Errorf("texel(8,8) = %+v", tx)
	}
}

func TestBuildRejectsDegenerateScaleBeforeSynthesis(t *testing.T) {
	_, err := Build(5, Scale{X: 0, Y: 1, Z: 1}, Noise{Frequency: 0.1, Amplitude: 1, Octaves: 2})
	if !errors.Is(err, ErrDegenerateScale) {
		t.Fatalf("got %v, want ErrDegenerateScale", err)
	}
	var pe *ParamError
	if !errors.As(err, &pe) || pe.Param != "scale.x" {
		t.Errorf("expected scale.x ParamError, got %v", err)
	}
}

func TestGenerateRejectsSecondStrategy(t *testing.T) {
	f := newTestField(t, 5, Scale{X: 1, Y: 1, Z: 1})
	if err := Generate(f, Noise{Frequency: 0.2, Amplitude: 1, Octaves: 3}); err != nil {
		t.Fatal(err)
	}
	before := f.Heights()

	err := Generate(f, Displacement{Magnitude: 0.5, Roughness: 1, Source: rand.NewPCG(2, 2)})
	if !errors.Is(err, ErrStrategyConflict) {
		t.Fatalf("got %v, want ErrStrategyConflict", err)
	}
	after := f.Heights()
	for k := range before {
		if before[k] != after[k] {
			t.Fatalf("cell %d changed after rejected strategy", k)
		}
	}

	// The same strategy may recompute.
	if err := Generate(f, Noise{Frequency: 0.4, Amplitude: 1, Octaves: 1}); err != nil {
		t.Errorf("recomputing with noise: %v", err)
	}
}

func TestParamErrorMessage(t *testing.T) {
	f := newTestField(t, 6, Scale{X: 1, Y: 1, Z: 1})
	err := Generate(f, Displacement{Magnitude: 1, Roughness: 1})
	want := "invalid dimension: size=6 must be a power of two plus one (>= 3)"
	if err == nil || err.Error() != want {
		t.Errorf("error = %v, want %q", err, want)
	}
}
