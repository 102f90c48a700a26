package terrain

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestDeriveNormalsFlatFieldPointsUp(t *testing.T) {
	f := newTestField(t, 4, Scale{X: 1, Y: 1, Z: 1})
	if err := DeriveNormals(f); err != nil {
		t.Fatal(err)
	}
	f.EachCell(func(i, j int) {
		if n := f.Normal(i, j); n != (r3.Vec{X: 0, Y: 0, Z: 1}) {
			t.Fatalf("normal(%d,%d) = %+v, want (0,0,1)", i, j, n)
		}
	})
}

func TestDeriveNormalsRamp(t *testing.T) {
	// Height rises by one per row, so dx is 1 everywhere (central inside,
	// one-sided on the border) and dy is 0.
	f := newTestField(t, 3, Scale{X: 2, Y: 1, Z: 1})
	f.EachCell(func(i, j int) { f.setHeight(i, j, float64(i)) })
	if err := DeriveNormals(f); err != nil {
		t.Fatal(err)
	}

	scalingX := -1.0 / 2.0 * 3
	want := r3.Unit(r3.Vec{X: scalingX, Y: 0, Z: 1})
	f.EachCell(func(i, j int) {
		n := f.Normal(i, j)
		if r3.Norm(r3.Sub(n, want)) > 1e-12 {
			t.Errorf("normal(%d,%d) = %+v, want %+v", i, j, n, want)
		}
	})
}

func TestDeriveNormalsBorderDifferences(t *testing.T) {
	f := newTestField(t, 3, Scale{X: 1, Y: 1, Z: 1})
	// Quadratic along j: 0, 1, 4.
	f.EachCell(func(i, j int) { f.setHeight(i, j, float64(j*j)) })

	checks := []struct {
		j      int
		wantDy float64
	}{
		{0, 1}, // forward: 1-0
		{1, 2}, // central: (4-0)/2
		{2, 3}, // backward: 4-1
	}
	for _, c := range checks {
		dx, dy := f.gradient(1, c.j)
		if dx != 0 || dy != c.wantDy {
			t.Errorf("gradient(1,%d) = (%v,%v), want (0,%v)", c.j, dx, dy, c.wantDy)
		}
	}
}

func TestDeriveNormalsUnitLength(t *testing.T) {
	f := newTestField(t, 33, Scale{X: 3, Y: 1.5, Z: 0.8})
	if err := GenerateDisplacementTerrain(f, 0.6, 1, rand.NewPCG(11, 12)); err != nil {
		t.Fatal(err)
	}
	if err := DeriveNormals(f); err != nil {
		t.Fatal(err)
	}
	f.EachCell(func(i, j int) {
		if l := r3.Norm(f.Normal(i, j)); math.Abs(l-1) > 1e-9 {
			t.Fatalf("|normal(%d,%d)| = %v, want 1", i, j, l)
		}
	})
}

func TestDeriveNormalsDegenerateScale(t *testing.T) {
	for _, scale := range []Scale{{X: 0, Y: 1, Z: 1}, {X: 1, Y: 0, Z: 1}} {
		f := newTestField(t, 3, scale)
		err := DeriveNormals(f)
		if !errors.Is(err, ErrDegenerateScale) {
			t.Errorf("scale %+v: got %v, want ErrDegenerateScale", scale, err)
		}
		f.EachCell(func(i, j int) {
			if n := f.Normal(i, j); n != (r3.Vec{}) {
				t.Fatalf("scale %+v: normal(%d,%d) written: %+v", scale, i, j, n)
			}
		})
	}
}

func TestDeriveTexels(t *testing.T) {
	f := newTestField(t, 5, Scale{X: 1, Y: 1, Z: 1})
	if err := DeriveTexels(f); err != nil {
		t.Fatal(err)
	}
	f.EachCell(func(i, j int) {
		tx := f.Texel(i, j)
		if tx.X < 0 || tx.X > 1 || tx.Y < 0 || tx.Y > 1 {
			t.Fatalf("texel(%d,%d) = %+v outside unit square", i, j, tx)
		}
	})
	if tx := f.Texel(0, 0); tx.X != 0 || tx.Y != 0 {
		t.Errorf("texel(0,0) = %+v, want (0,0)", tx)
	}
	if tx := f.Texel(4, 4); tx.X != 1 || tx.Y != 1 {
		t.Errorf("texel(4,4) = %+v, want (1,1)", tx)
	}
	if tx := f.Texel(1, 3); tx.X != 0.25 || tx.Y != 0.75 {
		t.Errorf("texel(1,3) = %+v, want (0.25,0.75)", tx)
	}
}
