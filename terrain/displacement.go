package terrain

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// GenerateDisplacementTerrain fills the height channel by midpoint
// displacement (diamond-square). The grid edge minus one must be a power
// of two. Randomness is drawn from src; a nil src uses the global source.
func GenerateDisplacementTerrain(f *HeightField, displacement, roughness float64, src rand.Source) error {
	return Generate(f, Displacement{Magnitude: displacement, Roughness: roughness, Source: src})
}

// validSubdivision reports whether size-1 is a power of two of at least 2.
func validSubdivision(size int) bool {
	n := size - 1
	return n >= 2 && n&(n-1) == 0
}

func fillDisplacement(f *HeightField, d Displacement) {
	size := f.size
	last := size - 1
	sz := f.scale.Z

	corner := distuv.Uniform{Min: -sz, Max: sz, Src: d.Source}
	f.setHeight(0, 0, corner.Rand())
	f.setHeight(0, last, corner.Rand())
	f.setHeight(last, 0, corner.Rand())
	f.setHeight(last, last, corner.Rand())

	jitter := distuv.Normal{Mu: 0, Sigma: d.Magnitude * sz, Src: d.Source}
	decay := 2.0
	if d.Roughness != 1 {
		decay = math.Pow(2, d.Roughness)
	}

	scaling := sz
	for step := size / 2; step > 0; step /= 2 {
		// Diamond pass: square centers at odd multiples of step.
		for i := step; i < size; i += 2 * step {
			for j := step; j < size; j += 2 * step {
				f.setHeight(i, j, diamondAverage(f, i, j, step)+jitter.Rand()*scaling)
			}
		}

		// Square pass: edge midpoints, which sit on the step lattice with
		// exactly one odd coordinate multiple.
		for i := 0; i < size; i += step {
			start := 0
			if (i/step)%2 == 0 {
				start = step
			}
			for j := start; j < size; j += 2 * step {
				avg, _ := neighborAverage(f, i, j, step)
				f.setHeight(i, j, avg+jitter.Rand()*scaling)
			}
		}

		scaling /= decay
	}
}

// diamondAverage is the mean of the four diagonal corners at distance step.
func diamondAverage(f *HeightField, i, j, step int) float64 {
	return 0.25 * (f.Height(i-step, j-step) +
		f.Height(i+step, j-step) +
		f.Height(i-step, j+step) +
		f.Height(i+step, j+step))
}

// neighborAverage averages the axis-aligned neighbors at distance step that
// lie inside the grid and returns how many there were. Out-of-range
// neighbors are skipped, not counted as zero.
func neighborAverage(f *HeightField, i, j, step int) (float64, int) {
	var sum float64
	var count int
	add := func(ni, nj int) {
		if ni < 0 || nj < 0 || ni >= f.size || nj >= f.size {
			return
		}
		sum += f.Height(ni, nj)
		count++
	}
	add(i-step, j)
	add(i+step, j)
	add(i, j-step)
	add(i, j+step)

	if count == 0 {
		return 0, 0
	}
	return sum / float64(count), count
}
