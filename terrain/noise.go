package terrain

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// permutation is the fixed hash table for gradient noise. Its exact
// contents define the terrain a given parameter set produces.
var permutation = [256]uint8{
	51, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

// gradients are the four diagonal gradient directions, selected by hash mod 4.
var gradients = [4]r2.Vec{
	{X: 1, Y: 1},
	{X: -1, Y: 1},
	{X: -1, Y: -1},
	{X: 1, Y: -1},
}

const (
	persistence = 0.5
	lacunarity  = 2.0
)

// GenerateNoiseTerrain fills the height channel with fractal gradient noise.
// Each octave halves the amplitude and doubles the frequency. The result is
// a pure function of the cell indices and the parameters.
func GenerateNoiseTerrain(f *HeightField, frequency, amplitude float64, octaves int) error {
	return Generate(f, Noise{Frequency: frequency, Amplitude: amplitude, Octaves: octaves})
}

func fillNoise(f *HeightField, n Noise) {
	sz := f.scale.Z
	f.EachCell(func(i, j int) {
		height := 0.0
		amp := n.Amplitude
		freq := n.Frequency
		for o := 0; o < n.Octaves; o++ {
			height += sz * amp * Noise2D(float64(i)*freq, float64(j)*freq)
			amp *= persistence
			freq *= lacunarity
		}
		f.setHeight(i, j, height)
	})
}

// Noise2D returns 2D gradient noise at (x, y). It is zero on integer
// lattice points and repeats every 256 units along both axes.
func Noise2D(x, y float64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	xi := wrap(fx)
	yi := wrap(fy)
	xf := x - fx
	yf := y - fy

	topRight := r2.Vec{X: xf - 1, Y: yf - 1}
	topLeft := r2.Vec{X: xf, Y: yf - 1}
	bottomRight := r2.Vec{X: xf - 1, Y: yf}
	bottomLeft := r2.Vec{X: xf, Y: yf}

	xn := (xi + 1) % 256
	yn := (yi + 1) % 256

	hashTopRight := permutation[(int(permutation[xn])+yn)%256]
	hashTopLeft := permutation[(int(permutation[xi])+yn)%256]
	hashBottomRight := permutation[(int(permutation[xn])+yi)%256]
	hashBottomLeft := permutation[(int(permutation[xi])+yi)%256]

	dotTopRight := r2.Dot(topRight, gradient(hashTopRight))
	dotTopLeft := r2.Dot(topLeft, gradient(hashTopLeft))
	dotBottomRight := r2.Dot(bottomRight, gradient(hashBottomRight))
	dotBottomLeft := r2.Dot(bottomLeft, gradient(hashBottomLeft))

	u := fade(xf)
	v := fade(yf)

	return lerp(u,
		lerp(v, dotBottomLeft, dotTopLeft),
		lerp(v, dotBottomRight, dotTopRight),
	)
}

// wrap reduces a floored coordinate into [0, 256). Non-finite input maps to 0.
func wrap(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	r := int(math.Mod(v, 256))
	if r < 0 {
		r += 256
	}
	return r
}

func gradient(hash uint8) r2.Vec {
	return gradients[hash%4]
}

func fade(t float64) float64 {
	return ((6*t-15)*t + 10) * t * t * t
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}
