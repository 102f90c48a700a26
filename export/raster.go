package export

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/pthm-cable/relief/terrain"
)

// Quantize maps a value in [-1, 1] to a byte as round(v*127)+127.
// Values outside the range are clipped.
func Quantize(v float64) uint8 {
	q := math.Round(v*127) + 127
	if q < 0 || math.IsNaN(q) {
		return 0
	}
	if q > 255 {
		return 255
	}
	return uint8(q)
}

// WriteNormalMap writes the normals as a PPM image, one pixel per cell,
// rows indexed by i. binary selects P6 over ASCII P3.
func WriteNormalMap(w io.Writer, f *terrain.HeightField, binary bool) error {
	bw := bufio.NewWriter(w)
	size := f.Size()

	magic := "P3"
	if binary {
		magic = "P6"
	}
	fmt.Fprintf(bw, "%s\n%d %d\n255\n", magic, size, size)

	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			n := f.Normal(i, j)
			r, g, b := Quantize(n.X), Quantize(n.Y), Quantize(n.Z)
			if binary {
				bw.Write([]byte{r, g, b})
			} else {
				fmt.Fprintf(bw, "%d %d %d ", r, g, b)
			}
		}
		if !binary {
			bw.WriteByte('\n')
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing normal map: %w", err)
	}
	return nil
}

// WriteHeightMap writes the heights as a PGM image using the same
// quantization as the normal map. binary selects P5 over ASCII P2.
func WriteHeightMap(w io.Writer, f *terrain.HeightField, binary bool) error {
	bw := bufio.NewWriter(w)
	size := f.Size()

	magic := "P2"
	if binary {
		magic = "P5"
	}
	fmt.Fprintf(bw, "%s\n%d %d\n255\n", magic, size, size)

	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			v := Quantize(f.Height(i, j))
			if binary {
				bw.WriteByte(v)
			} else {
				fmt.Fprintf(bw, "%d ", v)
			}
		}
		if !binary {
			bw.WriteByte('\n')
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing height map: %w", err)
	}
	return nil
}
