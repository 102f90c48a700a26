package export

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/tiff"
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/relief/terrain"
)

// HeightImage returns the heights as a 16-bit grayscale image normalized
// to the field's own min/max. Pixel (x, y) is cell (i=y, j=x). A flat
// field maps to black.
func HeightImage(f *terrain.HeightField) *image.Gray16 {
	size := f.Size()
	heights := f.Heights()
	lo, hi := floats.Min(heights), floats.Max(heights)
	span := hi - lo

	img := image.NewGray16(image.Rect(0, 0, size, size))
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			var v uint16
			if span > 0 {
				v = uint16((heights[i*size+j] - lo) / span * 65535)
			}
			img.SetGray16(j, i, color.Gray16{Y: v})
		}
	}
	return img
}

// WriteHeightTIFF writes HeightImage(f) as a deflate-compressed TIFF.
func WriteHeightTIFF(w io.Writer, f *terrain.HeightField) error {
	opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
	if err := tiff.Encode(w, HeightImage(f), opts); err != nil {
		return fmt.Errorf("encoding height tiff: %w", err)
	}
	return nil
}
