package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/relief/terrain"
)

// CellRecord is one row of the cell dump.
type CellRecord struct {
	I  int     `csv:"i"`
	J  int     `csv:"j"`
	X  float64 `csv:"x"`
	Y  float64 `csv:"y"`
	Z  float64 `csv:"z"`
	NX float64 `csv:"nx"`
	NY float64 `csv:"ny"`
	NZ float64 `csv:"nz"`
	U  float64 `csv:"u"`
	V  float64 `csv:"v"`
}

// Cells flattens f into row-major records.
func Cells(f *terrain.HeightField) []CellRecord {
	records := make([]CellRecord, 0, f.Size()*f.Size())
	f.EachCell(func(i, j int) {
		p, n, t := f.Position(i, j), f.Normal(i, j), f.Texel(i, j)
		records = append(records, CellRecord{
			I: i, J: j,
			X: p.X, Y: p.Y, Z: p.Z,
			NX: n.X, NY: n.Y, NZ: n.Z,
			U: t.X, V: t.Y,
		})
	})
	return records
}

// WriteCellsCSV writes every cell with its position, normal and texel.
func WriteCellsCSV(w io.Writer, f *terrain.HeightField) error {
	if err := gocsv.Marshal(Cells(f), w); err != nil {
		return fmt.Errorf("writing cells csv: %w", err)
	}
	return nil
}
