package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/relief/terrain"
)

// FieldStats summarizes a populated height field.
type FieldStats struct {
	Size     int    `csv:"size"`
	Strategy string `csv:"strategy"`

	// Height distribution
	MinHeight  float64 `csv:"min_height"`
	MaxHeight  float64 `csv:"max_height"`
	MeanHeight float64 `csv:"mean_height"`
	StdHeight  float64 `csv:"std_height"`
	HeightP10  float64 `csv:"height_p10"`
	HeightP50  float64 `csv:"height_p50"`
	HeightP90  float64 `csv:"height_p90"`

	// Surface shape
	MeanSlopeDeg float64 `csv:"mean_slope_deg"` // Mean angle between normal and +Z
	MaxSlopeDeg  float64 `csv:"max_slope_deg"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFieldStats gathers height and slope statistics from f.
// Slopes are only meaningful once normals have been derived.
func ComputeFieldStats(f *terrain.HeightField) FieldStats {
	heights := f.Heights()
	s := FieldStats{Size: f.Size(), Strategy: f.Strategy()}
	if len(heights) == 0 {
		return s
	}

	s.MinHeight = floats.Min(heights)
	s.MaxHeight = floats.Max(heights)
	s.MeanHeight, s.StdHeight = stat.PopMeanStdDev(heights, nil)

	sorted := make([]float64, len(heights))
	copy(sorted, heights)
	sort.Float64s(sorted)
	s.HeightP10 = Percentile(sorted, 0.10)
	s.HeightP50 = Percentile(sorted, 0.50)
	s.HeightP90 = Percentile(sorted, 0.90)

	slopes := make([]float64, 0, len(heights))
	f.EachCell(func(i, j int) {
		nz := f.Normal(i, j).Z
		// Normals are zero until derived.
		if nz == 0 {
			return
		}
		slopes = append(slopes, math.Acos(math.Min(1, nz))*180/math.Pi)
	})
	if len(slopes) > 0 {
		s.MeanSlopeDeg = stat.Mean(slopes, nil)
		s.MaxSlopeDeg = floats.Max(slopes)
	}

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("size", s.Size),
		slog.String("strategy", s.Strategy),
		slog.Float64("min_height", s.MinHeight),
		slog.Float64("max_height", s.MaxHeight),
		slog.Float64("mean_height", s.MeanHeight),
		slog.Float64("std_height", s.StdHeight),
		slog.Float64("height_p10", s.HeightP10),
		slog.Float64("height_p50", s.HeightP50),
		slog.Float64("height_p90", s.HeightP90),
		slog.Float64("mean_slope_deg", s.MeanSlopeDeg),
		slog.Float64("max_slope_deg", s.MaxSlopeDeg),
	)
}

// LogStats logs the field stats using slog.
func (s FieldStats) LogStats() {
	slog.Info("stats", "field", s)
}
