package insight

import (
	"math"

	"github.com/KaramelBytes/insightloom/internal/dataset"
)

// Anomaly is one flagged data point in a column.
type Anomaly struct {
	Row   int
	Value float64
	Score float64 // z-score: (value - mean) / std
}

// DetectAnomalies flags values in the named column whose z-score magnitude
// is at least zThreshold, ordered by row index. Missing cells are excluded
// from both the statistics and the output. An unknown column, or one with
// zero variance or fewer than two present values, yields no anomalies.
func DetectAnomalies(ds *dataset.Dataset, column string, zThreshold float64) []Anomaly {
	col, ok := ds.Column(column)
	if !ok {
		return nil
	}
	// Welford pass for mean and sample standard deviation.
	var n, mean, m2 float64
	for i := 0; i < col.Len(); i++ {
		v, ok := col.Float(i)
		if !ok {
			continue
		}
		n++
		delta := v - mean
		mean += delta / n
		m2 += delta * (v - mean)
	}
	if n < 2 {
		return nil
	}
	std := math.Sqrt(m2 / (n - 1))
	if std == 0 || math.IsNaN(std) {
		return nil
	}
	var out []Anomaly
	for i := 0; i < col.Len(); i++ {
		v, ok := col.Float(i)
		if !ok {
			continue
		}
		z := (v - mean) / std
		if math.Abs(z) >= zThreshold {
			out = append(out, Anomaly{Row: i, Value: v, Score: z})
		}
	}
	return out
}
