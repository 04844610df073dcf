package insight

import (
	"math"
	"sort"

	"github.com/KaramelBytes/insightloom/internal/dataset"
)

// CorrelationPair reports the absolute Pearson correlation between two
// numeric columns. R is always in [0, 1].
type CorrelationPair struct {
	ColumnA string
	ColumnB string
	R       float64
}

// FindCorrelations computes pairwise absolute Pearson correlations across
// the numeric columns of ds and returns the pairs with |r| >= minCorr,
// sorted by descending coefficient. Fewer than two numeric columns, or
// zero-variance pairs, yield no results rather than errors.
func FindCorrelations(ds *dataset.Dataset, minCorr float64) []CorrelationPair {
	nums := ds.NumericColumns()
	if len(nums) < 2 {
		return nil
	}
	var pairs []CorrelationPair
	for i := 0; i < len(nums); i++ {
		for j := i + 1; j < len(nums); j++ {
			r, ok := pearson(nums[i], nums[j])
			if !ok {
				continue
			}
			r = math.Abs(r)
			if r >= minCorr {
				pairs = append(pairs, CorrelationPair{ColumnA: nums[i].Name, ColumnB: nums[j].Name, R: r})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].R == pairs[j].R {
			return pairs[i].ColumnA+pairs[i].ColumnB < pairs[j].ColumnA+pairs[j].ColumnB
		}
		return pairs[i].R > pairs[j].R
	})
	return pairs
}

// pearson computes the correlation coefficient over rows where both columns
// have a present value. It reports ok=false for degenerate inputs (fewer
// than two complete observations, or zero variance on either side).
func pearson(a, b *dataset.Column) (float64, bool) {
	rows := a.Len()
	if b.Len() < rows {
		rows = b.Len()
	}
	var n, sumX, sumY, sumXX, sumYY, sumXY float64
	for i := 0; i < rows; i++ {
		x, ok := a.Float(i)
		if !ok {
			continue
		}
		y, ok := b.Float(i)
		if !ok {
			continue
		}
		n++
		sumX += x
		sumY += y
		sumXX += x * x
		sumYY += y * y
		sumXY += x * y
	}
	if n < 2 {
		return 0, false
	}
	denom := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if denom == 0 {
		return 0, false
	}
	r := (n*sumXY - sumX*sumY) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}
