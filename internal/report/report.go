package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/insightloom/internal/dataset"
	"github.com/KaramelBytes/insightloom/internal/insight"
)

// ColumnProfile captures per-column statistics for the stats report.
type ColumnProfile struct {
	Name    string
	Kind    dataset.Kind
	NonNull int
	Missing int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// Categorical top values
	TopValues []ValueCount
	Unique    int
}

type ValueCount struct {
	Value string
	Count int
}

// Report is a markdown-friendly profile of a loaded dataset.
type Report struct {
	Name  string
	Rows  int
	Cols  []ColumnProfile
	Pairs []insight.CorrelationPair
}

// Build profiles every column of ds and, when minCorr is in (0, 1], attaches
// the correlation pairs at or above that threshold.
func Build(ds *dataset.Dataset, minCorr float64) *Report {
	rep := &Report{Name: ds.Name, Rows: ds.Rows()}
	for i := range ds.Columns {
		col := &ds.Columns[i]
		prof := ColumnProfile{Name: col.Name, Kind: col.Kind}
		cats := map[string]int{}
		var n, mean, m2 float64
		minv, maxv := math.Inf(1), math.Inf(-1)
		for _, cell := range col.Cells {
			if cell.Raw == "" && !cell.Numeric {
				prof.Missing++
				continue
			}
			prof.NonNull++
			if cell.Numeric {
				x := cell.Num
				n++
				if x < minv {
					minv = x
				}
				if x > maxv {
					maxv = x
				}
				delta := x - mean
				mean += delta / n
				m2 += delta * (x - mean)
				continue
			}
			if len(cell.Raw) <= 64 {
				cats[cell.Raw]++
			}
		}
		if col.Kind == dataset.KindNumeric && n > 0 {
			prof.Min = minv
			prof.Max = maxv
			prof.Mean = mean
			if n > 1 {
				prof.Std = math.Sqrt(m2 / (n - 1))
			}
		}
		if col.Kind == dataset.KindText && len(cats) > 0 {
			tops := make([]ValueCount, 0, len(cats))
			for k, v := range cats {
				tops = append(tops, ValueCount{Value: k, Count: v})
			}
			sort.Slice(tops, func(i, j int) bool {
				if tops[i].Count == tops[j].Count {
					return tops[i].Value < tops[j].Value
				}
				return tops[i].Count > tops[j].Count
			})
			prof.Unique = len(tops)
			if len(tops) > 8 {
				tops = tops[:8]
			}
			prof.TopValues = tops
		}
		rep.Cols = append(rep.Cols, prof)
	}
	if minCorr > 0 && minCorr <= 1 {
		rep.Pairs = insight.FindCorrelations(ds, minCorr)
	}
	return rep
}

// Markdown renders a compact report suitable for terminals or docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case dataset.KindNumeric:
			b.WriteString(fmt.Sprintf(" | min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
		case dataset.KindText:
			if len(c.TopValues) > 0 {
				b.WriteString(" | top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		}
		b.WriteString("\n")
	}

	if len(r.Pairs) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		maxp := 10
		if len(r.Pairs) < maxp {
			maxp = len(r.Pairs)
		}
		for i := 0; i < maxp; i++ {
			p := r.Pairs[i]
			b.WriteString(fmt.Sprintf("- %s ~ %s: |r|=%.3f\n", p.ColumnA, p.ColumnB, p.R))
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
