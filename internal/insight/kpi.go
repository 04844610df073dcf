package insight

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/KaramelBytes/insightloom/internal/dataset"
)

// identifierTokens mark numeric columns that name identifiers rather than
// measured quantities; such columns carry no KPI signal.
var identifierTokens = []string{"id", "code", "zip", "key", "number"}

// IsIdentifierLike reports whether a column name heuristically looks like an
// identifier or code column. Matching is a case-insensitive substring test
// against the reserved token list.
func IsIdentifierLike(name string) bool {
	lower := strings.ToLower(name)
	for _, tok := range identifierTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// spreadEpsilon guards the spread-ratio division for near-zero means.
const spreadEpsilon = 1e-6

const kpiFallback = "No business-relevant numeric columns found for KPI analysis. " +
	"ID-like or static columns were excluded."

// SummarizeKPIs produces one descriptive line per business-relevant numeric
// column, chosen by a variation heuristic: columns whose spread ratio
// (max-min)/(mean+eps) exceeds 0.1 are narrated as varying, the rest as
// stable. Identifier-like columns are skipped entirely. If no column
// qualifies, a single explanatory fallback line is returned.
func SummarizeKPIs(ds *dataset.Dataset) []string {
	p := message.NewPrinter(language.English)
	var out []string
	for _, col := range ds.NumericColumns() {
		if IsIdentifierLike(col.Name) {
			continue
		}
		vals := col.Floats()
		if len(vals) == 0 {
			continue
		}
		var total float64
		minv, maxv := vals[0], vals[0]
		for _, v := range vals {
			total += v
			if v < minv {
				minv = v
			}
			if v > maxv {
				maxv = v
			}
		}
		avg := total / float64(len(vals))
		significant := (maxv-minv)/(avg+spreadEpsilon) > 0.1

		name := dataset.HumanizeName(col.Name)
		switch {
		case significant && avg > 1000:
			out = append(out, p.Sprintf(
				"**%s** averages around %.2f, totaling %.0f. Values range between %.2f and %.2f, showing significant spread.",
				name, avg, total, minv, maxv))
		case significant:
			out = append(out, p.Sprintf(
				"**%s** shows moderate variation, averaging %.2f (min %.2f, max %.2f).",
				name, avg, minv, maxv))
		default:
			out = append(out, p.Sprintf(
				"**%s** remains relatively stable, averaging %.2f with limited variability.",
				name, avg))
		}
	}
	if len(out) == 0 {
		out = append(out, kpiFallback)
	}
	return out
}
