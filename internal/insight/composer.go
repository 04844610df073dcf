package insight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/insightloom/internal/dataset"
)

// RewriteFunc is an optional capability that turns a raw insight prompt into
// a polished narrative. It is invoked at most once per Generate call; a
// failure is reported inside the result, never propagated.
type RewriteFunc func(ctx context.Context, prompt string) (string, error)

// Options configures a Generate run.
type Options struct {
	DashboardName       string
	IncludeCorrelations bool
	MinCorrelation      float64
	ZThreshold          float64
	Rewrite             RewriteFunc
}

// DefaultOptions mirrors the thresholds of the dashboard UI.
func DefaultOptions() Options {
	return Options{
		DashboardName:       "Financial Dashboard",
		IncludeCorrelations: true,
		MinCorrelation:      0.3,
		ZThreshold:          3.0,
	}
}

// Result is one completed insight run. The caller owns caching and
// persistence; Generate itself keeps no state between calls.
type Result struct {
	ID            uuid.UUID
	DashboardName string
	Source        string
	CreatedAt     time.Time
	Lines         []string
}

const rewritePreamble = "You are a data storytelling expert. Rewrite these raw insights into an executive-friendly narrative. " +
	"Keep it data-driven, concise, and descriptive, reflecting relationships and dashboard findings:\n\n"

// Generate runs the full insight pipeline over ds: KPI summaries, then the
// top correlations, then per-column anomaly counts, then one closing summary
// line. When opts.Rewrite is set and succeeds, the whole list is replaced by
// the rewritten narrative; when it fails, the original lines are kept and a
// diagnostic line is appended.
func Generate(ctx context.Context, ds *dataset.Dataset, opts Options) *Result {
	lines := SummarizeKPIs(ds)

	if opts.IncludeCorrelations {
		corrs := FindCorrelations(ds, opts.MinCorrelation)
		if len(corrs) > 3 {
			corrs = corrs[:3]
		}
		for _, c := range corrs {
			lines = append(lines, fmt.Sprintf(
				"A notable correlation (**r = %.2f**) exists between **%s** and **%s**, indicating they move closely together — potentially useful for predictive modeling.",
				c.R, c.ColumnA, c.ColumnB))
		}
	}

	for _, col := range ds.NumericColumns() {
		anoms := DetectAnomalies(ds, col.Name, opts.ZThreshold)
		if len(anoms) > 0 {
			lines = append(lines, fmt.Sprintf(
				"**%s** shows %d unusual data points (anomalies), which may represent exceptional cases, outliers, or potential data errors.",
				dataset.HumanizeName(col.Name), len(anoms)))
		}
	}

	lines = append(lines, fmt.Sprintf(
		"📊 These insights summarize %s, combining quantitative patterns and potential risk signals.",
		opts.DashboardName))

	if opts.Rewrite != nil {
		prompt := rewritePreamble + strings.Join(lines, "\n")
		if narrative, err := opts.Rewrite(ctx, prompt); err != nil {
			lines = append(lines, fmt.Sprintf("⚠️ LLM enhancement failed: %v", err))
		} else {
			// A successful rewrite replaces the structured lines wholesale.
			lines = []string{narrative}
		}
	}

	return &Result{
		ID:            uuid.New(),
		DashboardName: opts.DashboardName,
		Source:        ds.Name,
		CreatedAt:     time.Now().UTC(),
		Lines:         lines,
	}
}
