package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/insightloom/internal/ai"
	"github.com/KaramelBytes/insightloom/internal/dataset"
	"github.com/KaramelBytes/insightloom/internal/history"
	"github.com/KaramelBytes/insightloom/internal/insight"
)

var (
	insDashboard  string
	insNoCorr     bool
	insMinCorr    float64
	insZThreshold float64
	insNarrative  bool
	insModel      string
	insProvider   string
	insSave       bool
	insOutputPath string
	insMaxRows    int
	insDelimiter  string
)

var insightsCmd = &cobra.Command{
	Use:   "insights <file>",
	Short: "Generate readable insights for a CSV/TSV dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt := dataset.DefaultOptions()
		if cfg != nil && cfg.MaxRows > 0 {
			opt.MaxRows = cfg.MaxRows
		}
		if insMaxRows > 0 {
			opt.MaxRows = insMaxRows
		}
		delim, err := parseDelimiterFlag(insDelimiter)
		if err != nil {
			return err
		}
		opt.Delimiter = delim
		ds, err := dataset.ReadCSV(path, opt)
		if err != nil {
			return err
		}

		gopts := insight.DefaultOptions()
		if cfg != nil {
			if cfg.MinCorrelation > 0 {
				gopts.MinCorrelation = cfg.MinCorrelation
			}
			if cfg.ZThreshold > 0 {
				gopts.ZThreshold = cfg.ZThreshold
			}
		}
		if insDashboard != "" {
			gopts.DashboardName = insDashboard
		}
		gopts.IncludeCorrelations = !insNoCorr
		if cmd.Flags().Changed("min-corr") {
			gopts.MinCorrelation = insMinCorr
		}
		if cmd.Flags().Changed("z-threshold") {
			gopts.ZThreshold = insZThreshold
		}
		if insNarrative {
			rw, err := buildRewriter()
			if err != nil {
				return err
			}
			gopts.Rewrite = rw
		}

		res := insight.Generate(cmd.Context(), ds, gopts)
		text := strings.Join(res.Lines, "\n")

		if insOutputPath != "" {
			if err := os.WriteFile(insOutputPath, []byte(text+"\n"), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote insights to %s\n", insOutputPath)
		} else {
			fmt.Println(text)
		}

		if insSave {
			dbPath, err := historyPath()
			if err != nil {
				return err
			}
			store, err := history.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Save(res); err != nil {
				return err
			}
			fmt.Printf("✓ Saved run %s to history\n", res.ID)
		}
		return nil
	},
}

// buildRewriter wires the configured AI provider into the composer's
// rewrite callback.
func buildRewriter() (insight.RewriteFunc, error) {
	provider := insProvider
	if provider == "" && cfg != nil {
		provider = cfg.DefaultProvider
	}
	if provider == "" {
		provider = ai.ProviderOpenRouter
	}
	model := insModel
	if model == "" && cfg != nil {
		model = cfg.DefaultModel
	}
	if model == "" {
		return nil, fmt.Errorf("no model configured; set default_model or pass --model")
	}

	rc := ai.RuntimeConfig{}
	maxTokens, temperature := 1024, 0.7
	if cfg != nil {
		rc.APIKey = cfg.APIKey
		rc.Host = cfg.OllamaHost
		rc.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSec) * time.Second
		if provider == ai.ProviderOllama && cfg.OllamaTimeoutSec > 0 {
			rc.HTTPTimeout = time.Duration(cfg.OllamaTimeoutSec) * time.Second
		}
		rc.RetryMax = cfg.RetryMaxAttempts
		rc.BaseDelay = time.Duration(cfg.RetryBaseDelayMs) * time.Millisecond
		rc.MaxDelay = time.Duration(cfg.RetryMaxDelayMs) * time.Millisecond
		if cfg.MaxTokens > 0 {
			maxTokens = cfg.MaxTokens
		}
		if cfg.Temperature > 0 {
			temperature = cfg.Temperature
		}
	}
	if rc.APIKey == "" {
		rc.APIKey = os.Getenv("OPENROUTER_API_KEY")
	}

	rt, ok := ai.GetRuntime(provider, rc)
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s (use openrouter or ollama)", provider)
	}
	return ai.NarrativeRewriter(rt, model, maxTokens, temperature), nil
}

func parseDelimiterFlag(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

func init() {
	rootCmd.AddCommand(insightsCmd)
	insightsCmd.Flags().StringVarP(&insDashboard, "dashboard", "d", "", "dashboard name used in the closing summary line")
	insightsCmd.Flags().BoolVar(&insNoCorr, "no-correlations", false, "skip correlation insights")
	insightsCmd.Flags().Float64Var(&insMinCorr, "min-corr", 0.3, "minimum absolute correlation to report")
	insightsCmd.Flags().Float64Var(&insZThreshold, "z-threshold", 3.0, "|z| threshold for anomaly detection")
	insightsCmd.Flags().BoolVar(&insNarrative, "narrative", false, "rewrite insights into an executive narrative via the configured AI provider")
	insightsCmd.Flags().StringVar(&insModel, "model", "", "model for narrative rewriting (overrides config)")
	insightsCmd.Flags().StringVar(&insProvider, "provider", "", "AI provider: openrouter | ollama (overrides config)")
	insightsCmd.Flags().BoolVar(&insSave, "save", false, "record this run in the local history database")
	insightsCmd.Flags().StringVarP(&insOutputPath, "output", "o", "", "optional path to write insights instead of stdout")
	insightsCmd.Flags().IntVar(&insMaxRows, "max-rows", 0, "maximum rows to load (0 = config default)")
	insightsCmd.Flags().StringVar(&insDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
}
