package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/insightloom/internal/dataset"
	"github.com/KaramelBytes/insightloom/internal/report"
)

var (
	statMinCorr    float64
	statMaxRows    int
	statDelimiter  string
	statOutputPath string
)

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Profile a CSV/TSV dataset: schema, statistics, and correlations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt := dataset.DefaultOptions()
		if cfg != nil && cfg.MaxRows > 0 {
			opt.MaxRows = cfg.MaxRows
		}
		if statMaxRows > 0 {
			opt.MaxRows = statMaxRows
		}
		delim, err := parseDelimiterFlag(statDelimiter)
		if err != nil {
			return err
		}
		opt.Delimiter = delim
		ds, err := dataset.ReadCSV(args[0], opt)
		if err != nil {
			return err
		}
		md := report.Build(ds, statMinCorr).Markdown()
		if statOutputPath != "" {
			if err := os.WriteFile(statOutputPath, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote report to %s\n", statOutputPath)
			return nil
		}
		fmt.Print(md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Float64Var(&statMinCorr, "min-corr", 0.3, "minimum absolute correlation to include (0 disables the section)")
	statsCmd.Flags().IntVar(&statMaxRows, "max-rows", 0, "maximum rows to load (0 = config default)")
	statsCmd.Flags().StringVar(&statDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	statsCmd.Flags().StringVarP(&statOutputPath, "output", "o", "", "optional path to write the report")
}
