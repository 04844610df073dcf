package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/insightloom/internal/history"
)

var histLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved insight runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
		runs, err := store.List(histLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No saved runs")
			return nil
		}
		for _, r := range runs {
			fmt.Printf("%s  %s  %s (%s, %d lines)\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.DashboardName, r.Source, len(r.Lines))
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the insight lines of a saved run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
		run, err := store.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s | %s (%s)\n\n", run.DashboardName, run.Source, run.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Println(strings.Join(run.Lines, "\n"))
		return nil
	},
}

var historyRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a saved run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Deleted run %s\n", args[0])
		return nil
	},
}

func openHistory() (*history.Store, error) {
	dbPath, err := historyPath()
	if err != nil {
		return nil, err
	}
	return history.Open(dbPath)
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRmCmd)
	historyListCmd.Flags().IntVar(&histLimit, "limit", 20, "maximum runs to list (0 = all)")
}
