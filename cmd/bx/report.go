package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/analysis"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the descriptive statistics of the corpus",
	Long: `Show the descriptive statistics of the corpus: timespan, totals of each
entity class, document types, averages, authorship and citations.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)
	ix := mustLoadIndex(root, cfg)

	items := ix.Report()
	if !humanOutput {
		outputJSON(items)
		return nil
	}

	var rows [][]string
	for _, item := range items {
		if item.Label == analysis.ReportSeparator {
			rows = append(rows, []string{"", ""})
			continue
		}
		rows = append(rows, []string{item.Label, fmt.Sprint(item.Value)})
	}
	printTable([]string{"Main Information", "Results"}, rows)
	return nil
}
