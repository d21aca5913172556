package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/export"
)

var (
	exportFormat string
	exportOutput string
	exportAppend bool
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "bibtex", "Export format: bibtex or xlsx")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (required for xlsx; bibtex defaults to stdout)")
	exportCmd.Flags().BoolVar(&exportAppend, "append", false, "Append BibTeX entries missing from the output file")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the corpus",
	Long: `Export the corpus.

Formats:
  bibtex  Scopus-style BibTeX, re-importable with "bx import --dialect scopus"
  xlsx    Workbook with the report, documents, entity tables, author metrics,
          production per year and Bradford zones

With --append, entries whose DOI or citation key is already in the output
file are skipped.

Examples:
  bx export > corpus.bib
  bx export -o refs.bib --append
  bx export --format xlsx -o analysis.xlsx`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// ExportResponse reports a written export.
type ExportResponse struct {
	Status  string `json:"status"`
	Path    string `json:"path"`
	Added   int    `json:"added,omitempty"`
	Skipped int    `json:"skipped,omitempty"`
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportAppend && exportOutput == "" {
		exitWithError(ExitError, "--append requires --output")
	}

	root := mustFindRepository()
	cfg := mustLoadConfig(root)
	ix := mustLoadIndex(root, cfg)
	t := ix.Corpus.Table()

	resp := ExportResponse{Status: "exported", Path: exportOutput}
	switch exportFormat {
	case "bibtex":
		switch {
		case exportAppend:
			res, err := export.AppendBibTeX(exportOutput, t)
			if err != nil {
				exitWithError(ExitError, "appending BibTeX: %v", err)
			}
			resp.Added, resp.Skipped = res.Added, res.Skipped
		case exportOutput == "":
			fmt.Print(export.ToBibTeXList(t))
			return nil
		default:
			if err := os.WriteFile(exportOutput, []byte(export.ToBibTeXList(t)), 0644); err != nil {
				exitWithError(ExitError, "writing %s: %v", exportOutput, err)
			}
			resp.Added = t.Len()
		}
	case "xlsx":
		if exportOutput == "" {
			exitWithError(ExitError, "xlsx export requires --output")
		}
		if err := export.WriteWorkbook(exportOutput, ix); err != nil {
			exitWithError(ExitError, "writing workbook: %v", err)
		}
	default:
		exitWithError(ExitError, "unknown format %q (want bibtex or xlsx)", exportFormat)
	}

	if humanOutput {
		if exportFormat == "bibtex" {
			fmt.Printf("Wrote %s entries to %s (%s skipped)\n", count(resp.Added), resp.Path, count(resp.Skipped))
		} else {
			fmt.Printf("Wrote workbook to %s\n", resp.Path)
		}
	} else {
		outputJSON(resp)
	}
	return nil
}
