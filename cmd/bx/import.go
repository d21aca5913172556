package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/analysis"
	"github.com/matsen/bibx/internal/config"
	"github.com/matsen/bibx/internal/document"
	"github.com/matsen/bibx/internal/importer"
	"github.com/matsen/bibx/internal/storage"
)

var (
	importDialect        string
	importKeepDuplicates bool
	importMerge          bool
	importDryRun         bool
)

func init() {
	importCmd.Flags().StringVar(&importDialect, "dialect", "", "Export dialect: scopus, wos or pubmed (default from config)")
	importCmd.Flags().BoolVar(&importKeepDuplicates, "keep-duplicates", false, "Keep documents with a repeated DOI or title")
	importCmd.Flags().BoolVar(&importMerge, "merge", false, "Add to the stored corpus instead of replacing it")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show the summary without writing")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a database export",
	Long: `Import a Scopus, Web of Science or PubMed export into the workspace.

Usage:
  bx import --dialect scopus scopus.bib
  bx import --dialect wos savedrecs.txt --merge
  bx import --dialect pubmed pubmed.txt.gz --dry-run

Supported dialects:
  scopus  - Scopus BibTeX export
  wos     - Web of Science BibTeX export
  pubmed  - PubMed MEDLINE format

Gzipped files are read transparently. Without --merge the stored corpus is
replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	dialect := cfg.Dialect()
	if importDialect != "" {
		d, err := document.ParseDialect(importDialect)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		dialect = d
	}
	removeDuplicates := cfg.RemoveDuplicates && !importKeepDuplicates

	t, err := importer.Load(args[0], dialect)
	if err != nil {
		if importer.IsParseError(err) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	corpus := analysis.NewCorpus(t, removeDuplicates)
	if importMerge {
		stored, err := storage.ReadCorpus(config.CorpusPath(root))
		if err != nil {
			exitWithError(ExitDataError, "reading corpus: %v", err)
		}
		if stored.Len() > 0 {
			corpus = analysis.Merge(analysis.NewCorpus(stored, false), corpus, removeDuplicates)
		}
	}

	ix, err := analysis.Derive(corpus, derivationOptions(cfg))
	if err != nil {
		exitWithError(ExitDataError, "deriving index: %v", err)
	}

	resp := RebuildResponse{Status: "imported", Documents: ix.Len(), Summary: ix.Verbose()}
	if importDryRun {
		resp.Status = "dry-run"
	} else {
		resp.BuildID = mustSaveIndex(root, ix).ID
	}

	if humanOutput {
		if importDryRun {
			for _, line := range resp.Summary {
				fmt.Println(line)
			}
			fmt.Println("\n(dry run, nothing written)")
		} else {
			printSummary(resp.Summary, resp)
		}
	} else {
		outputJSON(resp)
	}
	return nil
}
