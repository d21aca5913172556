package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/analysis"
)

var (
	renameTarget string
	renameFrom   []string
	renameTo     string
)

func init() {
	renameCmd.Flags().StringVar(&renameTarget, "target", "author", "Field to edit: author, institution, country, language or source")
	renameCmd.Flags().StringArrayVar(&renameFrom, "from", nil, "Spelling to replace (repeatable, case-insensitive)")
	renameCmd.Flags().StringVar(&renameTo, "to", "", "Replacement spelling")
	renameCmd.MarkFlagRequired("from")
	renameCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(renameCmd)
}

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Merge variant spellings of a name",
	Long: `Replace every variant spelling of a name in the stored corpus and rebuild
the index. Use "bx fuzzy" to find candidates.

Examples:
  bx rename --target author --from "smith, j" --from "smith, jon" --to "smith, john"
  bx rename --target country --from "Brasil" --to "Brazil"`,
	Args: cobra.NoArgs,
	RunE: runRename,
}

// RenameResponse reports a rename.
type RenameResponse struct {
	RebuildResponse
	Changed int `json:"changed"`
}

func runRename(cmd *cobra.Command, args []string) error {
	target, err := analysis.ParseRenameTarget(renameTarget)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	root := mustFindRepository()
	cfg := mustLoadConfig(root)
	ix := mustLoadIndex(root, cfg)

	corpus, changed, err := analysis.Rename(ix.Corpus, target, renameFrom, renameTo)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	renamed, err := analysis.Derive(corpus, derivationOptions(cfg))
	if err != nil {
		exitWithError(ExitDataError, "deriving index: %v", err)
	}
	info := mustSaveIndex(root, renamed)

	resp := RenameResponse{
		RebuildResponse: RebuildResponse{Status: "renamed", Documents: renamed.Len(), BuildID: info.ID},
		Changed:         changed,
	}
	if humanOutput {
		fmt.Printf("Renamed %s in %s documents\n", target, count(changed))
	} else {
		outputJSON(resp)
	}
	return nil
}
