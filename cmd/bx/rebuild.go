package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query index from the corpus",
	Long: `Rebuild the SQLite query index from corpus.jsonl.

Use this after editing or restoring corpus.jsonl, or if the index becomes
corrupted.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	RebuildResponse
	PreviousBuild string `json:"previous_build,omitempty"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)
	ix := mustLoadIndex(root, cfg)

	db := mustOpenDatabase(root)
	defer db.Close()

	previous, err := db.LastBuild()
	if err != nil {
		log.WithError(err).Debug("reading previous build")
	}

	info, err := db.RebuildFromIndex(ix)
	if err != nil {
		exitWithError(ExitError, "rebuilding index: %v", err)
	}

	result := RebuildResult{
		RebuildResponse: RebuildResponse{Status: "rebuilt", Documents: info.Documents, BuildID: info.ID},
	}
	if previous != nil {
		result.PreviousBuild = previous.ID
	}

	if humanOutput {
		fmt.Printf("Rebuilt query index with %s documents\n", count(info.Documents))
		if previous != nil {
			fmt.Printf("Previous build %s (%s)\n", previous.ID, humanize.Time(previous.BuiltAt))
		}
	} else {
		outputJSON(result)
	}
	return nil
}
