package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/config"
	"github.com/matsen/bibx/internal/storage"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new bibx workspace",
	Long: `Initialize a new bibx workspace in the current directory.

Creates:
  .bibx/
  ├── corpus.jsonl    # Empty corpus
  ├── config.json     # Default config
  └── cache/          # Query index (safe to delete)`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a bibx workspace")
	}

	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating .bibx directory: %v", err)
	}

	if err := storage.WriteAll(config.CorpusPath(root), nil); err != nil {
		exitWithError(ExitError, "creating corpus.jsonl: %v", err)
	}

	if err := config.Default().Save(root); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized bibx workspace in %s\n", config.BibxPath(root))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: config.BibxPath(root)})
	}
	return nil
}
