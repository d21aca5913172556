package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/author"
	"github.com/matsen/bibx/internal/registry"
)

// DefaultFuzzyCutoff is the lowest similarity ratio reported.
const DefaultFuzzyCutoff = 0.80

var (
	fuzzyKind   string
	fuzzyCutoff float64
)

func init() {
	fuzzyCmd.Flags().StringVar(&fuzzyKind, "kind", "author", "Entity kind to compare")
	fuzzyCmd.Flags().Float64Var(&fuzzyCutoff, "cutoff", DefaultFuzzyCutoff, "Minimum similarity ratio in [0, 1)")
	rootCmd.AddCommand(fuzzyCmd)
}

var fuzzyCmd = &cobra.Command{
	Use:   "fuzzy",
	Short: "Find near-identical entity names",
	Long: `Group names of one entity kind whose similarity ratio is at least the cutoff
and below 1. Groups are candidates for "bx rename".`,
	Args: cobra.NoArgs,
	RunE: runFuzzy,
}

func runFuzzy(cmd *cobra.Command, args []string) error {
	kind, err := registry.ParseKind(fuzzyKind)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if fuzzyCutoff < 0 || fuzzyCutoff >= 1 {
		exitWithError(ExitError, "cutoff must be in [0, 1), got %v", fuzzyCutoff)
	}

	root := mustFindRepository()
	cfg := mustLoadConfig(root)
	ix := mustLoadIndex(root, cfg)

	e := ix.Entity(kind)
	if e == nil {
		exitWithError(ExitError, "no names to compare for %s", kind)
	}

	groups := author.FuzzyGroups(e.Vocabulary.Names, fuzzyCutoff)
	if humanOutput {
		if len(groups) == 0 {
			fmt.Println("No similar names found")
		}
		for _, g := range groups {
			fmt.Printf("%s\n  %s\n", g.Name, strings.Join(g.Similar, "\n  "))
		}
	} else {
		if groups == nil {
			groups = []author.Group{}
		}
		outputJSON(groups)
	}
	return nil
}
