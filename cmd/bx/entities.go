package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/registry"
)

var (
	entitiesKind  string
	entitiesLimit int
)

func init() {
	entitiesCmd.Flags().StringVar(&entitiesKind, "kind", "author", "Entity kind: document, author, source, institution, country, author_keyword, keyword_plus")
	entitiesCmd.Flags().IntVar(&entitiesLimit, "limit", 0, "Show only the first N entries (0 for all)")
	rootCmd.AddCommand(entitiesCmd)
}

var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "List the identifier table of one entity kind",
	Long: `List the identifier table of one entity kind.

Entities are ordered by document count, most frequent first, and numbered in
that order (a_0, a_1, ... for authors). Documents are numbered in corpus
order and labelled "Author (Year) Title. Source".`,
	Args: cobra.NoArgs,
	RunE: runEntities,
}

// EntityResult is one entry of an identifier table.
type EntityResult struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Documents int    `json:"documents,omitempty"`
	Citations int    `json:"citations,omitempty"`
}

func runEntities(cmd *cobra.Command, args []string) error {
	kind, err := registry.ParseKind(entitiesKind)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	root := mustFindRepository()
	cfg := mustLoadConfig(root)
	ix := mustLoadIndex(root, cfg)

	var results []EntityResult
	entries := ix.Registry(kind).Entries()
	e := ix.Entity(kind)
	for i, entry := range entries {
		r := EntityResult{ID: entry.ID, Name: entry.Name}
		if e != nil {
			r.Documents = e.Vocabulary.Documents[i]
			r.Citations = e.Vocabulary.Citations[i]
		} else if i < len(ix.Citations) {
			r.Citations = ix.Citations[i]
		}
		results = append(results, r)
	}
	if entitiesLimit > 0 && len(results) > entitiesLimit {
		results = results[:entitiesLimit]
	}

	if !humanOutput {
		if results == nil {
			results = []EntityResult{}
		}
		outputJSON(results)
		return nil
	}

	rows := make([][]string, len(results))
	for i, r := range results {
		if kind == registry.KindDocument {
			rows[i] = []string{r.ID, truncateString(r.Name, TitleMaxLen), count(r.Citations)}
		} else {
			rows[i] = []string{r.ID, truncateString(r.Name, NameMaxLen), count(r.Documents), count(r.Citations)}
		}
	}
	if kind == registry.KindDocument {
		printTable([]string{"ID", "Document", "Citations"}, rows)
	} else {
		printTable([]string{"ID", "Name", "Documents", "Citations"}, rows)
	}
	return nil
}
