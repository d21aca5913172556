package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/analysis"
	"github.com/matsen/bibx/internal/author"
)

var (
	authorsMatch []string
	authorsLimit int
)

func init() {
	authorsCmd.Flags().StringArrayVar(&authorsMatch, "match", nil, "Keep authors matching this name (repeatable; \"Yu\", \"Tim Yu\", \"Yu, T\")")
	authorsCmd.Flags().IntVar(&authorsLimit, "limit", 0, "Show only the first N authors (0 for all)")
	rootCmd.AddCommand(authorsCmd)
}

var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "Show author metrics",
	Long: `Show documents, citations, self-citations and h-index per author.

With --match, only authors matching at least one query are listed. A query
is a family name alone, "First Last" or "Last, First"; first names match
by prefix or initials.`,
	Args: cobra.NoArgs,
	RunE: runAuthors,
}

func runAuthors(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)
	ix := mustLoadIndex(root, cfg)

	rows := filterAuthors(ix.Authors(), authorsMatch)
	if authorsLimit > 0 && len(rows) > authorsLimit {
		rows = rows[:authorsLimit]
	}

	if !humanOutput {
		if rows == nil {
			rows = []analysis.AuthorRow{}
		}
		outputJSON(rows)
		return nil
	}

	table := make([][]string, len(rows))
	for i, r := range rows {
		table[i] = []string{r.ID, truncateString(r.Name, NameMaxLen), count(r.Documents), count(r.Citations), count(r.SelfCitations), itoa(r.HIndex)}
	}
	printTable([]string{"ID", "Name", "Documents", "Citations", "Self", "H-Index"}, table)
	return nil
}

// filterAuthors keeps rows whose name matches any query.
func filterAuthors(rows []analysis.AuthorRow, match []string) []analysis.AuthorRow {
	if len(match) == 0 {
		return rows
	}
	queries := make([]author.Query, len(match))
	for i, m := range match {
		queries[i] = author.ParseQuery(m)
	}

	var out []analysis.AuthorRow
	for _, r := range rows {
		for _, q := range queries {
			if q.Matches(r.Name) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
