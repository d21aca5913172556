package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/analysis"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats <table>",
	Short: "Show one statistics table",
	Long: `Show one statistics table of the corpus.

Tables:
  per-year       Documents and citations per publication year
  lotka          Authors by number of documents written
  bradford       Sources ranked by documents, with Bradford zones 1-3
  collaboration  Documents per year by number of authors, collaboration index
  ref-years      Unique cited references by estimated year
  authorship     Single- and multi-authored document counts`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: statsTables,
	RunE:      runStats,
}

var statsTables = []string{"per-year", "lotka", "bradford", "collaboration", "ref-years", "authorship"}

// AuthorshipResult counts documents by number of authors.
type AuthorshipResult struct {
	Single int `json:"single_authored"`
	Multi  int `json:"multi_authored"`
}

func runStats(cmd *cobra.Command, args []string) error {
	name := strings.ToLower(args[0])
	valid := false
	for _, t := range statsTables {
		if t == name {
			valid = true
			break
		}
	}
	if !valid {
		exitWithError(ExitError, "unknown table %q (want %s)", args[0], strings.Join(statsTables, ", "))
	}

	root := mustFindRepository()
	cfg := mustLoadConfig(root)
	ix := mustLoadIndex(root, cfg)

	if !humanOutput {
		outputJSON(statsValue(ix, name))
		return nil
	}

	header, rows := statsRows(ix, name)
	printTable(header, rows)
	return nil
}

func statsValue(ix *analysis.Index, name string) interface{} {
	switch name {
	case "per-year":
		return ix.PerYear()
	case "lotka":
		return ix.Lotka()
	case "bradford":
		return ix.Bradford()
	case "collaboration":
		return ix.Collaboration
	case "ref-years":
		return ix.ReferenceYearCounts()
	default:
		single, multi := ix.Authorship()
		return AuthorshipResult{Single: single, Multi: multi}
	}
}

func statsRows(ix *analysis.Index, name string) ([]string, [][]string) {
	var rows [][]string
	switch name {
	case "per-year":
		for _, y := range ix.PerYear() {
			rows = append(rows, []string{itoa(y.Year), count(y.Documents), count(y.Citations)})
		}
		return []string{"Year", "Documents", "Citations"}, rows
	case "lotka":
		for _, l := range ix.Lotka() {
			rows = append(rows, []string{itoa(l.Documents), count(l.Authors), ftoa(l.Share)})
		}
		return []string{"Documents", "Authors", "Share"}, rows
	case "bradford":
		for _, b := range ix.Bradford() {
			rows = append(rows, []string{truncateString(b.Name, NameMaxLen), count(b.Documents), count(b.Cumulative), itoa(int(b.Zone))})
		}
		return []string{"Source", "Documents", "Cumulative", "Zone"}, rows
	case "collaboration":
		header := []string{"Year"}
		for _, s := range ix.Collaboration.Sizes {
			header = append(header, fmt.Sprintf("%d author(s)", s))
		}
		header = append(header, "Total", "Collaboration Index")
		for _, r := range ix.Collaboration.Rows {
			row := []string{r.Year}
			for _, c := range r.Counts {
				row = append(row, count(c))
			}
			rows = append(rows, append(row, count(r.Total), ftoa(r.Index)))
		}
		return header, rows
	case "ref-years":
		for _, y := range ix.ReferenceYearCounts() {
			rows = append(rows, []string{itoa(y.Year), count(y.Documents)})
		}
		return []string{"Year", "References"}, rows
	default:
		single, multi := ix.Authorship()
		rows = append(rows, []string{"Single-Authored", count(single)}, []string{"Multi-Authored", count(multi)})
		return []string{"Authorship", "Documents"}, rows
	}
}
