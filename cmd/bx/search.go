package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/registry"
	"github.com/matsen/bibx/internal/storage"
)

var (
	searchLimit  int
	searchEntity string
)

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	searchCmd.Flags().StringVar(&searchEntity, "entity", "", "List the documents of an entity ID (a_0, j_3, k_12, ...)")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(getCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search documents by title, abstract and keywords",
	Long: `Search the query index.

With a query, matches titles, abstracts and keywords (SQLite FTS5 syntax;
queries with punctuation are matched as a phrase). With --entity, lists the
documents an entity appears in.

Examples:
  bx search "dengue vector"
  bx search --entity a_0
  bx search --entity c_2 --human`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one document or entity",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

// EntityDetail is an entity with its documents.
type EntityDetail struct {
	storage.EntityRow
	DocumentList []storage.DocumentRow `json:"document_list"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && searchEntity == "" {
		exitWithError(ExitError, "give a query or --entity")
	}

	root := mustFindRepository()
	db := mustOpenDatabase(root)
	defer db.Close()

	var docs []storage.DocumentRow
	var err error
	if searchEntity != "" {
		if _, ok := registry.KindOf(searchEntity); !ok {
			exitWithError(ExitError, "not an entity ID: %s", searchEntity)
		}
		docs, err = db.DocumentsOf(searchEntity)
		if len(docs) > searchLimit {
			docs = docs[:searchLimit]
		}
	} else {
		docs, err = db.Search(args[0], searchLimit)
	}
	if err != nil {
		exitWithError(ExitError, "search failed: %v", err)
	}

	if humanOutput {
		if len(docs) == 0 {
			fmt.Println("No documents found")
			return nil
		}
		printDocuments(docs)
	} else {
		if docs == nil {
			docs = []storage.DocumentRow{}
		}
		outputJSON(docs)
	}
	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	db := mustOpenDatabase(root)
	defer db.Close()

	id := args[0]
	if _, ok := registry.KindOf(id); ok {
		e, err := db.EntityByID(id)
		if err != nil {
			exitWithError(ExitError, "looking up %s: %v", id, err)
		}
		if e == nil {
			exitWithError(ExitError, "entity not found: %s", id)
		}
		docs, err := db.DocumentsOf(id)
		if err != nil {
			exitWithError(ExitError, "looking up documents of %s: %v", id, err)
		}
		if humanOutput {
			fmt.Printf("%s  %s (%s)\n", e.ID, e.Name, e.Kind)
			fmt.Printf("Documents: %s  Citations: %s\n\n", count(e.Documents), count(e.Citations))
			printDocuments(docs)
		} else {
			if docs == nil {
				docs = []storage.DocumentRow{}
			}
			outputJSON(EntityDetail{EntityRow: *e, DocumentList: docs})
		}
		return nil
	}

	doc, err := db.DocumentByID(id)
	if err != nil {
		exitWithError(ExitError, "looking up %s: %v", id, err)
	}
	if doc == nil {
		exitWithError(ExitError, "document not found: %s", id)
	}
	if humanOutput {
		fmt.Printf("[%s] %s\n", doc.ID, doc.Title)
		fmt.Printf("    %s\n", doc.Authors)
		fmt.Printf("    %s (%d), %s, %s citations\n", doc.Source, doc.Year, doc.DocumentType, count(doc.Citations))
		if doc.DOI != "" {
			fmt.Printf("    doi:%s\n", doc.DOI)
		}
	} else {
		outputJSON(doc)
	}
	return nil
}

func printDocuments(docs []storage.DocumentRow) {
	rows := make([][]string, len(docs))
	for i, d := range docs {
		year := ""
		if d.Year != 0 {
			year = itoa(d.Year)
		}
		rows[i] = []string{d.ID, year, truncateString(d.Title, TitleMaxLen), truncateString(d.Source, NameMaxLen), count(d.Citations)}
	}
	printTable([]string{"ID", "Year", "Title", "Source", "Citations"}, rows)
}
