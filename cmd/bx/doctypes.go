package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctypesCmd)
}

var doctypesCmd = &cobra.Command{
	Use:   "doctypes",
	Short: "List document types with their document IDs",
	Args:  cobra.NoArgs,
	RunE:  runDoctypes,
}

// DocTypeResult lists the documents of one canonical type.
type DocTypeResult struct {
	Type      string   `json:"type"`
	Count     int      `json:"count"`
	Documents []string `json:"documents"`
}

func runDoctypes(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)
	ix := mustLoadIndex(root, cfg)

	results := make([]DocTypeResult, 0, len(ix.DocumentTypes))
	for _, dt := range ix.DocumentTypes {
		ids := make([]string, len(dt.Documents))
		for i, d := range dt.Documents {
			ids[i] = strconv.Itoa(d)
		}
		results = append(results, DocTypeResult{Type: dt.Type, Count: dt.Count, Documents: ids})
	}

	if humanOutput {
		for _, r := range results {
			fmt.Printf("%s (%d)\n  %s\n", r.Type, r.Count, strings.Join(r.Documents, ", "))
		}
	} else {
		outputJSON(results)
	}
	return nil
}
