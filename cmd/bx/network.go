package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/network"
	"github.com/matsen/bibx/internal/registry"
)

var (
	networkKind   string
	networkMin    int
	networkSim    string
	networkCut    float64
	networkFormat string
	networkLayout string
	networkOutput string
)

func init() {
	networkCollabCmd.Flags().StringVar(&networkKind, "kind", "author", "Entity kind: author, country, institution, author_keyword or keyword_plus")
	networkCollabCmd.Flags().IntVar(&networkMin, "min", 0, "Drop entities with fewer links")

	networkDocsCmd.Flags().StringVar(&networkSim, "sim", string(network.Coupling), "Similarity: coup (bibliographic coupling) or cocit (shared references)")
	networkDocsCmd.Flags().Float64Var(&networkCut, "cut", -1, "Keep edges at or above this weight (default 0.3 for coup, 5 for cocit)")

	for _, c := range []*cobra.Command{networkCollabCmd, networkDocsCmd} {
		c.Flags().StringVar(&networkFormat, "format", "json", "Output format: json, cytoscape or html")
		c.Flags().StringVar(&networkLayout, "layout", "force", "HTML layout: force, circle, grid or concentric")
		c.Flags().StringVarP(&networkOutput, "output", "o", "", "Write to this file instead of stdout")
		networkCmd.AddCommand(c)
	}
	rootCmd.AddCommand(networkCmd)
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Build collaboration and document-similarity networks",
}

var networkCollabCmd = &cobra.Command{
	Use:   "collab",
	Short: "Link entities that appear next to each other in a document",
	Long: `Build a collaboration network: authors in byline order, countries and
institutions in author order, keywords in listed order. Links are binary.

Examples:
  bx network collab --kind country --min 2
  bx network collab --kind author --format html -o authors.html`,
	Args: cobra.NoArgs,
	RunE: runNetworkCollab,
}

var networkDocsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Link documents by shared references",
	Long: `Build a document network from cited references.

  coup   cosine similarity of the reference sets (0 to 1)
  cocit  number of shared references

Examples:
  bx network docs --sim coup --cut 0.5
  bx network docs --sim cocit --format cytoscape -o cocit.json`,
	Args: cobra.NoArgs,
	RunE: runNetworkDocs,
}

func runNetworkCollab(cmd *cobra.Command, args []string) error {
	kind, err := registry.ParseKind(networkKind)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	root := mustFindRepository()
	cfg := mustLoadConfig(root)
	ix := mustLoadIndex(root, cfg)

	g, err := network.Collaboration(ix, kind, networkMin)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return writeGraph(g)
}

func runNetworkDocs(cmd *cobra.Command, args []string) error {
	sim, err := network.ParseSimilarity(networkSim)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	cut := networkCut
	if cut < 0 {
		cut = sim.DefaultCut()
	}

	root := mustFindRepository()
	cfg := mustLoadConfig(root)
	ix := mustLoadIndex(root, cfg)

	g, err := network.Documents(ix, sim, cut)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return writeGraph(g)
}

// writeGraph renders g in the requested format to stdout or the output file.
func writeGraph(g *network.Graph) error {
	var out string
	switch networkFormat {
	case "json":
		if networkOutput == "" {
			outputJSON(g)
			return nil
		}
		data, err := marshalIndent(g)
		if err != nil {
			exitWithError(ExitError, "encoding graph: %v", err)
		}
		out = string(data)
	case "cytoscape":
		s, err := g.ToCytoscapeJSON()
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		out = s + "\n"
	case "html":
		s, err := g.ToHTML(network.HTMLOptions{Layout: networkLayout})
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		out = s
	default:
		exitWithError(ExitError, "unknown format %q (want json, cytoscape or html)", networkFormat)
	}

	if networkOutput == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(networkOutput, []byte(out), 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", networkOutput, err)
	}
	if humanOutput {
		fmt.Printf("Wrote %s nodes and %s edges to %s\n", count(len(g.Nodes)), count(len(g.Edges)), networkOutput)
	} else {
		outputJSON(StatusResponse{Status: "written", Path: networkOutput})
	}
	return nil
}
