package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/config"
	"github.com/matsen/bibx/internal/embedding"
)

var (
	embedField      string
	embedModel      string
	embedDimensions int
	embedRate       float64
	embedOutput     string
)

func init() {
	embedCmd.Flags().StringVar(&embedField, "field", "title", "Text to embed: title or abstract")
	embedCmd.Flags().StringVar(&embedModel, "model", "", "Embedding model (default from global config, then "+embedding.DefaultModel+")")
	embedCmd.Flags().IntVar(&embedDimensions, "dimensions", 0, "Expected vector length (0 accepts any length for non-default models)")
	embedCmd.Flags().Float64Var(&embedRate, "rate", 0, "Requests per second (default from global config, then 10)")
	embedCmd.Flags().StringVarP(&embedOutput, "output", "o", "", "Output JSONL file (default .bibx/embeddings.jsonl)")
	rootCmd.AddCommand(embedCmd)
}

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Embed document titles or abstracts with Ollama",
	Long: `Embed the title or abstract of every document through an Ollama-compatible
/api/embeddings service and write one {"doc_id", "model", "vector"} line per
document. Documents without text in the field are skipped.

Requests are throttled and not retried: the first failure stops the run and
the lines already written are kept.

The service URL comes from ` + config.OllamaURLEnv + `, then the global config,
then ` + embedding.DefaultURL + `.`,
	Args: cobra.NoArgs,
	RunE: runEmbed,
}

// EmbedResponse reports an embedding run.
type EmbedResponse struct {
	embedding.Stats
	Model string `json:"model"`
	Path  string `json:"path"`
}

func runEmbed(cmd *cobra.Command, args []string) error {
	field, err := embedding.ParseField(embedField)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	root := mustFindRepository()
	cfg := mustLoadConfig(root)
	ix := mustLoadIndex(root, cfg)

	global, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	client := embedding.NewOllama(embeddingOptions(global)...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	mustCheckEmbedder(ctx, client)

	path := embedOutput
	if path == "" {
		path = config.EmbeddingsPath(root)
	}
	f, err := os.Create(path)
	if err != nil {
		exitWithError(ExitError, "creating %s: %v", path, err)
	}
	defer f.Close()

	stats, err := embedding.EmbedCorpus(ctx, client, ix, field, f)
	if err != nil {
		exitWithError(ExitServiceError, "%v (%d documents written to %s)", err, stats.Embedded, path)
	}

	resp := EmbedResponse{Stats: stats, Model: client.Model(), Path: path}
	if humanOutput {
		fmt.Printf("Embedded %s documents with %s (%s without %s) into %s\n",
			count(stats.Embedded), resp.Model, count(stats.Skipped), field, path)
	} else {
		outputJSON(resp)
	}
	return nil
}

// embeddingOptions merges the flags over the global config.
func embeddingOptions(global *config.GlobalConfig) []embedding.Option {
	var opts []embedding.Option
	if url := global.EmbeddingURL(); url != "" {
		opts = append(opts, embedding.WithURL(url))
	}

	model := embedModel
	if model == "" {
		model = global.Embedding.Model
	}
	if model != "" {
		opts = append(opts, embedding.WithModel(model))
	}
	if embedDimensions > 0 {
		opts = append(opts, embedding.WithDimensions(embedDimensions))
	}

	rate := embedRate
	if rate == 0 {
		rate = global.Embedding.RatePerSecond
	}
	if rate != 0 {
		opts = append(opts, embedding.WithRate(rate))
	}
	return opts
}
