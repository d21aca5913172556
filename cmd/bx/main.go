// Package main provides the bx CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/analysis"
	"github.com/matsen/bibx/internal/config"
	"github.com/matsen/bibx/internal/embedding"
	"github.com/matsen/bibx/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

var logLevel string

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so cobra errors are printed here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bx",
	Short: "Bibliometric analysis of Scopus, Web of Science and PubMed exports",
	Long: `bx imports bibliographic database exports into a workspace and derives
authors, sources, institutions, countries and keywords from them.

Core features:
  - Import of Scopus BibTeX, WoS BibTeX and PubMed MEDLINE exports
  - Duplicate removal by DOI and normalized title
  - Descriptive report, author metrics, Bradford zones and Lotka distribution
  - Collaboration and document-similarity networks
  - BibTeX and XLSX export, title/abstract embeddings

The corpus is stored as JSONL in .bibx/ with an ephemeral SQLite index.
All commands output JSON by default; use --human for tables.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// A missing .env is fine
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Version = Version
}

// setupLogging sends logrus output to stderr. The flag wins over the
// global config; the default is warn.
func setupLogging(cmd *cobra.Command, args []string) error {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	level := logLevel
	if level == "" {
		if g, err := config.LoadGlobalConfig(); err == nil && g.LogLevel != "" {
			level = g.LogLevel
		}
	}
	if level == "" {
		level = "warn"
	}

	parsed, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	log.SetLevel(parsed)
	return nil
}

// mustFindRepository resolves the workspace root, exits on error.
func mustFindRepository() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	root, err := config.ResolveRoot(cwd)
	if err != nil {
		if errors.Is(err, config.ErrWorkspaceNotConfigured) {
			fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
			os.Exit(ExitConfigError)
		}
		exitWithError(ExitConfigError, "%v", err)
	}
	return root
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenDatabase opens the SQLite index, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(root string) *storage.DB {
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// mustLoadIndex reads the stored corpus and derives its index, exits on
// error.
func mustLoadIndex(root string, cfg *config.Config) *analysis.Index {
	t, err := storage.ReadCorpus(config.CorpusPath(root))
	if err != nil {
		exitWithError(ExitDataError, "reading corpus: %v", err)
	}
	ix, err := analysis.Derive(analysis.NewCorpus(t, false), derivationOptions(cfg))
	if err != nil {
		exitWithError(ExitDataError, "deriving index: %v", err)
	}
	return ix
}

func derivationOptions(cfg *config.Config) analysis.Options {
	return analysis.Options{Resolver: cfg.Resolver()}
}

// mustSaveIndex stores the corpus behind ix and rebuilds the query index
// from it, exits on error.
func mustSaveIndex(root string, ix *analysis.Index) storage.BuildInfo {
	info, err := saveIndex(root, ix)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return info
}

// saveIndex rebuilds the query index before replacing corpus.jsonl, so a
// failed rebuild leaves the stored corpus and the index it was built from.
func saveIndex(root string, ix *analysis.Index) (storage.BuildInfo, error) {
	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		return storage.BuildInfo{}, fmt.Errorf("creating cache directory: %w", err)
	}
	db, err := storage.OpenDB(config.DBPath(root))
	if err != nil {
		return storage.BuildInfo{}, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	info, err := db.RebuildFromIndex(ix)
	if err != nil {
		return storage.BuildInfo{}, fmt.Errorf("rebuilding index: %w", err)
	}
	if err := storage.WriteCorpus(config.CorpusPath(root), ix.Corpus.Table()); err != nil {
		return storage.BuildInfo{}, fmt.Errorf("writing corpus: %w (the query index no longer matches corpus.jsonl; run 'bx rebuild')", err)
	}
	return info, nil
}

// mustCheckEmbedder exits unless the embedding service is up and has the
// model.
func mustCheckEmbedder(ctx context.Context, client *embedding.Ollama) {
	err := client.Check(ctx)
	switch {
	case err == nil:
	case errors.Is(err, embedding.ErrUnavailable):
		exitWithError(ExitServiceError, "%v\n\nStart Ollama with 'ollama serve' or set %s", err, config.OllamaURLEnv)
	case embedding.IsModelMissing(err):
		exitWithError(ExitServiceError, "embedding model %q not found\n\nRun 'ollama pull %s' to download it.", client.Model(), client.Model())
	default:
		exitWithError(ExitServiceError, "checking embedding service: %v", err)
	}
}
