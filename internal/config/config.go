// Package config handles workspace configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmentio/encoding/json"

	"github.com/matsen/bibx/internal/affiliation"
	"github.com/matsen/bibx/internal/document"
)

// Config represents workspace configuration stored in .bibx/config.json.
type Config struct {
	DefaultDialect   string              `json:"default_dialect,omitempty"` // scopus, wos or pubmed
	RemoveDuplicates bool                `json:"remove_duplicates"`
	Indicators       []string            `json:"institution_indicators,omitempty"` // appended to the built-in list
	CountryAliases   []affiliation.Alias `json:"country_aliases,omitempty"`        // applied to WoS affiliations
}

const (
	BibxDir        = ".bibx"
	ConfigFile     = "config.json"
	CorpusFile     = "corpus.jsonl"
	EmbeddingsFile = "embeddings.jsonl"
	CacheDir       = "cache"
	DBFile         = "index.db"

	// RootEnv overrides the workspace lookup.
	RootEnv = "BIBX_ROOT"
)

// Default returns the configuration written by "bx init".
func Default() *Config {
	return &Config{
		DefaultDialect:   document.Scopus.String(),
		RemoveDuplicates: true,
	}
}

// BibxPath returns the path to the .bibx directory from a root path.
func BibxPath(root string) string {
	return filepath.Join(root, BibxDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, BibxDir, ConfigFile)
}

// CorpusPath returns the path to corpus.jsonl from a root path.
func CorpusPath(root string) string {
	return filepath.Join(root, BibxDir, CorpusFile)
}

// EmbeddingsPath returns the path to embeddings.jsonl from a root path.
func EmbeddingsPath(root string) string {
	return filepath.Join(root, BibxDir, EmbeddingsFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, BibxDir, CacheDir)
}

// DBPath returns the path to index.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, BibxDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains a bibx workspace.
func IsRepository(root string) bool {
	info, err := os.Stat(BibxPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a bibx workspace.
// Returns the workspace root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a bibx workspace (no .bibx directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the workspace at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the workspace at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks the dialect name and the alias table.
func (c *Config) Validate() error {
	if c.DefaultDialect != "" {
		if _, err := document.ParseDialect(c.DefaultDialect); err != nil {
			return fmt.Errorf("invalid default_dialect: %w", err)
		}
	}
	for i, a := range c.CountryAliases {
		if a.From == "" || a.To == "" {
			return fmt.Errorf("country_aliases[%d]: from and to are required", i)
		}
	}
	return nil
}

// Dialect returns the configured default dialect, Scopus when unset.
func (c *Config) Dialect() document.Dialect {
	d, err := document.ParseDialect(c.DefaultDialect)
	if err != nil {
		return document.Scopus
	}
	return d
}

// Resolver builds the affiliation resolver with the workspace extensions.
func (c *Config) Resolver() *affiliation.Resolver {
	return affiliation.NewResolver(
		affiliation.WithIndicators(c.Indicators...),
		affiliation.WithAliases(c.CountryAliases...),
	)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
