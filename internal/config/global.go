package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/bibx/config.yml.
type GlobalConfig struct {
	Workspace string          `yaml:"workspace,omitempty"`
	LogLevel  string          `yaml:"log_level,omitempty"`
	Embedding EmbeddingConfig `yaml:"embedding,omitempty"`
}

// EmbeddingConfig points at an Ollama-compatible embedding service.
type EmbeddingConfig struct {
	URL           string  `yaml:"url,omitempty"`
	Model         string  `yaml:"model,omitempty"`
	RatePerSecond float64 `yaml:"rate_per_second,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "bibx"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"

	// OllamaURLEnv overrides the configured embedding service URL.
	OllamaURLEnv = "BIBX_OLLAMA_URL"
)

// ErrWorkspaceNotConfigured is returned when no workspace can be found.
var ErrWorkspaceNotConfigured = errors.New("workspace not configured")

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/bibx/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}
	if cfg.LogLevel != "" {
		if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
			return nil, fmt.Errorf("parsing global config: %w", err)
		}
	}
	if cfg.Workspace != "" {
		cfg.Workspace = ExpandPath(cfg.Workspace)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// EmbeddingURL returns the embedding service URL. The environment wins over
// the config file; "" means use the client default.
func (g *GlobalConfig) EmbeddingURL() string {
	if url := os.Getenv(OllamaURLEnv); url != "" {
		return url
	}
	return g.Embedding.URL
}

// ResolveRoot picks the workspace root: BIBX_ROOT first, then a .bibx
// directory above start, then the configured default workspace.
func ResolveRoot(start string) (string, error) {
	if root := os.Getenv(RootEnv); root != "" {
		root = ExpandPath(root)
		if !IsRepository(root) {
			return "", fmt.Errorf("%s=%s is not a bibx workspace", RootEnv, root)
		}
		return root, nil
	}

	if root, err := FindRepository(start); err == nil {
		return root, nil
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		return "", err
	}
	if cfg.Workspace == "" {
		return "", ErrWorkspaceNotConfigured
	}
	if !IsRepository(cfg.Workspace) {
		return "", fmt.Errorf("configured workspace %s has no .bibx directory", cfg.Workspace)
	}
	return cfg.Workspace, nil
}

// HelpfulConfigMessage returns a helpful message when no workspace is found.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No bibx workspace found.

Run "bx init" in a directory, set %s, or create %s with a default workspace:
  mkdir -p %s
  echo 'workspace: /path/to/workspace' > %s`,
		RootEnv,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
