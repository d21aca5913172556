package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// writeGlobalConfig points XDG_CONFIG_HOME at a temp dir holding data.
func writeGlobalConfig(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, GlobalConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	configFile := filepath.Join(configDir, GlobalConfigFile)
	if err := os.WriteFile(configFile, data, 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	return configFile
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := GlobalConfigPath(), "/custom/config/bibx/config.yml"; got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := GlobalConfigPath(), filepath.Join(home, ".config", "bibx", "config.yml"); got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadGlobalConfig() returned nil")
	}
	if cfg.Workspace != "" {
		t.Errorf("Workspace = %q, want empty", cfg.Workspace)
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	data, err := yaml.Marshal(GlobalConfig{
		Workspace: "~/lit/review",
		LogLevel:  "debug",
		Embedding: EmbeddingConfig{URL: "http://gpu:11434", Model: "nomic-embed-text", RatePerSecond: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	writeGlobalConfig(t, data)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "lit/review"); cfg.Workspace != want {
		t.Errorf("Workspace = %q, want %q", cfg.Workspace, want)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Embedding.Model != "nomic-embed-text" || cfg.Embedding.RatePerSecond != 2 {
		t.Errorf("Embedding = %+v", cfg.Embedding)
	}
}

func TestLoadGlobalConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "workspace: [unclosed"},
		{"bad log level", "log_level: chatty\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetGlobalConfigCache()
			defer ResetGlobalConfigCache()
			writeGlobalConfig(t, []byte(tt.data))

			if _, err := LoadGlobalConfig(); err == nil {
				t.Error("LoadGlobalConfig() should return error")
			}
		})
	}
}

func TestGlobalConfigCache(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	configFile := writeGlobalConfig(t, []byte("log_level: info\n"))

	cfg1, _ := LoadGlobalConfig()
	if cfg1.LogLevel != "info" {
		t.Errorf("First load: LogLevel = %q, want info", cfg1.LogLevel)
	}

	os.WriteFile(configFile, []byte("log_level: warn\n"), 0644)

	cfg2, _ := LoadGlobalConfig()
	if cfg2.LogLevel != "info" {
		t.Errorf("Second load: LogLevel = %q, want info (cached)", cfg2.LogLevel)
	}

	ResetGlobalConfigCache()

	cfg3, _ := LoadGlobalConfig()
	if cfg3.LogLevel != "warn" {
		t.Errorf("Third load: LogLevel = %q, want warn", cfg3.LogLevel)
	}
}

func TestEmbeddingURL(t *testing.T) {
	g := &GlobalConfig{Embedding: EmbeddingConfig{URL: "http://from-config"}}

	t.Setenv(OllamaURLEnv, "http://from-env")
	if got := g.EmbeddingURL(); got != "http://from-env" {
		t.Errorf("EmbeddingURL() = %q, want http://from-env", got)
	}

	t.Setenv(OllamaURLEnv, "")
	if got := g.EmbeddingURL(); got != "http://from-config" {
		t.Errorf("EmbeddingURL() = %q, want http://from-config", got)
	}
}

func TestResolveRoot(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	env := t.TempDir()
	os.Mkdir(BibxPath(env), 0755)
	configured := t.TempDir()
	os.Mkdir(BibxPath(configured), 0755)
	local := t.TempDir()
	os.Mkdir(BibxPath(local), 0755)
	elsewhere := t.TempDir()

	writeGlobalConfig(t, []byte("workspace: "+configured+"\n"))

	t.Setenv(RootEnv, env)
	if got, err := ResolveRoot(local); err != nil || got != env {
		t.Errorf("ResolveRoot() with %s = %q, %v, want %q", RootEnv, got, err, env)
	}

	t.Setenv(RootEnv, elsewhere)
	if _, err := ResolveRoot(local); err == nil {
		t.Errorf("ResolveRoot() should fail when %s is not a workspace", RootEnv)
	}

	t.Setenv(RootEnv, "")
	if got, err := ResolveRoot(local); err != nil || got != local {
		t.Errorf("ResolveRoot(local) = %q, %v, want %q", got, err, local)
	}
	if got, err := ResolveRoot(elsewhere); err != nil || got != configured {
		t.Errorf("ResolveRoot(elsewhere) = %q, %v, want %q", got, err, configured)
	}
}

func TestHelpfulConfigMessage(t *testing.T) {
	msg := HelpfulConfigMessage()
	if len(msg) < 50 {
		t.Error("HelpfulConfigMessage() seems too short")
	}
}
