package main

import (
	"reflect"
	"testing"

	"github.com/matsen/bibx/internal/affiliation"
	"github.com/matsen/bibx/internal/config"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"default-dialect", "default-dialect"},
		{"default_dialect", "default-dialect"},
		{"Remove_Duplicates", "remove-duplicates"},
	}

	for _, tt := range tests {
		if got := normalizeKey(tt.input); got != tt.want {
			t.Errorf("normalizeKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSetConfigValue(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
		check   func(*config.Config) bool
	}{
		{"dialect", "default-dialect", "WoS", false, func(c *config.Config) bool { return c.DefaultDialect == "wos" }},
		{"bad dialect", "default-dialect", "crossref", true, nil},
		{"duplicates", "remove-duplicates", "false", false, func(c *config.Config) bool { return !c.RemoveDuplicates }},
		{"bad bool", "remove-duplicates", "maybe", true, nil},
		{"indicators", "indicators", "instituto, fundacao,,", false, func(c *config.Config) bool {
			return reflect.DeepEqual(c.Indicators, []string{"instituto", "fundacao"})
		}},
		{"aliases", "aliases", "Brasil=Brazil, UK = United Kingdom", false, func(c *config.Config) bool {
			return reflect.DeepEqual(c.CountryAliases, []affiliation.Alias{{From: "Brasil", To: "Brazil"}, {From: "UK", To: "United Kingdom"}})
		}},
		{"alias without target", "aliases", "Brasil=", true, nil},
		{"alias without equals", "aliases", "Brasil", true, nil},
		{"unknown key", "pdf-root", "/tmp", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			err := setConfigValue(cfg, tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("setConfigValue(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
			if tt.wantErr {
				if !reflect.DeepEqual(cfg, config.Default()) {
					t.Errorf("setConfigValue(%q, %q) changed config on error: %+v", tt.key, tt.value, cfg)
				}
				return
			}
			if !tt.check(cfg) {
				t.Errorf("setConfigValue(%q, %q) = %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestGetConfigValue(t *testing.T) {
	cfg := config.Default()
	cfg.CountryAliases = []affiliation.Alias{{From: "Brasil", To: "Brazil"}}

	tests := []struct {
		key  string
		want string
	}{
		{"default-dialect", "scopus"},
		{"remove-duplicates", "true"},
		{"indicators", ""},
		{"aliases", "Brasil=Brazil"},
	}

	for _, tt := range tests {
		got, err := getConfigValue(cfg, tt.key)
		if err != nil {
			t.Errorf("getConfigValue(%q) error = %v", tt.key, err)
			continue
		}
		if got != tt.want {
			t.Errorf("getConfigValue(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}

	if _, err := getConfigValue(cfg, "nope"); err == nil {
		t.Error("getConfigValue(nope) expected error")
	}
}
