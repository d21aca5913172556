package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/affiliation"
	"github.com/matsen/bibx/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set workspace configuration values",
	Long: `Get or set workspace configuration values.

Usage:
  bx config                                  # Show all config
  bx config default-dialect                  # Get specific value
  bx config default-dialect wos              # Set value
  bx config indicators "instituto,fundacao"  # Extra institution words
  bx config aliases "Brasil=Brazil,UK=United Kingdom"

Keys:
  default-dialect     Dialect used by import without --dialect (scopus, wos, pubmed)
  remove-duplicates   Drop repeated DOIs and titles on import (true, false)
  indicators          Comma-separated words that mark an institution segment
  aliases             Comma-separated from=to country spellings

Changes to indicators and aliases apply from the next command; run
"bx rebuild" to refresh the query index.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

var configKeys = []string{"default-dialect", "remove-duplicates", "indicators", "aliases"}

func runConfig(cmd *cobra.Command, args []string) error {
	root := mustFindRepository()
	cfg := mustLoadConfig(root)

	if len(args) == 0 {
		if humanOutput {
			for _, key := range configKeys {
				value, _ := getConfigValue(cfg, key)
				fmt.Printf("%-18s %s\n", key+":", value)
			}
		} else {
			outputJSON(cfg)
		}
		return nil
	}

	key := normalizeKey(args[0])

	if len(args) == 1 {
		value, err := getConfigValue(cfg, key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{strings.ReplaceAll(key, "-", "_"): value})
		}
		return nil
	}

	if err := setConfigValue(cfg, key, args[1]); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s = %s\n", key, args[1])
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: args[1]})
	}
	return nil
}

// normalizeKey converts key to lowercase and replaces underscores with hyphens.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}

func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "default-dialect":
		return cfg.DefaultDialect, nil
	case "remove-duplicates":
		return strconv.FormatBool(cfg.RemoveDuplicates), nil
	case "indicators":
		return strings.Join(cfg.Indicators, ","), nil
	case "aliases":
		pairs := make([]string, len(cfg.CountryAliases))
		for i, a := range cfg.CountryAliases {
			pairs[i] = a.From + "=" + a.To
		}
		return strings.Join(pairs, ","), nil
	}
	return "", fmt.Errorf("unknown config key: %s (valid keys: %s)", key, strings.Join(configKeys, ", "))
}

// setConfigValue updates cfg and validates the result. cfg is left
// unchanged on error.
func setConfigValue(cfg *config.Config, key, value string) error {
	next := *cfg
	switch key {
	case "default-dialect":
		next.DefaultDialect = strings.ToLower(strings.TrimSpace(value))
	case "remove-duplicates":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("remove-duplicates: %w", err)
		}
		next.RemoveDuplicates = b
	case "indicators":
		next.Indicators = splitList(value)
	case "aliases":
		next.CountryAliases = nil
		for _, pair := range splitList(value) {
			from, to, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("alias %q: want from=to", pair)
			}
			next.CountryAliases = append(next.CountryAliases, affiliation.Alias{
				From: strings.TrimSpace(from),
				To:   strings.TrimSpace(to),
			})
		}
	default:
		return fmt.Errorf("unknown config key: %s (valid keys: %s)", key, strings.Join(configKeys, ", "))
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*cfg = next
	return nil
}

// splitList splits a comma-separated value, dropping empty items.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
