package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/bibx/internal/analysis"
	"github.com/matsen/bibx/internal/metrics"
)

var (
	filterDocTypes        []string
	filterYear            string
	filterSources         []string
	filterZone            int
	filterCountries       []string
	filterLanguages       []string
	filterRequireAbstract bool
	filterDryRun          bool
)

func init() {
	filterCmd.Flags().StringArrayVar(&filterDocTypes, "doc-type", nil, "Keep documents of this type (repeatable)")
	filterCmd.Flags().StringVar(&filterYear, "year", "", "Keep years: exact (2024), range (2020:2024), or open (2020: or :2024)")
	filterCmd.Flags().StringArrayVar(&filterSources, "source", nil, "Keep documents from this source (repeatable)")
	filterCmd.Flags().IntVar(&filterZone, "zone", 0, "Keep sources of a Bradford zone: 1, 2, 3, 12 or 23")
	filterCmd.Flags().StringArrayVar(&filterCountries, "country", nil, "Keep documents with an author from this country (repeatable)")
	filterCmd.Flags().StringArrayVar(&filterLanguages, "language", nil, "Keep documents in this language (repeatable)")
	filterCmd.Flags().BoolVar(&filterRequireAbstract, "require-abstract", false, "Drop documents without an abstract")
	filterCmd.Flags().BoolVar(&filterDryRun, "dry-run", false, "Show the summary without writing")
	rootCmd.AddCommand(filterCmd)
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Narrow the corpus",
	Long: `Narrow the stored corpus and rebuild the index.

Steps run in this order, each on the result of the previous one:
document type, year, source, Bradford zone, country, language, abstract.
A document-type or source selection that matches nothing leaves the corpus
unchanged.

Year syntax:
  --year 2024         - Exact year
  --year 2020:2024    - Range (inclusive)
  --year 2020:        - 2020 and later
  --year :2020        - 2020 and earlier

Examples:
  bx filter --doc-type Article --doc-type Review
  bx filter --year 2015: --zone 1
  bx filter --country Brazil --require-abstract`,
	Args: cobra.NoArgs,
	RunE: runFilter,
}

func runFilter(cmd *cobra.Command, args []string) error {
	f, err := buildFilter()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	root := mustFindRepository()
	cfg := mustLoadConfig(root)
	ix := mustLoadIndex(root, cfg)

	filtered, err := analysis.Apply(ix, f, derivationOptions(cfg))
	if err != nil {
		exitWithError(ExitDataError, "filtering: %v", err)
	}

	resp := RebuildResponse{Status: "filtered", Documents: filtered.Len(), Summary: filtered.Verbose()}
	if filterDryRun {
		resp.Status = "dry-run"
	} else {
		resp.BuildID = mustSaveIndex(root, filtered).ID
	}

	if humanOutput {
		if filterDryRun {
			for _, line := range resp.Summary {
				fmt.Println(line)
			}
			fmt.Println("\n(dry run, nothing written)")
		} else {
			printSummary(resp.Summary, resp)
		}
	} else {
		outputJSON(resp)
	}
	return nil
}

// buildFilter turns the flags into a filter.
func buildFilter() (analysis.Filter, error) {
	from, to, err := parseYearRange(filterYear)
	if err != nil {
		return analysis.Filter{}, err
	}
	if from > 0 && to > 0 && to < from {
		return analysis.Filter{}, fmt.Errorf("year range %q ends before it starts", filterYear)
	}

	f := analysis.Filter{
		DocumentTypes:   filterDocTypes,
		YearFrom:        from,
		YearTo:          to,
		Sources:         filterSources,
		Countries:       filterCountries,
		Languages:       filterLanguages,
		RequireAbstract: filterRequireAbstract,
	}
	if filterZone != 0 {
		z, err := metrics.ParseZone(filterZone)
		if err != nil {
			return analysis.Filter{}, err
		}
		f.Zone = z
	}
	return f, nil
}

// parseYearRange parses a year specification.
// Returns (from, to, error) where 0 means unbounded.
// Formats: "2024" (exact), "2020:2024" (range), "2020:" (from), ":2024" (to)
func parseYearRange(spec string) (from, to int, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0, nil
	}

	if strings.Contains(spec, ":") {
		parts := strings.SplitN(spec, ":", 2)

		if parts[0] != "" {
			from, err = strconv.Atoi(parts[0])
			if err != nil {
				return 0, 0, fmt.Errorf("invalid start year %q", parts[0])
			}
		}

		if parts[1] != "" {
			to, err = strconv.Atoi(parts[1])
			if err != nil {
				return 0, 0, fmt.Errorf("invalid end year %q", parts[1])
			}
		}

		return from, to, nil
	}

	year, err := strconv.Atoi(spec)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", spec)
	}

	return year, year, nil
}
