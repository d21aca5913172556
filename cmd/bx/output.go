package main

import (
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/segmentio/encoding/json"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 50 // Default limit for search/list commands

	TitleMaxLen = 60 // Title column width in tables
	NameMaxLen  = 40 // Entity name column width in tables
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// marshalIndent encodes v the way outputJSON prints it.
func marshalIndent(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RebuildResponse reports a corpus write and index rebuild.
type RebuildResponse struct {
	Status    string   `json:"status"`
	Documents int      `json:"documents"`
	BuildID   string   `json:"build_id"`
	Summary   []string `json:"summary,omitempty"`
}

// printTable renders rows with a header to stdout.
func printTable(header []string, rows [][]string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.AppendBulk(rows)
	table.Render()
}

// printSummary prints the rebuild summary lines followed by the build line.
func printSummary(lines []string, info RebuildResponse) {
	for _, line := range lines {
		fmt.Println(line)
	}
	fmt.Printf("\nIndexed %s documents (build %s)\n", humanize.Comma(int64(info.Documents)), info.BuildID)
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

// count formats an integer with thousands separators.
func count(n int) string {
	return humanize.Comma(int64(n))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func ftoa(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
