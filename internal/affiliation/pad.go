package affiliation

import "github.com/matsen/bibx/internal/document"

// Pad aligns resolved values with an author list of length n. Missing
// positions repeat the last resolved value; with nothing resolved every
// position is the sentinel. Values beyond n are dropped.
func Pad(values []string, n int) []string {
	if n <= 0 {
		return []string{}
	}
	out := make([]string, 0, n)
	out = append(out, values...)
	if len(out) == 0 {
		out = append(out, document.Unknown)
	}
	for len(out) < n {
		out = append(out, out[len(out)-1])
	}
	return out[:n]
}
