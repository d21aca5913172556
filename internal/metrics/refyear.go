package metrics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NoYear marks a reference or document without a usable year.
const NoYear = -1

var historicYearRe = regexp.MustCompile(`^.*(1[89][0-9][0-9])`)

// YearExtractor estimates publication years of reference strings. Years
// later than the newest document year are rejected.
type YearExtractor struct {
	maxYear int
	recent  *regexp.Regexp
}

// NewYearExtractor builds an extractor for a corpus whose newest document
// was published in maxYear.
func NewYearExtractor(maxYear int) *YearExtractor {
	e := &YearExtractor{maxYear: maxYear}
	if maxYear >= 1000 && maxYear <= 9999 {
		d := strconv.Itoa(maxYear)
		e.recent = regexp.MustCompile(fmt.Sprintf(`^.*(%c%c[0-%c][0-9])`, d[0], d[1], d[2]))
	}
	return e
}

// Year returns the latest plausible year found in ref, or NoYear. Matches
// are stripped one at a time so that a later number cannot hide an earlier
// candidate.
func (e *YearExtractor) Year(ref string) int {
	best := NoYear
	for {
		historic := lastMatch(historicYearRe, ref)
		recent := lastMatch(e.recent, ref)

		var pick string
		switch {
		case historic != "" && recent != "":
			if atoi(historic) >= atoi(recent) {
				pick = historic
			} else {
				pick = recent
			}
		case historic != "":
			pick = historic
		case recent != "":
			pick = recent
		default:
			return best
		}

		if y := atoi(pick); y <= e.maxYear && y > best {
			best = y
		}
		ref = strings.ReplaceAll(ref, pick, "")
	}
}

// Years maps Year over refs.
func (e *YearExtractor) Years(refs []string) []int {
	out := make([]int, len(refs))
	for i, ref := range refs {
		out[i] = e.Year(ref)
	}
	return out
}

func lastMatch(re *regexp.Regexp, s string) string {
	if re == nil {
		return ""
	}
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
