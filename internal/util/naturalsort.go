package util

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var runSplitter = regexp.MustCompile(`(\d+|\D+)`)

type run struct {
	text  string
	value int
	isNum bool
}

// splitRuns breaks a name into maximal runs of digits and non-digits.
// Digit runs that overflow int fall back to string comparison.
func splitRuns(s string) []run {
	parts := runSplitter.FindAllString(s, -1)
	runs := make([]run, len(parts))
	for i, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			runs[i] = run{value: n, isNum: true}
		} else {
			runs[i] = run{text: strings.ToLower(p)}
		}
	}
	return runs
}

// CompareNatural orders two names run-by-run: numeric runs by integer
// value, everything else case-insensitively. On a common prefix the
// shorter name sorts first, so "2.jpg" comes before "10.jpg".
func CompareNatural(a, b string) int {
	ra, rb := splitRuns(a), splitRuns(b)
	for i := 0; i < len(ra) && i < len(rb); i++ {
		x, y := ra[i], rb[i]
		switch {
		case x.isNum && !y.isNum:
			return -1
		case !x.isNum && y.isNum:
			return 1
		case x.isNum:
			if x.value != y.value {
				if x.value < y.value {
					return -1
				}
				return 1
			}
		default:
			if c := strings.Compare(x.text, y.text); c != 0 {
				return c
			}
		}
	}
	switch {
	case len(ra) < len(rb):
		return -1
	case len(ra) > len(rb):
		return 1
	}
	return 0
}

// NaturalLess reports whether a sorts before b in natural order.
func NaturalLess(a, b string) bool {
	return CompareNatural(a, b) < 0
}

// SortNatural sorts names in place in natural order.
func SortNatural(names []string) {
	sort.Slice(names, func(i, j int) bool { return NaturalLess(names[i], names[j]) })
}
