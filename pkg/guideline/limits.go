package guideline

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/articlecheck/pkg/core"
	"github.com/leapstack-labs/articlecheck/pkg/manuscript"
)

// countPattern matches an integer literal with optional comma digit groups.
var countPattern = regexp.MustCompile(`\d[\d,]*`)

// ExtractCount returns the first integer found in text, with comma
// separators removed. ok is false when text is empty or holds no digits.
// A number too large for an int saturates to math.MaxInt, so the limit
// stays in force.
func ExtractCount(text string) (n int, ok bool) {
	n, ok, _ = parseCount(text)
	return n, ok
}

// parseCount is ExtractCount that also reports whether the number overflowed.
func parseCount(text string) (n int, ok, overflow bool) {
	match := countPattern.FindString(text)
	if match == "" {
		return 0, false, false
	}
	n, err := strconv.Atoi(strings.ReplaceAll(match, ",", ""))
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt, true, true
	}
	if err != nil {
		return 0, false, false
	}
	return n, true, false
}

// RequiredCategories returns the categories a structure description names.
func RequiredCategories(structure string) core.CategorySet {
	return manuscript.MatchCategories(structure)
}
