// Package tracking generates, validates and formats Alliance Shipping tracking codes.
package tracking

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// Prefix marks codes issued by Alliance Shipping.
const Prefix = "AS-"

const (
	minNumber = 1000000000
	maxNumber = 9999999999
)

var canonical = regexp.MustCompile(`^AS-[0-9]{10}$`)

// Generate returns a new canonical code. Uniqueness is the caller's concern.
func Generate() string {
	n := minNumber + rand.Int63n(maxNumber-minNumber+1)
	return Prefix + strconv.FormatInt(n, 10)
}

// Validate reports whether code is in canonical storage form.
func Validate(code string) bool {
	return canonical.MatchString(code)
}

// Format renders a code for display, grouping the digits 4-4-2.
// Codes from other carriers are returned unchanged.
func Format(code string) string {
	if code == "" {
		return ""
	}
	if !strings.HasPrefix(code, Prefix) {
		return code
	}

	digits := []rune(strings.TrimPrefix(code, Prefix))
	groups := make([]string, 0, 3)
	for _, bounds := range [][2]int{{0, 4}, {4, 8}, {8, 10}} {
		if g := slice(digits, bounds[0], bounds[1]); g != "" {
			groups = append(groups, g)
		}
	}
	return Prefix + strings.Join(groups, " ")
}

// Normalize strips the spaces a display-form code carries.
func Normalize(input string) string {
	return strings.ReplaceAll(strings.TrimSpace(input), " ", "")
}

func slice(r []rune, from, to int) string {
	if from >= len(r) {
		return ""
	}
	if to > len(r) {
		to = len(r)
	}
	return string(r[from:to])
}
