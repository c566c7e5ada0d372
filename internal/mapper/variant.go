// Package mapper converts backend response DTOs into storefront domain types.
//
// Backend payloads are loosely shaped, so every mapper here is total: missing
// or malformed fields fall back to defaults instead of failing the mapping.
package mapper

import (
	"regexp"
	"strings"

	"github.com/dukerupert/gymsup/internal/domain"
)

var (
	sizeToken    = regexp.MustCompile(`(?i)(\d+(\.\d+)?\s*(Lbs|kg|Servings))`)
	flavorPrefix = regexp.MustCompile(`(?i)^Vị\s+`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// ParseVariantName splits a free-text variant name such as
// "Vị Chocolate 5Lbs" into a flavor ("Chocolate") and a size ("5Lbs").
//
// The first unit-suffixed number (Lbs, kg, Servings) is the size, with its
// whitespace removed; without one the size is StandardSize. The flavor is
// what remains after removing that token and a leading "Vị ", or
// DefaultFlavor when nothing remains.
func ParseVariantName(name string) (flavor, size string) {
	size = domain.StandardSize
	rest := name

	if loc := sizeToken.FindStringIndex(name); loc != nil {
		size = whitespace.ReplaceAllString(name[loc[0]:loc[1]], "")
		rest = name[:loc[0]] + name[loc[1]:]
	}

	flavor = strings.TrimSpace(flavorPrefix.ReplaceAllString(rest, ""))
	if flavor == "" {
		flavor = domain.DefaultFlavor
	}
	return flavor, size
}
