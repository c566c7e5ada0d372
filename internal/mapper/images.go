package mapper

import (
	"fmt"
	"strings"
)

// PlaceholderImage returns the stable placeholder used when an entity has no
// image of its own.
func PlaceholderImage(seed int64) string {
	return fmt.Sprintf("https://picsum.photos/seed/product%d/400/400", seed)
}

// firstNonEmpty returns the non-blank entries of the first source that has
// any. Blank strings are ignored.
func firstNonEmpty(sources ...[]string) []string {
	for _, src := range sources {
		var out []string
		for _, s := range src {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func one(s string) []string {
	return []string{s}
}

func firstString(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
