package normalization

import (
	"strings"
)

// Email lowercases and trims an address so lookups and the unique
// index agree on a canonical form.
func Email(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// Username trims surrounding whitespace; case is preserved.
func Username(input string) string {
	return strings.TrimSpace(input)
}

// Tags canonicalizes a comma separated tag list: trimmed, lowercased,
// empties dropped.
func Tags(input string) string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, ",")
}
