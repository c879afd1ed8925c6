package normalization

import (
	"strings"
)

// ParseInputString lowercases and trims. Only for case-insensitive
// identifiers (emails, usernames, enum codes), never for display text.
func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// TrimInput trims surrounding whitespace and preserves case, for
// human-readable fields like titles and comment bodies.
func TrimInput(input string) string {
	return strings.TrimSpace(input)
}
