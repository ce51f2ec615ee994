package domain

import "strings"

// FormatAddress joins structured address fields (street, street2, city,
// state, postal code, country) into a single line with ", " separators,
// omitting empty fields.
func FormatAddress(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		parts = append(parts, f)
	}
	return strings.Join(parts, ", ")
}

// NormalizeAddress produces the canonical cache key for an address:
// whitespace collapsed, lower-cased. Addresses differing only in case or
// spacing normalize to the same key.
func NormalizeAddress(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
