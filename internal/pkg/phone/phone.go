package phone

import "strings"

// CountryPrefix is the international calling prefix dialed in place of the
// national trunk `0`.
const CountryPrefix = "+972"

// Normalize canonicalizes a raw phone number into a single dialable form.
// It strips every character except digits and a leading +, keeps already
// international numbers unchanged, and otherwise swaps the leading trunk 0
// (or nothing) for the country prefix. An empty or unusable input yields an
// empty string, which callers must treat as "invalid, do not dispatch".
// Normalize never fails and is idempotent.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && b.Len() == 0 {
			// A plus only counts when it leads the number.
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "+" {
		return ""
	}
	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}
	if strings.HasPrefix(cleaned, "0") {
		return CountryPrefix + cleaned[1:]
	}
	return CountryPrefix + cleaned
}
