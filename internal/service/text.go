package service

import "strings"

// NormalizeText canonicalizes free text for keyword matching: lower-case,
// every character outside [a-z0-9 ] becomes a space, whitespace runs
// collapse to a single space, leading/trailing whitespace trimmed.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
