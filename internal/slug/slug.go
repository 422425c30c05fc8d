// Package slug derives stable account identifiers from display names
// ("GST Payable" -> "gst_payable"). Callers may supply their own ids; the
// HTTP layer falls back to a slug of the name when they do not.
package slug

import (
	"regexp"
	"strings"
)

const maxLen = 64

var reSlug = regexp.MustCompile(`^[a-z0-9_]{1,64}$`)

// IsSlug reports whether s is a well-formed identifier: lowercase
// alphanumerics and underscores, at most 64 characters.
func IsSlug(s string) bool {
	return reSlug.MatchString(s)
}

// Slugify lowercases s, maps every run of other characters to a single
// underscore, trims the result to 64 characters and strips underscores at
// both ends.
func Slugify(s string) string {
	if s == "" {
		return s
	}
	out := make([]rune, 0, len(s))
	prevUnderscore := false
	for _, r := range strings.ToLower(s) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			out = append(out, r)
			prevUnderscore = false
		default:
			if !prevUnderscore {
				out = append(out, '_')
				prevUnderscore = true
			}
		}
		if len(out) >= maxLen {
			break
		}
	}
	return strings.Trim(string(out), "_")
}
