package models

import "strings"

// normalizeEnum lower-cases s and strips separators so "In Progress",
// "in-progress" and "in_progress" compare equal.
func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}
