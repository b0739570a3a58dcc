package catalog

import "strings"

// CanonicalVersion reduces a version string to the form used for
// comparisons: the letter v and any spaces are dropped, a trailing ".0.0"
// collapses to ".0", and a single remaining trailing ".0" is trimmed.
// Community version strings are hand-typed ("v1.0", "1.0.0", "1.0 "), so
// two versions are considered equal iff their canonical forms are equal.
func CanonicalVersion(s string) string {
	s = strings.ReplaceAll(s, "v", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".0.0", ".0")
	return strings.TrimSuffix(s, ".0")
}
