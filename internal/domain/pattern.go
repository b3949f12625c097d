// Package domain infers which business domain a file/package belongs to
// (configured glob patterns first, positional path-segment inference as
// a fallback), and builds the weighted cross-domain dependency graph from
// a corpus's resolved calls (spec §4.5, §4.6).
package domain

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match implements spec §4.6's pattern semantics: `*` matches exactly one
// path segment, `**` matches zero or more segments. Separator is `.` for
// Kotlin/Java fully qualified names and `/` for TypeScript/JavaScript
// module paths; both are normalized to `/` before matching so one glob
// engine (doublestar) serves both languages.
func Match(pattern, candidate string, sep byte) bool {
	normalizedPattern := normalize(pattern, sep)
	normalizedCandidate := normalize(candidate, sep)
	ok, err := doublestar.Match(normalizedPattern, normalizedCandidate)
	if err != nil {
		return false
	}
	return ok
}

func normalize(s string, sep byte) string {
	if sep == '.' {
		return strings.ReplaceAll(s, ".", "/")
	}
	return s
}

// MatchAny reports whether candidate matches any of patterns.
func MatchAny(patterns []string, candidate string, sep byte) bool {
	for _, p := range patterns {
		if Match(p, candidate, sep) {
			return true
		}
	}
	return false
}
