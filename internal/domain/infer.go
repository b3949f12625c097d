package domain

import (
	"path"
	"sort"
	"strings"

	"github.com/yourtionguo/codegraf/internal/model"
)

var skipSegments = map[string]bool{"domain": true, "infrastructure": true, "application": true}

// InferFromPackage applies spec §4.5's positional-segment fallback: for a
// dotted package name, the third segment (index 2) is the candidate
// domain; for a slash-separated module path, the second segment (index
// 1). If the candidate lands on a structural segment name (domain,
// infrastructure, application) the walk advances to the next segment
// instead of accepting it, since those names say nothing about business
// domain. Returns "" if no segment survives the skip-set.
func InferFromPackage(packageName string) string {
	return inferFromSegments(strings.Split(packageName, "."), 2)
}

func InferFromModulePath(filePath string) string {
	normalized := strings.ReplaceAll(filePath, "\\", "/")
	normalized = strings.TrimPrefix(normalized, "/")
	normalized = strings.TrimSuffix(normalized, path.Ext(normalized))
	return inferFromSegments(strings.Split(normalized, "/"), 1)
}

func inferFromSegments(segments []string, startIdx int) string {
	for i := startIdx; i < len(segments); i++ {
		seg := segments[i]
		if seg == "" {
			continue
		}
		if skipSegments[strings.ToLower(seg)] {
			continue
		}
		return capitalize(seg)
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Resolve decides the domain name for one file: configured patterns win
// first match, otherwise positional inference runs, per spec §4.5.
func Resolve(cfg *Config, pf *model.ParsedFile) string {
	sep := byte('.')
	candidate := pf.PackageName
	if pf.Language == model.LanguageTypeScript || pf.Language == model.LanguageJavaScript {
		sep = '/'
		candidate = pf.FilePath
	}

	for _, d := range cfg.Domains {
		if MatchAny(d.Patterns, candidate, sep) {
			return d.Name
		}
		for _, pkg := range d.Packages {
			if pkg == candidate {
				return d.Name
			}
		}
	}

	if sep == '/' {
		return InferFromModulePath(pf.FilePath)
	}
	return InferFromPackage(pf.PackageName)
}

// Merge combines configured domains with inferred-but-unconfigured ones,
// case-insensitively deduplicated with configured entries winning on
// collision (spec §4.5).
func Merge(cfg *Config, inferredNames map[string]bool) []model.Domain {
	seen := make(map[string]bool)
	var out []model.Domain
	for _, d := range cfg.toModelDomains() {
		seen[strings.ToLower(d.Name)] = true
		out = append(out, d)
	}
	var extra []string
	for name := range inferredNames {
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		out = append(out, model.Domain{Name: name})
	}
	return out
}
