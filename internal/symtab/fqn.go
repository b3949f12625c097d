package symtab

import (
	"strings"

	"github.com/yourtionguo/codegraf/internal/model"
)

// modulePath turns a TypeScript/JavaScript file path into a dotted module
// qualifier, since those languages have no package declaration to anchor
// a fully qualified name on (spec §4.3).
func modulePath(filePath string) string {
	p := strings.ReplaceAll(filePath, "\\", "/")
	p = strings.TrimSuffix(p, ".tsx")
	p = strings.TrimSuffix(p, ".ts")
	p = strings.TrimSuffix(p, ".jsx")
	p = strings.TrimSuffix(p, ".js")
	p = strings.TrimPrefix(p, "./")
	p = strings.Trim(p, "/")
	return strings.ReplaceAll(p, "/", ".")
}

// namespacePrefix returns the dotted prefix a top-level declaration's FQN
// is built against: the package name for Kotlin/Java, the module path
// for TypeScript/JavaScript.
func namespacePrefix(pf *model.ParsedFile) string {
	return NamespacePrefix(pf)
}

// NamespacePrefix is namespacePrefix exported for callers outside the
// package (internal/pipeline needs the same prefix to key its
// fqn-to-domain map for the cross-domain graph, spec §4.6).
func NamespacePrefix(pf *model.ParsedFile) string {
	if pf.Language == model.LanguageTypeScript || pf.Language == model.LanguageJavaScript {
		return modulePath(pf.FilePath)
	}
	return pf.PackageName
}

func joinFqn(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
