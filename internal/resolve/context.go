package resolve

import (
	"strings"

	"github.com/yourtionguo/codegraf/internal/model"
	"github.com/yourtionguo/codegraf/internal/symtab"
)

// Context carries everything the resolver needs to resolve the calls
// inside one file: the file's own declarations, its import table split
// into explicit (name -> fqn) and wildcard (prefix, in declaration
// order) buckets, and the enclosing-type stack a call's containing
// function sits inside (innermost last), per spec §4.4.
type Context struct {
	File            *model.ParsedFile
	Table           *symtab.Table
	ExplicitImports map[string]string
	WildcardImports []string
	IsTypeScript    bool
}

// NewContext builds a resolution context for one file by splitting its
// import list into explicit and wildcard buckets, preserving declaration
// order for the wildcard bucket since wildcard resolution is tried in
// that order (spec §4.4 step 4).
func NewContext(file *model.ParsedFile, table *symtab.Table) *Context {
	ctx := &Context{
		File:            file,
		Table:           table,
		ExplicitImports: make(map[string]string),
		IsTypeScript:    file.Language == model.LanguageTypeScript || file.Language == model.LanguageJavaScript,
	}
	for _, imp := range file.Imports {
		if imp.IsWildcard {
			ctx.WildcardImports = append(ctx.WildcardImports, strings.TrimSuffix(imp.Path, ".*"))
			continue
		}
		simple := imp.Alias
		if simple == "" {
			simple = lastSegment(imp.Path)
		}
		fqn := imp.Path
		if strings.HasPrefix(fqn, "static:") {
			fqn = strings.TrimPrefix(fqn, "static:")
		}
		ctx.ExplicitImports[simple] = fqn
	}
	return ctx
}

func lastSegment(path string) string {
	sep := "."
	if strings.Contains(path, "/") {
		sep = "/"
	}
	parts := strings.Split(path, sep)
	return parts[len(parts)-1]
}
