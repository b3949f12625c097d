package cst

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// NewAdapter builds an Adapter with one parser per supported language, the
// way the teacher's NewTreeSitterParser does. Construct one per worker
// goroutine; never share across goroutines.
func NewAdapter() *Adapter {
	a := &Adapter{}

	a.kotlinLang = kotlin.GetLanguage()
	a.kotlinParser = sitter.NewParser()
	a.kotlinParser.SetLanguage(a.kotlinLang)

	a.javaLang = java.GetLanguage()
	a.javaParser = sitter.NewParser()
	a.javaParser.SetLanguage(a.javaLang)

	a.tsLang = typescript.GetLanguage()
	a.tsParser = sitter.NewParser()
	a.tsParser.SetLanguage(a.tsLang)

	a.jsLang = javascript.GetLanguage()
	a.jsParser = sitter.NewParser()
	a.jsParser.SetLanguage(a.jsLang)

	return a
}

func parseCtx() context.Context {
	return context.Background()
}
