// Package cst is the thin accessor over the external concrete-syntax tree
// provider (github.com/smacker/go-tree-sitter). It is the only package in
// this module that knows the underlying parser's node-handle type; every
// other component navigates through Node, never *sitter.Node directly.
package cst

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Range is a 0-origin source range, matching this adapter's documented
// interface boundary (spec §3: "0-origin is permitted but must be
// documented at that interface"). Extractors convert to 1-origin
// model.Location at their own boundary.
type Range struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
	StartByte   uint32
	EndByte     uint32
}

// Node is a read-only handle over one CST node plus the source bytes it was
// parsed from, needed to recover node text.
type Node struct {
	n      *sitter.Node
	source []byte
}

// Tree wraps a parsed root node and the bytes it covers.
type Tree struct {
	Root Node
}

func wrap(n *sitter.Node, source []byte) Node {
	if n == nil {
		return Node{}
	}
	return Node{n: n, source: source}
}

// IsZero reports whether this Node handle is empty (a stale or absent
// node).
func (n Node) IsZero() bool { return n.n == nil }

// Kind returns the node's grammar kind string, e.g. "class_declaration".
func (n Node) Kind() string {
	if n.n == nil {
		return ""
	}
	return n.n.Type()
}

// Text returns the node's source text slice.
func (n Node) Text() string {
	if n.n == nil {
		return ""
	}
	return n.n.Content(n.source)
}

// Children returns the node's direct children, named and anonymous alike.
func (n Node) Children() []Node {
	if n.n == nil {
		return nil
	}
	count := int(n.n.ChildCount())
	out := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, wrap(n.n.Child(i), n.source))
	}
	return out
}

// NamedChildren returns only the node's named (non-punctuation) children.
func (n Node) NamedChildren() []Node {
	if n.n == nil {
		return nil
	}
	count := int(n.n.NamedChildCount())
	out := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, wrap(n.n.NamedChild(i), n.source))
	}
	return out
}

// ChildByFieldName looks up a child by the grammar's named field, e.g.
// "name" or "body". Returns a zero Node if absent.
func (n Node) ChildByFieldName(field string) Node {
	if n.n == nil {
		return Node{}
	}
	return wrap(n.n.ChildByFieldName(field), n.source)
}

// Parent returns the node's parent, or a zero Node at the root.
func (n Node) Parent() Node {
	if n.n == nil {
		return Node{}
	}
	return wrap(n.n.Parent(), n.source)
}

// Range returns the node's 0-origin source range.
func (n Node) Range() Range {
	if n.n == nil {
		return Range{}
	}
	sp, ep := n.n.StartPoint(), n.n.EndPoint()
	return Range{
		StartLine:   int(sp.Row),
		StartColumn: int(sp.Column),
		EndLine:     int(ep.Row),
		EndColumn:   int(ep.Column),
		StartByte:   n.n.StartByte(),
		EndByte:     n.n.EndByte(),
	}
}

// HasError reports whether the subtree rooted here contains a syntax
// error; used to distinguish a clean parse from a partial one.
func (n Node) HasError() bool {
	if n.n == nil {
		return false
	}
	return n.n.HasError()
}

// Adapter parses source bytes into a Tree for one of the three supported
// languages and runs tree-sitter queries against it. One Adapter instance
// must not be shared across goroutines: the underlying *sitter.Parser is
// not safe for concurrent use, so the pipeline's worker pool constructs one
// Adapter per worker (see internal/pipeline).
type Adapter struct {
	kotlinParser *sitter.Parser
	javaParser   *sitter.Parser
	tsParser     *sitter.Parser
	jsParser     *sitter.Parser

	kotlinLang *sitter.Language
	javaLang   *sitter.Language
	tsLang     *sitter.Language
	jsLang     *sitter.Language
}

// Language identifies which grammar to parse with.
type Language string

const (
	Kotlin     Language = "kotlin"
	Java       Language = "java"
	TypeScript Language = "typescript"
	JavaScript Language = "javascript"
)

// Parse parses content with the grammar for lang and returns the root node.
// On a syntax error the root node is still returned (partial results, per
// the teacher's ParseFailure contract) alongside a non-nil error; callers
// that only need best-effort extraction may ignore the error and continue
// with the partial tree.
func (a *Adapter) Parse(content []byte, lang Language) (Tree, error) {
	parser, language, err := a.langFor(lang)
	if err != nil {
		return Tree{}, err
	}
	if len(content) == 0 {
		return Tree{}, fmt.Errorf("cst: empty content")
	}

	tree, err := parser.ParseCtx(parseCtx(), nil, content)
	if err != nil {
		return Tree{}, fmt.Errorf("cst: parse failed: %w", err)
	}
	if tree == nil {
		return Tree{}, fmt.Errorf("cst: parser returned nil tree")
	}
	root := tree.RootNode()
	if root == nil {
		return Tree{}, fmt.Errorf("cst: tree has no root node")
	}
	_ = language
	out := Tree{Root: wrap(root, content)}
	if root.HasError() {
		return out, fmt.Errorf("cst: parse tree contains syntax errors")
	}
	return out, nil
}

func (a *Adapter) langFor(lang Language) (*sitter.Parser, *sitter.Language, error) {
	switch lang {
	case Kotlin:
		return a.kotlinParser, a.kotlinLang, nil
	case Java:
		return a.javaParser, a.javaLang, nil
	case TypeScript:
		return a.tsParser, a.tsLang, nil
	case JavaScript:
		return a.jsParser, a.jsLang, nil
	default:
		return nil, nil, fmt.Errorf("cst: unsupported language %q", lang)
	}
}
