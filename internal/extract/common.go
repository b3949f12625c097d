// Package extract holds the three per-language extractors (Kotlin, Java,
// TypeScript/JavaScript) that turn a cst.Tree into a model.ParsedFile, plus
// the helpers shared across all of them (span conversion, modifier
// records, decorator-cursor accumulation — spec §4.2 and §9).
package extract

import (
	"strings"

	"github.com/yourtionguo/codegraf/internal/cst"
	"github.com/yourtionguo/codegraf/internal/model"
)

// Extractor is the common shape all three per-language extractors satisfy,
// letting the pipeline orchestrator select one by file extension without a
// type switch at the call site.
type Extractor interface {
	Language() model.Language
	Extract(tree cst.Tree, filePath string, content []byte) *model.ParsedFile
}

// toLocation converts a cst.Range (0-origin) into a model.Location
// (1-origin), the conversion the extractor boundary is responsible for per
// spec §3.
func toLocation(filePath string, r cst.Range) model.Location {
	return model.Location{
		FilePath:    filePath,
		StartLine:   r.StartLine + 1,
		StartColumn: r.StartColumn + 1,
		EndLine:     r.EndLine + 1,
		EndColumn:   r.EndColumn + 1,
	}
}

func nodeLocation(filePath string, n cst.Node) model.Location {
	return toLocation(filePath, n.Range())
}

// findChildByKind does a linear scan of n's direct children for the first
// one whose Kind matches, mirroring the teacher's findChildByType.
func findChildByKind(n cst.Node, kind string) cst.Node {
	for _, c := range n.Children() {
		if c.Kind() == kind {
			return c
		}
	}
	return cst.Node{}
}

// findChildrenByKind collects every direct child matching kind, in order.
func findChildrenByKind(n cst.Node, kind string) []cst.Node {
	var out []cst.Node
	for _, c := range n.Children() {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}

// Modifiers is the common record modifier extraction returns: a
// visibility plus the boolean flags relevant to the declaration being
// examined. Per-language extractors populate only the flags their grammar
// actually has.
type Modifiers struct {
	Visibility model.Visibility
	IsAbstract bool
	IsSealed   bool
	IsData     bool
	IsInner    bool
	IsStatic   bool
	IsFinal    bool
	IsAsync    bool
	IsInline   bool
	IsInfix    bool
	IsOperator bool
}

// normalizeType strips generic parameters and a trailing nullability
// marker, and trims whitespace — the `normalize(T)` function the overload
// scorer applies (spec §4.4 step 6).
func normalizeType(t string) string {
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "?")
	if idx := strings.IndexByte(t, '<'); idx >= 0 {
		t = t[:idx]
	}
	return strings.TrimSpace(t)
}

// decoratorCursor accumulates TypeScript/Kotlin-style sibling decorators
// until the next non-decorator declaration claims them, per spec §4.2 and
// §9 ("pending-decorator sibling accumulation ... explicit decorator
// cursor local to the class-body loop, cleared at boundaries").
type decoratorCursor struct {
	pending []string
}

func (d *decoratorCursor) add(text string) {
	d.pending = append(d.pending, text)
}

// take returns the accumulated decorators and clears the cursor; called
// once per attached-or-skipped non-decorator node.
func (d *decoratorCursor) take() []string {
	if len(d.pending) == 0 {
		return nil
	}
	out := d.pending
	d.pending = nil
	return out
}

// commentText strips a line or block comment's leading markers, used by
// doc-comment extraction in all three extractors.
func commentText(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "/**")
	raw = strings.TrimPrefix(raw, "/*")
	raw = strings.TrimSuffix(raw, "*/")
	raw = strings.TrimPrefix(raw, "//")
	lines := strings.Split(raw, "\n")
	for i, l := range lines {
		l = strings.TrimSpace(l)
		l = strings.TrimPrefix(l, "*")
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// precedingDocComment walks backward through n's preceding siblings,
// collecting contiguous comment nodes, the way the teacher's
// extractKDoc/extractJavadoc/extractJSDoc do.
func precedingDocComment(n cst.Node, commentKinds ...string) string {
	parent := n.Parent()
	if parent.IsZero() {
		return ""
	}
	siblings := parent.Children()
	idx := -1
	for i, s := range siblings {
		if s.Range() == n.Range() && s.Kind() == n.Kind() {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return ""
	}
	var collected []string
	for i := idx - 1; i >= 0; i-- {
		kind := siblings[i].Kind()
		isComment := false
		for _, ck := range commentKinds {
			if kind == ck {
				isComment = true
				break
			}
		}
		if !isComment {
			break
		}
		collected = append([]string{commentText(siblings[i].Text())}, collected...)
	}
	return strings.Join(collected, "\n")
}
