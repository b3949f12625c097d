// Package symtab builds the corpus-wide symbol table the resolver reads
// from: every declared symbol across every parsed file, keyed by fully
// qualified name, simple name, enclosing package, and function name, plus
// the direct-supertype graph the hierarchy walk needs (spec §4.3).
package symtab

import "github.com/yourtionguo/codegraf/internal/model"

// Table is read-only once Build returns; the resolver never mutates it
// (spec §5's "symbol table read-only once built" concurrency invariant).
type Table struct {
	byFqn           map[string]*model.Symbol
	byName          map[string][]*model.Symbol
	functionsByName map[string][]*model.Symbol
	byPackage       map[string][]*model.Symbol
	// typeHierarchy maps a type's FQN to its direct supertypes' FQNs (as
	// written in source, not yet resolved) for the breadth-first ancestor
	// walk the resolver runs during unqualified-call resolution.
	typeHierarchy map[string][]string
	order         []*model.Symbol
}

func newTable() *Table {
	return &Table{
		byFqn:           make(map[string]*model.Symbol),
		byName:          make(map[string][]*model.Symbol),
		functionsByName: make(map[string][]*model.Symbol),
		byPackage:       make(map[string][]*model.Symbol),
		typeHierarchy:   make(map[string][]string),
	}
}

// Build makes a single pass over every parsed file in the corpus,
// inserting one Symbol per declaration in source order. Insertion order
// is preserved in byName/functionsByName/byPackage since the resolver's
// first-match-wins rules (spec §4.3, §4.4) depend on it.
func Build(files []*model.ParsedFile) *Table {
	t := newTable()
	for _, pf := range files {
		b := &builder{table: t, file: pf, prefix: namespacePrefix(pf)}
		b.walkFile()
	}
	return t
}

func (t *Table) insert(sym *model.Symbol) {
	if _, exists := t.byFqn[sym.Fqn]; !exists {
		t.byFqn[sym.Fqn] = sym
		t.order = append(t.order, sym)
	}
	t.byName[sym.Name] = append(t.byName[sym.Name], sym)
	if sym.Kind == model.SymbolKindFunction {
		t.functionsByName[sym.Name] = append(t.functionsByName[sym.Name], sym)
	}
	if sym.PackageName != "" {
		t.byPackage[sym.PackageName] = append(t.byPackage[sym.PackageName], sym)
	}
}

// ByFqn returns the unique symbol declared under fqn, if any.
func (t *Table) ByFqn(fqn string) (*model.Symbol, bool) {
	s, ok := t.byFqn[fqn]
	return s, ok
}

// ByName returns every symbol (of any kind) declared with this simple
// name, in first-declared order.
func (t *Table) ByName(name string) []*model.Symbol { return t.byName[name] }

// FunctionsByName returns every function/method symbol with this simple
// name, in first-declared order — the slice overload scoring runs over.
func (t *Table) FunctionsByName(name string) []*model.Symbol { return t.functionsByName[name] }

// ByPackage returns every symbol declared in a file of pkg, top-level
// declarations and class members alike, in first-declared order (used for
// same-package unqualified resolution).
func (t *Table) ByPackage(pkg string) []*model.Symbol { return t.byPackage[pkg] }

// Supertypes returns the direct (unresolved, as-written) supertype names
// of the type declared under fqn.
func (t *Table) Supertypes(fqn string) []string { return t.typeHierarchy[fqn] }

// All returns every distinct symbol in the table, in first-declared order
// — the source the graph sink's node batch is built from.
func (t *Table) All() []*model.Symbol { return t.order }
