package cst

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Match is one tree-sitter query match, exposed as Node captures keyed by
// capture name (e.g. "package.name").
type Match struct {
	Captures map[string]Node
}

// Query runs a tree-sitter query string against node and returns one Match
// per query match, each capture resolved to its name. Extractors use this
// for small, targeted lookups (package headers, import clauses); bulk
// traversal still walks Children()/NamedChildren() directly.
func (a *Adapter) Query(node Node, queryString string, lang Language) ([]Match, error) {
	if node.n == nil {
		return nil, fmt.Errorf("cst: query against nil node")
	}
	_, language, err := a.langFor(lang)
	if err != nil {
		return nil, err
	}

	query, err := sitter.NewQuery([]byte(queryString), language)
	if err != nil {
		return nil, fmt.Errorf("cst: invalid query: %w", err)
	}
	defer query.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, node.n)

	var matches []Match
	for {
		m, ok := cursor.NextMatch()
		if !ok {
			break
		}
		captures := make(map[string]Node, len(m.Captures))
		for _, c := range m.Captures {
			name := query.CaptureNameForId(c.Index)
			captures[name] = wrap(c.Node, node.source)
		}
		matches = append(matches, Match{Captures: captures})
	}
	return matches, nil
}
