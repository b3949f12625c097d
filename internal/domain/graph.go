package domain

import (
	"sort"
	"strings"

	"github.com/yourtionguo/codegraf/internal/model"
)

// BuildGraph aggregates resolved calls into weighted cross-domain edges
// (spec §4.6): fqnDomain maps a symbol's fqn (or any prefix of it, tried
// longest-first) to the domain name its declaring file belongs to.
// Self-edges (a domain calling itself) are excluded. Edges are sorted by
// weight descending, then by from/to name for determinism.
func BuildGraph(calls []model.ResolvedCall, fqnDomain map[string]string) []model.DomainDependency {
	weights := make(map[[2]string]int)
	order := make([][2]string, 0)

	for _, call := range calls {
		from, ok := domainOf(fqnDomain, call.FromFqn)
		if !ok {
			continue
		}
		to, ok := domainOf(fqnDomain, call.ToFqn)
		if !ok {
			continue
		}
		if from == to {
			continue
		}
		key := [2]string{from, to}
		if _, seen := weights[key]; !seen {
			order = append(order, key)
		}
		weights[key]++
	}

	edges := make([]model.DomainDependency, 0, len(order))
	for _, key := range order {
		edges = append(edges, model.DomainDependency{From: key[0], To: key[1], Weight: weights[key]})
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Weight != edges[j].Weight {
			return edges[i].Weight > edges[j].Weight
		}
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// domainOf resolves a symbol fqn to a domain name by trying the fqn
// itself and then progressively shorter dotted prefixes, since
// fqnDomain is keyed by package/file prefix rather than every individual
// symbol fqn.
func domainOf(fqnDomain map[string]string, fqn string) (string, bool) {
	candidate := fqn
	for {
		if d, ok := fqnDomain[candidate]; ok {
			return d, true
		}
		idx := strings.LastIndexByte(candidate, '.')
		if idx < 0 {
			return "", false
		}
		candidate = candidate[:idx]
	}
}
