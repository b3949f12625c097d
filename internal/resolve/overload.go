package resolve

import "github.com/yourtionguo/codegraf/internal/model"

// scoreCandidate implements spec §4.4's overload-scoring formula. A
// negative return means reject: the call cannot possibly bind to this
// candidate's arity. Otherwise the returned score is summed across arity
// and per-parameter type compatibility, with ties later broken by
// declaration order (the caller walks candidates in symtab insertion
// order and keeps the first maximum).
func scoreCandidate(candidate *model.Symbol, argTypes []string, isTS bool) (score int, reject bool) {
	n := len(candidate.Parameters)
	a := len(argTypes)

	switch {
	case a == n:
		score += 100
	case a < n:
		// Every parameter beyond the supplied arguments must have a
		// default for this candidate to bind at all.
		for i := a; i < n; i++ {
			if !candidate.Parameters[i].HasDefault {
				return 0, true
			}
		}
		score += 50
	default:
		// More arguments than parameters: only legal if the tail is
		// variadic (encoded as a trailing "..." type suffix by the
		// extractors), otherwise reject outright.
		if n == 0 || !hasVariadicTail(candidate.Parameters[n-1].Type) {
			return 0, true
		}
		score += 50
	}

	limit := n
	if a < limit {
		limit = a
	}
	for i := 0; i < limit; i++ {
		switch Compare(candidate.Parameters[i].Type, argTypes[i], isTS) {
		case CompatibilityExact:
			score += 50
		case CompatibilityLattice:
			score += 25
		case CompatibilityMismatch:
			score -= 10
		case CompatibilityUnknown:
			// no signal either way
		}
	}

	return score, false
}

func hasVariadicTail(t string) bool {
	return len(t) >= 3 && t[len(t)-3:] == "..."
}

// SelectOverload scores every candidate with the same simple name and
// returns the first declaration-order winner at the maximum score,
// matching spec §4.4's tie-break rule. Returns nil if every candidate
// was rejected on arity.
func SelectOverload(candidates []*model.Symbol, argTypes []string, isTS bool) *model.Symbol {
	var best *model.Symbol
	bestScore := 0
	first := true
	for _, c := range candidates {
		score, reject := scoreCandidate(c, argTypes, isTS)
		if reject {
			continue
		}
		if first || score > bestScore {
			best = c
			bestScore = score
			first = false
		}
	}
	return best
}
