// Package resolve implements call and reference resolution over a built
// symbol table (spec §4.4): constructor detection, enum static methods,
// qualified and unqualified call resolution, overload scoring, and the
// Kotlin/TypeScript type-compatibility lattice the scorer consults.
package resolve

import "strings"

// Normalize strips generic parameters and a trailing nullability marker
// from a type string — the `normalize(T)` operation spec §4.4 step 6
// names, applied before any type comparison in this package.
func Normalize(t string) string {
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "?")
	if idx := strings.IndexByte(t, '<'); idx >= 0 {
		t = t[:idx]
	}
	return strings.TrimSpace(t)
}

// kotlinWidening lists each rung of the Kotlin numeric-widening chain in
// ascending order (spec §4.4): Byte⊑Short⊑Int⊑Long⊑Float⊑Double⊑Number.
var kotlinWidening = []string{"Byte", "Short", "Int", "Long", "Float", "Double", "Number"}

func kotlinWideningRank(t string) int {
	for i, r := range kotlinWidening {
		if r == t {
			return i
		}
	}
	return -1
}

// kotlinAssignable applies numeric widening plus the direct, hand-coded
// subtyping facts the lattice needs beyond it (spec §4.4): String⊑CharSequence,
// Collection⊑Iterable⊑Any, and the Nothing/Any top-and-bottom types.
func kotlinAssignable(paramType, argType string) bool {
	if paramType == "Any" {
		return true
	}
	if argType == "Nothing" {
		return true
	}
	if paramType == argType {
		return true
	}
	pr, ar := kotlinWideningRank(paramType), kotlinWideningRank(argType)
	if pr >= 0 && ar >= 0 && ar <= pr {
		return true
	}
	switch {
	case argType == "String" && paramType == "CharSequence":
		return true
	case argType == "Collection" && (paramType == "Iterable" || paramType == "Any"):
		return true
	case argType == "Iterable" && paramType == "Any":
		return true
	}
	return false
}

// tsAssignable implements the TypeScript slice of the lattice (spec
// §4.4): `any` is bidirectionally compatible with everything, `unknown`
// accepts any value but is itself only assignable to any/unknown,
// `never` is assignable to anything but nothing is assignable to it
// except never itself, void and undefined are treated as equivalent, and
// null is only assignable to any/unknown (strict-null-checks semantics).
func tsAssignable(paramType, argType string) bool {
	switch {
	case paramType == "any" || argType == "any":
		return true
	case argType == "unknown":
		return paramType == "unknown"
	case paramType == "unknown":
		return true
	case argType == "never":
		return true
	case paramType == "never":
		return false
	case (paramType == "void" && argType == "undefined") || (paramType == "undefined" && argType == "void"):
		return true
	case argType == "null":
		return paramType == "any" || paramType == "unknown"
	case paramType == argType:
		return true
	}
	return false
}

// Compatibility is the outcome the overload scorer assigns per parameter:
// the bands described in spec §4.4's scoring table.
type Compatibility int

const (
	CompatibilityUnknown Compatibility = iota // either type unknown: 0 points
	CompatibilityMismatch                     // neither exact nor lattice-compatible: -10 points
	CompatibilityLattice                      // lattice-compatible, not exact: +25 points
	CompatibilityExact                        // identical normalized types: +50 points
)

// Compare classifies one (parameterType, argumentType) pair. isTS selects
// the TypeScript lattice; otherwise the Kotlin/Java lattice applies (Java
// has no widening rules of its own in this specification, so it falls
// back to exact-or-mismatch, which Compare already does for plain
// equality before consulting either language-specific table).
func Compare(paramType, argType string, isTS bool) Compatibility {
	p, a := Normalize(paramType), Normalize(argType)
	if p == "" || a == "" {
		return CompatibilityUnknown
	}
	if p == a {
		return CompatibilityExact
	}
	var assignable bool
	if isTS {
		assignable = tsAssignable(p, a)
	} else {
		assignable = kotlinAssignable(p, a)
	}
	if assignable {
		return CompatibilityLattice
	}
	return CompatibilityMismatch
}
