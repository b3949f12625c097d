package model

// SymbolKind tags the variant of a Symbol. Each variant carries the common
// fields plus whatever is specific to it (see FunctionSymbol below).
type SymbolKind string

const (
	SymbolKindClass      SymbolKind = "class"
	SymbolKindInterface  SymbolKind = "interface"
	SymbolKindObject     SymbolKind = "object"
	SymbolKindEnum       SymbolKind = "enum"
	SymbolKindAnnotation SymbolKind = "annotation"
	SymbolKindFunction   SymbolKind = "function"
	SymbolKindProperty   SymbolKind = "property"
	SymbolKindTypeAlias  SymbolKind = "type_alias"
)

// Symbol is a resolved, first-class referent. fqn is its identity key: it
// must be unique within a SymbolTable.
type Symbol struct {
	Name        string
	Fqn         string
	Kind        SymbolKind
	FilePath    string
	Location    Location
	PackageName string // empty if unpackaged

	// FunctionSymbol-only fields, zero value otherwise.
	Parameters       []Parameter
	ParameterTypes   []string
	IsExtension      bool
	DeclaringTypeFqn string // empty for top-level functions
}

// IsConstructible reports whether a constructor call (`Name(...)`) against
// this symbol's type is legal per spec §4.4 step 1: classes, enums, and
// annotations are constructible, interfaces and objects are not.
func (s *Symbol) IsConstructible() bool {
	switch s.Kind {
	case SymbolKindClass, SymbolKindEnum, SymbolKindAnnotation:
		return true
	default:
		return false
	}
}
