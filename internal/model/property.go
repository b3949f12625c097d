package model

// ParsedProperty is a field, `val`/`var`, or top-level binding.
type ParsedProperty struct {
	Name        string
	Type        string // raw textual type, empty if not annotated
	Visibility  Visibility
	IsVal       bool // immutable: Kotlin `val`, TS `const`/readonly field
	Initializer string
	Annotations []string
	Location    Location
}

// TypeAliasModifier is one entry in a mapped type's modifier list
// (TypeScript `readonly`/`optional`, each with an optional +/- prefix).
type TypeAliasModifier struct {
	Kind   string // "readonly" or "optional"
	Prefix string // "+", "-", or ""
}

// MappedType models TypeScript `{ [K in keyof T as U]?: V }`.
type MappedType struct {
	KeyName   string
	Constraint string
	HasKeyof  bool
	ValueType string
	Modifiers []TypeAliasModifier
	AsClause  string // empty if absent
}

// ConditionalType models TypeScript `T extends U ? X : Y`.
type ConditionalType struct {
	CheckType   string
	ExtendsType string
	TrueType    string
	FalseType   string
}

// ParsedTypeAlias is a `type` declaration (TypeScript) or `typealias`
// (Kotlin).
type ParsedTypeAlias struct {
	Name           string
	AliasedType    string // raw text
	Visibility     Visibility
	TypeParameters []TypeParameter

	MappedType      *MappedType
	ConditionalType *ConditionalType

	Location Location
}
