package model

// ParsedImport is one import declaration. Java static imports encode the
// member path with a "static:" prefix (see spec §6); TypeScript type-only
// imports set IsTypeOnly. No extractor records dynamic import(...)
// expressions, so IsDynamic and IsTemplateLiteral are always false.
type ParsedImport struct {
	Path             string
	Alias            string
	IsWildcard       bool
	IsTypeOnly       bool
	IsDynamic        bool
	IsTemplateLiteral bool
	Location         Location
}

// ParsedReexport models a TypeScript `export ... from` statement.
type ParsedReexport struct {
	SourcePath   string
	OriginalName string
	ExportedName string
	IsWildcard   bool
	IsNamespace  bool
	IsTypeOnly   bool
	Location     Location
}

// DestructuringDeclaration is a TypeScript destructuring binding, e.g.
// `const { a, b: renamed, ...rest } = obj`.
type DestructuringDeclaration struct {
	ComponentNames []string
	ComponentTypes map[string]string
	Location       Location
}

// ParsedFile is the normalized, per-file output of a language extractor.
type ParsedFile struct {
	FilePath    string
	Language    Language
	Content     []byte
	Checksum    string
	PackageName string // empty when absent

	Imports   []ParsedImport
	Reexports []ParsedReexport // TypeScript only

	Classes           []*ParsedClass
	TopLevelFunctions []*ParsedFunction
	TopLevelProperties []*ParsedProperty
	TypeAliases       []*ParsedTypeAlias

	DestructuringDeclarations []*DestructuringDeclaration
	ObjectExpressions         []*ParsedClass // anonymous object expressions, kind ClassKindObject

	ParseErrors []string // ExtractorInvariantViolation notes collected during extraction
}
