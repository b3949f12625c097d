package symtab

import (
	"strings"

	"github.com/yourtionguo/codegraf/internal/model"
)

// builder walks one ParsedFile's declarations, inserting a Symbol for
// each and recording supertype edges for the hierarchy walk.
type builder struct {
	table  *Table
	file   *model.ParsedFile
	prefix string
}

func (b *builder) walkFile() {
	for _, cls := range b.file.Classes {
		b.walkClass(cls, b.prefix)
	}
	for _, fn := range b.file.TopLevelFunctions {
		b.insertFunction(fn, b.prefix, "")
	}
	for _, prop := range b.file.TopLevelProperties {
		b.insertProperty(prop, b.prefix)
	}
	for _, ta := range b.file.TypeAliases {
		b.insertTypeAlias(ta, b.prefix)
	}
	for _, obj := range b.file.ObjectExpressions {
		b.walkClass(obj, b.prefix)
	}
}

func classSymbolKind(kind model.ClassKind) model.SymbolKind {
	switch kind {
	case model.ClassKindInterface:
		return model.SymbolKindInterface
	case model.ClassKindObject:
		return model.SymbolKindObject
	case model.ClassKindEnum:
		return model.SymbolKindEnum
	case model.ClassKindAnnotation:
		return model.SymbolKindAnnotation
	default:
		return model.SymbolKindClass
	}
}

func (b *builder) walkClass(cls *model.ParsedClass, prefix string) {
	fqn := joinFqn(prefix, cls.Name)

	var supertypes []string
	if cls.SuperClass != "" {
		supertypes = append(supertypes, cls.SuperClass)
	}
	supertypes = append(supertypes, cls.Interfaces...)
	if len(supertypes) > 0 {
		b.table.typeHierarchy[fqn] = supertypes
	}

	sym := &model.Symbol{
		Name:        cls.Name,
		Fqn:         fqn,
		Kind:        classSymbolKind(cls.Kind),
		FilePath:    b.file.FilePath,
		Location:    cls.Location,
		PackageName: b.file.PackageName,
	}
	b.table.insert(sym)

	for _, prop := range cls.Properties {
		b.insertProperty(prop, fqn)
	}
	for _, fn := range cls.Functions {
		b.insertFunction(fn, fqn, fqn)
	}
	for _, nested := range cls.NestedClasses {
		b.walkClass(nested, fqn)
	}
	if cls.CompanionObject != nil {
		b.walkClass(cls.CompanionObject, fqn)
	}
}

func (b *builder) insertFunction(fn *model.ParsedFunction, prefix, declaringTypeFqn string) {
	fqn := joinFqn(prefix, fn.Name)
	paramTypes := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		paramTypes[i] = normalizeForSignature(p.Type)
	}
	sym := &model.Symbol{
		Name:             fn.Name,
		Fqn:              fqn,
		Kind:             model.SymbolKindFunction,
		FilePath:         b.file.FilePath,
		Location:         fn.Location,
		PackageName:      b.file.PackageName,
		Parameters:       fn.Parameters,
		ParameterTypes:   paramTypes,
		IsExtension:      fn.IsExtension,
		DeclaringTypeFqn: declaringTypeFqn,
	}
	// Overloads share one FQN at the simple level; disambiguate the
	// byFqn key with a parameter-type suffix such as "(Int)" so every overload is still
	// individually addressable, while ByName/FunctionsByName keep every
	// overload under the same simple name for the resolver's scoring pass.
	if _, exists := b.table.byFqn[fqn]; exists {
		fqn = fqn + overloadSuffix(paramTypes)
		sym.Fqn = fqn
	}
	b.table.insert(sym)
}

func (b *builder) insertProperty(prop *model.ParsedProperty, prefix string) {
	fqn := joinFqn(prefix, prop.Name)
	sym := &model.Symbol{
		Name:        prop.Name,
		Fqn:         fqn,
		Kind:        model.SymbolKindProperty,
		FilePath:    b.file.FilePath,
		Location:    prop.Location,
		PackageName: b.file.PackageName,
	}
	b.table.insert(sym)
}

func (b *builder) insertTypeAlias(ta *model.ParsedTypeAlias, prefix string) {
	fqn := joinFqn(prefix, ta.Name)
	sym := &model.Symbol{
		Name:        ta.Name,
		Fqn:         fqn,
		Kind:        model.SymbolKindTypeAlias,
		FilePath:    b.file.FilePath,
		Location:    ta.Location,
		PackageName: b.file.PackageName,
	}
	b.table.insert(sym)
}

// normalizeForSignature strips generics and a trailing nullability marker
// before a parameter type is stored in a Symbol, so overload disambiguation
// keys and the resolver's type lattice (internal/resolve) compare apples
// to apples — the same `normalize(T)` operation spec §4.4 names.
func normalizeForSignature(t string) string {
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "?")
	if idx := strings.IndexByte(t, '<'); idx >= 0 {
		t = t[:idx]
	}
	return strings.TrimSpace(t)
}

func overloadSuffix(paramTypes []string) string {
	suffix := "("
	for i, t := range paramTypes {
		if i > 0 {
			suffix += ","
		}
		suffix += t
	}
	return suffix + ")"
}
