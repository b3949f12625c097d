package extract

import (
	"strings"

	"github.com/yourtionguo/codegraf/internal/cst"
	"github.com/yourtionguo/codegraf/internal/ids"
	"github.com/yourtionguo/codegraf/internal/model"
)

// TypeScript is a pure function (cst, filePath) -> ParsedFile for
// TypeScript/JavaScript sources, grounded on the teacher's JSParser but
// extended with the constructs the teacher drops entirely: destructuring
// declarations, re-exports, interface call/construct/index signatures, mapped and conditional types, and
// decorator-sibling accumulation.
type TypeScript struct {
	// jsx controls whether the adapter is asked to parse as TSX; unused
	// for now since the cst.Adapter only distinguishes TypeScript/JavaScript.
	jsx bool
}

func NewTypeScript() *TypeScript { return &TypeScript{} }

func (t *TypeScript) Language() model.Language { return model.LanguageTypeScript }

func (t *TypeScript) Extract(tree cst.Tree, filePath string, content []byte) *model.ParsedFile {
	pf := &model.ParsedFile{
		FilePath: filePath,
		Language: model.LanguageTypeScript,
		Content:  content,
		Checksum: ids.Checksum(content),
	}

	root := tree.Root
	cursor := &decoratorCursor{}
	for _, child := range root.Children() {
		switch child.Kind() {
		case "import_statement":
			t.parseImport(filePath, child, pf)
		case "export_statement":
			t.parseExport(filePath, child, pf, cursor)
		case "lexical_declaration", "variable_declaration":
			t.parseTopLevelVariable(filePath, child, pf, cursor.take())
		case "function_declaration":
			pf.TopLevelFunctions = append(pf.TopLevelFunctions, t.parseFunction(filePath, child))
		case "class_declaration":
			pf.Classes = append(pf.Classes, t.parseClass(filePath, child))
		case "interface_declaration":
			pf.Classes = append(pf.Classes, t.parseInterface(filePath, child))
		case "type_alias_declaration":
			pf.TypeAliases = append(pf.TypeAliases, t.parseTypeAlias(filePath, child))
		case "enum_declaration":
			pf.Classes = append(pf.Classes, t.parseEnum(filePath, child))
		case "decorator":
			cursor.add(child.Text())
		}
	}

	return pf
}

// parseImport records ES6 static import statements: the module path, a
// default-import alias, and the type-only flag. Dynamic import(...)
// expressions are not recorded, so IsDynamic and IsTemplateLiteral are
// never set.
func (t *TypeScript) parseImport(filePath string, n cst.Node, pf *model.ParsedFile) {
	loc := nodeLocation(filePath, n)
	isTypeOnly := false
	for _, c := range n.Children() {
		if c.Kind() == "type" || c.Text() == "type" {
			isTypeOnly = true
			break
		}
	}
	source := findChildByKind(n, "string")
	path := strings.Trim(source.Text(), "\"'`")
	alias := ""
	if clause := findChildByKind(n, "import_clause"); !clause.IsZero() {
		if def := findChildByKind(clause, "identifier"); !def.IsZero() {
			alias = def.Text()
		}
	}
	pf.Imports = append(pf.Imports, model.ParsedImport{
		Path: path, Alias: alias, IsTypeOnly: isTypeOnly, Location: loc,
	})
}

// parseExport handles both declaration exports (`export class Foo {}`)
// and re-export clauses (`export { a as b } from './x'`,
// `export * from './x'`, `export * as ns from './x'`), covering spec
// §3's ParsedReexport fully, unlike the teacher which only records a
// generic "export" symbol with no structure.
func (t *TypeScript) parseExport(filePath string, n cst.Node, pf *model.ParsedFile, cursor *decoratorCursor) {
	loc := nodeLocation(filePath, n)
	isTypeOnly := false
	for _, c := range n.Children() {
		if c.Text() == "type" {
			isTypeOnly = true
		}
	}

	sourceNode := findChildByKind(n, "string")
	source := strings.Trim(sourceNode.Text(), "\"'`")

	// export * from '...'  or  export * as ns from '...'
	if hasDirectChildText(n, "*") {
		namespaceAlias := ""
		isNamespace := false
		if ns := findChildByKind(n, "identifier"); !ns.IsZero() {
			namespaceAlias = ns.Text()
			isNamespace = true
		}
		pf.Reexports = append(pf.Reexports, model.ParsedReexport{
			SourcePath: source, ExportedName: namespaceAlias, IsWildcard: !isNamespace,
			IsNamespace: isNamespace, IsTypeOnly: isTypeOnly, Location: loc,
		})
		return
	}

	// export { a, b as c } from '...'  or  export { a, b as c };
	if clause := findChildByKind(n, "export_clause"); !clause.IsZero() {
		for _, spec := range clause.Children() {
			if spec.Kind() != "export_specifier" {
				continue
			}
			names := spec.NamedChildren()
			if len(names) == 0 {
				continue
			}
			original := names[0].Text()
			exported := original
			if len(names) > 1 {
				exported = names[1].Text()
			}
			pf.Reexports = append(pf.Reexports, model.ParsedReexport{
				SourcePath: source, OriginalName: original, ExportedName: exported,
				IsTypeOnly: isTypeOnly, Location: nodeLocation(filePath, spec),
			})
		}
		return
	}

	// export default ... / export const|function|class ...
	decl := n.ChildByFieldName("declaration")
	if decl.IsZero() {
		for _, c := range n.NamedChildren() {
			if c.Kind() != "string" {
				decl = c
				break
			}
		}
	}
	if decl.IsZero() {
		return
	}
	switch decl.Kind() {
	case "function_declaration":
		pf.TopLevelFunctions = append(pf.TopLevelFunctions, t.parseFunction(filePath, decl))
	case "class_declaration":
		cls := t.parseClass(filePath, decl)
		cls.Annotations = append(cls.Annotations, cursor.take()...)
		pf.Classes = append(pf.Classes, cls)
	case "interface_declaration":
		pf.Classes = append(pf.Classes, t.parseInterface(filePath, decl))
	case "type_alias_declaration":
		pf.TypeAliases = append(pf.TypeAliases, t.parseTypeAlias(filePath, decl))
	case "enum_declaration":
		pf.Classes = append(pf.Classes, t.parseEnum(filePath, decl))
	case "lexical_declaration", "variable_declaration":
		t.parseTopLevelVariable(filePath, decl, pf, cursor.take())
	}
}

func hasDirectChildText(n cst.Node, text string) bool {
	for _, c := range n.Children() {
		if c.Text() == text {
			return true
		}
	}
	return false
}

// parseTopLevelVariable handles both ordinary `const x = ...` property
// declarations and destructuring declarations (`const { a, b } = obj`,
// `const [x, y] = pair`), which spec §3 models as a distinct
// DestructuringDeclaration record the teacher never produces.
func (t *TypeScript) parseTopLevelVariable(filePath string, n cst.Node, pf *model.ParsedFile, decorators []string) {
	for _, decl := range n.Children() {
		if decl.Kind() != "variable_declarator" {
			continue
		}
		nameNode := decl.ChildByFieldName("name")
		switch nameNode.Kind() {
		case "object_pattern", "array_pattern":
			dd := &model.DestructuringDeclaration{
				ComponentTypes: map[string]string{},
				Location:       nodeLocation(filePath, decl),
			}
			for _, comp := range nameNode.NamedChildren() {
				name := comp.Text()
				if comp.Kind() == "pair_pattern" || comp.Kind() == "shorthand_property_identifier_pattern" {
					if id := findChildByKind(comp, "identifier"); !id.IsZero() {
						name = id.Text()
					} else {
						name = comp.Text()
					}
				}
				dd.ComponentNames = append(dd.ComponentNames, name)
			}
			pf.DestructuringDeclarations = append(pf.DestructuringDeclarations, dd)
		default:
			name := nameNode.Text()
			typ := ""
			if ta := findChildByKind(decl, "type_annotation"); !ta.IsZero() {
				typ = strings.TrimPrefix(ta.Text(), ":")
				typ = strings.TrimSpace(typ)
			}
			initializer := ""
			if v := decl.ChildByFieldName("value"); !v.IsZero() {
				initializer = v.Text()
				if v.Kind() == "arrow_function" || v.Kind() == "function_expression" {
					fn := t.parseFunctionExpr(filePath, v, name)
					fn.Annotations = decorators
					pf.TopLevelFunctions = append(pf.TopLevelFunctions, fn)
					continue
				}
			}
			pf.TopLevelProperties = append(pf.TopLevelProperties, &model.ParsedProperty{
				Name: name, Type: typ, Initializer: initializer,
				Annotations: decorators,
				Location:    nodeLocation(filePath, decl),
			})
		}
	}
}

func (t *TypeScript) parseFunctionExpr(filePath string, n cst.Node, name string) *model.ParsedFunction {
	fn := t.parseFunction(filePath, n)
	fn.Name = name
	return fn
}

func (t *TypeScript) parseFunction(filePath string, n cst.Node) *model.ParsedFunction {
	name := ""
	if nameNode := n.ChildByFieldName("name"); !nameNode.IsZero() {
		name = nameNode.Text()
	}
	isAsync := hasDirectChildText(n, "async")

	fn := &model.ParsedFunction{
		Name:     name,
		IsAsync:  isAsync,
		Location: nodeLocation(filePath, n),
	}

	if tp := findChildByKind(n, "type_parameters"); !tp.IsZero() {
		fn.TypeParameters = t.parseTypeParameters(tp)
	}
	if params := n.ChildByFieldName("parameters"); !params.IsZero() {
		fn.Parameters = t.parseParameters(params)
	} else if params := findChildByKind(n, "formal_parameters"); !params.IsZero() {
		fn.Parameters = t.parseParameters(params)
	}
	if rt := n.ChildByFieldName("return_type"); !rt.IsZero() {
		fn.ReturnType = strings.TrimSpace(strings.TrimPrefix(rt.Text(), ":"))
	}
	if body := n.ChildByFieldName("body"); !body.IsZero() {
		fn.Calls = t.collectCalls(body)
	}
	return fn
}

func (t *TypeScript) parseTypeParameters(tp cst.Node) []model.TypeParameter {
	var out []model.TypeParameter
	for _, c := range tp.Children() {
		if c.Kind() != "type_parameter" {
			continue
		}
		param := model.TypeParameter{}
		if id := findChildByKind(c, "type_identifier"); !id.IsZero() {
			param.Name = id.Text()
		}
		if constraint := findChildByKind(c, "constraint"); !constraint.IsZero() {
			param.Bounds = append(param.Bounds, strings.TrimSpace(strings.TrimPrefix(constraint.Text(), "extends")))
		}
		out = append(out, param)
	}
	return out
}

func (t *TypeScript) parseParameters(params cst.Node) []model.Parameter {
	var out []model.Parameter
	for _, p := range params.Children() {
		switch p.Kind() {
		case "required_parameter", "optional_parameter":
			name := ""
			if pat := p.ChildByFieldName("pattern"); !pat.IsZero() {
				name = pat.Text()
			} else if id := findChildByKind(p, "identifier"); !id.IsZero() {
				name = id.Text()
			}
			typ := ""
			if ta := findChildByKind(p, "type_annotation"); !ta.IsZero() {
				typ = strings.TrimSpace(strings.TrimPrefix(ta.Text(), ":"))
			}
			hasDefault := p.Kind() == "optional_parameter" || !p.ChildByFieldName("value").IsZero()
			out = append(out, model.Parameter{Name: name, Type: typ, HasDefault: hasDefault})
		case "identifier":
			out = append(out, model.Parameter{Name: p.Text()})
		}
	}
	return out
}

func (t *TypeScript) parseClass(filePath string, n cst.Node) *model.ParsedClass {
	name := ""
	if nameNode := n.ChildByFieldName("name"); !nameNode.IsZero() {
		name = nameNode.Text()
	}
	cls := &model.ParsedClass{
		Name:       name,
		Kind:       model.ClassKindClass,
		IsAbstract: hasDirectChildText(n, "abstract"),
		Location:   nodeLocation(filePath, n),
	}
	if tp := findChildByKind(n, "type_parameters"); !tp.IsZero() {
		cls.TypeParameters = t.parseTypeParameters(tp)
	}
	if heritage := findChildByKind(n, "class_heritage"); !heritage.IsZero() {
		for _, clause := range heritage.Children() {
			switch clause.Kind() {
			case "extends_clause":
				if v := clause.NamedChildren(); len(v) > 0 {
					cls.SuperClass = v[0].Text()
				}
			case "implements_clause":
				for _, iface := range clause.NamedChildren() {
					cls.Interfaces = append(cls.Interfaces, iface.Text())
				}
			}
		}
	}
	if body := findChildByKind(n, "class_body"); !body.IsZero() {
		t.parseClassBody(filePath, body, cls)
	}
	return cls
}

func (t *TypeScript) parseClassBody(filePath string, body cst.Node, cls *model.ParsedClass) {
	cursor := &decoratorCursor{}
	for _, child := range body.Children() {
		switch child.Kind() {
		case "decorator":
			cursor.add(child.Text())
		case "method_definition":
			fn := t.parseMethod(filePath, child)
			fn.Annotations = append(fn.Annotations, cursor.take()...)
			cls.Functions = append(cls.Functions, fn)
		case "public_field_definition", "field_definition":
			prop := t.parseClassField(filePath, child)
			prop.Annotations = append(prop.Annotations, cursor.take()...)
			cls.Properties = append(cls.Properties, prop)
		default:
			cursor.take()
		}
	}
}

func (t *TypeScript) parseMethod(filePath string, n cst.Node) *model.ParsedFunction {
	name := ""
	if nameNode := n.ChildByFieldName("name"); !nameNode.IsZero() {
		name = nameNode.Text()
	}
	vis := model.VisibilityPublic
	switch {
	case hasDirectChildText(n, "private"):
		vis = model.VisibilityPrivate
	case hasDirectChildText(n, "protected"):
		vis = model.VisibilityProtected
	}
	fn := &model.ParsedFunction{
		Name:       name,
		Visibility: vis,
		IsAsync:    hasDirectChildText(n, "async"),
		Location:   nodeLocation(filePath, n),
	}
	if tp := findChildByKind(n, "type_parameters"); !tp.IsZero() {
		fn.TypeParameters = t.parseTypeParameters(tp)
	}
	if params := n.ChildByFieldName("parameters"); !params.IsZero() {
		fn.Parameters = t.parseParameters(params)
	}
	if rt := n.ChildByFieldName("return_type"); !rt.IsZero() {
		fn.ReturnType = strings.TrimSpace(strings.TrimPrefix(rt.Text(), ":"))
	}
	if body := n.ChildByFieldName("body"); !body.IsZero() {
		fn.Calls = t.collectCalls(body)
	}
	return fn
}

func (t *TypeScript) parseClassField(filePath string, n cst.Node) *model.ParsedProperty {
	name := ""
	if nameNode := n.ChildByFieldName("name"); !nameNode.IsZero() {
		name = nameNode.Text()
	}
	vis := model.VisibilityPublic
	switch {
	case hasDirectChildText(n, "private"):
		vis = model.VisibilityPrivate
	case hasDirectChildText(n, "protected"):
		vis = model.VisibilityProtected
	}
	typ := ""
	if ta := findChildByKind(n, "type_annotation"); !ta.IsZero() {
		typ = strings.TrimSpace(strings.TrimPrefix(ta.Text(), ":"))
	}
	initializer := ""
	if v := n.ChildByFieldName("value"); !v.IsZero() {
		initializer = v.Text()
	}
	return &model.ParsedProperty{
		Name: name, Type: typ, Visibility: vis, Initializer: initializer,
		Location: nodeLocation(filePath, n),
	}
}

// parseInterface covers ordinary interface members plus the synthetic
// call/construct/index signature members spec §4.2 documents
// (represented with the literal names "[[call]]", "[[construct]]",
// "[[index]]" since those signatures have no identifier of their own).
func (t *TypeScript) parseInterface(filePath string, n cst.Node) *model.ParsedClass {
	name := ""
	if nameNode := n.ChildByFieldName("name"); !nameNode.IsZero() {
		name = nameNode.Text()
	}
	cls := &model.ParsedClass{
		Name:     name,
		Kind:     model.ClassKindInterface,
		Location: nodeLocation(filePath, n),
	}
	if tp := findChildByKind(n, "type_parameters"); !tp.IsZero() {
		cls.TypeParameters = t.parseTypeParameters(tp)
	}
	if ext := findChildByKind(n, "extends_type_clause"); !ext.IsZero() {
		for _, iface := range ext.NamedChildren() {
			cls.Interfaces = append(cls.Interfaces, iface.Text())
		}
	}
	body := findChildByKind(n, "interface_body")
	if body.IsZero() {
		body = findChildByKind(n, "object_type")
	}
	if body.IsZero() {
		return cls
	}
	for _, member := range body.Children() {
		switch member.Kind() {
		case "property_signature":
			nameNode := member.ChildByFieldName("name")
			typ := ""
			if ta := findChildByKind(member, "type_annotation"); !ta.IsZero() {
				typ = strings.TrimSpace(strings.TrimPrefix(ta.Text(), ":"))
			}
			cls.Properties = append(cls.Properties, &model.ParsedProperty{
				Name: nameNode.Text(), Type: typ, Location: nodeLocation(filePath, member),
			})
		case "method_signature":
			fn := &model.ParsedFunction{Location: nodeLocation(filePath, member)}
			if nameNode := member.ChildByFieldName("name"); !nameNode.IsZero() {
				fn.Name = nameNode.Text()
			}
			if params := member.ChildByFieldName("parameters"); !params.IsZero() {
				fn.Parameters = t.parseParameters(params)
			}
			if rt := member.ChildByFieldName("return_type"); !rt.IsZero() {
				fn.ReturnType = strings.TrimSpace(strings.TrimPrefix(rt.Text(), ":"))
			}
			cls.Functions = append(cls.Functions, fn)
		case "call_signature":
			fn := &model.ParsedFunction{Name: "[[call]]", Location: nodeLocation(filePath, member)}
			if params := member.ChildByFieldName("parameters"); !params.IsZero() {
				fn.Parameters = t.parseParameters(params)
			}
			cls.Functions = append(cls.Functions, fn)
		case "construct_signature":
			fn := &model.ParsedFunction{Name: "[[construct]]", Location: nodeLocation(filePath, member)}
			if params := member.ChildByFieldName("parameters"); !params.IsZero() {
				fn.Parameters = t.parseParameters(params)
			}
			cls.Functions = append(cls.Functions, fn)
		case "index_signature":
			fn := &model.ParsedFunction{Name: "[[index]]", Location: nodeLocation(filePath, member)}
			cls.Functions = append(cls.Functions, fn)
		}
	}
	return cls
}

func (t *TypeScript) parseEnum(filePath string, n cst.Node) *model.ParsedClass {
	name := ""
	if nameNode := n.ChildByFieldName("name"); !nameNode.IsZero() {
		name = nameNode.Text()
	}
	cls := &model.ParsedClass{Name: name, Kind: model.ClassKindEnum, Location: nodeLocation(filePath, n)}
	if body := findChildByKind(n, "enum_body"); !body.IsZero() {
		for _, member := range body.Children() {
			if member.Kind() == "property_identifier" || member.Kind() == "enum_assignment" {
				memberName := member.Text()
				if id := findChildByKind(member, "property_identifier"); !id.IsZero() {
					memberName = id.Text()
				}
				cls.Properties = append(cls.Properties, &model.ParsedProperty{
					Name: memberName, IsVal: true, Location: nodeLocation(filePath, member),
				})
			}
		}
	}
	return cls
}

// parseTypeAlias covers plain aliases, mapped types
// (`{ [K in keyof T]: ... }`), and conditional types
// (`T extends U ? X : Y`), both structured subrecords the teacher's
// extractor (which has no type-alias handling at all) never produces.
func (t *TypeScript) parseTypeAlias(filePath string, n cst.Node) *model.ParsedTypeAlias {
	name := ""
	if nameNode := n.ChildByFieldName("name"); !nameNode.IsZero() {
		name = nameNode.Text()
	}
	ta := &model.ParsedTypeAlias{Name: name, Location: nodeLocation(filePath, n)}
	if tp := findChildByKind(n, "type_parameters"); !tp.IsZero() {
		ta.TypeParameters = t.parseTypeParameters(tp)
	}
	value := n.ChildByFieldName("value")
	if value.IsZero() {
		return ta
	}
	switch value.Kind() {
	case "mapped_type_clause":
		ta.MappedType = t.parseMappedType(value)
	case "object_type":
		if mapped := findChildByKind(value, "mapped_type_clause"); !mapped.IsZero() {
			ta.MappedType = t.parseMappedType(mapped)
		} else {
			ta.AliasedType = value.Text()
		}
	case "conditional_type":
		ta.ConditionalType = t.parseConditionalType(value)
	default:
		ta.AliasedType = value.Text()
	}
	return ta
}

func (t *TypeScript) parseMappedType(n cst.Node) *model.MappedType {
	mt := &model.MappedType{}
	if id := findChildByKind(n, "type_identifier"); !id.IsZero() {
		mt.KeyName = id.Text()
	}
	constraint := n.ChildByFieldName("constraint")
	if !constraint.IsZero() {
		text := strings.TrimSpace(constraint.Text())
		if rest, ok := strings.CutPrefix(text, "keyof"); ok {
			mt.HasKeyof = true
			text = strings.TrimSpace(rest)
		}
		mt.Constraint = text
	}
	// The value type after the trailing ':' shares no grammar field
	// distinct from the constraint, so find it positionally: the last
	// named child starting after the constraint ends (skips over an
	// optional "as" clause, which sits between the two).
	if !constraint.IsZero() {
		for _, c := range n.NamedChildren() {
			if c.Range().StartByte > constraint.Range().EndByte {
				mt.ValueType = c.Text()
			}
		}
	}
	text := n.Text()
	if strings.Contains(text, "readonly") {
		mt.Modifiers = append(mt.Modifiers, model.TypeAliasModifier{Kind: "readonly"})
	}
	if strings.Contains(text, "?") {
		mt.Modifiers = append(mt.Modifiers, model.TypeAliasModifier{Kind: "optional"})
	}
	if idx := strings.Index(text, " as "); idx >= 0 {
		rest := text[idx+4:]
		if end := strings.IndexAny(rest, "]}"); end >= 0 {
			mt.AsClause = strings.TrimSpace(rest[:end])
		}
	}
	return mt
}

func (t *TypeScript) parseConditionalType(n cst.Node) *model.ConditionalType {
	ct := &model.ConditionalType{}
	if c := n.ChildByFieldName("left"); !c.IsZero() {
		ct.CheckType = c.Text()
	}
	if c := n.ChildByFieldName("right"); !c.IsZero() {
		ct.ExtendsType = c.Text()
	}
	if c := n.ChildByFieldName("consequence"); !c.IsZero() {
		ct.TrueType = c.Text()
	}
	if c := n.ChildByFieldName("alternative"); !c.IsZero() {
		ct.FalseType = c.Text()
	}
	return ct
}

func (t *TypeScript) collectCalls(body cst.Node) []model.ParsedCall {
	var calls []model.ParsedCall
	var walk func(n cst.Node)
	walk = func(n cst.Node) {
		if n.Kind() == "call_expression" {
			calls = append(calls, t.parseCallExpression(n))
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(body)
	return calls
}

func (t *TypeScript) parseCallExpression(n cst.Node) model.ParsedCall {
	call := model.ParsedCall{}
	callee := n.ChildByFieldName("function")
	if callee.IsZero() && len(n.NamedChildren()) > 0 {
		callee = n.NamedChildren()[0]
	}
	switch callee.Kind() {
	case "member_expression":
		if prop := callee.ChildByFieldName("property"); !prop.IsZero() {
			call.Name = prop.Text()
		}
		if obj := callee.ChildByFieldName("object"); !obj.IsZero() {
			call.Receiver = obj.Text()
		}
		call.IsSafeCall = strings.Contains(callee.Text(), "?.")
	default:
		call.Name = callee.Text()
	}
	if args := n.ChildByFieldName("arguments"); !args.IsZero() {
		argNodes := args.NamedChildren()
		call.ArgumentCount = len(argNodes)
		for _, a := range argNodes {
			call.ArgumentTypes = append(call.ArgumentTypes, inferTSArgType(a))
		}
	}
	return call
}

// inferTSArgType is a bottom-up argument-type judgment for TypeScript:
// literals map to their primitive type, and an "as T" assertion chain
// contributes only its outermost type (spec §9's resolved Open Question —
// `x as A as B` yields "B", not "A"). Every other expression kind (new,
// typeof, operators, parentheses, await, identifiers, calls) yields "".
func inferTSArgType(arg cst.Node) string {
	n := arg
	outermostAssertion := ""
	for n.Kind() == "as_expression" {
		if t := n.ChildByFieldName("type"); !t.IsZero() && outermostAssertion == "" {
			outermostAssertion = t.Text()
		}
		if expr := n.ChildByFieldName("expression"); !expr.IsZero() {
			n = expr
		} else {
			break
		}
	}
	if outermostAssertion != "" {
		return outermostAssertion
	}
	switch n.Kind() {
	case "number":
		return "number"
	case "string", "template_string":
		return "string"
	case "true", "false":
		return "boolean"
	case "null":
		return "null"
	case "undefined":
		return "undefined"
	default:
		return ""
	}
}
