package extract

import (
	"strings"

	"github.com/yourtionguo/codegraf/internal/cst"
	"github.com/yourtionguo/codegraf/internal/ids"
	"github.com/yourtionguo/codegraf/internal/model"
)

// Kotlin is a pure function (cst, filePath) -> ParsedFile for Kotlin
// sources, grounded on the teacher's KotlinParser but generalized to cover
// primary-constructor properties, secondary constructors, companion
// objects, property delegates, object expressions, and type parameters
// with variance/bounds, which the teacher's extractor does not.
type Kotlin struct{}

func NewKotlin() *Kotlin { return &Kotlin{} }

func (k *Kotlin) Language() model.Language { return model.LanguageKotlin }

func (k *Kotlin) Extract(tree cst.Tree, filePath string, content []byte) *model.ParsedFile {
	pf := &model.ParsedFile{
		FilePath: filePath,
		Language: model.LanguageKotlin,
		Content:  content,
		Checksum: ids.Checksum(content),
	}

	root := tree.Root
	for _, child := range root.Children() {
		switch child.Kind() {
		case "package_header":
			pf.PackageName = k.packageName(child)
		case "import_list":
			for _, imp := range child.Children() {
				if imp.Kind() == "import_header" {
					pf.Imports = append(pf.Imports, k.parseImport(filePath, imp))
				}
			}
		case "import_header":
			pf.Imports = append(pf.Imports, k.parseImport(filePath, child))
		case "class_declaration":
			pf.Classes = append(pf.Classes, k.parseClass(filePath, child))
		case "object_declaration":
			pf.Classes = append(pf.Classes, k.parseObject(filePath, child))
		case "function_declaration":
			pf.TopLevelFunctions = append(pf.TopLevelFunctions, k.parseFunction(filePath, child))
		case "property_declaration":
			pf.TopLevelProperties = append(pf.TopLevelProperties, k.parseProperty(filePath, child))
		case "type_alias":
			pf.TypeAliases = append(pf.TypeAliases, k.parseTypeAlias(filePath, child))
		}
	}

	if pf.PackageName == "" {
		pf.PackageName = inferDottedPackageFromPath(filePath, []string{
			"src/main/kotlin/", "src/test/kotlin/", "src/main/java/", "src/test/java/",
		})
	}

	return pf
}

func (k *Kotlin) packageName(header cst.Node) string {
	if id := findChildByKind(header, "identifier"); !id.IsZero() {
		return id.Text()
	}
	return ""
}

func (k *Kotlin) parseImport(filePath string, header cst.Node) model.ParsedImport {
	loc := nodeLocation(filePath, header)
	var path string
	isWildcard := false
	if id := findChildByKind(header, "identifier"); !id.IsZero() {
		path = id.Text()
	}
	for _, c := range header.Children() {
		if c.Kind() == "wildcard_import" || c.Text() == "*" {
			isWildcard = true
		}
	}
	alias := ""
	if a := header.ChildByFieldName("alias"); !a.IsZero() {
		alias = a.Text()
	}
	return model.ParsedImport{Path: path, Alias: alias, IsWildcard: isWildcard, Location: loc}
}

func modifiersText(n cst.Node) string {
	if m := findChildByKind(n, "modifiers"); !m.IsZero() {
		return m.Text()
	}
	return ""
}

func (k *Kotlin) classKind(n cst.Node, mods string) model.ClassKind {
	switch {
	case strings.Contains(n.Text()[:min(20, len(n.Text()))], "interface") || strings.Contains(mods, "interface"):
		return model.ClassKindInterface
	case strings.Contains(mods, "annotation"):
		return model.ClassKindAnnotation
	case findChildByKind(n, "enum_class_body").Kind() != "" && !findChildByKind(n, "enum_class_body").IsZero():
		return model.ClassKindEnum
	default:
		return model.ClassKindClass
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (k *Kotlin) visibilityFromModifiers(mods string) model.Visibility {
	switch {
	case strings.Contains(mods, "private"):
		return model.VisibilityPrivate
	case strings.Contains(mods, "protected"):
		return model.VisibilityProtected
	case strings.Contains(mods, "internal"):
		return model.VisibilityInternal
	default:
		return model.VisibilityPublic
	}
}

func (k *Kotlin) parseClass(filePath string, n cst.Node) *model.ParsedClass {
	mods := modifiersText(n)
	nameNode := n.ChildByFieldName("name")
	if nameNode.IsZero() {
		nameNode = findChildByKind(n, "type_identifier")
	}
	name := nameNode.Text()
	if name == "" {
		name = "<anonymous>"
	}

	cls := &model.ParsedClass{
		Name:       name,
		Kind:       k.classKind(n, mods),
		Visibility: k.visibilityFromModifiers(mods),
		IsAbstract: strings.Contains(mods, "abstract"),
		IsData:     strings.Contains(mods, "data"),
		IsSealed:   strings.Contains(mods, "sealed"),
		IsInner:    strings.Contains(mods, "inner"),
		Location:   nodeLocation(filePath, n),
	}

	if tp := findChildByKind(n, "type_parameters"); !tp.IsZero() {
		cls.TypeParameters = k.parseTypeParameters(tp)
	}

	if ds := findChildByKind(n, "delegation_specifiers"); !ds.IsZero() {
		super, ifaces := k.parseDelegationSpecifiers(ds)
		cls.SuperClass = super
		cls.Interfaces = ifaces
	}

	if pc := findChildByKind(n, "primary_constructor"); !pc.IsZero() {
		cls.Properties = append(cls.Properties, k.primaryConstructorProperties(filePath, pc)...)
	}

	body := findChildByKind(n, "class_body")
	if body.IsZero() {
		body = findChildByKind(n, "enum_class_body")
	}
	if !body.IsZero() {
		k.parseClassBody(filePath, body, cls)
	}

	return cls
}

func (k *Kotlin) parseObject(filePath string, n cst.Node) *model.ParsedClass {
	nameNode := n.ChildByFieldName("name")
	if nameNode.IsZero() {
		nameNode = findChildByKind(n, "type_identifier")
	}
	name := nameNode.Text()
	if name == "" {
		name = "<anonymous>"
	}
	cls := &model.ParsedClass{
		Name:     name,
		Kind:     model.ClassKindObject,
		Location: nodeLocation(filePath, n),
	}
	if ds := findChildByKind(n, "delegation_specifiers"); !ds.IsZero() {
		_, ifaces := k.parseDelegationSpecifiers(ds)
		cls.Interfaces = ifaces
	}
	if body := findChildByKind(n, "class_body"); !body.IsZero() {
		k.parseClassBody(filePath, body, cls)
	}
	return cls
}

// parseDelegationSpecifiers recovers the superclass (first entry invoking
// a constructor, e.g. "Base()") and the remaining interfaces.
func (k *Kotlin) parseDelegationSpecifiers(ds cst.Node) (superClass string, interfaces []string) {
	for _, spec := range ds.Children() {
		if spec.Kind() != "delegation_specifier" && spec.Kind() != "user_type" && spec.Kind() != "constructor_invocation" {
			continue
		}
		typeName := spec.Text()
		if ti := findChildByKind(spec, "type_identifier"); !ti.IsZero() {
			typeName = ti.Text()
		} else if ut := findChildByKind(spec, "user_type"); !ut.IsZero() {
			if ti := findChildByKind(ut, "type_identifier"); !ti.IsZero() {
				typeName = ti.Text()
			}
		}
		// A delegation specifier that includes a call (has parens) is the
		// superclass constructor invocation; everything else is an
		// implemented interface.
		if strings.Contains(spec.Text(), "(") && superClass == "" {
			superClass = typeName
		} else {
			interfaces = append(interfaces, typeName)
		}
	}
	return superClass, interfaces
}

func (k *Kotlin) parseTypeParameters(tp cst.Node) []model.TypeParameter {
	var out []model.TypeParameter
	for _, c := range tp.Children() {
		if c.Kind() != "type_parameter" {
			continue
		}
		param := model.TypeParameter{}
		for _, pc := range c.Children() {
			switch pc.Kind() {
			case "simple_identifier", "type_identifier":
				if param.Name == "" {
					param.Name = pc.Text()
				}
			case "in", "out":
				param.Variance = pc.Kind()
			case "user_type", "type":
				param.Bounds = append(param.Bounds, pc.Text())
			}
		}
		out = append(out, param)
	}
	return out
}

// parseClassBody walks class_body/enum_class_body children, dispatching
// the decorator-cursor-free constructs documented in spec §4.2: nested
// properties, functions, companion objects (by node kind OR by the
// "companion" modifier keyword, per the open question in spec §9),
// secondary constructors, and further nested classes.
func (k *Kotlin) parseClassBody(filePath string, body cst.Node, cls *model.ParsedClass) {
	for _, child := range body.Children() {
		switch child.Kind() {
		case "property_declaration":
			cls.Properties = append(cls.Properties, k.parseProperty(filePath, child))
		case "function_declaration":
			cls.Functions = append(cls.Functions, k.parseFunction(filePath, child))
		case "companion_object":
			cls.CompanionObject = k.parseCompanionBody(filePath, child)
		case "object_declaration":
			mods := modifiersText(child)
			if strings.Contains(mods, "companion") {
				cls.CompanionObject = k.parseCompanionBody(filePath, child)
			} else {
				cls.NestedClasses = append(cls.NestedClasses, k.parseObject(filePath, child))
			}
		case "class_declaration":
			cls.NestedClasses = append(cls.NestedClasses, k.parseClass(filePath, child))
		case "secondary_constructor":
			cls.SecondaryConstructors = append(cls.SecondaryConstructors, k.parseSecondaryConstructor(child))
		case "enum_entry":
			cls.Properties = append(cls.Properties, &model.ParsedProperty{
				Name:     findChildByKind(child, "simple_identifier").Text(),
				IsVal:    true,
				Location: nodeLocation(filePath, child),
			})
		}
	}
}

func (k *Kotlin) parseCompanionBody(filePath string, n cst.Node) *model.ParsedClass {
	name := "Companion"
	if nameNode := findChildByKind(n, "type_identifier"); !nameNode.IsZero() {
		name = nameNode.Text()
	}
	companion := &model.ParsedClass{
		Name:     name,
		Kind:     model.ClassKindObject,
		Location: nodeLocation(filePath, n),
	}
	if body := findChildByKind(n, "class_body"); !body.IsZero() {
		k.parseClassBody(filePath, body, companion)
	}
	return companion
}

func (k *Kotlin) parseSecondaryConstructor(n cst.Node) model.SecondaryConstructor {
	sc := model.SecondaryConstructor{Location: model.Location{}}
	if params := findChildByKind(n, "function_value_parameters"); !params.IsZero() {
		sc.Parameters = k.parseValueParameters(params)
	}
	if delegation := findChildByKind(n, "constructor_delegation_call"); !delegation.IsZero() {
		text := delegation.Text()
		if strings.HasPrefix(text, "this") {
			sc.DelegatesTo = "this"
		} else if strings.HasPrefix(text, "super") {
			sc.DelegatesTo = "super"
		}
		if args := findChildByKind(delegation, "value_arguments"); !args.IsZero() {
			sc.DelegationArgs = len(findChildrenByKind(args, "value_argument"))
		}
	}
	return sc
}

// primaryConstructorProperties turns each val/var class_parameter into a
// ParsedProperty on the enclosing class, per spec §4.2.
func (k *Kotlin) primaryConstructorProperties(filePath string, pc cst.Node) []*model.ParsedProperty {
	var out []*model.ParsedProperty
	for _, param := range pc.Children() {
		if param.Kind() != "class_parameter" {
			continue
		}
		kind := ""
		if strings.HasPrefix(strings.TrimSpace(param.Text()), "val") {
			kind = "val"
		} else if strings.HasPrefix(strings.TrimSpace(param.Text()), "var") {
			kind = "var"
		} else {
			continue // plain constructor parameter, not a property
		}
		name := findChildByKind(param, "simple_identifier").Text()
		typ := ""
		if t := param.ChildByFieldName("type"); !t.IsZero() {
			typ = t.Text()
		}
		out = append(out, &model.ParsedProperty{
			Name:     name,
			Type:     typ,
			IsVal:    kind == "val",
			Location: nodeLocation(filePath, param),
		})
	}
	return out
}

func (k *Kotlin) parseValueParameters(params cst.Node) []model.Parameter {
	var out []model.Parameter
	for _, p := range params.Children() {
		if p.Kind() != "parameter" && p.Kind() != "class_parameter" {
			continue
		}
		name := findChildByKind(p, "simple_identifier").Text()
		typ := ""
		if t := p.ChildByFieldName("type"); !t.IsZero() {
			typ = t.Text()
		}
		hasDefault := !p.ChildByFieldName("default_value").IsZero() || strings.Contains(p.Text(), "=")
		out = append(out, model.Parameter{Name: name, Type: typ, HasDefault: hasDefault})
	}
	return out
}

func (k *Kotlin) parseFunction(filePath string, n cst.Node) *model.ParsedFunction {
	mods := modifiersText(n)
	name := findChildByKind(n, "simple_identifier").Text()

	fn := &model.ParsedFunction{
		Name:       name,
		Visibility: k.visibilityFromModifiers(mods),
		IsAsync:    strings.Contains(mods, "suspend"),
		IsInline:   strings.Contains(mods, "inline"),
		IsInfix:    strings.Contains(mods, "infix"),
		IsOperator: strings.Contains(mods, "operator"),
		IsAbstract: strings.Contains(mods, "abstract"),
		Location:   nodeLocation(filePath, n),
	}

	if tp := findChildByKind(n, "type_parameters"); !tp.IsZero() {
		fn.TypeParameters = k.parseTypeParameters(tp)
	}

	// Extension receiver: `fun Type.name(...)` - the receiver type appears
	// as a child before the function name, recovered here from the raw
	// "fun <receiver>.<name>" text the way the teacher's
	// isExtensionFunction heuristic does, refined to actually capture the
	// receiver type text rather than just a boolean.
	if recv := n.ChildByFieldName("receiver"); !recv.IsZero() {
		fn.ReceiverType = recv.Text()
		fn.IsExtension = true
	} else if headerText := signatureHeader(n.Text()); strings.Contains(headerText, ".") {
		beforeParen := strings.SplitN(headerText, "(", 2)[0]
		if dot := strings.LastIndex(beforeParen, "."); dot > 0 {
			prefix := strings.TrimSpace(beforeParen[:dot])
			if idx := strings.LastIndexAny(prefix, " \t"); idx >= 0 {
				prefix = prefix[idx+1:]
			}
			if prefix != "" && prefix[0] >= 'A' && prefix[0] <= 'Z' {
				fn.ReceiverType = prefix
				fn.IsExtension = true
			}
		}
	}

	if params := findChildByKind(n, "function_value_parameters"); !params.IsZero() {
		fn.Parameters = k.parseValueParameters(params)
	}
	if rt := n.ChildByFieldName("return_type"); !rt.IsZero() {
		fn.ReturnType = rt.Text()
	} else if rt := findChildByKind(n, "user_type"); !rt.IsZero() {
		fn.ReturnType = rt.Text()
	}

	if body := findChildByKind(n, "function_body"); !body.IsZero() {
		fn.Calls = k.collectCalls(body)
	}

	return fn
}

func signatureHeader(text string) string {
	lines := strings.SplitN(text, "\n", 2)
	return lines[0]
}

func (k *Kotlin) parseProperty(filePath string, n cst.Node) *model.ParsedProperty {
	mods := modifiersText(n)
	varDecl := findChildByKind(n, "variable_declaration")
	name := findChildByKind(varDecl, "simple_identifier").Text()
	if name == "" {
		name = findChildByKind(n, "simple_identifier").Text()
	}
	typ := ""
	if t := varDecl.ChildByFieldName("type"); !t.IsZero() {
		typ = t.Text()
	}
	initializer := ""
	if delegate := findChildByKind(n, "property_delegate"); !delegate.IsZero() {
		initializer = delegate.Text()
	} else if expr := n.ChildByFieldName("value"); !expr.IsZero() {
		initializer = expr.Text()
	}
	return &model.ParsedProperty{
		Name:        name,
		Type:        typ,
		Visibility:  k.visibilityFromModifiers(mods),
		IsVal:       strings.HasPrefix(strings.TrimSpace(n.Text()), "val") || strings.Contains(n.Text(), " val "),
		Initializer: initializer,
		Location:    nodeLocation(filePath, n),
	}
}

func (k *Kotlin) parseTypeAlias(filePath string, n cst.Node) *model.ParsedTypeAlias {
	name := findChildByKind(n, "type_identifier").Text()
	aliased := ""
	if t := n.ChildByFieldName("type"); !t.IsZero() {
		aliased = t.Text()
	}
	ta := &model.ParsedTypeAlias{Name: name, AliasedType: aliased, Location: nodeLocation(filePath, n)}
	if tp := findChildByKind(n, "type_parameters"); !tp.IsZero() {
		ta.TypeParameters = k.parseTypeParameters(tp)
	}
	return ta
}

// collectCalls walks a function body collecting every call expression,
// including navigation-qualified and safe-navigation calls, in source
// order (spec §4.2 "call traversal").
func (k *Kotlin) collectCalls(body cst.Node) []model.ParsedCall {
	var calls []model.ParsedCall
	var walk func(n cst.Node)
	walk = func(n cst.Node) {
		switch n.Kind() {
		case "call_expression":
			calls = append(calls, k.parseCallExpression(n))
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(body)
	return calls
}

func (k *Kotlin) parseCallExpression(n cst.Node) model.ParsedCall {
	call := model.ParsedCall{Location: model.Location{}}
	callee := n.ChildByFieldName("reference")
	if callee.IsZero() {
		if c := findChildByKind(n, "navigation_expression"); !c.IsZero() {
			callee = c
		} else {
			callee = n.NamedChildren()[0]
		}
	}

	switch callee.Kind() {
	case "navigation_expression":
		suffix := findChildByKind(callee, "navigation_suffix")
		call.Name = findChildByKind(suffix, "simple_identifier").Text()
		if recv := callee.ChildByFieldName("receiver"); !recv.IsZero() {
			call.Receiver = recv.Text()
		} else if len(callee.NamedChildren()) > 0 {
			call.Receiver = callee.NamedChildren()[0].Text()
		}
		call.IsSafeCall = strings.Contains(callee.Text(), "?.")
	case "simple_identifier":
		call.Name = callee.Text()
	default:
		call.Name = callee.Text()
	}

	if args := findChildByKind(n, "call_suffix"); !args.IsZero() {
		if va := findChildByKind(args, "value_arguments"); !va.IsZero() {
			argNodes := findChildrenByKind(va, "value_argument")
			call.ArgumentCount = len(argNodes)
			for _, a := range argNodes {
				call.ArgumentTypes = append(call.ArgumentTypes, inferKotlinArgType(a))
			}
		}
	}
	return call
}

// inferKotlinArgType is a small best-effort literal-based judgment; unlike
// TypeScript (spec §4.2's documented algorithm), Kotlin argument typing
// here only handles literals explicitly and otherwise yields "" (unknown),
// which the overload scorer treats distinctly from a mismatch (spec §9).
func inferKotlinArgType(arg cst.Node) string {
	expr := arg
	if len(arg.NamedChildren()) > 0 {
		expr = arg.NamedChildren()[0]
	}
	switch expr.Kind() {
	case "integer_literal":
		return "Int"
	case "long_literal":
		return "Long"
	case "real_literal":
		return "Double"
	case "boolean_literal":
		return "Boolean"
	case "string_literal", "line_string_literal":
		return "String"
	case "character_literal":
		return "Char"
	case "null_literal":
		return "Nothing"
	default:
		return ""
	}
}

// inferDottedPackageFromPath infers a dotted package from common source
// roots when no package header is present, the way the teacher's
// inferPackageFromPath does.
func inferDottedPackageFromPath(filePath string, sourceRoots []string) string {
	normalized := strings.ReplaceAll(filePath, "\\", "/")
	for _, root := range sourceRoots {
		idx := strings.Index(normalized, root)
		if idx == -1 {
			continue
		}
		rest := normalized[idx+len(root):]
		lastSlash := strings.LastIndex(rest, "/")
		if lastSlash == -1 {
			return ""
		}
		return strings.ReplaceAll(rest[:lastSlash], "/", ".")
	}
	return ""
}
