package resolve

import (
	"strings"

	"github.com/yourtionguo/codegraf/internal/model"
)

var enumStaticMethods = map[string]bool{"values": true, "valueOf": true, "entries": true}

// ResolveFile runs call resolution over every function body in one file
// (top-level and member), returning one ResolvedCall per call that binds
// to a known symbol. Unresolved calls are silently dropped, not recorded
// with a placeholder target — the orchestrator counts them separately
// via the before/after call count (spec §6's unresolvedCalls statistic).
func ResolveFile(ctx *Context, prefix string) []model.ResolvedCall {
	var out []model.ResolvedCall
	for _, fn := range ctx.File.TopLevelFunctions {
		fromFqn := prefix + "." + fn.Name
		if prefix == "" {
			fromFqn = fn.Name
		}
		out = append(out, resolveCalls(ctx, fn.Calls, fromFqn, "")...)
	}
	for _, cls := range ctx.File.Classes {
		out = append(out, resolveClassCalls(ctx, cls, prefix)...)
	}
	return out
}

func resolveClassCalls(ctx *Context, cls *model.ParsedClass, prefix string) []model.ResolvedCall {
	fqn := joinDot(prefix, cls.Name)
	var out []model.ResolvedCall
	for _, fn := range cls.Functions {
		fromFqn := joinDot(fqn, fn.Name)
		out = append(out, resolveCalls(ctx, fn.Calls, fromFqn, fqn)...)
	}
	for _, nested := range cls.NestedClasses {
		out = append(out, resolveClassCalls(ctx, nested, fqn)...)
	}
	if cls.CompanionObject != nil {
		out = append(out, resolveClassCalls(ctx, cls.CompanionObject, fqn)...)
	}
	return out
}

func joinDot(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func resolveCalls(ctx *Context, calls []model.ParsedCall, fromFqn, enclosingTypeFqn string) []model.ResolvedCall {
	var out []model.ResolvedCall
	for _, call := range calls {
		if toFqn, ok := resolveOne(ctx, call, enclosingTypeFqn); ok {
			out = append(out, model.ResolvedCall{FromFqn: fromFqn, ToFqn: toFqn, Location: call.Location})
		}
	}
	return out
}

// resolveOne implements spec §4.4's resolution order: constructor
// detection, enum static methods, then qualified or unqualified
// resolution depending on whether the call carries a receiver.
func resolveOne(ctx *Context, call model.ParsedCall, enclosingTypeFqn string) (string, bool) {
	if call.Receiver != "" {
		if toFqn, ok := resolveQualified(ctx, call); ok {
			return toFqn, true
		}
		return "", false
	}

	if isUpper(call.Name) {
		if sym := lookupConstructible(ctx, call.Name, enclosingTypeFqn); sym != nil {
			return sym.Fqn + ".<init>", true
		}
	}

	return resolveUnqualified(ctx, call, enclosingTypeFqn)
}

func isUpper(name string) bool {
	return len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z'
}

func lookupConstructible(ctx *Context, name, enclosingTypeFqn string) *model.Symbol {
	if fqn, ok := ctx.ExplicitImports[name]; ok {
		if sym, ok := ctx.Table.ByFqn(fqn); ok && sym.IsConstructible() {
			return sym
		}
	}
	for _, prefix := range ctx.WildcardImports {
		if sym, ok := ctx.Table.ByFqn(prefix + "." + name); ok && sym.IsConstructible() {
			return sym
		}
	}
	if ctx.File.PackageName != "" {
		if sym, ok := ctx.Table.ByFqn(ctx.File.PackageName + "." + name); ok && sym.IsConstructible() {
			return sym
		}
	}
	candidates := ctx.Table.ByName(name)
	var found *model.Symbol
	count := 0
	for _, c := range candidates {
		if c.IsConstructible() {
			found = c
			count++
		}
	}
	if count == 1 {
		return found
	}
	return nil
}

// resolveQualified implements spec §4.4's qualified-call order: a direct
// fqn match on "receiver.name", then resolving the receiver's leading
// simple name to a type — checking first whether that type is an enum and
// this is one of its synthetic static methods, then scoring overloads
// among its declared members (including its companion object) the same
// way hierarchyWalk does — then a nested-qualifier walk that strips
// trailing segments off a multi-part receiver looking for the first
// prefix that resolves.
func resolveQualified(ctx *Context, call model.ParsedCall) (string, bool) {
	direct := call.Receiver + "." + call.Name
	if sym, ok := ctx.Table.ByFqn(direct); ok {
		return sym.Fqn, true
	}

	leading := strings.SplitN(call.Receiver, ".", 2)[0]
	if typeFqn, ok := resolveReceiverType(ctx, leading); ok {
		if recvSym, ok := ctx.Table.ByFqn(typeFqn); ok && recvSym.Kind == model.SymbolKindEnum && enumStaticMethods[call.Name] {
			return recvSym.Fqn + "." + call.Name, true
		}
		if sym := membersOf(ctx, typeFqn, call); sym != nil {
			return sym.Fqn, true
		}
		if sym := membersOf(ctx, typeFqn+".Companion", call); sym != nil {
			return sym.Fqn, true
		}
	}

	segments := strings.Split(call.Receiver, ".")
	for end := len(segments) - 1; end > 0; end-- {
		candidatePrefix := strings.Join(segments[:end], ".")
		if sym, ok := ctx.Table.ByFqn(candidatePrefix + "." + call.Name); ok {
			return sym.Fqn, true
		}
	}

	return "", false
}

// membersOf gathers the functions declared directly on declFqn sharing
// this call's name and picks the best-scoring overload, mirroring
// hierarchyWalk's per-level lookup.
func membersOf(ctx *Context, declFqn string, call model.ParsedCall) *model.Symbol {
	var members []*model.Symbol
	for _, s := range ctx.Table.ByName(call.Name) {
		if s.DeclaringTypeFqn == declFqn {
			members = append(members, s)
		}
	}
	return bestOverload(ctx, members, call)
}

// resolveReceiverType resolves a bare receiver identifier to the fqn of
// its declared type, using the same import/package precedence as
// unqualified name resolution (a receiver is itself an unqualified name
// from the point of view of what declares its type).
func resolveReceiverType(ctx *Context, name string) (string, bool) {
	if fqn, ok := ctx.ExplicitImports[name]; ok {
		if _, ok := ctx.Table.ByFqn(fqn); ok {
			return fqn, true
		}
	}
	if ctx.File.PackageName != "" {
		if _, ok := ctx.Table.ByFqn(ctx.File.PackageName + "." + name); ok {
			return ctx.File.PackageName + "." + name, true
		}
	}
	for _, prefix := range ctx.WildcardImports {
		if _, ok := ctx.Table.ByFqn(prefix + "." + name); ok {
			return prefix + "." + name, true
		}
	}
	candidates := ctx.Table.ByName(name)
	if len(candidates) == 1 {
		return candidates[0].Fqn, true
	}
	return "", false
}

// resolveUnqualified implements spec §4.4's unqualified-call order:
// explicit imports, the enclosing-type hierarchy (breadth-first, closer
// ancestor wins), same-package top-level functions, wildcard imports
// in declaration order, a unique byName match, then a stdlib fallback
// that leaves the call unresolved rather than guessing.
func resolveUnqualified(ctx *Context, call model.ParsedCall, enclosingTypeFqn string) (string, bool) {
	if fqn, ok := ctx.ExplicitImports[call.Name]; ok {
		if sym, ok := ctx.Table.ByFqn(fqn); ok {
			return sym.Fqn, true
		}
	}

	if enclosingTypeFqn != "" {
		if sym := hierarchyWalk(ctx, enclosingTypeFqn, call); sym != nil {
			return sym.Fqn, true
		}
	}

	if ctx.File.PackageName != "" {
		var topLevel []*model.Symbol
		for _, s := range ctx.Table.ByPackage(ctx.File.PackageName) {
			if s.Kind == model.SymbolKindFunction && s.DeclaringTypeFqn == "" {
				topLevel = append(topLevel, s)
			}
		}
		if sym := bestOverload(ctx, topLevel, call); sym != nil {
			return sym.Fqn, true
		}
	}

	for _, prefix := range ctx.WildcardImports {
		if sym, ok := ctx.Table.ByFqn(prefix + "." + call.Name); ok {
			return sym.Fqn, true
		}
	}

	if fns := ctx.Table.FunctionsByName(call.Name); len(fns) == 1 {
		return fns[0].Fqn, true
	}

	return "", false
}

// hierarchyWalk does a breadth-first search up the enclosing type's
// supertype graph, stopping at the first level where a member with this
// call's name exists (closer ancestor wins per spec §4.4 step 5).
func hierarchyWalk(ctx *Context, startFqn string, call model.ParsedCall) *model.Symbol {
	visited := map[string]bool{startFqn: true}
	queue := []string{startFqn}
	for len(queue) > 0 {
		level := queue
		queue = nil
		for _, fqn := range level {
			var members []*model.Symbol
			for _, s := range ctx.Table.ByName(call.Name) {
				if s.DeclaringTypeFqn == fqn {
					members = append(members, s)
				}
			}
			if sym := bestOverload(ctx, members, call); sym != nil {
				return sym
			}
			for _, super := range ctx.Table.Supertypes(fqn) {
				if !visited[super] {
					visited[super] = true
					queue = append(queue, super)
				}
			}
		}
	}
	return nil
}

func bestOverload(ctx *Context, candidates []*model.Symbol, call model.ParsedCall) *model.Symbol {
	var filtered []*model.Symbol
	for _, c := range candidates {
		if c.Name == call.Name {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return SelectOverload(filtered, call.ArgumentTypes, ctx.IsTypeScript)
}
