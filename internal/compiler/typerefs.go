package compiler

import (
	"fmt"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
	"github.com/icerpc/slicec-go/internal/text"
)

// PatchTypeRefs resolves every unpatched TypeRef in the store: it looks the reference's
// raw name up in the store (following Slice scope-fallback rules), follows any chain of
// type aliases down to a concrete type, and patches the reference with that definition.
// It must run after PatchContainment (resolving an alias reference needs nothing from
// containment itself, but later passes that read Parent assume it's already set) and
// before PatchModes and PatchCommentLinks, both of which read Definition().
func PatchTypeRefs(store *ast.Store, reporter *diagnostics.Reporter) {
	for _, n := range store.AllNodes() {
		switch e := n.(type) {
		case *ast.Class:
			if e.BaseClass != nil {
				resolveTypeRef(store, reporter, e.BaseClass)
			}
			for _, f := range e.Fields {
				resolveTypeRef(store, reporter, f.DataType)
			}
		case *ast.Exception:
			if e.BaseException != nil {
				resolveTypeRef(store, reporter, e.BaseException)
			}
			for _, f := range e.Fields {
				resolveTypeRef(store, reporter, f.DataType)
			}
		case *ast.Struct:
			for _, f := range e.Fields {
				resolveTypeRef(store, reporter, f.DataType)
			}
		case *ast.Interface:
			for _, base := range e.Bases {
				resolveTypeRef(store, reporter, base)
			}
		case *ast.Operation:
			for _, p := range e.Parameters {
				resolveTypeRef(store, reporter, p.DataType)
			}
			for _, p := range e.ReturnType {
				resolveTypeRef(store, reporter, p.DataType)
			}
			if e.Throws == ast.ThrowsSpecific && e.ThrowsSpecific != nil {
				resolveTypeRef(store, reporter, e.ThrowsSpecific)
			}
		case *ast.Enum:
			if e.UnderlyingType != nil {
				resolveTypeRef(store, reporter, e.UnderlyingType)
			}
		case *ast.TypeAlias:
			resolveTypeRef(store, reporter, e.Underlying)
		case *ast.Sequence:
			resolveTypeRef(store, reporter, e.Element)
		case *ast.Dictionary:
			resolveTypeRef(store, reporter, e.Key)
			resolveTypeRef(store, reporter, e.Value)
		}
	}
}

// resolveTypeRef patches a single reference. T is constrained by the call site: a base
// class clause can only ever resolve to *ast.Class, so passing the wrong concrete node
// here is a TypeMismatch diagnostic, not a panic.
func resolveTypeRef[T ast.TypeElement](store *ast.Store, reporter *diagnostics.Reporter, ref *ast.TypeRef[T]) {
	if ref == nil || ref.IsPatched() {
		return
	}

	found, attrs, ok := lookupChasingAliases(store, reporter, ref.Raw, ref.WrittenInScope, ref.Span)
	if !ok {
		// A dummy concrete value keeps the zero-value hole from propagating into every
		// later pass as a nil-pointer panic; the unresolved reference was already
		// reported above.
		var zero T
		ref.SetDefinition(zero)
		return
	}

	target, ok := castTypeElement[T](found)
	if !ok {
		reporter.Report(diagnostics.NewError(
			diagnostics.TypeMismatch,
			fmt.Sprintf("type mismatch: expected %s but found %s", typeElementKindName[T](), found.TypeString()),
			ref.Span,
		))
		var zero T
		ref.SetDefinition(zero)
		return
	}

	ref.AppendAttributes(attrs...)
	ref.SetDefinition(target)
}

// castTypeElement narrows a resolved ast.TypeElement down to the specific type a
// reference site requires.
func castTypeElement[T ast.TypeElement](e ast.TypeElement) (T, bool) {
	v, ok := any(e).(T)
	return v, ok
}

func typeElementKindName[T ast.TypeElement]() string {
	var zero T
	switch any(zero).(type) {
	case *ast.Class:
		return ast.KindClass.String()
	case *ast.Exception:
		return ast.KindException.String()
	case *ast.Interface:
		return ast.KindInterface.String()
	case *ast.Primitive:
		return ast.KindPrimitive.String()
	}
	return "type"
}

// lookupChasingAliases resolves identifier in scope, following a chain of type aliases to
// their concrete underlying type. It reports SelfReferentialTypeAliasNeedsConcrete if the
// chain cycles back on itself, and accumulates the attributes written on every alias link
// traversed along the way, since those attributes apply to every reference that resolves
// through the alias just as if they were written at the reference site directly.
func lookupChasingAliases(
	store *ast.Store,
	reporter *diagnostics.Reporter,
	identifier, scope string,
	span text.Span,
) (ast.TypeElement, []ast.Attribute, bool) {
	node, found := lookupTypeElement(store, identifier, scope)
	if !found {
		reporter.Report(diagnostics.NewError(
			diagnostics.CodeSyntax,
			fmt.Sprintf("no type or entity named %q exists in this scope", identifier),
			span,
		))
		return nil, nil, false
	}
	checkDeprecated(reporter, node, span)

	alias, isAlias := node.(*ast.TypeAlias)
	if !isAlias {
		return node.(ast.TypeElement), nil, true
	}

	return chaseAliasChain(store, reporter, alias)
}

func chaseAliasChain(store *ast.Store, reporter *diagnostics.Reporter, first *ast.TypeAlias) (ast.TypeElement, []ast.Attribute, bool) {
	var attrs []ast.Attribute
	chain := []*ast.TypeAlias{first}
	current := first

	for {
		attrs = append(attrs, current.Attributes()...)
		underlying := current.Underlying

		if underlying.IsPatched() {
			def := underlying.Definition()
			if def == nil {
				return nil, nil, false
			}
			attrs = append(attrs, underlying.Attributes()...)
			return def, attrs, true
		}

		node, found := lookupTypeElement(store, underlying.Raw, underlying.WrittenInScope)
		if !found {
			reporter.Report(diagnostics.NewError(
				diagnostics.CodeSyntax,
				fmt.Sprintf("no type or entity named %q exists in this scope", underlying.Raw),
				underlying.Span,
			))
			return nil, nil, false
		}

		next, isAlias := node.(*ast.TypeAlias)
		if !isAlias {
			return node.(ast.TypeElement), attrs, true
		}

		for i, seen := range chain {
			if seen == next {
				reportAliasCycle(reporter, chain[i:], next)
				return nil, nil, false
			}
		}
		chain = append(chain, next)
		current = next
	}
}

func reportAliasCycle(reporter *diagnostics.Reporter, cycle []*ast.TypeAlias, closingLink *ast.TypeAlias) {
	d := diagnostics.NewError(
		diagnostics.SelfReferentialTypeAliasNeedsConcrete,
		fmt.Sprintf("self-referential type alias %q needs a concrete type", ast.ScopedIdentifier(closingLink)),
		closingLink.SpanOf(),
	)
	full := append(append([]*ast.TypeAlias(nil), cycle...), closingLink)
	for i := 0; i+1 < len(full); i++ {
		span := full[i].Underlying.Span
		d = d.WithNote(
			fmt.Sprintf("type alias %q uses type alias %q here", full[i].Identifier(), full[i+1].Identifier()),
			&span,
		)
	}
	reporter.Report(d)
}

// checkDeprecated warns when a type reference resolves to an entity carrying the
// `deprecated` attribute. Only entities can be deprecated, so a non-entity TypeElement
// (a primitive, or an anonymous sequence/dictionary) is silently skipped. This runs here,
// at resolution time, rather than in a validator, because type aliases are erased by the
// time validators see the AST: a reference through an alias to a deprecated struct would
// be invisible to any later pass that only looks at the reference's own attributes.
func checkDeprecated(reporter *diagnostics.Reporter, node ast.TypeElement, refSpan text.Span) {
	entity, ok := node.(ast.Entity)
	if !ok {
		return
	}
	attr, ok := ast.FindAttribute(entity.Attributes(), "deprecated")
	if !ok {
		return
	}
	message := fmt.Sprintf("use of deprecated entity %q", entity.Identifier())
	if reason := attr.DeprecationReason(); reason != "" {
		message += ": " + reason
	}
	d := diagnostics.NewLint(diagnostics.LintUseOfDeprecatedEntity, message, refSpan, diagnostics.Scope(ast.ScopedIdentifier(entity)), diagnostics.LevelWarning)
	entitySpan := entity.SpanOf()
	d = d.WithNote(fmt.Sprintf("%q was deprecated here:", entity.Identifier()), &entitySpan)
	reporter.Report(d)
}

// lookupTypeElement resolves identifier against scope, checking the built-in primitives
// first since they're global and unscoped (an "int32" reference never means a
// user-defined entity named int32, and primitives aren't indexed in the store's scoped
// identifier table the way named entities are).
func lookupTypeElement(store *ast.Store, identifier, scope string) (ast.TypeElement, bool) {
	if p, ok := store.FindPrimitive(identifier); ok {
		return p, true
	}
	e, ok := store.FindNodeWithScope(identifier, scope)
	if !ok {
		return nil, false
	}
	te, ok := e.(ast.TypeElement)
	return te, ok
}
