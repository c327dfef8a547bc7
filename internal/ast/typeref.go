package ast

import "github.com/icerpc/slicec-go/internal/text"

// TypeRef is an as-written reference to a type: a field's declared type, a class's base
// clause, an operation's throws clause, and so on. It starts out carrying only the raw
// text of the reference (plus the scope it was written in, needed to resolve it) and is
// filled in with a resolved Definition by the type-reference patcher.
//
// T is constrained to the kind of type the grammar allows at this reference site: most
// references accept any TypeElement, but a class's base-class clause, for instance, can
// only ever resolve to another *Class, so TypeRef[*Class] rules out a mismatched
// resolution at compile time instead of needing a runtime type assertion everywhere the
// reference is read.
type TypeRef[T TypeElement] struct {
	// Raw is the type name exactly as written, e.g. "Foo::Bar" or "int32".
	Raw string
	// IsOptional records a trailing "?" on the reference.
	IsOptional bool
	// WrittenInScope is the fully scoped module the reference appears in, used to
	// resolve Raw relative to its enclosing scope and Slice's outer-scope fallback.
	WrittenInScope string
	// Span covers the reference as written, excluding attributes.
	Span text.Span

	definition T
	patched    bool

	// attrs accumulates the attributes written directly at this reference site, plus
	// (once patched) every attribute inherited by following a type alias chain down
	// to its underlying type.
	attrs []Attribute
}

// NewTypeRef builds an unpatched reference. Definition is resolved later by SetDefinition.
func NewTypeRef[T TypeElement](raw string, optional bool, scope string, span text.Span, attrs []Attribute) *TypeRef[T] {
	return &TypeRef[T]{Raw: raw, IsOptional: optional, WrittenInScope: scope, Span: span, attrs: attrs}
}

// IsPatched reports whether the reference has been resolved.
func (r *TypeRef[T]) IsPatched() bool { return r.patched }

// Definition returns the resolved target. Calling it before patching completes is a
// programmer error in any pass that runs after the type-reference patcher; callers that
// must run earlier should check IsPatched first.
func (r *TypeRef[T]) Definition() T {
	if !r.patched {
		panic("ast: TypeRef read before it was patched")
	}
	return r.definition
}

// SetDefinition resolves the reference. Called exactly once, by the type-reference
// patcher; calling it twice indicates a patcher bug, so it panics rather than silently
// overwriting an existing resolution.
func (r *TypeRef[T]) SetDefinition(def T) {
	if r.patched {
		panic("ast: TypeRef patched twice")
	}
	r.definition = def
	r.patched = true
}

// Attributes returns the attributes attached to this reference, including any inherited
// from a resolved alias chain.
func (r *TypeRef[T]) Attributes() []Attribute { return r.attrs }

// AppendAttributes adds attributes inherited from an alias chain link. Called by the
// type-reference patcher while walking from an alias reference down to its target.
func (r *TypeRef[T]) AppendAttributes(attrs ...Attribute) {
	r.attrs = append(r.attrs, attrs...)
}
