package ast

import "github.com/icerpc/slicec-go/internal/text"

// AttributeKind distinguishes attributes the compiler understands and acts on from
// unrecognized directives that are carried through unexamined, so a validator can still
// be written against an unknown attribute without the parser rejecting it outright.
type AttributeKind uint8

const (
	// AttrDeprecated marks a definition for the "use of deprecated X" diagnostic.
	// Arguments, if present, are folded into the diagnostic's message.
	AttrDeprecated AttributeKind = iota
	// AttrCompress requests payload compression for an operation or interface.
	AttrCompress
	// AttrOneway marks an operation as fire-and-forget: the caller doesn't wait for a
	// response, and the operation may not declare a return type, out-parameters, or
	// exceptions.
	AttrOneway
	// AttrSlicedFormat requests the sliced encoding format for an operation or
	// interface's payload, preserving unknown derived-class/exception slices instead of
	// discarding them.
	AttrSlicedFormat
	// AttrCustom is any directive this compiler doesn't special-case; it is kept
	// verbatim so downstream tooling (and validators written against a specific
	// directive string) can still see it.
	AttrCustom
)

// Attribute is a single `[directive(args...)]` annotation attached to a definition.
// Attributes accumulate across a type alias chain: a reference to an alias carries both
// the attributes written at the reference site and the ones inherited from every alias
// it passes through on the way to the underlying type.
type Attribute struct {
	Kind      AttributeKind
	Directive string
	Arguments []string
	Span      text.Span
}

// IsRepeatable reports whether more than one instance of this attribute may legally
// appear on the same definition. Only `@custom`-style unknown directives are: the
// attributes this compiler understands are each meaningful at most once per definition.
func (a Attribute) IsRepeatable() bool {
	return a.Kind == AttrCustom
}

// DeprecationReason returns the attribute's sole argument as a deprecation message, or
// the empty string if none was supplied.
func (a Attribute) DeprecationReason() string {
	if a.Kind != AttrDeprecated || len(a.Arguments) == 0 {
		return ""
	}
	return a.Arguments[0]
}

// NewAttribute classifies a parsed directive into its AttributeKind.
func NewAttribute(directive string, args []string, span text.Span) Attribute {
	kind := AttrCustom
	switch directive {
	case "deprecated":
		kind = AttrDeprecated
	case "compress":
		kind = AttrCompress
	case "oneway":
		kind = AttrOneway
	case "slicedFormat":
		kind = AttrSlicedFormat
	}
	return Attribute{Kind: kind, Directive: directive, Arguments: args, Span: span}
}

// FindAttribute returns the first attribute with the given directive name, if any.
func FindAttribute(attrs []Attribute, directive string) (Attribute, bool) {
	for _, a := range attrs {
		if a.Directive == directive {
			return a, true
		}
	}
	return Attribute{}, false
}

// HasAttribute reports whether attrs contains a directive by that name.
func HasAttribute(attrs []Attribute, directive string) bool {
	_, ok := FindAttribute(attrs, directive)
	return ok
}
