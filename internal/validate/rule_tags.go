package validate

import (
	"context"
	"fmt"
	"sort"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
	"github.com/icerpc/slicec-go/internal/text"
)

// taggedMember is the common shape tag-related rules need out of a Field or a
// Parameter: an identifier and span to report against, the tag itself (nil when
// untagged), whether the member's own type is optional, and the resolved type to walk
// when deciding if tagging it is even legal.
type taggedMember struct {
	identifier string
	span       text.Span
	tag        *int32
	isOptional bool
	isStreamed bool
	dataType   ast.TypeElement
}

func fieldsToTagged(fields []*ast.Field) []taggedMember {
	out := make([]taggedMember, len(fields))
	for i, f := range fields {
		out[i] = taggedMember{identifier: f.Identifier(), span: f.SpanOf(), tag: f.Tag, isOptional: f.DataType.IsOptional, dataType: resolvedType(f.DataType)}
	}
	return out
}

func parametersToTagged(params []*ast.Parameter) []taggedMember {
	out := make([]taggedMember, len(params))
	for i, p := range params {
		out[i] = taggedMember{identifier: p.Identifier(), span: p.SpanOf(), tag: p.Tag, isOptional: p.DataType.IsOptional, isStreamed: p.IsStreamed, dataType: resolvedType(p.DataType)}
	}
	return out
}

func resolvedType(ref *ast.TypeRef[ast.TypeElement]) ast.TypeElement {
	if ref == nil || !ref.IsPatched() {
		return nil
	}
	return ref.Definition()
}

// allClassFieldsWithInherited returns a class's own fields plus every field inherited
// from its base-class chain.
func allClassFieldsWithInherited(c *ast.Class) []*ast.Field {
	fields := append([]*ast.Field(nil), c.Fields...)
	if c.BaseClass != nil && c.BaseClass.IsPatched() {
		if base := c.BaseClass.Definition(); base != nil {
			fields = append(fields, allClassFieldsWithInherited(base)...)
		}
	}
	return fields
}

// allExceptionFieldsWithInherited returns an exception's own fields plus every field
// inherited from its base-exception chain.
func allExceptionFieldsWithInherited(e *ast.Exception) []*ast.Field {
	fields := append([]*ast.Field(nil), e.Fields...)
	if e.BaseException != nil && e.BaseException.IsPatched() {
		if base := e.BaseException.Definition(); base != nil {
			fields = append(fields, allExceptionFieldsWithInherited(base)...)
		}
	}
	return fields
}

// TagUniquenessRule reports two tagged members in the same container (a struct's
// fields, a class's or exception's own-plus-inherited fields, or one operation's
// parameter list and, separately, its return list) sharing a tag value.
type TagUniquenessRule struct{}

func (TagUniquenessRule) ID() string          { return "tag-uniqueness" }
func (TagUniquenessRule) Description() string { return "a container's tag values must be unique" }

func (TagUniquenessRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	for _, s := range entitiesOf[*ast.Struct](store) {
		checkTagUniqueness(&out, fieldsToTagged(s.Fields))
	}
	for _, c := range entitiesOf[*ast.Class](store) {
		checkTagUniqueness(&out, fieldsToTagged(allClassFieldsWithInherited(c)))
	}
	for _, e := range entitiesOf[*ast.Exception](store) {
		checkTagUniqueness(&out, fieldsToTagged(allExceptionFieldsWithInherited(e)))
	}
	for _, op := range entitiesOf[*ast.Operation](store) {
		checkTagUniqueness(&out, parametersToTagged(op.Parameters))
		checkTagUniqueness(&out, parametersToTagged(op.ReturnType))
	}

	return out, nil
}

func checkTagUniqueness(out *[]diagnostics.Diagnostic, members []taggedMember) {
	var tagged []taggedMember
	for _, m := range members {
		if m.tag != nil {
			tagged = append(tagged, m)
		}
	}
	sort.Slice(tagged, func(i, j int) bool { return *tagged[i].tag < *tagged[j].tag })

	for i := 1; i < len(tagged); i++ {
		if *tagged[i].tag != *tagged[i-1].tag {
			continue
		}
		d := diagnostics.NewError(
			diagnostics.CannotHaveDuplicateTag,
			fmt.Sprintf("tag %d is already in use", *tagged[i].tag),
			tagged[i].span,
		)
		d = d.WithNote(fmt.Sprintf("%q previously used tag %d here", tagged[i-1].identifier, *tagged[i-1].tag), spanPtr(tagged[i-1].span))
		*out = append(*out, d)
	}
}

// TaggedMemberOptionalRule reports a tagged field or parameter whose type is not
// optional: tagged members may be omitted from the wire, so their mapped type must be
// able to represent absence.
type TaggedMemberOptionalRule struct{}

func (TaggedMemberOptionalRule) ID() string { return "tagged-member-optional" }
func (TaggedMemberOptionalRule) Description() string {
	return "a tagged member must have an optional type"
}

func (TaggedMemberOptionalRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	visit := func(members []taggedMember) {
		for _, m := range members {
			if m.tag != nil && !m.isOptional {
				out = append(out, diagnostics.NewError(
					diagnostics.TaggedMemberMustBeOptional,
					fmt.Sprintf("tagged member %q must have an optional type", m.identifier),
					m.span,
				))
			}
		}
	}

	for _, s := range entitiesOf[*ast.Struct](store) {
		visit(fieldsToTagged(s.Fields))
	}
	for _, c := range entitiesOf[*ast.Class](store) {
		visit(fieldsToTagged(c.Fields))
	}
	for _, e := range entitiesOf[*ast.Exception](store) {
		visit(fieldsToTagged(e.Fields))
	}
	for _, op := range entitiesOf[*ast.Operation](store) {
		visit(parametersToTagged(op.Parameters))
		visit(parametersToTagged(op.ReturnType))
	}

	return out, nil
}

// TaggedMemberClassRule reports a tagged member whose type is, or transitively
// contains, a class: classes are Slice1-only reference types with no tagged-encoding
// defined for them, so they can never be tagged directly or nested inside a tagged
// struct.
type TaggedMemberClassRule struct{}

func (TaggedMemberClassRule) ID() string { return "tagged-member-class" }
func (TaggedMemberClassRule) Description() string {
	return "a tagged member must not use or contain a class"
}

func (TaggedMemberClassRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	visit := func(members []taggedMember) {
		for _, m := range members {
			if m.tag == nil || m.dataType == nil || !usesClasses(m.dataType) {
				continue
			}
			code := diagnostics.CannotTagContainingClass
			msg := fmt.Sprintf("tagged member %q contains a class, which is not supported", m.identifier)
			if _, isClass := m.dataType.(*ast.Class); isClass {
				code = diagnostics.CannotTagClass
				msg = fmt.Sprintf("tagged member %q cannot have a class type", m.identifier)
			}
			out = append(out, diagnostics.NewError(code, msg, m.span))
		}
	}

	for _, s := range entitiesOf[*ast.Struct](store) {
		visit(fieldsToTagged(s.Fields))
	}
	for _, c := range entitiesOf[*ast.Class](store) {
		visit(fieldsToTagged(c.Fields))
	}
	for _, e := range entitiesOf[*ast.Exception](store) {
		visit(fieldsToTagged(e.Fields))
	}
	for _, op := range entitiesOf[*ast.Operation](store) {
		visit(parametersToTagged(op.Parameters))
		visit(parametersToTagged(op.ReturnType))
	}

	return out, nil
}

// usesClasses reports whether def is, or transitively contains (through struct fields,
// sequence elements, or dictionary values), a class or the AnyClass primitive.
func usesClasses(def ast.TypeElement) bool {
	switch v := def.(type) {
	case *ast.Class:
		return true
	case *ast.Struct:
		for _, f := range v.Fields {
			if t := resolvedType(f.DataType); t != nil && usesClasses(t) {
				return true
			}
		}
		return false
	case *ast.Sequence:
		if t := resolvedType(v.Element); t != nil {
			return usesClasses(t)
		}
		return false
	case *ast.Dictionary:
		if t := resolvedType(v.Value); t != nil {
			return usesClasses(t)
		}
		return false
	case *ast.Primitive:
		return v.Kind() == ast.PrimitiveAnyClass
	case *ast.TypeAlias:
		if t := resolvedType(v.Underlying); t != nil {
			return usesClasses(t)
		}
		return false
	default:
		return false
	}
}
