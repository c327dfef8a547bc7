package ast

import "github.com/icerpc/slicec-go/internal/text"

// This file gives callers outside the package (the parser, and every test that needs a
// fixture AST) a way to build entities: base's fields are unexported, so a literal like
// ast.Struct{} can never be embedded with a real identifier/scope/span from another
// package. These constructors follow the same NewX(...) shape already used by
// NewAttribute, NewTypeRef, and NewStore elsewhere in this package.

func newBase(kind NodeKind, identifier, scope string, span text.Span, attrs []Attribute, doc *DocComment) base {
	return base{kind: kind, identifier: identifier, scope: scope, span: span, attrs: attrs, doc: doc}
}

func NewModule(identifier, scope string, span text.Span, attrs []Attribute, doc *DocComment, contents []Entity) *Module {
	return &Module{base: newBase(KindModule, identifier, scope, span, attrs, doc), Contents: contents}
}

// SetFileScoped marks a module as using the brace-less "module Foo;" form.
func (m *Module) SetFileScoped(v bool) { m.IsFileScoped = v }

func NewStruct(identifier, scope string, span text.Span, attrs []Attribute, doc *DocComment, isCompact bool, fields []*Field) *Struct {
	return &Struct{base: newBase(KindStruct, identifier, scope, span, attrs, doc), IsCompact: isCompact, Fields: fields}
}

func NewClass(identifier, scope string, span text.Span, attrs []Attribute, doc *DocComment, baseClass *TypeRef[*Class], fields []*Field) *Class {
	return &Class{base: newBase(KindClass, identifier, scope, span, attrs, doc), BaseClass: baseClass, Fields: fields}
}

// SetCompactID attaches an explicit Slice1 compact id to a class after construction. Left
// unset (nil), a class has no compact id.
func (c *Class) SetCompactID(id *int32) { c.CompactID = id }

func NewException(identifier, scope string, span text.Span, attrs []Attribute, doc *DocComment, baseException *TypeRef[*Exception], fields []*Field) *Exception {
	return &Exception{base: newBase(KindException, identifier, scope, span, attrs, doc), BaseException: baseException, Fields: fields}
}

func NewInterface(identifier, scope string, span text.Span, attrs []Attribute, doc *DocComment, bases []*TypeRef[*Interface], operations []*Operation) *Interface {
	return &Interface{base: newBase(KindInterface, identifier, scope, span, attrs, doc), Bases: bases, Operations: operations}
}

func NewOperation(identifier, scope string, span text.Span, attrs []Attribute, doc *DocComment, parameters, returnType []*Parameter, throws ThrowsKind, throwsSpecific *TypeRef[*Exception], isIdempotent bool) *Operation {
	return &Operation{
		base:           newBase(KindOperation, identifier, scope, span, attrs, doc),
		Parameters:     parameters,
		ReturnType:     returnType,
		Throws:         throws,
		ThrowsSpecific: throwsSpecific,
		IsIdempotent:   isIdempotent,
	}
}

func NewEnum(identifier, scope string, span text.Span, attrs []Attribute, doc *DocComment, isUnchecked bool, underlyingType *TypeRef[*Primitive], enumerators []*Enumerator) *Enum {
	return &Enum{
		base:           newBase(KindEnum, identifier, scope, span, attrs, doc),
		IsUnchecked:    isUnchecked,
		UnderlyingType: underlyingType,
		Enumerators:    enumerators,
	}
}

func NewEnumerator(identifier, scope string, span text.Span, attrs []Attribute, doc *DocComment, value int64, hasExplicitValue bool) *Enumerator {
	return &Enumerator{base: newBase(KindEnumerator, identifier, scope, span, attrs, doc), Value: value, HasExplicitValue: hasExplicitValue}
}

func NewField(identifier, scope string, span text.Span, attrs []Attribute, doc *DocComment, dataType *TypeRef[TypeElement], tag *int32) *Field {
	return &Field{base: newBase(KindField, identifier, scope, span, attrs, doc), DataType: dataType, Tag: tag}
}

func NewParameter(identifier, scope string, span text.Span, attrs []Attribute, doc *DocComment, dataType *TypeRef[TypeElement], tag *int32, isStreamed bool) *Parameter {
	return &Parameter{base: newBase(KindParameter, identifier, scope, span, attrs, doc), DataType: dataType, Tag: tag, IsStreamed: isStreamed}
}

func NewCustomType(identifier, scope string, span text.Span, attrs []Attribute, doc *DocComment) *CustomType {
	return &CustomType{base: newBase(KindCustomType, identifier, scope, span, attrs, doc)}
}

func NewTypeAlias(identifier, scope string, span text.Span, attrs []Attribute, doc *DocComment, underlying *TypeRef[TypeElement]) *TypeAlias {
	return &TypeAlias{base: newBase(KindTypeAlias, identifier, scope, span, attrs, doc), Underlying: underlying}
}

func NewSequence(span text.Span, element *TypeRef[TypeElement]) *Sequence {
	return &Sequence{span: span, Element: element}
}

func NewDictionary(span text.Span, key, value *TypeRef[TypeElement]) *Dictionary {
	return &Dictionary{span: span, Key: key, Value: value}
}
