package ast

import (
	"math"

	"github.com/icerpc/slicec-go/internal/text"
)

// Module is a named scope containing other definitions. The same module identifier may
// be reopened across multiple files or multiple times within one file; each reopening
// produces a distinct Module node, and Contents only ever holds what was written inside
// that particular occurrence.
type Module struct {
	base
	Contents     []Entity
	IsFileScoped bool // true for the brace-less "module Foo;" form, which extends to the end of the file
}

func (m *Module) TypeString() string { return "module" }

// Struct is a fixed-size (compact) or general record type.
type Struct struct {
	base
	IsCompact bool
	Fields    []*Field
	modes     *ModeSet
}

func (s *Struct) TypeString() string { return "struct " + s.Identifier() }

// SupportedModes is cached during mode-compatibility computation.
func (s *Struct) SupportedModes() *ModeSet     { return s.modes }
func (s *Struct) SetSupportedModes(m ModeSet)  { s.modes = &m }

// Class is a Slice1-only reference type supporting single inheritance.
type Class struct {
	base
	BaseClass *TypeRef[*Class]
	Fields    []*Field
	CompactID *int32 // nil means the class has no explicit compact id
	modes     *ModeSet
}

func (c *Class) TypeString() string           { return "class " + c.Identifier() }
func (c *Class) SupportedModes() *ModeSet      { return c.modes }
func (c *Class) SetSupportedModes(m ModeSet)   { c.modes = &m }

// Exception is a throwable record type with optional single inheritance.
type Exception struct {
	base
	BaseException *TypeRef[*Exception]
	Fields        []*Field
	modes         *ModeSet
}

func (e *Exception) TypeString() string          { return "exception " + e.Identifier() }
func (e *Exception) SupportedModes() *ModeSet     { return e.modes }
func (e *Exception) SetSupportedModes(m ModeSet)  { e.modes = &m }

// Interface declares a set of operations and may extend other interfaces.
type Interface struct {
	base
	Bases      []*TypeRef[*Interface]
	Operations []*Operation
	modes      *ModeSet
}

func (i *Interface) TypeString() string          { return "interface " + i.Identifier() }
func (i *Interface) SupportedModes() *ModeSet     { return i.modes }
func (i *Interface) SetSupportedModes(m ModeSet)  { i.modes = &m }

// ThrowsKind distinguishes an operation's three possible throws-clause shapes.
type ThrowsKind uint8

const (
	ThrowsNothing ThrowsKind = iota
	ThrowsSpecific
	ThrowsAnyException
)

// Operation is a single remote call declared inside an interface.
type Operation struct {
	base
	Parameters     []*Parameter
	ReturnType     []*Parameter // modeled as unnamed out-parameters; empty means void
	Throws         ThrowsKind
	ThrowsSpecific *TypeRef[*Exception] // valid when Throws == ThrowsSpecific
	IsIdempotent   bool
}

func (o *Operation) TypeString() string { return "operation " + o.Identifier() }

// Enum is a closed (checked) or open (unchecked) set of named integer values.
type Enum struct {
	base
	IsUnchecked  bool
	UnderlyingType *TypeRef[*Primitive] // nil means the default underlying type
	Enumerators  []*Enumerator
	modes        *ModeSet
}

func (e *Enum) TypeString() string          { return "enum " + e.Identifier() }
func (e *Enum) SupportedModes() *ModeSet     { return e.modes }
func (e *Enum) SetSupportedModes(m ModeSet)  { e.modes = &m }

// Enumerator is one named value inside an Enum.
type Enumerator struct {
	base
	Value       int64
	HasExplicitValue bool
}

// Field is a named, typed member of a struct, class, or exception.
type Field struct {
	base
	DataType *TypeRef[TypeElement]
	Tag      *int32 // nil when untagged
}

// Parameter is a named, typed member of an operation's parameter or return list.
type Parameter struct {
	base
	DataType   *TypeRef[TypeElement]
	Tag        *int32
	IsStreamed bool
}

// CustomType is an opaque, user-defined type with no Slice-visible structure. It is
// supported in every mode: its wire representation is left entirely to the mapped
// language, so the mode-compatibility engine never has to look inside it.
type CustomType struct {
	base
	modes *ModeSet
}

func (c *CustomType) TypeString() string         { return "custom type " + c.Identifier() }
func (c *CustomType) SupportedModes() *ModeSet    { return c.modes }
func (c *CustomType) SetSupportedModes(m ModeSet) { c.modes = &m }

// TypeAlias is a named alias for another type reference. Its own mode compatibility,
// and the attributes that apply through it, are inherited entirely from Underlying; its
// cached modes exist mainly so the mode-compatibility engine can memoize it like every
// other composite type, since nothing downstream queries an alias's modes directly (every
// TypeRef resolves past aliases to their concrete underlying type).
type TypeAlias struct {
	base
	Underlying *TypeRef[TypeElement]
	modes      *ModeSet
}

func (t *TypeAlias) TypeString() string         { return "type alias " + t.Identifier() }
func (t *TypeAlias) SupportedModes() *ModeSet    { return t.modes }
func (t *TypeAlias) SetSupportedModes(m ModeSet) { t.modes = &m }

// Sequence is an anonymous ordered collection of one element type.
type Sequence struct {
	id      NodeID
	span    text.Span
	Element *TypeRef[TypeElement]
}

func (s *Sequence) ID() NodeID         { return s.id }
func (s *Sequence) setID(id NodeID)    { s.id = id }
func (s *Sequence) NodeKind() NodeKind { return KindSequence }
func (s *Sequence) SpanOf() text.Span  { return s.span }
func (s *Sequence) TypeString() string { return "sequence" }

// Dictionary is an anonymous mapping from one key type to one value type.
type Dictionary struct {
	id    NodeID
	span  text.Span
	Key   *TypeRef[TypeElement]
	Value *TypeRef[TypeElement]
}

func (d *Dictionary) ID() NodeID         { return d.id }
func (d *Dictionary) setID(id NodeID)    { d.id = id }
func (d *Dictionary) NodeKind() NodeKind { return KindDictionary }
func (d *Dictionary) SpanOf() text.Span  { return d.span }
func (d *Dictionary) TypeString() string { return "dictionary" }

// PrimitiveKind enumerates the built-in scalar types every compilation starts with.
type PrimitiveKind uint8

const (
	PrimitiveBool PrimitiveKind = iota
	PrimitiveInt8
	PrimitiveUInt8
	PrimitiveInt16
	PrimitiveUInt16
	PrimitiveInt32
	PrimitiveUInt32
	PrimitiveVarInt32
	PrimitiveVarUInt32
	PrimitiveInt64
	PrimitiveUInt64
	PrimitiveVarInt62
	PrimitiveVarUInt62
	PrimitiveFloat32
	PrimitiveFloat64
	PrimitiveString
	PrimitiveAnyClass

	primitiveKindCount
)

// primitiveNames gives every PrimitiveKind its identifier as written in source.
var primitiveNames = map[PrimitiveKind]string{
	PrimitiveBool:      "bool",
	PrimitiveInt8:      "int8",
	PrimitiveUInt8:     "uint8",
	PrimitiveInt16:     "int16",
	PrimitiveUInt16:    "uint16",
	PrimitiveInt32:     "int32",
	PrimitiveUInt32:    "uint32",
	PrimitiveVarInt32:  "varint32",
	PrimitiveVarUInt32: "varuint32",
	PrimitiveInt64:     "int64",
	PrimitiveUInt64:    "uint64",
	PrimitiveVarInt62:  "varint62",
	PrimitiveVarUInt62: "varuint62",
	PrimitiveFloat32:   "float32",
	PrimitiveFloat64:   "float64",
	PrimitiveString:    "string",
	PrimitiveAnyClass:  "AnyClass",
}

// IsNumeric reports whether values of this kind participate in numeric-bound checks
// (enumerator values, tag numbers).
func (k PrimitiveKind) IsNumeric() bool {
	switch k {
	case PrimitiveInt8, PrimitiveUInt8, PrimitiveInt16, PrimitiveUInt16, PrimitiveInt32, PrimitiveUInt32,
		PrimitiveVarInt32, PrimitiveVarUInt32, PrimitiveInt64, PrimitiveUInt64,
		PrimitiveVarInt62, PrimitiveVarUInt62, PrimitiveFloat32, PrimitiveFloat64:
		return true
	default:
		return false
	}
}

// IsIntegral reports whether this kind is a whole-number type eligible for use as an
// enum's underlying type. Numeric but non-integral (the two floats) and non-numeric
// kinds (bool, string, AnyClass) are excluded.
func (k PrimitiveKind) IsIntegral() bool {
	switch k {
	case PrimitiveInt8, PrimitiveUInt8, PrimitiveInt16, PrimitiveUInt16, PrimitiveInt32, PrimitiveUInt32,
		PrimitiveVarInt32, PrimitiveVarUInt32, PrimitiveInt64, PrimitiveUInt64,
		PrimitiveVarInt62, PrimitiveVarUInt62:
		return true
	default:
		return false
	}
}

// numericBitWidths gives each integral kind's bit width, taken directly from its own
// name (varint32/varuint32 carry the same bounds as int32/uint32; varint62/varuint62
// carry a 62-bit range, per their name).
var numericBitWidths = map[PrimitiveKind]int{
	PrimitiveInt8:      8,
	PrimitiveUInt8:     8,
	PrimitiveInt16:     16,
	PrimitiveUInt16:    16,
	PrimitiveInt32:     32,
	PrimitiveUInt32:    32,
	PrimitiveVarInt32:  32,
	PrimitiveVarUInt32: 32,
	PrimitiveInt64:     64,
	PrimitiveUInt64:    64,
	PrimitiveVarInt62:  62,
	PrimitiveVarUInt62: 62,
}

// unsignedKinds marks the kinds whose range starts at zero rather than being signed.
var unsignedKinds = map[PrimitiveKind]bool{
	PrimitiveUInt8: true, PrimitiveUInt16: true, PrimitiveUInt32: true, PrimitiveVarUInt32: true,
	PrimitiveUInt64: true, PrimitiveVarUInt62: true,
}

// NumericBounds returns the inclusive [min, max] range of values this kind can hold, for
// use in enumerator-bounds checking. ok is false for a non-integral kind.
// uint64's true upper bound doesn't fit in an int64; since Enumerator.Value is itself an
// int64, math.MaxInt64 is the highest value representable here anyway.
func (k PrimitiveKind) NumericBounds() (min, max int64, ok bool) {
	width, ok := numericBitWidths[k]
	if !ok {
		return 0, 0, false
	}
	if unsignedKinds[k] {
		if width == 64 {
			return 0, math.MaxInt64, true
		}
		return 0, int64(1)<<uint(width) - 1, true
	}
	if width == 64 {
		return math.MinInt64, math.MaxInt64, true
	}
	return -(int64(1) << uint(width-1)), int64(1)<<uint(width-1) - 1, true
}

// Primitive is one of the built-in types, always present in the Store at fixed indices
// regardless of what any particular file declares.
type Primitive struct {
	id   NodeID
	kind PrimitiveKind
}

func (p *Primitive) ID() NodeID            { return p.id }
func (p *Primitive) NodeKind() NodeKind    { return KindPrimitive }
func (p *Primitive) SpanOf() text.Span     { return text.Span{} }
func (p *Primitive) Identifier() string    { return primitiveNames[p.kind] }
func (p *Primitive) Kind() PrimitiveKind   { return p.kind }
func (p *Primitive) TypeString() string    { return primitiveNames[p.kind] }
