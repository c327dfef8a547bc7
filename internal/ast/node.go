// Package ast defines the in-memory representation of a parsed Slice compilation unit:
// the node kinds, the containment/reference model between them, and the Store that owns
// every node for the lifetime of a compilation.
//
// Nodes are plain Go pointers rather than an index-keyed arena: unlike the unsafe-pointer
// arena this design is modeled on, Go's garbage collector already makes pointer cycles
// (a field pointing at its parent struct, a struct pointing at one of its own fields'
// types) completely safe, and pointer equality already gives the "same node" identity
// check for free. A NodeID is still assigned to every node so the Store can offer stable,
// ordered iteration (primitives first, then every other node in creation order) without
// depending on map iteration order or pointer values.
package ast

import "github.com/icerpc/slicec-go/internal/text"

// NodeID is a stable, Store-assigned identity for a node, used for ordered iteration and
// for memoization keys that must not depend on pointer values.
type NodeID uint32

// NodeKind tags the concrete Go type backing a Node, playing the role of a discriminant
// for the sum type of every element an IDL file can contain.
type NodeKind uint8

const (
	KindModule NodeKind = iota
	KindStruct
	KindClass
	KindException
	KindInterface
	KindOperation
	KindEnum
	KindEnumerator
	KindField
	KindParameter
	KindCustomType
	KindTypeAlias
	KindSequence
	KindDictionary
	KindPrimitive
)

func (k NodeKind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindStruct:
		return "struct"
	case KindClass:
		return "class"
	case KindException:
		return "exception"
	case KindInterface:
		return "interface"
	case KindOperation:
		return "operation"
	case KindEnum:
		return "enum"
	case KindEnumerator:
		return "enumerator"
	case KindField:
		return "field"
	case KindParameter:
		return "parameter"
	case KindCustomType:
		return "custom type"
	case KindTypeAlias:
		return "type alias"
	case KindSequence:
		return "sequence"
	case KindDictionary:
		return "dictionary"
	case KindPrimitive:
		return "primitive"
	default:
		return "unknown"
	}
}

// Node is satisfied by every value the Store hands out: the minimal identity any AST
// element carries, regardless of whether it has a name or can be used as a type.
type Node interface {
	ID() NodeID
	NodeKind() NodeKind
	SpanOf() text.Span
}

// Entity is satisfied by every named, attributable IDL element: modules, the type
// definitions, and the members nested inside them (fields, parameters, enumerators,
// operations). Anonymous types (sequences, dictionaries, primitives) are not entities.
type Entity interface {
	Node
	Identifier() string
	ScopeString() string
	Attributes() []Attribute
	DocComment() *DocComment
	Parent() Entity
	SetParent(Entity)
}

// TypeElement is satisfied by every IDL element usable as the type of a field,
// parameter, or container element: the seven named type definitions plus the two
// anonymous container types and the built-in primitives.
type TypeElement interface {
	Node
	TypeString() string
}

// ModedType is the subset of TypeElement whose mode compatibility is computed once and
// cached on the node itself, rather than recomputed from a fixed table or by descending
// into contained types on every query.
type ModedType interface {
	TypeElement
	Entity
	SupportedModes() *ModeSet
	SetSupportedModes(ModeSet)
}

// base is embedded by every Entity implementation. It supplies the fields and methods
// common to named elements; concrete node types add their own kind-specific fields
// alongside it.
type base struct {
	id         NodeID
	kind       NodeKind
	identifier string
	scope      string
	span       text.Span
	attrs      []Attribute
	doc        *DocComment
	parent     Entity
}

func (b *base) ID() NodeID              { return b.id }
func (b *base) setID(id NodeID)         { b.id = id }
func (b *base) NodeKind() NodeKind      { return b.kind }
func (b *base) SpanOf() text.Span       { return b.span }
func (b *base) Identifier() string      { return b.identifier }
func (b *base) ScopeString() string     { return b.scope }
func (b *base) Attributes() []Attribute { return b.attrs }
func (b *base) DocComment() *DocComment { return b.doc }
func (b *base) Parent() Entity          { return b.parent }
func (b *base) SetParent(e Entity)      { b.parent = e }

// ScopedIdentifier returns the fully scoped name of the entity, e.g. "::Demo::Point".
func ScopedIdentifier(e Entity) string {
	if e.ScopeString() == "::" {
		return "::" + e.Identifier()
	}
	return e.ScopeString() + "::" + e.Identifier()
}
