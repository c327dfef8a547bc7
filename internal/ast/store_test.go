package ast

import (
	"testing"

	"github.com/icerpc/slicec-go/internal/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStruct(store *Store, identifier, scope string) *Struct {
	s := &Struct{base: base{id: NodeID(store.NodeCount()), kind: KindStruct, identifier: identifier, scope: scope}}
	store.AddEntity(s)
	return s
}

func TestNewStoreSeedsPrimitives(t *testing.T) {
	store := NewStore()
	assert.Equal(t, 17, store.NodeCount())
	assert.Equal(t, "string", store.Primitive(PrimitiveString).Identifier())
	assert.Equal(t, "int32", store.Primitive(PrimitiveInt32).Identifier())
	assert.Equal(t, "int8", store.Primitive(PrimitiveInt8).Identifier())
}

func TestAddEntityAndFindNode(t *testing.T) {
	store := NewStore()
	s := newStruct(store, "Point", "::Demo")

	found, ok := store.FindNode("::Demo::Point")
	require.True(t, ok)
	assert.Equal(t, Entity(s), found)
}

func TestFindNodeWithScopeFallsBackToOuterScopes(t *testing.T) {
	store := NewStore()
	newStruct(store, "Point", "::")

	found, ok := store.FindNodeWithScope("Point", "::Demo::Inner")
	require.True(t, ok, "expected outer-scope fallback to find ::Point")
	assert.Equal(t, "Point", found.Identifier())
}

func TestFindNodeWithScopeAbsolute(t *testing.T) {
	store := NewStore()
	newStruct(store, "Point", "::Demo")

	_, ok := store.FindNodeWithScope("::Point", "::Demo")
	assert.False(t, ok, "absolute lookup should not have found ::Point")

	_, ok = store.FindNodeWithScope("::Demo::Point", "::Other")
	assert.True(t, ok, "expected absolute lookup to find ::Demo::Point regardless of scope")
}

func TestFindDuplicates(t *testing.T) {
	store := NewStore()
	newStruct(store, "Point", "::Demo")
	newStruct(store, "Point", "::Demo")
	newStruct(store, "Other", "::Demo")

	dups := store.FindDuplicates()
	require.Len(t, dups, 1)
	entities, ok := dups["::Demo::Point"]
	require.True(t, ok)
	assert.Len(t, entities, 2)
}

func TestScopedIdentifierAtGlobalScope(t *testing.T) {
	e := &Struct{base: base{identifier: "Point", scope: "::"}}
	assert.Equal(t, "::Point", ScopedIdentifier(e))
}

func TestTypeRefPatchingDisciplinePanicsBeforePatch(t *testing.T) {
	ref := NewTypeRef[*Struct]("Point", false, "::Demo", text.Span{}, nil)
	assert.Panics(t, func() { ref.Definition() })
}

func TestTypeRefSetDefinitionTwicePanics(t *testing.T) {
	ref := NewTypeRef[*Struct]("Point", false, "::Demo", text.Span{}, nil)
	target := &Struct{base: base{identifier: "Point"}}
	ref.SetDefinition(target)

	assert.Panics(t, func() { ref.SetDefinition(target) })
}

func TestModeSetIntersect(t *testing.T) {
	both := Both()
	slice1Only := NewModeSet(true, false)

	got := both.Intersect(slice1Only)
	assert.True(t, got.Supports(ModeSlice1))
	assert.False(t, got.Supports(ModeSlice2))
}
