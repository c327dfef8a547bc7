package validate

import (
	"context"
	"testing"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optionalStringTypeRef(scope string) *ast.TypeRef[ast.TypeElement] {
	return ast.NewTypeRef[ast.TypeElement]("string", true, scope, text.Span{}, nil)
}

func tagOf(v int32) *int32 { return &v }

func TestTagUniquenessRuleReportsDuplicateTagsInAStruct(t *testing.T) {
	store := ast.NewStore()
	f1 := ast.NewField("a", "::Demo::S", text.Span{}, nil, nil, optionalStringTypeRef("::Demo::S"), tagOf(1))
	f2 := ast.NewField("b", "::Demo::S", text.Span{}, nil, nil, optionalStringTypeRef("::Demo::S"), tagOf(1))
	s := ast.NewStruct("S", "::Demo", text.Span{}, nil, nil, false, []*ast.Field{f1, f2})
	store.AddEntity(s)
	store.AddEntity(f1)
	store.AddEntity(f2)

	diags, err := TagUniquenessRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, diags, 1)
}

func TestTagUniquenessRuleAllowsDistinctTags(t *testing.T) {
	store := ast.NewStore()
	f1 := ast.NewField("a", "::Demo::S", text.Span{}, nil, nil, optionalStringTypeRef("::Demo::S"), tagOf(1))
	f2 := ast.NewField("b", "::Demo::S", text.Span{}, nil, nil, optionalStringTypeRef("::Demo::S"), tagOf(2))
	s := ast.NewStruct("S", "::Demo", text.Span{}, nil, nil, false, []*ast.Field{f1, f2})
	store.AddEntity(s)
	store.AddEntity(f1)
	store.AddEntity(f2)

	diags, err := TagUniquenessRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestTagUniquenessRuleChecksOperationParametersAndReturnsSeparately(t *testing.T) {
	store := ast.NewStore()
	param := ast.NewParameter("a", "::Demo::I::op", text.Span{}, nil, nil, optionalStringTypeRef("::Demo::I::op"), tagOf(1), false)
	ret := ast.NewParameter("b", "::Demo::I::op", text.Span{}, nil, nil, optionalStringTypeRef("::Demo::I::op"), tagOf(1), false)
	op := ast.NewOperation("op", "::Demo::I", text.Span{}, nil, nil, []*ast.Parameter{param}, []*ast.Parameter{ret}, ast.ThrowsNothing, nil, false)
	store.AddEntity(op)
	store.AddEntity(param)
	store.AddEntity(ret)

	diags, err := TagUniquenessRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	assert.Empty(t, diags, "tag 1 reused once in parameters and once in returns is not a collision")
}

func TestTaggedMemberOptionalRuleReportsNonOptionalTaggedField(t *testing.T) {
	store := ast.NewStore()
	nonOptional := ast.NewTypeRef[ast.TypeElement]("string", false, "::Demo::S", text.Span{}, nil)
	f := ast.NewField("a", "::Demo::S", text.Span{}, nil, nil, nonOptional, tagOf(1))
	s := ast.NewStruct("S", "::Demo", text.Span{}, nil, nil, false, []*ast.Field{f})
	store.AddEntity(s)
	store.AddEntity(f)

	diags, err := TaggedMemberOptionalRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, diags, 1)
}

func TestTaggedMemberOptionalRuleAllowsUntaggedNonOptionalField(t *testing.T) {
	store := ast.NewStore()
	nonOptional := ast.NewTypeRef[ast.TypeElement]("string", false, "::Demo::S", text.Span{}, nil)
	f := ast.NewField("a", "::Demo::S", text.Span{}, nil, nil, nonOptional, nil)
	s := ast.NewStruct("S", "::Demo", text.Span{}, nil, nil, false, []*ast.Field{f})
	store.AddEntity(s)
	store.AddEntity(f)

	diags, err := TaggedMemberOptionalRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestTaggedMemberClassRuleReportsTaggedClassField(t *testing.T) {
	store := ast.NewStore()
	class := ast.NewClass("Box", "::Demo", text.Span{}, nil, nil, nil, nil)
	store.AddEntity(class)

	ref := ast.NewTypeRef[ast.TypeElement]("Box", true, "::Demo::S", text.Span{}, nil)
	ref.SetDefinition(class)
	f := ast.NewField("box", "::Demo::S", text.Span{}, nil, nil, ref, tagOf(1))
	s := ast.NewStruct("S", "::Demo", text.Span{}, nil, nil, false, []*ast.Field{f})
	store.AddEntity(s)
	store.AddEntity(f)

	diags, err := TaggedMemberClassRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "tagged-member-class", TaggedMemberClassRule{}.ID())
}

func TestTaggedMemberClassRuleReportsTaggedStructContainingClass(t *testing.T) {
	store := ast.NewStore()
	class := ast.NewClass("Box", "::Demo", text.Span{}, nil, nil, nil, nil)
	store.AddEntity(class)

	classRef := ast.NewTypeRef[ast.TypeElement]("Box", false, "::Demo::Inner", text.Span{}, nil)
	classRef.SetDefinition(class)
	innerField := ast.NewField("box", "::Demo::Inner", text.Span{}, nil, nil, classRef, nil)
	inner := ast.NewStruct("Inner", "::Demo", text.Span{}, nil, nil, false, []*ast.Field{innerField})
	store.AddEntity(inner)
	store.AddEntity(innerField)

	innerRef := ast.NewTypeRef[ast.TypeElement]("Inner", true, "::Demo::Outer", text.Span{}, nil)
	innerRef.SetDefinition(inner)
	outerField := ast.NewField("inner", "::Demo::Outer", text.Span{}, nil, nil, innerRef, tagOf(1))
	outer := ast.NewStruct("Outer", "::Demo", text.Span{}, nil, nil, false, []*ast.Field{outerField})
	store.AddEntity(outer)
	store.AddEntity(outerField)

	diags, err := TaggedMemberClassRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, diags, 1)
}

func TestTaggedMemberClassRuleAllowsTaggedNonClassField(t *testing.T) {
	store := ast.NewStore()
	f := ast.NewField("a", "::Demo::S", text.Span{}, nil, nil, optionalStringTypeRef("::Demo::S"), tagOf(1))
	s := ast.NewStruct("S", "::Demo", text.Span{}, nil, nil, false, []*ast.Field{f})
	store.AddEntity(s)
	store.AddEntity(f)

	diags, err := TaggedMemberClassRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	assert.Empty(t, diags)
}
