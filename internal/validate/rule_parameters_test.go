package validate

import (
	"context"
	"testing"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nonOptionalStringTypeRef(scope string) *ast.TypeRef[ast.TypeElement] {
	return ast.NewTypeRef[ast.TypeElement]("string", false, scope, text.Span{}, nil)
}

func TestParameterOrderingRuleReportsRequiredAfterTagged(t *testing.T) {
	store := ast.NewStore()
	tagged := ast.NewParameter("a", "::Demo::I::op", text.Span{}, nil, nil, optionalStringTypeRef("::Demo::I::op"), tagOf(1), false)
	required := ast.NewParameter("b", "::Demo::I::op", text.Span{}, nil, nil, nonOptionalStringTypeRef("::Demo::I::op"), nil, false)
	op := ast.NewOperation("op", "::Demo::I", text.Span{}, nil, nil, []*ast.Parameter{tagged, required}, nil, ast.ThrowsNothing, nil, false)
	store.AddEntity(op)
	store.AddEntity(tagged)
	store.AddEntity(required)

	diags, err := ParameterOrderingRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, diags, 1)
}

func TestParameterOrderingRuleAllowsRequiredBeforeTagged(t *testing.T) {
	store := ast.NewStore()
	required := ast.NewParameter("a", "::Demo::I::op", text.Span{}, nil, nil, nonOptionalStringTypeRef("::Demo::I::op"), nil, false)
	tagged := ast.NewParameter("b", "::Demo::I::op", text.Span{}, nil, nil, optionalStringTypeRef("::Demo::I::op"), tagOf(1), false)
	op := ast.NewOperation("op", "::Demo::I", text.Span{}, nil, nil, []*ast.Parameter{required, tagged}, nil, ast.ThrowsNothing, nil, false)
	store.AddEntity(op)
	store.AddEntity(required)
	store.AddEntity(tagged)

	diags, err := ParameterOrderingRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestParameterOrderingRuleReportsStreamedNotLast(t *testing.T) {
	store := ast.NewStore()
	streamed := ast.NewParameter("a", "::Demo::I::op", text.Span{}, nil, nil, nonOptionalStringTypeRef("::Demo::I::op"), nil, true)
	last := ast.NewParameter("b", "::Demo::I::op", text.Span{}, nil, nil, nonOptionalStringTypeRef("::Demo::I::op"), nil, false)
	op := ast.NewOperation("op", "::Demo::I", text.Span{}, nil, nil, []*ast.Parameter{streamed, last}, nil, ast.ThrowsNothing, nil, false)
	store.AddEntity(op)
	store.AddEntity(streamed)
	store.AddEntity(last)

	diags, err := ParameterOrderingRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, diags, 1)
}

func TestParameterOrderingRuleReportsMultipleStreamedMembers(t *testing.T) {
	store := ast.NewStore()
	s1 := ast.NewParameter("a", "::Demo::I::op", text.Span{}, nil, nil, nonOptionalStringTypeRef("::Demo::I::op"), nil, true)
	s2 := ast.NewParameter("b", "::Demo::I::op", text.Span{}, nil, nil, nonOptionalStringTypeRef("::Demo::I::op"), nil, true)
	op := ast.NewOperation("op", "::Demo::I", text.Span{}, nil, nil, []*ast.Parameter{s1, s2}, nil, ast.ThrowsNothing, nil, false)
	store.AddEntity(op)
	store.AddEntity(s1)
	store.AddEntity(s2)

	diags, err := ParameterOrderingRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	require.NotEmpty(t, diags)
}

func TestReturnTupleSizeRuleReportsSingleNamedReturn(t *testing.T) {
	store := ast.NewStore()
	ret := ast.NewParameter("result", "::Demo::I::op", text.Span{}, nil, nil, nonOptionalStringTypeRef("::Demo::I::op"), nil, false)
	op := ast.NewOperation("op", "::Demo::I", text.Span{}, nil, nil, nil, []*ast.Parameter{ret}, ast.ThrowsNothing, nil, false)
	store.AddEntity(op)
	store.AddEntity(ret)

	diags, err := ReturnTupleSizeRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, diags, 1)
}

func TestReturnTupleSizeRuleAllowsSingleUnnamedReturn(t *testing.T) {
	store := ast.NewStore()
	ret := ast.NewParameter("", "::Demo::I::op", text.Span{}, nil, nil, nonOptionalStringTypeRef("::Demo::I::op"), nil, false)
	op := ast.NewOperation("op", "::Demo::I", text.Span{}, nil, nil, nil, []*ast.Parameter{ret}, ast.ThrowsNothing, nil, false)
	store.AddEntity(op)
	store.AddEntity(ret)

	diags, err := ReturnTupleSizeRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestReturnTupleSizeRuleAllowsTwoElementTuple(t *testing.T) {
	store := ast.NewStore()
	r1 := ast.NewParameter("a", "::Demo::I::op", text.Span{}, nil, nil, nonOptionalStringTypeRef("::Demo::I::op"), nil, false)
	r2 := ast.NewParameter("b", "::Demo::I::op", text.Span{}, nil, nil, nonOptionalStringTypeRef("::Demo::I::op"), nil, false)
	op := ast.NewOperation("op", "::Demo::I", text.Span{}, nil, nil, nil, []*ast.Parameter{r1, r2}, ast.ThrowsNothing, nil, false)
	store.AddEntity(op)
	store.AddEntity(r1)
	store.AddEntity(r2)

	diags, err := ReturnTupleSizeRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	assert.Empty(t, diags)
}
