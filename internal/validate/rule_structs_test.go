package validate

import (
	"context"
	"testing"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactStructRuleReportsEmptyCompactStruct(t *testing.T) {
	store := ast.NewStore()
	s := ast.NewStruct("S", "::Demo", text.Span{}, nil, nil, true, nil)
	store.AddEntity(s)

	diags, err := CompactStructRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, diags, 1)
}

func TestCompactStructRuleReportsTaggedFieldInCompactStruct(t *testing.T) {
	store := ast.NewStore()
	f := ast.NewField("a", "::Demo::S", text.Span{}, nil, nil, optionalStringTypeRef("::Demo::S"), tagOf(1))
	s := ast.NewStruct("S", "::Demo", text.Span{}, nil, nil, true, []*ast.Field{f})
	store.AddEntity(s)
	store.AddEntity(f)

	diags, err := CompactStructRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, diags, 1)
}

func TestCompactStructRuleAllowsNonEmptyUntaggedCompactStruct(t *testing.T) {
	store := ast.NewStore()
	f := ast.NewField("a", "::Demo::S", text.Span{}, nil, nil, nonOptionalStringTypeRef("::Demo::S"), nil)
	s := ast.NewStruct("S", "::Demo", text.Span{}, nil, nil, true, []*ast.Field{f})
	store.AddEntity(s)
	store.AddEntity(f)

	diags, err := CompactStructRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestCompactStructRuleIgnoresNonCompactEmptyStruct(t *testing.T) {
	store := ast.NewStore()
	s := ast.NewStruct("S", "::Demo", text.Span{}, nil, nil, false, nil)
	store.AddEntity(s)

	diags, err := CompactStructRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	assert.Empty(t, diags)
}
