package validate

import (
	"context"
	"testing"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
	"github.com/icerpc/slicec-go/internal/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryKeyRuleReportsOptionalKey(t *testing.T) {
	store := ast.NewStore()
	key := ast.NewTypeRef[ast.TypeElement]("string", true, "::Demo", text.Span{}, nil)
	key.SetDefinition(store.Primitive(ast.PrimitiveString))
	value := ast.NewTypeRef[ast.TypeElement]("string", false, "::Demo", text.Span{}, nil)
	value.SetDefinition(store.Primitive(ast.PrimitiveString))
	d := ast.NewDictionary(text.Span{}, key, value)
	store.AddNode(d)

	diags, err := DictionaryKeyRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, diags, 1)
}

func TestDictionaryKeyRuleReportsFloatKey(t *testing.T) {
	store := ast.NewStore()
	key := ast.NewTypeRef[ast.TypeElement]("float64", false, "::Demo", text.Span{}, nil)
	key.SetDefinition(store.Primitive(ast.PrimitiveFloat64))
	value := ast.NewTypeRef[ast.TypeElement]("string", false, "::Demo", text.Span{}, nil)
	value.SetDefinition(store.Primitive(ast.PrimitiveString))
	d := ast.NewDictionary(text.Span{}, key, value)
	store.AddNode(d)

	diags, err := DictionaryKeyRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.KeyTypeNotSupported, diags[0].Code)
}

func TestDictionaryKeyRuleReportsNonCompactStructKey(t *testing.T) {
	store := ast.NewStore()
	s := ast.NewStruct("Key", "::Demo", text.Span{}, nil, nil, false, nil)
	store.AddEntity(s)

	key := ast.NewTypeRef[ast.TypeElement]("Key", false, "::Demo", text.Span{}, nil)
	key.SetDefinition(s)
	value := ast.NewTypeRef[ast.TypeElement]("string", false, "::Demo", text.Span{}, nil)
	value.SetDefinition(store.Primitive(ast.PrimitiveString))
	d := ast.NewDictionary(text.Span{}, key, value)
	store.AddNode(d)

	diags, err := DictionaryKeyRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.StructKeyMustBeCompact, diags[0].Code)
}

func TestDictionaryKeyRuleAllowsCompactStructOfLegalKeyTypes(t *testing.T) {
	store := ast.NewStore()
	innerField := ast.NewField("x", "::Demo::Key", text.Span{}, nil, nil, nonOptionalStringTypeRef("::Demo::Key"), nil)
	innerField.DataType.SetDefinition(store.Primitive(ast.PrimitiveString))
	s := ast.NewStruct("Key", "::Demo", text.Span{}, nil, nil, true, []*ast.Field{innerField})
	store.AddEntity(s)
	store.AddEntity(innerField)

	key := ast.NewTypeRef[ast.TypeElement]("Key", false, "::Demo", text.Span{}, nil)
	key.SetDefinition(s)
	value := ast.NewTypeRef[ast.TypeElement]("string", false, "::Demo", text.Span{}, nil)
	value.SetDefinition(store.Primitive(ast.PrimitiveString))
	d := ast.NewDictionary(text.Span{}, key, value)
	store.AddNode(d)

	diags, err := DictionaryKeyRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestDictionaryKeyRuleAllowsIntegerKey(t *testing.T) {
	store := ast.NewStore()
	key := ast.NewTypeRef[ast.TypeElement]("int32", false, "::Demo", text.Span{}, nil)
	key.SetDefinition(store.Primitive(ast.PrimitiveInt32))
	value := ast.NewTypeRef[ast.TypeElement]("string", false, "::Demo", text.Span{}, nil)
	value.SetDefinition(store.Primitive(ast.PrimitiveString))
	d := ast.NewDictionary(text.Span{}, key, value)
	store.AddNode(d)

	diags, err := DictionaryKeyRule{}.Run(context.Background(), store)
	require.NoError(t, err)
	assert.Empty(t, diags)
}
