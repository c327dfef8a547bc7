package compiler

import (
	"testing"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
	"github.com/icerpc/slicec-go/internal/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(store *ast.Store, file string, mode ast.Mode, explicit bool) *CompilationState {
	return NewCompilationState(store, map[string]*File{
		file: {Name: file, Mode: mode, HasExplicitMode: explicit},
	})
}

func spanIn(file string) text.Span {
	return text.Span{File: file}
}

func TestPatchModesCompactStructSupportsBothModes(t *testing.T) {
	store := ast.NewStore()
	field := ast.NewField("x", "::Demo::Point", spanIn("a.ice"), nil, nil, ast.NewTypeRef[ast.TypeElement]("int32", false, "::Demo", spanIn("a.ice"), nil), nil)
	s := ast.NewStruct("Point", "::Demo", spanIn("a.ice"), nil, nil, true, []*ast.Field{field})
	store.AddEntity(s)
	store.AddEntity(field)

	cs := newTestState(store, "a.ice", ast.ModeSlice1, true)
	PatchContainment(cs.Store)
	PatchTypeRefs(cs.Store, cs.Reporter)
	PatchModes(cs)

	require.NotNil(t, s.SupportedModes())
	assert.True(t, s.SupportedModes().Supports(ast.ModeSlice1))
	assert.True(t, s.SupportedModes().Supports(ast.ModeSlice2))
	assert.Empty(t, cs.Reporter.All())
}

func TestPatchModesNonCompactStructRejectedUnderSlice1(t *testing.T) {
	store := ast.NewStore()
	s := ast.NewStruct("Point", "::Demo", spanIn("a.ice"), nil, nil, false, nil)
	store.AddEntity(s)

	cs := newTestState(store, "a.ice", ast.ModeSlice1, true)
	PatchModes(cs)

	diags := cs.Reporter.All()
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.NotSupportedInCompilationMode, diags[0].Code)
	require.NotEmpty(t, diags[0].Notes)
	assert.Contains(t, diags[0].Notes[0].Message, "compact")
	// No "file is using ... by default" note since the mode was explicit.
	assert.Len(t, diags[0].Notes, 1)

	// The cached result is the dummy (all-modes) value so nothing referencing this
	// struct cascades into its own spurious error.
	assert.True(t, s.SupportedModes().Supports(ast.ModeSlice1))
}

func TestPatchModesNonCompactStructNotesDefaultModeWhenImplicit(t *testing.T) {
	store := ast.NewStore()
	s := ast.NewStruct("Point", "::Demo", spanIn("a.ice"), nil, nil, false, nil)
	store.AddEntity(s)

	cs := newTestState(store, "a.ice", ast.ModeSlice1, false)
	PatchModes(cs)

	diags := cs.Reporter.All()
	require.Len(t, diags, 1)
	require.Len(t, diags[0].Notes, 2)
	assert.Contains(t, diags[0].Notes[1].Message, "by default")
}

func TestPatchModesExceptionInheritanceRejectedUnderSlice2(t *testing.T) {
	store := ast.NewStore()

	base := ast.NewException("Base", "::Demo", spanIn("a.ice"), nil, nil, nil, nil)
	store.AddEntity(base)

	baseRef := ast.NewTypeRef[*ast.Exception]("Base", false, "::Demo", spanIn("a.ice"), nil)
	derived := ast.NewException("Derived", "::Demo", spanIn("a.ice"), nil, nil, baseRef, nil)
	store.AddEntity(derived)

	cs := newTestState(store, "a.ice", ast.ModeSlice2, true)
	PatchContainment(cs.Store)
	PatchTypeRefs(cs.Store, cs.Reporter)
	PatchModes(cs)

	diags := cs.Reporter.All()
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.NotSupportedInCompilationMode, diags[0].Code)
	assert.Contains(t, diags[0].Notes[0].Message, "Slice1 mode")
}

func TestPatchModesClassAlwaysRejectedUnderSlice2(t *testing.T) {
	store := ast.NewStore()
	c := ast.NewClass("Box", "::Demo", spanIn("a.ice"), nil, nil, nil, nil)
	store.AddEntity(c)

	cs := newTestState(store, "a.ice", ast.ModeSlice2, true)
	PatchModes(cs)

	diags := cs.Reporter.All()
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Notes[0].Message, "classes are only supported by the Slice1 mode")
}

func TestPatchModesEnumWithUnderlyingTypeRejectedUnderSlice1(t *testing.T) {
	store := ast.NewStore()
	underlying := ast.NewTypeRef[*ast.Primitive]("uint8", false, "::Demo", spanIn("a.ice"), nil)
	e := ast.NewEnum("Color", "::Demo", spanIn("a.ice"), nil, nil, false, underlying, nil)
	store.AddEntity(e)

	cs := newTestState(store, "a.ice", ast.ModeSlice1, true)
	PatchContainment(cs.Store)
	PatchTypeRefs(cs.Store, cs.Reporter)
	PatchModes(cs)

	diags := cs.Reporter.All()
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.NotSupportedInCompilationMode, diags[0].Code)
	assert.Contains(t, diags[0].Notes[0].Message, "underlying types")
}

func TestPatchModesEnumWithoutUnderlyingTypeRequiresExplicitUnderSlice2(t *testing.T) {
	store := ast.NewStore()
	e := ast.NewEnum("Color", "::Demo", spanIn("a.ice"), nil, nil, false, nil, nil)
	store.AddEntity(e)

	cs := newTestState(store, "a.ice", ast.ModeSlice2, true)
	PatchModes(cs)

	diags := cs.Reporter.All()
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.CodeSyntax, diags[0].Code)
}

func TestPatchModesDisallowsOptionalUnderSlice1AndSuggestsTagForClassField(t *testing.T) {
	store := ast.NewStore()

	fieldRef := ast.NewTypeRef[ast.TypeElement]("int32", true, "::Demo", spanIn("a.ice"), nil)
	field := ast.NewField("v", "::Demo::Box", spanIn("a.ice"), nil, nil, fieldRef, nil)
	c := ast.NewClass("Box", "::Demo", spanIn("a.ice"), nil, nil, nil, []*ast.Field{field})
	store.AddEntity(c)
	store.AddEntity(field)

	cs := newTestState(store, "a.ice", ast.ModeSlice1, true)
	PatchContainment(cs.Store)
	PatchTypeRefs(cs.Store, cs.Reporter)
	PatchModes(cs)

	diags := cs.Reporter.All()
	var optionalDiag *diagnostics.Diagnostic
	for i := range diags {
		if diags[i].Code == diagnostics.OptionalsNotSupported {
			optionalDiag = &diags[i]
		}
	}
	require.NotNil(t, optionalDiag, "expected an OptionalsNotSupported diagnostic")
	require.NotEmpty(t, optionalDiag.Notes)
	assert.Contains(t, optionalDiag.Notes[0].Message, "consider using a tag")
}

func TestPatchModesDisallowsOptionalWithNoSuggestionForPlainStructField(t *testing.T) {
	store := ast.NewStore()

	fieldRef := ast.NewTypeRef[ast.TypeElement]("int32", true, "::Demo", spanIn("a.ice"), nil)
	field := ast.NewField("v", "::Demo::Point", spanIn("a.ice"), nil, nil, fieldRef, nil)
	s := ast.NewStruct("Point", "::Demo", spanIn("a.ice"), nil, nil, true, []*ast.Field{field})
	store.AddEntity(s)
	store.AddEntity(field)

	cs := newTestState(store, "a.ice", ast.ModeSlice1, true)
	PatchContainment(cs.Store)
	PatchTypeRefs(cs.Store, cs.Reporter)
	PatchModes(cs)

	diags := cs.Reporter.All()
	var optionalDiag *diagnostics.Diagnostic
	for i := range diags {
		if diags[i].Code == diagnostics.OptionalsNotSupported {
			optionalDiag = &diags[i]
		}
	}
	require.NotNil(t, optionalDiag)
	assert.Empty(t, optionalDiag.Notes, "a plain struct field has no tag to suggest")
}

func TestPatchModesAllowsOptionalClassReferenceUnderSlice1(t *testing.T) {
	store := ast.NewStore()

	target := ast.NewClass("Box", "::Demo", spanIn("a.ice"), nil, nil, nil, nil)
	store.AddEntity(target)

	fieldRef := ast.NewTypeRef[ast.TypeElement]("Box", true, "::Demo", spanIn("a.ice"), nil)
	field := ast.NewField("v", "::Demo::Holder", spanIn("a.ice"), nil, nil, fieldRef, nil)
	s := ast.NewStruct("Holder", "::Demo", spanIn("a.ice"), nil, nil, true, []*ast.Field{field})
	store.AddEntity(s)
	store.AddEntity(field)

	cs := newTestState(store, "a.ice", ast.ModeSlice1, true)
	PatchContainment(cs.Store)
	PatchTypeRefs(cs.Store, cs.Reporter)
	PatchModes(cs)

	for _, d := range cs.Reporter.All() {
		assert.NotEqual(t, diagnostics.OptionalsNotSupported, d.Code, "optional classes are exempt under Slice1")
	}
}

func TestPatchModesAllowsTaggedOptionalStructFieldUnderSlice1(t *testing.T) {
	store := ast.NewStore()

	tag := int32(1)
	fieldRef := ast.NewTypeRef[ast.TypeElement]("int32", true, "::Demo", spanIn("a.ice"), nil)
	field := ast.NewField("a", "::Demo::S", spanIn("a.ice"), nil, nil, fieldRef, &tag)
	s := ast.NewStruct("S", "::Demo", spanIn("a.ice"), nil, nil, true, []*ast.Field{field})
	store.AddEntity(s)
	store.AddEntity(field)

	cs := newTestState(store, "a.ice", ast.ModeSlice1, true)
	PatchContainment(cs.Store)
	PatchTypeRefs(cs.Store, cs.Reporter)
	PatchModes(cs)

	for _, d := range cs.Reporter.All() {
		assert.NotEqual(t, diagnostics.OptionalsNotSupported, d.Code, "a tagged optional struct field is exempt under Slice1")
	}
}

func TestPatchModesAllowsTaggedOptionalExceptionFieldUnderSlice1(t *testing.T) {
	store := ast.NewStore()

	tag := int32(1)
	fieldRef := ast.NewTypeRef[ast.TypeElement]("int32", true, "::Demo", spanIn("a.ice"), nil)
	field := ast.NewField("a", "::Demo::Failure", spanIn("a.ice"), nil, nil, fieldRef, &tag)
	e := ast.NewException("Failure", "::Demo", spanIn("a.ice"), nil, nil, nil, []*ast.Field{field})
	store.AddEntity(e)
	store.AddEntity(field)

	cs := newTestState(store, "a.ice", ast.ModeSlice1, true)
	PatchContainment(cs.Store)
	PatchTypeRefs(cs.Store, cs.Reporter)
	PatchModes(cs)

	for _, d := range cs.Reporter.All() {
		assert.NotEqual(t, diagnostics.OptionalsNotSupported, d.Code, "a tagged optional exception field is exempt under Slice1")
	}
}

func TestPatchModesAllowsTaggedOptionalClassFieldUnderSlice1(t *testing.T) {
	store := ast.NewStore()

	tag := int32(1)
	fieldRef := ast.NewTypeRef[ast.TypeElement]("int32", true, "::Demo", spanIn("a.ice"), nil)
	field := ast.NewField("a", "::Demo::Box", spanIn("a.ice"), nil, nil, fieldRef, &tag)
	c := ast.NewClass("Box", "::Demo", spanIn("a.ice"), nil, nil, nil, []*ast.Field{field})
	store.AddEntity(c)
	store.AddEntity(field)

	cs := newTestState(store, "a.ice", ast.ModeSlice1, true)
	PatchContainment(cs.Store)
	PatchTypeRefs(cs.Store, cs.Reporter)
	PatchModes(cs)

	for _, d := range cs.Reporter.All() {
		assert.NotEqual(t, diagnostics.OptionalsNotSupported, d.Code, "a tagged optional class field is exempt under Slice1")
	}
}

func TestPatchModesAnyClassIsSlice1Only(t *testing.T) {
	store := ast.NewStore()

	fieldRef := ast.NewTypeRef[ast.TypeElement]("AnyClass", false, "::Demo", spanIn("a.ice"), nil)
	field := ast.NewField("v", "::Demo::Holder", spanIn("a.ice"), nil, nil, fieldRef, nil)
	s := ast.NewStruct("Holder", "::Demo", spanIn("a.ice"), nil, nil, true, []*ast.Field{field})
	store.AddEntity(s)
	store.AddEntity(field)

	cs := newTestState(store, "a.ice", ast.ModeSlice2, true)
	PatchContainment(cs.Store)
	PatchTypeRefs(cs.Store, cs.Reporter)
	PatchModes(cs)

	diags := cs.Reporter.All()
	require.NotEmpty(t, diags)
	found := false
	for _, d := range diags {
		if d.Code == diagnostics.UnsupportedType {
			found = true
		}
	}
	assert.True(t, found, "AnyClass should be rejected under Slice2")
}

func TestPatchModesExceptionAsDataTypeRejectedUnderSlice1(t *testing.T) {
	store := ast.NewStore()

	exc := ast.NewException("Failure", "::Demo", spanIn("a.ice"), nil, nil, nil, nil)
	store.AddEntity(exc)

	fieldRef := ast.NewTypeRef[ast.TypeElement]("Failure", false, "::Demo", spanIn("a.ice"), nil)
	field := ast.NewField("v", "::Demo::Holder", spanIn("a.ice"), nil, nil, fieldRef, nil)
	s := ast.NewStruct("Holder", "::Demo", spanIn("a.ice"), nil, nil, true, []*ast.Field{field})
	store.AddEntity(s)
	store.AddEntity(field)

	cs := newTestState(store, "a.ice", ast.ModeSlice1, true)
	PatchContainment(cs.Store)
	PatchTypeRefs(cs.Store, cs.Reporter)
	PatchModes(cs)

	diags := cs.Reporter.All()
	require.NotEmpty(t, diags)
	found := false
	for _, d := range diags {
		if d.Code == diagnostics.ExceptionAsDataType {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPatchModesInterfaceReportsStreamedParameterUnderSlice1(t *testing.T) {
	store := ast.NewStore()

	paramRef := ast.NewTypeRef[ast.TypeElement]("int32", false, "::Demo", spanIn("a.ice"), nil)
	param := ast.NewParameter("data", "::Demo::API::ping", spanIn("a.ice"), nil, nil, paramRef, nil, true)
	op := ast.NewOperation("ping", "::Demo::API", spanIn("a.ice"), nil, nil, []*ast.Parameter{param}, nil, ast.ThrowsNothing, nil, false)
	iface := ast.NewInterface("API", "::Demo", spanIn("a.ice"), nil, nil, nil, []*ast.Operation{op})
	store.AddEntity(iface)
	store.AddEntity(op)
	store.AddEntity(param)

	cs := newTestState(store, "a.ice", ast.ModeSlice1, true)
	PatchContainment(cs.Store)
	PatchTypeRefs(cs.Store, cs.Reporter)
	PatchModes(cs)

	diags := cs.Reporter.All()
	found := false
	for _, d := range diags {
		if d.Code == diagnostics.StreamedParametersNotSupported {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPatchModesSequenceModesDeriveFromElement(t *testing.T) {
	store := ast.NewStore()

	elem := ast.NewTypeRef[ast.TypeElement]("AnyClass", false, "::Demo", spanIn("a.ice"), nil)
	seq := ast.NewSequence(spanIn("a.ice"), elem)
	store.AddNode(seq)

	seqRef := ast.NewTypeRef[ast.TypeElement]("", false, "::Demo", spanIn("a.ice"), nil)
	seqRef.SetDefinition(seq)
	field := ast.NewField("items", "::Demo::Holder", spanIn("a.ice"), nil, nil, seqRef, nil)
	s := ast.NewStruct("Holder", "::Demo", spanIn("a.ice"), nil, nil, true, []*ast.Field{field})
	store.AddEntity(s)
	store.AddEntity(field)

	cs := newTestState(store, "a.ice", ast.ModeSlice2, true)
	PatchContainment(cs.Store)
	PatchTypeRefs(cs.Store, cs.Reporter)
	PatchModes(cs)

	diags := cs.Reporter.All()
	found := false
	for _, d := range diags {
		if d.Code == diagnostics.UnsupportedType {
			found = true
		}
	}
	assert.True(t, found, "a sequence of AnyClass should be rejected under Slice2 just like AnyClass itself")
}
