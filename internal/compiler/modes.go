package compiler

import (
	"fmt"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
	"github.com/icerpc/slicec-go/internal/text"
)

// modePatcher computes and memoizes the Slice-mode compatibility of every composite type
// definition a compilation contains.
type modePatcher struct {
	cs    *CompilationState
	cache map[string]ast.ModeSet
}

// PatchModes computes and caches the mode compatibility of every struct, exception,
// class, interface, enum, custom type, and type alias in the store. It must run after
// PatchTypeRefs (every rule here reads a TypeRef's resolved Definition) and
// PatchContainment (the disallowed-optional suggestion walks a field's Parent to decide
// whether to recommend a tag instead of rejecting the optional outright).
func PatchModes(cs *CompilationState) {
	p := &modePatcher{cs: cs, cache: make(map[string]ast.ModeSet)}
	for _, n := range cs.Store.AllNodes() {
		switch e := n.(type) {
		case *ast.Struct:
			e.SetSupportedModes(p.supportedModesFor(e))
		case *ast.Exception:
			e.SetSupportedModes(p.supportedModesFor(e))
		case *ast.Class:
			e.SetSupportedModes(p.supportedModesFor(e))
		case *ast.Interface:
			e.SetSupportedModes(p.supportedModesFor(e))
		case *ast.Enum:
			e.SetSupportedModes(p.supportedModesFor(e))
		case *ast.CustomType:
			e.SetSupportedModes(p.supportedModesFor(e))
		case *ast.TypeAlias:
			e.SetSupportedModes(p.supportedModesFor(e))
		}
	}
}

// supportedModesFor computes (or returns the cached) mode support for one composite
// definition. A dummy entry is inserted into the cache before the type-specific rule
// runs so that a cyclic definition (structs and exceptions can't legally be cyclic, but
// classes can) terminates instead of recursing forever; a cycle still yields a bogus
// result for the cyclic case, but that's acceptable since a validator separately reports
// the cycle itself as an error.
func (p *modePatcher) supportedModesFor(e ast.ModedType) ast.ModeSet {
	key := ast.ScopedIdentifier(e)
	if cached, ok := p.cache[key]; ok {
		return cached
	}

	file := p.cs.FileOf(e.SpanOf().File)
	fileMode := file.Mode

	var supported ast.ModeSet
	if fileMode == ast.ModeSlice1 {
		supported = ast.Both()
	} else {
		supported = ast.NewModeSet(false, true)
	}

	p.cache[key] = ast.Dummy()

	var reason string
	switch v := e.(type) {
	case *ast.Struct:
		reason = p.computeStruct(v, &supported, fileMode)
	case *ast.Exception:
		reason = p.computeException(v, &supported, fileMode)
	case *ast.Class:
		reason = p.computeClass(v, &supported, fileMode)
	case *ast.Interface:
		p.computeInterface(v, fileMode)
	case *ast.Enum:
		reason = p.computeEnum(v, &supported, fileMode)
	case *ast.TypeAlias:
		reason = p.computeTypeAlias(v, &supported, fileMode)
	case *ast.CustomType:
		// Custom types are supported by every mode; their wire representation is left
		// entirely to the mapped language.
	}

	if !supported.Supports(fileMode) {
		d := diagnostics.NewError(
			diagnostics.NotSupportedInCompilationMode,
			fmt.Sprintf("%s %q is not supported by the %s mode", e.NodeKind(), e.Identifier(), fileMode),
			e.SpanOf(),
		)
		if reason != "" {
			d = d.WithNote(reason, nil)
		}
		if note, span, ok := p.fileModeMismatchNote(file); ok {
			d = d.WithNote(note, span)
		}
		p.cs.Reporter.Report(d)

		// Replace the result with a dummy that supports every mode so that nothing
		// using this type cascades into its own spurious "not supported" error.
		supported = ast.Dummy()
	}

	p.cache[key] = supported
	return supported
}

func (p *modePatcher) computeStruct(s *ast.Struct, supported *ast.ModeSet, fileMode ast.Mode) string {
	for _, f := range s.Fields {
		fieldModes := modesForRef(p, f.DataType, fileMode, f.Tag != nil, f)
		*supported = supported.Intersect(fieldModes)
	}

	if !s.IsCompact {
		supported.Disable(ast.ModeSlice1)
		if fileMode == ast.ModeSlice1 {
			return "structs must be 'compact' to be supported by the Slice1 mode"
		}
	}
	return ""
}

func (p *modePatcher) computeException(e *ast.Exception, supported *ast.ModeSet, fileMode ast.Mode) string {
	for _, f := range allExceptionFields(e) {
		*supported = supported.Intersect(modesForRef(p, f.DataType, fileMode, f.Tag != nil, f))
	}

	if e.BaseException != nil {
		supported.Disable(ast.ModeSlice2)
		if fileMode != ast.ModeSlice1 {
			return "exception inheritance is only supported by the Slice1 mode"
		}
	}
	return ""
}

func (p *modePatcher) computeClass(c *ast.Class, supported *ast.ModeSet, fileMode ast.Mode) string {
	for _, f := range allClassFields(c) {
		*supported = supported.Intersect(modesForRef(p, f.DataType, fileMode, f.Tag != nil, f))
	}

	// Classes are only supported by the Slice1 mode, regardless of their fields.
	supported.Disable(ast.ModeSlice2)
	if fileMode != ast.ModeSlice1 {
		return "classes are only supported by the Slice1 mode"
	}
	return ""
}

func (p *modePatcher) computeInterface(i *ast.Interface, fileMode ast.Mode) {
	// Interfaces carry no restriction of their own beyond their file's mode; but every
	// operation they declare (including inherited ones) must itself support that mode.
	for _, op := range allOperations(i) {
		for _, member := range operationMembers(op) {
			modesForRef(p, member.DataType, fileMode, member.Tag != nil, member)

			if member.IsStreamed && fileMode == ast.ModeSlice1 {
				p.cs.Reporter.Report(diagnostics.NewError(
					diagnostics.StreamedParametersNotSupported,
					"streamed parameters are not supported by the Slice1 mode",
					member.SpanOf(),
				))
			}
		}

		switch op.Throws {
		case ast.ThrowsSpecific:
			if op.ThrowsSpecific != nil && op.ThrowsSpecific.IsPatched() {
				target := op.ThrowsSpecific.Definition()
				if target != nil {
					modes := p.supportedModesFor(target)
					if !modes.Supports(fileMode) {
						d := diagnostics.NewError(
							diagnostics.UnsupportedType,
							fmt.Sprintf("%s is not supported by the %s mode", refTypeString[*ast.Exception](op.ThrowsSpecific), fileMode),
							op.ThrowsSpecific.Span,
						)
						if note, span, ok := p.fileModeMismatchNote(p.cs.FileOf(op.ThrowsSpecific.Span.File)); ok {
							d = d.WithNote(note, span)
						}
						p.cs.Reporter.Report(d)
					}
				}
			}
		case ast.ThrowsAnyException:
			if fileMode != ast.ModeSlice1 {
				p.cs.Reporter.Report(diagnostics.NewError(
					diagnostics.AnyExceptionNotSupported,
					"any exception is only supported by the Slice1 mode",
					op.SpanOf(),
				))
			}
		}
	}
}

func (p *modePatcher) computeEnum(e *ast.Enum, supported *ast.ModeSet, fileMode ast.Mode) string {
	if e.UnderlyingType != nil {
		*supported = supported.Intersect(modesForRef(p, e.UnderlyingType, fileMode, false, e))

		supported.Disable(ast.ModeSlice1)
		if fileMode == ast.ModeSlice1 {
			return "enums with underlying types are not supported by the Slice1 mode"
		}
		return ""
	}

	if fileMode == ast.ModeSlice2 {
		d := diagnostics.NewError(
			diagnostics.CodeSyntax,
			fmt.Sprintf("enum %q must have an explicit underlying type in the Slice2 mode", e.Identifier()),
			e.SpanOf(),
		)
		d = d.WithNote(fmt.Sprintf("Slice2 enums must have an underlying type, e.g. 'enum %s: uint8'", e.Identifier()), nil)
		p.cs.Reporter.Report(d)
	}
	return ""
}

func (p *modePatcher) computeTypeAlias(t *ast.TypeAlias, supported *ast.ModeSet, fileMode ast.Mode) string {
	*supported = supported.Intersect(modesForRef(p, t.Underlying, fileMode, false, t))
	return ""
}

// fileModeMismatchNote returns the "file is using {mode} mode by default" note emitted
// only when the file carries no explicit mode directive; an explicit `mode = Slice1;`
// declaration already makes the cause obvious without restating it.
func (p *modePatcher) fileModeMismatchNote(file *File) (string, *text.Span, bool) {
	if file.HasExplicitMode {
		return "", nil, false
	}
	return fmt.Sprintf("file is using %s mode by default", ast.DefaultMode), nil, true
}

// modesForRef computes the mode support of a single type reference: the type-specific
// rule for its resolved definition, adjusted for container types (sequence, dictionary)
// and for the reference's own optionality. T is whatever concrete (or interface) type the
// reference site requires; the function only needs T to satisfy TypeElement so every
// TypeRef instantiation in the AST can share one implementation.
func modesForRef[T ast.TypeElement](p *modePatcher, ref *ast.TypeRef[T], fileMode ast.Mode, allowNullableWithSlice1 bool, container ast.Entity) ast.ModeSet {
	def := ast.TypeElement(ref.Definition())
	var diags []diagnostics.Diagnostic
	var supported ast.ModeSet

	switch v := def.(type) {
	case *ast.Struct:
		supported = p.supportedModesFor(v)
	case *ast.Exception:
		supported = p.supportedModesFor(v)
		// Exceptions can't be used as an ordinary data type under Slice1.
		supported.Disable(ast.ModeSlice1)
		if fileMode == ast.ModeSlice1 {
			diags = append(diags, diagnostics.NewError(diagnostics.ExceptionAsDataType, "exceptions cannot be used as a data type", ref.Span))
		}
	case *ast.Class:
		allowNullableWithSlice1 = true
		supported = p.supportedModesFor(v)
	case *ast.Interface:
		allowNullableWithSlice1 = true
		supported = p.supportedModesFor(v)
	case *ast.Enum:
		supported = p.supportedModesFor(v)
	case *ast.CustomType:
		allowNullableWithSlice1 = true
		supported = p.supportedModesFor(v)
	case *ast.TypeAlias:
		// Type-reference resolution erases aliases before anything reaches here; this
		// case only guards against a reference that was never patched past its alias.
		supported = p.supportedModesFor(v)
	case *ast.Sequence:
		// Sequences are supported by any mode that supports their element type.
		supported = modesForRef(p, v.Element, fileMode, false, nil)
	case *ast.Dictionary:
		// Dictionaries are supported by any mode that supports both their key and value.
		keyModes := modesForRef(p, v.Key, fileMode, false, nil)
		valueModes := modesForRef(p, v.Value, fileMode, false, nil)
		supported = keyModes.Intersect(valueModes)
	case *ast.Primitive:
		if v.Kind() == ast.PrimitiveAnyClass {
			allowNullableWithSlice1 = true
		}
		supported = primitiveModes(v.Kind())
	default:
		supported = ast.Both()
	}

	if !allowNullableWithSlice1 && ref.IsOptional {
		supported.Disable(ast.ModeSlice1)
		if fileMode == ast.ModeSlice1 {
			d := diagnostics.NewError(
				diagnostics.OptionalsNotSupported,
				fmt.Sprintf("optional %s is not supported by the Slice1 mode", def.TypeString()),
				ref.Span,
			)
			if note, ok := disallowedOptionalSuggestion(def, container); ok {
				d = d.WithNote(note, nil)
			}
			diags = append(diags, d)
		}
	}

	if supported.Supports(fileMode) {
		return supported
	}

	if len(diags) == 0 {
		d := diagnostics.NewError(
			diagnostics.UnsupportedType,
			fmt.Sprintf("%s is not supported by the %s mode", refTypeString(ref), fileMode),
			ref.Span,
		)
		if note, span, ok := p.fileModeMismatchNote(p.cs.FileOf(ref.Span.File)); ok {
			d = d.WithNote(note, span)
		}
		diags = append(diags, d)
	}
	for _, d := range diags {
		p.cs.Reporter.Report(d)
	}

	// A dummy value here, same as in supportedModesFor, stops one bad reference from
	// cascading into "unsupported type" errors everywhere it's used.
	return ast.Dummy()
}

// refTypeString renders a reference's definition for use in a diagnostic message.
func refTypeString[T ast.TypeElement](ref *ast.TypeRef[T]) string {
	if !ref.IsPatched() {
		return ref.Raw
	}
	return ast.TypeElement(ref.Definition()).TypeString()
}

// disallowedOptionalSuggestion recommends tagging instead of using an optional directly,
// when the optional appears somewhere tagging is actually legal: a field on a class or
// exception, or an operation parameter. A field on a struct gets no suggestion: a struct
// usable under Slice1 is compact, and a compact struct's fields cannot be tagged.
func disallowedOptionalSuggestion(def ast.TypeElement, container ast.Entity) (string, bool) {
	if container == nil {
		return "", false
	}

	var identifier string
	switch c := container.(type) {
	case *ast.Field:
		switch c.Parent().(type) {
		case *ast.Class, *ast.Exception:
			identifier = c.Identifier()
		default:
			return "", false
		}
	case *ast.Parameter:
		identifier = c.Identifier()
	default:
		return "", false
	}

	return fmt.Sprintf("consider using a tag, e.g. 'tag(n) %s: %s'", identifier, def.TypeString()), true
}

// primitiveModes is the static mode-support table for built-in primitives. AnyClass is
// Slice1-only since Slice2 has no class type for it to stand in for; every other
// primitive has an encoding in both modes.
func primitiveModes(kind ast.PrimitiveKind) ast.ModeSet {
	if kind == ast.PrimitiveAnyClass {
		return ast.NewModeSet(true, false)
	}
	return ast.Both()
}

func allExceptionFields(e *ast.Exception) []*ast.Field {
	var fields []*ast.Field
	if e.BaseException != nil && e.BaseException.IsPatched() {
		if base := e.BaseException.Definition(); base != nil {
			fields = append(fields, allExceptionFields(base)...)
		}
	}
	return append(fields, e.Fields...)
}

func allClassFields(c *ast.Class) []*ast.Field {
	var fields []*ast.Field
	if c.BaseClass != nil && c.BaseClass.IsPatched() {
		if base := c.BaseClass.Definition(); base != nil {
			fields = append(fields, allClassFields(base)...)
		}
	}
	return append(fields, c.Fields...)
}

func allOperations(i *ast.Interface) []*ast.Operation {
	ops := append([]*ast.Operation(nil), i.Operations...)
	for _, base := range i.Bases {
		if base.IsPatched() {
			if def := base.Definition(); def != nil {
				ops = append(ops, allOperations(def)...)
			}
		}
	}
	return ops
}

// operationMembers returns every parameter and return member of an operation, the unit
// that mode-compatibility checks operate over.
func operationMembers(op *ast.Operation) []*ast.Parameter {
	members := make([]*ast.Parameter, 0, len(op.Parameters)+len(op.ReturnType))
	members = append(members, op.Parameters...)
	members = append(members, op.ReturnType...)
	return members
}
