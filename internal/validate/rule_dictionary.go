package validate

import (
	"context"
	"fmt"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
)

// DictionaryKeyRule reports a dictionary whose key type can't be used as a map key:
// it's optional, or its concrete type isn't one of the legal key kinds (every
// primitive except the two floats and AnyClass, an enum, a custom type, or a compact
// struct built entirely out of legal key types).
type DictionaryKeyRule struct{}

func (DictionaryKeyRule) ID() string          { return "dictionary-key" }
func (DictionaryKeyRule) Description() string { return "a dictionary's key type must be hashable and non-optional" }

func (DictionaryKeyRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	for _, n := range store.AllNodes() {
		d, ok := n.(*ast.Dictionary)
		if !ok {
			continue
		}
		if d.Key == nil || !d.Key.IsPatched() {
			continue
		}
		if d.Key.IsOptional {
			out = append(out, diagnostics.NewError(
				diagnostics.KeyMustBeNonOptional,
				"a dictionary's key type cannot be optional",
				d.Key.Span,
			))
			continue
		}
		if reason, code, ok := illegalKeyReason(d.Key.Definition()); ok {
			out = append(out, diagnostics.NewError(code, reason, d.Key.Span))
		}
	}

	return out, nil
}

// illegalKeyReason reports why def can't be used as a dictionary key, or ok=false if it
// can. The returned code is StructKeyMustBeCompact for a non-compact struct key and
// KeyTypeNotSupported for every other illegal-key-type reason.
func illegalKeyReason(def ast.TypeElement) (string, diagnostics.Code, bool) {
	switch v := def.(type) {
	case *ast.Primitive:
		switch v.Kind() {
		case ast.PrimitiveFloat32, ast.PrimitiveFloat64, ast.PrimitiveAnyClass:
			return fmt.Sprintf("%s cannot be used as a dictionary key type", v.TypeString()), diagnostics.KeyTypeNotSupported, true
		default:
			return "", "", false
		}
	case *ast.Enum, *ast.CustomType:
		return "", "", false
	case *ast.Struct:
		if !v.IsCompact {
			return fmt.Sprintf("struct %q must be compact to be used as a dictionary key type", v.Identifier()), diagnostics.StructKeyMustBeCompact, true
		}
		for _, f := range v.Fields {
			if f.DataType == nil || !f.DataType.IsPatched() {
				continue
			}
			if f.DataType.IsOptional {
				return fmt.Sprintf("field %q of struct %q is optional, so %q cannot be used as a dictionary key type", f.Identifier(), v.Identifier(), v.Identifier()), diagnostics.KeyTypeNotSupported, true
			}
			if reason, _, bad := illegalKeyReason(f.DataType.Definition()); bad {
				return fmt.Sprintf("struct %q contains a field of a type that cannot be a dictionary key: %s", v.Identifier(), reason), diagnostics.KeyTypeNotSupported, true
			}
		}
		return "", "", false
	case *ast.TypeAlias:
		if v.Underlying == nil || !v.Underlying.IsPatched() {
			return "", "", false
		}
		return illegalKeyReason(v.Underlying.Definition())
	default:
		return fmt.Sprintf("%s cannot be used as a dictionary key type", def.TypeString()), diagnostics.KeyTypeNotSupported, true
	}
}
