package validate

import (
	"context"
	"fmt"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
)

// TypeAliasOfOptionalRule reports a type alias whose underlying reference is itself
// optional. An alias is a name for a type, not for a type-plus-optionality, so the "?"
// belongs at each use site instead.
type TypeAliasOfOptionalRule struct{}

func (TypeAliasOfOptionalRule) ID() string          { return "type-alias-of-optional" }
func (TypeAliasOfOptionalRule) Description() string { return "a type alias cannot alias an optional type" }

func (TypeAliasOfOptionalRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	for _, t := range entitiesOf[*ast.TypeAlias](store) {
		if t.Underlying == nil || !t.Underlying.IsOptional {
			continue
		}
		d := diagnostics.NewError(
			diagnostics.TypeAliasOfOptional,
			fmt.Sprintf("type alias %q cannot alias an optional type", t.Identifier()),
			t.SpanOf(),
		)
		d = d.WithNote("try removing the trailing \"?\" from its definition", spanPtr(t.Underlying.Span))
		d = d.WithNote("instead of aliasing an optional type directly, make it optional where it's used", nil)
		out = append(out, d)
	}

	return out, nil
}
