package validate

import (
	"context"
	"fmt"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
)

// CompactStructRule reports a compact struct with no fields, and a compact struct that
// tags one of its fields: compact structs are encoded positionally with no room for the
// optional-field bitmap tagging relies on.
type CompactStructRule struct{}

func (CompactStructRule) ID() string          { return "compact-struct" }
func (CompactStructRule) Description() string { return "a compact struct must be non-empty and untagged" }

func (CompactStructRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	for _, s := range entitiesOf[*ast.Struct](store) {
		if !s.IsCompact {
			continue
		}
		if len(s.Fields) == 0 {
			out = append(out, diagnostics.NewError(
				diagnostics.CompactStructCannotBeEmpty,
				fmt.Sprintf("compact struct %q must have at least one field", s.Identifier()),
				s.SpanOf(),
			))
			continue
		}
		for _, f := range s.Fields {
			if f.Tag != nil {
				out = append(out, diagnostics.NewError(
					diagnostics.CompactStructCannotContainTagged,
					fmt.Sprintf("field %q of compact struct %q cannot be tagged", f.Identifier(), s.Identifier()),
					f.SpanOf(),
				))
			}
		}
	}

	return out, nil
}
