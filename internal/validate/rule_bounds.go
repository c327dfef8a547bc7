package validate

import (
	"context"
	"fmt"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
)

// BoundsRule reports a tag or a Slice1 compact id that falls outside [0, 2^31 - 1]. The
// upper bound is already guaranteed by Tag and CompactID both being int32; only
// negative values need to be checked here.
type BoundsRule struct{}

func (BoundsRule) ID() string          { return "bounds" }
func (BoundsRule) Description() string { return "a tag or compact id must be in [0, 2^31 - 1]" }

func (BoundsRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	for _, f := range entitiesOf[*ast.Field](store) {
		if f.Tag != nil && *f.Tag < 0 {
			out = append(out, diagnostics.NewError(
				diagnostics.TagValueOutOfBounds,
				fmt.Sprintf("tag %d for %q is out of bounds; tags must be in [0, 2147483647]", *f.Tag, f.Identifier()),
				f.SpanOf(),
			))
		}
	}
	for _, p := range entitiesOf[*ast.Parameter](store) {
		if p.Tag != nil && *p.Tag < 0 {
			out = append(out, diagnostics.NewError(
				diagnostics.TagValueOutOfBounds,
				fmt.Sprintf("tag %d for %q is out of bounds; tags must be in [0, 2147483647]", *p.Tag, p.Identifier()),
				p.SpanOf(),
			))
		}
	}
	for _, c := range entitiesOf[*ast.Class](store) {
		if c.CompactID != nil && *c.CompactID < 0 {
			out = append(out, diagnostics.NewError(
				diagnostics.CompactIdOutOfBounds,
				fmt.Sprintf("compact id %d for class %q is out of bounds; compact ids must be in [0, 2147483647]", *c.CompactID, c.Identifier()),
				c.SpanOf(),
			))
		}
	}

	return out, nil
}
