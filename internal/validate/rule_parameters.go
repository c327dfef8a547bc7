package validate

import (
	"context"
	"fmt"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
)

// ParameterOrderingRule enforces the three ordering constraints a parameter or return
// list must satisfy: every untagged (required) member must precede every tagged
// (optional-on-the-wire) one, at most one member in the list may be streamed, and a
// streamed member, if present, must be the list's last element.
type ParameterOrderingRule struct{}

func (ParameterOrderingRule) ID() string { return "parameter-ordering" }
func (ParameterOrderingRule) Description() string {
	return "required parameters must precede tagged ones, and a streamed parameter must be last"
}

func (ParameterOrderingRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	for _, op := range entitiesOf[*ast.Operation](store) {
		checkParameterOrder(&out, parametersToTagged(op.Parameters))
		checkParameterOrder(&out, parametersToTagged(op.ReturnType))
	}

	return out, nil
}

func checkParameterOrder(out *[]diagnostics.Diagnostic, members []taggedMember) {
	sawTagged := false
	streamedCount := 0
	for i, m := range members {
		if m.tag == nil && sawTagged {
			*out = append(*out, diagnostics.NewError(
				diagnostics.RequiredMustPrecedeOptional,
				fmt.Sprintf("required member %q must precede all tagged members", m.identifier),
				m.span,
			))
		}
		if m.tag != nil {
			sawTagged = true
		}

		if !m.isStreamed {
			continue
		}
		streamedCount++
		if streamedCount > 1 {
			*out = append(*out, diagnostics.NewError(
				diagnostics.MultipleStreamedMembers,
				fmt.Sprintf("%q is the second streamed member in this list; only one is allowed", m.identifier),
				m.span,
			))
		}
		if i != len(members)-1 {
			*out = append(*out, diagnostics.NewError(
				diagnostics.StreamedMembersMustBeLast,
				fmt.Sprintf("streamed member %q must be the last member in its list", m.identifier),
				m.span,
			))
		}
	}
}

// ReturnTupleSizeRule reports a return list written with explicit tuple syntax but only
// one element; a single return value doesn't need, and can't use, the named-tuple form.
type ReturnTupleSizeRule struct{}

func (ReturnTupleSizeRule) ID() string          { return "return-tuple-size" }
func (ReturnTupleSizeRule) Description() string { return "a named return tuple must have at least two elements" }

func (ReturnTupleSizeRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	for _, op := range entitiesOf[*ast.Operation](store) {
		if len(op.ReturnType) == 1 && op.ReturnType[0].Identifier() != "" {
			out = append(out, diagnostics.NewError(
				diagnostics.ReturnTuplesMustContainAtLeastTwo,
				fmt.Sprintf("operation %q returns a one-element named tuple; use a bare type instead", op.Identifier()),
				op.ReturnType[0].SpanOf(),
			))
		}
	}

	return out, nil
}
