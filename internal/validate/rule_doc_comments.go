package validate

import (
	"context"
	"fmt"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
)

// DocCommentRule reports a doc comment that has drifted from the operation it
// documents: an `@param` tag naming a parameter the operation doesn't declare, a
// `@returns` tag on an operation that returns nothing, or a `@throws` tag naming an
// exception the operation's throws clause doesn't actually allow. These are lints, not
// errors: stale documentation shouldn't fail a build.
type DocCommentRule struct{}

func (DocCommentRule) ID() string          { return "doc-comment" }
func (DocCommentRule) Description() string { return "a doc comment must match the operation it documents" }

func (DocCommentRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	for _, op := range entitiesOf[*ast.Operation](store) {
		comment := op.DocComment()
		if comment == nil {
			continue
		}
		scope := diagnostics.Scope(ast.ScopedIdentifier(op))

		if comment.Returns != "" && len(op.ReturnType) == 0 {
			out = append(out, diagnostics.NewLint(
				diagnostics.LintIncorrectDocComment,
				fmt.Sprintf("operation %q has a @returns tag but declares no return value", op.Identifier()),
				op.SpanOf(),
				scope,
				diagnostics.LevelWarning,
			))
		}

		declared := make(map[string]bool, len(op.Parameters))
		for _, p := range op.Parameters {
			declared[p.Identifier()] = true
		}
		for _, pd := range comment.Params {
			if !declared[pd.Name] {
				out = append(out, diagnostics.NewLint(
					diagnostics.LintIncorrectDocComment,
					fmt.Sprintf("@param tag names %q, which is not a parameter of operation %q", pd.Name, op.Identifier()),
					op.SpanOf(),
					scope,
					diagnostics.LevelWarning,
				))
			}
		}

		for i := range comment.Throws {
			checkThrowsTag(&out, op, &comment.Throws[i], scope)
		}
	}

	return out, nil
}

func checkThrowsTag(out *[]diagnostics.Diagnostic, op *ast.Operation, throws *ast.ThrowsDoc, scope diagnostics.Scope) {
	switch op.Throws {
	case ast.ThrowsNothing:
		*out = append(*out, diagnostics.NewLint(
			diagnostics.LintIncorrectDocComment,
			fmt.Sprintf("@throws tag names %q, but operation %q does not throw any exceptions", throws.ExceptionName, op.Identifier()),
			op.SpanOf(),
			scope,
			diagnostics.LevelWarning,
		))
	case ast.ThrowsSpecific:
		target := throws.Target()
		if target == nil || op.ThrowsSpecific == nil || !op.ThrowsSpecific.IsPatched() {
			return
		}
		if target != op.ThrowsSpecific.Definition() {
			*out = append(*out, diagnostics.NewLint(
				diagnostics.LintIncorrectDocComment,
				fmt.Sprintf("@throws tag names %q, but operation %q only throws %q", throws.ExceptionName, op.Identifier(), op.ThrowsSpecific.Raw),
				op.SpanOf(),
				scope,
				diagnostics.LevelWarning,
			))
		}
	case ast.ThrowsAnyException:
		// Any exception is permitted, so every @throws tag is consistent.
	}
}
