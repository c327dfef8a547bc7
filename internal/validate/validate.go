// Package validate implements component H: independent, read-only checks that run after
// every patcher in internal/compiler has resolved references, computed containment, and
// settled mode compatibility. Each Rule inspects the finished AST and appends
// diagnostics; rules never mutate the store and never depend on each other's output.
package validate

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
)

// Rule is a single independent check run over a fully patched AST.
type Rule interface {
	ID() string
	Description() string
	Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error)
}

// Runner executes a rule set and returns aggregated, sorted diagnostics.
type Runner struct {
	rules []Rule
}

// NewRunner builds a validator runner from a rule set.
func NewRunner(rules ...Rule) *Runner {
	return &Runner{rules: slices.Clone(rules)}
}

// NewDefaultRunner builds the full validator rule set run over every compilation.
func NewDefaultRunner() *Runner {
	return NewRunner(
		RedefinitionRule{},
		ShadowingRule{},
		TagUniquenessRule{},
		TaggedMemberOptionalRule{},
		TaggedMemberClassRule{},
		ParameterOrderingRule{},
		ReturnTupleSizeRule{},
		CompactStructRule{},
		EnumBoundsRule{},
		EnumeratorUniquenessRule{},
		CheckedEnumNonEmptyRule{},
		EnumUnderlyingTypeRule{},
		DictionaryKeyRule{},
		DocCommentRule{},
		TypeAliasOfOptionalRule{},
		FileScopedModuleRule{},
		BoundsRule{},
	)
}

// Run executes every configured rule and returns a stably sorted diagnostic list.
func (r *Runner) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	if store == nil {
		return nil, errors.New("validate: nil store")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r == nil || len(r.rules) == 0 {
		return []diagnostics.Diagnostic{}, nil
	}

	out := make([]diagnostics.Diagnostic, 0, 16)
	for _, rule := range r.rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		diags, err := rule.Run(ctx, store)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID(), err)
		}
		out = append(out, diags...)
	}

	diagnostics.SortDiagnostics(out)
	return out, nil
}
