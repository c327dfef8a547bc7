package validate

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
)

// enumBounds returns the inclusive range an enum's enumerators must fall within: the
// underlying type's own bounds when one was declared, or the implicit default
// (signed 32-bit) otherwise.
func enumBounds(e *ast.Enum) (min, max int64) {
	if e.UnderlyingType != nil && e.UnderlyingType.IsPatched() {
		if lo, hi, ok := e.UnderlyingType.Definition().Kind().NumericBounds(); ok {
			return lo, hi
		}
	}
	return math.MinInt32, math.MaxInt32
}

// EnumBoundsRule reports an enumerator whose value falls outside the range its enum's
// underlying type (or, absent one, the implicit 32-bit default) can represent.
type EnumBoundsRule struct{}

func (EnumBoundsRule) ID() string          { return "enum-bounds" }
func (EnumBoundsRule) Description() string { return "an enumerator's value must fit its enum's underlying type" }

func (EnumBoundsRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	for _, e := range entitiesOf[*ast.Enum](store) {
		min, max := enumBounds(e)
		for _, en := range e.Enumerators {
			if en.Value < min || en.Value > max {
				out = append(out, diagnostics.NewError(
					diagnostics.EnumeratorValueOutOfBounds,
					fmt.Sprintf("enumerator %q's value %d is outside the range [%d, %d]", en.Identifier(), en.Value, min, max),
					en.SpanOf(),
				))
			}
		}
	}

	return out, nil
}

// EnumeratorUniquenessRule reports two enumerators in the same enum sharing a value.
type EnumeratorUniquenessRule struct{}

func (EnumeratorUniquenessRule) ID() string          { return "enumerator-uniqueness" }
func (EnumeratorUniquenessRule) Description() string { return "an enum's enumerator values must be unique" }

func (EnumeratorUniquenessRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	for _, e := range entitiesOf[*ast.Enum](store) {
		sorted := append([]*ast.Enumerator(nil), e.Enumerators...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })
		for i := 1; i < len(sorted); i++ {
			if sorted[i].Value != sorted[i-1].Value {
				continue
			}
			d := diagnostics.NewError(
				diagnostics.DuplicateEnumeratorValue,
				fmt.Sprintf("enumerator %q reuses the value %d", sorted[i].Identifier(), sorted[i].Value),
				sorted[i].SpanOf(),
			)
			d = d.WithNote(fmt.Sprintf("%q already uses %d here", sorted[i-1].Identifier(), sorted[i-1].Value), spanPtr(sorted[i-1].SpanOf()))
			out = append(out, d)
		}
	}

	return out, nil
}

// CheckedEnumNonEmptyRule reports a checked (non-unchecked) enum with no enumerators: an
// empty closed set can never hold a value, making the type unusable.
type CheckedEnumNonEmptyRule struct{}

func (CheckedEnumNonEmptyRule) ID() string          { return "checked-enum-non-empty" }
func (CheckedEnumNonEmptyRule) Description() string { return "a checked enum must declare at least one enumerator" }

func (CheckedEnumNonEmptyRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	for _, e := range entitiesOf[*ast.Enum](store) {
		if !e.IsUnchecked && len(e.Enumerators) == 0 {
			out = append(out, diagnostics.NewError(
				diagnostics.MustContainEnumerators,
				fmt.Sprintf("checked enum %q must contain at least one enumerator", e.Identifier()),
				e.SpanOf(),
			))
		}
	}

	return out, nil
}

// EnumUnderlyingTypeRule reports an enum whose declared underlying type is optional, or
// isn't one of the integral primitive kinds.
type EnumUnderlyingTypeRule struct{}

func (EnumUnderlyingTypeRule) ID() string          { return "enum-underlying-type" }
func (EnumUnderlyingTypeRule) Description() string { return "an enum's underlying type must be a non-optional integral primitive" }

func (EnumUnderlyingTypeRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	for _, e := range entitiesOf[*ast.Enum](store) {
		if e.UnderlyingType == nil {
			continue
		}
		if e.UnderlyingType.IsOptional {
			out = append(out, diagnostics.NewError(
				diagnostics.CannotUseOptionalUnderlyingType,
				fmt.Sprintf("enum %q cannot use an optional underlying type", e.Identifier()),
				e.UnderlyingType.Span,
			))
		}
		if e.UnderlyingType.IsPatched() && !e.UnderlyingType.Definition().Kind().IsIntegral() {
			out = append(out, diagnostics.NewError(
				diagnostics.UnderlyingTypeMustBeIntegral,
				fmt.Sprintf("enum %q's underlying type must be an integral type", e.Identifier()),
				e.UnderlyingType.Span,
			))
		}
	}

	return out, nil
}
