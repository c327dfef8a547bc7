package validate

import (
	"context"
	"fmt"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
)

// ShadowingRule reports a child definition reusing an identifier already defined by one
// of its bases: a class/exception field matching an inherited field's name, or an
// interface operation matching one inherited from any of its base interfaces.
type ShadowingRule struct{}

func (ShadowingRule) ID() string          { return "shadowing" }
func (ShadowingRule) Description() string { return "a member must not shadow an inherited one" }

func (ShadowingRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	for _, c := range entitiesOf[*ast.Class](store) {
		if c.BaseClass != nil && c.BaseClass.IsPatched() {
			if base := c.BaseClass.Definition(); base != nil {
				out = append(out, reportShadows(fieldsToEntities(c.Fields), inheritedClassFields(base))...)
			}
		}
	}
	for _, e := range entitiesOf[*ast.Exception](store) {
		if e.BaseException != nil && e.BaseException.IsPatched() {
			if base := e.BaseException.Definition(); base != nil {
				out = append(out, reportShadows(fieldsToEntities(e.Fields), inheritedExceptionFields(base))...)
			}
		}
	}
	for _, i := range entitiesOf[*ast.Interface](store) {
		for _, baseRef := range i.Bases {
			if !baseRef.IsPatched() {
				continue
			}
			base := baseRef.Definition()
			if base == nil {
				continue
			}
			out = append(out, reportShadows(operationsToEntities(i.Operations), inheritedOperations(base))...)
		}
	}

	return out, nil
}

// reportShadows emits a Shadows diagnostic for every child entity whose identifier
// reappears among the inherited ones, noting where the inherited member was defined.
func reportShadows(children, inherited []ast.Entity) []diagnostics.Diagnostic {
	byName := make(map[string]ast.Entity, len(inherited))
	for _, e := range inherited {
		byName[e.Identifier()] = e
	}

	var out []diagnostics.Diagnostic
	for _, c := range children {
		prev, ok := byName[c.Identifier()]
		if !ok {
			continue
		}
		d := diagnostics.NewError(
			diagnostics.Shadows,
			fmt.Sprintf("%q shadows a member inherited from a base", c.Identifier()),
			c.SpanOf(),
		)
		d = d.WithNote(fmt.Sprintf("%q was previously defined here", prev.Identifier()), spanPtr(prev.SpanOf()))
		out = append(out, d)
	}
	return out
}

func fieldsToEntities(fields []*ast.Field) []ast.Entity {
	out := make([]ast.Entity, len(fields))
	for i, f := range fields {
		out[i] = f
	}
	return out
}

func operationsToEntities(ops []*ast.Operation) []ast.Entity {
	out := make([]ast.Entity, len(ops))
	for i, op := range ops {
		out[i] = op
	}
	return out
}

func inheritedClassFields(c *ast.Class) []ast.Entity {
	out := fieldsToEntities(c.Fields)
	if c.BaseClass != nil && c.BaseClass.IsPatched() {
		if base := c.BaseClass.Definition(); base != nil {
			out = append(out, inheritedClassFields(base)...)
		}
	}
	return out
}

func inheritedExceptionFields(e *ast.Exception) []ast.Entity {
	out := fieldsToEntities(e.Fields)
	if e.BaseException != nil && e.BaseException.IsPatched() {
		if base := e.BaseException.Definition(); base != nil {
			out = append(out, inheritedExceptionFields(base)...)
		}
	}
	return out
}

func inheritedOperations(i *ast.Interface) []ast.Entity {
	out := operationsToEntities(i.Operations)
	for _, baseRef := range i.Bases {
		if !baseRef.IsPatched() {
			continue
		}
		if base := baseRef.Definition(); base != nil {
			out = append(out, inheritedOperations(base)...)
		}
	}
	return out
}
