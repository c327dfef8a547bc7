package validate

import (
	"context"
	"fmt"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
)

// FileScopedModuleRule reports a file-scoped module (the brace-less "module Foo;" form,
// which extends to the end of the file) that directly contains a nested module:
// without braces there is no way to tell where the outer module ends and the inner one
// begins, so the grammar only allows nesting inside a braced module.
type FileScopedModuleRule struct{}

func (FileScopedModuleRule) ID() string          { return "file-scoped-module" }
func (FileScopedModuleRule) Description() string { return "a file-scoped module cannot contain submodules" }

func (FileScopedModuleRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	for _, m := range entitiesOf[*ast.Module](store) {
		if !m.IsFileScoped {
			continue
		}
		for _, c := range m.Contents {
			sub, ok := c.(*ast.Module)
			if !ok {
				continue
			}
			out = append(out, diagnostics.NewError(
				diagnostics.FileScopedModuleCannotContainSubModules,
				fmt.Sprintf("file-scoped module %q cannot contain submodule %q", m.Identifier(), sub.Identifier()),
				sub.SpanOf(),
			))
		}
	}

	return out, nil
}
