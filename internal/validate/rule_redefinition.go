package validate

import (
	"context"
	"fmt"
	"sort"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
)

// RedefinitionRule reports two non-module definitions sharing a fully scoped identifier.
// Store.FindDuplicates already groups by scoped identifier, which gives the union of a
// reopened module's contents for free: two struct definitions named "::Demo::Point"
// collide whether "Demo" was opened once or three times across three files.
//
// Reopening a module under the same name is legal, so a group made up entirely of
// Module entities is skipped; a group mixing a module with a non-module of the same name
// is still a genuine collision and is reported.
type RedefinitionRule struct{}

func (RedefinitionRule) ID() string          { return "redefinition" }
func (RedefinitionRule) Description() string { return "definitions must not share an identifier" }

func (RedefinitionRule) Run(ctx context.Context, store *ast.Store) ([]diagnostics.Diagnostic, error) {
	var out []diagnostics.Diagnostic

	for _, group := range store.FindDuplicates() {
		if allModules(group) {
			continue
		}

		sorted := append([]ast.Entity(nil), group...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID() < sorted[j].ID() })

		for i := 1; i < len(sorted); i++ {
			_, isModule := sorted[i].(*ast.Module)
			_, prevIsModule := sorted[i-1].(*ast.Module)
			if isModule && prevIsModule {
				continue
			}
			d := diagnostics.NewError(
				diagnostics.Redefinition,
				fmt.Sprintf("redefinition of %q", sorted[i].Identifier()),
				sorted[i].SpanOf(),
			)
			d = d.WithNote(
				fmt.Sprintf("%q was previously defined here", sorted[i-1].Identifier()),
				spanPtr(sorted[i-1].SpanOf()),
			)
			out = append(out, d)
		}
	}

	return out, nil
}

func allModules(entities []ast.Entity) bool {
	for _, e := range entities {
		if _, ok := e.(*ast.Module); !ok {
			return false
		}
	}
	return true
}
