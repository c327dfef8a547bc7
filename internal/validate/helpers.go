package validate

import (
	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/text"
)

// entitiesOf filters a store's nodes down to one concrete entity type, in store order.
func entitiesOf[T ast.Entity](store *ast.Store) []T {
	var out []T
	for _, n := range store.AllNodes() {
		if e, ok := n.(T); ok {
			out = append(out, e)
		}
	}
	return out
}

// spanPtr takes the address of a span value for use as a diagnostic note's location.
func spanPtr(s text.Span) *text.Span {
	return &s
}

// scopeOf returns the diagnostic Scope for an entity: its fully scoped identifier, used
// by the allow-list pass to walk the entity's containment chain.
func scopeOf(e ast.Entity) string {
	return ast.ScopedIdentifier(e)
}
