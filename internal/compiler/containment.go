package compiler

import "github.com/icerpc/slicec-go/internal/ast"

// PatchContainment walks every node in the store once and records each entity's immediate
// container as its Parent. It must run before the mode-compatibility patcher, which walks
// upward from a field or parameter to the class/exception that contains it (to decide
// whether an optional reference there is disallowed, and whether to suggest tagging it
// instead). Run also places it before the type-reference patcher, which does not use Parent.
func PatchContainment(store *ast.Store) {
	for _, n := range store.AllNodes() {
		switch e := n.(type) {
		case *ast.Module:
			for _, child := range e.Contents {
				if ent, ok := child.(ast.Entity); ok {
					ent.SetParent(e)
				}
			}
		case *ast.Struct:
			for _, f := range e.Fields {
				f.SetParent(e)
			}
		case *ast.Class:
			for _, f := range e.Fields {
				f.SetParent(e)
			}
		case *ast.Exception:
			for _, f := range e.Fields {
				f.SetParent(e)
			}
		case *ast.Interface:
			for _, op := range e.Operations {
				op.SetParent(e)
			}
		case *ast.Operation:
			for _, p := range e.Parameters {
				p.SetParent(e)
			}
			for _, p := range e.ReturnType {
				p.SetParent(e)
			}
		case *ast.Enum:
			for _, en := range e.Enumerators {
				en.SetParent(e)
			}
		}
	}
}
