package compiler

import (
	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
)

// AllowChecker implements diagnostics.AllowChecker against a CompilationState's store
// and file list, walking allow(...) attributes at both the file level and an entity's
// containment chain.
type AllowChecker struct {
	cs *CompilationState
}

// NewAllowChecker builds an AllowChecker over the given compilation state.
func NewAllowChecker(cs *CompilationState) *AllowChecker {
	return &AllowChecker{cs: cs}
}

// FileAllows reports whether file carries an allow(...) attribute listing code or
// diagnostics.LintAll.
func (c *AllowChecker) FileAllows(file string, code diagnostics.Code) bool {
	f, ok := c.cs.Files[file]
	if !ok {
		return false
	}
	return attributesAllow(f.Attributes, code)
}

// ScopeAllows reports whether code is allowed by the entity named by scope, or by any
// entity containing it, by walking Parent() up to the root.
func (c *AllowChecker) ScopeAllows(scope diagnostics.Scope, code diagnostics.Code) bool {
	entity, ok := c.cs.Store.FindNode(string(scope))
	if !ok {
		return false
	}
	for e := entity; e != nil; e = e.Parent() {
		if attributesAllow(e.Attributes(), code) {
			return true
		}
	}
	return false
}

// attributesAllow reports whether attrs contains an allow(...) directive naming code or
// the "All" wildcard.
func attributesAllow(attrs []ast.Attribute, code diagnostics.Code) bool {
	for _, a := range attrs {
		if a.Directive != "allow" {
			continue
		}
		for _, arg := range a.Arguments {
			if arg == diagnostics.LintAll || arg == string(code) {
				return true
			}
		}
	}
	return false
}
