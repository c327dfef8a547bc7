// Package compiler wires the AST store together into a full semantic-analysis pipeline:
// containment, type-reference resolution, attribute validation, doc-comment link
// resolution, and mode-compatibility, run in that order over a CompilationState before
// any validator in internal/validate looks at the result.
package compiler

import (
	"context"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
	"github.com/icerpc/slicec-go/internal/validate"
)

// File records the Slice mode a single input file compiles under, along with whether that
// mode came from an explicit directive or from the default. Several diagnostics append a
// "file is using {mode} mode by default" note only in the latter case.
type File struct {
	Name            string
	Mode            ast.Mode
	HasExplicitMode bool
	// Attributes holds any file-level directives (currently only allow(...)) written
	// before the file's first module declaration.
	Attributes []ast.Attribute
}

// CompilationState is the shared context every patcher and validator operates over: the
// populated AST store, the set of files being compiled (for mode lookups), and the
// diagnostic reporter every pass writes into.
type CompilationState struct {
	Store    *ast.Store
	Files    map[string]*File
	Reporter *diagnostics.Reporter

	// LanguageNamespaces lists the attribute namespaces (e.g. "cs") this compilation
	// cares about; an unrecognized directive prefixed with one of these is reported as
	// UnexpectedAttribute. Left empty by NewCompilationState, since most callers aren't
	// validating against a specific language mapping; set directly before calling Run
	// to opt in.
	LanguageNamespaces []string
}

// NewCompilationState builds a CompilationState around an already-parsed Store.
func NewCompilationState(store *ast.Store, files map[string]*File) *CompilationState {
	return &CompilationState{
		Store:    store,
		Files:    files,
		Reporter: diagnostics.NewReporter(),
	}
}

// FileOf looks up the File a span belongs to. It panics if the span names a file the
// state doesn't know about, since that indicates a parser/state bug rather than a user
// error: every span's File field is set from the same file list passed to
// NewCompilationState.
func (cs *CompilationState) FileOf(file string) *File {
	f, ok := cs.Files[file]
	if !ok {
		panic("compiler: span references unknown file " + file)
	}
	return f
}

// Run executes every patcher in dependency order, then the validator suite, and
// returns the reporter's diagnostics. Later passes read state earlier passes wrote (the
// mode-compatibility engine needs resolved type references and containment parents, for
// instance) so this order is load-bearing, not stylistic. Diagnostics are collected
// rather than thrown, but the validator suite (which assumes a fully patched,
// reference-resolved AST) is skipped once an earlier pass has already reported an error,
// since running it over a half-resolved AST would only produce confusing cascades.
func (cs *CompilationState) Run() []diagnostics.Diagnostic {
	PatchContainment(cs.Store)
	PatchTypeRefs(cs.Store, cs.Reporter)
	ValidateAttributes(cs.Store, cs.Reporter, cs.LanguageNamespaces)
	PatchCommentLinks(cs.Store, cs.Reporter)
	PatchModes(cs)

	if !cs.Reporter.HasErrors() {
		if diags, err := validate.NewDefaultRunner().Run(context.Background(), cs.Store); err == nil {
			for _, d := range diags {
				cs.Reporter.Report(d)
			}
		}
	}

	return cs.Reporter.All()
}
