package diagnostics

import "sort"

// Reporter collects diagnostics during a compilation pass. It never throws: every pass
// appends to the same Reporter and later passes can check HasErrors to decide whether to
// short-circuit instead of cascading failures on top of already-broken input.
type Reporter struct {
	diagnostics []Diagnostic
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Report appends a diagnostic.
func (r *Reporter) Report(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

// HasErrors reports whether any diagnostic collected so far is (or defaults to) an
// Error-kind diagnostic. Used by the pipeline to decide whether to run a later pass that
// would only produce confusing cascades on top of already-broken input.
func (r *Reporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Kind == KindError {
			return true
		}
	}
	return false
}

// All returns every diagnostic collected, in report order.
func (r *Reporter) All() []Diagnostic {
	return r.diagnostics
}

// AllowChecker answers whether a given code is suppressed at a file or at an entity
// scope, by inspecting allow(...) attributes. Implemented by the compiler package, which
// has access to the AST; diagnostics itself stays AST-agnostic.
type AllowChecker interface {
	// FileAllows reports whether the named file carries an allow(...) attribute
	// listing code or LintAll.
	FileAllows(file string, code Code) bool
	// ScopeAllows reports whether code is allowed by the given scope or any of its
	// containing entities' allow(...) attributes.
	ScopeAllows(scope Scope, code Code) bool
}

// ApplyAllowList runs the level-override pass: every lint
// diagnostic is downgraded from its default level to LevelAllowed if the CLI allow list,
// the diagnostic's file, or its scope's containment chain names its code (or "All").
// Error-kind diagnostics are never downgraded. Diagnostics are modified in place; the
// same slice is returned for convenience.
func ApplyAllowList(diags []Diagnostic, cliAllow []string, checker AllowChecker) []Diagnostic {
	cli := make(map[string]bool, len(cliAllow))
	for _, a := range cliAllow {
		cli[a] = true
	}

	for i := range diags {
		d := &diags[i]
		if d.Kind != KindLint {
			continue
		}
		if cli[string(d.Code)] || cli[LintAll] {
			d.setLevel(LevelAllowed)
			continue
		}
		if checker != nil && checker.FileAllows(d.Span.File, d.Code) {
			d.setLevel(LevelAllowed)
			continue
		}
		if checker != nil && d.Scope != "" && checker.ScopeAllows(d.Scope, d.Code) {
			d.setLevel(LevelAllowed)
			continue
		}
		d.setLevel(d.DefaultLevel)
	}
	return diags
}

// SortDiagnostics orders diagnostics by (file, start line, start column, code), giving a
// stable print order independent of pass visitation order.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.Span.File != b.Span.File {
			return a.Span.File < b.Span.File
		}
		if a.Span.Start.Line != b.Span.Start.Line {
			return a.Span.Start.Line < b.Span.Start.Line
		}
		if a.Span.Start.Column != b.Span.Start.Column {
			return a.Span.Start.Column < b.Span.Start.Column
		}
		return a.Code < b.Code
	})
}

// ExitCode returns 1 if any diagnostic's effective level is LevelError, 0 otherwise.
func ExitCode(diags []Diagnostic) int {
	return ExitCodeWithWarnings(diags, false)
}

// ExitCodeWithWarnings is ExitCode, but also returns 1 if warningsAsErrors is set and any
// diagnostic's effective level is LevelWarning. This backs the CLI's
// --warnings-as-errors flag.
func ExitCodeWithWarnings(diags []Diagnostic, warningsAsErrors bool) int {
	for _, d := range diags {
		if d.Level() == LevelError {
			return 1
		}
		if warningsAsErrors && d.Level() == LevelWarning {
			return 1
		}
	}
	return 0
}
