package diagnostics

import "github.com/icerpc/slicec-go/internal/text"

// Kind distinguishes an Error from a Lint. Errors always report at Level Error; lints
// have a default Level that the allow-list pass may downgrade to Allowed.
type Kind uint8

const (
	KindError Kind = iota
	KindLint
)

// Level is a diagnostic's effective severity after the allow-list override pass runs.
type Level uint8

const (
	LevelError Level = iota
	LevelWarning
	LevelAllowed
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelAllowed:
		return "allowed"
	default:
		return "unknown"
	}
}

// Note is a secondary message attached to a diagnostic, optionally pointing at another
// span (e.g. the original definition in a Redefinition error, or each link in a cycle).
type Note struct {
	Message string
	Span    *text.Span
}

// Scope identifies where a diagnostic's allow-list lookup should start: the fully
// scoped identifier of the entity the diagnostic concerns, used to walk that entity's
// chain of containing entities looking for an allow(...) attribute. Diagnostics with no
// natural owning entity (e.g. a bare syntax error) leave this empty.
type Scope string

// Diagnostic is a single reported issue. Diagnostics are collected as immutable records
// during compilation; DefaultLevel is fixed at construction and Level-overriding happens
// in a single later pass (see ApplyAllowList) rather than by mutating diagnostics as
// they're produced.
type Diagnostic struct {
	Code         Code
	Kind         Kind
	Message      string
	Span         text.Span
	Notes        []Note
	DefaultLevel Level
	Scope        Scope

	level      Level
	hasLevel   bool
}

// NewError builds an Error-kind diagnostic. Errors always default to LevelError.
func NewError(code Code, message string, span text.Span) Diagnostic {
	return Diagnostic{Code: code, Kind: KindError, Message: message, Span: span, DefaultLevel: LevelError}
}

// NewLint builds a Lint-kind diagnostic with the given default level (Warning, usually).
func NewLint(code Code, message string, span text.Span, scope Scope, defaultLevel Level) Diagnostic {
	return Diagnostic{Code: code, Kind: KindLint, Message: message, Span: span, Scope: scope, DefaultLevel: defaultLevel}
}

// WithNote returns a copy of d with an additional note appended.
func (d Diagnostic) WithNote(message string, span *text.Span) Diagnostic {
	d.Notes = append(append([]Note(nil), d.Notes...), Note{Message: message, Span: span})
	return d
}

// Level returns the diagnostic's effective level: DefaultLevel until ApplyAllowList has
// run, then whatever that pass decided.
func (d Diagnostic) Level() Level {
	if d.hasLevel {
		return d.level
	}
	return d.DefaultLevel
}

// setLevel is called only by ApplyAllowList.
func (d *Diagnostic) setLevel(l Level) {
	d.level = l
	d.hasLevel = true
}

// IsError reports whether this diagnostic's effective level makes it count toward a
// non-zero exit code.
func (d Diagnostic) IsError() bool {
	return d.Level() == LevelError
}
