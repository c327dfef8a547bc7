package ast

import "github.com/icerpc/slicec-go/internal/text"

// LinkTag is an inline `{@link Identifier}`-style cross-reference found in a doc
// comment's free text. It starts unpatched (bare text) and is resolved to the entity it
// names by the doc-comment link patcher.
type LinkTag struct {
	// Raw is the identifier exactly as written, possibly scope-relative.
	Raw string
	Span text.Span

	// patched is filled in once the link patcher resolves Raw against the scope the
	// comment's owning entity was written in. It stays nil for a link that can't be
	// resolved; the patcher reports a diagnostic in that case rather than panicking
	// later when something tries to follow the link.
	patched Entity
}

// Target returns the entity the tag resolves to, or nil if it is unpatched or was
// unresolvable.
func (t LinkTag) Target() Entity { return t.patched }

// SetTarget records the resolved entity for this tag. Exposed for the comment-link
// patcher in the compiler package; other callers should treat LinkTag as read-only.
func (t *LinkTag) SetTarget(e Entity) { t.patched = e }

// SeeAlsoDoc documents one `@see` cross-reference by identifier. It mirrors ThrowsDoc's
// unpatched/patched split: a see tag's identifier carries no span of its own (it's read
// right after the `@see` keyword, not from inside `{@link ...}` braces), so diagnostics
// about it anchor to the owning entity's span instead.
type SeeAlsoDoc struct {
	Identifier string

	// patched is the resolved entity, filled in by the link patcher. Unlike a throws
	// tag, a see tag may target any kind of entity, not just an exception.
	patched Entity
}

// Target returns the resolved entity, or nil if unpatched or unresolvable.
func (s SeeAlsoDoc) Target() Entity { return s.patched }

// SetTarget records the resolved entity.
func (s *SeeAlsoDoc) SetTarget(e Entity) { s.patched = e }

// ParamDoc documents one parameter or field by name.
type ParamDoc struct {
	Name        string
	Description string
}

// ThrowsDoc documents one exception an operation may throw.
type ThrowsDoc struct {
	ExceptionName string
	Description   string

	// patched is the resolved exception, filled in by the link patcher. It mirrors
	// LinkTag's unpatched/patched split rather than reusing LinkTag directly, since a
	// throws-tag's identifier is looked up at a different point in the grammar (right
	// after the `@throws` keyword instead of inside `{@link ...}` braces).
	patched *Exception
}

// Target returns the resolved exception, or nil if unpatched or unresolvable.
func (t ThrowsDoc) Target() *Exception { return t.patched }

// SetTarget records the resolved exception.
func (t *ThrowsDoc) SetTarget(e *Exception) { t.patched = e }

// DocComment is the parsed form of a `///`-style doc comment block attached to a
// definition. Overview and SeeAlso entries may each contain inline {@link ...} tags;
// those are tracked separately in Links so the comment-link patcher has a single flat
// list to resolve without re-scanning the prose.
type DocComment struct {
	Overview string
	SeeAlso  []SeeAlsoDoc
	Params   []ParamDoc
	Returns  string
	Throws   []ThrowsDoc
	Links    []*LinkTag
	Span     text.Span
}

// Sanitize trims surrounding whitespace from every free-text field. Doc comments are
// assembled line-by-line while parsing, which tends to leave a stray leading space from
// the `/// ` marker; this is run once after parsing, before any patcher reads the text.
func (d *DocComment) Sanitize() {
	if d == nil {
		return
	}
	d.Overview = trimSpace(d.Overview)
	for i, s := range d.SeeAlso {
		d.SeeAlso[i].Identifier = trimSpace(s.Identifier)
	}
	for i, p := range d.Params {
		d.Params[i].Description = trimSpace(p.Description)
	}
	d.Returns = trimSpace(d.Returns)
	for i, th := range d.Throws {
		d.Throws[i].Description = trimSpace(th.Description)
	}
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isDocSpace(s[start]) {
		start++
	}
	for end > start && isDocSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isDocSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
