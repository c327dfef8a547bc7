package parser

import (
	"strings"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/lexer"
	"github.com/icerpc/slicec-go/internal/text"
)

// docLine is one `///`-commented source line, already stripped of its marker, paired
// with the span of its body text (used to anchor inline {@link ...} tags precisely).
type docLine struct {
	text string
	span text.Span
}

// collectLeadingDocComment consumes every TriviaDocComment immediately preceding the
// current token and assembles it into a DocComment, or returns nil if the token carries
// none. Every `///` line in the token's leading trivia joins one comment block, including
// lines separated by blank lines or plain `//` comments.
func (p *parser) collectLeadingDocComment() *ast.DocComment {
	lines := docLinesOf(p.peek().Leading, p.file)
	if len(lines) == 0 {
		return nil
	}
	return buildDocComment(lines)
}

func docLinesOf(trivia []lexer.Trivia, file string) []docLine {
	var out []docLine
	for _, t := range trivia {
		if t.Kind != lexer.TriviaDocComment {
			continue
		}
		bodyStart := t.Span.Start
		bodyStart.Column += 3 // skip the "///" marker
		out = append(out, docLine{text: t.Text, span: text.Span{File: file, Start: bodyStart, End: t.Span.End}})
	}
	return out
}

// buildDocComment groups raw doc lines into an overview, @param/@returns/@throws/@see
// tags, and the inline {@link ...} references found anywhere in that prose. Grounded on
// original_source's doc-comment tag shape (overview, see_also, params, returns, throws)
// plus its bracket-scanning approach to inline tags, adapted here to work line-by-line so
// each inline tag keeps an accurate span instead of one borrowed from the whole comment.
func buildDocComment(lines []docLine) *ast.DocComment {
	dc := &ast.DocComment{}

	var overview []string
	var links []*ast.LinkTag

	type openTag struct {
		kind string // "param", "returns", "throws", "see"
		name string // @param's identifier / @throws's exception name
		text []string
	}
	var current *openTag
	flush := func() {
		if current == nil {
			return
		}
		body := strings.Join(current.text, "\n")
		switch current.kind {
		case "param":
			dc.Params = append(dc.Params, ast.ParamDoc{Name: current.name, Description: body})
		case "returns":
			dc.Returns = body
		case "throws":
			th := ast.ThrowsDoc{ExceptionName: current.name, Description: body}
			dc.Throws = append(dc.Throws, th)
		case "see":
			dc.SeeAlso = append(dc.SeeAlso, ast.SeeAlsoDoc{Identifier: current.name})
		}
		current = nil
	}

	for _, line := range lines {
		links = append(links, scanInlineLinks(line)...)

		trimmed := strings.TrimLeft(line.text, " \t")
		tag, rest, ok := splitTag(trimmed)
		if !ok {
			if current != nil {
				current.text = append(current.text, trimmed)
			} else {
				overview = append(overview, trimmed)
			}
			continue
		}

		flush()
		switch tag {
		case "@param":
			name, desc := splitFirstWord(rest)
			current = &openTag{kind: "param", name: name, text: []string{desc}}
		case "@return", "@returns":
			current = &openTag{kind: "returns", text: []string{rest}}
		case "@throws":
			name, desc := splitFirstWord(rest)
			current = &openTag{kind: "throws", name: name, text: []string{desc}}
		case "@see":
			current = &openTag{kind: "see", name: strings.TrimSpace(rest), text: nil}
			flush()
		default:
			// An unrecognized tag is treated as ordinary prose, matching
			// original_source's "unknown tags pass through" tolerance.
			if current != nil {
				current.text = append(current.text, trimmed)
			} else {
				overview = append(overview, trimmed)
			}
		}
	}
	flush()

	dc.Overview = strings.Join(overview, "\n")
	dc.Links = links
	dc.Sanitize()
	return dc
}

// splitTag reports whether line begins with a recognized `@tag` and splits off the rest
// of the line after the tag and its following whitespace.
func splitTag(line string) (tag, rest string, ok bool) {
	if !strings.HasPrefix(line, "@") {
		return "", "", false
	}
	fields := strings.SplitN(line, " ", 2)
	tag = fields[0]
	switch tag {
	case "@param", "@return", "@returns", "@throws", "@see":
		if len(fields) == 2 {
			rest = fields[1]
		}
		return tag, rest, true
	default:
		return "", "", false
	}
}

func splitFirstWord(s string) (first, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i+1:], " \t")
}

// scanInlineLinks finds every `{@link Identifier}` occurrence in line's text, grounded on
// original_source's find_inline_tags bracket scan (two-part tags only: a `{`, the `@link`
// marker, the identifier, and a closing `}`, all on one line).
func scanInlineLinks(line docLine) []*ast.LinkTag {
	var out []*ast.LinkTag
	s := line.text
	for {
		open := strings.Index(s, "{@link")
		if open < 0 {
			return out
		}
		closeIdx := strings.Index(s[open:], "}")
		if closeIdx < 0 {
			return out
		}
		closeIdx += open

		raw := strings.TrimSpace(s[open+len("{@link") : closeIdx])
		col := line.span.Start.Column + open + len("{@link")
		sp := text.Span{
			File:  line.span.File,
			Start: text.Position{Line: line.span.Start.Line, Column: col},
			End:   text.Position{Line: line.span.Start.Line, Column: col + len(raw)},
		}
		out = append(out, &ast.LinkTag{Raw: raw, Span: sp})

		s = s[closeIdx+1:]
	}
}
