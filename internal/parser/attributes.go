package parser

import (
	"strings"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/lexer"
)

// parseAttributes consumes zero or more bracketed attribute groups, e.g.
// `[deprecated] [allow(IncorrectDocComment), compress]`, returning every attribute
// found across all of them in source order. Argument-count and applicability checking
// happens later, in ValidateAttributes; the grammar only rejects a malformed bracket.
func (p *parser) parseAttributes() []ast.Attribute {
	var out []ast.Attribute
	for p.at(lexer.TokenLBracket) {
		p.next()
		for {
			out = append(out, p.parseOneAttribute())
			if p.at(lexer.TokenComma) {
				p.next()
				continue
			}
			break
		}
		p.expect(lexer.TokenRBracket, "']'")
	}
	return out
}

func (p *parser) parseOneAttribute() ast.Attribute {
	start := p.peek().Span
	directive := p.parseAttributeDirective()

	var args []string
	if p.at(lexer.TokenLParen) {
		p.next()
		for !p.at(lexer.TokenRParen) && !p.atEOF() {
			args = append(args, p.parseAttributeArgument())
			if p.at(lexer.TokenComma) {
				p.next()
				continue
			}
			break
		}
		p.expect(lexer.TokenRParen, "')'")
	}

	span := spanFrom(start.Start, p.peekAt(-1).Span, p.file)
	return ast.NewAttribute(directive, args, span)
}

// parseAttributeDirective reads a directive name, which may be language-namespaced
// (`cs::identifier`, written with a `::` separator).
func (p *parser) parseAttributeDirective() string {
	var parts []string
	parts = append(parts, p.expect(lexer.TokenIdentifier, "attribute directive").Text)
	for p.at(lexer.TokenColonColon) {
		p.next()
		parts = append(parts, p.expect(lexer.TokenIdentifier, "identifier").Text)
	}
	return strings.Join(parts, "::")
}

func (p *parser) parseAttributeArgument() string {
	if p.at(lexer.TokenStringLiteral) {
		tok := p.next()
		return unquote(tok.Text)
	}
	if p.at(lexer.TokenIntLiteral) {
		return p.next().Text
	}
	return p.expect(lexer.TokenIdentifier, "attribute argument").Text
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// parseModeDirective consumes an optional leading `mode = Slice1` / `mode = Slice2`
// directive, returning the declared mode and whether one was present. A bare trailing
// `;` is accepted but not required.
func (p *parser) parseModeDirective() (ast.Mode, bool) {
	if !p.at(lexer.TokenKwMode) {
		return ast.DefaultMode, false
	}
	p.next()
	p.expect(lexer.TokenEqual, "'='")
	name := p.expect(lexer.TokenIdentifier, "'Slice1' or 'Slice2'")

	mode := ast.DefaultMode
	switch name.Text {
	case "Slice1":
		mode = ast.ModeSlice1
	case "Slice2":
		mode = ast.ModeSlice2
	default:
		p.errorf(name.Span, "invalid mode %q: must be 'Slice1' or 'Slice2'", name.Text)
	}

	if p.at(lexer.TokenSemi) {
		p.next()
	}
	return mode, true
}
