// Package parser is the concrete grammar the core semantic analyzer treats as an
// external collaborator: it drives internal/lexer's token stream and builds a populated
// ast.Store the compiler package's patchers then run over. It knows nothing about type
// resolution, containment, or mode compatibility; it only has to produce a
// syntactically faithful, unpatched AST plus the handful of diagnostics the grammar
// itself can catch (malformed integer literals, unexpected tokens).
package parser

import (
	"fmt"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/compiler"
	"github.com/icerpc/slicec-go/internal/diagnostics"
	"github.com/icerpc/slicec-go/internal/lexer"
	"github.com/icerpc/slicec-go/internal/text"
)

// ParseFile lexes and parses a single file's source into store, registering every
// definition it contains, and returns the compiler.File record (mode, file-level
// attributes) the pipeline needs alongside whatever diagnostics the grammar itself
// rejected. Named types are not resolved here; that's internal/compiler's job once
// every file in a compilation has been parsed into the same store.
func ParseFile(store *ast.Store, file string, src []byte) (*compiler.File, []diagnostics.Diagnostic) {
	lexed := lexer.Lex(file, src)

	p := &parser{store: store, file: file, tokens: lexed.Tokens}
	for _, d := range lexed.Diagnostics {
		p.diags = append(p.diags, diagnostics.NewError(diagnostics.CodeSyntax, d.Message, d.Span))
	}

	cf := p.parseCompilationUnit()
	return cf, p.diags
}

// parser walks a single file's token stream left to right. It never backtracks more
// than one token (peek), matching the grammar's LL(1)-with-doc-comment-lookahead shape.
type parser struct {
	store  *ast.Store
	file   string
	tokens []lexer.Token
	pos    int
	diags  []diagnostics.Diagnostic
}

func (p *parser) peek() lexer.Token { return p.tokens[p.pos] }
func (p *parser) peekAt(delta int) lexer.Token {
	i := p.pos + delta
	if i < 0 {
		return p.tokens[0]
	}
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *parser) next() lexer.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) at(kind lexer.TokenKind) bool { return p.peek().Kind == kind }

func (p *parser) atEOF() bool { return p.peek().Kind == lexer.TokenEOF }

// expect consumes the current token if it matches kind, reporting a syntax error and
// returning a zero Token (without advancing past EOF) otherwise.
func (p *parser) expect(kind lexer.TokenKind, what string) lexer.Token {
	if p.at(kind) {
		return p.next()
	}
	p.errorf(p.peek().Span, "expected %s, found %q", what, p.peek().Text)
	return p.peek()
}

func (p *parser) errorf(span text.Span, format string, args ...any) {
	p.diags = append(p.diags, diagnostics.NewError(diagnostics.CodeSyntax, fmt.Sprintf(format, args...), span))
}

// skipTo advances past tokens until one of kinds (or EOF) is the current token, used to
// recover from a malformed definition so the rest of the file still parses.
func (p *parser) skipTo(kinds ...lexer.TokenKind) {
	for !p.atEOF() {
		cur := p.peek().Kind
		for _, k := range kinds {
			if cur == k {
				return
			}
		}
		p.next()
	}
}

func spanFrom(start text.Position, end text.Span, file string) text.Span {
	return text.Span{File: file, Start: start, End: end.End}
}
