package parser

import (
	"errors"
	"strings"

	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/diagnostics"
	"github.com/icerpc/slicec-go/internal/lexer"
	"github.com/icerpc/slicec-go/internal/text"
)

var errInvalidLiteral = errors.New("invalid integer literal")

func invalidIntegerDiagnostic(tok lexer.Token) diagnostics.Diagnostic {
	return diagnostics.NewError(
		diagnostics.InvalidIntegerLiteral,
		"'"+tok.Text+"' is not a valid integer literal",
		tok.Span,
	)
}

// parseTypeRef parses a full type-use position: a named type, or `sequence<T>` /
// `dictionary<K, V>`, each optionally followed by `?`. sequence and dictionary are
// anonymous container types with no name to resolve later, so their TypeRef is patched
// immediately here rather than left for internal/compiler's type-reference patcher --
// exactly how PatchTypeRefs (internal/compiler/typerefs.go) expects to find them: it
// still walks into a *ast.Sequence/*ast.Dictionary node's own Element/Key/Value
// references (which may name real types), but skips a ref that's already patched.
func parseTypeRef(p *parser, scope string) *ast.TypeRef[ast.TypeElement] {
	start := p.peek().Span

	switch {
	case p.at(lexer.TokenKwSequence):
		p.next()
		p.expect(lexer.TokenLAngle, "'<'")
		element := parseTypeRef(p, scope)
		p.expect(lexer.TokenRAngle, "'>'")
		span := spanFrom(start.Start, p.peekAt(-1).Span, p.file)

		seq := ast.NewSequence(span, element)
		p.store.AddNode(seq)

		optional := consumeOptionalMarker(p)
		ref := ast.NewTypeRef[ast.TypeElement]("sequence<"+element.Raw+">", optional, scope, span, nil)
		ref.SetDefinition(seq)
		return ref

	case p.at(lexer.TokenKwDictionary):
		p.next()
		p.expect(lexer.TokenLAngle, "'<'")
		key := parseTypeRef(p, scope)
		p.expect(lexer.TokenComma, "','")
		value := parseTypeRef(p, scope)
		p.expect(lexer.TokenRAngle, "'>'")
		span := spanFrom(start.Start, p.peekAt(-1).Span, p.file)

		dict := ast.NewDictionary(span, key, value)
		p.store.AddNode(dict)

		optional := consumeOptionalMarker(p)
		ref := ast.NewTypeRef[ast.TypeElement]("dictionary<"+key.Raw+", "+value.Raw+">", optional, scope, span, nil)
		ref.SetDefinition(dict)
		return ref

	default:
		name, nameSpan := parseQualifiedIdentifier(p)
		optional := consumeOptionalMarker(p)
		span := spanFrom(start.Start, nameSpan, p.file)
		return ast.NewTypeRef[ast.TypeElement](name, optional, scope, span, nil)
	}
}

// parseNamedTypeRef parses a reference that the grammar only ever allows to be a bare
// name -- a class's base clause, an interface's base list, an enum's underlying type --
// where `sequence<...>`/`dictionary<...>` could never legally appear. T is fixed by the
// call site; patching (and rejecting a reference that names the wrong kind of thing) is
// internal/compiler's job, not the parser's.
func parseNamedTypeRef[T ast.TypeElement](p *parser, scope string) *ast.TypeRef[T] {
	start := p.peek().Span
	name, nameSpan := parseQualifiedIdentifier(p)
	span := spanFrom(start.Start, nameSpan, p.file)
	return ast.NewTypeRef[T](name, false, scope, span, nil)
}

// parseQualifiedIdentifier reads a possibly `::`-qualified, possibly absolute
// (leading `::`) type name exactly as written, e.g. "int32", "Foo::Bar", "::Foo::Bar".
func parseQualifiedIdentifier(p *parser) (string, text.Span) {
	var b strings.Builder

	if p.at(lexer.TokenColonColon) {
		b.WriteString("::")
		p.next()
	}

	last := p.peek().Span
	for {
		tok := p.expect(lexer.TokenIdentifier, "identifier")
		last = tok.Span
		b.WriteString(tok.Text)
		if !p.at(lexer.TokenColonColon) {
			break
		}
		p.next()
		b.WriteString("::")
	}
	return b.String(), last
}

func consumeOptionalMarker(p *parser) bool {
	if p.at(lexer.TokenQuestion) {
		p.next()
		return true
	}
	return false
}

// parseTag parses an optional leading `tag(N)` marker on a field or parameter,
// returning nil when absent.
func (p *parser) parseTag() *int32 {
	if !p.at(lexer.TokenKwTag) {
		return nil
	}
	p.next()
	p.expect(lexer.TokenLParen, "'('")
	value := p.parseIntLiteral()
	p.expect(lexer.TokenRParen, "')'")
	v := int32(value)
	return &v
}

// parseIntLiteral parses an integer literal token (decimal or 0x-hex, optionally
// negative), reporting InvalidIntegerLiteral and substituting 0 on overflow or a
// malformed literal, so one bad literal never aborts parsing of the rest of the file.
func (p *parser) parseIntLiteral() int64 {
	tok := p.expect(lexer.TokenIntLiteral, "integer literal")
	v, err := parseInt(tok.Text)
	if err != nil {
		p.diags = append(p.diags, invalidIntegerDiagnostic(tok))
		return 0
	}
	return v
}

func parseInt(text string) (int64, error) {
	neg := false
	s := text
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		s = s[2:]
	}
	var v int64
	for _, r := range s {
		d, ok := digitValue(r, base)
		if !ok {
			return 0, errInvalidLiteral
		}
		if v > (1<<63-1-int64(d))/int64(base) {
			return 0, errInvalidLiteral
		}
		v = v*int64(base) + int64(d)
	}
	if neg {
		v = -v
	}
	return v, nil
}

func digitValue(r rune, base int) (int, bool) {
	var d int
	switch {
	case r >= '0' && r <= '9':
		d = int(r - '0')
	case base == 16 && r >= 'a' && r <= 'f':
		d = int(r-'a') + 10
	case base == 16 && r >= 'A' && r <= 'F':
		d = int(r-'A') + 10
	default:
		return 0, false
	}
	if d >= base {
		return 0, false
	}
	return d, true
}
