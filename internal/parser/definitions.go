package parser

import (
	"github.com/icerpc/slicec-go/internal/ast"
	"github.com/icerpc/slicec-go/internal/compiler"
	"github.com/icerpc/slicec-go/internal/lexer"
)

// parseCompilationUnit parses one file's full grammar: an optional file-level attribute
// block, an optional mode directive, then one or more top-level module declarations.
// Every file has a declared-or-defaulted CompilationMode; the mode directive here is what
// fills in the declared half of that.
func (p *parser) parseCompilationUnit() *compiler.File {
	fileAttrs := p.parseFileAttributes()
	mode, explicit := p.parseModeDirective()

	cf := &compiler.File{Name: p.file, Mode: mode, HasExplicitMode: explicit, Attributes: fileAttrs}

	for !p.atEOF() {
		if !p.at(lexer.TokenLBracket) && !p.at(lexer.TokenKwModule) && docTrivia(p.peek()) == nil {
			// A stray token at file scope, outside any module: report and recover by
			// skipping ahead to the next plausible module start instead of looping
			// forever on the same token.
			p.errorf(p.peek().Span, "expected 'module', found %q", p.peek().Text)
			p.skipTo(lexer.TokenKwModule, lexer.TokenEOF)
			if p.atEOF() {
				break
			}
		}
		// parseModule already registers every level of the (possibly dotted) module it
		// builds with the store, including the outermost one returned here.
		p.parseModule("::", true)
	}

	return cf
}

// parseFileAttributes consumes zero or more `[[directive(...)]]` file-level attribute
// groups (double brackets), distinguishing them from the single-bracket `[directive]`
// attributes that attach to the very next definition.
func (p *parser) parseFileAttributes() []ast.Attribute {
	var out []ast.Attribute
	for p.at(lexer.TokenLBracket) && p.peekAt(1).Kind == lexer.TokenLBracket {
		p.next()
		p.next()
		out = append(out, p.parseOneAttribute())
		for p.at(lexer.TokenComma) {
			p.next()
			out = append(out, p.parseOneAttribute())
		}
		p.expect(lexer.TokenRBracket, "']'")
		p.expect(lexer.TokenRBracket, "']'")
	}
	return out
}

func docTrivia(tok lexer.Token) []lexer.Trivia {
	for _, t := range tok.Leading {
		if t.Kind == lexer.TriviaDocComment {
			return tok.Leading
		}
	}
	return nil
}

// parseModule parses `module Identifier { ... }` or, when allowFileScoped is set and no
// `{` follows, the brace-less `module Identifier` form that extends to the end of the
// file. A dotted identifier (`module A::B::C { ... }`) is sugar for nesting: it builds
// the innermost module first (holding the actual contents) and wraps it in a module per
// remaining segment, grounded on original_source's construct_module, which does the same
// rsplit-and-wrap to support reopened nested modules.
func (p *parser) parseModule(scope string, allowFileScoped bool) *ast.Module {
	start := p.peek().Span
	doc := p.collectLeadingDocComment()
	attrs := p.parseAttributes()

	p.expect(lexer.TokenKwModule, "'module'")
	segments := p.parseDottedIdentifierSegments()
	if len(segments) == 0 {
		return nil
	}

	fileScoped := false
	var contents []ast.Entity
	innerScope := joinScope(scope, segments...)

	if allowFileScoped && !p.at(lexer.TokenLBrace) {
		fileScoped = true
		if p.at(lexer.TokenSemi) {
			p.next()
		}
		contents = p.parseDefinitionsUntil(innerScope, lexer.TokenEOF)
	} else {
		p.expect(lexer.TokenLBrace, "'{'")
		contents = p.parseDefinitionsUntil(innerScope, lexer.TokenRBrace)
		p.expect(lexer.TokenRBrace, "'}'")
	}

	span := spanFrom(start.Start, p.peekAt(-1).Span, p.file)
	innermostScope := joinScope(scope, segments[:len(segments)-1]...)
	current := ast.NewModule(segments[len(segments)-1], innermostScope, span, attrs, doc, contents)
	current.SetFileScoped(fileScoped)
	p.store.AddEntity(current)

	for i := len(segments) - 2; i >= 0; i-- {
		wrapScope := joinScope(scope, segments[:i]...)
		wrapper := ast.NewModule(segments[i], wrapScope, span, nil, nil, []ast.Entity{current})
		p.store.AddEntity(wrapper)
		current = wrapper
	}

	return current
}

// parseDottedIdentifierSegments reads `A::B::C` as its component identifiers.
func (p *parser) parseDottedIdentifierSegments() []string {
	var segments []string
	tok := p.expect(lexer.TokenIdentifier, "module name")
	if tok.Kind != lexer.TokenIdentifier {
		return nil
	}
	segments = append(segments, tok.Text)
	for p.at(lexer.TokenColonColon) {
		p.next()
		segments = append(segments, p.expect(lexer.TokenIdentifier, "identifier").Text)
	}
	return segments
}

// joinScope appends segments onto base the way ast.ScopedIdentifier expects: "::" plus a
// name when base is the root scope, "base::name" otherwise.
func joinScope(base string, segments ...string) string {
	s := base
	for _, seg := range segments {
		if s == "::" {
			s = "::" + seg
		} else {
			s = s + "::" + seg
		}
	}
	return s
}

// parseDefinitionsUntil parses zero or more definitions at scope until the current token
// is stop (RBrace for a braced module, EOF for a file-scoped one).
func (p *parser) parseDefinitionsUntil(scope string, stop lexer.TokenKind) []ast.Entity {
	var out []ast.Entity
	for !p.at(stop) && !p.atEOF() {
		before := p.pos
		e := p.parseDefinition(scope)
		if e != nil {
			out = append(out, e)
		}
		if p.pos == before {
			// No progress was made (an unrecognized token at definition position);
			// recover by skipping it so the rest of the module still parses.
			p.errorf(p.peek().Span, "expected a definition, found %q", p.peek().Text)
			p.next()
		}
	}
	return out
}

// parseDefinition dispatches on the next significant keyword to one of the eight
// definition kinds a module may contain.
func (p *parser) parseDefinition(scope string) ast.Entity {
	doc := p.collectLeadingDocComment()
	attrs := p.parseAttributes()

	switch {
	case p.at(lexer.TokenKwModule):
		return p.parseModule(scope, false)
	case p.at(lexer.TokenKwCompact), p.at(lexer.TokenKwStruct):
		return p.parseStruct(scope, attrs, doc)
	case p.at(lexer.TokenKwClass):
		return p.parseClass(scope, attrs, doc)
	case p.at(lexer.TokenKwException):
		return p.parseException(scope, attrs, doc)
	case p.at(lexer.TokenKwInterface):
		return p.parseInterface(scope, attrs, doc)
	case p.at(lexer.TokenKwUnchecked), p.at(lexer.TokenKwEnum):
		return p.parseEnum(scope, attrs, doc)
	case p.at(lexer.TokenKwTypealias):
		return p.parseTypeAlias(scope, attrs, doc)
	case p.at(lexer.TokenKwCustom):
		return p.parseCustomType(scope, attrs, doc)
	default:
		return nil
	}
}

func (p *parser) parseStruct(scope string, attrs []ast.Attribute, doc *ast.DocComment) ast.Entity {
	start := p.peek().Span
	isCompact := false
	if p.at(lexer.TokenKwCompact) {
		isCompact = true
		p.next()
	}
	p.expect(lexer.TokenKwStruct, "'struct'")
	name := p.expect(lexer.TokenIdentifier, "struct name").Text

	p.expect(lexer.TokenLBrace, "'{'")
	memberScope := joinScope(scope, name)
	fields := p.parseFieldList(memberScope)
	p.expect(lexer.TokenRBrace, "'}'")

	span := spanFrom(start.Start, p.peekAt(-1).Span, p.file)
	s := ast.NewStruct(name, scope, span, attrs, doc, isCompact, fields)
	p.store.AddEntity(s)
	return s
}

func (p *parser) parseClass(scope string, attrs []ast.Attribute, doc *ast.DocComment) ast.Entity {
	start := p.peek().Span
	p.expect(lexer.TokenKwClass, "'class'")
	name := p.expect(lexer.TokenIdentifier, "class name").Text

	var compactID *int32
	if p.at(lexer.TokenLParen) {
		p.next()
		v := int32(p.parseIntLiteral())
		compactID = &v
		p.expect(lexer.TokenRParen, "')'")
	}

	var base *ast.TypeRef[*ast.Class]
	if p.at(lexer.TokenColon) {
		p.next()
		base = parseNamedTypeRef[*ast.Class](p, scope)
	}

	p.expect(lexer.TokenLBrace, "'{'")
	memberScope := joinScope(scope, name)
	fields := p.parseFieldList(memberScope)
	p.expect(lexer.TokenRBrace, "'}'")

	span := spanFrom(start.Start, p.peekAt(-1).Span, p.file)
	c := ast.NewClass(name, scope, span, attrs, doc, base, fields)
	c.SetCompactID(compactID)
	p.store.AddEntity(c)
	return c
}

func (p *parser) parseException(scope string, attrs []ast.Attribute, doc *ast.DocComment) ast.Entity {
	start := p.peek().Span
	p.expect(lexer.TokenKwException, "'exception'")
	name := p.expect(lexer.TokenIdentifier, "exception name").Text

	var base *ast.TypeRef[*ast.Exception]
	if p.at(lexer.TokenColon) {
		p.next()
		base = parseNamedTypeRef[*ast.Exception](p, scope)
	}

	p.expect(lexer.TokenLBrace, "'{'")
	memberScope := joinScope(scope, name)
	fields := p.parseFieldList(memberScope)
	p.expect(lexer.TokenRBrace, "'}'")

	span := spanFrom(start.Start, p.peekAt(-1).Span, p.file)
	e := ast.NewException(name, scope, span, attrs, doc, base, fields)
	p.store.AddEntity(e)
	return e
}

// parseFieldList parses a comma-separated list of `tag? identifier: Type` members,
// shared by struct, class, and exception bodies.
func (p *parser) parseFieldList(scope string) []*ast.Field {
	var out []*ast.Field
	for !p.at(lexer.TokenRBrace) && !p.atEOF() {
		start := p.peek().Span
		doc := p.collectLeadingDocComment()
		attrs := p.parseAttributes()
		tag := p.parseTag()
		name := p.expect(lexer.TokenIdentifier, "field name").Text
		p.expect(lexer.TokenColon, "':'")
		dataType := parseTypeRef(p, scope)

		span := spanFrom(start.Start, p.peekAt(-1).Span, p.file)
		f := ast.NewField(name, scope, span, attrs, doc, dataType, tag)
		p.store.AddEntity(f)
		out = append(out, f)

		if p.at(lexer.TokenComma) {
			p.next()
			continue
		}
		break
	}
	return out
}

func (p *parser) parseInterface(scope string, attrs []ast.Attribute, doc *ast.DocComment) ast.Entity {
	start := p.peek().Span
	p.expect(lexer.TokenKwInterface, "'interface'")
	name := p.expect(lexer.TokenIdentifier, "interface name").Text

	var bases []*ast.TypeRef[*ast.Interface]
	if p.at(lexer.TokenColon) {
		p.next()
		bases = append(bases, parseNamedTypeRef[*ast.Interface](p, scope))
		for p.at(lexer.TokenComma) {
			p.next()
			bases = append(bases, parseNamedTypeRef[*ast.Interface](p, scope))
		}
	}

	p.expect(lexer.TokenLBrace, "'{'")
	memberScope := joinScope(scope, name)
	var ops []*ast.Operation
	for !p.at(lexer.TokenRBrace) && !p.atEOF() {
		ops = append(ops, p.parseOperation(memberScope))
	}
	p.expect(lexer.TokenRBrace, "'}'")

	span := spanFrom(start.Start, p.peekAt(-1).Span, p.file)
	i := ast.NewInterface(name, scope, span, attrs, doc, bases, ops)
	p.store.AddEntity(i)
	return i
}

func (p *parser) parseOperation(scope string) *ast.Operation {
	start := p.peek().Span
	doc := p.collectLeadingDocComment()
	attrs := p.parseAttributes()

	isIdempotent := false
	if p.at(lexer.TokenKwIdempotent) {
		isIdempotent = true
		p.next()
	}

	name := p.expect(lexer.TokenIdentifier, "operation name").Text
	paramScope := joinScope(scope, name)

	p.expect(lexer.TokenLParen, "'('")
	params := p.parseParameterList(paramScope)
	p.expect(lexer.TokenRParen, "')'")

	var returnType []*ast.Parameter
	if p.at(lexer.TokenMinus) && p.peekAt(1).Kind == lexer.TokenRAngle {
		p.next()
		p.next()
		returnType = p.parseReturnType(paramScope)
	}

	throws := ast.ThrowsNothing
	var throwsSpecific *ast.TypeRef[*ast.Exception]
	if p.at(lexer.TokenKwThrows) {
		p.next()
		if p.at(lexer.TokenIdentifier) && p.peek().Text == "AnyException" {
			p.next()
			throws = ast.ThrowsAnyException
		} else {
			throws = ast.ThrowsSpecific
			throwsSpecific = parseNamedTypeRef[*ast.Exception](p, scope)
		}
	}

	if p.at(lexer.TokenSemi) {
		p.next()
	}

	span := spanFrom(start.Start, p.peekAt(-1).Span, p.file)
	op := ast.NewOperation(name, scope, span, attrs, doc, params, returnType, throws, throwsSpecific, isIdempotent)
	p.store.AddEntity(op)
	return op
}

func (p *parser) parseParameterList(scope string) []*ast.Parameter {
	var out []*ast.Parameter
	for !p.at(lexer.TokenRParen) && !p.atEOF() {
		out = append(out, p.parseParameter(scope))
		if p.at(lexer.TokenComma) {
			p.next()
			continue
		}
		break
	}
	return out
}

func (p *parser) parseParameter(scope string) *ast.Parameter {
	start := p.peek().Span
	attrs := p.parseAttributes()

	isStreamed := false
	if p.at(lexer.TokenKwStream) {
		isStreamed = true
		p.next()
	}
	tag := p.parseTag()

	name := p.expect(lexer.TokenIdentifier, "parameter name").Text
	p.expect(lexer.TokenColon, "':'")
	dataType := parseTypeRef(p, scope)

	span := spanFrom(start.Start, p.peekAt(-1).Span, p.file)
	param := ast.NewParameter(name, scope, span, attrs, nil, dataType, tag, isStreamed)
	p.store.AddEntity(param)
	return param
}

// parseReturnType parses an operation's return clause: either a single bare type (an
// unnamed out-parameter, identifier "") or a parenthesized tuple of named out-parameters.
func (p *parser) parseReturnType(scope string) []*ast.Parameter {
	if !p.at(lexer.TokenLParen) {
		start := p.peek().Span
		dataType := parseTypeRef(p, scope)
		span := spanFrom(start.Start, p.peekAt(-1).Span, p.file)
		param := ast.NewParameter("", scope, span, nil, nil, dataType, nil, false)
		p.store.AddEntity(param)
		return []*ast.Parameter{param}
	}

	p.next()
	out := p.parseParameterList(scope)
	p.expect(lexer.TokenRParen, "')'")
	return out
}

func (p *parser) parseEnum(scope string, attrs []ast.Attribute, doc *ast.DocComment) ast.Entity {
	start := p.peek().Span
	isUnchecked := false
	if p.at(lexer.TokenKwUnchecked) {
		isUnchecked = true
		p.next()
	}
	p.expect(lexer.TokenKwEnum, "'enum'")
	name := p.expect(lexer.TokenIdentifier, "enum name").Text

	var underlying *ast.TypeRef[*ast.Primitive]
	if p.at(lexer.TokenColon) {
		p.next()
		underlying = parseNamedTypeRef[*ast.Primitive](p, scope)
	}

	p.expect(lexer.TokenLBrace, "'{'")
	memberScope := joinScope(scope, name)
	enumerators := p.parseEnumeratorList(memberScope)
	p.expect(lexer.TokenRBrace, "'}'")

	span := spanFrom(start.Start, p.peekAt(-1).Span, p.file)
	e := ast.NewEnum(name, scope, span, attrs, doc, isUnchecked, underlying, enumerators)
	p.store.AddEntity(e)
	return e
}

func (p *parser) parseEnumeratorList(scope string) []*ast.Enumerator {
	var out []*ast.Enumerator
	nextValue := int64(0)
	for !p.at(lexer.TokenRBrace) && !p.atEOF() {
		start := p.peek().Span
		doc := p.collectLeadingDocComment()
		attrs := p.parseAttributes()
		name := p.expect(lexer.TokenIdentifier, "enumerator name").Text

		value := nextValue
		hasExplicit := false
		if p.at(lexer.TokenEqual) {
			p.next()
			hasExplicit = true
			value = p.parseIntLiteral()
		}
		nextValue = value + 1

		span := spanFrom(start.Start, p.peekAt(-1).Span, p.file)
		e := ast.NewEnumerator(name, scope, span, attrs, doc, value, hasExplicit)
		p.store.AddEntity(e)
		out = append(out, e)

		if p.at(lexer.TokenComma) {
			p.next()
			continue
		}
		break
	}
	return out
}

func (p *parser) parseTypeAlias(scope string, attrs []ast.Attribute, doc *ast.DocComment) ast.Entity {
	start := p.peek().Span
	p.expect(lexer.TokenKwTypealias, "'typealias'")
	name := p.expect(lexer.TokenIdentifier, "type alias name").Text
	p.expect(lexer.TokenEqual, "'='")
	underlying := parseTypeRef(p, scope)
	if p.at(lexer.TokenSemi) {
		p.next()
	}

	span := spanFrom(start.Start, p.peekAt(-1).Span, p.file)
	t := ast.NewTypeAlias(name, scope, span, attrs, doc, underlying)
	p.store.AddEntity(t)
	return t
}

func (p *parser) parseCustomType(scope string, attrs []ast.Attribute, doc *ast.DocComment) ast.Entity {
	start := p.peek().Span
	p.expect(lexer.TokenKwCustom, "'custom'")
	name := p.expect(lexer.TokenIdentifier, "custom type name").Text
	if p.at(lexer.TokenSemi) {
		p.next()
	}

	span := spanFrom(start.Start, p.peekAt(-1).Span, p.file)
	c := ast.NewCustomType(name, scope, span, attrs, doc)
	p.store.AddEntity(c)
	return c
}
