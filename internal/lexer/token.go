// Package lexer provides a lossless token/trivia lexer for Slice IDL source.
//
// This is the "concrete grammar/lexer" external collaborator described by the core
// semantic analyzer: it consumes source text and produces the token stream the
// parser drives, but it carries no knowledge of modules, types, or modes.
package lexer

import (
	"fmt"

	"github.com/icerpc/slicec-go/internal/text"
)

// TokenKind identifies the syntactic category of a token.
type TokenKind uint16

// TokenKind values used by the Slice lexer.
const (
	TokenError TokenKind = iota
	TokenEOF
	TokenIdentifier
	TokenIntLiteral
	TokenStringLiteral

	TokenKwModule
	TokenKwStruct
	TokenKwClass
	TokenKwException
	TokenKwInterface
	TokenKwEnum
	TokenKwTypealias
	TokenKwCustom
	TokenKwSequence
	TokenKwDictionary
	TokenKwCompact
	TokenKwUnchecked
	TokenKwTag
	TokenKwStream
	TokenKwIdempotent
	TokenKwThrows
	TokenKwMode
	TokenKwOf

	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenLAngle
	TokenRAngle
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenSemi
	TokenColon
	TokenColonColon
	TokenEqual
	TokenQuestion
	TokenMinus
)

func (k TokenKind) String() string {
	switch k {
	case TokenError:
		return "Error"
	case TokenEOF:
		return "EOF"
	case TokenIdentifier:
		return "Identifier"
	case TokenIntLiteral:
		return "IntLiteral"
	case TokenStringLiteral:
		return "StringLiteral"
	case TokenKwModule:
		return "KwModule"
	case TokenKwStruct:
		return "KwStruct"
	case TokenKwClass:
		return "KwClass"
	case TokenKwException:
		return "KwException"
	case TokenKwInterface:
		return "KwInterface"
	case TokenKwEnum:
		return "KwEnum"
	case TokenKwTypealias:
		return "KwTypealias"
	case TokenKwCustom:
		return "KwCustom"
	case TokenKwSequence:
		return "KwSequence"
	case TokenKwDictionary:
		return "KwDictionary"
	case TokenKwCompact:
		return "KwCompact"
	case TokenKwUnchecked:
		return "KwUnchecked"
	case TokenKwTag:
		return "KwTag"
	case TokenKwStream:
		return "KwStream"
	case TokenKwIdempotent:
		return "KwIdempotent"
	case TokenKwThrows:
		return "KwThrows"
	case TokenKwMode:
		return "KwMode"
	case TokenKwOf:
		return "KwOf"
	case TokenLBrace:
		return "LBrace"
	case TokenRBrace:
		return "RBrace"
	case TokenLParen:
		return "LParen"
	case TokenRParen:
		return "RParen"
	case TokenLAngle:
		return "LAngle"
	case TokenRAngle:
		return "RAngle"
	case TokenLBracket:
		return "LBracket"
	case TokenRBracket:
		return "RBracket"
	case TokenComma:
		return "Comma"
	case TokenSemi:
		return "Semi"
	case TokenColon:
		return "Colon"
	case TokenColonColon:
		return "ColonColon"
	case TokenEqual:
		return "Equal"
	case TokenQuestion:
		return "Question"
	case TokenMinus:
		return "Minus"
	default:
		return fmt.Sprintf("TokenKind(%d)", k)
	}
}

// TokenFlags carry metadata about the token source or origin.
type TokenFlags uint8

const (
	TokenFlagMalformed TokenFlags = 1 << iota
)

// Has reports whether all bits in mask are set.
func (f TokenFlags) Has(mask TokenFlags) bool {
	return f&mask == mask
}

// Token is a lexed token with a source span and leading trivia.
type Token struct {
	Kind    TokenKind
	Span    text.Span
	Text    string
	Leading []Trivia
	Flags   TokenFlags
}

var keywordKinds = map[string]TokenKind{
	"module":      TokenKwModule,
	"struct":      TokenKwStruct,
	"class":       TokenKwClass,
	"exception":   TokenKwException,
	"interface":   TokenKwInterface,
	"enum":        TokenKwEnum,
	"typealias":   TokenKwTypealias,
	"custom":      TokenKwCustom,
	"sequence":    TokenKwSequence,
	"dictionary":  TokenKwDictionary,
	"compact":     TokenKwCompact,
	"unchecked":   TokenKwUnchecked,
	"tag":         TokenKwTag,
	"stream":      TokenKwStream,
	"idempotent":  TokenKwIdempotent,
	"throws":      TokenKwThrows,
	"mode":        TokenKwMode,
	"of":          TokenKwOf,
}
