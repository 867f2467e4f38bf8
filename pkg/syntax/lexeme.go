// Package syntax holds the data model shared by the lexer and parser: lexemes
// produced from raw template text and the AST nodes built from them.
package syntax

import (
	"fmt"

	"github.com/goliatone/go-curly/pkg/source"
)

// LexemeKind tags a Lexeme.
type LexemeKind uint8

const (
	LexLiteral LexemeKind = iota + 1
	LexBackslash
	LexEscaped
	LexOpenBrace
	LexCloseBrace
	LexSeparator
)

// String returns the lexeme kind name.
func (k LexemeKind) String() string {
	switch k {
	case LexLiteral:
		return "LITERAL"
	case LexBackslash:
		return "BACKSLASH"
	case LexEscaped:
		return "ESCAPED"
	case LexOpenBrace:
		return "{"
	case LexCloseBrace:
		return "}"
	case LexSeparator:
		return "SEPARATOR"
	default:
		return "UNKNOWN"
	}
}

// Separator distinguishes the two directive separators.
type Separator uint8

const (
	// EndPrefixes is ':' and closes the prefix run.
	EndPrefixes Separator = iota + 1
	// BeginPostfixes is '/' and opens the postfix run.
	BeginPostfixes
)

// Rune returns the source character of the separator.
func (s Separator) Rune() rune {
	if s == BeginPostfixes {
		return '/'
	}
	return ':'
}

// Lexeme is a minimal token. Text is set for literals, Char for escaped
// characters and Sep for separators.
type Lexeme struct {
	Kind LexemeKind
	Text string
	Char rune
	Sep  Separator
	Pos  source.Position
}

// Source returns the template text the lexeme was produced from.
func (l Lexeme) Source() string {
	switch l.Kind {
	case LexLiteral:
		return l.Text
	case LexBackslash:
		return `\`
	case LexEscaped:
		return string(l.Char)
	case LexOpenBrace:
		return "{"
	case LexCloseBrace:
		return "}"
	case LexSeparator:
		return string(l.Sep.Rune())
	default:
		return ""
	}
}

// Describe returns a short human-readable description used in diagnostics.
func (l Lexeme) Describe() string {
	switch l.Kind {
	case LexLiteral:
		return fmt.Sprintf("%q", l.Text)
	case LexEscaped:
		return fmt.Sprintf("escaped %q", l.Char)
	default:
		return fmt.Sprintf("'%s'", l.Source())
	}
}

// String returns a debugging representation.
func (l Lexeme) String() string {
	switch l.Kind {
	case LexLiteral:
		return fmt.Sprintf("%s(%q) @ %s", l.Kind, l.Text, l.Pos)
	case LexEscaped:
		return fmt.Sprintf("%s(%q) @ %s", l.Kind, l.Char, l.Pos)
	case LexSeparator:
		return fmt.Sprintf("%s(%c) @ %s", l.Kind, l.Sep.Rune(), l.Pos)
	default:
		return fmt.Sprintf("%s @ %s", l.Kind, l.Pos)
	}
}

// Literal builds a literal lexeme.
func Literal(text string, pos source.Position) Lexeme {
	return Lexeme{Kind: LexLiteral, Text: text, Pos: pos}
}

// Backslash builds a backslash lexeme.
func Backslash(pos source.Position) Lexeme {
	return Lexeme{Kind: LexBackslash, Pos: pos}
}

// EscapedChar builds an escaped character lexeme.
func EscapedChar(ch rune, pos source.Position) Lexeme {
	return Lexeme{Kind: LexEscaped, Char: ch, Pos: pos}
}

// OpenBrace builds a '{' lexeme.
func OpenBrace(pos source.Position) Lexeme {
	return Lexeme{Kind: LexOpenBrace, Pos: pos}
}

// CloseBrace builds a '}' lexeme.
func CloseBrace(pos source.Position) Lexeme {
	return Lexeme{Kind: LexCloseBrace, Pos: pos}
}

// Sep builds a separator lexeme.
func Sep(sep Separator, pos source.Position) Lexeme {
	return Lexeme{Kind: LexSeparator, Sep: sep, Pos: pos}
}
