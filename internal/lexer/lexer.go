// Package lexer turns an indexed template into an ordered lexeme sequence.
// It is context free: escape targets are validated later by the parser.
package lexer

import (
	"strings"

	"github.com/goliatone/go-curly/pkg/curlyerr"
	"github.com/goliatone/go-curly/pkg/source"
	"github.com/goliatone/go-curly/pkg/syntax"
)

type lexer struct {
	base source.Position
	out  []syntax.Lexeme

	buf      strings.Builder
	bufStart source.Position
	buffered bool

	escapePending bool
}

// Lex scans grid rows top to bottom, columns left to right. baseRow and
// baseCol offset every reported position so a template embedded in a larger
// document reports document coordinates.
func Lex(grid *source.Grid, baseRow, baseCol int) ([]syntax.Lexeme, error) {
	l := &lexer{base: source.Position{Row: baseRow, Col: baseCol}}

	rows := grid.Rows()
	for row := 0; row < rows; row++ {
		runes := grid.RowRunes(row)
		for col, ch := range runes {
			l.consume(ch, source.Position{Row: row, Col: col})
		}
		if row < rows-1 || grid.TrailingNewline() {
			l.consume('\n', source.Position{Row: row, Col: len(runes)})
		}
	}

	if l.escapePending {
		end := grid.End()
		line, _ := grid.Row(end.Row)
		return nil, curlyerr.NewSyntax(
			"an escaped character",
			"end of input",
			end.Offset(l.base),
			line,
			source.Position{Col: end.Col},
		)
	}

	l.flush()
	return l.out, nil
}

func (l *lexer) consume(ch rune, local source.Position) {
	pos := local.Offset(l.base)

	if l.escapePending {
		l.escapePending = false
		l.out = append(l.out, syntax.EscapedChar(ch, pos))
		return
	}

	switch ch {
	case '\\':
		l.flush()
		l.escapePending = true
		l.out = append(l.out, syntax.Backslash(pos))
	case '{':
		l.flush()
		l.out = append(l.out, syntax.OpenBrace(pos))
	case '}':
		l.flush()
		l.out = append(l.out, syntax.CloseBrace(pos))
	case ':':
		l.flush()
		l.out = append(l.out, syntax.Sep(syntax.EndPrefixes, pos))
	case '/':
		l.flush()
		l.out = append(l.out, syntax.Sep(syntax.BeginPostfixes, pos))
	default:
		if !l.buffered {
			l.bufStart = pos
			l.buffered = true
		}
		l.buf.WriteRune(ch)
	}
}

func (l *lexer) flush() {
	if !l.buffered {
		return
	}
	l.out = append(l.out, syntax.Literal(l.buf.String(), l.bufStart))
	l.buf.Reset()
	l.buffered = false
}

// String lexes input directly, building the grid internally.
func String(input string) ([]syntax.Lexeme, error) {
	return Lex(source.NewGrid(input), 0, 0)
}
