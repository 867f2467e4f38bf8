// Package parser builds the template AST from a lexeme sequence in a single
// left-to-right pass with one lexeme of lookahead.
package parser

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-curly/pkg/curlyerr"
	"github.com/goliatone/go-curly/pkg/source"
	"github.com/goliatone/go-curly/pkg/syntax"
)

const noSegment = -1

type parser struct {
	lexemes []syntax.Lexeme
	i       int
	base    source.Position

	nodes   []syntax.Node
	text    strings.Builder
	hasText bool
}

// Parse consumes lexemes and returns the document's nodes. Lexeme positions
// are shifted by baseRow/baseCol when reported; segment-relative positions
// are not.
func Parse(lexemes []syntax.Lexeme, baseRow, baseCol int) ([]syntax.Node, error) {
	p := &parser{
		lexemes: lexemes,
		base:    source.Position{Row: baseRow, Col: baseCol},
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.nodes, nil
}

func (p *parser) parse() error {
	for p.i < len(p.lexemes) {
		lx := p.lexemes[p.i]
		switch lx.Kind {
		case syntax.LexLiteral:
			p.appendText(lx.Text)
			p.i++
		case syntax.LexSeparator:
			// Separators only carry meaning inside a directive.
			p.appendText(string(lx.Sep.Rune()))
			p.i++
		case syntax.LexBackslash, syntax.LexEscaped:
			ch, err := p.escape(noSegment)
			if err != nil {
				return err
			}
			p.flushText()
			p.nodes = append(p.nodes, syntax.Escaped(ch))
		case syntax.LexOpenBrace:
			if next, ok := p.peek(1); ok && next.Kind == syntax.LexOpenBrace {
				p.flushText()
				d, err := p.directive()
				if err != nil {
					return err
				}
				p.nodes = append(p.nodes, d)
				continue
			}
			return p.errorAt(noSegment, p.i, `'{{' or an escaped '\{'`, "a single '{'")
		case syntax.LexCloseBrace:
			return p.errorAt(noSegment, p.i, `an escaped '\}'`, "a single '}'")
		default:
			return curlyerr.Internalf("parser: unknown lexeme kind %d at %s", lx.Kind, lx.Pos.Offset(p.base))
		}
	}
	p.flushText()
	return nil
}

const (
	stageFirst = iota
	stageSpecifier
	stagePostfix
)

func (p *parser) directive() (*syntax.Directive, error) {
	start := p.i
	d := &syntax.Directive{Pos: p.lexemes[start].Pos.Offset(p.base)}
	p.i += 2

	var run strings.Builder
	stage := stageFirst

	for {
		if p.i >= len(p.lexemes) {
			return nil, p.errorAtEnd(start, "'}}'")
		}

		lx := p.lexemes[p.i]
		switch lx.Kind {
		case syntax.LexLiteral:
			run.WriteString(lx.Text)
			p.i++
		case syntax.LexBackslash, syntax.LexEscaped:
			ch, err := p.escape(start)
			if err != nil {
				return nil, err
			}
			run.WriteRune(ch)
		case syntax.LexSeparator:
			switch {
			case lx.Sep == syntax.EndPrefixes && stage == stageFirst:
				d.Prefix, d.HasPrefix = run.String(), true
				stage = stageSpecifier
			case lx.Sep == syntax.BeginPostfixes && stage != stagePostfix:
				d.Specifier = run.String()
				stage = stagePostfix
				d.HasPostfix = true
			case stage == stagePostfix:
				return nil, p.errorAt(start, p.i, "'}}'", lx.Describe())
			default:
				return nil, p.errorAt(start, p.i, "'/' or '}}'", lx.Describe())
			}
			run.Reset()
			p.i++
		case syntax.LexOpenBrace:
			return nil, p.errorAt(start, p.i, "a specifier or '}}'", lx.Describe())
		case syntax.LexCloseBrace:
			next, ok := p.peek(1)
			if !ok {
				p.i++
				return nil, p.errorAtEnd(start, "'}' closing the directive")
			}
			if next.Kind != syntax.LexCloseBrace {
				return nil, p.errorAt(start, p.i+1, "'}' closing the directive", next.Describe())
			}
			if stage == stagePostfix {
				d.Postfix = run.String()
			} else {
				d.Specifier = run.String()
			}
			if !syntax.IsSpecifier(d.Specifier) {
				found := "an empty specifier"
				if d.Specifier != "" {
					found = fmt.Sprintf("%q", d.Specifier)
				}
				return nil, p.errorAt(start, p.i+1, "a specifier matching [A-Za-z0-9_.]+", found)
			}
			p.i += 2
			return d, nil
		default:
			return nil, curlyerr.Internalf("parser: unknown lexeme kind %d at %s", lx.Kind, lx.Pos.Offset(p.base))
		}
	}
}

// escape consumes a backslash and its escaped character, validating the
// target. segStart is the index of the enclosing directive, or noSegment.
func (p *parser) escape(segStart int) (rune, error) {
	if p.lexemes[p.i].Kind == syntax.LexBackslash {
		next, ok := p.peek(1)
		if !ok {
			p.i++
			return 0, p.errorAtEnd(segStart, "an escaped character")
		}
		if next.Kind != syntax.LexEscaped {
			return 0, p.errorAt(segStart, p.i+1, "an escaped character", next.Describe())
		}
		p.i++
	}

	lx := p.lexemes[p.i]
	if !syntax.Escapable(lx.Char) {
		return 0, p.errorAt(segStart, p.i, `one of '\', '{', '}' after '\'`, fmt.Sprintf("%q", lx.Char))
	}
	p.i++
	return lx.Char, nil
}

func (p *parser) peek(n int) (syntax.Lexeme, bool) {
	if p.i+n >= len(p.lexemes) {
		return syntax.Lexeme{}, false
	}
	return p.lexemes[p.i+n], true
}

func (p *parser) appendText(s string) {
	p.text.WriteString(s)
	p.hasText = true
}

func (p *parser) flushText() {
	if !p.hasText {
		return
	}
	p.nodes = append(p.nodes, syntax.Text(p.text.String()))
	p.text.Reset()
	p.hasText = false
}

// errorAt reports the lexeme at index at. The segment spans from segStart (or
// the escape sequence / lexeme itself when outside a directive) through at.
func (p *parser) errorAt(segStart, at int, expected, found string) error {
	from := segStart
	if from == noSegment {
		from = at
		if at > 0 && p.lexemes[at-1].Kind == syntax.LexBackslash && p.lexemes[at].Kind == syntax.LexEscaped {
			from = at - 1
		}
	}
	pos := p.lexemes[at].Pos
	return curlyerr.NewSyntax(
		expected,
		found,
		pos.Offset(p.base),
		p.segmentText(from, at+1),
		relative(pos, p.lexemes[from].Pos),
	)
}

// errorAtEnd reports end of input after the last lexeme.
func (p *parser) errorAtEnd(segStart int, expected string) error {
	last := len(p.lexemes) - 1
	from := segStart
	if from == noSegment {
		from = last
	}
	pos := endOf(p.lexemes[last])
	return curlyerr.NewSyntax(
		expected,
		"end of input",
		pos.Offset(p.base),
		p.segmentText(from, last+1),
		relative(pos, p.lexemes[from].Pos),
	)
}

func (p *parser) segmentText(from, to int) string {
	var b strings.Builder
	for _, lx := range p.lexemes[from:to] {
		b.WriteString(lx.Source())
	}
	return b.String()
}

func relative(pos, start source.Position) source.Position {
	if pos.Row == start.Row {
		return source.Position{Col: pos.Col - start.Col}
	}
	return source.Position{Row: pos.Row - start.Row, Col: pos.Col}
}

// endOf returns the position just past lx.
func endOf(lx syntax.Lexeme) source.Position {
	pos := lx.Pos
	for _, r := range lx.Source() {
		if r == '\n' {
			pos.Row++
			pos.Col = 0
			continue
		}
		pos.Col++
	}
	return pos
}
