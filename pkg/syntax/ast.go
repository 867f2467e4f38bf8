package syntax

import (
	"strings"

	"github.com/goliatone/go-curly/pkg/source"
)

// Node is one element of a parsed template: Text, Escaped or *Directive.
// Nodes are immutable after parsing.
type Node interface {
	node()
}

// Text is a run of literal template text.
type Text string

// Escaped is a character written with a leading backslash.
type Escaped rune

// Directive is a `{{prefix:specifier/postfix}}` block. HasPrefix and
// HasPostfix distinguish an absent run from an empty one.
type Directive struct {
	Prefix     string
	HasPrefix  bool
	Specifier  string
	Postfix    string
	HasPostfix bool
	Pos        source.Position
}

func (Text) node()       {}
func (Escaped) node()    {}
func (*Directive) node() {}

// Segment reconstructs the directive as template text, re-escaping any
// character the lexer would otherwise treat as structure.
func (d *Directive) Segment() string {
	return BuildSegment(d.Prefix, d.HasPrefix, d.Specifier, d.Postfix, d.HasPostfix)
}

// BuildSegment assembles `{{prefix:specifier/postfix}}` text.
func BuildSegment(prefix string, hasPrefix bool, specifier, postfix string, hasPostfix bool) string {
	var b strings.Builder
	b.WriteString("{{")
	if hasPrefix {
		b.WriteString(EscapeRun(prefix))
		b.WriteByte(':')
	}
	b.WriteString(EscapeRun(specifier))
	if hasPostfix {
		b.WriteByte('/')
		b.WriteString(EscapeRun(postfix))
	}
	b.WriteString("}}")
	return b.String()
}

// EscapeRun escapes backslashes and braces in directive run text.
func EscapeRun(s string) string {
	if !strings.ContainsAny(s, `\{}`) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r == '\\' || r == '{' || r == '}' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Escapable reports whether ch may legally follow a backslash.
func Escapable(ch rune) bool {
	return ch == '\\' || ch == '{' || ch == '}'
}

// IsSpecifier reports whether s is a non-empty run of [A-Za-z0-9_.].
func IsSpecifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

// Directives returns the directive nodes of nodes in document order.
func Directives(nodes []Node) []*Directive {
	var out []*Directive
	for _, n := range nodes {
		if d, ok := n.(*Directive); ok {
			out = append(out, d)
		}
	}
	return out
}
