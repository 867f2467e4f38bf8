// Package format compiles directive prefix/postfix text into a formatting
// Context and renders values under it.
//
// A prefix is scanned left to right into pre-flags (alignment, width,
// precision, sign, alternate, zero padding, debug, numeral type) with any
// unrecognised character passed through as a custom flag for the value's own
// formatter. A postfix is scanned into post-flags that reshape the already
// rendered string: padding, or one case transform.
//
// Values plug in by implementing Displayer and Debugger. Built-in scalar,
// text and byte types are handled by Value directly.
package format

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-curly/pkg/syntax"
)

// Align is a horizontal alignment.
type Align uint8

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Align) rune() rune {
	switch a {
	case AlignLeft:
		return '<'
	case AlignCenter:
		return '^'
	case AlignRight:
		return '>'
	default:
		return 0
	}
}

func alignOf(r rune) (Align, bool) {
	switch r {
	case '<':
		return AlignLeft, true
	case '^':
		return AlignCenter, true
	case '>':
		return AlignRight, true
	default:
		return AlignNone, false
	}
}

// Sign is the requested numeric sign handling.
type Sign uint8

const (
	SignNone Sign = iota
	SignPlus
	// SignMinus is parsed but has no effect.
	SignMinus
)

// NumberType selects the numeral representation.
type NumberType uint8

const (
	Normal NumberType = iota
	Octal
	LowerHex
	UpperHex
	Pointer
	Binary
	LowerExp
	UpperExp
)

var numberTypeRunes = map[rune]NumberType{
	'o': Octal,
	'x': LowerHex,
	'X': UpperHex,
	'p': Pointer,
	'b': Binary,
	'e': LowerExp,
	'E': UpperExp,
}

func (n NumberType) rune() rune {
	for r, t := range numberTypeRunes {
		if t == n {
			return r
		}
	}
	return 0
}

// String names the numeral type.
func (n NumberType) String() string {
	switch n {
	case Octal:
		return "octal"
	case LowerHex:
		return "lower-hex"
	case UpperHex:
		return "upper-hex"
	case Pointer:
		return "pointer"
	case Binary:
		return "binary"
	case LowerExp:
		return "lower-exp"
	case UpperExp:
		return "upper-exp"
	default:
		return "normal"
	}
}

// Flags are the value-level formatting flags compiled from a prefix.
type Flags struct {
	Fill         rune
	Align        Align
	Width        int
	HasWidth     bool
	Precision    int
	HasPrecision bool
	Sign         Sign
	ZeroPad      bool
	Alternate    bool
	Debug        bool
	// Plural is reserved and has no effect on built-in formatting.
	Plural     bool
	NumberType NumberType
}

// DefaultFlags returns flags with a space fill and nothing else set.
func DefaultFlags() Flags {
	return Flags{Fill: ' '}
}

// PostKind selects the single transform applied to a rendered value.
type PostKind uint8

const (
	PostNone PostKind = iota
	PostLayout
	PostUpper
	PostLower
	PostCapital
)

// Post is the compiled postfix transform.
type Post struct {
	Kind     PostKind
	Fill     rune
	Align    Align
	Width    int
	HasWidth bool
}

// Context is everything needed to render one directive. It is comparable,
// so two contexts compiled from equivalent directives are ==.
type Context struct {
	CustomFlags string
	Flags       Flags
	Specifier   string
	Post        Post
}

// NewContext returns a context for specifier with default flags.
func NewContext(specifier string) Context {
	return Context{Flags: DefaultFlags(), Specifier: specifier}
}

// PrefixText reconstructs a canonical prefix that compiles back to the same
// flags and custom flags.
func (c Context) PrefixText() string {
	var b strings.Builder
	f := c.Flags
	if f.Align != AlignNone {
		if f.Fill != ' ' {
			b.WriteRune(f.Fill)
		}
		b.WriteRune(f.Align.rune())
	}
	switch f.Sign {
	case SignPlus:
		b.WriteByte('+')
	case SignMinus:
		b.WriteByte('-')
	}
	if f.Alternate {
		b.WriteByte('#')
	}
	if f.ZeroPad {
		b.WriteByte('0')
	}
	if f.HasWidth {
		b.WriteString(strconv.Itoa(f.Width))
	}
	if f.HasPrecision {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(f.Precision))
	}
	if f.NumberType != Normal {
		b.WriteRune(f.NumberType.rune())
	}
	if f.Debug {
		b.WriteByte('?')
	}
	if f.Plural {
		b.WriteByte('$')
	}
	b.WriteString(c.CustomFlags)
	return b.String()
}

// PostfixText reconstructs a canonical postfix for c.Post.
func (c Context) PostfixText() string {
	p := c.Post
	switch p.Kind {
	case PostUpper:
		return "!"
	case PostLower:
		return "_"
	case PostCapital:
		return "-"
	case PostLayout:
		var b strings.Builder
		if p.Fill != ' ' || (p.Align == AlignNone && !p.HasWidth) {
			b.WriteRune(p.Fill)
		}
		if p.Align != AlignNone {
			b.WriteRune(p.Align.rune())
		}
		if p.HasWidth {
			b.WriteString(strconv.Itoa(p.Width))
		}
		return b.String()
	default:
		return ""
	}
}

// Segment reconstructs a `{{prefix:specifier/postfix}}` fragment which, when
// lexed, parsed and compiled again, yields a Context equal to c.
func (c Context) Segment() string {
	prefix := c.PrefixText()
	postfix := c.PostfixText()
	return syntax.BuildSegment(prefix, prefix != "", c.Specifier, postfix, c.Post.Kind != PostNone)
}
