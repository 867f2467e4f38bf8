// Package curlyerr defines the closed error taxonomy surfaced by the template
// pipeline: syntax errors in the template, unresolved keys, and internal
// invariant violations.
package curlyerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-curly/pkg/source"
)

// Kind classifies an Error.
type Kind uint8

const (
	// Generic marks a key that no provider in the chain resolves.
	Generic Kind = iota + 1
	// Syntax marks malformed template structure or an illegal flag.
	Syntax
	// Internal marks a state the compiler considers unreachable.
	Internal
)

func (k Kind) String() string {
	switch k {
	case Generic:
		return "generic"
	case Syntax:
		return "syntax"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

func (k Kind) prefix() string {
	switch k {
	case Syntax:
		return "Syntax Error: "
	case Internal:
		return "Internal Error: "
	default:
		return "Error: "
	}
}

// Error is the single error type produced by the pipeline.
type Error struct {
	Kind    Kind
	Message string

	// Key is the unresolved specifier for Generic errors.
	Key string

	// Syntax details. Pos is absolute; RelPos is relative to Segment.
	Expected string
	Found    string
	Pos      source.Position
	Segment  string
	RelPos   source.Position
	// Line is the full source row holding Pos, when known.
	Line string

	hasPos  bool
	lineCol int
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Kind.prefix() + e.detail()
}

func (e *Error) detail() string {
	if e.Message != "" {
		return e.Message
	}
	var b strings.Builder
	fmt.Fprintf(&b, "expected %s, found %s", e.Expected, e.Found)
	if e.hasPos {
		fmt.Fprintf(&b, " at %s", e.Pos)
		if e.Segment != "" {
			fmt.Fprintf(&b, " (within segment '%s' at %s)", e.Segment, e.RelPos)
		}
	}
	return b.String()
}

// HasPosition reports whether the error is anchored in the template source.
func (e *Error) HasPosition() bool {
	return e != nil && e.hasPos
}

// Is lets errors.Is match on kind using the sentinel values below.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok || other == nil {
		return false
	}
	return other.Kind == e.Kind && other.Message == "" && other.Key == "" && other.Expected == "" && !other.hasPos
}

// Sentinels usable with errors.Is to test an error's kind.
var (
	ErrGeneric  = &Error{Kind: Generic}
	ErrSyntax   = &Error{Kind: Syntax}
	ErrInternal = &Error{Kind: Internal}
)

// NewSyntax builds a positioned syntax error.
func NewSyntax(expected, found string, pos source.Position, segment string, rel source.Position) *Error {
	return &Error{
		Kind:     Syntax,
		Expected: expected,
		Found:    found,
		Pos:      pos,
		Segment:  segment,
		RelPos:   rel,
		hasPos:   true,
	}
}

// Syntaxf builds a syntax error that is not yet anchored to a position.
// Callers holding the directive position attach it with At.
func Syntaxf(format string, args ...any) *Error {
	return &Error{Kind: Syntax, Message: fmt.Sprintf(format, args...)}
}

// At anchors an unpositioned error to pos, returning a copy.
func (e *Error) At(pos source.Position, segment string) *Error {
	if e == nil || e.hasPos {
		return e
	}
	out := *e
	out.Pos = pos
	out.Segment = segment
	out.hasPos = true
	if out.Message != "" {
		out.Message = fmt.Sprintf("%s at %s (within segment '%s')", out.Message, pos, segment)
	}
	return &out
}

// WithLine returns a copy carrying the source row that holds the error and
// the column of the error within that row.
func (e *Error) WithLine(line string, col int) *Error {
	if e == nil || !e.hasPos {
		return e
	}
	out := *e
	out.Line = line
	out.lineCol = col
	return &out
}

// Excerpt renders the source row with a caret under the error column. It is
// empty when the row is unknown.
func (e *Error) Excerpt() string {
	if e == nil || !e.hasPos || e.Line == "" && e.lineCol == 0 {
		return ""
	}
	runes := []rune(e.Line)
	col := e.lineCol
	if col > len(runes) {
		col = len(runes)
	}
	var pad strings.Builder
	for _, r := range runes[:col] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteByte(' ')
	}
	return e.Line + "\n" + pad.String() + "^"
}

// InvalidKey reports a key that the provider does not define.
func InvalidKey(key string) *Error {
	return &Error{
		Kind:    Generic,
		Key:     key,
		Message: fmt.Sprintf("invalid format specifier `%s`", key),
	}
}

// Internalf reports an unreachable state.
func Internalf(format string, args ...any) *Error {
	return &Error{Kind: Internal, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind of err, or 0 when err is not a pipeline error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsGeneric reports whether err is an unresolved key error.
func IsGeneric(err error) bool { return KindOf(err) == Generic }

// IsSyntax reports whether err is a template syntax error.
func IsSyntax(err error) bool { return KindOf(err) == Syntax }

// IsInternal reports whether err is an internal invariant violation.
func IsInternal(err error) bool { return KindOf(err) == Internal }
