package format

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-curly/pkg/curlyerr"
)

// PostFlagKind tags a PostFlag.
type PostFlagKind uint8

const (
	PostFlagAlign PostFlagKind = iota + 1
	PostFlagWidth
	PostFlagPadChar
	PostFlagToUpper
	PostFlagToLower
	PostFlagToCapital
)

// PostFlag is one descriptor scanned from a directive postfix.
type PostFlag struct {
	Kind  PostFlagKind
	Align Align
	N     int
	Char  rune
}

// ParsePostFlags scans postfix text left to right.
func ParsePostFlags(text string) ([]PostFlag, error) {
	runes := []rune(text)
	var out []PostFlag
	for i := 0; i < len(runes); {
		r := runes[i]
		if align, ok := alignOf(r); ok {
			out = append(out, PostFlag{Kind: PostFlagAlign, Align: align})
			i++
			continue
		}
		switch {
		case isDigit(r):
			n, next, _, err := digitRun(runes, i)
			if err != nil {
				return nil, curlyerr.Syntaxf("expected a width in postfix %q, found %v", text, err)
			}
			out = append(out, PostFlag{Kind: PostFlagWidth, N: n})
			i = next
			continue
		case r == '!':
			out = append(out, PostFlag{Kind: PostFlagToUpper})
		case r == '_':
			out = append(out, PostFlag{Kind: PostFlagToLower})
		case r == '-':
			out = append(out, PostFlag{Kind: PostFlagToCapital})
		default:
			out = append(out, PostFlag{Kind: PostFlagPadChar, Char: r})
		}
		i++
	}
	return out, nil
}

// SelectPost picks the transform named by the first descriptor. A layout
// transform takes an optional leading pad character, then an optional
// alignment, then an optional width; a case transform is a single
// descriptor. Everything after the selected transform is returned as
// dropped.
func SelectPost(flags []PostFlag) (Post, []PostFlag) {
	if len(flags) == 0 {
		return Post{}, nil
	}

	switch flags[0].Kind {
	case PostFlagToUpper:
		return Post{Kind: PostUpper}, flags[1:]
	case PostFlagToLower:
		return Post{Kind: PostLower}, flags[1:]
	case PostFlagToCapital:
		return Post{Kind: PostCapital}, flags[1:]
	}

	post := Post{Kind: PostLayout, Fill: ' '}
	i := 0
	if flags[i].Kind == PostFlagPadChar {
		post.Fill = flags[i].Char
		i++
	}
	if i < len(flags) && flags[i].Kind == PostFlagAlign {
		post.Align = flags[i].Align
		i++
	}
	if i < len(flags) && flags[i].Kind == PostFlagWidth {
		post.Width, post.HasWidth = flags[i].N, true
		i++
	}
	if i == len(flags) {
		return post, nil
	}
	return post, flags[i:]
}

// ApplyPost transforms an already rendered value according to c.Post.
// Casers are stateful, so one is built per call.
func (c Context) ApplyPost(s string) string {
	p := c.Post
	switch p.Kind {
	case PostUpper:
		return cases.Upper(language.Und).String(s)
	case PostLower:
		return cases.Lower(language.Und).String(s)
	case PostCapital:
		return capitalize(s)
	case PostLayout:
		if !p.HasWidth {
			return s
		}
		align := p.Align
		if align == AlignNone {
			align = AlignLeft
		}
		return pad(s, p.Fill, align, p.Width)
	default:
		return s
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToTitle(r)) + s[size:]
}

// pad widens s to width runes using fill.
func pad(s string, fill rune, align Align, width int) string {
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	filler := string(fill)
	switch align {
	case AlignRight:
		return strings.Repeat(filler, n) + s
	case AlignCenter:
		left := n / 2
		return strings.Repeat(filler, left) + s + strings.Repeat(filler, n-left)
	default:
		return s + strings.Repeat(filler, n)
	}
}
