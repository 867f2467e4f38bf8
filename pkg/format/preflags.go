package format

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-curly/pkg/curlyerr"
)

// PreFlagKind tags a PreFlag.
type PreFlagKind uint8

const (
	PreAlign PreFlagKind = iota + 1
	PreWidth
	PrePrecision
	PreNumeralSign
	PreAlternate
	PreDebug
	PreZero
	PrePlurality
	PreNumberType
	PreOther
)

// PreFlag is one descriptor scanned from a directive prefix.
type PreFlag struct {
	Kind PreFlagKind
	// Align and Fill are set for PreAlign.
	Align Align
	Fill  rune
	// N is the width or precision.
	N    int
	Sign Sign
	Type NumberType
	// Char is the passthrough character for PreOther.
	Char rune
}

// ParsePreFlags scans prefix text left to right. Each character is consumed
// by the first rule that applies; unrecognised characters become PreOther.
func ParsePreFlags(text string) ([]PreFlag, error) {
	runes := []rune(text)
	var out []PreFlag
	i := 0

	// A leading character followed by an alignment is a fill.
	if len(runes) >= 2 {
		if align, ok := alignOf(runes[1]); ok {
			out = append(out, PreFlag{Kind: PreAlign, Align: align, Fill: runes[0]})
			i = 2
		}
	}

	widthSeen := false
	zeroSeen := false
	precisionSeen := false

	for i < len(runes) {
		r := runes[i]

		if align, ok := alignOf(r); ok {
			out = append(out, PreFlag{Kind: PreAlign, Align: align, Fill: ' '})
			i++
			continue
		}
		if t, ok := numberTypeRunes[r]; ok {
			out = append(out, PreFlag{Kind: PreNumberType, Type: t})
			i++
			continue
		}

		switch {
		case r == '+':
			out = append(out, PreFlag{Kind: PreNumeralSign, Sign: SignPlus})
			i++
		case r == '-':
			out = append(out, PreFlag{Kind: PreNumeralSign, Sign: SignMinus})
			i++
		case r == '#':
			out = append(out, PreFlag{Kind: PreAlternate})
			i++
		case r == '?':
			out = append(out, PreFlag{Kind: PreDebug})
			i++
		case r == '$':
			out = append(out, PreFlag{Kind: PrePlurality})
			i++
		case r == '0' && !widthSeen && !zeroSeen:
			zeroSeen = true
			out = append(out, PreFlag{Kind: PreZero})
			i++
		case r == '.':
			if precisionSeen {
				return nil, curlyerr.Syntaxf("expected a single precision in prefix %q, found a second '.'", text)
			}
			n, next, ok, err := digitRun(runes, i+1)
			if err != nil {
				return nil, curlyerr.Syntaxf("expected a precision in prefix %q, found %v", text, err)
			}
			if !ok {
				return nil, curlyerr.Syntaxf("expected precision digits after '.' in prefix %q", text)
			}
			precisionSeen = true
			out = append(out, PreFlag{Kind: PrePrecision, N: n})
			i = next
		case isDigit(r):
			if widthSeen {
				return nil, curlyerr.Syntaxf("expected a single width in prefix %q, found a second digit run", text)
			}
			n, next, _, err := digitRun(runes, i)
			if err != nil {
				return nil, curlyerr.Syntaxf("expected a width in prefix %q, found %v", text, err)
			}
			widthSeen = true
			out = append(out, PreFlag{Kind: PreWidth, N: n})
			i = next
		default:
			out = append(out, PreFlag{Kind: PreOther, Char: r})
			i++
		}
	}

	return out, nil
}

// applyPreFlags folds descriptors into flags and custom flag text.
func applyPreFlags(flags []PreFlag) (Flags, string) {
	f := DefaultFlags()
	var custom []rune
	for _, pf := range flags {
		switch pf.Kind {
		case PreAlign:
			f.Align = pf.Align
			f.Fill = pf.Fill
		case PreWidth:
			f.Width, f.HasWidth = pf.N, true
		case PrePrecision:
			f.Precision, f.HasPrecision = pf.N, true
		case PreNumeralSign:
			f.Sign = pf.Sign
		case PreAlternate:
			f.Alternate = true
		case PreDebug:
			f.Debug = true
		case PreZero:
			f.ZeroPad = true
		case PrePlurality:
			f.Plural = true
		case PreNumberType:
			f.NumberType = pf.Type
		case PreOther:
			custom = append(custom, pf.Char)
		}
	}
	return f, string(custom)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// MaxWidth bounds widths and precisions read from flag text.
const MaxWidth = 1 << 16

// digitRun reads consecutive ASCII digits starting at i. Values above
// MaxWidth are rejected.
func digitRun(runes []rune, i int) (int, int, bool, error) {
	start := i
	for i < len(runes) && isDigit(runes[i]) {
		i++
	}
	if i == start {
		return 0, i, false, nil
	}
	n, err := strconv.Atoi(string(runes[start:i]))
	if err != nil || n > MaxWidth {
		return 0, i, false, fmt.Errorf("%s, above the limit of %d", string(runes[start:i]), MaxWidth)
	}
	return n, i, true, nil
}
