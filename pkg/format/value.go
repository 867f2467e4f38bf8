package format

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"

	"github.com/goliatone/go-curly/pkg/curlyerr"
)

// Displayer renders a value in its canonical display form.
type Displayer interface {
	CurlyDisplay(ctx Context) (string, error)
}

// Debugger renders a value in its structural debug form.
type Debugger interface {
	CurlyDebug(ctx Context) (string, error)
}

// Formatter is implemented by host types that render under both modes.
type Formatter interface {
	Displayer
	Debugger
}

// Value renders v under ctx, choosing the debug or display form from
// ctx.Flags.Debug. Postfix transforms are not applied here.
func Value(v any, ctx Context) (string, error) {
	if ctx.Flags.Debug {
		if d, ok := v.(Debugger); ok {
			return d.CurlyDebug(ctx)
		}
	} else if d, ok := v.(Displayer); ok {
		return d.CurlyDisplay(ctx)
	}

	switch x := v.(type) {
	case bool:
		return Bool(x, ctx)
	case int:
		return Int(int64(x), ctx)
	case int8:
		return Int(int64(x), ctx)
	case int16:
		return Int(int64(x), ctx)
	case int32:
		return Int(int64(x), ctx)
	case int64:
		return Int(x, ctx)
	case uint:
		return Uint(uint64(x), ctx)
	case uint8:
		return Uint(uint64(x), ctx)
	case uint16:
		return Uint(uint64(x), ctx)
	case uint32:
		return Uint(uint64(x), ctx)
	case uint64:
		return Uint(x, ctx)
	case float32:
		return Float(float64(x), 32, ctx)
	case float64:
		return Float(x, 64, ctx)
	case string:
		return String(x, ctx)
	case []byte:
		return String(string(x), ctx)
	case error:
		return String(x.Error(), ctx)
	case fmt.Stringer:
		return String(x.String(), ctx)
	case nil:
		return "", curlyerr.Internalf("cannot format a nil value for `%s`", ctx.Specifier)
	}

	if ctx.Flags.NumberType == Pointer {
		return pointer(v, ctx)
	}
	if ctx.Flags.Debug {
		if _, ok := v.(Displayer); ok {
			return "", curlyerr.Internalf("type %T implements Displayer but not Debugger", v)
		}
	}
	return "", curlyerr.Internalf("no formatter for type %T", v)
}

// Bool renders b. The custom flags `q`/`Q` select yes/no words and `!`
// inverts the value; any other custom flag is a syntax error.
func Bool(b bool, ctx Context) (string, error) {
	words := false
	for _, r := range ctx.CustomFlags {
		switch r {
		case 'q', 'Q':
			words = true
		case '!':
			b = !b
		default:
			return "", curlyerr.Syntaxf("expected one of 'q', 'Q', '!' for a boolean, found %q in %s", r, ctx.Segment())
		}
	}
	if t := ctx.Flags.NumberType; t != Normal {
		return "", curlyerr.Syntaxf("expected one of 'q', 'Q', '!' for a boolean, found %q in %s", t.rune(), ctx.Segment())
	}

	var s string
	switch {
	case words && b:
		s = "yes"
	case words:
		s = "no"
	default:
		s = strconv.FormatBool(b)
	}
	return padFlags(s, ctx.Flags, AlignLeft), nil
}

// String renders text. Precision truncates to that many runes; debug mode
// quotes the result.
func String(s string, ctx Context) (string, error) {
	if err := requireNormal(ctx, "string"); err != nil {
		return "", err
	}
	f := ctx.Flags
	if f.HasPrecision && utf8.RuneCountInString(s) > f.Precision {
		s = string([]rune(s)[:f.Precision])
	}
	if f.Debug {
		s = strconv.Quote(s)
	}
	return padFlags(s, f, AlignLeft), nil
}

// Int renders a signed integer.
func Int(n int64, ctx Context) (string, error) {
	var mag uint64
	if n < 0 {
		mag = uint64(-(n + 1)) + 1
	} else {
		mag = uint64(n)
	}
	return integer(mag, n < 0, ctx)
}

// Uint renders an unsigned integer.
func Uint(n uint64, ctx Context) (string, error) {
	return integer(n, false, ctx)
}

func integer(mag uint64, negative bool, ctx Context) (string, error) {
	f := ctx.Flags
	if f.Debug && f.NumberType != Normal && f.NumberType != LowerHex && f.NumberType != UpperHex {
		return "", unsupportedType(ctx, "a debug integer")
	}

	var prefix, digits string
	switch f.NumberType {
	case Normal:
		digits = strconv.FormatUint(mag, 10)
	case Octal:
		prefix, digits = "0o", strconv.FormatUint(mag, 8)
	case LowerHex:
		prefix, digits = "0x", strconv.FormatUint(mag, 16)
	case UpperHex:
		prefix, digits = "0x", strings.ToUpper(strconv.FormatUint(mag, 16))
	case Binary:
		prefix, digits = "0b", strconv.FormatUint(mag, 2)
	case LowerExp, UpperExp:
		digits = exponent(float64(mag), 64, f)
	default:
		return "", unsupportedType(ctx, "an integer")
	}
	if !f.Alternate {
		prefix = ""
	}
	return numeric(signOf(negative, f), prefix, digits, f), nil
}

// Float renders a floating point value of the given bit size.
func Float(x float64, bits int, ctx Context) (string, error) {
	f := ctx.Flags
	negative := math.Signbit(x) && !math.IsNaN(x)
	abs := math.Abs(x)

	var digits string
	switch {
	case math.IsNaN(x):
		digits = "NaN"
	case math.IsInf(x, 0):
		digits = "inf"
	}

	switch f.NumberType {
	case Normal:
		if digits != "" {
			break
		}
		if f.HasPrecision {
			digits = strconv.FormatFloat(abs, 'f', f.Precision, bits)
			break
		}
		digits = strconv.FormatFloat(abs, 'f', -1, bits)
		if f.Debug && !strings.ContainsAny(digits, ".e") {
			digits += ".0"
		}
	case LowerExp, UpperExp:
		if f.Debug {
			return "", unsupportedType(ctx, "a debug float")
		}
		if digits == "" {
			digits = exponent(abs, bits, f)
		}
	default:
		return "", unsupportedType(ctx, "a float")
	}

	if math.IsNaN(x) {
		return padFlags(digits, f, AlignRight), nil
	}
	return numeric(signOf(negative, f), "", digits, f), nil
}

// exponent renders x in short exponent form: 1.5e3, 1.25e-3.
func exponent(x float64, bits int, f Flags) string {
	prec := -1
	if f.HasPrecision {
		prec = f.Precision
	}
	verb := byte('e')
	if f.NumberType == UpperExp {
		verb = 'E'
	}
	s := strconv.FormatFloat(x, verb, prec, bits)
	i := strings.IndexByte(s, verb)
	if i < 0 {
		return s
	}
	mantissa, exp := s[:i+1], s[i+1:]
	sign := ""
	if exp[0] == '-' || exp[0] == '+' {
		if exp[0] == '-' {
			sign = "-"
		}
		exp = exp[1:]
	}
	if exp = strings.TrimLeft(exp, "0"); exp == "" {
		exp = "0"
	}
	return mantissa + sign + exp
}

func signOf(negative bool, f Flags) string {
	switch {
	case negative:
		return "-"
	case f.Sign == SignPlus:
		return "+"
	default:
		return ""
	}
}

// numeric assembles sign, radix prefix and digits, applying sign-aware zero
// padding when requested and fill padding otherwise.
func numeric(sign, prefix, digits string, f Flags) string {
	lead := sign + prefix
	if f.ZeroPad && f.HasWidth {
		n := f.Width - utf8.RuneCountInString(lead) - utf8.RuneCountInString(digits)
		if n > 0 {
			digits = strings.Repeat("0", n) + digits
		}
		return lead + digits
	}
	return padFlags(lead+digits, f, AlignRight)
}

func pointer(v any, ctx Context) (string, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
	default:
		return "", unsupportedType(ctx, fmt.Sprintf("a %T value", v))
	}
	if ctx.Flags.Debug {
		return "", unsupportedType(ctx, "a debug pointer")
	}
	digits := strconv.FormatUint(uint64(rv.Pointer()), 16)
	return numeric("", "0x", digits, ctx.Flags), nil
}

func requireNormal(ctx Context, kind string) error {
	if ctx.Flags.NumberType != Normal {
		return unsupportedType(ctx, "a "+kind+" value")
	}
	return nil
}

// unsupportedType reports a numeral type flag the value cannot honour.
func unsupportedType(ctx Context, what string) error {
	return curlyerr.Syntaxf("expected a numeral type supported by %s, found %q (%s) in %s",
		what, ctx.Flags.NumberType.rune(), ctx.Flags.NumberType, ctx.Segment())
}

func padFlags(s string, f Flags, def Align) string {
	if !f.HasWidth {
		return s
	}
	align := f.Align
	if align == AlignNone {
		align = def
	}
	return pad(s, f.Fill, align, f.Width)
}

var prettyConfig = spew.ConfigState{
	Indent:                  "    ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// DebugValue is a helper for CurlyDebug implementations on composite host
// types: `%+v` normally, an indented multi-line dump when the alternate flag
// is set. Width and alignment are honoured.
func DebugValue(v any, ctx Context) (string, error) {
	if ctx.Flags.NumberType != Normal {
		return "", unsupportedType(ctx, fmt.Sprintf("a %T value", v))
	}
	var s string
	if ctx.Flags.Alternate {
		s = strings.TrimRight(prettyConfig.Sdump(v), "\n")
	} else {
		s = fmt.Sprintf("%+v", v)
	}
	return padFlags(s, ctx.Flags, AlignLeft), nil
}
