package fmtstr

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Align selects how padded output is positioned within its width.
type Align byte

const (
	AlignNone      Align = 0
	AlignLeft      Align = '<'
	AlignRight     Align = '>'
	AlignCenter    Align = '^'
	AlignSignAware Align = '='
)

// Sign selects which non-negative numbers get a sign character.
type Sign byte

const (
	SignMinus Sign = '-'
	SignPlus  Sign = '+'
	SignSpace Sign = ' '
)

// Unset marks an absent width or precision.
const Unset = -1

// AlignSpec is the common [[fill]align][width] prefix of most specifiers.
type AlignSpec struct {
	Fill  rune
	Align Align
	Width int
}

// DefaultAlignSpec returns a spec with space fill, no alignment and no width.
func DefaultAlignSpec() AlignSpec {
	return AlignSpec{Fill: ' ', Width: Unset}
}

// NumericSpec is the parsed form of
//
//	[[fill]align][sign][#][0][width][.precision][type]
//
// where precision is either n (exactly n), n-m (between n and m), -m (at
// most m), or empty (zero). Type is everything up to the next ':' or the end.
type NumericSpec struct {
	AlignSpec
	Sign         Sign
	Alternate    bool
	Zero         bool
	MinPrecision int
	MaxPrecision int
	Type         string
	// ParsedUntil is the byte offset just past Type.
	ParsedUntil int
}

// ParseNumericSpec parses the numeric specifier shared by the integer and
// float renderers.
func ParseNumericSpec(spec string) (NumericSpec, error) {
	ns := NumericSpec{
		AlignSpec:    DefaultAlignSpec(),
		Sign:         SignMinus,
		MinPrecision: Unset,
		MaxPrecision: Unset,
	}
	if spec == "" {
		return ns, nil
	}

	i := parseFillAlign(spec, 0, &ns.AlignSpec, "<>^=")
	l := len(spec)

	if i < l && (spec[i] == '+' || spec[i] == '-' || spec[i] == ' ') {
		ns.Sign = Sign(spec[i])
		i++
	}
	if i < l && spec[i] == '#' {
		ns.Alternate = true
		i++
	}
	if i < l && spec[i] == '0' {
		ns.Zero = true
		i++
	}
	if i < l && isDigit(spec[i]) {
		ns.Width, i = readNumber(spec, i)
	}

	if i < l && spec[i] == '.' {
		i++
		ns.MinPrecision = 0
		if i < l && isDigit(spec[i]) {
			ns.MinPrecision, i = readNumber(spec, i)
		}
		if i < l && spec[i] == '-' {
			i++
			second := i
			if i >= l || !isDigit(spec[i]) {
				return ns, newSpecError("Maximum precision expected after '-'", spec, i)
			}
			ns.MaxPrecision, i = readNumber(spec, i)
			if ns.MaxPrecision < ns.MinPrecision {
				return ns, newSpecError("Maximum precision less than minimum", spec, second)
			}
		} else {
			ns.MaxPrecision = ns.MinPrecision
		}
	}

	end := i
	for end < l && spec[end] != ':' {
		end++
	}
	ns.Type = spec[i:end]
	ns.ParsedUntil = end
	return ns, nil
}

// ParseAlignSpec parses [[fill]align][width] starting at byte offset i and
// returns the spec along with the offset of the first unparsed byte.
func ParseAlignSpec(spec string, i int) (AlignSpec, int) {
	as := DefaultAlignSpec()
	i = parseFillAlign(spec, i, &as, "<>^")
	if i < len(spec) && isDigit(spec[i]) {
		as.Width, i = readNumber(spec, i)
	}
	return as, i
}

// parseFillAlign reads an optional fill rune followed by one of the aligns.
func parseFillAlign(spec string, i int, as *AlignSpec, aligns string) int {
	if i >= len(spec) {
		return i
	}
	if strings.IndexByte(aligns, spec[i]) >= 0 {
		as.Align = Align(spec[i])
		return i + 1
	}
	fill, size := utf8.DecodeRuneInString(spec[i:])
	if j := i + size; j < len(spec) && strings.IndexByte(aligns, spec[j]) >= 0 {
		as.Fill = fill
		as.Align = Align(spec[j])
		return j + 1
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// readNumber reads a run of decimal digits, saturating instead of overflowing.
func readNumber(spec string, i int) (int, int) {
	n := 0
	for i < len(spec) && isDigit(spec[i]) {
		if n <= (math.MaxInt32-9)/10 {
			n = n*10 + int(spec[i]-'0')
		} else {
			n = math.MaxInt32
		}
		i++
	}
	return n, i
}

// readToken reads a single rune, or a single-quoted string in which \' is
// the only escape. It returns the token and the offset just past it.
func readToken(spec string, i int) (string, int) {
	l := len(spec)
	if i >= l {
		return "", i
	}
	if spec[i] != '\'' {
		_, size := utf8.DecodeRuneInString(spec[i:])
		return spec[i : i+size], i + size
	}

	var b strings.Builder
	i++
	for i < l && spec[i] != '\'' {
		if spec[i] == '\\' && i+1 < l && spec[i+1] == '\'' {
			i++
		}
		b.WriteByte(spec[i])
		i++
	}
	return b.String(), i + 1
}

// PadToWidth pads text with spec.Fill up to spec.Width runes. Text that
// already fills the width, or spans several lines, is returned unchanged.
// defaultAlign applies when spec.Align is [AlignNone]; [AlignSignAware]
// inserts the padding at byte offset center.
func PadToWidth(text string, spec AlignSpec, center int, defaultAlign Align) string {
	if spec.Width == Unset {
		return text
	}
	n := utf8.RuneCountInString(text)
	if n >= spec.Width || strings.Contains(text, "\n") {
		return text
	}

	padding := spec.Width - n
	align := spec.Align
	if align == AlignNone {
		align = defaultAlign
	}

	leading, trailing := 0, 0
	switch align {
	case AlignRight:
		leading = padding
	case AlignCenter:
		leading = padding / 2
		trailing = padding - leading
	case AlignSignAware:
	default:
		trailing = padding
	}

	fill := string(spec.Fill)
	var b strings.Builder
	b.Grow(len(text) + padding*len(fill))
	b.WriteString(strings.Repeat(fill, leading))
	if align == AlignSignAware {
		center = min(max(center, 0), len(text))
		b.WriteString(text[:center])
		b.WriteString(strings.Repeat(fill, padding))
		b.WriteString(text[center:])
	} else {
		b.WriteString(text)
	}
	b.WriteString(strings.Repeat(fill, trailing))
	return b.String()
}
