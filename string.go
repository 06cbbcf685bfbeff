package fmtstr

import (
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
)

// Char is a single character. It renders as a one-character string, or as
// an integer when its specifier starts with 'i':
//
//	fmtstr.ToString(fmtstr.Char('A'), "i#x") // "0x41"
//
// Plain runes are int32 values and render as integers.
type Char rune

type replacement struct {
	find, repl string
}

// stringSpec is the parsed form of
//
//	[[fill]align][#][width][ s<a>-<b>][ r<find>-<replace>]...
type stringSpec struct {
	AlignSpec
	begin, end   int
	replacements []replacement
}

func parseStringSpec(spec string) (stringSpec, error) {
	ss := stringSpec{AlignSpec: DefaultAlignSpec(), begin: Unset, end: Unset}
	l := len(spec)

	i := parseFillAlign(spec, 0, &ss.AlignSpec, "<>^")
	// Text longer than the width is always cut, so '#' changes nothing.
	if i < l && spec[i] == '#' {
		i++
	}
	if i < l && isDigit(spec[i]) {
		ss.Width, i = readNumber(spec, i)
	}
	i = skipSpaces(spec, i)

	if i < l && spec[i] == 's' {
		i++
		first, second := Unset, Unset
		if i < l && isDigit(spec[i]) {
			first, i = readNumber(spec, i)
		}
		ranged := i < l && spec[i] == '-'
		if ranged {
			i++
		}
		secondPos := i
		if i < l && isDigit(spec[i]) {
			second, i = readNumber(spec, i)
		}

		switch {
		case ranged:
			if second != Unset && second < first {
				return ss, newSpecError("substring end less than begin", spec, secondPos)
			}
			ss.begin = max(first, 0)
			ss.end = second
		case first > 0:
			ss.begin, ss.end = 0, first
		}
	}
	i = skipSpaces(spec, i)

	for i < l && spec[i] == 'r' {
		var r replacement
		r.find, i = readToken(spec, i+1)
		if i >= l || spec[i] != '-' {
			return ss, newSpecError("'-' expected in replace expression", spec, i)
		}
		r.repl, i = readToken(spec, i+1)
		ss.replacements = append(ss.replacements, r)
		i = skipSpaces(spec, i)
	}
	return ss, nil
}

func skipSpaces(spec string, i int) int {
	for i < len(spec) && spec[i] == ' ' {
		i++
	}
	return i
}

// formatString renders s. Substring bounds and widths count runes.
func formatString(s, spec string) (string, error) {
	if spec == "" {
		return s, nil
	}
	ss, err := parseStringSpec(spec)
	if err != nil {
		return "", err
	}

	out := s
	if ss.begin != Unset {
		out = substring(s, ss.begin, ss.end)
	}
	if out != "" {
		for _, r := range ss.replacements {
			if r.find != "" {
				out = strings.ReplaceAll(out, r.find, r.repl)
			}
		}
	}

	if ss.Width != Unset && utf8.RuneCountInString(out) > ss.Width {
		return truncateRunes(out, ss.Width), nil
	}
	return PadToWidth(out, ss.AlignSpec, 0, AlignLeft), nil
}

// substring returns runes [begin, end) of s, with end == Unset meaning the
// end of s. Out of range bounds are clamped.
func substring(s string, begin, end int) string {
	start, stop := len(s), len(s)
	n := 0
	for i := range s {
		if n == begin {
			start = i
		}
		if n == end {
			stop = i
			break
		}
		n++
	}
	if start > stop {
		return ""
	}
	return s[start:stop]
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func formatChar(c Char, spec string) (string, error) {
	if spec != "" && spec[0] == 'i' {
		if b, err := safecast.Conv[uint8](c); err == nil {
			return formatInt(b, spec[1:])
		}
		return formatInt(uint32(c), spec[1:])
	}
	return formatString(string(rune(c)), spec)
}
