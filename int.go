package fmtstr

import (
	"strconv"
	"unsafe"
)

// Integer is the set of types rendered by the integer grammar.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

const (
	lowerDigits = "0123456789abcdef"
	upperDigits = "0123456789ABCDEF"
)

// formatInt renders v under [[fill]align][sign][#][0][width][type] where
// type is one of d, b, o, x, X.
func formatInt[T Integer](v T, spec string) (string, error) {
	ns, err := ParseNumericSpec(spec)
	if err != nil {
		return "", err
	}

	base := 10
	lookup := lowerDigits
	var prefix string
	switch ns.Type {
	case "", "d":
	case "b":
		base, prefix = 2, "0b"
	case "o":
		base, prefix = 8, "0o"
	case "x":
		base, prefix = 16, "0x"
	case "X":
		base, prefix, lookup = 16, "0x", upperDigits
	default:
		return "", unknownType(spec, ns)
	}

	negative := v < 0
	var mag uint64
	if negative {
		mag = uint64(-int64(v))
	} else {
		mag = uint64(v)
	}

	var buf [64]byte
	digits := buf[:digitCapacity(int(unsafe.Sizeof(v))*8, base)]
	pos := len(digits)
	for mag > 0 {
		pos--
		digits[pos] = lookup[mag%uint64(base)]
		mag /= uint64(base)
	}
	if pos == len(digits) {
		pos--
		digits[pos] = '0'
	}

	if ns.Zero {
		ns.Align = AlignSignAware
		ns.Fill = '0'
	}

	out := make([]byte, 0, len(digits)-pos+4)
	out = appendSign(out, negative, ns.Sign)
	if ns.Alternate {
		out = append(out, prefix...)
	}
	center := len(out)
	out = append(out, digits[pos:]...)

	return PadToWidth(string(out), ns.AlignSpec, center, AlignRight), nil
}

// digitCapacity is the most digits a bits-wide magnitude needs in base.
func digitCapacity(bits, base int) int {
	switch base {
	case 2:
		return bits
	case 8:
		return (bits + 2) / 3
	case 16:
		return bits / 4
	default:
		return bits*3/10 + 1
	}
}

func appendSign(out []byte, negative bool, sign Sign) []byte {
	switch {
	case negative:
		return append(out, '-')
	case sign == SignPlus:
		return append(out, '+')
	case sign == SignSpace:
		return append(out, ' ')
	default:
		return out
	}
}

func unknownType(spec string, ns NumericSpec) error {
	return newSpecError("Unknown type parameter "+strconv.Quote(ns.Type), spec, ns.ParsedUntil-len(ns.Type))
}
