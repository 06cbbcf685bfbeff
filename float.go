package fmtstr

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/bjaus/fmtstr/internal/grisu"
)

// Float is the set of types rendered by the float grammar.
type Float interface {
	~float32 | ~float64
}

func formatFloat64(v float64, spec string) (string, error) {
	return renderFloat(grisu.Decompose64(v), math.Abs(v), spec)
}

func formatFloat32(v float32, spec string) (string, error) {
	return renderFloat(grisu.Decompose32(v), math.Abs(float64(v)), spec)
}

// renderFloat renders the decomposed value under
// [[fill]align][sign][#][0][width][.precision][type] with type one of f, e,
// E, ee, EE, si, g, G or empty. Case only matters for the exponent marker.
func renderFloat(p grisu.Parts, abs float64, spec string) (string, error) {
	ns, err := ParseNumericSpec(spec)
	if err != nil {
		return "", err
	}

	mode := strings.ToLower(ns.Type)
	switch mode {
	case "", "g", "e", "f", "ee", "si":
	default:
		return "", unknownType(spec, ns)
	}

	if p.Special {
		return renderSpecial(p, ns), nil
	}

	dec := grisu.Shortest(p)
	switch mode {
	case "e", "ee", "si":
		return renderScientific(dec, p.Negative, mode, ns), nil
	case "f":
		return renderFixed(dec, p.Negative, mode, ns), nil
	}
	if abs != 0 && (abs < 1e-3 || abs >= 1e10) {
		return renderScientific(dec, p.Negative, mode, ns), nil
	}
	return renderFixed(dec, p.Negative, mode, ns), nil
}

func renderSpecial(p grisu.Parts, ns NumericSpec) string {
	if p.NaN() {
		return PadToWidth("NaN", ns.AlignSpec, 0, AlignRight)
	}
	out := appendSign(nil, p.Negative, ns.Sign)
	center := len(out)
	out = append(out, "Inf"...)
	return PadToWidth(string(out), ns.AlignSpec, center, AlignRight)
}

// roundDecimal drops digits below 10^lsd, rounding half up on the most
// significant dropped digit. It reports whether the number of digits above
// the point or the exponent of the last digit moved.
func roundDecimal(d *grisu.Decimal, lsd int) bool {
	last := byte('0')
	for lsd > d.Exp {
		if n := len(d.Digits); n > 0 {
			last = d.Digits[n-1]
			d.Digits = d.Digits[:n-1]
		} else {
			last = '0'
		}
		d.Exp++
	}

	changed := false
	if last >= '5' && last <= '9' {
		if len(d.Digits) == 0 {
			d.Digits = append(d.Digits, '1')
			return true
		}
		d.Digits[len(d.Digits)-1]++
	}
	for len(d.Digits) > 1 && d.Digits[len(d.Digits)-1] == '9'+1 {
		d.Digits = d.Digits[:len(d.Digits)-1]
		d.Digits[len(d.Digits)-1]++
		d.Exp++
		changed = true
	}
	if len(d.Digits) == 1 && d.Digits[0] == '9'+1 {
		d.Digits[0] = '1'
		d.Exp++
		changed = true
	}
	if len(d.Digits) == 0 {
		d.Digits = append(d.Digits, '0')
		d.Exp = 0
		changed = true
	}
	return changed
}

// digitAt returns the digit with weight 10^exp, or '0' outside the digits.
func digitAt(d grisu.Decimal, exp int) byte {
	idx := len(d.Digits) - exp - 1 + d.Exp
	if idx >= 0 && idx < len(d.Digits) {
		return d.Digits[idx]
	}
	return '0'
}

func renderFixed(d grisu.Decimal, negative bool, mode string, ns NumericSpec) string {
	msd := max(d.Exp+len(d.Digits)-1, 0)
	lsd := min(d.Exp, 0)
	roundLSD := lsd

	if mode == "f" {
		// Precision counts digits after the point.
		if ns.MaxPrecision != Unset {
			lsd = max(lsd, -ns.MaxPrecision)
		}
		if ns.MinPrecision != Unset {
			lsd = min(lsd, -ns.MinPrecision)
		}
		roundLSD = lsd
	} else {
		// Precision counts significant digits.
		if ns.MaxPrecision != Unset {
			roundLSD = max(roundLSD, msd+1-ns.MaxPrecision)
		}
		if ns.MinPrecision != Unset {
			roundLSD = min(roundLSD, msd+1-ns.MinPrecision)
		}
		lsd = min(roundLSD, 0)
	}

	if roundDecimal(&d, roundLSD) {
		msd = max(len(d.Digits)+d.Exp-1, msd)
		if d.Exp > roundLSD {
			limit := 0
			if ns.MinPrecision != Unset {
				if mode == "f" {
					limit = -ns.MinPrecision
				} else {
					limit = msd + 1 - ns.MinPrecision
				}
			}
			lsd = min(limit, d.Exp)
		}
	}

	if ns.Zero {
		ns.Align = AlignSignAware
		ns.Fill = '0'
	}

	out := make([]byte, 0, msd-lsd+4)
	out = appendSign(out, negative, ns.Sign)
	center := len(out)
	for exp := msd; exp >= lsd; exp-- {
		if exp == -1 {
			out = append(out, '.')
		}
		out = append(out, digitAt(d, exp))
	}
	if ns.Alternate && lsd >= 0 {
		out = append(out, '.')
	}

	return PadToWidth(string(out), ns.AlignSpec, center, AlignRight)
}

var siPrefixes = map[int]string{
	-24: "y", -21: "z", -18: "a", -15: "f", -12: "p", -9: "n", -6: "u", -3: "m",
	0: "", 3: "k", 6: "M", 9: "G", 12: "T", 15: "P", 18: "E", 21: "Z", 24: "Y",
}

func renderScientific(d grisu.Decimal, negative bool, mode string, ns NumericSpec) string {
	msd := d.Exp + len(d.Digits) - 1
	lsd := d.Exp

	if ns.MaxPrecision != Unset {
		lsd = max(lsd, msd+1-ns.MaxPrecision)
	}
	if ns.MinPrecision != Unset {
		lsd = min(lsd, msd+1-ns.MinPrecision)
	}

	if roundDecimal(&d, lsd) {
		msd = max(len(d.Digits)+d.Exp-1, msd)
		if d.Exp > lsd {
			limit := 0
			if ns.MinPrecision != Unset {
				limit = msd + 1 - ns.MinPrecision
			}
			lsd = min(limit, d.Exp)
		}
	}

	display := msd
	if mode == "ee" || mode == "si" {
		if display > 0 {
			display = display / 3 * 3
		} else {
			display = (display - 2) / 3 * 3
		}
		lsd = min(lsd, display)
	}

	if ns.Zero {
		ns.Align = AlignSignAware
		ns.Fill = '0'
	}

	out := make([]byte, 0, msd-lsd+10)
	out = appendSign(out, negative, ns.Sign)
	center := len(out)
	point := false
	for exp := msd; exp >= lsd; exp-- {
		if exp == display-1 {
			out = append(out, '.')
			point = true
		}
		out = append(out, digitAt(d, exp))
	}
	if ns.Alternate && !point {
		out = append(out, '.')
	}

	if prefix, ok := siPrefixes[display]; ok && mode == "si" {
		out = append(out, prefix...)
	} else {
		if ns.Type != "" && unicode.IsUpper(rune(ns.Type[0])) {
			out = append(out, 'E')
		} else {
			out = append(out, 'e')
		}
		if display < 0 {
			out = append(out, '-')
			display = -display
		} else if ns.Sign == SignPlus {
			out = append(out, '+')
		}
		out = strconv.AppendInt(out, int64(display), 10)
	}

	return PadToWidth(string(out), ns.AlignSpec, center, AlignRight)
}
