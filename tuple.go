package fmtstr

import "strings"

// Pair holds two values of possibly different types.
type Pair[A, B any] struct {
	First  A
	Second B
}

// MakePair returns a Pair of a and b.
func MakePair[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

func (p Pair[A, B]) values() []any { return []any{p.First, p.Second} }

func (p Pair[A, B]) openLast() bool { return true }

// Tuple is a fixed list of heterogeneous values. Each slot can get its own
// forwarded specifier.
type Tuple []any

func (t Tuple) values() []any { return t }

func (t Tuple) openLast() bool { return false }

// tupleLike is implemented by Pair and Tuple only.
type tupleLike interface {
	values() []any
	// openLast reports whether the last forward field takes the rest of
	// the specifier verbatim instead of stopping at the next colon.
	openLast() bool
}

// formatTuple renders values under [[fill]align][width][d<p> <d> <s>][:fwd]...
// Forward fields beyond the number of values are ignored.
func formatTuple(t tupleLike, spec string) (string, error) {
	as := DefaultAlignSpec()
	i := 0
	if spec != "" && spec[0] != 'd' {
		as, i = ParseAlignSpec(spec, 0)
	}

	prefix, divider, suffix := "(", ", ", ")"
	if i < len(spec) && spec[i] == 'd' {
		parts, next, err := readParts(spec, i+1, 3)
		if err != nil {
			return "", err
		}
		prefix, divider, suffix = parts[0], parts[1], parts[2]
		i = next
	}

	values := t.values()
	forward := make([]string, len(values))
	for n := 0; hasForward(spec, i); n++ {
		if t.openLast() && n == len(forward)-1 {
			forward[n] = spec[i+1:]
			break
		}
		var field string
		field, i = readForwardField(spec, i)
		if n < len(forward) {
			forward[n] = field
		}
	}

	var b strings.Builder
	b.WriteString(prefix)
	for n, v := range values {
		if n > 0 {
			b.WriteString(divider)
		}
		s, err := ToString(v, forward[n])
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	b.WriteString(suffix)
	return PadToWidth(b.String(), as, 0, AlignLeft), nil
}
