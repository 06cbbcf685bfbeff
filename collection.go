package fmtstr

import (
	"cmp"
	"iter"
	"reflect"
	"slices"
	"strings"
)

// Sequence is an ordered collection rendered with the sequence grammar.
type Sequence interface {
	Elements() iter.Seq[any]
	Empty() bool
}

// Mapping is an ordered key/value collection rendered with the map grammar.
type Mapping interface {
	Entries() iter.Seq2[any, any]
	Empty() bool
}

// Entry is a single key/value pair of a [Multimap].
type Entry struct {
	Key   any
	Value any
}

// Multimap is a [Mapping] that keeps insertion order and allows repeated
// keys. Use it when Go map key ordering is not the order you want printed.
type Multimap []Entry

// Entries yields the pairs in order.
func (m Multimap) Entries() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, e := range m {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Empty reports whether m has no entries.
func (m Multimap) Empty() bool { return len(m) == 0 }

type decorators struct {
	prefix, pairer, divider, suffix, empty string
}

// parseCollectionSpec reads [[fill]align][width][i|m|d...|D...] and returns
// the offset where the forward fields begin.
func parseCollectionSpec(spec string, mapping bool) (AlignSpec, decorators, int, error) {
	as := DefaultAlignSpec()
	i := 0
	if spec != "" && spec[0] != 'd' && spec[0] != 'D' {
		as, i = ParseAlignSpec(spec, 0)
	}

	dec := decorators{prefix: "[", pairer: ": ", divider: ", ", suffix: "]", empty: "[]"}
	switch {
	case i < len(spec) && spec[i] == 'm':
		dec = decorators{prefix: "[\n", pairer: ": ", divider: ",\n", suffix: "\n]", empty: "[\n]"}
		i++
	case i < len(spec) && (spec[i] == 'd' || spec[i] == 'D'):
		n := 3
		if mapping {
			n = 4
		}
		withEmpty := spec[i] == 'D'
		if withEmpty {
			n++
		}
		parts, next, err := readParts(spec, i+1, n)
		if err != nil {
			return as, dec, 0, err
		}
		i = next
		if mapping {
			dec.prefix, dec.pairer, dec.divider, dec.suffix = parts[0], parts[1], parts[2], parts[3]
		} else {
			dec.prefix, dec.divider, dec.suffix = parts[0], parts[1], parts[2]
		}
		if withEmpty {
			dec.empty = parts[n-1]
		} else {
			dec.empty = dec.prefix + dec.suffix
		}
	case i < len(spec) && spec[i] == 'i':
		i++
	}
	return as, dec, i, nil
}

// readParts reads n space separated tokens starting at i.
func readParts(spec string, i, n int) ([]string, int, error) {
	parts := make([]string, n)
	for k := range n {
		if k > 0 {
			if i >= len(spec) || spec[i] != ' ' {
				return nil, i, newSpecError("Space expected", spec, i)
			}
			i++
		}
		parts[k], i = readToken(spec, i)
	}
	return parts, i, nil
}

// hasForward reports whether a forward field starts at i.
func hasForward(spec string, i int) bool {
	return i+1 < len(spec) && spec[i] == ':'
}

// readForwardField reads the field after the ':' at i up to the next
// unescaped ':'. A backslash escapes a colon.
func readForwardField(spec string, i int) (string, int) {
	var b strings.Builder
	i++
	for i < len(spec) && spec[i] != ':' {
		if spec[i] == '\\' && i+1 < len(spec) && spec[i+1] == ':' {
			i++
		}
		b.WriteByte(spec[i])
		i++
	}
	return b.String(), i
}

func formatSequence(elems iter.Seq[any], empty bool, spec string) (string, error) {
	as, dec, i, err := parseCollectionSpec(spec, false)
	if err != nil {
		return "", err
	}
	var forward string
	if hasForward(spec, i) {
		forward = spec[i+1:]
	}

	if empty {
		return PadToWidth(dec.empty, as, 0, AlignLeft), nil
	}
	var b strings.Builder
	b.WriteString(dec.prefix)
	first := true
	for e := range elems {
		if !first {
			b.WriteString(dec.divider)
		}
		first = false
		s, err := ToString(e, forward)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	b.WriteString(dec.suffix)
	return PadToWidth(b.String(), as, 0, AlignLeft), nil
}

func formatMapping(entries iter.Seq2[any, any], empty bool, spec string) (string, error) {
	as, dec, i, err := parseCollectionSpec(spec, true)
	if err != nil {
		return "", err
	}
	var keySpec, valueSpec string
	if hasForward(spec, i) {
		keySpec, i = readForwardField(spec, i)
	}
	if hasForward(spec, i) {
		valueSpec = spec[i+1:]
	}

	if empty {
		return PadToWidth(dec.empty, as, 0, AlignLeft), nil
	}
	var b strings.Builder
	b.WriteString(dec.prefix)
	first := true
	for k, v := range entries {
		if !first {
			b.WriteString(dec.divider)
		}
		first = false
		ks, err := ToString(k, keySpec)
		if err != nil {
			return "", err
		}
		vs, err := ToString(v, valueSpec)
		if err != nil {
			return "", err
		}
		b.WriteString(ks)
		b.WriteString(dec.pairer)
		b.WriteString(vs)
	}
	b.WriteString(dec.suffix)
	return PadToWidth(b.String(), as, 0, AlignLeft), nil
}

// reflectElements yields the elements of a slice or array value.
func reflectElements(rv reflect.Value) iter.Seq[any] {
	return func(yield func(any) bool) {
		for i := range rv.Len() {
			if !yield(rv.Index(i).Interface()) {
				return
			}
		}
	}
}

// reflectEntries yields the entries of a map value in ascending key order.
func reflectEntries(rv reflect.Value) iter.Seq2[any, any] {
	keys := rv.MapKeys()
	slices.SortFunc(keys, compareKeys)
	return func(yield func(any, any) bool) {
		for _, k := range keys {
			if !yield(k.Interface(), rv.MapIndex(k).Interface()) {
				return
			}
		}
	}
}

// compareKeys orders map keys of the same type. Kinds without a natural
// order fall back to comparing their rendered text.
func compareKeys(a, b reflect.Value) int {
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
			return 0
		case b.Bool():
			return -1
		default:
			return 1
		}
	default:
		as, _ := ToString(a.Interface(), "")
		bs, _ := ToString(b.Interface(), "")
		return cmp.Compare(as, bs)
	}
}
