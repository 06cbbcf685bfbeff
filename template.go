package fmtstr

import (
	"strings"
)

// SegmentKind tells literal text apart from variable slots.
type SegmentKind int

const (
	// Literal segments are emitted as Source()[Start:End].
	Literal SegmentKind = iota
	// Variable segments render argument Index with the specifier
	// Source()[Start:End], escape collapsed.
	Variable
)

func (k SegmentKind) String() string {
	if k == Variable {
		return "variable"
	}
	return "literal"
}

// Segment is one piece of a compiled [Template].
type Segment struct {
	Kind SegmentKind
	// Index is the 0-based argument index of a variable segment.
	Index int
	// Start and End delimit the literal text or the raw specifier.
	Start, End int
	// Pos is the offset of the opening brace of a variable segment and
	// equals Start for literals.
	Pos int
}

// Template is a compiled format string. It is immutable and safe for
// concurrent use.
type Template struct {
	source    string
	segments  []Segment
	requested int
}

// Compile parses format. Slots are written {}, {n} or {n:spec} with n a
// 1-based argument index; {{ and }} stand for literal braces. A specifier
// runs to the first closing brace that is not part of a }} pair.
func Compile(format string) (*Template, error) {
	var (
		segments []Segment
		l        = len(format)
		b, i     int
		auto     int
	)
	literal := func(end int) {
		if end > b {
			segments = append(segments, Segment{Kind: Literal, Start: b, End: end, Pos: b})
		}
	}

	for i < l {
		switch format[i] {
		case '{':
			literal(i)
			open := i
			i++
			if i >= l {
				return nil, newParseError("EOF within variable specifier", format, i)
			}
			if format[i] == '{' {
				// The second brace starts the next literal run.
				b = i
				break
			}

			var id int
			if isDigit(format[i]) {
				begin := i
				id, i = readNumber(format, i)
				if id == 0 {
					return nil, newParseError("Variable IDs start at 1", format, begin)
				}
				id--
			} else {
				id = auto
				auto++
			}

			seg := Segment{Kind: Variable, Index: id, Start: i, End: i, Pos: open}
			if i < l && format[i] == ':' {
				i++
				seg.Start = i
				i = specEnd(format, i)
				if i >= l {
					return nil, newParseError("EOF within variable specifier", format, i)
				}
				seg.End = i
			} else if i >= l {
				return nil, newParseError("EOF within variable specifier", format, i)
			} else if format[i] != '}' {
				return nil, newParseError("Closing brace or colon expected", format, i)
			}
			segments = append(segments, seg)
			b = i + 1
		case '}':
			if i+1 >= l || format[i+1] != '}' {
				return nil, newParseError("Unexpected closing brace", format, i)
			}
			literal(i)
			i++
			b = i
		}
		i++
	}
	literal(l)

	t := &Template{source: format, segments: segments}
	for _, s := range segments {
		if s.Kind == Variable {
			t.requested = max(t.requested, s.Index+1)
		}
	}
	return t, nil
}

// MustCompile is like [Compile] but panics on error.
func MustCompile(format string) *Template {
	t, err := Compile(format)
	if err != nil {
		panic(err)
	}
	return t
}

// specEnd returns the offset of the brace closing the specifier that starts
// at i, or len(format) if there is none. A run of closing braces ends the
// specifier at its first brace when the run has odd length.
func specEnd(format string, i int) int {
	for i < len(format) {
		if format[i] == '}' {
			run := 1
			for i+run < len(format) && format[i+run] == '}' {
				run++
			}
			if run%2 == 1 {
				return i
			}
			i += run
			continue
		}
		i++
	}
	return i
}

// Source returns the format string t was compiled from.
func (t *Template) Source() string { return t.source }

// Segments returns a copy of the compiled segments.
func (t *Template) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// Requested returns one more than the highest argument index referenced,
// or 0 when the template has no slots.
func (t *Template) Requested() int { return t.requested }

// Spec returns the escape-collapsed specifier of a variable segment.
func (t *Template) Spec(s Segment) string {
	return collapseBraces(t.source[s.Start:s.End])
}

// Render renders the template with args, where args[i] is argument i.
func (t *Template) Render(args []Holder) (string, error) {
	var b strings.Builder
	for _, s := range t.segments {
		if s.Kind == Literal {
			b.WriteString(t.source[s.Start:s.End])
			continue
		}
		if s.Index >= len(args) {
			return "", &FormatError{
				Kind:    MissingArgumentError,
				Message: "Not enough variables provided",
				Format:  t.source,
				Pos:     s.Pos,
			}
		}
		text, err := args[s.Index].Render(t.Spec(s))
		if err != nil {
			return "", err
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

// collapseBraces turns {{ into { and }} into }. Single braces are kept.
func collapseBraces(spec string) string {
	if !strings.ContainsAny(spec, "{}") {
		return spec
	}
	var b strings.Builder
	b.Grow(len(spec))
	for i := 0; i < len(spec); i++ {
		c := spec[i]
		if (c == '{' || c == '}') && i+1 < len(spec) && spec[i+1] == c {
			i++
		}
		b.WriteByte(c)
	}
	return b.String()
}
