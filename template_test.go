package fmtstr_test

import (
	"testing"

	"github.com/bjaus/fmtstr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echo renders the specifier it receives.
type echo struct{}

func (echo) Render(spec string) (string, error) { return spec, nil }

func TestCompileLiterals(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format string
		want   string
	}{
		"plain":          {format: "Hello World", want: "Hello World"},
		"empty":          {format: "", want: ""},
		"escaped braces": {format: "Escape {{ me }}", want: "Escape { me }"},
		"nested escapes": {format: "{{{{ :-}} }}}} {{}}", want: "{{ :-} }} {}"},
		"reversed":       {format: "}}{{", want: "}{"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tmpl, err := fmtstr.Compile(tt.format)
			require.NoError(t, err)
			got, err := tmpl.Render(nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 0, tmpl.Requested())
		})
	}
}

func TestCompileSegments(t *testing.T) {
	t.Parallel()
	tmpl, err := fmtstr.Compile("a{2:x}b{}")
	require.NoError(t, err)
	assert.Equal(t, []fmtstr.Segment{
		{Kind: fmtstr.Literal, Start: 0, End: 1, Pos: 0},
		{Kind: fmtstr.Variable, Index: 1, Start: 4, End: 5, Pos: 1},
		{Kind: fmtstr.Literal, Start: 6, End: 7, Pos: 6},
		{Kind: fmtstr.Variable, Index: 0, Start: 8, End: 8, Pos: 7},
	}, tmpl.Segments())
	assert.Equal(t, 2, tmpl.Requested())
	assert.Equal(t, "a{2:x}b{}", tmpl.Source())

	// Returned slice must be a copy.
	segs := tmpl.Segments()
	segs[0].End = 99
	assert.Equal(t, 1, tmpl.Segments()[0].End)
}

func TestCompileDeterministic(t *testing.T) {
	t.Parallel()
	const format = "{1:{{x}}} and {} then {3}}}"
	a := fmtstr.MustCompile(format)
	b := fmtstr.MustCompile(format)
	assert.Equal(t, a.Segments(), b.Segments())
}

func TestTemplateSpec(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format string
		want   string
	}{
		"no spec":          {format: "{}", want: ""},
		"plain spec":       {format: "{1:argument}", want: "argument"},
		"escaped braces":   {format: "{:{{braces}} }", want: "{braces} "},
		"lone open brace":  {format: "{:a{b}", want: "a{b"},
		"odd brace run":    {format: "{:x}}}", want: "x"},
		"even brace run":   {format: "{:x}}y}", want: "x}y"},
		"trailing literal": {format: "{}}}", want: ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tmpl := fmtstr.MustCompile(tt.format)
			for _, s := range tmpl.Segments() {
				if s.Kind == fmtstr.Variable {
					assert.Equal(t, tt.want, tmpl.Spec(s))
					return
				}
			}
			t.Fatal("no variable segment")
		})
	}
}

func TestTemplateRender(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format string
		args   []any
		want   string
	}{
		"in order":        {format: "{}, {}, {}", args: []any{1, 2, 3}, want: "1, 2, 3"},
		"chars":           {format: "{}, {}", args: []any{fmtstr.Char('a'), fmtstr.Char('b')}, want: "a, b"},
		"reversed ids":    {format: "{3}, {2}, {1}", args: []any{1, 2, 3}, want: "3, 2, 1"},
		"mixed ids":       {format: "{1}, {}, {3}, {}", args: []any{1, 2, 3}, want: "1, 1, 3, 2"},
		"forwarded spec":  {format: "{1:argument}", args: []any{echo{}}, want: "argument"},
		"escaped in spec": {format: "{:{{braces}} }", args: []any{echo{}}, want: "{braces} "},
		"closing after":   {format: "{}}}", args: []any{1}, want: "1}"},
		"braced value":    {format: "{{{}}}", args: []any{"hi"}, want: "{hi}"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tmpl := fmtstr.MustCompile(tt.format)
			args := make([]fmtstr.Holder, len(tt.args))
			for i, a := range tt.args {
				args[i] = fmtstr.MustCopy(a)
			}
			got, err := tmpl.Render(args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplateRenderMissingArgument(t *testing.T) {
	t.Parallel()
	tmpl := fmtstr.MustCompile("a {} b {}")
	_, err := tmpl.Render([]fmtstr.Holder{fmtstr.MustCopy(1)})
	require.ErrorIs(t, err, fmtstr.ErrMissingArgument)

	var fe *fmtstr.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Not enough variables provided", fe.Message)
	assert.Equal(t, "a {} b {}", fe.Format)
	assert.Equal(t, 7, fe.Pos)
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		format  string
		message string
		pos     int
	}{
		"zero id":            {format: "{0}", message: "Variable IDs start at 1", pos: 1},
		"garbage after id":   {format: "{foo", message: "Closing brace or colon expected", pos: 1},
		"unterminated spec":  {format: "{1:", message: "EOF within variable specifier", pos: 3},
		"even run at end":    {format: "{:}}", message: "EOF within variable specifier", pos: 4},
		"lone open at end":   {format: "abc{", message: "EOF within variable specifier", pos: 4},
		"id without closing": {format: "{12", message: "EOF within variable specifier", pos: 3},
		"stray closing":      {format: "Hi :}", message: "Unexpected closing brace", pos: 4},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := fmtstr.Compile(tt.format)
			require.ErrorIs(t, err, fmtstr.ErrParse)

			var fe *fmtstr.FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, fmtstr.ParseError, fe.Kind)
			assert.Equal(t, tt.message, fe.Message)
			assert.Equal(t, tt.format, fe.Format)
			assert.Equal(t, tt.pos, fe.Pos)
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { fmtstr.MustCompile("}") })
}

func TestSegmentKindString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "literal", fmtstr.Literal.String())
	assert.Equal(t, "variable", fmtstr.Variable.String())
}
