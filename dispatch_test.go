package fmtstr_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bjaus/fmtstr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each type below adds one capability on top of the previous one, so the
// highest ranked capability decides the output.

type printOnly struct{}

func (printOnly) Format(f fmt.State, _ rune) { _, _ = f.Write([]byte("A")) }

type withText struct{ printOnly }

func (withText) MarshalText() ([]byte, error) { return []byte("B"), nil }

type withString struct{ withText }

func (withString) String() string { return "C" }

type withSpec struct{ withString }

func (withSpec) Render(string) (string, error) { return "D", nil }

type withSimple struct{ withSpec }

type withRenderer struct{ withSimple }

type goStringOnly struct{}

func (goStringOnly) GoString() string { return "gostring" }

type failingText struct{}

var errMarshal = errors.New("marshal failed")

func (failingText) MarshalText() ([]byte, error) { return nil, errMarshal }

type ptrStringer struct{ name string }

func (p *ptrStringer) String() string { return "ptr:" + p.name }

type tree []tree

type opaque struct{ ch chan int }

type unregistered struct{ withString }

func init() {
	fmtstr.RegisterSimple(func(withSimple) string { return "E" })
	fmtstr.RegisterSimple(func(withRenderer) string { return "E" })
	fmtstr.Register(func(_ withRenderer, spec string) (string, error) { return "F" + spec, nil })
}

func TestDispatchPriority(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		value any
		want  string
		tier  fmtstr.Tier
	}{
		"formatter":      {value: printOnly{}, want: "A", tier: fmtstr.TierPrint},
		"text marshaler": {value: withText{}, want: "B", tier: fmtstr.TierConversion},
		"stringer":       {value: withString{}, want: "C", tier: fmtstr.TierMethod},
		"spec method":    {value: withSpec{}, want: "D", tier: fmtstr.TierSpecMethod},
		"simple":         {value: withSimple{}, want: "E", tier: fmtstr.TierSimpleRenderer},
		"renderer":       {value: withRenderer{}, want: "F", tier: fmtstr.TierRenderer},
		"go stringer":    {value: goStringOnly{}, want: "gostring", tier: fmtstr.TierPrint},
		"error":          {value: errors.New("boom"), want: "boom", tier: fmtstr.TierMethod},
		"string":         {value: "a", want: "a", tier: fmtstr.TierRenderer},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := fmtstr.ToString(tt.value, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	tier, ok := fmtstr.TierOf[printOnly]()
	assert.True(t, ok)
	assert.Equal(t, fmtstr.TierPrint, tier)
	tier, _ = fmtstr.TierOf[withText]()
	assert.Equal(t, fmtstr.TierConversion, tier)
	tier, _ = fmtstr.TierOf[withString]()
	assert.Equal(t, fmtstr.TierMethod, tier)
	tier, _ = fmtstr.TierOf[withSpec]()
	assert.Equal(t, fmtstr.TierSpecMethod, tier)
	tier, _ = fmtstr.TierOf[withSimple]()
	assert.Equal(t, fmtstr.TierSimpleRenderer, tier)
	tier, _ = fmtstr.TierOf[withRenderer]()
	assert.Equal(t, fmtstr.TierRenderer, tier)
	tier, _ = fmtstr.TierOf[celsius]()
	assert.Equal(t, fmtstr.TierConversion, tier)
	tier, _ = fmtstr.TierOf[fmtstr.Char]()
	assert.Equal(t, fmtstr.TierRenderer, tier)

	_, ok = fmtstr.TierOf[opaque]()
	assert.False(t, ok)
}

func TestRegisterForwardsSpec(t *testing.T) {
	t.Parallel()
	got, err := fmtstr.ToString(withRenderer{}, "xyz")
	require.NoError(t, err)
	assert.Equal(t, "Fxyz", got)

	s := fmtstr.MustNew("<{:spec}>")
	require.NoError(t, s.Arg(withRenderer{}))
	assert.Equal(t, "<Fspec>", s.MustRender())
}

func TestRegisterOverridesBuiltin(t *testing.T) {
	t.Parallel()
	type percent float64
	fmtstr.Register(func(p percent, spec string) (string, error) {
		s, err := fmtstr.ToString(float64(p)*100, spec)
		return s + "%", err
	})
	got, err := fmtstr.ToString(percent(0.25), ".1f")
	require.NoError(t, err)
	assert.Equal(t, "25.0%", got)
}

func TestRegisterInterfacePanics(t *testing.T) {
	t.Parallel()
	assert.PanicsWithValue(t, "fmtstr: Register needs a concrete type, got interface fmt.Stringer", func() {
		fmtstr.Register(func(fmt.Stringer, string) (string, error) { return "", nil })
	})
	assert.PanicsWithValue(t, "fmtstr: RegisterSimple needs a concrete type, got interface error", func() {
		fmtstr.RegisterSimple(func(error) string { return "" })
	})
}

func TestUnregister(t *testing.T) {
	t.Parallel()
	fmtstr.RegisterSimple(func(unregistered) string { return "registered" })
	got, err := fmtstr.ToString(unregistered{}, "")
	require.NoError(t, err)
	assert.Equal(t, "registered", got)

	fmtstr.Unregister[unregistered]()
	got, err = fmtstr.ToString(unregistered{}, "")
	require.NoError(t, err)
	assert.Equal(t, "C", got)
}

func TestIsSupported(t *testing.T) {
	t.Parallel()
	assert.True(t, fmtstr.IsSupported[int]())
	assert.True(t, fmtstr.IsSupported[string]())
	assert.True(t, fmtstr.IsSupported[[]map[string]float64]())
	assert.True(t, fmtstr.IsSupported[*int]())
	assert.True(t, fmtstr.IsSupported[fmtstr.Pair[int, string]]())
	assert.True(t, fmtstr.IsSupported[fmtstr.Multimap]())
	assert.True(t, fmtstr.IsSupported[tree]())
	assert.True(t, fmtstr.IsSupported[fmt.Stringer]())
	assert.True(t, fmtstr.IsSupported[error]())
	assert.True(t, fmtstr.IsSupported[fmtstr.SpecRenderer]())

	assert.False(t, fmtstr.IsSupported[any]())
	assert.False(t, fmtstr.IsSupported[opaque]())
	assert.False(t, fmtstr.IsSupported[chan int]())
	assert.False(t, fmtstr.IsSupported[[]chan int]())
	assert.False(t, fmtstr.IsSupported[map[string]func()]())
	assert.False(t, fmtstr.IsSupported[*opaque]())
}

func TestToStringConversions(t *testing.T) {
	t.Parallel()
	n := 7
	var nilInt *int
	var nilStringer *ptrStringer
	tests := map[string]struct {
		value any
		spec  string
		want  string
	}{
		"pointer":          {value: &n, spec: "03", want: "007"},
		"pointer pointer":  {value: func() **int { p := &n; return &p }(), want: "7"},
		"nil pointer":      {value: nilInt, want: "nullptr"},
		"nil":              {value: nil, want: "nullptr"},
		"pointer receiver": {value: &ptrStringer{name: "x"}, want: "ptr:x"},
		"nil receiver":     {value: nilStringer, want: "nullptr"},
		"text spec":        {value: withText{}, spec: ">3", want: "  B"},
		"recursive":        {value: tree{tree{}, tree{tree{}}}, want: "[[], [[]]]"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := fmtstr.ToString(tt.value, tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToStringErrors(t *testing.T) {
	t.Parallel()
	_, err := fmtstr.ToString(opaque{}, "")
	require.ErrorIs(t, err, fmtstr.ErrNoRenderer)
	assert.True(t, strings.Contains(err.Error(), "opaque"), err.Error())

	var fe *fmtstr.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fmtstr.NoRendererError, fe.Kind)
	assert.Equal(t, fmtstr.NoPos, fe.Pos)

	_, err = fmtstr.ToString(failingText{}, "")
	require.ErrorIs(t, err, errMarshal)

	_, err = fmtstr.ToString(fmtstr.MakePair(1, opaque{}), "")
	require.ErrorIs(t, err, fmtstr.ErrNoRenderer)
}

func TestRenderGeneric(t *testing.T) {
	t.Parallel()
	got, err := fmtstr.Render(42, "#x")
	require.NoError(t, err)
	assert.Equal(t, "0x2a", got)

	var s fmt.Stringer = withString{}
	got, err = fmtstr.Render(s, "")
	require.NoError(t, err)
	assert.Equal(t, "C", got)
}
