package fmtstr_test

import (
	"math"
	"testing"

	"github.com/bjaus/fmtstr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type weekday int

func TestIntToString(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		value any
		spec  string
		want  string
	}{
		// Integral types
		"int8":   {value: int8(-12), want: "-12"},
		"int16":  {value: int16(-12345), want: "-12345"},
		"int":    {value: -42, want: "-42"},
		"int32":  {value: int32(-9174), want: "-9174"},
		"int64":  {value: int64(-1999581), want: "-1999581"},
		"uint8":  {value: uint8(155), want: "155"},
		"uint16": {value: uint16(20000), want: "20000"},
		"uint":   {value: uint(42), want: "42"},
		"uint32": {value: uint32(12343), want: "12343"},
		"uint64": {value: uint64(918571), want: "918571"},
		"named":  {value: weekday(3), spec: "03", want: "003"},

		// Limits
		"zero":       {value: 0, want: "0"},
		"max int8":   {value: int8(math.MaxInt8), want: "127"},
		"max int16":  {value: int16(math.MaxInt16), want: "32767"},
		"max int32":  {value: int32(math.MaxInt32), want: "2147483647"},
		"max int64":  {value: int64(math.MaxInt64), want: "9223372036854775807"},
		"min int8":   {value: int8(math.MinInt8), want: "-128"},
		"min int16":  {value: int16(math.MinInt16), want: "-32768"},
		"min int32":  {value: int32(math.MinInt32), want: "-2147483648"},
		"min int64":  {value: int64(math.MinInt64), want: "-9223372036854775808"},
		"max uint8":  {value: uint8(math.MaxUint8), want: "255"},
		"max uint16": {value: uint16(math.MaxUint16), want: "65535"},
		"max uint32": {value: uint32(math.MaxUint32), want: "4294967295"},
		"max uint64": {value: uint64(math.MaxUint64), want: "18446744073709551615"},
		"min int64 binary": {
			value: int64(math.MinInt64),
			spec:  "b",
			want:  "-1000000000000000000000000000000000000000000000000000000000000000",
		},
		"max uint64 octal": {value: uint64(math.MaxUint64), spec: "#o", want: "0o1777777777777777777777"},

		// Alignment
		"width":            {value: 42, spec: "5", want: "   42"},
		"right":            {value: 42, spec: ">5", want: "   42"},
		"left":             {value: 42, spec: "<5", want: "42   "},
		"center":           {value: 42, spec: "^5", want: " 42  "},
		"sign aware":       {value: 42, spec: "=5", want: "   42"},
		"fill right":       {value: -42, spec: ".>6", want: "...-42"},
		"fill sign aware":  {value: -42, spec: ".=6", want: "-...42"},
		"fill center zero": {value: 0, spec: ".^5", want: "..0.."},
		"unicode fill":     {value: 7, spec: "·>3", want: "··7"},

		// Sign
		"minus zero":     {value: 0, spec: "-", want: "0"},
		"minus positive": {value: 1, spec: "-", want: "1"},
		"minus negative": {value: -1, spec: "-", want: "-1"},
		"plus zero":      {value: 0, spec: "+", want: "+0"},
		"plus positive":  {value: 1, spec: "+", want: "+1"},
		"plus negative":  {value: -1, spec: "+", want: "-1"},
		"space zero":     {value: 0, spec: " ", want: " 0"},
		"space positive": {value: 1, spec: " ", want: " 1"},
		"space negative": {value: -1, spec: " ", want: "-1"},

		// Zero padding
		"zero negative":    {value: -5, spec: "05", want: "-0005"},
		"zero plus":        {value: 10, spec: "+05", want: "+0010"},
		"zero space":       {value: 0, spec: " 03", want: " 00"},
		"zero beats align": {value: 7, spec: "<03", want: "007"},
		"zero with prefix": {value: 255, spec: "#08x", want: "0x0000ff"},

		// Bases
		"hex":             {value: 42, spec: "x", want: "2a"},
		"upper hex":       {value: 42, spec: "X", want: "2A"},
		"octal":           {value: 42, spec: "o", want: "52"},
		"binary":          {value: 42, spec: "b", want: "101010"},
		"decimal":         {value: 42, spec: "d", want: "42"},
		"negative hex":    {value: -42, spec: "x", want: "-2a"},
		"negative octal":  {value: -42, spec: "o", want: "-52"},
		"negative binary": {value: -42, spec: "b", want: "-101010"},
		"zero hex":        {value: 0, spec: "x", want: "0"},

		// Alternate
		"alt decimal":     {value: 12, spec: "#d", want: "12"},
		"alt binary":      {value: 12, spec: "#b", want: "0b1100"},
		"alt octal":       {value: 12, spec: "#o", want: "0o14"},
		"alt hex":         {value: 12, spec: "#x", want: "0xc"},
		"alt upper hex":   {value: 12, spec: "#X", want: "0xC"},
		"plus alt binary": {value: 12, spec: "+#b", want: "+0b1100"},
		"plus alt octal":  {value: 12, spec: "+#o", want: "+0o14"},
		"plus alt hex":    {value: 12, spec: "+#x", want: "+0xc"},
		"plus alt X":      {value: 12, spec: "+#X", want: "+0xC"},
		"space alt zero":  {value: 0, spec: " #x", want: " 0x0"},
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

func TestIntToStringErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		spec    string
		message string
		pos     int
	}{
		"hash after zero":  {spec: "+0#", message: `Unknown type parameter "#"`, pos: 2},
		"float type":       {spec: "e", message: `Unknown type parameter "e"`, pos: 0},
		"double sign":      {spec: "--<6", message: `Unknown type parameter "-<6"`, pos: 1},
		"missing max prec": {spec: ".3-", message: "Maximum precision expected after '-'", pos: 3},
		"inverted prec":    {spec: ".3-2", message: "Maximum precision less than minimum", pos: 3},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := fmtstr.ToString(0, tt.spec)
			require.ErrorIs(t, err, fmtstr.ErrFormatSpec)

			var fe *fmtstr.FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.message, fe.Message)
			assert.Equal(t, tt.spec, fe.Format)
			assert.Equal(t, tt.pos, fe.Pos)
		})
	}
}
