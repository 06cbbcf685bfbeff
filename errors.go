package fmtstr

import (
	"errors"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Sentinel errors for programmatic error handling. Every error returned by
// this package is a [*FormatError] that unwraps to one of these.
var (
	ErrParse           = errors.New("format string syntax error")
	ErrFormatSpec      = errors.New("invalid format specifier")
	ErrMissingArgument = errors.New("missing argument")
	ErrNoRenderer      = errors.New("no renderer for type")
)

// NoPos marks a [FormatError] without a known offset.
const NoPos = -1

// ErrorKind classifies a [FormatError].
type ErrorKind int

const (
	ParseError ErrorKind = iota
	FormatSpecError
	MissingArgumentError
	NoRendererError
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case ParseError:
		return "parse"
	case FormatSpecError:
		return "format spec"
	case MissingArgumentError:
		return "missing argument"
	case NoRendererError:
		return "no renderer"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// FormatError describes a failure to parse a format string or to render a
// value with a specifier. Format holds the text the error refers to: the whole
// format string for parse and argument errors, the specifier for spec errors.
// Pos is a byte offset into Format, or [NoPos].
type FormatError struct {
	Kind    ErrorKind
	Message string
	Format  string
	Pos     int
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Format != "" {
		b.WriteString(" in ")
		b.WriteString(strconv.Quote(e.Format))
		if e.Pos != NoPos {
			b.WriteString(" at offset ")
			b.WriteString(strconv.Itoa(e.Pos))
		}
	}
	return b.String()
}

// Unwrap returns the sentinel matching e.Kind.
func (e *FormatError) Unwrap() error {
	switch e.Kind {
	case ParseError:
		return ErrParse
	case FormatSpecError:
		return ErrFormatSpec
	case MissingArgumentError:
		return ErrMissingArgument
	case NoRendererError:
		return ErrNoRenderer
	default:
		return nil
	}
}

const describeFormatLabel = `in format string: "`

// Describe lays the error out over up to three lines: the message, the
// offending format text, and a caret under the failing position.
//
//	format error: Unexpected closing brace
//	in format string: "Hi :}"
//	                       ^
func (e *FormatError) Describe() string {
	var b strings.Builder
	b.WriteString("format error: ")
	b.WriteString(e.Message)
	if e.Format == "" {
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(describeFormatLabel)
	b.WriteString(e.Format)
	b.WriteString(`"`)
	if e.Pos != NoPos {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", len(describeFormatLabel)+e.CaretColumn()))
		b.WriteString("^")
	}
	return b.String()
}

// CaretColumn returns the display column of Pos within Format, counting
// wide characters as two cells.
func (e *FormatError) CaretColumn() int {
	if e.Pos == NoPos {
		return 0
	}
	pos := min(max(e.Pos, 0), len(e.Format))
	return runewidth.StringWidth(e.Format[:pos])
}

func newParseError(msg, format string, pos int) *FormatError {
	return &FormatError{Kind: ParseError, Message: msg, Format: format, Pos: pos}
}

func newSpecError(msg, spec string, pos int) *FormatError {
	return &FormatError{Kind: FormatSpecError, Message: msg, Format: spec, Pos: pos}
}
