package fmtstr

import (
	"io"
	"os"
)

// Fprint renders format with args and writes the result to w. Arguments are
// borrowed rather than copied; a [Holder] argument is used as is.
func Fprint(w io.Writer, format string, args ...any) error {
	out, err := render(format, args)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Fprintln is like [Fprint] and appends a newline.
func Fprintln(w io.Writer, format string, args ...any) error {
	out, err := render(format, args)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}

func render(format string, args []any) (string, error) {
	t, err := Compile(format)
	if err != nil {
		return "", err
	}
	holders := make([]Holder, len(args))
	for i, a := range args {
		if holders[i], err = borrow(a); err != nil {
			return "", err
		}
	}
	return t.Render(holders)
}

// Print writes to standard output.
func Print(format string, args ...any) error {
	return Fprint(os.Stdout, format, args...)
}

// Println writes to standard output followed by a newline.
func Println(format string, args ...any) error {
	return Fprintln(os.Stdout, format, args...)
}

// Format renders format with args and returns the text.
//
//	s, err := fmtstr.Format("{2} before {1}", "b", "a") // "a before b"
func Format(format string, args ...any) (string, error) {
	return render(format, args)
}

// MustFormat is like [Format] but panics on error.
func MustFormat(format string, args ...any) string {
	s, err := Format(format, args...)
	if err != nil {
		panic(err)
	}
	return s
}
