package fmtstr

import (
	"io"
)

// Option configures a [Session].
type Option func(*Session)

// KeepArgs keeps bound arguments across renders. By default the first
// argument bound after a successful render discards the previous ones.
func KeepArgs() Option {
	return func(s *Session) { s.keepArgs = true }
}

// Session pairs a compiled format string with bound arguments.
//
// After a successful render the session is marked rendered. Binding an
// argument while it is marked clears all bound arguments first, so a session
// can be reused in a loop:
//
//	s := fmtstr.MustNew("{} apples")
//	for _, n := range counts {
//		s.Arg(n)
//		fmt.Println(s.MustRender())
//	}
//
// Use [KeepArgs] to disable this. A Session is not safe for concurrent use;
// [Session.Clone] it per goroutine instead.
type Session struct {
	tmpl     *Template
	args     []Holder
	rendered bool
	keepArgs bool
}

// New compiles format into a new session.
func New(format string, opts ...Option) (*Session, error) {
	t, err := Compile(format)
	if err != nil {
		return nil, err
	}
	s := &Session{tmpl: t}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MustNew is like [New] but panics on error.
func MustNew(format string, opts ...Option) *Session {
	s, err := New(format, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Format returns the current format string.
func (s *Session) Format() string { return s.tmpl.Source() }

// SetFormat recompiles the session with format and clears the rendered
// mark. Bound arguments are kept. On error the session is left unchanged.
func (s *Session) SetFormat(format string) error {
	t, err := Compile(format)
	if err != nil {
		return err
	}
	s.tmpl = t
	s.rendered = false
	return nil
}

// Template returns the compiled format string.
func (s *Session) Template() *Template { return s.tmpl }

// Requested returns how many arguments the format string needs.
func (s *Session) Requested() int { return s.tmpl.Requested() }

// Provided returns how many arguments are bound.
func (s *Session) Provided() int { return len(s.args) }

// Rendered reports whether the session was rendered since the last argument
// was bound.
func (s *Session) Rendered() bool { return s.rendered }

// ResetRendered clears the rendered mark so the next bind appends instead of
// starting over.
func (s *Session) ResetRendered() { s.rendered = false }

// Clear drops all bound arguments.
func (s *Session) Clear() { s.args = nil }

// Bind appends h as the next argument.
func (s *Session) Bind(h Holder) {
	if s.rendered && !s.keepArgs {
		s.Clear()
	}
	s.rendered = false
	s.args = append(s.args, h)
}

// Arg binds a copy of v. A Holder is bound as is, so [Ref] and [Shared]
// keep their reference semantics.
func (s *Session) Arg(v any) error {
	h, ok := v.(Holder)
	if !ok {
		var err error
		if h, err = Copy(v); err != nil {
			return err
		}
	}
	s.Bind(h)
	return nil
}

// Args binds each of vs in order, stopping at the first error.
func (s *Session) Args(vs ...any) error {
	for _, v := range vs {
		if err := s.Arg(v); err != nil {
			return err
		}
	}
	return nil
}

// Render renders the format string with the bound arguments and marks the
// session rendered.
func (s *Session) Render() (string, error) {
	out, err := s.tmpl.Render(s.args)
	if err != nil {
		return "", err
	}
	s.rendered = true
	return out, nil
}

// MustRender is like [Session.Render] but panics on error.
func (s *Session) MustRender() string {
	out, err := s.Render()
	if err != nil {
		panic(err)
	}
	return out
}

// Write renders the session to w.
func (s *Session) Write(w io.Writer) error {
	out, err := s.Render()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Writeln renders the session to w followed by a newline.
func (s *Session) Writeln(w io.Writer) error {
	out, err := s.Render()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out+"\n")
	return err
}

// Clone returns a session with the same format and options and a clone of
// every bound argument.
func (s *Session) Clone() *Session {
	c := &Session{tmpl: s.tmpl, rendered: s.rendered, keepArgs: s.keepArgs}
	if s.args != nil {
		c.args = make([]Holder, len(s.args))
		for i, h := range s.args {
			c.args[i] = h.Clone()
		}
	}
	return c
}
