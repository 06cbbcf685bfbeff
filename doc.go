// Package fmtstr renders brace format strings with typed arguments.
//
// A format string mixes literal text with slots. A slot is written {} for
// the next argument, {n} for argument n (1-based) or {n:spec} to pass a
// specifier to the argument's renderer. {{ and }} stand for literal braces.
// The quick entry point is [Format]:
//
//	s, err := fmtstr.Format("{2} before {1}", "b", "a") // "a before b"
//
// [Compile] parses a format string once into a [Template]; a [Session] pairs
// a template with bound arguments and can be rendered repeatedly.
//
// # Specifiers
//
// Every built-in type has its own specifier grammar. Most start with
// [[fill]align][width], where align is one of <, >, ^ or = (sign aware):
//
//   - integers: [sign][#][0][width][type], type d, b, o, x or X
//   - floats: [sign][#][0][width][.precision][type], type f, e, E, ee,
//     EE, si, g or G
//   - strings: [#][width][ s<begin>-<end>][ r<find>-<replace>]...
//   - bools: [width][n<true> <false>]
//   - slices, arrays and maps: [width][i|m|d...|D...][:forward]
//   - [Pair] and [Tuple]: [width][d...][:forward]...
//
// A forward field hands the rest of a specifier to the elements:
//
//	fmtstr.Format("{:i:x}", []int{10, 11, 12})              // "[a, b, c]"
//	fmtstr.Format("{::#x:si}", fmtstr.MakePair(42, 3.5e-5)) // "(0x2a, 35u)"
//
// A leading ':' followed by an align character is read as a fill, so
// "{::>3}" pads the whole list with colons. Put a mode letter first to
// forward such a field to the elements: "{:i:>3}".
//
// # Custom Types
//
// Other types are rendered through the first capability they offer, in
// [Tier] order:
//
//   - a function installed with [Register] or [RegisterSimple]
//   - [SpecRenderer], which receives the specifier
//   - String or Error methods
//   - MarshalText, pointer dereference, or conversion of a named type to
//     its underlying type
//   - fmt.Formatter or fmt.GoStringer
//
// Use [IsSupported] or [TierOf] to check a type up front.
//
// # Arguments
//
// [Session.Arg] binds a deep copy, so later changes to the value are not
// seen. [Ref] binds a pointer that is read at render time, [Shared] and
// [Weak] bind a weak pointer that renders "nullptr" once collected, and
// [WithSpec] pins a specifier to an argument.
//
// # Errors
//
// Every error is a [*FormatError] that unwraps to [ErrParse],
// [ErrFormatSpec], [ErrMissingArgument] or [ErrNoRenderer].
// [FormatError.Describe] draws a caret under the failing position.
package fmtstr
