package fmtstr

import (
	"encoding"
	"fmt"
	"reflect"
	"sync"
)

// SpecRenderer is implemented by types that render themselves under a
// specifier.
type SpecRenderer interface {
	Render(spec string) (string, error)
}

// Tier identifies which capability a type is rendered through. Lower tiers
// win when a type offers several.
type Tier int

const (
	// TierRenderer is a registered or built-in func(T, spec) renderer.
	TierRenderer Tier = iota + 1
	// TierSimpleRenderer is a registered func(T) string renderer.
	TierSimpleRenderer
	// TierSpecMethod is a Render(spec) method.
	TierSpecMethod
	// TierMethod is a String or Error method.
	TierMethod
	// TierConversion is a MarshalText method, a named type converted to its
	// underlying kind, or a pointer to a renderable type.
	TierConversion
	// TierPrint prints through a Format or GoString method.
	TierPrint
)

// nullText replaces nil pointers, nil interfaces and expired references.
const nullText = "nullptr"

type renderFunc func(v any, spec string) (string, error)

type resolution struct {
	tier   Tier
	render renderFunc
}

var (
	registryMu sync.RWMutex
	registered = map[reflect.Type]renderFunc{}
	simple     = map[reflect.Type]renderFunc{}

	// resolved caches resolution results per type, including failures.
	resolved sync.Map // reflect.Type -> *resolution (nil when unsupported)

	builtins map[reflect.Type]renderFunc
)

func builtin[T any](fn func(T, string) (string, error)) renderFunc {
	return func(v any, spec string) (string, error) { return fn(v.(T), spec) }
}

func init() {
	builtins = map[reflect.Type]renderFunc{
		reflect.TypeFor[bool]():    builtin(formatBool),
		reflect.TypeFor[int]():     builtin(formatInt[int]),
		reflect.TypeFor[int8]():    builtin(formatInt[int8]),
		reflect.TypeFor[int16]():   builtin(formatInt[int16]),
		reflect.TypeFor[int32]():   builtin(formatInt[int32]),
		reflect.TypeFor[int64]():   builtin(formatInt[int64]),
		reflect.TypeFor[uint]():    builtin(formatInt[uint]),
		reflect.TypeFor[uint8]():   builtin(formatInt[uint8]),
		reflect.TypeFor[uint16]():  builtin(formatInt[uint16]),
		reflect.TypeFor[uint32]():  builtin(formatInt[uint32]),
		reflect.TypeFor[uint64]():  builtin(formatInt[uint64]),
		reflect.TypeFor[uintptr](): builtin(formatInt[uintptr]),
		reflect.TypeFor[float32](): builtin(formatFloat32),
		reflect.TypeFor[float64](): builtin(formatFloat64),
		reflect.TypeFor[string]():  builtin(formatString),
		reflect.TypeFor[Char]():    builtin(formatChar),
	}
}

// Register installs fn as the renderer for values of exactly type T. It
// outranks every other way T could be rendered, built-ins included.
// Renderers are looked up by dynamic type, so Register panics when T is an
// interface type.
func Register[T any](fn func(T, string) (string, error)) {
	mustBeConcrete[T]("Register")
	registryMu.Lock()
	defer registryMu.Unlock()
	registered[reflect.TypeFor[T]()] = builtin(fn)
	resolved.Clear()
}

// RegisterSimple installs fn as a renderer for T that ignores specifiers.
// Like [Register] it panics when T is an interface type.
func RegisterSimple[T any](fn func(T) string) {
	mustBeConcrete[T]("RegisterSimple")
	registryMu.Lock()
	defer registryMu.Unlock()
	simple[reflect.TypeFor[T]()] = func(v any, _ string) (string, error) { return fn(v.(T)), nil }
	resolved.Clear()
}

func mustBeConcrete[T any](fn string) {
	if t := reflect.TypeFor[T](); t.Kind() == reflect.Interface {
		panic("fmtstr: " + fn + " needs a concrete type, got interface " + t.String())
	}
}

// Unregister removes the renderers registered for T.
func Unregister[T any]() {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registered, reflect.TypeFor[T]())
	delete(simple, reflect.TypeFor[T]())
	resolved.Clear()
}

// IsSupported reports whether values of type T can be rendered. For an
// interface type it reports whether every implementation is guaranteed to be
// renderable through the interface's own methods.
func IsSupported[T any]() bool {
	_, ok := resolve(reflect.TypeFor[T]())
	return ok
}

// TierOf reports the tier T is rendered through.
func TierOf[T any]() (Tier, bool) {
	r, ok := resolve(reflect.TypeFor[T]())
	if !ok {
		return 0, false
	}
	return r.tier, true
}

// ToString renders v under spec, resolving the renderer from v's dynamic
// type. A nil v renders as "nullptr".
func ToString(v any, spec string) (string, error) {
	if v == nil {
		return nullText, nil
	}
	r, ok := resolve(reflect.TypeOf(v))
	if !ok {
		return "", noRenderer(reflect.TypeOf(v))
	}
	return r.render(v, spec)
}

// Render renders v under spec.
func Render[T any](v T, spec string) (string, error) {
	return ToString(v, spec)
}

func noRenderer(t reflect.Type) *FormatError {
	return &FormatError{
		Kind:    NoRendererError,
		Message: fmt.Sprintf("no way to render values of type %s", t),
		Pos:     NoPos,
	}
}

func resolve(t reflect.Type) (*resolution, bool) {
	return resolveSeen(t, nil)
}

// resolveSeen resolves t while tracking the types already being resolved
// further up the stack, so recursive types such as type L []L terminate.
func resolveSeen(t reflect.Type, seen map[reflect.Type]bool) (*resolution, bool) {
	if cached, ok := resolved.Load(t); ok {
		r := cached.(*resolution)
		return r, r != nil
	}
	if seen[t] {
		return &resolution{TierRenderer, ToString}, true
	}
	if seen == nil {
		seen = map[reflect.Type]bool{}
	}
	seen[t] = true
	r := lookup(t, seen)
	resolved.Store(t, r)
	return r, r != nil
}

var (
	specRendererType  = reflect.TypeFor[SpecRenderer]()
	stringerType      = reflect.TypeFor[fmt.Stringer]()
	errorType         = reflect.TypeFor[error]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	formatterType     = reflect.TypeFor[fmt.Formatter]()
	goStringerType    = reflect.TypeFor[fmt.GoStringer]()
	sequenceType      = reflect.TypeFor[Sequence]()
	mappingType       = reflect.TypeFor[Mapping]()
	tupleLikeType     = reflect.TypeFor[tupleLike]()
)

func lookup(t reflect.Type, seen map[reflect.Type]bool) *resolution {
	registryMu.RLock()
	fn, ok := registered[t]
	simpleFn, simpleOK := simple[t]
	registryMu.RUnlock()

	if ok {
		return &resolution{TierRenderer, fn}
	}
	if fn := builtinFor(t, seen); fn != nil {
		return &resolution{TierRenderer, fn}
	}
	if simpleOK {
		return &resolution{TierSimpleRenderer, simpleFn}
	}

	switch {
	case t.Implements(specRendererType):
		return &resolution{TierSpecMethod, guardNil(func(v any, spec string) (string, error) {
			return v.(SpecRenderer).Render(spec)
		})}
	case t.Implements(stringerType):
		return &resolution{TierMethod, guardNil(func(v any, _ string) (string, error) {
			return v.(fmt.Stringer).String(), nil
		})}
	case t.Implements(errorType):
		return &resolution{TierMethod, guardNil(func(v any, _ string) (string, error) {
			return v.(error).Error(), nil
		})}
	case t.Implements(textMarshalerType):
		return &resolution{TierConversion, guardNil(func(v any, spec string) (string, error) {
			text, err := v.(encoding.TextMarshaler).MarshalText()
			if err != nil {
				return "", err
			}
			return formatString(string(text), spec)
		})}
	}

	if fn := convertFor(t, seen); fn != nil {
		return &resolution{TierConversion, fn}
	}

	switch {
	case t.Implements(formatterType):
		return &resolution{TierPrint, guardNil(func(v any, spec string) (string, error) {
			return formatString(fmt.Sprint(v), spec)
		})}
	case t.Implements(goStringerType):
		return &resolution{TierPrint, guardNil(func(v any, spec string) (string, error) {
			return formatString(fmt.Sprintf("%#v", v), spec)
		})}
	}
	return nil
}

// builtinFor returns the built-in renderer for predeclared types, pairs,
// tuples, the collection interfaces and unnamed composite types.
func builtinFor(t reflect.Type, seen map[reflect.Type]bool) renderFunc {
	if fn, ok := builtins[t]; ok {
		return fn
	}
	if t.Kind() == reflect.Interface {
		return nil
	}
	switch {
	case t.Implements(tupleLikeType):
		return func(v any, spec string) (string, error) { return formatTuple(v.(tupleLike), spec) }
	case t.Implements(mappingType):
		return guardNil(func(v any, spec string) (string, error) {
			m := v.(Mapping)
			return formatMapping(m.Entries(), m.Empty(), spec)
		})
	case t.Implements(sequenceType):
		return guardNil(func(v any, spec string) (string, error) {
			s := v.(Sequence)
			return formatSequence(s.Elements(), s.Empty(), spec)
		})
	}
	if t.Name() == "" {
		return compositeFor(t, seen)
	}
	return nil
}

// compositeFor renders slices, arrays and maps through the collection
// grammars, provided their element types are renderable.
func compositeFor(t reflect.Type, seen map[reflect.Type]bool) renderFunc {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		if !renderable(t.Elem(), seen) {
			return nil
		}
		return func(v any, spec string) (string, error) {
			rv := reflect.ValueOf(v)
			return formatSequence(reflectElements(rv), rv.Len() == 0, spec)
		}
	case reflect.Map:
		if !renderable(t.Key(), seen) || !renderable(t.Elem(), seen) {
			return nil
		}
		return func(v any, spec string) (string, error) {
			rv := reflect.ValueOf(v)
			return formatMapping(reflectEntries(rv), rv.Len() == 0, spec)
		}
	default:
		return nil
	}
}

// renderable reports whether element values of type t can be rendered.
// Interface elements are resolved per value.
func renderable(t reflect.Type, seen map[reflect.Type]bool) bool {
	if t.Kind() == reflect.Interface {
		return true
	}
	_, ok := resolveSeen(t, seen)
	return ok
}

// convertFor handles named types by converting to their underlying kind,
// and pointers by rendering the pointee.
func convertFor(t reflect.Type, seen map[reflect.Type]bool) renderFunc {
	switch t.Kind() {
	case reflect.Pointer:
		if !renderable(t.Elem(), seen) {
			return nil
		}
		return func(v any, spec string) (string, error) {
			rv := reflect.ValueOf(v)
			if rv.IsNil() {
				return nullText, nil
			}
			return ToString(rv.Elem().Interface(), spec)
		}
	case reflect.Interface, reflect.Struct, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil
	}

	under := underlyingType(t)
	if under == nil || under == t {
		return nil
	}
	r, ok := resolveSeen(under, seen)
	if !ok {
		return nil
	}
	return func(v any, spec string) (string, error) {
		return r.render(reflect.ValueOf(v).Convert(under).Interface(), spec)
	}
}

// underlyingType returns the unnamed type with the same structure as t.
func underlyingType(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Bool:
		return reflect.TypeFor[bool]()
	case reflect.Int:
		return reflect.TypeFor[int]()
	case reflect.Int8:
		return reflect.TypeFor[int8]()
	case reflect.Int16:
		return reflect.TypeFor[int16]()
	case reflect.Int32:
		return reflect.TypeFor[int32]()
	case reflect.Int64:
		return reflect.TypeFor[int64]()
	case reflect.Uint:
		return reflect.TypeFor[uint]()
	case reflect.Uint8:
		return reflect.TypeFor[uint8]()
	case reflect.Uint16:
		return reflect.TypeFor[uint16]()
	case reflect.Uint32:
		return reflect.TypeFor[uint32]()
	case reflect.Uint64:
		return reflect.TypeFor[uint64]()
	case reflect.Uintptr:
		return reflect.TypeFor[uintptr]()
	case reflect.Float32:
		return reflect.TypeFor[float32]()
	case reflect.Float64:
		return reflect.TypeFor[float64]()
	case reflect.String:
		return reflect.TypeFor[string]()
	case reflect.Slice:
		return reflect.SliceOf(t.Elem())
	case reflect.Array:
		return reflect.ArrayOf(t.Len(), t.Elem())
	case reflect.Map:
		return reflect.MapOf(t.Key(), t.Elem())
	default:
		return nil
	}
}

// guardNil renders nil pointer receivers as "nullptr" instead of calling
// methods on them.
func guardNil(fn renderFunc) renderFunc {
	return func(v any, spec string) (string, error) {
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nullText, nil
		}
		return fn(v, spec)
	}
}
