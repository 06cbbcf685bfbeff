package fmtstr

import (
	"reflect"
	"weak"
)

// HolderKind tells how a [Holder] relates to the value it renders.
type HolderKind int

const (
	// Owned holders keep their own deep copy of the value.
	Owned HolderKind = iota
	// SharedRef holders observe a value through a weak pointer and render
	// "nullptr" once it has been collected.
	SharedRef
	// RawRef holders dereference a pointer at render time. The caller keeps
	// the pointee valid; a nil pointer renders "nullptr".
	RawRef
	// Formatted holders wrap another holder and pin its specifier.
	Formatted
)

func (k HolderKind) String() string {
	switch k {
	case Owned:
		return "owned"
	case SharedRef:
		return "shared"
	case RawRef:
		return "ref"
	case Formatted:
		return "formatted"
	default:
		return "unknown"
	}
}

// Holder is a bound argument. Implementations are provided by this package
// only: see [Copy], [Shared], [Weak], [Ref] and [WithSpec].
type Holder interface {
	// Render renders the held value under spec.
	Render(spec string) (string, error)
	// Clone returns an independent holder. Owned values are deep copied,
	// references are re-wrapped.
	Clone() Holder
	Kind() HolderKind

	sealed()
}

type ownedHolder struct {
	value  any
	render renderFunc
	// shallow holders borrow the value instead of owning a copy.
	shallow bool
}

// Copy binds a deep copy of v. Later changes to v, or to anything v points
// to, do not affect the holder. A Holder argument is cloned.
func Copy(v any) (Holder, error) {
	if h, ok := v.(Holder); ok {
		return h.Clone(), nil
	}
	render, err := rendererOf(v)
	if err != nil {
		return nil, err
	}
	return &ownedHolder{value: deepCopy(v), render: render}, nil
}

// MustCopy is like [Copy] but panics on error.
func MustCopy(v any) Holder {
	h, err := Copy(v)
	if err != nil {
		panic(err)
	}
	return h
}

// borrow binds v without copying it. A Holder argument is used as is.
func borrow(v any) (Holder, error) {
	if h, ok := v.(Holder); ok {
		return h, nil
	}
	render, err := rendererOf(v)
	if err != nil {
		return nil, err
	}
	return &ownedHolder{value: v, render: render, shallow: true}, nil
}

func rendererOf(v any) (renderFunc, error) {
	if v == nil {
		return func(any, string) (string, error) { return nullText, nil }, nil
	}
	r, ok := resolve(reflect.TypeOf(v))
	if !ok {
		return nil, noRenderer(reflect.TypeOf(v))
	}
	return r.render, nil
}

func (h *ownedHolder) Render(spec string) (string, error) { return h.render(h.value, spec) }

func (h *ownedHolder) Clone() Holder {
	if h.shallow {
		return h
	}
	return &ownedHolder{value: deepCopy(h.value), render: h.render}
}

func (h *ownedHolder) Kind() HolderKind {
	if h.shallow {
		return RawRef
	}
	return Owned
}

func (*ownedHolder) sealed() {}

type sharedHolder[T any] struct {
	ptr weak.Pointer[T]
}

// Shared binds p through a weak pointer. The holder does not keep p alive;
// once every strong reference is gone and p has been collected, it renders
// "nullptr". A nil p renders "nullptr".
func Shared[T any](p *T) (Holder, error) {
	if err := checkSupported[T](); err != nil {
		return nil, err
	}
	return &sharedHolder[T]{ptr: weak.Make(p)}, nil
}

// Weak binds an existing weak pointer.
func Weak[T any](w weak.Pointer[T]) (Holder, error) {
	if err := checkSupported[T](); err != nil {
		return nil, err
	}
	return &sharedHolder[T]{ptr: w}, nil
}

func (h *sharedHolder[T]) Render(spec string) (string, error) {
	p := h.ptr.Value()
	if p == nil {
		return nullText, nil
	}
	return ToString(*p, spec)
}

func (h *sharedHolder[T]) Clone() Holder    { return &sharedHolder[T]{ptr: h.ptr} }
func (h *sharedHolder[T]) Kind() HolderKind { return SharedRef }
func (*sharedHolder[T]) sealed()            {}

type refHolder[T any] struct {
	ptr *T
}

// Ref binds p and dereferences it at every render, so changes to *p show up
// in later output. A nil p renders "nullptr".
func Ref[T any](p *T) (Holder, error) {
	if err := checkSupported[T](); err != nil {
		return nil, err
	}
	return &refHolder[T]{ptr: p}, nil
}

func (h *refHolder[T]) Render(spec string) (string, error) {
	if h.ptr == nil {
		return nullText, nil
	}
	return ToString(*h.ptr, spec)
}

func (h *refHolder[T]) Clone() Holder    { return &refHolder[T]{ptr: h.ptr} }
func (h *refHolder[T]) Kind() HolderKind { return RawRef }
func (*refHolder[T]) sealed()            {}

// checkSupported fails for concrete types without a renderer. Interface
// types are resolved per value at render time.
func checkSupported[T any]() error {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Interface {
		return nil
	}
	if _, ok := resolve(t); !ok {
		return noRenderer(t)
	}
	return nil
}

type formattedHolder struct {
	inner Holder
	spec  string
}

// WithSpec pins spec on h. The specifier a template forwards is ignored.
func WithSpec(h Holder, spec string) Holder {
	return &formattedHolder{inner: h, spec: spec}
}

func (h *formattedHolder) Render(string) (string, error) { return h.inner.Render(h.spec) }

func (h *formattedHolder) Clone() Holder {
	return &formattedHolder{inner: h.inner.Clone(), spec: h.spec}
}

func (h *formattedHolder) Kind() HolderKind { return Formatted }
func (*formattedHolder) sealed()            {}

// deepCopy copies v along with everything it references through pointers,
// slices, maps and interfaces. Unexported struct fields are copied shallowly.
func deepCopy(v any) any {
	if v == nil {
		return nil
	}
	return copyValue(reflect.ValueOf(v), map[visit]reflect.Value{}).Interface()
}

// visit identifies a pointer already copied. The type is part of the key
// because a struct and its first field share an address.
type visit struct {
	addr uintptr
	typ  reflect.Type
}

func copyValue(v reflect.Value, seen map[visit]reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		key := visit{v.Pointer(), v.Type()}
		if c, ok := seen[key]; ok {
			return c
		}
		c := reflect.New(v.Type().Elem())
		seen[key] = c
		c.Elem().Set(copyValue(v.Elem(), seen))
		return c
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		c := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := range v.Len() {
			c.Index(i).Set(copyValue(v.Index(i), seen))
		}
		return c
	case reflect.Array:
		c := reflect.New(v.Type()).Elem()
		for i := range v.Len() {
			c.Index(i).Set(copyValue(v.Index(i), seen))
		}
		return c
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		c := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			c.SetMapIndex(copyValue(iter.Key(), seen), copyValue(iter.Value(), seen))
		}
		return c
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		c := reflect.New(v.Type()).Elem()
		c.Set(copyValue(v.Elem(), seen))
		return c
	case reflect.Struct:
		c := reflect.New(v.Type()).Elem()
		c.Set(v)
		for i := range v.NumField() {
			if f := c.Field(i); f.CanSet() {
				f.Set(copyValue(v.Field(i), seen))
			}
		}
		return c
	default:
		return v
	}
}

// KindOf returns the kind of h.
func KindOf(h Holder) HolderKind { return h.Kind() }
