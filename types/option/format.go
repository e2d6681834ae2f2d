package option

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// DefaultDepth is the depth budget used by String.
const DefaultDepth = 2

// Inspector formats a value within a depth budget. Option implements it,
// so nested Options share one budget.
type Inspector interface {
	Inspect(depth int) string
}

func (o Option[T]) String() string {
	return o.Inspect(DefaultDepth)
}

// Inspect formats Some(<value>) or None. Each level of nesting, whether an
// Option or a slice, array, map or struct, spends one unit of depth; below
// zero the contained value is elided as Some(...).
func (o Option[T]) Inspect(depth int) string {
	if !o.some {
		return "None"
	}
	if depth < 0 {
		return "Some(...)"
	}
	return "Some(" + inspectValue(o.value, depth-1) + ")"
}

func inspectValue(v any, depth int) string {
	return inspectReflect(reflect.ValueOf(v), depth)
}

// inspectReflect walks slices, arrays, maps and structs so that Options held
// inside them stay on the caller's budget. Each container spends one unit of
// depth; pointers and interfaces are transparent. A pointer to a scalar is
// printed as an address, which keeps cycles from recursing.
func inspectReflect(rv reflect.Value, depth int) string {
	if !rv.IsValid() {
		return "<nil>"
	}
	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return "<nil>"
	}

	if rv.CanInterface() {
		switch v := rv.Interface().(type) {
		case Inspector:
			return v.Inspect(depth)
		case string:
			return strconv.Quote(v)
		case error:
			return v.Error()
		case fmt.Stringer:
			return v.String()
		}
	}

	switch rv.Kind() {
	case reflect.Interface:
		return inspectReflect(rv.Elem(), depth)
	case reflect.Pointer:
		switch rv.Elem().Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
			return "&" + inspectReflect(rv.Elem(), depth)
		}
	case reflect.Slice, reflect.Array:
		if depth < 0 {
			return "[...]"
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = inspectReflect(rv.Index(i), depth-1)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case reflect.Map:
		if depth < 0 {
			return "map[...]"
		}
		parts := make([]string, 0, rv.Len())
		entries := rv.MapRange()
		for entries.Next() {
			parts = append(parts,
				inspectReflect(entries.Key(), depth-1)+":"+inspectReflect(entries.Value(), depth-1))
		}
		slices.Sort(parts)
		return "map[" + strings.Join(parts, " ") + "]"
	case reflect.Struct:
		if depth < 0 {
			return "{...}"
		}
		parts := make([]string, rv.NumField())
		for i := range parts {
			parts[i] = inspectReflect(rv.Field(i), depth-1)
		}
		return "{" + strings.Join(parts, " ") + "}"
	}

	if rv.CanInterface() {
		return fmt.Sprint(rv.Interface())
	}
	// unexported field: fmt prints the raw value without calling methods
	return fmt.Sprint(rv)
}

func (o Option[T]) GoString() string {
	typ := reflect.TypeFor[T]().String()
	if !o.some {
		return "option.None[" + typ + "]()"
	}
	return fmt.Sprintf("option.Some[%s](%#v)", typ, o.value)
}

// All yields the contained value once, or nothing for None. The sequence
// can be ranged over any number of times.
func (o Option[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if o.some {
			yield(o.value)
		}
	}
}

// Slice spreads o into a slice of length zero or one.
func (o Option[T]) Slice() []T {
	if o.some {
		return []T{o.value}
	}
	return []T{}
}
