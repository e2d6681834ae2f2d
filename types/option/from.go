package option

import (
	"database/sql"
	"reflect"
)

// From treats nil as absence: a nil interface, pointer, map, slice,
// channel or func gives None. Every other value, including 0, "", false,
// NaN and empty but non-nil slices, gives Some.
func From[T any](v T) Option[T] {
	if isNil(v) {
		return None[T]()
	}
	return Some(v)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// FromPtr dereferences p, or gives None for a nil pointer.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// FromOk adapts the comma-ok idiom, e.g. map lookups.
func FromOk[T any](v T, ok bool) Option[T] {
	if !ok {
		return None[T]()
	}
	return Some(v)
}

// FromSQL maps SQL NULL to None.
func FromSQL[T any](n sql.Null[T]) Option[T] {
	return FromOk(n.V, n.Valid)
}

// SQL maps None to SQL NULL. The result implements driver.Valuer and
// sql.Scanner, so it can be passed to Exec or Scan directly.
func (o Option[T]) SQL() sql.Null[T] {
	return sql.Null[T]{V: o.value, Valid: o.some}
}
