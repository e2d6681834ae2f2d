package option

import "github.com/icodeforyou/option-go/types/result"

// Map applies fn to the contained value. fn is not called for None.
func Map[T, U any](o Option[T], fn func(T) U) Option[U] {
	if o.some {
		return Some(fn(o.value))
	}
	return None[U]()
}

// MapOr is Map followed by UnwrapOr(fallback).
func MapOr[T, U any](o Option[T], fallback U, fn func(T) U) U {
	if o.some {
		return fn(o.value)
	}
	return fallback
}

// AndThen returns fn(value) for Some without wrapping it again, and None
// otherwise.
func AndThen[T, U any](o Option[T], fn func(T) Option[U]) Option[U] {
	if o.some {
		return fn(o.value)
	}
	return None[U]()
}

// Or returns o when it is Some, else the already built alternative.
func (o Option[T]) Or(alternative Option[T]) Option[T] {
	if o.some {
		return o
	}
	return alternative
}

// OrElse is the lazy form of Or.
func (o Option[T]) OrElse(producer func() Option[T]) Option[T] {
	if o.some {
		return o
	}
	return producer()
}

func (o Option[T]) Filter(pred func(T) bool) Option[T] {
	if o.some && pred(o.value) {
		return o
	}
	return None[T]()
}

// boxer is implemented by every Option instantiation.
type boxer interface {
	box() Option[any]
}

func (o Option[T]) box() Option[any] {
	if o.some {
		return Some[any](o.value)
	}
	return None[any]()
}

// Flatten collapses one level of nesting decided by the contained value at
// runtime: if it is an Option of any type, that inner Option is returned.
// Otherwise o is returned as is. Deeper nesting is left in place, so
// Some(Some(Some(1))).Flatten() is Some(Some(1)).
func (o Option[T]) Flatten() Option[any] {
	if !o.some {
		return None[any]()
	}
	if inner, ok := any(o.value).(boxer); ok {
		return inner.box()
	}
	return o.box()
}

// Flatten is the statically typed one-level flatten.
func Flatten[T any](o Option[Option[T]]) Option[T] {
	if o.some {
		return o.value
	}
	return None[T]()
}

// OkOr converts Some(v) into result.Ok(v) and None into result.Err(err).
func (o Option[T]) OkOr(err error) result.Result[T] {
	if o.some {
		return result.Ok(o.value)
	}
	return result.Err[T](err)
}

// OkOrString is OkOr with a message promoted to an error.
func (o Option[T]) OkOrString(msg string) result.Result[T] {
	if o.some {
		return result.Ok(o.value)
	}
	return result.ErrString[T](msg)
}
