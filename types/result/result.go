// Package result holds Result, either a successful value (Ok) or an
// error (Err).
package result

import (
	"errors"
	"fmt"
)

// ErrNil replaces a nil error handed to Err.
var ErrNil = errors.New("result: Err called with nil error")

type Result[T any] struct {
	value T
	err   error
	ok    bool
}

func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

func Err[T any](err error) Result[T] {
	if err == nil {
		err = ErrNil
	}
	return Result[T]{err: err}
}

// ErrString promotes msg to an error.
func ErrString[T any](msg string) Result[T] {
	return Err[T](errors.New(msg))
}

func (r Result[T]) IsOk() bool  { return r.ok }
func (r Result[T]) IsErr() bool { return !r.ok }

// Unwrap returns the value and the error in the usual Go shape.
func (r Result[T]) Unwrap() (T, error) { return r.value, r.err }

// Err returns the failure, or nil for Ok.
func (r Result[T]) Err() error { return r.err }

func (r Result[T]) UnwrapOr(fallback T) T {
	if r.ok {
		return r.value
	}
	return fallback
}

func (r Result[T]) String() string {
	if r.ok {
		return fmt.Sprintf("Ok(%v)", r.value)
	}
	return fmt.Sprintf("Err(%v)", r.err)
}

// Map applies fn to the value when Ok.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Err[U](r.err)
	}
	return Ok(fn(r.value))
}
