package option

import "errors"

// ErrNone is matched by every AbsenceError.
var ErrNone = errors.New("option is none")

const unwrapOnNone = "Unwrap called on None"

// AbsenceError is raised when a value is demanded from None.
type AbsenceError struct {
	Msg string
}

func (e *AbsenceError) Error() string {
	return e.Msg
}

func (e *AbsenceError) Is(target error) bool {
	return target == ErrNone
}

// Unwrap returns the contained value and panics with an *AbsenceError
// when o is None.
func (o Option[T]) Unwrap() T {
	if !o.some {
		panic(&AbsenceError{Msg: unwrapOnNone})
	}
	return o.value
}

// Expect is Unwrap with a caller supplied panic message.
func (o Option[T]) Expect(msg string) T {
	if !o.some {
		panic(&AbsenceError{Msg: msg})
	}
	return o.value
}

// Get is the non-panicking Unwrap.
func (o Option[T]) Get() (T, error) {
	if !o.some {
		return o.value, &AbsenceError{Msg: unwrapOnNone}
	}
	return o.value, nil
}

func (o Option[T]) UnwrapOr(fallback T) T {
	if o.some {
		return o.value
	}
	return fallback
}

// UnwrapOrElse calls producer only when o is None.
func (o Option[T]) UnwrapOrElse(producer func() T) T {
	if o.some {
		return o.value
	}
	return producer()
}

func (o Option[T]) UnwrapOrZero() T {
	return o.value
}
