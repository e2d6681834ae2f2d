// Package option provides Option, a value that is either present (Some)
// or absent (None).
//
// Presence is tracked by a flag next to the value, never by the value
// itself, so Some(nil), Some(0) and Some("") are all present. The zero
// Option is None. Options are immutable: every combinator returns a new
// Option, which makes them safe to share between goroutines.
package option

type Kind uint8

const (
	KindNone Kind = iota
	KindSome
)

func (k Kind) String() string {
	if k == KindSome {
		return "Some"
	}
	return "None"
}

type Option[T any] struct {
	value T
	some  bool
}

func Some[T any](value T) Option[T] {
	return Option[T]{
		value: value,
		some:  true,
	}
}

func None[T any]() Option[T] {
	return Option[T]{
		some: false,
	}
}

func (o Option[T]) IsSome() bool {
	return o.some
}

func (o Option[T]) IsNone() bool {
	return !o.some
}

// Kind reports the variant, for use in a switch.
func (o Option[T]) Kind() Kind {
	if o.some {
		return KindSome
	}
	return KindNone
}

// Peek exposes the raw representation for branching:
//
//	switch v, ok := o.Peek(); {
//	case ok:
//		use(v)
//	default:
//		...
//	}
//
// The value returned together with false is the zero T and carries no
// meaning; do not compare it against anything.
func (o Option[T]) Peek() (T, bool) {
	return o.value, o.some
}

// Match calls onSome with the contained value or onNone, and returns
// whatever the called arm returns.
func Match[T, U any](o Option[T], onSome func(T) U, onNone func() U) U {
	if o.some {
		return onSome(o.value)
	}
	return onNone()
}
