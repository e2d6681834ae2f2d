package option

import "context"

// Future is the pending outcome of FromAsync. It settles exactly once.
type Future[T any] struct {
	done      chan struct{}
	value     T
	err       error
	panicked  bool
	recovered any
}

// FromAsync runs producer once on its own goroutine. When it settles
// successfully the From rule applies, so a nil result becomes None. A
// producer error is not mapped to None; Await returns it unchanged.
//
// There is no way to cancel the producer once started.
func FromAsync[T any](producer func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go f.run(producer)
	return f
}

func (f *Future[T]) run(producer func() (T, error)) {
	defer close(f.done)
	defer func() {
		if r := recover(); r != nil {
			f.panicked = true
			f.recovered = r
		}
	}()
	f.value, f.err = producer()
}

// Done is closed once the producer has returned.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the producer settles or ctx is done. ctx only bounds
// the wait; the producer keeps running. A panic in the producer is raised
// again here, in every caller of Await.
func (f *Future[T]) Await(ctx context.Context) (Option[T], error) {
	select {
	case <-f.done:
	default:
		select {
		case <-f.done:
		case <-ctx.Done():
			return None[T](), ctx.Err()
		}
	}

	if f.panicked {
		panic(f.recovered)
	}
	if f.err != nil {
		return None[T](), f.err
	}
	return From(f.value), nil
}
