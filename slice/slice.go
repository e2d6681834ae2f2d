package slice

import "github.com/icodeforyou/option-go/types/option"

func Map[T any, U any](input []T, pred func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = pred(v)
	}
	return result
}

func All[T any](input []T, pred func(T) bool) bool {
	for _, v := range input {
		if !pred(v) {
			return false
		}
	}
	return true
}

func Find[T any](input []T, pred func(T) bool) option.Option[T] {
	for _, v := range input {
		if pred(v) {
			return option.Some(v)
		}
	}
	return option.None[T]()
}

func First[T any](input []T) option.Option[T] {
	if len(input) == 0 {
		return option.None[T]()
	}
	return option.Some(input[0])
}

// Somes keeps the present values, in order.
func Somes[T any](input []option.Option[T]) []T {
	result := make([]T, 0, len(input))
	for _, o := range input {
		for v := range o.All() {
			result = append(result, v)
		}
	}
	return result
}

// FilterMap maps every element and keeps only the present results.
func FilterMap[T any, U any](input []T, pred func(T) option.Option[U]) []U {
	return Somes(Map(input, pred))
}
