package slice

import (
	"slices"
	"strconv"
	"testing"

	"github.com/icodeforyou/option-go/types/option"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected option.Option[int]
	}{
		{name: "first match", input: []int{1, 4, 6}, expected: option.Some(4)},
		{name: "no match", input: []int{1, 3, 5}, expected: option.None[int]()},
		{name: "empty", input: nil, expected: option.None[int]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Find(tt.input, func(v int) bool { return v%2 == 0 })
			if result != tt.expected {
				t.Errorf("Find(%v) expected %v, got %v", tt.input, tt.expected, result)
			}
		})
	}
}

func TestFirst(t *testing.T) {
	if got := First([]string{"a", "b"}); got != option.Some("a") {
		t.Errorf("First expected Some(a), got %v", got)
	}
	if got := First([]string{}); got.IsSome() {
		t.Errorf("First of empty slice expected None, got %v", got)
	}
}

func TestMapAndAll(t *testing.T) {
	got := Map([]int{1, 2, 3}, strconv.Itoa)
	if !slices.Equal(got, []string{"1", "2", "3"}) {
		t.Errorf("Map expected [1 2 3], got %v", got)
	}
	if !All([]int{2, 4}, func(v int) bool { return v%2 == 0 }) {
		t.Error("All expected true")
	}
	if All([]int{2, 3}, func(v int) bool { return v%2 == 0 }) {
		t.Error("All expected false")
	}
}

func TestSomes(t *testing.T) {
	input := []option.Option[int]{option.Some(1), option.None[int](), option.Some(3)}
	if got := Somes(input); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("Somes expected [1 3], got %v", got)
	}
}

func TestFilterMap(t *testing.T) {
	parse := func(s string) option.Option[int] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return option.None[int]()
		}
		return option.Some(n)
	}
	got := FilterMap([]string{"1", "x", "0", ""}, parse)
	if !slices.Equal(got, []int{1, 0}) {
		t.Errorf("FilterMap expected [1 0], got %v", got)
	}
}
