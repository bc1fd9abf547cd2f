// Package stackvec provides a sequence with a capacity fixed at construction.
// Pushing past the capacity is reported, never truncated.
package stackvec

import (
	"errors"
	"fmt"
)

// ErrOverflow is returned by Push when the vector is full.
var ErrOverflow = errors.New("stackvec: capacity exceeded")

// Vec is a bounded LIFO sequence.
type Vec[T any] struct {
	items []T
	limit int
}

// New returns an empty Vec holding at most capacity items.
func New[T any](capacity int) *Vec[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Vec[T]{items: make([]T, 0, capacity), limit: capacity}
}

// Push appends v.
func (v *Vec[T]) Push(item T) error {
	if len(v.items) >= v.limit {
		return fmt.Errorf("%w: limit %d", ErrOverflow, v.limit)
	}
	v.items = append(v.items, item)
	return nil
}

// Pop removes and returns the last item.
func (v *Vec[T]) Pop() (T, bool) {
	var zero T
	if len(v.items) == 0 {
		return zero, false
	}
	last := v.items[len(v.items)-1]
	v.items[len(v.items)-1] = zero
	v.items = v.items[:len(v.items)-1]
	return last, true
}

func (v *Vec[T]) Len() int    { return len(v.items) }
func (v *Vec[T]) Empty() bool { return len(v.items) == 0 }

// Each calls fn for every item in push order.
func (v *Vec[T]) Each(fn func(i int, item T)) {
	for i, item := range v.items {
		fn(i, item)
	}
}
