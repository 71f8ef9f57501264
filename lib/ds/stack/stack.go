// Package stack provides a slice-backed LIFO.
package stack

import "github.com/pkg/errors"

var ErrStackEmpty = errors.New("stack is empty")

// Stack is not safe for concurrent use.
type Stack[T any] struct{ items []T }

func New[T any](capacity uint) *Stack[T] {
	return &Stack[T]{items: make([]T, 0, capacity)}
}

func (s *Stack[T]) Len() uint { return uint(len(s.items)) }

// Data returns a copy of the items, bottom first.
func (s *Stack[T]) Data() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Stack[T]) Push(v T) { s.items = append(s.items, v) }

func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if len(s.items) == 0 {
		return zero, ErrStackEmpty
	}

	top := s.items[len(s.items)-1]
	// Drop the reference so popped connections can be collected.
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]

	return top, nil
}

func (s *Stack[T]) Peek() (T, error) {
	if len(s.items) == 0 {
		var zero T
		return zero, ErrStackEmpty
	}
	return s.items[len(s.items)-1], nil
}

// Drain empties the stack and returns what it held, top first.
func (s *Stack[T]) Drain() []T {
	out := make([]T, 0, len(s.items))
	for len(s.items) > 0 {
		v, _ := s.Pop()
		out = append(out, v)
	}
	return out
}
