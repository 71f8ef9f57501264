// Package queue provides a fixed-size circular FIFO.
package queue

import "github.com/pkg/errors"

var ErrQueueEmpty = errors.New("queue is empty")

// Circular is a FIFO over a fixed array. It is not safe for concurrent use.
type Circular[T any] struct {
	items      []T
	head, tail uint
	count      uint
}

func NewCircular[T any](size uint) *Circular[T] {
	if size == 0 {
		panic("circular queue needs a positive size")
	}
	return &Circular[T]{items: make([]T, size)}
}

// Enqueue adds v at the tail. It returns false if the queue is full.
func (q *Circular[T]) Enqueue(v T) bool {
	if q.count == q.Size() {
		return false
	}

	q.items[q.tail] = v
	q.tail = q.advance(q.tail)
	q.count++

	return true
}

// Push adds v at the tail, evicting the head when the queue is full.
func (q *Circular[T]) Push(v T) (evicted T, ok bool) {
	if q.count == q.Size() {
		evicted, _ = q.Dequeue()
		ok = true
	}
	q.Enqueue(v)
	return evicted, ok
}

func (q *Circular[T]) Dequeue() (T, error) {
	var zero T
	if q.count == 0 {
		return zero, ErrQueueEmpty
	}

	v := q.items[q.head]
	q.items[q.head] = zero
	q.head = q.advance(q.head)
	q.count--

	return v, nil
}

func (q *Circular[T]) Peek() (T, error) {
	if q.count == 0 {
		var zero T
		return zero, ErrQueueEmpty
	}
	return q.items[q.head], nil
}

// Items returns the queued values, head first.
func (q *Circular[T]) Items() []T {
	out := make([]T, 0, q.count)
	for i, idx := uint(0), q.head; i < q.count; i, idx = i+1, q.advance(idx) {
		out = append(out, q.items[idx])
	}
	return out
}

func (q *Circular[T]) Len() uint  { return q.count }
func (q *Circular[T]) Size() uint { return uint(len(q.items)) }

func (q *Circular[T]) advance(n uint) uint { return (n + 1) % q.Size() }
