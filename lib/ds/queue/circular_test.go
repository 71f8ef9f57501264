package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircularNew(t *testing.T) {
	q := NewCircular[int](5)

	assert.Equal(t, uint(5), q.Size())
	assert.Zero(t, q.Len())
	assert.Panics(t, func() { NewCircular[int](0) })
}

func TestCircularEnqueueDequeue(t *testing.T) {
	q := NewCircular[int](3)

	assert.True(t, q.Enqueue(1))
	assert.True(t, q.Enqueue(2))
	assert.True(t, q.Enqueue(3))
	assert.False(t, q.Enqueue(4))

	v, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	assert.True(t, q.Enqueue(4))
	assert.Equal(t, []int{2, 3, 4}, q.Items())
}

func TestCircularPeekEmpty(t *testing.T) {
	q := NewCircular[string](2)

	_, err := q.Peek()
	assert.ErrorIs(t, err, ErrQueueEmpty)
	_, err = q.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)

	q.Enqueue("hello")
	v, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
	assert.Equal(t, uint(1), q.Len())
}

func TestCircularPush(t *testing.T) {
	testcases := []struct {
		desc     string
		pushes   []int
		expected []int
		evicted  []int
	}{
		{desc: "below size", pushes: []int{1, 2}, expected: []int{1, 2}},
		{desc: "exactly full", pushes: []int{1, 2, 3}, expected: []int{1, 2, 3}},
		{desc: "wraps around", pushes: []int{1, 2, 3, 4, 5}, expected: []int{3, 4, 5}, evicted: []int{1, 2}},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			q := NewCircular[int](3)

			var evicted []int
			for _, v := range tc.pushes {
				if old, ok := q.Push(v); ok {
					evicted = append(evicted, old)
				}
			}

			assert.Equal(t, tc.expected, q.Items())
			assert.Equal(t, tc.evicted, evicted)
		})
	}
}
