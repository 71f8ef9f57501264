package sliceutil

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "22", "333"}, Map([]int{1, 22, 333}, strconv.Itoa))
	assert.Empty(t, Map([]int(nil), strconv.Itoa))
}

func TestFilter(t *testing.T) {
	testcases := []struct {
		desc     string
		input    []int
		expected []int
	}{
		{desc: "keeps order", input: []int{5, 2, 8, 3, 6}, expected: []int{2, 8, 6}},
		{desc: "none kept", input: []int{1, 3}, expected: []int{}},
		{desc: "empty", input: nil, expected: []int{}},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			even := func(x int) bool { return x%2 == 0 }
			assert.Equal(t, tc.expected, Filter(tc.input, even))
		})
	}
}
