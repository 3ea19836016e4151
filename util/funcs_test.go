package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartesianProduct(t *testing.T) {
	assert.Equal(t, [][]int{{}}, CartesianProduct[int](nil))
	assert.Equal(t, [][]int{{1}, {2}}, CartesianProduct([][]int{{1, 2}}))
	assert.Equal(t,
		[][]int{{0, 2}, {0, 3}, {1, 2}, {1, 3}},
		CartesianProduct([][]int{{0, 1}, {2, 3}}),
	)
	assert.Empty(t, CartesianProduct([][]int{{0, 1}, {}}))
}

func TestStackPopUntil(t *testing.T) {
	var s Stack[int]
	for i := range 5 {
		s.Push(i)
	}
	assert.Equal(t, []int{4, 3, 2}, PopUntil(&s, 2))
	assert.Equal(t, 2, s.Len())
	v, ok := s.Pop()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestPairJSON(t *testing.T) {
	p := NewPair("a", 3)
	data, err := p.MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, `["a", 3]`, string(data))

	var back Pair[string, int]
	assert.NoError(t, back.UnmarshalJSON(data))
	assert.Equal(t, p, back)

	assert.Error(t, back.UnmarshalJSON([]byte(`["a"]`)))
}
