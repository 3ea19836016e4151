package graph

import (
	"errors"
	"testing"

	"github.com/cottand/typenv/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEdges(t *testing.T, g *Graph[int], edges ...[2]int) {
	t.Helper()
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
}

func TestNewKeepsIsolatedVertices(t *testing.T) {
	g := New(2, 0, 1, 1)
	assert.Equal(t, []int{0, 1, 2}, g.Vertices())
	assert.Equal(t, 3, g.Len())
	assert.Empty(t, g.Successors(1))
}

func TestAddEdgeUnknownVertex(t *testing.T) {
	g := New(0, 1)
	err := g.AddEdge(0, 5)
	assert.True(t, errors.Is(err, ErrUnknownVertex))
	err = g.AddEdge(-1, 0)
	assert.True(t, errors.Is(err, ErrUnknownVertex))
}

func TestDuplicateEdgesCollapse(t *testing.T) {
	g := New(0, 1)
	mustEdges(t, g, [2]int{0, 1}, [2]int{0, 1}, [2]int{0, 1})
	assert.Equal(t, []int{1}, g.Successors(0))
}

func TestReachable(t *testing.T) {
	g := New(0, 1, 2, 3)
	mustEdges(t, g, [2]int{0, 1}, [2]int{1, 2})

	assert.Equal(t, []int{1, 2}, util.SortedSlice(g.Reachable(0)))
	assert.Empty(t, util.SortedSlice(g.Reachable(3)))
	assert.Empty(t, util.SortedSlice(g.Reachable(42)))

	mustEdges(t, g, [2]int{3, 3})
	assert.Equal(t, []int{3}, util.SortedSlice(g.Reachable(3)))
}

func TestTranspose(t *testing.T) {
	g := New(0, 1, 2)
	mustEdges(t, g, [2]int{0, 1}, [2]int{0, 2}, [2]int{2, 2})
	tr := g.Transpose()

	assert.Equal(t, []int{0, 1, 2}, tr.Vertices())
	assert.Empty(t, tr.Successors(0))
	assert.Equal(t, []int{0}, tr.Successors(1))
	assert.Equal(t, []int{0, 2}, tr.Successors(2))
	// the original is untouched
	assert.Equal(t, []int{1, 2}, g.Successors(0))
}

func TestStronglyConnectedComponents(t *testing.T) {
	testCases := []struct {
		name     string
		vertices []int
		edges    [][2]int
		expected [][]int
	}{
		{
			name:     "no edges",
			vertices: []int{0, 1, 2},
			expected: [][]int{{0}, {1}, {2}},
		},
		{
			name:     "chain",
			vertices: []int{0, 1, 2},
			edges:    [][2]int{{0, 1}, {1, 2}},
			expected: [][]int{{0}, {1}, {2}},
		},
		{
			name:     "cycle then chain",
			vertices: []int{0, 1, 2},
			edges:    [][2]int{{0, 1}, {1, 0}, {1, 2}},
			expected: [][]int{{0, 1}, {2}},
		},
		{
			name:     "two disconnected cycles",
			vertices: []int{0, 1, 2, 3, 4},
			edges:    [][2]int{{0, 3}, {3, 0}, {1, 4}, {4, 2}, {2, 1}},
			expected: [][]int{{0, 3}, {1, 2, 4}},
		},
		{
			name:     "self loops",
			vertices: []int{0, 1},
			edges:    [][2]int{{0, 0}, {1, 1}, {0, 1}},
			expected: [][]int{{0}, {1}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := New(tc.vertices...)
			mustEdges(t, g, tc.edges...)
			assert.Equal(t, tc.expected, g.StronglyConnectedComponents())
		})
	}
}

func TestStronglyConnectedComponentsPartitionVertices(t *testing.T) {
	g := New(0, 1, 2, 3, 4, 5)
	mustEdges(t, g, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 0}, [2]int{3, 4}, [2]int{5, 5})

	seen := map[int]int{}
	for _, component := range g.StronglyConnectedComponents() {
		for _, v := range component {
			seen[v]++
		}
	}
	for _, v := range g.Vertices() {
		assert.Equal(t, 1, seen[v], "vertex %d should be in exactly one component", v)
	}
}

func TestStringVertices(t *testing.T) {
	g := New("b", "a")
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "a"))
	assert.Equal(t, [][]string{{"a", "b"}}, g.StronglyConnectedComponents())
}
