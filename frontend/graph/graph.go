// Package graph is a small directed graph over ordered vertices,
// with reachability and strongly connected component queries
package graph

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/cottand/typenv/util"
	"github.com/hashicorp/go-set/v3"
)

var ErrUnknownVertex = errors.New("unknown vertex")

// Graph is a directed graph. Its vertex set is fixed by New,
// and edges may only connect vertices of that set.
// Duplicate edges collapse into one.
type Graph[V cmp.Ordered] struct {
	vertices []V
	edges    map[V]*set.Set[V]
}

func New[V cmp.Ordered](vertices ...V) *Graph[V] {
	g := &Graph[V]{
		edges: make(map[V]*set.Set[V], len(vertices)),
	}
	for _, v := range vertices {
		if _, ok := g.edges[v]; ok {
			continue
		}
		g.edges[v] = set.New[V](1)
		g.vertices = append(g.vertices, v)
	}
	slices.Sort(g.vertices)
	return g
}

func (g *Graph[V]) AddEdge(from, to V) error {
	succ, ok := g.edges[from]
	if !ok {
		return fmt.Errorf("edge %v -> %v: %w %v", from, to, ErrUnknownVertex, from)
	}
	if _, ok := g.edges[to]; !ok {
		return fmt.Errorf("edge %v -> %v: %w %v", from, to, ErrUnknownVertex, to)
	}
	succ.Insert(to)
	return nil
}

func (g *Graph[V]) HasVertex(v V) bool {
	_, ok := g.edges[v]
	return ok
}

// Vertices returns every vertex in ascending order
func (g *Graph[V]) Vertices() []V {
	return slices.Clone(g.vertices)
}

func (g *Graph[V]) Len() int {
	return len(g.vertices)
}

// Successors returns the direct successors of v in ascending order
func (g *Graph[V]) Successors(v V) []V {
	succ, ok := g.edges[v]
	if !ok {
		return nil
	}
	return util.SortedSlice(succ)
}

// Transpose returns a new graph with every edge reversed
func (g *Graph[V]) Transpose() *Graph[V] {
	t := New(g.vertices...)
	for from, succ := range g.edges {
		for _, to := range succ.Slice() {
			t.edges[to].Insert(from)
		}
	}
	return t
}

// Reachable returns every vertex reachable from v.
// v itself is only included when some path leads back to it, which a self-loop provides.
func (g *Graph[V]) Reachable(v V) *set.Set[V] {
	seen := set.New[V](len(g.vertices))
	if !g.HasVertex(v) {
		return seen
	}
	var frontier util.Stack[V]
	frontier.Push(v)
	for {
		next, ok := frontier.Pop()
		if !ok {
			return seen
		}
		for _, succ := range g.edges[next].Slice() {
			if seen.Insert(succ) {
				frontier.Push(succ)
			}
		}
	}
}

// StronglyConnectedComponents partitions the vertices into maximal groups of mutually
// reachable vertices, using Tarjan's algorithm.
// Each component is sorted, and components are ordered by their smallest vertex.
func (g *Graph[V]) StronglyConnectedComponents() [][]V {
	t := tarjan[V]{
		g:       g,
		index:   make(map[V]int, len(g.vertices)),
		lowLink: make(map[V]int, len(g.vertices)),
		onStack: set.New[V](len(g.vertices)),
	}
	for _, v := range g.vertices {
		if _, visited := t.index[v]; !visited {
			t.connect(v)
		}
	}
	for _, component := range t.components {
		slices.Sort(component)
	}
	slices.SortFunc(t.components, func(a, b []V) int {
		return cmp.Compare(a[0], b[0])
	})
	return t.components
}

type tarjan[V cmp.Ordered] struct {
	g          *Graph[V]
	next       int
	index      map[V]int
	lowLink    map[V]int
	stack      util.Stack[V]
	onStack    *set.Set[V]
	components [][]V
}

func (t *tarjan[V]) connect(v V) {
	t.index[v] = t.next
	t.lowLink[v] = t.next
	t.next++
	t.stack.Push(v)
	t.onStack.Insert(v)

	for _, w := range t.g.Successors(v) {
		if _, visited := t.index[w]; !visited {
			t.connect(w)
			t.lowLink[v] = min(t.lowLink[v], t.lowLink[w])
		} else if t.onStack.Contains(w) {
			t.lowLink[v] = min(t.lowLink[v], t.index[w])
		}
	}

	if t.lowLink[v] == t.index[v] {
		component := util.PopUntil(&t.stack, v)
		for _, w := range component {
			t.onStack.Remove(w)
		}
		t.components = append(t.components, component)
	}
}
