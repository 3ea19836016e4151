package env

import (
	"slices"

	"github.com/cottand/typenv/frontend/enverr"
	"github.com/cottand/typenv/frontend/graph"
	"github.com/cottand/typenv/internal/log"
	"github.com/cottand/typenv/util"
	"github.com/hashicorp/go-set/v3"
)

var fundepLogger = log.DefaultLogger.With("section", "fundep")

// dependencyGraph has one vertex per class argument, a self-loop on each,
// and an edge from every determiner to every argument it determines
func dependencyGraph(argCount int, deps []FunctionalDependency) *graph.Graph[int] {
	checkDependencyIndices(argCount, deps)

	vertices := make([]int, argCount)
	for i := range vertices {
		vertices[i] = i
	}
	g := graph.New(vertices...)
	addEdge := func(from, to int) {
		if err := g.AddEdge(from, to); err != nil {
			enverr.Raise(enverr.ArgumentIndexOutOfRange, "building dependency graph: %v", err)
		}
	}
	for _, v := range vertices {
		addEdge(v, v)
	}
	for _, dep := range deps {
		for _, from := range dep.Determiners {
			for _, to := range dep.Determined {
				addEdge(from, to)
			}
		}
	}
	return g
}

func checkDependencyIndices(argCount int, deps []FunctionalDependency) {
	if dep, index, found := invalidDependencyIndex(argCount, deps); found {
		enverr.Raise(enverr.ArgumentIndexOutOfRange,
			"functional dependency %d refers to argument %d, but the class has %d arguments", dep, index, argCount)
	}
}

func invalidDependencyIndex(argCount int, deps []FunctionalDependency) (dep, index int, found bool) {
	for i, d := range deps {
		for _, index := range slices.Concat(d.Determiners, d.Determined) {
			if index < 0 || index >= argCount {
				return i, index, true
			}
		}
	}
	return 0, 0, false
}

// determinedArguments holds v when something reaches v that v does not reach back:
// v carries no information that other arguments do not already supply
func determinedArguments(g *graph.Graph[int]) *set.Set[int] {
	transposed := g.Transpose()
	determined := set.New[int](g.Len())
	for _, v := range g.Vertices() {
		descendants := g.Reachable(v)
		ancestors := transposed.Reachable(v)
		for _, r := range ancestors.Slice() {
			if !descendants.Contains(r) {
				determined.Insert(v)
				break
			}
		}
	}
	return determined
}

// coveringSets picks one argument out of every strongly connected component that is not determined.
// The arguments of a component determine each other, so any one of them will do.
func coveringSets(g *graph.Graph[int], determined *set.Set[int]) [][]int {
	var groups [][]int
	for _, component := range g.StronglyConnectedComponents() {
		if slices.ContainsFunc(component, determined.Contains) {
			continue
		}
		groups = append(groups, component)
	}
	sets := util.CartesianProduct(groups)
	for _, s := range sets {
		slices.Sort(s)
	}
	slices.SortFunc(sets, slices.Compare)
	return sets
}
