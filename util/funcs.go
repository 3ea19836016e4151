package util

import (
	"cmp"
	"slices"

	"github.com/hashicorp/go-set/v3"
)

func MapSlice[A, B any](slice []A, f func(A) B) []B {
	if slice == nil {
		return nil
	}
	out := make([]B, 0, len(slice))
	for _, v := range slice {
		out = append(out, f(v))
	}
	return out
}

// SortedSlice returns the elements of s in ascending order
func SortedSlice[V cmp.Ordered](s *set.Set[V]) []V {
	out := s.Slice()
	slices.Sort(out)
	return out
}

// CartesianProduct picks one element of each group in every possible way.
// With no groups, the only combination is the empty one.
func CartesianProduct[A any](groups [][]A) [][]A {
	combinations := [][]A{{}}
	for _, group := range groups {
		next := make([][]A, 0, len(combinations)*len(group))
		for _, prefix := range combinations {
			for _, elem := range group {
				combination := make([]A, len(prefix), len(prefix)+1)
				copy(combination, prefix)
				next = append(next, append(combination, elem))
			}
		}
		combinations = next
	}
	return combinations
}
