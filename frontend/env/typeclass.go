package env

import (
	"slices"

	"github.com/cottand/typenv/frontend/names"
	"github.com/cottand/typenv/frontend/types"
	"github.com/cottand/typenv/util"
	"github.com/hashicorp/go-set/v3"
)

// FunctionalDependency says the arguments at Determiners fix the arguments at Determined.
// Indices point into the arguments of the owning class.
type FunctionalDependency struct {
	Determiners []int `json:"determiners"`
	Determined  []int `json:"determined"`
}

type ClassMember struct {
	Name names.Ident
	Type types.Type
}

// TypeClassData describes a type class.
//
// Build it with MakeTypeClassData: determined arguments and covering sets are
// derived from the arguments and dependencies and cannot be set on their own.
// A TypeClassData is never modified once built.
type TypeClassData struct {
	arguments    []TypeArg
	members      []ClassMember
	superclasses []types.Constraint
	dependencies []FunctionalDependency

	determinedArguments *set.Set[int]
	coveringSets        [][]int
}

// MakeTypeClassData runs the functional dependency analysis for a class and
// packages it with the declared fields.
//
// It panics with an *enverr.Internal if a dependency refers to an argument
// index the class does not have.
func MakeTypeClassData(
	arguments []TypeArg,
	members []ClassMember,
	superclasses []types.Constraint,
	dependencies []FunctionalDependency,
) TypeClassData {
	g := dependencyGraph(len(arguments), dependencies)
	determined := determinedArguments(g)
	covering := coveringSets(g, determined)

	fundepLogger.Debug("analysed functional dependencies",
		"arguments", len(arguments),
		"dependencies", len(dependencies),
		"determined", util.SortedSlice(determined),
		"coveringSets", covering,
	)

	return TypeClassData{
		arguments:           slices.Clone(arguments),
		members:             slices.Clone(members),
		superclasses:        slices.Clone(superclasses),
		dependencies:        cloneDependencies(dependencies),
		determinedArguments: determined,
		coveringSets:        covering,
	}
}

func cloneDependencies(deps []FunctionalDependency) []FunctionalDependency {
	return util.MapSlice(deps, func(dep FunctionalDependency) FunctionalDependency {
		return FunctionalDependency{
			Determiners: slices.Clone(dep.Determiners),
			Determined:  slices.Clone(dep.Determined),
		}
	})
}

func (d TypeClassData) Arguments() []TypeArg {
	return slices.Clone(d.arguments)
}

func (d TypeClassData) Members() []ClassMember {
	return slices.Clone(d.members)
}

func (d TypeClassData) Superclasses() []types.Constraint {
	return slices.Clone(d.superclasses)
}

func (d TypeClassData) Dependencies() []FunctionalDependency {
	return cloneDependencies(d.dependencies)
}

// DeterminedArguments returns, in ascending order, the indices of the arguments
// that are fully determined by other arguments
func (d TypeClassData) DeterminedArguments() []int {
	if d.determinedArguments == nil {
		return nil
	}
	return util.SortedSlice(d.determinedArguments)
}

func (d TypeClassData) IsDetermined(argument int) bool {
	return d.determinedArguments != nil && d.determinedArguments.Contains(argument)
}

// CoveringSets returns the minimal sets of argument indices that suffice to
// resolve an instance. Each set is sorted, and the sets are in lexicographic order.
func (d TypeClassData) CoveringSets() [][]int {
	return util.MapSlice(d.coveringSets, func(s []int) []int { return slices.Clone(s) })
}

// Arity is the number of arguments of the class
func (d TypeClassData) Arity() int {
	return len(d.arguments)
}

// MemberType returns the declared type of a class member
func (d TypeClassData) MemberType(member names.Ident) (types.Type, bool) {
	for _, m := range d.members {
		if m.Name == member {
			return m.Type, true
		}
	}
	return nil, false
}
