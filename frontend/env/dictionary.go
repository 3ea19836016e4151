package env

import (
	"github.com/cottand/typenv/frontend/names"
	"github.com/cottand/typenv/frontend/types"
	"github.com/cottand/typenv/util"
)

// LocalScope keys the dictionaries that are not defined by a module,
// but brought into scope by a constrained type
const LocalScope names.ModuleName = ""

// SuperclassStep is one step from a dictionary to one of its superclass dictionaries:
// the superclass, and its index among the superclasses of the class
type SuperclassStep = util.Pair[QualifiedProperName, int]

// TypeClassDictionaryInScope is an instance dictionary available to the solver
type TypeClassDictionaryInScope struct {
	// Chain lists the instances of the instance chain this dictionary belongs to
	Chain []QualifiedIdent
	// Index is the position of this dictionary in Chain
	Index int
	// Value names the dictionary value
	Value QualifiedIdent
	// Path leads from Value to the superclass dictionary actually in scope, if any
	Path          []SuperclassStep
	ClassName     QualifiedProperName
	InstanceTypes []types.Type
	// Dependencies are the constraints of the instance; nil when it has none
	Dependencies []types.Constraint
}
