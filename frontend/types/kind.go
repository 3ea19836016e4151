package types

import (
	"fmt"

	"github.com/cottand/typenv/frontend/names"
)

// Kind classifies types
type Kind interface {
	fmt.Stringer
	isKind()
}

// KUnknown is a kind unification variable
type KUnknown struct {
	ID int
}

// NamedKind is a kind introduced by a kind declaration, or one of the Prim kinds
type NamedKind struct {
	Name names.Qualified[names.ProperName]
}

// Row is the kind of rows whose labels point to types of kind Kind
type Row struct {
	Kind Kind
}

type FunKind struct {
	Arg    Kind
	Result Kind
}

func (KUnknown) isKind()  {}
func (NamedKind) isKind() {}
func (Row) isKind()       {}
func (FunKind) isKind()   {}

func (k KUnknown) String() string {
	return fmt.Sprintf("k%d", k.ID)
}

func (k NamedKind) String() string {
	return string(k.Name.Name)
}

func (k Row) String() string {
	return "# " + showKindAtom(k.Kind)
}

func (k FunKind) String() string {
	return showKindAtom(k.Arg) + " -> " + k.Result.String()
}

func showKindAtom(k Kind) string {
	if _, ok := k.(FunKind); ok {
		return "(" + k.String() + ")"
	}
	return k.String()
}

// KindFunction builds a curried kind arrow out of args ending in result
func KindFunction(result Kind, args ...Kind) Kind {
	k := result
	for i := len(args) - 1; i >= 0; i-- {
		k = FunKind{Arg: args[i], Result: k}
	}
	return k
}

// KindArity counts the arrows at the spine of k
func KindArity(k Kind) int {
	arity := 0
	for {
		f, ok := k.(FunKind)
		if !ok {
			return arity
		}
		arity++
		k = f.Result
	}
}
