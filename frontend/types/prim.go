package types

import "github.com/cottand/typenv/frontend/names"

const PrimModule names.ModuleName = "Prim"

// PrimName qualifies name with the Prim module
func PrimName(name names.ProperName) names.Qualified[names.ProperName] {
	return names.Qualify(PrimModule, name)
}

// PrimSubName qualifies name with a sub-namespace of Prim, like Prim.Row
func PrimSubName(sub string, name names.ProperName) names.Qualified[names.ProperName] {
	return names.Qualify(PrimModule+names.ModuleName("."+sub), name)
}

func primTy(name names.ProperName) TypeConstructor {
	return TypeConstructor{Name: PrimName(name)}
}

var (
	TyFunction = primTy("Function")
	TyArray    = primTy("Array")
	TyRecord   = primTy("Record")
	TyString   = primTy("String")
	TyChar     = primTy("Char")
	TyNumber   = primTy("Number")
	TyInt      = primTy("Int")
	TyBoolean  = primTy("Boolean")
	// TyPartial is the class constraining partial functions
	TyPartial = primTy("Partial")
)

var (
	KindType   = NamedKind{Name: PrimName("Type")}
	KindSymbol = NamedKind{Name: PrimName("Symbol")}
)

// KindRow is the kind of rows of k
func KindRow(k Kind) Kind {
	return Row{Kind: k}
}
