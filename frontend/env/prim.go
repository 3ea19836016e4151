package env

import (
	"strings"
	"sync"

	"github.com/cottand/typenv/frontend/names"
	"github.com/cottand/typenv/frontend/types"
)

// The Prim namespace is declared as data below and merged into an empty
// environment once, by PrimEnvironment.

var (
	kindType     = types.KindType
	kindSymbol   = types.KindSymbol
	kindOrdering = types.NamedKind{Name: types.PrimSubName("Ordering", "Ordering")}
	kindRowList  = types.NamedKind{Name: types.PrimSubName("RowList", "RowList")}
	kindDoc      = types.NamedKind{Name: types.PrimSubName("TypeError", "Doc")}
	kindRowType  = types.KindRow(types.KindType)
)

var primKinds = []QualifiedProperName{
	kindType.Name,
	kindSymbol.Name,
	kindOrdering.Name,
	kindRowList.Name,
	kindDoc.Name,
}

type primType struct {
	name QualifiedProperName
	kind types.Kind
}

func fn(result types.Kind, args ...types.Kind) types.Kind {
	return types.KindFunction(result, args...)
}

// primTypes are all ExternData
var primTypes = []primType{
	{types.TyFunction.Name, fn(kindType, kindType, kindType)},
	{types.TyArray.Name, fn(kindType, kindType)},
	{types.TyRecord.Name, fn(kindType, kindRowType)},
	{types.TyString.Name, kindType},
	{types.TyChar.Name, kindType},
	{types.TyNumber.Name, kindType},
	{types.TyInt.Name, kindType},
	{types.TyBoolean.Name, kindType},
	{types.TyPartial.Name, kindType},

	{types.PrimSubName("Ordering", "LT"), kindOrdering},
	{types.PrimSubName("Ordering", "EQ"), kindOrdering},
	{types.PrimSubName("Ordering", "GT"), kindOrdering},

	{types.PrimSubName("Row", "Union"), fn(kindType, kindRowType, kindRowType, kindRowType)},
	{types.PrimSubName("Row", "Nub"), fn(kindType, kindRowType, kindRowType)},
	{types.PrimSubName("Row", "Lacks"), fn(kindType, kindSymbol, kindRowType)},
	{types.PrimSubName("Row", "Cons"), fn(kindType, kindSymbol, kindType, kindRowType, kindRowType)},

	{types.PrimSubName("RowList", "RowToList"), fn(kindType, kindRowType, kindRowList)},
	{types.PrimSubName("RowList", "Cons"), fn(kindRowList, kindSymbol, kindType, kindRowList)},
	{types.PrimSubName("RowList", "Nil"), kindRowList},

	{types.PrimSubName("Symbol", "Append"), fn(kindType, kindSymbol, kindSymbol, kindSymbol)},
	{types.PrimSubName("Symbol", "Compare"), fn(kindType, kindSymbol, kindSymbol, kindOrdering)},
	{types.PrimSubName("Symbol", "Cons"), fn(kindType, kindSymbol, kindSymbol, kindSymbol)},

	{types.PrimSubName("TypeError", "Fail"), fn(kindType, kindDoc)},
	{types.PrimSubName("TypeError", "Warn"), fn(kindType, kindDoc)},
	{types.PrimSubName("TypeError", "Text"), fn(kindDoc, kindSymbol)},
	{types.PrimSubName("TypeError", "Quote"), fn(kindDoc, kindType)},
	{types.PrimSubName("TypeError", "QuoteLabel"), fn(kindDoc, kindSymbol)},
	{types.PrimSubName("TypeError", "Beside"), fn(kindDoc, kindDoc, kindDoc)},
	{types.PrimSubName("TypeError", "Above"), fn(kindDoc, kindDoc, kindDoc)},
}

type primClass struct {
	name         QualifiedProperName
	args         []TypeArg
	dependencies []FunctionalDependency
}

func arg(name string, kind types.Kind) TypeArg {
	return TypeArg{Name: name, Kind: kind}
}

func dep(determiners []int, determined ...int) FunctionalDependency {
	return FunctionalDependency{Determiners: determiners, Determined: determined}
}

var primClasses = []primClass{
	// Partial constrains partial functions, and has no arguments
	{name: types.TyPartial.Name},
	{
		name: types.PrimSubName("Row", "Union"),
		args: []TypeArg{arg("left", kindRowType), arg("right", kindRowType), arg("union", kindRowType)},
		dependencies: []FunctionalDependency{
			dep([]int{0, 1}, 2),
			dep([]int{1, 2}, 0),
			dep([]int{2, 0}, 1),
		},
	},
	{
		name:         types.PrimSubName("Row", "Nub"),
		args:         []TypeArg{arg("original", kindRowType), arg("nubbed", kindRowType)},
		dependencies: []FunctionalDependency{dep([]int{0}, 1)},
	},
	{
		name: types.PrimSubName("Row", "Lacks"),
		args: []TypeArg{arg("label", kindSymbol), arg("row", kindRowType)},
	},
	{
		name: types.PrimSubName("Row", "Cons"),
		args: []TypeArg{arg("label", kindSymbol), arg("a", kindType), arg("tail", kindRowType), arg("row", kindRowType)},
		dependencies: []FunctionalDependency{
			dep([]int{0, 1, 2}, 3),
			dep([]int{0, 3}, 1, 2),
		},
	},
	{
		name:         types.PrimSubName("RowList", "RowToList"),
		args:         []TypeArg{arg("row", kindRowType), arg("list", kindRowList)},
		dependencies: []FunctionalDependency{dep([]int{0}, 1)},
	},
	{
		name: types.PrimSubName("Symbol", "Append"),
		args: []TypeArg{arg("left", kindSymbol), arg("right", kindSymbol), arg("appended", kindSymbol)},
		dependencies: []FunctionalDependency{
			dep([]int{0, 1}, 2),
			dep([]int{0, 2}, 1),
			dep([]int{1, 2}, 0),
		},
	},
	{
		name:         types.PrimSubName("Symbol", "Compare"),
		args:         []TypeArg{arg("left", kindSymbol), arg("right", kindSymbol), arg("ordering", kindOrdering)},
		dependencies: []FunctionalDependency{dep([]int{0, 1}, 2)},
	},
	{
		name: types.PrimSubName("Symbol", "Cons"),
		args: []TypeArg{arg("head", kindSymbol), arg("tail", kindSymbol), arg("symbol", kindSymbol)},
		dependencies: []FunctionalDependency{
			dep([]int{0, 1}, 2),
			dep([]int{2}, 0, 1),
		},
	},
	{
		name: types.PrimSubName("TypeError", "Fail"),
		args: []TypeArg{arg("message", kindDoc)},
	},
	{
		name: types.PrimSubName("TypeError", "Warn"),
		args: []TypeArg{arg("message", kindDoc)},
	},
}

// PrimEnvironment is the environment before any module is processed: Empty extended with
// the Prim namespace. It is built once and shared, which is safe as environments are persistent.
var PrimEnvironment = sync.OnceValue(func() Environment {
	e := Empty()
	for _, kind := range primKinds {
		e = e.WithKind(kind)
	}
	for _, t := range primTypes {
		e = e.WithType(t.name, TypeInfo{Kind: t.kind, Detail: ExternData{}})
	}
	for _, c := range primClasses {
		e = e.WithTypeClass(c.name, MakeTypeClassData(c.args, nil, nil, c.dependencies))
	}
	envLogger.Debug("built Prim environment",
		"kinds", len(primKinds),
		"types", len(primTypes),
		"classes", len(primClasses),
	)
	return e
})

// IsPrim holds for names defined in Prim or one of its sub-namespaces
func IsPrim[N names.Name](name names.Qualified[N]) bool {
	return name.IsQualifiedWith(types.PrimModule) ||
		strings.HasPrefix(string(name.Module), string(types.PrimModule)+".")
}
