package env

import (
	"github.com/cottand/typenv/frontend/names"
	"github.com/cottand/typenv/frontend/types"
)

type (
	QualifiedIdent      = names.Qualified[names.Ident]
	QualifiedProperName = names.Qualified[names.ProperName]
)

// NameKind says where a value came from
type NameKind uint8

const (
	// Private values are not exported from their module
	Private NameKind = iota
	Public
	// External values come from a foreign import
	External
)

func (k NameKind) String() string {
	switch k {
	case Private:
		return "Private"
	case Public:
		return "Public"
	case External:
		return "External"
	default:
		return "invalid"
	}
}

// NameVisibility says whether a value may be referenced yet.
// Values of a binding group are Undefined while the group is being checked.
type NameVisibility uint8

const (
	Undefined NameVisibility = iota
	Defined
)

func (v NameVisibility) String() string {
	switch v {
	case Undefined:
		return "Undefined"
	case Defined:
		return "Defined"
	default:
		return "invalid"
	}
}

// ValueInfo is what the environment knows about a value
type ValueInfo struct {
	Type       types.Type
	Kind       NameKind
	Visibility NameVisibility
}

// TypeArg is a type parameter with an optional kind annotation.
// Kind is nil when the kind is not known.
type TypeArg struct {
	Name string
	Kind types.Kind
}

// TypeKind says what declared a type. It is one of
// DataType, TypeSynonym, ExternData, LocalTypeVariable or ScopedTypeVar.
type TypeKind interface {
	typeKindTag() string
}

// DataType is a type declared with data or newtype
type DataType struct {
	Args  []TypeArg
	Ctors []DataCtor
}

type DataCtor struct {
	Name   names.ProperName
	Fields []types.Type
}

type (
	TypeSynonym       struct{}
	ExternData        struct{}
	LocalTypeVariable struct{}
	ScopedTypeVar     struct{}
)

func (DataType) typeKindTag() string          { return "DataType" }
func (TypeSynonym) typeKindTag() string       { return "TypeSynonym" }
func (ExternData) typeKindTag() string        { return "ExternData" }
func (LocalTypeVariable) typeKindTag() string { return "LocalTypeVariable" }
func (ScopedTypeVar) typeKindTag() string     { return "ScopedTypeVar" }

// TypeInfo is what the environment knows about a type
type TypeInfo struct {
	Kind   types.Kind
	Detail TypeKind
}

// DataDeclType distinguishes data from newtype constructors
type DataDeclType uint8

const (
	Data DataDeclType = iota
	Newtype
)

func (d DataDeclType) String() string {
	if d == Newtype {
		return "newtype"
	}
	return "data"
}

// ConstructorInfo is what the environment knows about a data constructor
type ConstructorInfo struct {
	Decl DataDeclType
	// TypeName is the type this constructor builds values of, in the constructor's module
	TypeName names.ProperName
	// Type is the type of the constructor as a function
	Type   types.Type
	Fields []names.Ident
}

type TypeSynonymInfo struct {
	Params []TypeArg
	Body   types.Type
}
