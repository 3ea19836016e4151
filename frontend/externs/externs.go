// Package externs reads the declarations a compiled module exports and
// applies them to a type environment.
package externs

import (
	"encoding/json"
	"io"

	"github.com/cottand/typenv/frontend/env"
	"github.com/cottand/typenv/frontend/enverr"
	"github.com/cottand/typenv/frontend/names"
	"github.com/cottand/typenv/frontend/types"
	"github.com/cottand/typenv/internal/log"
	"github.com/pkg/errors"
)

var externsLogger = log.DefaultLogger.With("section", "externs")

// File is the externs of one module
type File struct {
	ModuleName   names.ModuleName
	Declarations []Declaration
}

// Declaration is one of TypeDecl, TypeSynonymDecl, DataConstructorDecl,
// ValueDecl, ClassDecl, InstanceDecl or KindDecl
type Declaration interface {
	declTag() string
}

type TypeDecl struct {
	Name   names.ProperName
	Kind   types.Kind
	Detail env.TypeKind
}

type TypeSynonymDecl struct {
	Name   names.ProperName
	Params []env.TypeArg
	Body   types.Type
}

type DataConstructorDecl struct {
	Name     names.ProperName
	Decl     env.DataDeclType
	TypeName names.ProperName
	Type     types.Type
	Fields   []names.Ident
}

type ValueDecl struct {
	Name names.Ident
	Type types.Type
}

type ClassDecl struct {
	Name         names.ProperName
	Args         []env.TypeArg
	Members      []env.ClassMember
	Superclasses []types.Constraint
	Dependencies []env.FunctionalDependency
}

type InstanceDecl struct {
	ClassName    env.QualifiedProperName
	Name         names.Ident
	Types        []types.Type
	Dependencies []types.Constraint
	Chain        []env.QualifiedIdent
	ChainIndex   int
}

type KindDecl struct {
	Name names.ProperName
}

func (TypeDecl) declTag() string            { return "EDType" }
func (TypeSynonymDecl) declTag() string     { return "EDTypeSynonym" }
func (DataConstructorDecl) declTag() string { return "EDDataConstructor" }
func (ValueDecl) declTag() string           { return "EDValue" }
func (ClassDecl) declTag() string           { return "EDClass" }
func (InstanceDecl) declTag() string        { return "EDInstance" }
func (KindDecl) declTag() string            { return "EDKind" }

// Decode reads a single externs file
func Decode(r io.Reader) (*File, error) {
	var raw struct {
		ModuleName   names.ModuleName  `json:"moduleName"`
		Declarations []json.RawMessage `json:"declarations"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "reading externs")
	}
	if raw.ModuleName == "" {
		return nil, enverr.NewDecode(enverr.MalformedDeclaration, "externs", "a file without moduleName")
	}

	file := &File{ModuleName: raw.ModuleName, Declarations: make([]Declaration, 0, len(raw.Declarations))}
	for i, data := range raw.Declarations {
		decl, err := decodeDeclaration(data)
		if err != nil {
			return nil, errors.Wrapf(err, "declaration %d of module %s", i, raw.ModuleName)
		}
		file.Declarations = append(file.Declarations, decl)
	}
	externsLogger.Debug("decoded externs", "module", file.ModuleName, "declarations", len(file.Declarations))
	return file, nil
}

// decodeDeclaration expects an object with a single key naming the declaration
func decodeDeclaration(data []byte) (Declaration, error) {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil || len(wrapper) != 1 {
		return nil, enverr.NewDecode(enverr.MalformedDeclaration, "declaration", string(data))
	}
	for tag, body := range wrapper {
		switch tag {
		case "EDType":
			return decodeType(body)
		case "EDTypeSynonym":
			return decodeTypeSynonym(body)
		case "EDDataConstructor":
			return decodeDataConstructor(body)
		case "EDValue":
			return decodeValue(body)
		case "EDClass":
			return decodeClass(body)
		case "EDInstance":
			return decodeInstance(body)
		case "EDKind":
			var decl struct {
				Name names.ProperName `json:"edKindName"`
			}
			if err := json.Unmarshal(body, &decl); err != nil {
				return nil, errors.Wrap(err, "EDKind")
			}
			return KindDecl{Name: decl.Name}, nil
		default:
			return nil, enverr.NewDecode(enverr.MalformedDeclaration, "declaration", tag)
		}
	}
	panic("unreachable")
}

func decodeType(body []byte) (Declaration, error) {
	var raw struct {
		Name   names.ProperName `json:"edTypeName"`
		Kind   json.RawMessage  `json:"edTypeKind"`
		Detail json.RawMessage  `json:"edTypeDeclarationKind"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "EDType")
	}
	kind, err := types.UnmarshalOptionalKind(raw.Kind)
	if err != nil {
		return nil, errors.Wrapf(err, "kind of %s", raw.Name)
	}
	detail, err := env.UnmarshalTypeKind(raw.Detail)
	if err != nil {
		return nil, errors.Wrapf(err, "declaration kind of %s", raw.Name)
	}
	return TypeDecl{Name: raw.Name, Kind: kind, Detail: detail}, nil
}

func decodeTypeSynonym(body []byte) (Declaration, error) {
	var raw struct {
		Name   names.ProperName `json:"edTypeSynonymName"`
		Params []env.TypeArg    `json:"edTypeSynonymArguments"`
		Body   json.RawMessage  `json:"edTypeSynonymType"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "EDTypeSynonym")
	}
	t, err := types.UnmarshalType(raw.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "body of %s", raw.Name)
	}
	return TypeSynonymDecl{Name: raw.Name, Params: raw.Params, Body: t}, nil
}

func decodeDataConstructor(body []byte) (Declaration, error) {
	var raw struct {
		Name     names.ProperName `json:"edDataCtorName"`
		Decl     env.DataDeclType `json:"edDataCtorOrigin"`
		TypeName names.ProperName `json:"edDataCtorTypeCtor"`
		Type     json.RawMessage  `json:"edDataCtorType"`
		Fields   []names.Ident    `json:"edDataCtorFields"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "EDDataConstructor")
	}
	t, err := types.UnmarshalType(raw.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "type of %s", raw.Name)
	}
	return DataConstructorDecl{
		Name:     raw.Name,
		Decl:     raw.Decl,
		TypeName: raw.TypeName,
		Type:     t,
		Fields:   raw.Fields,
	}, nil
}

func decodeValue(body []byte) (Declaration, error) {
	var raw struct {
		Name names.Ident     `json:"edValueName"`
		Type json.RawMessage `json:"edValueType"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "EDValue")
	}
	t, err := types.UnmarshalType(raw.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "type of %s", raw.Name)
	}
	return ValueDecl{Name: raw.Name, Type: t}, nil
}

func decodeClass(body []byte) (Declaration, error) {
	var raw struct {
		Name         names.ProperName           `json:"edClassName"`
		Args         []env.TypeArg              `json:"edClassTypeArguments"`
		Members      []env.ClassMember          `json:"edClassMembers"`
		Superclasses []types.Constraint         `json:"edClassConstraints"`
		Dependencies []env.FunctionalDependency `json:"edFunctionalDependencies"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "EDClass")
	}
	if err := env.CheckDependencies(len(raw.Args), raw.Dependencies); err != nil {
		return nil, errors.Wrapf(err, "class %s", raw.Name)
	}
	return ClassDecl{
		Name:         raw.Name,
		Args:         raw.Args,
		Members:      raw.Members,
		Superclasses: raw.Superclasses,
		Dependencies: raw.Dependencies,
	}, nil
}

func decodeInstance(body []byte) (Declaration, error) {
	var raw struct {
		ClassName    env.QualifiedProperName `json:"edInstanceClassName"`
		Name         names.Ident             `json:"edInstanceName"`
		Types        json.RawMessage         `json:"edInstanceTypes"`
		Dependencies []types.Constraint      `json:"edInstanceConstraints"`
		Chain        []env.QualifiedIdent    `json:"edInstanceChain"`
		ChainIndex   int                     `json:"edInstanceChainIndex"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "EDInstance")
	}
	instanceTypes, err := types.UnmarshalTypes(raw.Types)
	if err != nil {
		return nil, errors.Wrapf(err, "types of instance %s", raw.Name)
	}
	return InstanceDecl{
		ClassName:    raw.ClassName,
		Name:         raw.Name,
		Types:        instanceTypes,
		Dependencies: raw.Dependencies,
		Chain:        raw.Chain,
		ChainIndex:   raw.ChainIndex,
	}, nil
}
