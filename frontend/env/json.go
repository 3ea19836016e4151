package env

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cottand/typenv/frontend/enverr"
	"github.com/cottand/typenv/frontend/names"
	"github.com/cottand/typenv/frontend/types"
)

func (d DataDeclType) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "data" or "newtype". Anything else is an *enverr.Decode.
func (d *DataDeclType) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return enverr.NewDecode(enverr.UnknownDataDeclType, "data declaration type", string(data))
	}
	switch tag {
	case "data":
		*d = Data
	case "newtype":
		*d = Newtype
	default:
		return enverr.NewDecode(enverr.UnknownDataDeclType, "data declaration type", tag)
	}
	return nil
}

func (k NameKind) MarshalText() ([]byte, error)       { return []byte(k.String()), nil }
func (v NameVisibility) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// TypeArg is written as [name, kind], with a null kind when it is not known
func (a TypeArg) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{a.Name, a.Kind})
}

func (a *TypeArg) UnmarshalJSON(data []byte) error {
	fields, err := splitTuple(data, 2, "type argument")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(fields[0], &a.Name); err != nil {
		return enverr.NewDecode(enverr.MalformedDeclaration, "type argument name", string(fields[0]))
	}
	a.Kind, err = types.UnmarshalOptionalKind(fields[1])
	return err
}

func (m ClassMember) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{m.Name, m.Type})
}

func (m *ClassMember) UnmarshalJSON(data []byte) error {
	fields, err := splitTuple(data, 2, "class member")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(fields[0], &m.Name); err != nil {
		return enverr.NewDecode(enverr.MalformedDeclaration, "class member name", string(fields[0]))
	}
	m.Type, err = types.UnmarshalType(fields[1])
	return err
}

func (c DataCtor) MarshalJSON() ([]byte, error) {
	fields := c.Fields
	if fields == nil {
		fields = []types.Type{}
	}
	return json.Marshal([2]any{c.Name, fields})
}

func (c *DataCtor) UnmarshalJSON(data []byte) error {
	fields, err := splitTuple(data, 2, "data constructor")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(fields[0], &c.Name); err != nil {
		return enverr.NewDecode(enverr.MalformedDeclaration, "data constructor name", string(fields[0]))
	}
	c.Fields, err = types.UnmarshalTypes(fields[1])
	return err
}

func splitTuple(data []byte, n int, what string) ([]json.RawMessage, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || len(fields) != n {
		return nil, enverr.NewDecode(enverr.MalformedDeclaration, what, string(data))
	}
	return fields, nil
}

// Nullary type kinds are written as their bare tag, and DataType as
// {"tag": "DataType", "contents": [args, constructors]}

func (TypeSynonym) MarshalJSON() ([]byte, error)       { return json.Marshal("TypeSynonym") }
func (ExternData) MarshalJSON() ([]byte, error)        { return json.Marshal("ExternData") }
func (LocalTypeVariable) MarshalJSON() ([]byte, error) { return json.Marshal("LocalTypeVariable") }
func (ScopedTypeVar) MarshalJSON() ([]byte, error)     { return json.Marshal("ScopedTypeVar") }

func (d DataType) MarshalJSON() ([]byte, error) {
	args, ctors := d.Args, d.Ctors
	if args == nil {
		args = []TypeArg{}
	}
	if ctors == nil {
		ctors = []DataCtor{}
	}
	return json.Marshal(struct {
		Tag      string `json:"tag"`
		Contents [2]any `json:"contents"`
	}{
		Tag:      "DataType",
		Contents: [2]any{args, ctors},
	})
}

// UnmarshalTypeKind decodes a persisted TypeKind, failing with an *enverr.Decode on unknown tags
func UnmarshalTypeKind(data []byte) (TypeKind, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var tag string
		if err := json.Unmarshal(data, &tag); err != nil {
			return nil, enverr.NewDecode(enverr.UnknownTypeKind, "type kind", string(data))
		}
		switch tag {
		case "TypeSynonym":
			return TypeSynonym{}, nil
		case "ExternData":
			return ExternData{}, nil
		case "LocalTypeVariable":
			return LocalTypeVariable{}, nil
		case "ScopedTypeVar":
			return ScopedTypeVar{}, nil
		}
		return nil, enverr.NewDecode(enverr.UnknownTypeKind, "type kind", tag)
	}

	var obj struct {
		Tag      string            `json:"tag"`
		Contents []json.RawMessage `json:"contents"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, enverr.NewDecode(enverr.UnknownTypeKind, "type kind", string(data))
	}
	if obj.Tag != "DataType" {
		return nil, enverr.NewDecode(enverr.UnknownTypeKind, "type kind", obj.Tag)
	}
	if len(obj.Contents) != 2 {
		return nil, enverr.NewDecode(enverr.UnknownTypeKind, "DataType contents", string(data))
	}
	var dt DataType
	if err := json.Unmarshal(obj.Contents[0], &dt.Args); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(obj.Contents[1], &dt.Ctors); err != nil {
		return nil, err
	}
	// encoded as [] when nil
	if len(dt.Args) == 0 {
		dt.Args = nil
	}
	if len(dt.Ctors) == 0 {
		dt.Ctors = nil
	}
	return dt, nil
}

type valueInfoJSON struct {
	Type       types.Type     `json:"nType"`
	Kind       NameKind       `json:"nKind"`
	Visibility NameVisibility `json:"nVis"`
}

func (v ValueInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(valueInfoJSON(v))
}

func (t TypeInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   types.Kind `json:"tKind"`
		Detail TypeKind   `json:"tDecl"`
	}{t.Kind, t.Detail})
}

func (c ConstructorInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Decl     DataDeclType     `json:"cDecl"`
		TypeName names.ProperName `json:"cType"`
		Type     types.Type       `json:"cCtor"`
		Fields   []names.Ident    `json:"cArgs"`
	}{c.Decl, c.TypeName, c.Type, c.Fields})
}

func (s TypeSynonymInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Params []TypeArg  `json:"tsArgs"`
		Body   types.Type `json:"tsType"`
	}{s.Params, s.Body})
}

func (d TypeClassDictionaryInScope) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Chain         []QualifiedIdent    `json:"tcdChain"`
		Index         int                 `json:"tcdIndex"`
		Value         QualifiedIdent      `json:"tcdValue"`
		Path          []SuperclassStep    `json:"tcdPath"`
		ClassName     QualifiedProperName `json:"tcdClassName"`
		InstanceTypes []types.Type        `json:"tcdInstanceTypes"`
		Dependencies  []types.Constraint  `json:"tcdDependencies"`
	}{d.Chain, d.Index, d.Value, d.Path, d.ClassName, d.InstanceTypes, d.Dependencies})
}

type typeClassDataJSON struct {
	Args           []TypeArg              `json:"tcArgs"`
	Members        []ClassMember          `json:"tcMembers"`
	Superclasses   []types.Constraint     `json:"tcSuperclasses"`
	Dependencies   []FunctionalDependency `json:"tcDependencies"`
	DeterminedArgs []int                  `json:"tcDeterminedArgs"`
	CoveringSets   [][]int                `json:"tcCoveringSets"`
}

func (d TypeClassData) MarshalJSON() ([]byte, error) {
	determined := d.DeterminedArguments()
	if determined == nil {
		determined = []int{}
	}
	return json.Marshal(typeClassDataJSON{
		Args:           d.arguments,
		Members:        d.members,
		Superclasses:   d.superclasses,
		Dependencies:   d.dependencies,
		DeterminedArgs: determined,
		CoveringSets:   d.coveringSets,
	})
}

// UnmarshalJSON rebuilds the class with MakeTypeClassData: persisted determined
// arguments and covering sets are ignored and recomputed.
// Dependencies referring to missing arguments are an *enverr.Decode.
func (d *TypeClassData) UnmarshalJSON(data []byte) error {
	var raw typeClassDataJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := CheckDependencies(len(raw.Args), raw.Dependencies); err != nil {
		return err
	}
	*d = MakeTypeClassData(raw.Args, raw.Members, raw.Superclasses, raw.Dependencies)
	return nil
}

// CheckDependencies reports, as an *enverr.Decode, the first dependency index
// that does not point at one of argCount arguments
func CheckDependencies(argCount int, deps []FunctionalDependency) error {
	if dep, index, found := invalidDependencyIndex(argCount, deps); found {
		return enverr.NewDecode(enverr.ArgumentIndexOutOfRange,
			fmt.Sprintf("functional dependency %d of a class with %d arguments", dep, argCount), index)
	}
	return nil
}

// MarshalJSON writes the whole environment, keyed by qualified name
func (e Environment) MarshalJSON() ([]byte, error) {
	dicts := make(map[string]map[string][]TypeClassDictionaryInScope)
	for _, scope := range e.DictionaryScopes() {
		byClass := make(map[string][]TypeClassDictionaryInScope)
		for _, dict := range e.Dictionaries(scope) {
			byClass[dict.ClassName.String()] = append(byClass[dict.ClassName.String()], dict)
		}
		dicts[string(scope)] = byClass
	}
	kinds := make([]string, 0)
	for _, kind := range e.Kinds() {
		kinds = append(kinds, kind.String())
	}
	return json.Marshal(struct {
		Names                 map[string]ValueInfo                                   `json:"names"`
		Types                 map[string]TypeInfo                                    `json:"types"`
		DataConstructors      map[string]ConstructorInfo                             `json:"dataConstructors"`
		TypeSynonyms          map[string]TypeSynonymInfo                             `json:"typeSynonyms"`
		TypeClassDictionaries map[string]map[string][]TypeClassDictionaryInScope `json:"typeClassDictionaries"`
		TypeClasses           map[string]TypeClassData                               `json:"typeClasses"`
		Kinds                 []string                                               `json:"kinds"`
	}{
		Names:                 byName(e.Values(), e.values.Get),
		Types:                 byName(e.Types(), e.types.Get),
		DataConstructors:      byName(e.DataConstructors(), e.dataConstructors.Get),
		TypeSynonyms:          byName(e.TypeSynonyms(), e.typeSynonyms.Get),
		TypeClassDictionaries: dicts,
		TypeClasses:           byName(e.TypeClasses(), e.typeClasses.Get),
		Kinds:                 kinds,
	})
}

func byName[K fmt.Stringer, V any](keys []K, get func(K) (V, bool)) map[string]V {
	out := make(map[string]V, len(keys))
	for _, k := range keys {
		v, _ := get(k)
		out[k.String()] = v
	}
	return out
}
