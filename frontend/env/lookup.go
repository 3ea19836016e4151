package env

import (
	"slices"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/typenv/frontend/enverr"
	"github.com/cottand/typenv/frontend/names"
)

// LookupValue finds a value in scope. A missing value is simply not in scope.
func (e Environment) LookupValue(ident QualifiedIdent) (ValueInfo, bool) {
	return e.values.Get(ident)
}

// LookupConstructor finds a data constructor that name resolution already found.
// It panics with an *enverr.Internal when the constructor is missing, as that means
// the environment and name resolution disagree.
func (e Environment) LookupConstructor(ctor QualifiedProperName) ConstructorInfo {
	info, ok := e.dataConstructors.Get(ctor)
	if !ok {
		enverr.Raise(enverr.UnknownConstructor, "data constructor %s not found in environment", ctor)
	}
	return info
}

// IsNewtypeConstructor holds when ctor was declared with newtype.
// Like LookupConstructor, it panics when ctor is missing.
func (e Environment) IsNewtypeConstructor(ctor QualifiedProperName) bool {
	return e.LookupConstructor(ctor).Decl == Newtype
}

func (e Environment) LookupType(name QualifiedProperName) (TypeInfo, bool) {
	return e.types.Get(name)
}

func (e Environment) LookupTypeSynonym(name QualifiedProperName) (TypeSynonymInfo, bool) {
	return e.typeSynonyms.Get(name)
}

func (e Environment) LookupTypeClass(name QualifiedProperName) (TypeClassData, bool) {
	return e.typeClasses.Get(name)
}

func (e Environment) HasKind(name QualifiedProperName) bool {
	return e.kinds.Has(name)
}

// DictionariesFor returns the dictionaries of class in scope, ordered by dictionary value
func (e Environment) DictionariesFor(scope names.ModuleName, class QualifiedProperName) []TypeClassDictionaryInScope {
	byClass, ok := e.dictionaries.Get(scope)
	if !ok {
		return nil
	}
	byValue, ok := byClass.Get(class)
	if !ok {
		return nil
	}
	return sortedValues(byValue, names.Compare[names.Ident])
}

// Dictionaries returns every dictionary in scope, ordered by class then dictionary value
func (e Environment) Dictionaries(scope names.ModuleName) []TypeClassDictionaryInScope {
	byClass, ok := e.dictionaries.Get(scope)
	if !ok {
		return nil
	}
	var out []TypeClassDictionaryInScope
	for _, class := range sortedKeys(byClass, names.Compare[names.ProperName]) {
		out = append(out, e.DictionariesFor(scope, class)...)
	}
	return out
}

// DictionaryScopes lists the modules that have dictionaries in scope, in order.
// LocalScope comes first when present.
func (e Environment) DictionaryScopes() []names.ModuleName {
	return sortedKeys(e.dictionaries, compareModules)
}

// Values lists the values in scope, in order
func (e Environment) Values() []QualifiedIdent {
	return sortedKeys(e.values, names.Compare[names.Ident])
}

func (e Environment) Types() []QualifiedProperName {
	return sortedKeys(e.types, names.Compare[names.ProperName])
}

func (e Environment) DataConstructors() []QualifiedProperName {
	return sortedKeys(e.dataConstructors, names.Compare[names.ProperName])
}

func (e Environment) TypeSynonyms() []QualifiedProperName {
	return sortedKeys(e.typeSynonyms, names.Compare[names.ProperName])
}

func (e Environment) TypeClasses() []QualifiedProperName {
	return sortedKeys(e.typeClasses, names.Compare[names.ProperName])
}

func (e Environment) Kinds() []QualifiedProperName {
	kinds := e.kinds.Items()
	slices.SortFunc(kinds, names.Compare[names.ProperName])
	return kinds
}

func compareModules(a, b names.ModuleName) int {
	return strings.Compare(string(a), string(b))
}

func sortedKeys[K, V any](m *immutable.Map[K, V], cmp func(K, K) int) []K {
	keys := make([]K, 0, m.Len())
	itr := m.Iterator()
	for !itr.Done() {
		k, _, _ := itr.Next()
		keys = append(keys, k)
	}
	slices.SortFunc(keys, cmp)
	return keys
}

func sortedValues[K, V any](m *immutable.Map[K, V], cmp func(K, K) int) []V {
	values := make([]V, 0, m.Len())
	for _, k := range sortedKeys(m, cmp) {
		v, _ := m.Get(k)
		values = append(values, v)
	}
	return values
}
