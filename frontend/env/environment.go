// Package env is the global type environment: every value, type, data constructor,
// type synonym, kind, type class and instance dictionary in scope while type checking.
//
// An Environment is a persistent value. Every With* method returns a new Environment
// sharing structure with its receiver, which stays valid and unchanged, so snapshots
// can be read concurrently without locking.
package env

import (
	"github.com/benbjohnson/immutable"
	"github.com/cottand/typenv/frontend/names"
	"github.com/cottand/typenv/internal/log"
)

var envLogger = log.DefaultLogger.With("section", "env")

type dictionariesByValue = immutable.Map[QualifiedIdent, TypeClassDictionaryInScope]
type dictionariesByClass = immutable.Map[QualifiedProperName, *dictionariesByValue]

// The zero Environment is not usable: start from Empty or PrimEnvironment.
type Environment struct {
	// values is called names in interface files
	values           *immutable.Map[QualifiedIdent, ValueInfo]
	types            *immutable.Map[QualifiedProperName, TypeInfo]
	dataConstructors *immutable.Map[QualifiedProperName, ConstructorInfo]
	typeSynonyms     *immutable.Map[QualifiedProperName, TypeSynonymInfo]
	// dictionaries are keyed by module (LocalScope for local ones), then class, then dictionary value
	dictionaries *immutable.Map[names.ModuleName, *dictionariesByClass]
	typeClasses  *immutable.Map[QualifiedProperName, TypeClassData]
	kinds        immutable.Set[QualifiedProperName]
}

// Empty is an environment without anything in scope, not even Prim.
// Most callers want PrimEnvironment instead.
func Empty() Environment {
	return Environment{
		values:           immutable.NewMap[QualifiedIdent, ValueInfo](names.QualifiedHasher[names.Ident]{}),
		types:            immutable.NewMap[QualifiedProperName, TypeInfo](names.QualifiedHasher[names.ProperName]{}),
		dataConstructors: immutable.NewMap[QualifiedProperName, ConstructorInfo](names.QualifiedHasher[names.ProperName]{}),
		typeSynonyms:     immutable.NewMap[QualifiedProperName, TypeSynonymInfo](names.QualifiedHasher[names.ProperName]{}),
		dictionaries:     immutable.NewMap[names.ModuleName, *dictionariesByClass](nil),
		typeClasses:      immutable.NewMap[QualifiedProperName, TypeClassData](names.QualifiedHasher[names.ProperName]{}),
		kinds:            immutable.NewSet[QualifiedProperName](names.QualifiedHasher[names.ProperName]{}),
	}
}

func (e Environment) WithValue(ident QualifiedIdent, info ValueInfo) Environment {
	e.values = e.values.Set(ident, info)
	return e
}

func (e Environment) WithType(name QualifiedProperName, info TypeInfo) Environment {
	e.types = e.types.Set(name, info)
	return e
}

func (e Environment) WithDataConstructor(name QualifiedProperName, info ConstructorInfo) Environment {
	e.dataConstructors = e.dataConstructors.Set(name, info)
	return e
}

func (e Environment) WithTypeSynonym(name QualifiedProperName, info TypeSynonymInfo) Environment {
	e.typeSynonyms = e.typeSynonyms.Set(name, info)
	return e
}

// WithTypeClass records a class. A class declared twice replaces the earlier entry.
func (e Environment) WithTypeClass(name QualifiedProperName, data TypeClassData) Environment {
	if _, exists := e.typeClasses.Get(name); exists {
		envLogger.Debug("replacing type class", "class", name.String())
	}
	e.typeClasses = e.typeClasses.Set(name, data)
	return e
}

func (e Environment) WithKind(name QualifiedProperName) Environment {
	e.kinds = e.kinds.Add(name)
	return e
}

// WithDictionary brings dict into scope under the given module, or LocalScope
func (e Environment) WithDictionary(scope names.ModuleName, dict TypeClassDictionaryInScope) Environment {
	byClass, ok := e.dictionaries.Get(scope)
	if !ok {
		byClass = immutable.NewMap[QualifiedProperName, *dictionariesByValue](names.QualifiedHasher[names.ProperName]{})
	}
	byValue, ok := byClass.Get(dict.ClassName)
	if !ok {
		byValue = immutable.NewMap[QualifiedIdent, TypeClassDictionaryInScope](names.QualifiedHasher[names.Ident]{})
	}
	byValue = byValue.Set(dict.Value, dict)
	e.dictionaries = e.dictionaries.Set(scope, byClass.Set(dict.ClassName, byValue))
	return e
}

// Merge extends e with every entry of other. Entries of other win on conflicts.
func (e Environment) Merge(other Environment) Environment {
	e.values = mergeMaps(e.values, other.values)
	e.types = mergeMaps(e.types, other.types)
	e.dataConstructors = mergeMaps(e.dataConstructors, other.dataConstructors)
	e.typeSynonyms = mergeMaps(e.typeSynonyms, other.typeSynonyms)
	e.typeClasses = mergeMaps(e.typeClasses, other.typeClasses)
	for _, kind := range other.kinds.Items() {
		e.kinds = e.kinds.Add(kind)
	}
	for _, scope := range sortedKeys(other.dictionaries, compareModules) {
		for _, dict := range other.Dictionaries(scope) {
			e = e.WithDictionary(scope, dict)
		}
	}
	return e
}

func mergeMaps[K, V any](into, from *immutable.Map[K, V]) *immutable.Map[K, V] {
	itr := from.Iterator()
	for !itr.Done() {
		k, v, _ := itr.Next()
		into = into.Set(k, v)
	}
	return into
}
