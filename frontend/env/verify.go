package env

import (
	"github.com/cottand/typenv/frontend/enverr"
	"github.com/cottand/typenv/frontend/names"
)

// Verify checks that the entries of e only refer to classes, types and constructors e has.
// Every violation is reported as an *enverr.Internal; the result is nil when there are none.
func (e Environment) Verify() error {
	var errs *enverr.Errors
	dangling := func(format string, args ...any) {
		errs = errs.With(enverr.NewInternal(enverr.DanglingReference, format, args...))
	}

	for _, ctor := range e.DataConstructors() {
		info, _ := e.dataConstructors.Get(ctor)
		owner := names.Qualify(ctor.Module, info.TypeName)
		if _, ok := e.types.Get(owner); !ok {
			dangling("constructor %s builds values of %s, which is not in the environment", ctor, owner)
		}
	}

	for _, name := range e.Types() {
		info, _ := e.types.Get(name)
		data, ok := info.Detail.(DataType)
		if !ok {
			continue
		}
		for _, ctor := range data.Ctors {
			if _, ok := e.dataConstructors.Get(names.Qualify(name.Module, ctor.Name)); !ok {
				dangling("data type %s has constructor %s, which is not in the environment", name, ctor.Name)
			}
		}
	}

	for _, name := range e.TypeSynonyms() {
		info, ok := e.types.Get(name)
		if !ok {
			dangling("type synonym %s has no type entry", name)
			continue
		}
		if _, ok := info.Detail.(TypeSynonym); !ok {
			dangling("type synonym %s is recorded as a %s type", name, info.Detail.typeKindTag())
		}
	}

	for _, class := range e.TypeClasses() {
		data, _ := e.typeClasses.Get(class)
		for _, super := range data.superclasses {
			if _, ok := e.typeClasses.Get(super.Class); !ok {
				dangling("class %s has superclass %s, which is not in the environment", class, super.Class)
			}
		}
	}

	for _, scope := range e.DictionaryScopes() {
		for _, dict := range e.Dictionaries(scope) {
			if _, ok := e.typeClasses.Get(dict.ClassName); !ok {
				dangling("dictionary %s is an instance of %s, which is not in the environment", dict.Value, dict.ClassName)
			}
		}
	}

	if errs.HasError() {
		envLogger.Warn("environment failed verification", "errors", errs)
	}
	return errs.Err()
}
