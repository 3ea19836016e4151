package externs

import (
	"context"
	"runtime"

	"github.com/cottand/typenv/frontend/env"
	"github.com/cottand/typenv/frontend/names"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Apply extends e with the declarations of file.
//
// Values are brought in as External and Defined, and instances become
// dictionaries scoped to the module of the file. The functional dependencies of
// every class are analysed concurrently; declarations are then added in file order,
// so a later declaration of the same name wins.
func Apply(ctx context.Context, e env.Environment, file *File) (env.Environment, error) {
	if err := ctx.Err(); err != nil {
		return e, err
	}
	classes, err := analyseClasses(ctx, file)
	if err != nil {
		return e, errors.Wrapf(err, "applying externs of %s", file.ModuleName)
	}

	module := file.ModuleName
	for i, decl := range file.Declarations {
		switch decl := decl.(type) {
		case TypeDecl:
			e = e.WithType(names.Qualify(module, decl.Name), env.TypeInfo{Kind: decl.Kind, Detail: decl.Detail})
		case TypeSynonymDecl:
			e = e.WithTypeSynonym(names.Qualify(module, decl.Name), env.TypeSynonymInfo{Params: decl.Params, Body: decl.Body})
		case DataConstructorDecl:
			e = e.WithDataConstructor(names.Qualify(module, decl.Name), env.ConstructorInfo{
				Decl:     decl.Decl,
				TypeName: decl.TypeName,
				Type:     decl.Type,
				Fields:   decl.Fields,
			})
		case ValueDecl:
			e = e.WithValue(names.Qualify(module, decl.Name), env.ValueInfo{
				Type:       decl.Type,
				Kind:       env.External,
				Visibility: env.Defined,
			})
		case ClassDecl:
			e = e.WithTypeClass(names.Qualify(module, decl.Name), classes[i])
		case InstanceDecl:
			value := names.Qualify(module, decl.Name)
			chain := decl.Chain
			if len(chain) == 0 {
				chain = []env.QualifiedIdent{value}
			}
			e = e.WithDictionary(module, env.TypeClassDictionaryInScope{
				Chain:         chain,
				Index:         decl.ChainIndex,
				Value:         value,
				ClassName:     decl.ClassName,
				InstanceTypes: decl.Types,
				Dependencies:  decl.Dependencies,
			})
		case KindDecl:
			e = e.WithKind(names.Qualify(module, decl.Name))
		}
	}
	externsLogger.Info("applied externs", "module", module, "declarations", len(file.Declarations), "classes", len(classes))
	return e, nil
}

// analyseClasses builds the TypeClassData of every class declaration, keyed by declaration index
func analyseClasses(ctx context.Context, file *File) (map[int]env.TypeClassData, error) {
	var classDecls []int
	for i, decl := range file.Declarations {
		if class, ok := decl.(ClassDecl); ok {
			// MakeTypeClassData panics on out of range indices, which are bad input here
			if err := env.CheckDependencies(len(class.Args), class.Dependencies); err != nil {
				return nil, errors.Wrapf(err, "class %s", class.Name)
			}
			classDecls = append(classDecls, i)
		}
	}

	results := make([]env.TypeClassData, len(classDecls))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for slot, i := range classDecls {
		class := file.Declarations[i].(ClassDecl)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[slot] = env.MakeTypeClassData(class.Args, class.Members, class.Superclasses, class.Dependencies)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	classes := make(map[int]env.TypeClassData, len(classDecls))
	for slot, i := range classDecls {
		classes[i] = results[slot]
	}
	return classes, nil
}

// ApplyAll applies files in order, each on top of the environment the previous one produced
func ApplyAll(ctx context.Context, e env.Environment, files ...*File) (env.Environment, error) {
	for _, file := range files {
		var err error
		if e, err = Apply(ctx, e, file); err != nil {
			return e, err
		}
	}
	return e, nil
}
