package externs_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/cottand/typenv/frontend/env"
	"github.com/cottand/typenv/frontend/enverr"
	"github.com/cottand/typenv/frontend/externs"
	"github.com/cottand/typenv/frontend/names"
	"github.com/cottand/typenv/frontend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const module names.ModuleName = "Data.Convert"

func proper(name string) env.QualifiedProperName {
	return names.Qualify(module, names.ProperName(name))
}

func loadFixture(t *testing.T) *externs.File {
	t.Helper()
	f, err := os.Open("testdata/Data.Convert.json")
	require.NoError(t, err)
	defer f.Close()
	file, err := externs.Decode(f)
	require.NoError(t, err)
	return file
}

func TestDecode(t *testing.T) {
	file := loadFixture(t)
	assert.Equal(t, module, file.ModuleName)
	require.Len(t, file.Declarations, 9)

	assert.Equal(t, externs.KindDecl{Name: "Shape"}, file.Declarations[0])

	box, ok := file.Declarations[1].(externs.TypeDecl)
	require.True(t, ok)
	assert.Equal(t, "Type -> Type", box.Kind.String())
	data, ok := box.Detail.(env.DataType)
	require.True(t, ok)
	require.Len(t, data.Ctors, 1)
	assert.Equal(t, []types.Type{types.TypeVar{Name: "a"}}, data.Ctors[0].Fields)

	ctor, ok := file.Declarations[2].(externs.DataConstructorDecl)
	require.True(t, ok)
	assert.Equal(t, env.Newtype, ctor.Decl)
	assert.Equal(t, "forall a. a -> Data.Convert.Box a", ctor.Type.String())

	class, ok := file.Declarations[6].(externs.ClassDecl)
	require.True(t, ok)
	assert.Equal(t, names.ProperName("Convert"), class.Name)
	assert.Equal(t, []env.FunctionalDependency{{Determiners: []int{0}, Determined: []int{1}}}, class.Dependencies)

	instance, ok := file.Declarations[8].(externs.InstanceDecl)
	require.True(t, ok)
	assert.Equal(t, proper("Convert"), instance.ClassName)
	assert.Nil(t, instance.Dependencies)
	assert.Equal(t, []types.Type{types.TyInt, types.TyString}, instance.Types)
}

func TestApply(t *testing.T) {
	e, err := externs.Apply(context.Background(), env.PrimEnvironment(), loadFixture(t))
	require.NoError(t, err)
	require.NoError(t, e.Verify())

	assert.True(t, e.HasKind(proper("Shape")))
	assert.True(t, e.IsNewtypeConstructor(proper("Box")))

	unbox, ok := e.LookupValue(names.Qualify[names.Ident](module, "unbox"))
	require.True(t, ok)
	assert.Equal(t, env.External, unbox.Kind)
	assert.Equal(t, env.Defined, unbox.Visibility)
	assert.Equal(t, "forall a. Data.Convert.Box a -> a", unbox.Type.String())

	synonym, ok := e.LookupTypeSynonym(proper("Many"))
	require.True(t, ok)
	assert.Equal(t, "Prim.Array a", synonym.Body.String())

	convert, ok := e.LookupTypeClass(proper("Convert"))
	require.True(t, ok)
	assert.Equal(t, []int{1}, convert.DeterminedArguments())
	assert.Equal(t, [][]int{{0}}, convert.CoveringSets())

	iso, ok := e.LookupTypeClass(proper("Iso"))
	require.True(t, ok)
	assert.Empty(t, iso.DeterminedArguments())
	assert.Equal(t, [][]int{{0}, {1}}, iso.CoveringSets())
	require.Len(t, iso.Superclasses(), 1)
	assert.Equal(t, proper("Convert"), iso.Superclasses()[0].Class)

	dicts := e.DictionariesFor(module, proper("Convert"))
	require.Len(t, dicts, 1)
	assert.Equal(t, names.Qualify[names.Ident](module, "convertIntString"), dicts[0].Value)
	assert.Equal(t, []env.QualifiedIdent{dicts[0].Value}, dicts[0].Chain)

	_, ok = env.PrimEnvironment().LookupTypeClass(proper("Convert"))
	assert.False(t, ok)
}

func TestApplyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	before := env.PrimEnvironment()
	after, err := externs.Apply(ctx, before, loadFixture(t))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, len(before.TypeClasses()), len(after.TypeClasses()))
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		code    enverr.ErrCode
		message string
	}{
		{
			name:    "missing module name",
			input:   `{"declarations": []}`,
			code:    enverr.MalformedDeclaration,
			message: "moduleName",
		},
		{
			name:    "unknown declaration",
			input:   `{"moduleName": "M", "declarations": [{"EDFixity": {}}]}`,
			code:    enverr.MalformedDeclaration,
			message: "EDFixity",
		},
		{
			name:    "two declarations in one object",
			input:   `{"moduleName": "M", "declarations": [{"EDKind": {"edKindName": "A"}, "EDValue": {}}]}`,
			code:    enverr.MalformedDeclaration,
			message: "declaration 0 of module M",
		},
		{
			name: "dependency out of range",
			input: `{"moduleName": "M", "declarations": [{"EDClass": {
				"edClassName": "C",
				"edClassTypeArguments": [["a", null]],
				"edFunctionalDependencies": [{"determiners": [0], "determined": [1]}]
			}}]}`,
			code:    enverr.ArgumentIndexOutOfRange,
			message: "class C",
		},
		{
			name: "unknown data declaration type",
			input: `{"moduleName": "M", "declarations": [{"EDDataConstructor": {
				"edDataCtorName": "A",
				"edDataCtorOrigin": "record",
				"edDataCtorTypeCtor": "A",
				"edDataCtorType": {"tag": "TypeVar", "contents": "a"}
			}}]}`,
			code:    enverr.UnknownDataDeclType,
			message: "record",
		},
		{
			name: "unknown type kind",
			input: `{"moduleName": "M", "declarations": [{"EDType": {
				"edTypeName": "A",
				"edTypeKind": null,
				"edTypeDeclarationKind": "Abstract"
			}}]}`,
			code:    enverr.UnknownTypeKind,
			message: "Abstract",
		},
		{
			name: "unknown type tag",
			input: `{"moduleName": "M", "declarations": [{"EDValue": {
				"edValueName": "a",
				"edValueType": {"tag": "Skolem", "contents": "a"}
			}}]}`,
			code:    enverr.UnknownTypeTag,
			message: "Skolem",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := externs.Decode(strings.NewReader(tc.input))
			require.Error(t, err)
			var decodeErr *enverr.Decode
			require.True(t, errors.As(err, &decodeErr), "expected a decode error, got %v", err)
			assert.Equal(t, tc.code, decodeErr.Code)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := externs.Decode(strings.NewReader(`{"moduleName": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading externs")
}

func TestLoadAndApplyAll(t *testing.T) {
	fixture, err := os.ReadFile("testdata/Data.Convert.json")
	require.NoError(t, err)
	fsys := fstest.MapFS{
		"externs/Data.Convert.json": {Data: fixture},
		"externs/Main.json": {Data: []byte(`{"moduleName": "Main", "declarations": [
			{"EDValue": {"edValueName": "main", "edValueType": {"tag": "TypeConstructor", "contents": [["Data", "Convert"], "Box"]}}},
			{"EDInstance": {
				"edInstanceClassName": [["Data", "Convert"], "Convert"],
				"edInstanceName": "convertBox",
				"edInstanceTypes": [{"tag": "TypeVar", "contents": "a"}, {"tag": "TypeVar", "contents": "b"}],
				"edInstanceConstraints": [{"constraintClass": [["Data", "Convert"], "Convert"], "constraintArgs": [{"tag": "TypeVar", "contents": "a"}, {"tag": "TypeVar", "contents": "b"}]}]
			}}
		]}`)},
		"externs/README.md": {Data: []byte("not an externs file")},
	}

	files, err := externs.LoadDir(context.Background(), fsys, "externs")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, module, files[0].ModuleName)
	assert.Equal(t, names.ModuleName("Main"), files[1].ModuleName)

	e, err := externs.ApplyAll(context.Background(), env.PrimEnvironment(), files...)
	require.NoError(t, err)
	require.NoError(t, e.Verify())

	_, ok := e.LookupValue(names.Qualify[names.Ident]("Main", "main"))
	assert.True(t, ok)
	assert.Equal(t, []names.ModuleName{module, "Main"}, e.DictionaryScopes())
	mainDicts := e.DictionariesFor("Main", proper("Convert"))
	require.Len(t, mainDicts, 1)
	assert.Len(t, mainDicts[0].Dependencies, 1)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := externs.Load(context.Background(), fstest.MapFS{}, "Nowhere.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading Nowhere.json")
}
