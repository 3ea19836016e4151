package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/cottand/typenv/frontend/env"
	"github.com/cottand/typenv/frontend/enverr"
	"github.com/cottand/typenv/frontend/names"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "../frontend/externs/testdata/Data.Convert.json"

func init() {
	color.NoColor = true
}

func TestClassData(t *testing.T) {
	testCases := []struct {
		name       string
		args       []string
		fundeps    []string
		determined string
		covering   string
	}{
		{"no dependencies", []string{"a", "b"}, nil, "determined: none", "covering sets: {a, b}"},
		{"by name", []string{"a", "b", "c"}, []string{"a:b", "b:a", "b:c"}, "determined: c", "covering sets: {a} {b}"},
		{"by index", []string{"l", "r", "u"}, []string{"0,1:2", "1,2:0", "2,0:1"}, "determined: none", "covering sets: {l} {r} {u}"},
		{"no arguments", nil, nil, "determined: none", "covering sets: {}"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			require.NoError(t, classData(buf, tc.args, tc.fundeps))
			assert.Contains(t, buf.String(), tc.determined)
			assert.Contains(t, buf.String(), tc.covering)
		})
	}
}

func TestClassDataErrors(t *testing.T) {
	err := classData(&bytes.Buffer{}, []string{"a"}, []string{"a"})
	assert.ErrorContains(t, err, "expected determiners:determined")

	err = classData(&bytes.Buffer{}, []string{"a"}, []string{"a:z"})
	assert.ErrorContains(t, err, `unknown argument "z"`)

	err = classData(&bytes.Buffer{}, []string{"a", "b"}, []string{"0:5"})
	var decodeErr *enverr.Decode
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, enverr.ArgumentIndexOutOfRange, decodeErr.Code)
}

func TestPrintPrimEnvironment(t *testing.T) {
	buf := &bytes.Buffer{}
	printEnvironment(buf, env.PrimEnvironment())
	out := buf.String()

	assert.Contains(t, out, "Prim.Record :: # Type -> Type")
	assert.Contains(t, out, "Prim.Row.Cons label a tail row")
	assert.Contains(t, out, "| label, a, tail -> row")
	assert.NotContains(t, out, "values")
	assert.NotContains(t, out, "instances in")
}

func TestLoad(t *testing.T) {
	e, err := load(context.Background(), "", []string{fixture})
	require.NoError(t, err)
	require.NoError(t, e.Verify())

	_, ok := e.LookupValue(names.Qualify[names.Ident]("Data.Convert", "unbox"))
	assert.True(t, ok)

	buf := &bytes.Buffer{}
	printSummary(buf, e)
	assert.Contains(t, buf.String(), "instances          1")
	assert.Contains(t, buf.String(), "data constructors  1")

	buf.Reset()
	printEnvironment(buf, e)
	assert.Contains(t, buf.String(), "instances in Data.Convert")
	assert.Contains(t, buf.String(), "Data.Convert.convertIntString :: Data.Convert.Convert")
}

func TestLoadDir(t *testing.T) {
	e, err := load(context.Background(), "../frontend/externs/testdata", nil)
	require.NoError(t, err)
	_, ok := e.LookupTypeClass(names.Qualify[names.ProperName]("Data.Convert", "Iso"))
	assert.True(t, ok)
}

func TestFormatErrors(t *testing.T) {
	err := errors.Join(
		enverr.NewInternal(enverr.DanglingReference, "first"),
		enverr.NewInternal(enverr.DanglingReference, "second"),
	)
	out := formatErrors(err)
	assert.Contains(t, out, "(E003): first")
	assert.Contains(t, out, "(E003): second")
}
