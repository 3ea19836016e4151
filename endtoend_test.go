package main

import (
	"bytes"
	"embed"
	"path"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

// embeds the externs fixtures
//
//go:embed testdata/externs
var testSet embed.FS

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// Files named invalid_*.json must load but fail verification
func TestLoadEndToEnd(t *testing.T) {
	files, err := testSet.ReadDir("testdata/externs")
	assert.NoError(t, err)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		t.Run(f.Name(), func(t *testing.T) {
			out, err := execute(t, "load", path.Join("testdata/externs", f.Name()))
			if strings.HasPrefix(f.Name(), "invalid_") {
				assert.ErrorContains(t, err, "environment is inconsistent")
				return
			}
			assert.NoError(t, err)
			assert.Contains(t, out, "classes")
		})
	}
}

func TestClassDataEndToEnd(t *testing.T) {
	out, err := execute(t, "classdata", "--arg", "label", "--arg", "a", "--arg", "tail", "--arg", "row",
		"--fundep", "label,a,tail:row", "--fundep", "label,row:a,tail")
	assert.NoError(t, err)
	assert.Contains(t, out, "determined: a, tail, row")
	assert.Contains(t, out, "covering sets: {label}")
}

func TestPrimEndToEnd(t *testing.T) {
	out, err := execute(t, "prim")
	assert.NoError(t, err)
	for _, class := range []string{"Prim.Partial", "Prim.Row.Union", "Prim.Symbol.Cons", "Prim.TypeError.Warn"} {
		assert.Contains(t, out, class)
	}
}
