package cmd

import (
	"fmt"
	"io"

	"github.com/cottand/typenv/frontend/env"
	"github.com/cottand/typenv/frontend/names"
	"github.com/spf13/cobra"
)

var PrimCmd = &cobra.Command{
	Use:          "prim",
	Short:        "List the kinds, types and classes of the Prim namespace",
	RunE:         runPrim,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

func runPrim(cmd *cobra.Command, _ []string) error {
	printEnvironment(cmd.OutOrStdout(), env.PrimEnvironment())
	return nil
}

func printEnvironment(w io.Writer, e env.Environment) {
	_, _ = fmt.Fprintln(w, headerColor.Sprint("kinds"))
	for _, kind := range e.Kinds() {
		_, _ = fmt.Fprintf(w, "  %s\n", kind)
	}

	_, _ = fmt.Fprintln(w, headerColor.Sprint("types"))
	for _, name := range e.Types() {
		info, _ := e.LookupType(name)
		if info.Kind == nil {
			_, _ = fmt.Fprintf(w, "  %s\n", name)
			continue
		}
		_, _ = fmt.Fprintf(w, "  %s :: %s\n", name, info.Kind)
	}

	if values := e.Values(); len(values) > 0 {
		_, _ = fmt.Fprintln(w, headerColor.Sprint("values"))
		for _, name := range values {
			info, _ := e.LookupValue(name)
			_, _ = fmt.Fprintf(w, "  %s :: %s\n", name, info.Type)
		}
	}

	_, _ = fmt.Fprintln(w, headerColor.Sprint("classes"))
	for _, name := range e.TypeClasses() {
		data, _ := e.LookupTypeClass(name)
		printClassData(w, "  "+name.String(), data)
	}

	for _, scope := range e.DictionaryScopes() {
		_, _ = fmt.Fprintf(w, "%s %s\n", headerColor.Sprint("instances in"), scopeName(scope))
		for _, dict := range e.Dictionaries(scope) {
			_, _ = fmt.Fprintf(w, "  %s :: %s\n", dict.Value, dict.ClassName)
		}
	}
}

func scopeName(scope names.ModuleName) string {
	if scope == env.LocalScope {
		return "local scope"
	}
	return string(scope)
}
