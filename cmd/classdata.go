package cmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/cottand/typenv/frontend/env"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var ClassDataCmd = &cobra.Command{
	Use:   "classdata --arg a --arg b --fundep a:b",
	Short: "Analyse the functional dependencies of a type class",
	Long: `Analyse the functional dependencies of a type class with the given arguments.

A dependency is written determiners:determined, each side a comma separated
list of argument names or indices. For example "a,b:c" or "0,1:2".`,
	RunE:         runClassData,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

var (
	classArgs    *[]string
	classFundeps *[]string
)

func init() {
	classArgs = ClassDataCmd.Flags().StringArrayP("arg", "a", nil, "class argument, in order (repeatable)")
	classFundeps = ClassDataCmd.Flags().StringArrayP("fundep", "f", nil, "functional dependency (repeatable)")
}

func runClassData(cmd *cobra.Command, _ []string) error {
	return classData(cmd.OutOrStdout(), *classArgs, *classFundeps)
}

func classData(w io.Writer, argNames, fundeps []string) error {
	deps := make([]env.FunctionalDependency, 0, len(fundeps))
	for _, raw := range fundeps {
		dep, err := parseFundep(raw, argNames)
		if err != nil {
			return err
		}
		deps = append(deps, dep)
	}
	if err := env.CheckDependencies(len(argNames), deps); err != nil {
		return err
	}

	args := make([]env.TypeArg, 0, len(argNames))
	for _, name := range argNames {
		args = append(args, env.TypeArg{Name: name})
	}
	data := env.MakeTypeClassData(args, nil, nil, deps)
	printClassData(w, "class", data)
	return nil
}

// parseFundep reads "determiners:determined", where each side lists names or indices
func parseFundep(raw string, argNames []string) (env.FunctionalDependency, error) {
	left, right, ok := strings.Cut(raw, ":")
	if !ok {
		return env.FunctionalDependency{}, fmt.Errorf("functional dependency %q: expected determiners:determined", raw)
	}
	determiners, err := parseArgList(left, argNames)
	if err != nil {
		return env.FunctionalDependency{}, fmt.Errorf("functional dependency %q: %w", raw, err)
	}
	determined, err := parseArgList(right, argNames)
	if err != nil {
		return env.FunctionalDependency{}, fmt.Errorf("functional dependency %q: %w", raw, err)
	}
	return env.FunctionalDependency{Determiners: determiners, Determined: determined}, nil
}

func parseArgList(list string, argNames []string) ([]int, error) {
	out := []int{}
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if i := slices.Index(argNames, item); i >= 0 {
			out = append(out, i)
			continue
		}
		i, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("unknown argument %q", item)
		}
		out = append(out, i)
	}
	return out, nil
}

var (
	determinedColor = color.New(color.FgYellow, color.Bold)
	headerColor     = color.New(color.FgCyan)
)

func printClassData(w io.Writer, name string, data env.TypeClassData) {
	args := data.Arguments()
	argName := func(i int) string {
		if args[i].Name == "" {
			return strconv.Itoa(i)
		}
		return args[i].Name
	}

	shown := make([]string, 0, len(args))
	for i := range args {
		if data.IsDetermined(i) {
			shown = append(shown, determinedColor.Sprint(argName(i)))
		} else {
			shown = append(shown, argName(i))
		}
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", headerColor.Sprint(name), strings.Join(shown, " "))

	for _, dep := range data.Dependencies() {
		_, _ = fmt.Fprintf(w, "  | %s -> %s\n", joinArgs(dep.Determiners, argName), joinArgs(dep.Determined, argName))
	}

	determined := data.DeterminedArguments()
	if len(determined) == 0 {
		_, _ = fmt.Fprintln(w, "  determined: none")
	} else {
		_, _ = fmt.Fprintf(w, "  determined: %s\n", determinedColor.Sprint(joinArgs(determined, argName)))
	}

	sets := make([]string, 0, len(data.CoveringSets()))
	for _, set := range data.CoveringSets() {
		sets = append(sets, "{"+joinArgs(set, argName)+"}")
	}
	_, _ = fmt.Fprintf(w, "  covering sets: %s\n", strings.Join(sets, " "))
}

func joinArgs(indices []int, argName func(int) string) string {
	names := make([]string, 0, len(indices))
	for _, i := range indices {
		names = append(names, argName(i))
	}
	return strings.Join(names, ", ")
}
