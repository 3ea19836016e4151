package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cottand/typenv/frontend/env"
	"github.com/cottand/typenv/frontend/enverr"
	"github.com/cottand/typenv/frontend/externs"
	"github.com/cottand/typenv/internal/config"
	"github.com/spf13/cobra"
)

var LoadCmd = &cobra.Command{
	Use:   "load [file.json...]",
	Short: "Apply externs files to the Prim environment and summarise the result",
	Long: `Apply externs files, in order, to the Prim environment and summarise the result.

Without arguments, the files and directory listed under [externs] in typenv.toml are loaded.`,
	RunE:         runLoad,
	SilenceUsage: true,
}

var (
	loadDir  *string
	loadJSON *bool
	loadAll  *bool
)

func init() {
	loadDir = LoadCmd.Flags().StringP("dir", "d", "", "load every externs file in this directory, before the file arguments")
	loadJSON = LoadCmd.Flags().Bool("json", false, "print the resulting environment as JSON")
	loadAll = LoadCmd.Flags().Bool("all", false, "print the whole environment instead of a summary")
}

func runLoad(cmd *cobra.Command, args []string) error {
	dir, paths := *loadDir, args
	if dir == "" && len(paths) == 0 {
		dir, paths = loaded.ExternsDir(), loaded.ExternsFiles()
	}
	if dir == "" && len(paths) == 0 {
		return fmt.Errorf("no externs files given, and none configured in %s", config.FileName)
	}

	e, err := load(cmd.Context(), dir, paths)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case *loadJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	case *loadAll:
		printEnvironment(out, e)
	default:
		printSummary(out, e)
	}

	if err := e.Verify(); err != nil {
		return fmt.Errorf("environment is inconsistent:\n%s", formatErrors(err))
	}
	return nil
}

func load(ctx context.Context, dir string, paths []string) (env.Environment, error) {
	var files []*externs.File
	if dir != "" {
		fromDir, err := externs.LoadDir(ctx, os.DirFS(dir), ".")
		if err != nil {
			return env.Environment{}, fmt.Errorf("could not load externs in %s: %w", dir, err)
		}
		files = append(files, fromDir...)
	}
	if len(paths) > 0 {
		fsys, rel, err := rootedPaths(paths)
		if err != nil {
			return env.Environment{}, err
		}
		fromPaths, err := externs.Load(ctx, fsys, rel...)
		if err != nil {
			return env.Environment{}, fmt.Errorf("could not load externs: %w", err)
		}
		files = append(files, fromPaths...)
	}
	cmdLogger.Debug("loaded externs", "files", len(files))
	return externs.ApplyAll(ctx, env.PrimEnvironment(), files...)
}

// rootedPaths makes paths valid fs.FS paths within the filesystem root
func rootedPaths(paths []string) (fs.FS, []string, error) {
	rel := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, nil, fmt.Errorf("could not get absolute path of %s: %w", p, err)
		}
		rel = append(rel, strings.TrimPrefix(filepath.ToSlash(abs), "/"))
	}
	return os.DirFS("/"), rel, nil
}

func printSummary(w io.Writer, e env.Environment) {
	count := func(label string, n int) {
		_, _ = fmt.Fprintf(w, "%-18s %d\n", label, n)
	}
	count("values", len(e.Values()))
	count("types", len(e.Types()))
	count("data constructors", len(e.DataConstructors()))
	count("type synonyms", len(e.TypeSynonyms()))
	count("classes", len(e.TypeClasses()))
	count("kinds", len(e.Kinds()))
	dictionaries := 0
	for _, scope := range e.DictionaryScopes() {
		dictionaries += len(e.Dictionaries(scope))
	}
	count("instances", dictionaries)
}

func formatErrors(err error) string {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return enverr.FormatWithCode(err)
	}
	sb := &strings.Builder{}
	for _, e := range joined.Unwrap() {
		sb.WriteString("  ")
		sb.WriteString(enverr.FormatWithCode(e))
		sb.WriteString("\n")
	}
	return sb.String()
}
