package externs

import (
	"bytes"
	"context"
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Extension is the file extension of externs files found by LoadDir
const Extension = ".json"

// Load reads and decodes the externs files at paths within fsys.
// Files are read concurrently; the result keeps the order of paths.
func Load(ctx context.Context, fsys fs.FS, paths ...string) ([]*File, error) {
	files := make([]*File, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := fs.ReadFile(fsys, p)
			if err != nil {
				return errors.Wrapf(err, "reading %s", p)
			}
			file, err := Decode(bytes.NewReader(content))
			if err != nil {
				return errors.Wrapf(err, "decoding %s", p)
			}
			files[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// LoadDir loads every externs file directly inside dir, in lexical order
func LoadDir(ctx context.Context, fsys fs.FS, dir string) ([]*File, error) {
	if dir == "" {
		dir = "."
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", dir)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		paths = append(paths, path.Join(dir, entry.Name()))
	}
	if len(paths) == 0 {
		externsLogger.Warn("no externs files found", "dir", dir)
	}
	return Load(ctx, fsys, paths...)
}
