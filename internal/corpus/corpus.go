// Package corpus locates the inputs of a build inside the three source
// checkouts: the AEP repository, the protobuf linter and the components
// repository.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// checkRoot reports whether root is a usable source directory.
func checkRoot(root string) error {
	if root == "" {
		return ErrNotConfigured
	}
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSourceMissing, root)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrSourceMissing, root)
	}
	return nil
}

// glob evaluates pattern relative to root and returns sorted OS paths.
// Only entries accepted by keep are returned.
func glob(root, pattern string, keep func(fs.DirEntry) bool) ([]string, error) {
	fsys := os.DirFS(root)
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrGlobFailed, pattern, err)
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil {
			continue
		}
		if keep != nil && !keep(fs.FileInfoToDirEntry(info)) {
			continue
		}
		out = append(out, filepath.Join(root, filepath.FromSlash(m)))
	}
	slices.Sort(out)
	return out, nil
}

func isDir(e fs.DirEntry) bool  { return e.IsDir() }
func isFile(e fs.DirEntry) bool { return e.Type().IsRegular() }

func stem(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
