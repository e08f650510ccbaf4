package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Walker recursively collects scannable files under a root, pruning hidden
// directories and anything matching the configured exclude globs.
type Walker struct {
	dirGlobs  []glob.Glob
	fileGlobs []glob.Glob
}

func NewWalker(excludeDirs, excludeFiles []string) (*Walker, error) {
	w := &Walker{}
	for _, p := range excludeDirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		w.dirGlobs = append(w.dirGlobs, g)
	}
	for _, p := range excludeFiles {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		w.fileGlobs = append(w.fileGlobs, g)
	}
	return w, nil
}

// Walk returns the files under root in walk order. Directories whose name
// starts with '.' are pruned, as are exclude-glob matches; hidden files are
// skipped. The root itself is never pruned even if its name is dotted.
func (w *Walker) Walk(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		base := filepath.Base(path)
		if d.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(base, ".") || w.matchDir(base) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(base, ".") || w.matchFile(base) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (w *Walker) matchDir(base string) bool {
	for _, g := range w.dirGlobs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

func (w *Walker) matchFile(base string) bool {
	for _, g := range w.fileGlobs {
		if g.Match(base) {
			return true
		}
	}
	return false
}
