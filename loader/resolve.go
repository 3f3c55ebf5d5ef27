package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// compressedSuffixes lists the transparent compression wrappers accepted on
// top of a data extension.
var compressedSuffixes = []string{".zst", ".gz", ".lz4"}

// Resolve expands an input path into the ordered list of candidate files.
// A single file resolves to itself when its extension matches; a directory
// is walked recursively and non-matching entries are silently excluded.
// exclude, if non-nil, drops files by base name.
//
// Only a root path that cannot be opened at all is an error; unreadable
// entries below it are skipped.
func Resolve(root string, extensions []string, exclude func(name string) bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &ResolveError{Path: root, cause: err}
	}

	keep := func(name string) bool {
		if !matchExtension(name, extensions) {
			return false
		}
		return exclude == nil || !exclude(name)
	}

	if !info.IsDir() {
		if keep(filepath.Base(root)) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry below the root: skip, keep walking.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if keep(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, &ResolveError{Path: root, cause: walkErr}
	}

	return files, nil
}

func matchExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
		for _, cs := range compressedSuffixes {
			if strings.HasSuffix(name, ext+cs) {
				return true
			}
		}
	}
	return false
}
