// Package scan collects markup files for batch commands and reads their
// contents with the safety checks batch parsing needs.
package scan

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/oops"
)

type Options struct {
	Root     string
	Patterns []string
	Exclude  []string
}

// Files returns the sorted, de-duplicated set of files under opts.Root that
// match any include pattern and no exclude pattern. Paths are relative to
// the root.
func Files(opts Options) ([]string, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}

	fsys := os.DirFS(root)
	seen := map[string]bool{}
	var files []string

	for _, pattern := range opts.Patterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, oops.
				Code("PATTERN_INVALID").
				With("pattern", pattern).
				Hint("Patterns use doublestar glob syntax, e.g. **/*.xml").
				Wrapf(err, "expanding pattern %q", pattern)
		}

		for _, match := range matches {
			if seen[match] || excluded(match, opts.Exclude) {
				continue
			}

			seen[match] = true
			files = append(files, match)
		}
	}

	slices.Sort(files)
	return files, nil
}

func excluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// ReadDocument reads one markup file, rejecting binary and non-UTF-8
// content and stripping a UTF-8 BOM when present.
func ReadDocument(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", oops.
			Code("FILE_READ_ERROR").
			With("path", path).
			Wrapf(err, "reading file")
	}

	if IsBinary(content) {
		return "", oops.
			Code("FILE_UNSUPPORTED").
			With("path", path).
			Errorf("file %q looks binary", path)
	}

	if !IsValidUTF8(content) {
		return "", oops.
			Code("FILE_UNSUPPORTED").
			With("path", path).
			Hint("Re-encode the file as UTF-8").
			Errorf("file %q is not valid UTF-8", path)
	}

	return string(StripBOM(content)), nil
}

// Resolve joins a root-relative match back into a usable path.
func Resolve(root, match string) string {
	if root == "" {
		return match
	}
	return filepath.Join(root, match)
}
