package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-captainhook/internal/fileutil"
)

// globMeta are the characters that make a file entry a pattern.
const globMeta = "*?["

// ExpandFiles turns block file entries into the list injected into a block.
// Glob patterns are matched under root and replaced by the matching regular
// files, sorted and slash-separated relative to root. URLs and entries
// without glob characters are kept verbatim. Duplicates keep their first
// position. A pattern matching nothing contributes nothing.
func ExpandFiles(root string, patterns []string) ([]string, error) {
	seen := make(map[string]bool, len(patterns))
	files := make([]string, 0, len(patterns))
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			files = append(files, f)
		}
	}

	for _, p := range patterns {
		if fileutil.IsURL(p) || !strings.ContainsAny(p, globMeta) {
			add(p)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(p)))
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidConfig, p, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if !fileutil.FileExists(m) {
				continue
			}
			rel, err := filepath.Rel(root, m)
			if err != nil {
				return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidConfig, p, err)
			}
			add(filepath.ToSlash(rel))
		}
	}

	return files, nil
}
