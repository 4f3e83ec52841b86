// Package workspace finds the PHP files a run should look at.
package workspace

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"
)

// alwaysSkipped directories are never descended into.
var alwaysSkipped = map[string]bool{".git": true, ".hg": true, ".svn": true}

// Matcher filters slash separated paths relative to a root. Patterns without a
// slash match the base name, all others match the whole relative path.
type Matcher struct {
	Include []string
	Exclude []string
}

func match(pattern, rel string) bool {
	name := rel
	if !strings.Contains(pattern, "/") {
		name = path.Base(rel)
	}
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

func (m Matcher) excluded(rel string) bool {
	for _, p := range m.Exclude {
		if match(p, rel) {
			return true
		}
	}
	return false
}

// Match reports whether the file at rel should be linted.
func (m Matcher) Match(rel string) bool {
	if m.excluded(rel) {
		return false
	}
	if len(m.Include) == 0 {
		return true
	}
	for _, p := range m.Include {
		if match(p, rel) {
			return true
		}
	}
	return false
}

// SkipDir reports whether the directory at rel and everything below it is
// excluded.
func (m Matcher) SkipDir(rel string) bool {
	if alwaysSkipped[path.Base(rel)] {
		return true
	}
	for _, p := range m.Exclude {
		if match(p, rel) || (strings.HasSuffix(p, "/**") && match(strings.TrimSuffix(p, "/**"), rel)) {
			return true
		}
	}
	return false
}

// Discover walks roots and returns the matching files, sorted and without
// duplicates. Files named directly in roots are kept even when they do not
// match the include patterns.
func Discover(roots []string, m Matcher) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			if rel == "." {
				return nil
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if m.SkipDir(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() && m.Match(rel) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(out)
	return out, nil
}
