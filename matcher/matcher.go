// Package matcher finds the markdown files to check and pairs each with its
// token limit.
//
// Files come either from an explicit list (as a pre-commit hook passes
// staged files) or from glob patterns expanded under a root directory.
// Exclusion rules apply the same way in both modes, and results are always
// sorted by path component. The matcher never fails: unreadable, missing or
// non-markdown inputs are left out.
package matcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/randalmurphal/mdtoken/config"
)

// DefaultPattern matches every markdown file under the root.
const DefaultPattern = "**/*.md"

// DocumentExt is the only file extension that is checked.
const DocumentExt = ".md"

// Entry is a file to check and the limit that applies to it.
type Entry struct {
	Path  string
	Limit int
}

// Matcher discovers files under a root directory.
type Matcher struct {
	cfg  *config.Config
	root string
}

// New creates a matcher. An empty root means the working directory.
func New(cfg *config.Config, root string) *Matcher {
	if root == "" {
		root = "."
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Matcher{cfg: cfg, root: filepath.Clean(root)}
}

// Root returns the absolute root directory.
func (m *Matcher) Root() string {
	return m.root
}

// Match returns entries for paths when any are given, and otherwise
// scans the root with patterns.
func (m *Matcher) Match(paths []string, patterns ...string) []Entry {
	if len(paths) > 0 {
		return m.Files(paths)
	}
	return m.Scan(patterns...)
}

// Files returns entries for the named files. Inputs that are not
// markdown, are not regular files, or are excluded are skipped.
// Paths are kept as given, cleaned; limits are resolved against them.
func (m *Matcher) Files(paths []string) []Entry {
	seen := make(map[string]bool, len(paths))
	entries := make([]Entry, 0, len(paths))

	for _, p := range paths {
		p = filepath.Clean(p)
		if seen[p] {
			continue
		}
		if filepath.Ext(p) != DocumentExt {
			slog.Debug("skipping non-markdown file", "path", p)
			continue
		}
		if !isRegular(p) {
			slog.Debug("skipping missing or non-regular file", "path", p)
			continue
		}
		if m.Excluded(p) {
			slog.Debug("skipping excluded file", "path", p)
			continue
		}
		seen[p] = true
		entries = append(entries, Entry{Path: p, Limit: m.cfg.Limit(p)})
	}

	sortEntries(entries)
	return entries
}

// Scan expands patterns relative to the root, DefaultPattern when none
// are given. A file matched by several patterns appears once. Invalid
// patterns are logged and skipped.
func (m *Matcher) Scan(patterns ...string) []Entry {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	fsys := os.DirFS(m.root)
	seen := make(map[string]bool)
	var entries []Entry

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if !doublestar.ValidatePattern(pattern) || strings.HasPrefix(pattern, "/") {
			slog.Warn("skipping invalid glob pattern", "pattern", pattern)
			continue
		}

		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			slog.Warn("glob failed", "pattern", pattern, "error", err)
			continue
		}

		for _, rel := range matches {
			full := filepath.Join(m.root, filepath.FromSlash(rel))
			if seen[full] {
				continue
			}
			if filepath.Ext(full) != DocumentExt || !isRegular(full) {
				continue
			}
			if m.Excluded(full) {
				continue
			}
			seen[full] = true
			entries = append(entries, Entry{Path: full, Limit: m.cfg.Limit(full)})
		}
	}

	sortEntries(entries)
	return entries
}

// Excluded reports whether any exclusion pattern matches path. Patterns
// are tested against the path relative to the root, or against the
// absolute path when the file lies outside the root.
func (m *Matcher) Excluded(path string) bool {
	rel := m.relative(path)
	for _, pattern := range m.cfg.Exclude {
		if excludedBy(pattern, rel) {
			return true
		}
	}
	return false
}

// relative renders path relative to the root in forward-slash form.
func (m *Matcher) relative(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(m.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

// excludedBy applies one pattern to a slash-separated path. A pattern
// ending in /** names a directory subtree: it matches the directory
// itself, anything below it, and any path with that directory as a
// component. Every pattern is also tried as a glob and as a substring.
func excludedBy(pattern, path string) bool {
	if dir, ok := strings.CutSuffix(pattern, "/**"); ok && dir != "" {
		if path == dir || strings.HasPrefix(path, dir+"/") {
			return true
		}
		if slices.Contains(strings.Split(path, "/"), dir) {
			return true
		}
	}
	if ok, err := doublestar.Match(pattern, path); err == nil && ok {
		return true
	}
	return strings.Contains(path, pattern)
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// sortEntries orders entries by path component, so "a/b.md" sorts before
// "a-c.md" even though '-' precedes '/' byte-wise.
func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		return slices.Compare(pathComponents(a.Path), pathComponents(b.Path))
	})
}

func pathComponents(path string) []string {
	return strings.Split(filepath.ToSlash(path), "/")
}
