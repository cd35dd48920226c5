package matcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/mdtoken/config"
)

// newTree creates files (relative, slash-separated) under a temp root.
func newTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("# "+f+"\n"), 0644))
	}
	return root
}

func paths(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func relPaths(t *testing.T, root string, entries []Entry) []string {
	t.Helper()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		rel, err := filepath.Rel(root, e.Path)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func standardTree(t *testing.T) string {
	return newTree(t,
		"README.md",
		"CHANGELOG.md",
		"docs/api.md",
		"docs/guide.md",
		"src/notes.md",
		".git/config.md",
		"node_modules/package.md",
		"script.py",
		"docs/data.json",
	)
}

func TestNew_DefaultsRootToWorkingDirectory(t *testing.T) {
	m := New(config.Default(), "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, m.Root())
}

func TestScan_DefaultPattern(t *testing.T) {
	root := standardTree(t)
	m := New(config.Default(), root)

	entries := m.Scan()

	assert.Equal(t, []string{
		"CHANGELOG.md",
		"README.md",
		"docs/api.md",
		"docs/guide.md",
		"src/notes.md",
	}, relPaths(t, root, entries))
	for _, e := range entries {
		assert.Equal(t, 4000, e.Limit)
		assert.True(t, filepath.IsAbs(e.Path))
	}
}

func TestScan_SpecificPattern(t *testing.T) {
	root := standardTree(t)
	m := New(config.Default(), root)

	entries := m.Scan("docs/*.md")

	assert.Equal(t, []string{"docs/api.md", "docs/guide.md"}, relPaths(t, root, entries))
}

func TestScan_OverlappingPatternsDeduplicated(t *testing.T) {
	root := standardTree(t)
	m := New(config.Default(), root)

	entries := m.Scan("**/*.md", "docs/*.md", "*.md")

	assert.Len(t, entries, 5)
	assert.Equal(t, relPaths(t, root, m.Scan()), relPaths(t, root, entries))
}

func TestScan_SkipsDirectoriesNamedLikeMarkdown(t *testing.T) {
	root := newTree(t, "weird.md/inner.md", "a.md")
	m := New(config.Default(), root)

	assert.Equal(t, []string{"a.md", "weird.md/inner.md"}, relPaths(t, root, m.Scan()))
}

func TestScan_InvalidPatternSkipped(t *testing.T) {
	root := standardTree(t)
	m := New(config.Default(), root)

	entries := m.Scan("docs/[.md", "docs/*.md", "/abs/*.md")

	assert.Equal(t, []string{"docs/api.md", "docs/guide.md"}, relPaths(t, root, entries))
}

func TestScan_EmptyRoot(t *testing.T) {
	m := New(config.Default(), t.TempDir())
	assert.Empty(t, m.Scan())
}

func TestScan_PerFileLimits(t *testing.T) {
	root := standardTree(t)
	cfg, err := config.New(
		config.WithDefaultLimit(4000),
		config.WithLimit("README.md", 3000),
		config.WithLimit("docs/", 5000),
	)
	require.NoError(t, err)

	limits := map[string]int{}
	for _, e := range New(cfg, root).Scan() {
		rel, _ := filepath.Rel(root, e.Path)
		limits[filepath.ToSlash(rel)] = e.Limit
	}

	assert.Equal(t, 3000, limits["README.md"])
	assert.Equal(t, 5000, limits["docs/api.md"])
	assert.Equal(t, 5000, limits["docs/guide.md"])
	assert.Equal(t, 4000, limits["CHANGELOG.md"])
	assert.Equal(t, 4000, limits["src/notes.md"])
}

func TestFiles_ExplicitList(t *testing.T) {
	root := standardTree(t)
	m := New(config.Default(), root)

	entries := m.Files([]string{
		filepath.Join(root, "docs", "guide.md"),
		filepath.Join(root, "README.md"),
		filepath.Join(root, "script.py"),
		filepath.Join(root, "missing.md"),
		filepath.Join(root, "docs"),
		filepath.Join(root, ".git", "config.md"),
		filepath.Join(root, "README.md"),
	})

	assert.Equal(t, []string{
		filepath.Join(root, "README.md"),
		filepath.Join(root, "docs", "guide.md"),
	}, paths(entries))
}

func TestFiles_LimitResolvedAgainstGivenPath(t *testing.T) {
	root := standardTree(t)
	cfg, err := config.New(config.WithDefaultLimit(10), config.WithLimit("README.md", 500))
	require.NoError(t, err)

	entries := New(cfg, root).Files([]string{
		filepath.Join(root, "README.md"),
		filepath.Join(root, "CHANGELOG.md"),
	})

	require.Len(t, entries, 2)
	assert.Equal(t, 10, entries[0].Limit)
	assert.Equal(t, 500, entries[1].Limit)
}

func TestFiles_Empty(t *testing.T) {
	m := New(config.Default(), t.TempDir())
	assert.Empty(t, m.Files(nil))
}

func TestMatch_Dispatch(t *testing.T) {
	root := standardTree(t)
	m := New(config.Default(), root)

	explicit := m.Match([]string{filepath.Join(root, "README.md")})
	assert.Equal(t, []string{filepath.Join(root, "README.md")}, paths(explicit))

	scanned := m.Match(nil)
	assert.Len(t, scanned, 5)

	patterned := m.Match(nil, "docs/*.md")
	assert.Len(t, patterned, 2)
}

func TestExclusion_BothModes(t *testing.T) {
	root := newTree(t, "keep.md", "archived/old.md", "archived/deep/older.md", "notes/archived/x.md")
	cfg, err := config.New(config.WithExclude([]string{"archived/**"}))
	require.NoError(t, err)
	m := New(cfg, root)

	assert.Equal(t, []string{"keep.md"}, relPaths(t, root, m.Scan()))

	explicit := m.Files([]string{
		filepath.Join(root, "keep.md"),
		filepath.Join(root, "archived", "old.md"),
		filepath.Join(root, "archived", "deep", "older.md"),
		filepath.Join(root, "notes", "archived", "x.md"),
	})
	assert.Equal(t, []string{filepath.Join(root, "keep.md")}, paths(explicit))
}

func TestExcluded(t *testing.T) {
	tests := []struct {
		name    string
		exclude []string
		root    string
		path    string
		want    bool
	}{
		{name: "git directory", exclude: config.DefaultExclude(), root: "/tmp/project", path: "/tmp/project/.git/config.md", want: true},
		{name: "node_modules", exclude: config.DefaultExclude(), root: "/tmp/project", path: "/tmp/project/node_modules/pkg/README.md", want: true},
		{name: "venv", exclude: config.DefaultExclude(), root: "/tmp/project", path: "/tmp/project/venv/lib/file.md", want: true},
		{name: "normal file", exclude: config.DefaultExclude(), root: "/tmp/project", path: "/tmp/project/docs/readme.md", want: false},
		{name: "custom subtree", exclude: []string{"archived/**", "temp/**"}, root: "/tmp/project", path: "/tmp/project/temp/file.md", want: true},
		{name: "directory as component", exclude: []string{"venv/**"}, root: "/tmp", path: "/tmp/project/venv/lib/file.md", want: true},
		{name: "directory itself", exclude: []string{"docs/**"}, root: "/tmp", path: "/tmp/docs", want: true},
		{name: "prefix is not a component", exclude: []string{"doc/**"}, root: "/tmp", path: "/tmp/docs/a.md", want: false},
		{name: "substring", exclude: []string{"temp"}, root: "/tmp", path: "/tmp/temporary/file.md", want: true},
		{name: "glob", exclude: []string{"**/*.draft.md"}, root: "/tmp", path: "/tmp/docs/plan.draft.md", want: true},
		{name: "glob with subtree", exclude: []string{"archived/**/*.md"}, root: "/tmp", path: "/tmp/archived/2023/a.md", want: true},
		{name: "outside root uses absolute path", exclude: []string{"archived/**"}, root: "/tmp/project", path: "/home/user/archived/file.md", want: true},
		{name: "outside root not excluded", exclude: []string{"archived/**"}, root: "/tmp/project", path: "/home/user/notes/file.md", want: false},
		{name: "no patterns", exclude: []string{}, root: "/tmp", path: "/tmp/.git/x.md", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.New(config.WithExclude(tt.exclude))
			require.NoError(t, err)
			m := New(cfg, filepath.FromSlash(tt.root))

			assert.Equal(t, tt.want, m.Excluded(filepath.FromSlash(tt.path)))
		})
	}
}

func TestScan_SortedRegardlessOfPatternOrder(t *testing.T) {
	root := newTree(t, "z.md", "a.md", "m/b.md")
	m := New(config.Default(), root)

	entries := m.Scan("z.md", "m/*.md", "a.md")

	assert.Equal(t, []string{"a.md", "m/b.md", "z.md"}, relPaths(t, root, entries))
}

func TestMatch_OrdersByPathComponent(t *testing.T) {
	root := newTree(t, "a.md", "a-c.md", "a/b.md")
	m := New(config.Default(), root)
	want := []string{"a/b.md", "a-c.md", "a.md"}

	assert.Equal(t, want, relPaths(t, root, m.Scan()))

	explicit := m.Files([]string{
		filepath.Join(root, "a.md"),
		filepath.Join(root, "a-c.md"),
		filepath.Join(root, "a", "b.md"),
	})
	assert.Equal(t, want, relPaths(t, root, explicit))
}
