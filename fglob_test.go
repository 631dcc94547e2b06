package fglob

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureFiles = []string{
	"fixtures/file.md",
	"fixtures/file.txt",
	"fixtures/first/file.md",
	"fixtures/first/nested/file.md",
	"fixtures/first/nested/directory/file.md",
	"fixtures/second/file.md",
	"fixtures/second/nested/file.md",
	"fixtures/.hidden/file.md",
	"fixtures/node_modules/pkg/file.md",
}

func setupFixtures(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range fixtureFiles {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(f), 0o644))
	}
	return root
}

func optionsAt(root string) *Options {
	opts := DefaultOptions()
	opts.Cwd = root
	return opts
}

func sorted(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}

func TestSync_Fixtures(t *testing.T) {
	root := setupFixtures(t)

	t.Run("globstar returns every markdown file", func(t *testing.T) {
		got, err := Sync([]string{"fixtures/**/*.md"}, optionsAt(root))
		require.NoError(t, err)
		assert.Equal(t, []string{
			"fixtures/file.md",
			"fixtures/first/file.md",
			"fixtures/first/nested/directory/file.md",
			"fixtures/first/nested/file.md",
			"fixtures/node_modules/pkg/file.md",
			"fixtures/second/file.md",
			"fixtures/second/nested/file.md",
		}, sorted(got))
	})

	t.Run("two subtrees", func(t *testing.T) {
		got, err := Sync([]string{"fixtures/first/**/*.md", "fixtures/second/**/*.md"}, optionsAt(root))
		require.NoError(t, err)
		assert.Equal(t, []string{
			"fixtures/first/file.md",
			"fixtures/first/nested/directory/file.md",
			"fixtures/first/nested/file.md",
			"fixtures/second/file.md",
			"fixtures/second/nested/file.md",
		}, sorted(got))
	})

	t.Run("negative patterns and ignore", func(t *testing.T) {
		opts := optionsAt(root)
		opts.Ignore = []string{"**/nested/**"}

		got, err := Sync([]string{"fixtures/**/*.md", "!**/node_modules/**"}, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"fixtures/file.md",
			"fixtures/first/file.md",
			"fixtures/second/file.md",
		}, sorted(got))
	})

	t.Run("overlapping patterns are unique", func(t *testing.T) {
		got, err := Sync([]string{"fixtures/**/*.md", "fixtures/first/*.md", "fixtures/first/file.md"}, optionsAt(root))
		require.NoError(t, err)
		assert.Len(t, got, 7)
	})

	t.Run("static pattern matches its dynamic equivalent", func(t *testing.T) {
		static, err := Sync([]string{"fixtures/first/file.md"}, optionsAt(root))
		require.NoError(t, err)
		dynamic, err := Sync([]string{"fixtures/first/file.m[d]"}, optionsAt(root))
		require.NoError(t, err)
		assert.Equal(t, []string{"fixtures/first/file.md"}, static)
		assert.Equal(t, static, dynamic)

		missing, err := Sync([]string{"fixtures/first/none.md"}, optionsAt(root))
		require.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("missing base is empty", func(t *testing.T) {
		got, err := Sync([]string{"nope/**/*.md"}, optionsAt(root))
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestSync_Options(t *testing.T) {
	root := setupFixtures(t)

	t.Run("only directories with marks", func(t *testing.T) {
		opts := optionsAt(root)
		opts.OnlyDirectories = true
		opts.MarkDirectories = true

		got, err := Sync([]string{"fixtures/*"}, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"fixtures/first/", "fixtures/node_modules/", "fixtures/second/"}, sorted(got))
	})

	t.Run("absolute", func(t *testing.T) {
		opts := optionsAt(root)
		opts.Absolute = true

		got, err := Sync([]string{"fixtures/*.md"}, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.ToSlash(filepath.Join(root, "fixtures", "file.md"))}, got)
	})

	t.Run("deep", func(t *testing.T) {
		opts := optionsAt(root)
		opts.Deep = 2

		got, err := Sync([]string{"fixtures/**/*.md"}, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"fixtures/file.md",
			"fixtures/first/file.md",
			"fixtures/second/file.md",
		}, sorted(got))
	})

	t.Run("dot", func(t *testing.T) {
		opts := optionsAt(root)
		opts.Dot = true

		got, err := Sync([]string{"fixtures/*/file.md"}, opts)
		require.NoError(t, err)
		assert.Contains(t, got, "fixtures/.hidden/file.md")
	})

	t.Run("case-insensitive", func(t *testing.T) {
		opts := optionsAt(root)
		opts.CaseSensitiveMatch = false

		got, err := Sync([]string{"fixtures/*.MD"}, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"fixtures/file.md"}, got)
	})

	t.Run("base name match", func(t *testing.T) {
		opts := optionsAt(root)
		opts.BaseNameMatch = true

		got, err := Sync([]string{"*.txt"}, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"fixtures/file.txt"}, got)
	})

	t.Run("stats", func(t *testing.T) {
		opts := optionsAt(root)
		opts.Stats = true

		entries, err := SyncEntries([]string{"fixtures/*.txt"}, opts)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "file.txt", entries[0].Dirent.Name)
		assert.True(t, entries[0].Dirent.IsFile)
		require.NotNil(t, entries[0].Stats)
		assert.Equal(t, int64(len("fixtures/file.txt")), entries[0].Stats.Size())
	})

	t.Run("gitignore", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("node_modules/\n*.txt\n"), 0o644))
		t.Cleanup(func() { os.Remove(filepath.Join(root, ".gitignore")) })

		opts := optionsAt(root)
		opts.Gitignore = true

		got, err := Sync([]string{"fixtures/*", "fixtures/node_modules/**"}, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"fixtures/file.md"}, got)
	})

	t.Run("symlinks", func(t *testing.T) {
		link := filepath.Join(root, "fixtures", "first", "link")
		if err := os.Symlink(filepath.Join(root, "fixtures", "second"), link); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}
		t.Cleanup(func() { os.Remove(link) })

		got, err := Sync([]string{"fixtures/first/**/*.md"}, optionsAt(root))
		require.NoError(t, err)
		assert.Contains(t, got, "fixtures/first/link/file.md")

		opts := optionsAt(root)
		opts.FollowSymbolicLinks = false
		got, err = Sync([]string{"fixtures/first/**/*.md"}, opts)
		require.NoError(t, err)
		assert.NotContains(t, got, "fixtures/first/link/file.md")
	})
}

func TestModesAgree(t *testing.T) {
	root := setupFixtures(t)
	patterns := []string{"fixtures/**/*.md", "fixtures/first/*.md", "fixtures/*.txt", "!**/directory/**"}

	syncResults, err := Sync(patterns, optionsAt(root))
	require.NoError(t, err)

	pending, err := Async(patterns, optionsAt(root))
	require.NoError(t, err)
	asyncResults, err := pending.Wait()
	require.NoError(t, err)

	var stream *Iterator[string]
	stream, err = Stream(patterns, optionsAt(root))
	require.NoError(t, err)
	var streamResults []string
	for path, err := range stream.All() {
		require.NoError(t, err)
		streamResults = append(streamResults, path)
	}

	assert.Equal(t, sorted(syncResults), sorted(asyncResults))
	assert.Equal(t, sorted(syncResults), sorted(streamResults))

	t.Run("entries", func(t *testing.T) {
		pending, err := AsyncEntries(patterns, optionsAt(root))
		require.NoError(t, err)
		entries, err := pending.Wait()
		require.NoError(t, err)
		assert.Len(t, entries, len(syncResults))

		stream, err := StreamEntries(patterns, optionsAt(root))
		require.NoError(t, err)
		count := 0
		for stream.Next() {
			assert.NotEmpty(t, stream.Value().Path)
			count++
		}
		require.NoError(t, stream.Err())
		assert.Equal(t, len(syncResults), count)
	})
}

// TestPruningIsSound compares results against matching every file of an
// unpruned walk.
func TestMergingKeepsResults(t *testing.T) {
	root := t.TempDir()
	for _, f := range []string{"src/a.ts", "src/gen/b.ts", "src/gen/sub/c.ts"} {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(f), 0o644))
	}

	tests := []struct {
		name     string
		patterns []string
		expected []string
	}{
		{
			name:     "dynamic descendant under a pruned directory",
			patterns: []string{"src/**/*.ts", "src/gen/**/*.ts", "!src/gen"},
			expected: []string{"src/a.ts", "src/gen/b.ts", "src/gen/sub/c.ts"},
		},
		{
			name:     "static descendant under a pruned directory",
			patterns: []string{"**/*.ts", "src/gen/b.ts", "!src/gen"},
			expected: []string{"src/a.ts", "src/gen/b.ts"},
		},
		{
			name:     "unrelated negative",
			patterns: []string{"src/**/*.ts", "src/gen/**/*.ts", "!src/other"},
			expected: []string{"src/a.ts", "src/gen/b.ts", "src/gen/sub/c.ts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, deep := range []int{-1, 100} {
				opts := optionsAt(root)
				opts.Deep = deep

				got, err := Sync(tt.patterns, opts)
				require.NoError(t, err)
				assert.Equal(t, tt.expected, sorted(got), "deep=%d", deep)
			}
		})
	}
}

func TestPruningIsSound(t *testing.T) {
	root := setupFixtures(t)

	var all []string
	require.NoError(t, filepath.WalkDir(root, func(p string, d iofs.DirEntry, err error) error {
		require.NoError(t, err)
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		all = append(all, filepath.ToSlash(rel))
		return nil
	}))

	for _, p := range []string{
		"fixtures/**/*.md",
		"fixtures/*/file.md",
		"fixtures/first/**",
		"**/nested/*.md",
		"fixtures/{first,second}/nested/**/*.md",
	} {
		t.Run(p, func(t *testing.T) {
			var want []string
			for _, f := range all {
				if strings.Contains(f, "/.") {
					continue
				}
				if ok, _ := doublestar.Match(p, f); ok {
					want = append(want, f)
				}
			}

			got, err := Sync([]string{p}, optionsAt(root))
			require.NoError(t, err)
			assert.Equal(t, sorted(want), sorted(got))
		})
	}
}

func TestValidation(t *testing.T) {
	for name, patterns := range map[string][]string{
		"nil":          nil,
		"empty":        {},
		"empty string": {""},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Sync(patterns, nil)
			assert.True(t, errors.Is(err, ErrInvalidPatterns))
			assert.EqualError(t, err, "Patterns must be a string or an array of strings")

			_, err = Async(patterns, nil)
			assert.True(t, errors.Is(err, ErrInvalidPatterns))

			_, err = Stream(patterns, nil)
			assert.True(t, errors.Is(err, ErrInvalidPatterns))

			_, err = GenerateTasks(patterns, nil)
			assert.True(t, errors.Is(err, ErrInvalidPatterns))
		})
	}

	t.Run("syntax error", func(t *testing.T) {
		_, err := Sync([]string{"[abc"}, nil)
		var syntaxErr *SyntaxError
		assert.True(t, errors.As(err, &syntaxErr))
	})

	t.Run("invalid options", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Concurrency = -2
		_, err := Sync([]string{"*"}, opts)
		assert.True(t, errors.Is(err, ErrInvalidOptions))
	})
}

func TestPatterns(t *testing.T) {
	got, err := Patterns("*.md")
	require.NoError(t, err)
	assert.Equal(t, []string{"*.md"}, got)

	got, err = Patterns([]any{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	got, err = Patterns([]string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)

	for _, bad := range []any{nil, 42, []any{"a", 1}, "", []string{}} {
		_, err := Patterns(bad)
		var patternsErr *PatternsError
		assert.True(t, errors.As(err, &patternsErr), "input %#v", bad)
	}
}

func TestHelpers(t *testing.T) {
	assert.True(t, IsDynamicPattern("*.md", nil))
	assert.False(t, IsDynamicPattern("file.md", nil))
	opts := DefaultOptions()
	opts.CaseSensitiveMatch = false
	assert.True(t, IsDynamicPattern("file.md", opts))

	assert.Equal(t, `C:/Program Files \(x86\)/**/*`, EscapePath("C:/Program Files (x86)")+"/**/*")

	tasks, err := GenerateTasks([]string{"*", "!*.txt"}, nil)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, []string{"*.txt"}, tasks[0].Negative)

	decoded, err := DecodeOptions(map[string]any{"onlyFiles": false})
	require.NoError(t, err)
	assert.False(t, decoded.OnlyFiles)
}

func TestAferoFS(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/mem/src/a.go", []byte("package a"), 0o644))
	require.NoError(t, afero.WriteFile(mem, "/mem/src/b.txt", []byte("b"), 0o644))
	require.NoError(t, afero.WriteFile(mem, "/mem/README.md", []byte("#"), 0o644))

	opts := DefaultOptions()
	opts.Cwd = "/mem"
	opts.FS = AferoFS(mem)

	got, err := Sync([]string{"**/*.go", "*.md"}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "src/a.go"}, sorted(got))
}
