package pattern

import (
	"errors"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sensitive = Options{CaseSensitive: true}

func TestIsNegative(t *testing.T) {
	assert.True(t, IsNegative("!*.txt"))
	assert.False(t, IsNegative("*.txt"))
	assert.False(t, IsNegative("!(a|b)"))
	assert.Equal(t, "*.txt", Positive("!*.txt"))
}

func TestIsDynamic(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"", false},
		{"file.md", false},
		{"dir/file.md", false},
		{"*.md", true},
		{"file?.md", true},
		{"[ab].md", true},
		{"[ab.md", false},
		{"{a,b}.md", true},
		{"{1..3}.md", true},
		{"{a}.md", false},
		{"!file.md", true},
		{`file\*.md`, true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDynamic(tt.pattern, sensitive))
		})
	}

	t.Run("case-insensitive makes literals dynamic", func(t *testing.T) {
		assert.True(t, IsDynamic("file.md", Options{}))
	})
}

func TestBase(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"*", "."},
		{"file.md", "."},
		{"dir/file.md", "dir"},
		{"fixtures/**/*.md", "fixtures"},
		{"a/b/*/c", "a/b"},
		{"a/b{c,d}/e", "a"},
		{"/etc/*.conf", "/etc"},
		{"/*", "/"},
		{"../*.md", ".."},
		{`a\*b/c/*`, "a*b/c"},
		{"src/", "."},
		{"a/src/", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, Base(tt.pattern))
		})
	}
}

func TestSplitBase(t *testing.T) {
	tests := []struct {
		pattern string
		base    string
		rest    string
	}{
		{"*.md", ".", "*.md"},
		{"fixtures/**/*.md", "fixtures", "**/*.md"},
		{"dir/file.md", "dir", "file.md"},
		{"/etc/*.conf", "/etc", "*.conf"},
		{`a\*b/c/*`, "a*b/c", "*"},
		{"a/src/", "a", "src/"},
		{"/", "/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			base, rest := SplitBase(tt.pattern)
			assert.Equal(t, tt.base, base)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestNormalization(t *testing.T) {
	assert.Equal(t, "a/b/c", RemoveDuplicateSlashes("a//b///c"))
	assert.Equal(t, "a/*", RemoveLeadingDotSegment("././a/*"))
	assert.Equal(t, "./", RemoveLeadingDotSegment("./"))
	assert.Equal(t, []string{"a", "b"}, Segments("/a//b/"))
}

func TestAffectsDepth(t *testing.T) {
	assert.True(t, AffectsDepth("node_modules"))
	assert.True(t, AffectsDepth("**/node_modules"))
	assert.True(t, AffectsDepth("build/**"))
	assert.False(t, AffectsDepth("*.txt"))
	assert.False(t, AffectsDepth("dir/*"))
}

func TestIsHidden(t *testing.T) {
	assert.True(t, IsHidden(".git/config"))
	assert.True(t, IsHidden("src/.cache"))
	assert.True(t, IsHidden("**/.*"))
	assert.False(t, IsHidden("./src/file"))
	assert.False(t, IsHidden("../src"))
}

func TestExpandBraces(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"plain/*.md", []string{"plain/*.md"}},
		{"{a,b}.md", []string{"a.md", "b.md"}},
		{"src/{a,b{c,d}}/x", []string{"src/a/x", "src/bc/x", "src/bd/x"}},
		{"f{1..3}", []string{"f1", "f2", "f3"}},
		{"f{3..1}", []string{"f3", "f2", "f1"}},
		{"{a..c}", []string{"a", "b", "c"}},
		{"{a,a}", []string{"a"}},
		{"{x}/{a,b}", []string{"{x}/a", "{x}/b"}},
		{`\{a,b}`, []string{`\{a,b}`}},
		{"{a,b", []string{"{a,b"}},
		{"{a,b}{1,2}", []string{"a1", "a2", "b1", "b2"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandBraces(tt.pattern))
		})
	}
}

func TestEscapeBraces(t *testing.T) {
	assert.Equal(t, `\{a,b\}.md`, EscapeBraces("{a,b}.md"))
	assert.Equal(t, `\{a\}`, EscapeBraces(`\{a}`))
}

func TestDisableGlobstar(t *testing.T) {
	assert.Equal(t, "a/*/b", DisableGlobstar("a/**/b"))
	assert.Equal(t, "a/**b", DisableGlobstar("a/**b"))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `C:/Program Files \(x86\)`, Escape("C:/Program Files (x86)"))
	assert.Equal(t, `dir/\*\?\[a\]\{b\}`, Escape("dir/*?[a]{b}"))
	assert.Equal(t, `\!important`, Escape("!important"))
	assert.Equal(t, `a\@\(b\)`, Escape("a@(b)"))
	assert.Equal(t, "plain/path", Escape("plain/path"))
}

func TestMatcher(t *testing.T) {
	t.Run("globstar and dot rule", func(t *testing.T) {
		m, err := Compile("**/*.md", sensitive)
		require.NoError(t, err)

		assert.True(t, m.Match("file.md"))
		assert.True(t, m.Match("a/b/file.md"))
		assert.False(t, m.Match("file.txt"))
		assert.False(t, m.Match(".hidden/file.md"))
		assert.False(t, m.Match(".file.md"))
	})

	t.Run("dot option allows hidden", func(t *testing.T) {
		m, err := Compile("**/*.md", Options{CaseSensitive: true, Dot: true})
		require.NoError(t, err)
		assert.True(t, m.Match(".hidden/file.md"))
	})

	t.Run("explicit dot segment matches hidden", func(t *testing.T) {
		m, err := Compile(".github/*", sensitive)
		require.NoError(t, err)
		assert.True(t, m.Match(".github/workflows"))
	})

	t.Run("case folding", func(t *testing.T) {
		m, err := Compile("*.MD", Options{})
		require.NoError(t, err)
		assert.True(t, m.Match("README.md"))
		assert.Equal(t, "*.md", m.Pattern())

		m, err = Compile("*.MD", sensitive)
		require.NoError(t, err)
		assert.False(t, m.Match("README.md"))
	})

	t.Run("trailing globstar matches its directory", func(t *testing.T) {
		m, err := Compile("node_modules/**", sensitive)
		require.NoError(t, err)
		assert.True(t, m.Match("node_modules"))
		assert.True(t, m.Match("node_modules/pkg/index.js"))
		assert.False(t, m.Match("src"))
	})

	t.Run("trailing slash matches directories", func(t *testing.T) {
		m, err := Compile("*/", sensitive)
		require.NoError(t, err)
		assert.False(t, m.Match("src"))
		assert.True(t, m.MatchDir("src"))
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := Compile("[a", sensitive)
		var syntaxErr *SyntaxError
		require.True(t, errors.As(err, &syntaxErr))
		assert.Equal(t, "[a", syntaxErr.Pattern)
		assert.True(t, errors.Is(err, doublestar.ErrBadPattern))
	})
}

func TestSet(t *testing.T) {
	set, err := CompileAll([]string{"*.md", "*.txt"}, sensitive)
	require.NoError(t, err)

	assert.True(t, set.Match("a.txt"))
	assert.False(t, set.Match("a.go"))
	assert.False(t, Set(nil).Match("a.md"))

	_, err = CompileAll([]string{"*.md", "[x"}, sensitive)
	assert.Error(t, err)
}

func TestPartial(t *testing.T) {
	tests := []struct {
		pattern string
		dir     string
		want    bool
	}{
		{"a/*/c", ".", true},
		{"a/*/c", "a", true},
		{"a/*/c", "a/b", true},
		{"a/*/c", "a/b/c", false},
		{"a/*/c", "x", false},
		{"*.md", ".", true},
		{"*.md", "sub", false},
		{"**/*.md", "deep/er", true},
		{"a/**", "a/b/c/d", true},
		{"{a,b}/x", "b", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"@"+tt.dir, func(t *testing.T) {
			assert.Equal(t, tt.want, CompilePartial(tt.pattern, sensitive).Match(tt.dir))
		})
	}

	t.Run("case folding", func(t *testing.T) {
		assert.True(t, CompilePartial("SRC/*", Options{}).Match("src"))
	})

	t.Run("partials", func(t *testing.T) {
		ps := Partials{CompilePartial("a/*", sensitive), CompilePartial("b/*", sensitive)}
		assert.True(t, ps.Match("b"))
		assert.False(t, ps.Match("c"))
	})
}

func TestRebase(t *testing.T) {
	tests := []struct {
		pattern string
		dirs    []string
		want    []string
	}{
		{"*.txt", nil, []string{"*.txt"}},
		{"src/*.txt", []string{"src"}, []string{"*.txt"}},
		{"src/*.txt", []string{"lib"}, nil},
		{"*/b/*.go", []string{"a", "b"}, []string{"*.go"}},
		{"**/*.md", []string{"src"}, []string{"**/*.md"}},
		{"a/**", []string{"a", "b"}, []string{"**"}},
		{"**/vendor/**", []string{"x", "vendor"}, []string{"**", "**/vendor/**"}},
		{"*/b", []string{"x", "b"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, Rebase(tt.pattern, tt.dirs, sensitive))
		})
	}

	t.Run("case folding", func(t *testing.T) {
		assert.Equal(t, []string{"*.txt"}, Rebase("SRC/*.txt", []string{"src"}, Options{}))
	})
}
