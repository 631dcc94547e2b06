package settings

import (
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/fglob/internal/testing/mocks"
)

func TestNew_Defaults(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, wd, s.Cwd)
	assert.True(t, s.Unlimited())
	assert.True(t, s.OnlyFiles)
	assert.True(t, s.Unique)
	assert.True(t, s.FollowSymbolicLinks)
	assert.True(t, s.CaseSensitiveMatch)
	assert.True(t, s.BraceExpansion)
	assert.True(t, s.Globstar)
	assert.False(t, s.Dot)
	assert.Equal(t, runtime.NumCPU(), s.Concurrency)
	assert.NotNil(t, s.FS)
	assert.NotNil(t, s.Logger)
}

func TestNew_DerivedRules(t *testing.T) {
	opts := DefaultOptions()
	opts.Cwd = "/work"
	opts.OnlyDirectories = true
	opts.Stats = true
	opts.Concurrency = 3
	opts.Ignore = []string{"*.log"}
	opts.FS = mocks.NewMockFileSystem()

	s, err := New(opts)
	require.NoError(t, err)

	assert.Equal(t, "/work", s.Cwd)
	assert.False(t, s.OnlyFiles, "onlyDirectories forces onlyFiles off")
	assert.True(t, s.ObjectMode, "stats forces objectMode")
	assert.Equal(t, 3, s.Concurrency)
	assert.Same(t, opts.FS, s.FS)

	opts.Ignore[0] = "changed"
	assert.Equal(t, []string{"*.log"}, s.Ignore, "settings do not alias caller slices")

	assert.Equal(t, true, s.PatternOptions().CaseSensitive)
	assert.Equal(t, false, s.PatternOptions().Dot)
}

func TestValidate(t *testing.T) {
	opts := DefaultOptions()
	opts.Concurrency = -1
	opts.Ignore = []string{""}

	_, err := New(opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOptions))
	assert.Contains(t, err.Error(), "concurrency must be >= 0")
	assert.Contains(t, err.Error(), "ignore[0] must not be empty")
}

func TestDecodeOptions(t *testing.T) {
	t.Run("keys override defaults", func(t *testing.T) {
		opts, err := DecodeOptions(map[string]any{
			"cwd":       "/srv",
			"dot":       true,
			"onlyFiles": false,
			"deep":      float64(2),
			"ignore":    []any{"**/node_modules/**"},
		})
		require.NoError(t, err)

		assert.Equal(t, "/srv", opts.Cwd)
		assert.True(t, opts.Dot)
		assert.False(t, opts.OnlyFiles)
		assert.Equal(t, 2, opts.Deep)
		assert.Equal(t, []string{"**/node_modules/**"}, opts.Ignore)
		assert.True(t, opts.Unique, "missing keys keep defaults")
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := DecodeOptions(map[string]any{"nope": true})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidOptions))
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := DecodeOptions(map[string]any{"dot": "yes"})
		assert.Error(t, err)
	})
}
