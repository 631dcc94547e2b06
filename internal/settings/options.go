package settings

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/mitchellh/mapstructure"

	"github.com/Cyclone1070/fglob/internal/service/fs"
)

// Options are the caller-facing knobs of a glob operation. Start from
// DefaultOptions and override fields; a zero Options disables every
// default-on behavior.
type Options struct {
	// Cwd is the directory patterns are resolved against. Empty means the
	// process working directory.
	Cwd string `mapstructure:"cwd"`
	// Deep limits how many directory levels below a task base are read.
	// Negative means unlimited.
	Deep int `mapstructure:"deep"`
	// Ignore holds extra negative patterns, without the leading "!".
	Ignore []string `mapstructure:"ignore"`

	Absolute            bool `mapstructure:"absolute"`
	BaseNameMatch       bool `mapstructure:"baseNameMatch"`
	BraceExpansion      bool `mapstructure:"braceExpansion"`
	CaseSensitiveMatch  bool `mapstructure:"caseSensitiveMatch"`
	Dot                 bool `mapstructure:"dot"`
	FollowSymbolicLinks bool `mapstructure:"followSymbolicLinks"`
	Globstar            bool `mapstructure:"globstar"`
	MarkDirectories     bool `mapstructure:"markDirectories"`
	ObjectMode          bool `mapstructure:"objectMode"`
	OnlyDirectories     bool `mapstructure:"onlyDirectories"`
	OnlyFiles           bool `mapstructure:"onlyFiles"`
	Stats               bool `mapstructure:"stats"`
	SuppressErrors      bool `mapstructure:"suppressErrors"`
	Unique              bool `mapstructure:"unique"`

	ThrowErrorOnBrokenSymbolicLink bool `mapstructure:"throwErrorOnBrokenSymbolicLink"`

	// Gitignore excludes entries matched by <cwd>/.gitignore.
	Gitignore bool `mapstructure:"gitignore"`
	// CollectErrors keeps going after I/O errors and returns them together
	// with the results. SuppressErrors takes precedence.
	CollectErrors bool `mapstructure:"collectErrors"`
	// Concurrency bounds how many tasks run at once in async and stream
	// modes. Zero means runtime.NumCPU().
	Concurrency int `mapstructure:"concurrency"`

	// FS replaces the OS filesystem.
	FS fs.FileSystem `mapstructure:"-"`
	// Logger receives debug output. Defaults to a no-op logger.
	Logger log.Logger `mapstructure:"-"`
}

// DefaultOptions returns the options every operation uses when none are given.
func DefaultOptions() *Options {
	return &Options{
		Deep:                -1,
		BraceExpansion:      true,
		CaseSensitiveMatch:  true,
		FollowSymbolicLinks: true,
		Globstar:            true,
		OnlyFiles:           true,
		Unique:              true,
	}
}

// DecodeOptions decodes a loosely typed option map, such as one read from a
// JSON config file, over DefaultOptions. Unknown keys are rejected.
func DecodeOptions(raw map[string]any) (*Options, error) {
	opts := DefaultOptions()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      opts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create options decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return opts, nil
}
