// Package settings turns caller Options into the immutable Settings snapshot
// shared by every component of one glob operation.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/go-kit/log"

	"github.com/Cyclone1070/fglob/internal/pattern"
	"github.com/Cyclone1070/fglob/internal/service/fs"
)

// Settings is the resolved, read-only form of Options.
type Settings struct {
	Cwd    string
	Deep   int
	Ignore []string

	Absolute            bool
	BaseNameMatch       bool
	BraceExpansion      bool
	CaseSensitiveMatch  bool
	Dot                 bool
	FollowSymbolicLinks bool
	Globstar            bool
	MarkDirectories     bool
	ObjectMode          bool
	OnlyDirectories     bool
	OnlyFiles           bool
	Stats               bool
	SuppressErrors      bool
	Unique              bool

	ThrowErrorOnBrokenSymbolicLink bool

	Gitignore     bool
	CollectErrors bool
	Concurrency   int

	FS     fs.FileSystem
	Logger log.Logger
}

// Validate reports every invalid field at once.
func (o *Options) Validate() error {
	var errs []string

	if o.Concurrency < 0 {
		errs = append(errs, "concurrency must be >= 0")
	}
	for i, p := range o.Ignore {
		if p == "" {
			errs = append(errs, fmt.Sprintf("ignore[%d] must not be empty", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, strings.Join(errs, "; "))
	}
	return nil
}

// New validates opts and resolves defaults. nil means DefaultOptions.
func New(opts *Options) (*Settings, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cwd := opts.Cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		cwd = wd
	}
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cwd %s: %w", opts.Cwd, err)
	}

	s := &Settings{
		Cwd:                            cwd,
		Deep:                           opts.Deep,
		Ignore:                         slices.Clone(opts.Ignore),
		Absolute:                       opts.Absolute,
		BaseNameMatch:                  opts.BaseNameMatch,
		BraceExpansion:                 opts.BraceExpansion,
		CaseSensitiveMatch:             opts.CaseSensitiveMatch,
		Dot:                            opts.Dot,
		FollowSymbolicLinks:            opts.FollowSymbolicLinks,
		Globstar:                       opts.Globstar,
		MarkDirectories:                opts.MarkDirectories,
		ObjectMode:                     opts.ObjectMode || opts.Stats,
		OnlyDirectories:                opts.OnlyDirectories,
		OnlyFiles:                      opts.OnlyFiles && !opts.OnlyDirectories,
		Stats:                          opts.Stats,
		SuppressErrors:                 opts.SuppressErrors,
		Unique:                         opts.Unique,
		ThrowErrorOnBrokenSymbolicLink: opts.ThrowErrorOnBrokenSymbolicLink,
		Gitignore:                      opts.Gitignore,
		CollectErrors:                  opts.CollectErrors,
		Concurrency:                    opts.Concurrency,
		FS:                             opts.FS,
		Logger:                         opts.Logger,
	}

	if s.Concurrency == 0 {
		s.Concurrency = runtime.NumCPU()
	}
	if s.FS == nil {
		s.FS = fs.NewOSFileSystem()
	}
	if s.Logger == nil {
		s.Logger = log.NewNopLogger()
	}
	return s, nil
}

// Unlimited reports whether Deep places no limit on traversal.
func (s *Settings) Unlimited() bool {
	return s.Deep < 0
}

// PatternOptions returns the matcher options implied by the settings.
func (s *Settings) PatternOptions() pattern.Options {
	return pattern.Options{
		CaseSensitive: s.CaseSensitiveMatch,
		Dot:           s.Dot,
	}
}
