package config

import (
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

const (
	ConfigDir  = "fglob"
	ConfigFile = "config.json"
)

// FileSystem is what the loader needs from the filesystem.
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// OSFileSystem reads config files from disk.
type OSFileSystem struct{}

func (OSFileSystem) UserHomeDir() (string, error)         { return homedir.Dir() }
func (OSFileSystem) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// Loader reads the config file through an injected FileSystem.
type Loader struct {
	fs FileSystem
}

// NewLoader returns a loader backed by the OS.
func NewLoader() *Loader {
	return NewLoaderWithFS(OSFileSystem{})
}

// NewLoaderWithFS returns a loader backed by fs.
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Path returns ~/.config/fglob/config.json.
func (l *Loader) Path() (string, error) {
	home, err := l.fs.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", ConfigDir, ConfigFile), nil
}

// Load reads the default config file. Without a home directory or a config
// file the defaults are returned.
func (l *Loader) Load() (*Config, error) {
	p, err := l.Path()
	if err != nil {
		return DefaultConfig(), nil
	}
	return l.read(p, false)
}

// LoadFile reads an explicitly named config file, which must exist.
func (l *Loader) LoadFile(path string) (*Config, error) {
	return l.read(path, true)
}

func (l *Loader) read(path string, required bool) (*Config, error) {
	data, err := l.fs.ReadFile(path)
	switch {
	case errors.Is(err, iofs.ErrNotExist) && !required:
		return DefaultConfig(), nil
	case err != nil:
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes JSON over DefaultConfig and validates the result. Keys present
// in data win, including zero values.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Options == nil {
		cfg.Options = map[string]any{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
