package fglob

import (
	"github.com/Cyclone1070/fglob/internal/pattern"
	"github.com/Cyclone1070/fglob/internal/provider"
	"github.com/Cyclone1070/fglob/internal/service/git"
	"github.com/Cyclone1070/fglob/internal/settings"
	"github.com/Cyclone1070/fglob/internal/task"
	"github.com/Cyclone1070/fglob/internal/walker"
)

var (
	// ErrInvalidPatterns matches every PatternsError.
	ErrInvalidPatterns = task.ErrInvalidPatterns
	// ErrInvalidOptions matches option decoding and validation errors.
	ErrInvalidOptions = settings.ErrInvalidOptions
)

type (
	// PatternsError rejects input that is not a non-empty list of non-empty
	// strings.
	PatternsError = task.PatternsError
	// SyntaxError reports a pattern the matcher cannot parse.
	SyntaxError = pattern.SyntaxError
	// PartialError carries errors collected under CollectErrors.
	PartialError = provider.PartialError
	// ReadDirError reports a directory that could not be listed.
	ReadDirError = walker.ReadDirError
	// StatError reports an entry that could not be stat'ed.
	StatError = walker.StatError
	// GitignoreReadError reports an unreadable .gitignore.
	GitignoreReadError = git.GitignoreReadError
)
