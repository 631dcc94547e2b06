package filter

import (
	"errors"
	iofs "io/fs"
	"sync"

	"github.com/go-kit/log/level"
	"github.com/hashicorp/go-multierror"

	"github.com/Cyclone1070/fglob/internal/settings"
	"github.com/Cyclone1070/fglob/internal/walker"
)

// Error is the error policy of one operation, shared by all of its tasks.
type Error struct {
	settings *settings.Settings

	mu        sync.Mutex
	collected *multierror.Error
}

// NewError creates the policy.
func NewError(s *settings.Settings) *Error {
	return &Error{settings: s}
}

// OnError classifies err. A missing path is never fatal since entries can
// disappear between listing and stat.
func (f *Error) OnError(err error) walker.Action {
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		level.Debug(f.settings.Logger).Log("msg", "skipping missing path", "err", err)
		return walker.Skip
	case f.settings.SuppressErrors:
		level.Debug(f.settings.Logger).Log("msg", "suppressed error", "err", err)
		return walker.Skip
	case f.settings.CollectErrors:
		level.Warn(f.settings.Logger).Log("msg", "collected error", "err", err)
		f.mu.Lock()
		f.collected = multierror.Append(f.collected, err)
		f.mu.Unlock()
		return walker.Collect
	}
	return walker.Abort
}

// Collected returns the errors recorded under the Collect policy, or nil.
func (f *Error) Collected() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.collected.ErrorOrNil()
}
