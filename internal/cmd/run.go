package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Cyclone1070/fglob"
)

// run resolves patterns in the given mode and prints every entry. With
// collectErrors the results are printed before the collected error is
// returned.
func run(patterns []string, opts *fglob.Options, mode string, sorted bool, out *printer) error {
	var (
		entries []*fglob.Entry
		err     error
	)

	switch mode {
	case "sync":
		entries, err = fglob.SyncEntries(patterns, opts)
	case "async":
		pending, startErr := fglob.AsyncEntries(patterns, opts)
		if startErr != nil {
			return startErr
		}
		entries, err = pending.Wait()
	case "stream":
		stream, startErr := fglob.StreamEntries(patterns, opts)
		if startErr != nil {
			return startErr
		}
		defer stream.Close()
		for stream.Next() {
			if !sorted {
				if err := out.entry(stream.Value()); err != nil {
					return err
				}
				continue
			}
			entries = append(entries, stream.Value())
		}
		err = stream.Err()
	default:
		return fmt.Errorf("invalid --mode %q: must be sync, async or stream", mode)
	}

	var partial *fglob.PartialError
	if err != nil && !errors.As(err, &partial) {
		return err
	}

	if sorted {
		slices.SortFunc(entries, func(a, b *fglob.Entry) int {
			return strings.Compare(a.Path, b.Path)
		})
	}
	for _, entry := range entries {
		if err := out.entry(entry); err != nil {
			return err
		}
	}
	return err
}
